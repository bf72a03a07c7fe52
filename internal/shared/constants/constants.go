package constants

const (
	// Search pagination. Pages are zero based.
	FirstSearchPage       = 0
	DefaultSearchPageSize = 10
	MaxSearchPageSize     = 100
	// MaxSearchPage keeps MaxSearchPage*MaxSearchPageSize well inside a 32-bit int.
	MaxSearchPage = 1_000_000

	// HTTP headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRemoteUser    = "X-Remote-User"
	HeaderSSOPrefix     = "X-Sso-"
	HeaderDirPrefix     = "X-Directory-"

	// Content types
	ContentTypeJSON       = "application/json"
	ContentTypeAtomSvc    = "application/atomsvc+xml; charset=utf-8"
	ContentTypeAtomEntry  = "application/atom+xml;type=entry"
	ContentTypeMarkdown   = "text/markdown"
	ContentTypeHTML       = "text/html"
	ExternalAuthMarker    = "<externalAuth>"
	AtomServicePath       = "/roller-services/app"
	AtomCategorySchemeSep = "/"

	// Context keys
	ContextKeyUserID         = "user_id"
	ContextKeyUserName       = "user_name"
	ContextKeyRequestID      = "request_id"
	ContextKeyIdentitySource = "identity_source"

	// Environments
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Auth methods
	AuthMethodDB   = "db"
	AuthMethodLDAP = "ldap"
	AuthMethodSSO  = "sso"

	// Database table names
	TableWeblogs           = "weblogs"
	TableWeblogCategories  = "weblog_categories"
	TablePermissions       = "weblog_permissions"
	TableEntries           = "weblog_entries"
	TableEntryTags         = "weblog_entry_tags"
	TableComments          = "weblog_comments"
	TableUsers             = "users"
	TableMediaDirectories  = "media_directories"
	TableSubscriptions     = "planet_subscriptions"
	TableSubscriptionItems = "planet_subscription_entries"

	// Message keys
	MsgSearchPagerHome = "searchPager.home"
	MsgSearchPagerNext = "searchPager.next"
	MsgSearchPagerPrev = "searchPager.prev"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
)
