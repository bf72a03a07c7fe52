package usecases

import (
	"golang.org/x/text/language"

	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/i18n"
)

type URLBuilder interface {
	WeblogURL(w weblog.Ref, locale string, absolute bool) string
	AtomServiceURL() string
}

type MessageCatalog interface {
	Messages(tag language.Tag) i18n.Messages
}

type HTMLStripper interface {
	StripHTML(html string) string
}

// Settings is the site configuration the service document depends on.
type Settings struct {
	Enabled bool
	// UploadTypesAllowed is the comma separated upload rule list, for
	// example "image/*, video/*, txt". Only MIME rules are advertised.
	UploadTypesAllowed string
}
