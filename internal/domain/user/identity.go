package user

// Details is what an identity source knows about a user. Empty strings mean
// the source did not provide the value.
type Details struct {
	UserName   string
	ScreenName string
	FullName   string
	Email      string
	Locale     string
	Timezone   string
	Password   string
	Enabled    bool
}

func (d Details) empty() bool {
	return d.UserName == "" && d.ScreenName == "" && d.FullName == "" &&
		d.Email == "" && d.Locale == "" && d.Timezone == ""
}

// AttributeNames maps user fields to the attribute names a directory or SSO
// gateway uses for them.
type AttributeNames struct {
	ScreenName string
	UID        string
	Name       string
	Email      string
	Locale     string
	Timezone   string
}

func DefaultAttributeNames() AttributeNames {
	return AttributeNames{
		ScreenName: "screenname",
		UID:        "uid",
		Name:       "cn",
		Email:      "mail",
		Locale:     "locale",
		Timezone:   "timezone",
	}
}

// WithDefaults fills unset names from DefaultAttributeNames.
func (n AttributeNames) WithDefaults() AttributeNames {
	d := DefaultAttributeNames()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return AttributeNames{
		ScreenName: pick(n.ScreenName, d.ScreenName),
		UID:        pick(n.UID, d.UID),
		Name:       pick(n.Name, d.Name),
		Email:      pick(n.Email, d.Email),
		Locale:     pick(n.Locale, d.Locale),
		Timezone:   pick(n.Timezone, d.Timezone),
	}
}

// IdentitySource is how the current request was authenticated. The set of
// variants is closed: FormLogin, SSOAttributes and DirectoryAttributes.
type IdentitySource interface {
	extract(names AttributeNames) (Details, bool)
}

// ExtractDetails reads the user details carried by src. ok is false when the
// source carries no identity at all.
func ExtractDetails(src IdentitySource, names AttributeNames) (Details, bool) {
	if src == nil {
		return Details{}, false
	}
	return src.extract(names.WithDefaults())
}

// FormLogin is a user who authenticated against the local user table.
type FormLogin struct {
	UserName   string
	Enabled    bool
	ScreenName string
	FullName   string
	Email      string
	Locale     string
	Timezone   string
}

func (f FormLogin) extract(AttributeNames) (Details, bool) {
	if f.UserName == "" {
		return Details{}, false
	}
	return Details{
		UserName:   f.UserName,
		ScreenName: f.ScreenName,
		FullName:   f.FullName,
		Email:      f.Email,
		Locale:     f.Locale,
		Timezone:   f.Timezone,
		Enabled:    f.Enabled,
	}, true
}

// SSOAttributes are identity attributes set by a fronting single sign-on
// gateway. A multi-valued attribute contributes its first value.
type SSOAttributes map[string][]string

func (s SSOAttributes) extract(names AttributeNames) (Details, bool) {
	d := detailsFromAttributes(s, names)
	d.Enabled = true
	return d, !d.empty()
}

// DirectoryAttributes come from a directory bind. UserName, when set, is the
// bound login name and wins over the uid attribute.
type DirectoryAttributes struct {
	UserName   string
	Attributes map[string][]string
}

func (a DirectoryAttributes) extract(names AttributeNames) (Details, bool) {
	d := detailsFromAttributes(a.Attributes, names)
	if a.UserName != "" {
		d.UserName = a.UserName
	}
	d.Enabled = true
	return d, !d.empty()
}

func detailsFromAttributes(attrs map[string][]string, names AttributeNames) Details {
	first := func(name string) string {
		for _, v := range attrs[name] {
			if v != "" {
				return v
			}
		}
		return ""
	}
	return Details{
		UserName:   first(names.UID),
		ScreenName: first(names.ScreenName),
		FullName:   first(names.Name),
		Email:      first(names.Email),
		Locale:     first(names.Locale),
		Timezone:   first(names.Timezone),
	}
}
