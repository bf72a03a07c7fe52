// Package user resolves who is calling and turns external identities into
// local accounts.
package user

import (
	"strings"

	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// RegistrySettings configures external identity resolution.
type RegistrySettings struct {
	// Method is "db", "ldap" or "sso".
	Method            string
	ExternalAuthValue string
	Attributes        user.AttributeNames
	DefaultLocale     string
	DefaultTimezone   string
}

// Registry builds user details from directory or SSO identities so the first
// visit of an externally authenticated user can create a local account.
type Registry struct {
	settings RegistrySettings
	logger   logger.Interface
}

func NewRegistry(settings RegistrySettings, logger logger.Interface) *Registry {
	if settings.ExternalAuthValue == "" {
		settings.ExternalAuthValue = constants.ExternalAuthMarker
	}
	if settings.DefaultTimezone == "" {
		settings.DefaultTimezone = "UTC"
	}
	settings.Attributes = settings.Attributes.WithDefaults()
	return &Registry{settings: settings, logger: logger}
}

// External reports whether users authenticate outside the local user table.
func (r *Registry) External() bool {
	m := strings.ToLower(r.settings.Method)
	return m == constants.AuthMethodLDAP || m == constants.AuthMethodSSO
}

// ExternalAuthValue is stored as the password of external users.
func (r *Registry) ExternalAuthValue() string {
	return r.settings.ExternalAuthValue
}

// Resolve returns the details carried by src, or nil when external
// authentication is off or src carries no identity. The password is always
// the external auth marker, and unset locale and timezone take server defaults.
func (r *Registry) Resolve(src user.IdentitySource) *user.Details {
	if !r.External() {
		r.logger.Debugw("external authentication disabled, skipping user registry", "method", r.settings.Method)
		return nil
	}

	d, ok := user.ExtractDetails(src, r.settings.Attributes)
	if !ok {
		r.logger.Warnw("no identity found in request")
		return nil
	}

	d.Password = r.settings.ExternalAuthValue
	if d.Locale == "" {
		d.Locale = r.settings.DefaultLocale
	}
	if d.Timezone == "" {
		d.Timezone = r.settings.DefaultTimezone
	}
	return &d
}
