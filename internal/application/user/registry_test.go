package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/shared/logger"
)

func newRegistry(method string) *Registry {
	return NewRegistry(RegistrySettings{
		Method:          method,
		DefaultLocale:   "en_US",
		DefaultTimezone: "Europe/Paris",
	}, logger.NewNopLogger())
}

func TestRegistry_DatabaseAuthSkips(t *testing.T) {
	r := newRegistry("db")
	assert.False(t, r.External())
	assert.Nil(t, r.Resolve(user.FormLogin{UserName: "alice", Enabled: true}))
}

func TestRegistry_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		method string
		src    user.IdentitySource
		want   *user.Details
	}{
		{
			name:   "sso attributes use first value and defaults",
			method: "sso",
			src: user.SSOAttributes{
				"uid":  {"alice"},
				"cn":   {"", "Alice Liddell"},
				"mail": {"alice@example.com"},
			},
			want: &user.Details{
				UserName: "alice", FullName: "Alice Liddell", Email: "alice@example.com",
				Locale: "en_US", Timezone: "Europe/Paris", Password: "<externalAuth>", Enabled: true,
			},
		},
		{
			name:   "directory bind name wins over uid",
			method: "ldap",
			src: user.DirectoryAttributes{
				UserName:   "bob",
				Attributes: map[string][]string{"uid": {"robert"}, "locale": {"de_DE"}, "timezone": {"Europe/Berlin"}},
			},
			want: &user.Details{
				UserName: "bob", Locale: "de_DE", Timezone: "Europe/Berlin", Password: "<externalAuth>", Enabled: true,
			},
		},
		{
			name:   "form login keeps its enabled flag",
			method: "LDAP",
			src:    user.FormLogin{UserName: "carol", ScreenName: "Carol", Enabled: false},
			want: &user.Details{
				UserName: "carol", ScreenName: "Carol", Locale: "en_US", Timezone: "Europe/Paris", Password: "<externalAuth>",
			},
		},
		{
			name:   "empty sso attributes",
			method: "sso",
			src:    user.SSOAttributes{"other": {"x"}},
		},
		{
			name:   "nil source",
			method: "sso",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newRegistry(tt.method).Resolve(tt.src)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestRegistry_CustomAttributeNames(t *testing.T) {
	r := NewRegistry(RegistrySettings{
		Method:            "sso",
		ExternalAuthValue: "<sso>",
		Attributes:        user.AttributeNames{UID: "sAMAccountName", Email: "email"},
	}, logger.NewNopLogger())

	got := r.Resolve(user.SSOAttributes{"sAMAccountName": {"dave"}, "email": {"dave@example.com"}, "cn": {"Dave"}})
	require.NotNil(t, got)
	assert.Equal(t, "dave", got.UserName)
	assert.Equal(t, "dave@example.com", got.Email)
	assert.Equal(t, "Dave", got.FullName)
	assert.Equal(t, "<sso>", got.Password)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, "<sso>", r.ExternalAuthValue())
}
