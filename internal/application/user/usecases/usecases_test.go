package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollerweb/roller/internal/application/testutil"
	appuser "github.com/rollerweb/roller/internal/application/user"
	"github.com/rollerweb/roller/internal/application/user/dto"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/id"
	"github.com/rollerweb/roller/internal/shared/logger"
)

// plainHasher stores passwords as "hashed:<password>".
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) error {
	if h != "hashed:"+p {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Generate(userID, userName string) (*TokenPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &TokenPair{AccessToken: "access-" + userID, RefreshToken: "refresh-" + userID, ExpiresIn: 1800}, nil
}

func newUser(t *testing.T, userName, hash string) *user.User {
	t.Helper()
	u, err := user.NewUser("usr_"+userName, userName, hash, "", "", "", "en_US", "UTC")
	require.NoError(t, err)
	return u
}

func TestLoginUseCase(t *testing.T) {
	disabled := newUser(t, "dora", "hashed:pw")
	disabled.Disable()
	repo := testutil.NewMockUserRepository(
		newUser(t, "alice", "hashed:pw"),
		newUser(t, "ldapuser", "<externalAuth>"),
		disabled,
	)
	uc := NewLoginUseCase(repo, plainHasher{}, fakeIssuer{}, "<externalAuth>", logger.NewNopLogger())

	resp, err := uc.Execute(context.Background(), dto.LoginRequest{UserName: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "access-usr_alice", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.User.UserName)

	for _, req := range []dto.LoginRequest{
		{UserName: "alice", Password: "wrong"},
		{UserName: "nobody", Password: "pw"},
		{UserName: "ldapuser", Password: "<externalAuth>"},
	} {
		_, err := uc.Execute(context.Background(), req)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr, req.UserName)
		assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type, req.UserName)
	}

	_, err = uc.Execute(context.Background(), dto.LoginRequest{UserName: "dora", Password: "pw"})
	require.NotNil(t, errors.GetAppError(err))
	assert.Equal(t, errors.ErrorTypeForbidden, errors.GetAppError(err).Type)

	failing := NewLoginUseCase(repo, plainHasher{}, fakeIssuer{err: fmt.Errorf("boom")}, "<externalAuth>", logger.NewNopLogger())
	_, err = failing.Execute(context.Background(), dto.LoginRequest{UserName: "alice", Password: "pw"})
	require.NotNil(t, errors.GetAppError(err))
	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
}

func TestProvisionExternalUserUseCase(t *testing.T) {
	log := logger.NewNopLogger()
	registry := appuser.NewRegistry(appuser.RegistrySettings{Method: "sso", DefaultLocale: "en_US"}, log)
	repo := testutil.NewMockUserRepository()
	uc := NewProvisionExternalUserUseCase(repo, registry, log)

	src := user.SSOAttributes{"uid": {"erin"}, "mail": {"erin@example.com"}}
	first, err := uc.Execute(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, id.HasPrefix(first.ID(), id.PrefixUser))
	assert.True(t, first.IsExternal("<externalAuth>"))
	assert.Equal(t, "erin", first.ScreenName())
	assert.Equal(t, "en_US", first.Locale())

	second, err := uc.Execute(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, 1, repo.Count())

	none, err := uc.Execute(context.Background(), user.SSOAttributes{})
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = uc.Execute(context.Background(), user.SSOAttributes{"mail": {"anon@example.com"}})
	require.NotNil(t, errors.GetAppError(err))
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
}

func TestProvisionExternalUserUseCase_DatabaseAuth(t *testing.T) {
	log := logger.NewNopLogger()
	registry := appuser.NewRegistry(appuser.RegistrySettings{Method: "db"}, log)
	uc := NewProvisionExternalUserUseCase(testutil.NewMockUserRepository(), registry, log)

	u, err := uc.Execute(context.Background(), user.SSOAttributes{"uid": {"erin"}})
	require.NoError(t, err)
	assert.Nil(t, u)
}
