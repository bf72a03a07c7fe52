package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/infrastructure/auth"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

type accessTokenVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

type externalUserProvisioner interface {
	Execute(ctx context.Context, src user.IdentitySource) (*user.User, error)
}

// AuthMiddleware authenticates a request and records which identity source
// vouched for it. Bearer tokens are always accepted. With the "sso" method a
// fronting gateway's X-Sso-* headers are trusted, with "ldap" the directory
// bind forwarded as X-Remote-User plus X-Directory-* headers is.
type AuthMiddleware struct {
	tokens      accessTokenVerifier
	provisioner externalUserProvisioner
	method      string
	logger      logger.Interface
}

func NewAuthMiddleware(tokens accessTokenVerifier, provisioner externalUserProvisioner, method string, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		provisioner: provisioner,
		method:      strings.ToLower(method),
		logger:      logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader(constants.HeaderAuthorization); header != "" {
			m.authenticateBearer(c, header)
			return
		}

		src := m.externalIdentity(c.Request.Header)
		if src == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}
		m.authenticateExternal(c, src)
	}
}

func (m *AuthMiddleware) authenticateBearer(c *gin.Context, header string) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
		c.Abort()
		return
	}

	claims, err := m.tokens.VerifyAccess(parts[1])
	if err != nil {
		m.logger.Warnw("failed to verify token", "error", err)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		c.Abort()
		return
	}

	setIdentity(c, claims.UserID, claims.UserName, user.FormLogin{UserName: claims.UserName, Enabled: true})
	c.Next()
}

func (m *AuthMiddleware) authenticateExternal(c *gin.Context, src user.IdentitySource) {
	u, err := m.provisioner.Execute(c.Request.Context(), src)
	if err != nil {
		m.logger.Warnw("external authentication failed", "method", m.method, "error", err)
		utils.AbortWithError(c, err)
		return
	}
	if u == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "no identity in request")
		c.Abort()
		return
	}
	if !u.IsEnabled() {
		utils.AbortWithError(c, errors.NewForbiddenError("user account is disabled"))
		return
	}

	setIdentity(c, u.ID(), u.UserName(), src)
	c.Next()
}

// externalIdentity picks the identity source variant for the configured
// method, or nil when the request carries none.
func (m *AuthMiddleware) externalIdentity(h http.Header) user.IdentitySource {
	switch m.method {
	case constants.AuthMethodSSO:
		attrs := prefixedAttributes(h, constants.HeaderSSOPrefix)
		if remote := h.Get(constants.HeaderRemoteUser); remote != "" {
			if _, ok := attrs["uid"]; !ok {
				attrs["uid"] = []string{remote}
			}
		}
		if len(attrs) == 0 {
			return nil
		}
		return user.SSOAttributes(attrs)
	case constants.AuthMethodLDAP:
		remote := h.Get(constants.HeaderRemoteUser)
		attrs := prefixedAttributes(h, constants.HeaderDirPrefix)
		if remote == "" && len(attrs) == 0 {
			return nil
		}
		return user.DirectoryAttributes{UserName: remote, Attributes: attrs}
	default:
		return nil
	}
}

// prefixedAttributes maps "X-Sso-Mail: a@b" to {"mail": ["a@b"]}.
func prefixedAttributes(h http.Header, prefix string) map[string][]string {
	attrs := make(map[string][]string)
	canonical := http.CanonicalHeaderKey(prefix)
	for key, values := range h {
		if !strings.HasPrefix(key, canonical) || len(key) == len(canonical) {
			continue
		}
		name := strings.ToLower(key[len(canonical):])
		attrs[name] = append(attrs[name], values...)
	}
	return attrs
}

func setIdentity(c *gin.Context, userID, userName string, src user.IdentitySource) {
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyUserName, userName)
	c.Set(constants.ContextKeyIdentitySource, src)
}

// IdentitySource returns how the current request was authenticated, or nil.
func IdentitySource(c *gin.Context) user.IdentitySource {
	v, ok := c.Get(constants.ContextKeyIdentitySource)
	if !ok {
		return nil
	}
	src, _ := v.(user.IdentitySource)
	return src
}
