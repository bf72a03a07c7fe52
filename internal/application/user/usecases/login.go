package usecases

import (
	"context"

	"github.com/rollerweb/roller/internal/application/user/dto"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

const invalidCredentials = "invalid username or password"

type LoginUseCase struct {
	userRepo          user.Repository
	hasher            PasswordHasher
	tokens            TokenIssuer
	externalAuthValue string
	logger            logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	externalAuthValue string,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:          userRepo,
		hasher:            hasher,
		tokens:            tokens,
		externalAuthValue: externalAuthValue,
		logger:            logger,
	}
}

// Execute checks a form login against the local user table. Unknown users,
// wrong passwords and externally managed accounts get the same error.
func (uc *LoginUseCase) Execute(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	uc.logger.Infow("executing login use case", "user", req.UserName)

	u, err := uc.userRepo.GetByUserName(ctx, req.UserName)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError(invalidCredentials)
		}
		uc.logger.Errorw("failed to load user", "user", req.UserName, "error", err)
		return nil, err
	}

	if u.IsExternal(uc.externalAuthValue) {
		uc.logger.Warnw("form login attempted for externally managed user", "user", req.UserName)
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}
	if err := uc.hasher.Verify(req.Password, u.PasswordHash()); err != nil {
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}
	if !u.IsEnabled() {
		return nil, errors.NewForbiddenError("user account is disabled")
	}

	pair, err := uc.tokens.Generate(u.ID(), u.UserName())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID())
	return &dto.LoginResponse{
		User:         dto.ToUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
