package usecases

import (
	"context"

	appuser "github.com/rollerweb/roller/internal/application/user"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/id"
	"github.com/rollerweb/roller/internal/shared/logger"
)

type ProvisionExternalUserUseCase struct {
	userRepo user.Repository
	registry *appuser.Registry
	logger   logger.Interface
}

func NewProvisionExternalUserUseCase(userRepo user.Repository, registry *appuser.Registry, logger logger.Interface) *ProvisionExternalUserUseCase {
	return &ProvisionExternalUserUseCase{
		userRepo: userRepo,
		registry: registry,
		logger:   logger,
	}
}

// Execute returns the local account for an externally authenticated
// identity, creating it on first sight. It returns nil without error when
// the registry yields no details.
func (uc *ProvisionExternalUserUseCase) Execute(ctx context.Context, src user.IdentitySource) (*user.User, error) {
	details := uc.registry.Resolve(src)
	if details == nil {
		return nil, nil
	}
	if details.UserName == "" {
		return nil, errors.NewUnauthorizedError("identity carries no user name")
	}

	existing, err := uc.userRepo.GetByUserName(ctx, details.UserName)
	if err == nil {
		return existing, nil
	}
	if !errors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to look up external user", "user", details.UserName, "error", err)
		return nil, err
	}

	uc.logger.Infow("executing provision external user use case", "user", details.UserName)
	u, err := user.NewExternalUser(id.New(id.PrefixUser), *details)
	if err != nil {
		return nil, errors.NewValidationError("invalid external user details", err.Error())
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsConflictError(err) || errors.IsDuplicateError(err) {
			// lost a race with a concurrent first request
			return uc.userRepo.GetByUserName(ctx, details.UserName)
		}
		uc.logger.Errorw("failed to create external user", "user", details.UserName, "error", err)
		return nil, err
	}

	uc.logger.Infow("external user provisioned", "user_id", u.ID(), "user", u.UserName())
	return u, nil
}
