package mappers

import (
	"fmt"

	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain users and persistence models.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(u *user.User) *models.UserModel
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	u, err := user.ReconstructUser(
		model.ID,
		model.UserName,
		model.PasswordHash,
		model.ScreenName,
		model.FullName,
		model.Email,
		model.Locale,
		model.Timezone,
		model.Enabled,
		model.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user: %w", err)
	}
	return u, nil
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		UserName:     u.UserName(),
		PasswordHash: u.PasswordHash(),
		ScreenName:   u.ScreenName(),
		FullName:     u.FullName(),
		Email:        u.Email(),
		Locale:       u.Locale(),
		Timezone:     u.Timezone(),
		Enabled:      u.IsEnabled(),
		CreatedAt:    u.CreatedAt(),
	}
}
