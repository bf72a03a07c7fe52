package dto

import (
	"time"

	"github.com/rollerweb/roller/internal/domain/user"
)

type LoginRequest struct {
	UserName string `json:"username" binding:"required" validate:"required,max=255"`
	Password string `json:"password" binding:"required" validate:"required,max=128"`
}

type LoginResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	UserName   string    `json:"username"`
	ScreenName string    `json:"screen_name"`
	FullName   string    `json:"full_name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Locale     string    `json:"locale,omitempty"`
	Timezone   string    `json:"timezone,omitempty"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID(),
		UserName:   u.UserName(),
		ScreenName: u.ScreenName(),
		FullName:   u.FullName(),
		Email:      u.Email(),
		Locale:     u.Locale(),
		Timezone:   u.Timezone(),
		Enabled:    u.IsEnabled(),
		CreatedAt:  u.CreatedAt(),
	}
}
