package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByUserName returns a not found AppError when no such user exists.
	GetByUserName(ctx context.Context, userName string) (*User, error)
}
