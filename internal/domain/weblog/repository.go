package weblog

import "context"

type Repository interface {
	Create(ctx context.Context, w *Weblog) error
	Update(ctx context.Context, w *Weblog) error
	GetByID(ctx context.Context, id string) (*Weblog, error)
	// GetByHandle returns a not found AppError when no weblog has the handle.
	GetByHandle(ctx context.Context, handle string) (*Weblog, error)
	List(ctx context.Context, activeOnly bool) ([]*Weblog, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	// ListByWeblog returns categories ordered by position.
	ListByWeblog(ctx context.Context, weblogID string) ([]*Category, error)
	GetByName(ctx context.Context, weblogID, name string) (*Category, error)
}

type PermissionRepository interface {
	Grant(ctx context.Context, p *Permission) error
	ListByUser(ctx context.Context, userID string) ([]*Permission, error)
}
