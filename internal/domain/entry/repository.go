package entry

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	// GetByAnchor returns a not found AppError when the weblog has no such anchor.
	GetByAnchor(ctx context.Context, weblogID, anchor string) (*Entry, error)
	// Search returns entries published at or before now, newest first.
	Search(ctx context.Context, criteria SearchCriteria, now time.Time) ([]*Entry, error)
	ListRecent(ctx context.Context, criteria ListCriteria) ([]*Entry, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	// GetByID returns a not found AppError when no comment has the ID.
	GetByID(ctx context.Context, id string) (*Comment, error)
	// ListByEntry returns comments oldest first.
	ListByEntry(ctx context.Context, entryID string) ([]*Comment, error)
}
