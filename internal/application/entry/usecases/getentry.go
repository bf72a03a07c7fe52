package usecases

import (
	"context"
	"time"

	"github.com/rollerweb/roller/internal/application/entry"
	"github.com/rollerweb/roller/internal/application/entry/dto"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

type GetEntryUseCase struct {
	weblogs    WeblogRepository
	categories CategoryRepository
	entries    EntryRepository
	comments   CommentRepository
	renderer   *entry.Renderer
	logger     logger.Interface
	now        func() time.Time
}

func NewGetEntryUseCase(
	weblogs WeblogRepository,
	categories CategoryRepository,
	entries EntryRepository,
	comments CommentRepository,
	renderer *entry.Renderer,
	logger logger.Interface,
) *GetEntryUseCase {
	return &GetEntryUseCase{
		weblogs:    weblogs,
		categories: categories,
		entries:    entries,
		comments:   comments,
		renderer:   renderer,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute returns a published entry of an active weblog with its approved
// comments. Drafts and future entries are reported as not found.
func (uc *GetEntryUseCase) Execute(ctx context.Context, req dto.GetEntryRequest) (*dto.EntryResponse, error) {
	uc.logger.Infow("executing get entry use case", "weblog", req.Weblog, "anchor", req.Anchor)

	w, err := uc.weblogs.GetByHandle(ctx, req.Weblog)
	if err != nil {
		uc.logger.Errorw("failed to load weblog", "weblog", req.Weblog, "error", err)
		return nil, err
	}
	if !w.IsActive() {
		return nil, errors.NewNotFoundError("weblog not found", req.Weblog)
	}

	e, err := uc.entries.GetByAnchor(ctx, w.ID(), req.Anchor)
	if err != nil {
		uc.logger.Errorw("failed to load entry", "weblog", req.Weblog, "anchor", req.Anchor, "error", err)
		return nil, err
	}
	if !e.IsPublished(uc.now()) {
		return nil, errors.NewNotFoundError("entry not found", req.Anchor)
	}

	comments, err := uc.comments.ListByEntry(ctx, e.ID())
	if err != nil {
		uc.logger.Errorw("failed to load comments", "entry", e.ID(), "error", err)
		return nil, err
	}

	var category *weblog.Category
	if e.CategoryID() != "" {
		cats, err := uc.categories.ListByWeblog(ctx, w.ID())
		if err != nil {
			uc.logger.Errorw("failed to load categories", "weblog", req.Weblog, "error", err)
			return nil, err
		}
		category = findCategory(cats, e.CategoryID())
	}

	view := uc.renderer.Wrap(e, w, category, comments)
	return dto.ToEntryResponse(view, "", true), nil
}
