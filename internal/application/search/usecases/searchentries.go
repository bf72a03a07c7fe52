package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/rollerweb/roller/internal/application/entry"
	entrydto "github.com/rollerweb/roller/internal/application/entry/dto"
	"github.com/rollerweb/roller/internal/application/pager"
	"github.com/rollerweb/roller/internal/application/search/dto"
	domain "github.com/rollerweb/roller/internal/domain/entry"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/locale"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

const dayLayout = "2006-01-02"

type SearchEntriesUseCase struct {
	weblogs    weblog.Repository
	categories weblog.CategoryRepository
	entries    domain.Repository
	renderer   *entry.Renderer
	urls       pager.URLStrategy
	catalog    pager.MessageCatalog
	pageSize   int
	logger     logger.Interface
	now        func() time.Time
}

func NewSearchEntriesUseCase(
	weblogs weblog.Repository,
	categories weblog.CategoryRepository,
	entries domain.Repository,
	renderer *entry.Renderer,
	urls pager.URLStrategy,
	catalog pager.MessageCatalog,
	pageSize int,
	logger logger.Interface,
) *SearchEntriesUseCase {
	return &SearchEntriesUseCase{
		weblogs:    weblogs,
		categories: categories,
		entries:    entries,
		renderer:   renderer,
		urls:       urls,
		catalog:    catalog,
		pageSize:   utils.ClampPageSize(pageSize),
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *SearchEntriesUseCase) Execute(ctx context.Context, req dto.SearchEntriesRequest) (*dto.SearchEntriesResponse, error) {
	uc.logger.Infow("executing search entries use case",
		"weblog", req.Weblog,
		"query", req.Query,
		"category", req.Category,
		"page", req.Page,
	)

	terms := strings.Fields(req.Query)
	if len(terms) == 0 {
		return nil, errors.NewValidationError("search query is required")
	}
	if req.Page < 0 {
		return nil, errors.NewValidationError("page number must not be negative")
	}
	if req.Page > constants.MaxSearchPage {
		return nil, errors.NewValidationError("page number is too large")
	}

	w, err := uc.weblogs.GetByHandle(ctx, req.Weblog)
	if err != nil {
		uc.logger.Errorw("failed to load weblog", "weblog", req.Weblog, "error", err)
		return nil, err
	}
	if !w.IsActive() {
		return nil, errors.NewNotFoundError("weblog not found", req.Weblog)
	}

	criteria := domain.SearchCriteria{
		WeblogID:     w.ID(),
		Terms:        terms,
		CategoryName: strings.TrimSpace(req.Category),
		Offset:       utils.SearchOffset(req.Page, uc.pageSize),
		Limit:        uc.pageSize + 1,
	}
	if w.EnableMultiLang() {
		criteria.Locale = entryLocale(req.Locale, w)
	}

	found, err := uc.entries.Search(ctx, criteria, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to search entries", "weblog", req.Weblog, "error", err)
		return nil, err
	}
	hasMore := len(found) > uc.pageSize
	if hasMore {
		found = found[:uc.pageSize]
	}

	cats, err := uc.categories.ListByWeblog(ctx, w.ID())
	if err != nil {
		uc.logger.Errorw("failed to load categories", "weblog", req.Weblog, "error", err)
		return nil, err
	}
	catByID := make(map[string]*weblog.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID()] = c
	}

	bucket := domain.NewBucket[*entry.EntryView]()
	for _, e := range found {
		view := uc.renderer.Wrap(e, w, catByID[e.CategoryID()], nil)
		bucket.Add(view.PubTime(), view)
	}

	cursor, err := pager.NewPageCursor(req.Query, req.Category, req.Locale, req.Page, hasMore)
	if err != nil {
		return nil, err
	}
	p, err := pager.NewSearchResultsPager(uc.urls, uc.catalog, cursor, w, bucket, uc.logger)
	if err != nil {
		uc.logger.Errorw("failed to build search pager", "weblog", req.Weblog, "error", err)
		return nil, err
	}

	return &dto.SearchEntriesResponse{
		Weblog:     w.Handle(),
		Query:      cursor.Query(),
		Category:   cursor.Category(),
		Locale:     locale.Format(p.Locale()),
		Page:       cursor.PageNumber(),
		PageSize:   uc.pageSize,
		HasMore:    hasMore,
		Hits:       bucket.Count(),
		Navigation: pager.NavigationOf[*entry.EntryView](p),
		Days:       toDays(p.Entries()),
	}, nil
}

// entryLocale is the locale entries must carry to match, or empty when the
// requested locale does not parse.
func entryLocale(raw string, w *weblog.Weblog) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	tag, err := locale.Resolve(raw, w.LocaleTag())
	if err != nil {
		return ""
	}
	return locale.Format(tag)
}

func toDays(b *domain.Bucket[*entry.EntryView]) []dto.DayResponse {
	days := make([]dto.DayResponse, 0, b.Len())
	for _, day := range b.Days() {
		views := b.EntriesOn(day)
		items := make([]*entrydto.EntryResponse, 0, len(views))
		for _, v := range views {
			items = append(items, entrydto.ToEntryResponse(v, v.Permalink(), false))
		}
		days = append(days, dto.DayResponse{Date: day.Format(dayLayout), Entries: items})
	}
	return days
}
