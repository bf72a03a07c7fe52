package usecases

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/rollerweb/roller/internal/application/atompub/dto"
	"github.com/rollerweb/roller/internal/domain/media"
	"github.com/rollerweb/roller/internal/domain/user"
	"github.com/rollerweb/roller/internal/domain/weblog"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
)

const (
	msgEntriesTitle = "atom.entries.title"
	msgMediaTitle   = "atom.media.title"
)

type BuildServiceDocumentUseCase struct {
	users       user.Repository
	permissions weblog.PermissionRepository
	weblogs     weblog.Repository
	categories  weblog.CategoryRepository
	directories media.Repository
	urls        URLBuilder
	catalog     MessageCatalog
	stripper    HTMLStripper
	settings    Settings
	logger      logger.Interface
}

func NewBuildServiceDocumentUseCase(
	users user.Repository,
	permissions weblog.PermissionRepository,
	weblogs weblog.Repository,
	categories weblog.CategoryRepository,
	directories media.Repository,
	urls URLBuilder,
	catalog MessageCatalog,
	stripper HTMLStripper,
	settings Settings,
	logger logger.Interface,
) *BuildServiceDocumentUseCase {
	return &BuildServiceDocumentUseCase{
		users:       users,
		permissions: permissions,
		weblogs:     weblogs,
		categories:  categories,
		directories: directories,
		urls:        urls,
		catalog:     catalog,
		stripper:    stripper,
		settings:    settings,
		logger:      logger,
	}
}

// Execute lists one workspace per weblog the user holds a permission on.
func (uc *BuildServiceDocumentUseCase) Execute(ctx context.Context, req dto.ServiceDocumentRequest) (*dto.ServiceDocument, error) {
	uc.logger.Infow("executing build service document use case", "user", req.UserName)

	if !uc.settings.Enabled {
		return nil, errors.NewUnavailableError("AtomPub is not enabled on this server")
	}

	u, err := uc.users.GetByUserName(ctx, req.UserName)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user", req.UserName, "error", err)
		return nil, err
	}
	if !u.IsEnabled() {
		return nil, errors.NewForbiddenError("user is disabled")
	}

	perms, err := uc.permissions.ListByUser(ctx, u.ID())
	if err != nil {
		uc.logger.Errorw("failed to load weblog permissions", "user", req.UserName, "error", err)
		return nil, err
	}

	atomURL := strings.TrimRight(req.AtomURL, "/")
	if atomURL == "" {
		atomURL = uc.urls.AtomServiceURL()
	}
	accepts := AcceptedContentTypes(uc.settings.UploadTypesAllowed)

	doc := &dto.ServiceDocument{Workspaces: make([]dto.Workspace, 0, len(perms))}
	for _, p := range perms {
		w, err := uc.weblogs.GetByID(ctx, p.WeblogID())
		if err != nil {
			uc.logger.Errorw("failed to load weblog for permission", "weblog_id", p.WeblogID(), "error", err)
			return nil, err
		}
		ws, err := uc.workspace(ctx, w, atomURL, accepts)
		if err != nil {
			return nil, err
		}
		doc.Workspaces = append(doc.Workspaces, ws)
	}
	return doc, nil
}

func (uc *BuildServiceDocumentUseCase) workspace(ctx context.Context, w *weblog.Weblog, atomURL string, accepts []string) (dto.Workspace, error) {
	msgs := uc.catalog.Messages(w.LocaleTag())
	base := atomURL + "/" + w.Handle()

	cats, err := uc.categories.ListByWeblog(ctx, w.ID())
	if err != nil {
		uc.logger.Errorw("failed to load weblog categories", "weblog", w.Handle(), "error", err)
		return dto.Workspace{}, err
	}
	fixed := dto.Categories{
		Fixed:      true,
		Scheme:     uc.urls.WeblogURL(w, "", true),
		Categories: make([]dto.Category, 0, len(cats)),
	}
	for _, c := range cats {
		fixed.Categories = append(fixed.Categories, dto.Category{Term: c.Name(), Label: c.Name()})
	}

	ws := dto.Workspace{
		Title: uc.stripper.StripHTML(w.Name()),
		Collections: []dto.Collection{{
			Title:      msgs.Get(msgEntriesTitle),
			Href:       base + "/entries",
			Accepts:    []string{constants.ContentTypeAtomEntry},
			Categories: []dto.Categories{fixed, {Fixed: false}},
		}},
	}

	dirs, err := uc.directories.ListByWeblog(ctx, w.ID())
	if err != nil {
		uc.logger.Errorw("failed to load media directories", "weblog", w.Handle(), "error", err)
		return dto.Workspace{}, err
	}
	for _, d := range dirs {
		ws.Collections = append(ws.Collections, dto.Collection{
			Title:   msgs.Format(msgMediaTitle, d.Name()),
			Href:    base + "/resources/" + url.PathEscape(d.Name()),
			Accepts: append([]string(nil), accepts...),
		})
	}
	return ws, nil
}

// AcceptedContentTypes keeps the upload rules that look like MIME ranges,
// dropping bare extensions such as "txt".
func AcceptedContentTypes(allowed string) []string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, allowed)

	out := []string{}
	for _, rule := range strings.Split(compact, ",") {
		if strings.Contains(rule, "/") {
			out = append(out, rule)
		}
	}
	return out
}
