package usecases

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
)

// GroupTemplate renders each group's index.html when the template directory has it.
const GroupTemplate = "group.html"

type GenerateSettings struct {
	Title           string
	MainPage        string
	OutputDir       string
	EntriesPerGroup int
	// MaxAge limits entries to those published within it. Zero keeps all.
	MaxAge time.Duration
}

type GeneratePlanetUseCase struct {
	repo     planet.Repository
	renderer PageRenderer
	content  content.Service
	groups   []planet.Group
	settings GenerateSettings
	logger   logger.Interface
	now      func() time.Time
}

func NewGeneratePlanetUseCase(
	repo planet.Repository,
	renderer PageRenderer,
	contentService content.Service,
	groups []planet.Group,
	settings GenerateSettings,
	logger logger.Interface,
) *GeneratePlanetUseCase {
	if settings.EntriesPerGroup <= 0 {
		settings.EntriesPerGroup = 30
	}
	return &GeneratePlanetUseCase{
		repo:     repo,
		renderer: renderer,
		content:  contentService,
		groups:   groups,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Execute writes the main page into the output directory and an index.html
// into one subdirectory per group. Pages are written through a temporary file
// so readers never see a partial page.
func (uc *GeneratePlanetUseCase) Execute(ctx context.Context) (*dto.GenerateResult, error) {
	uc.logger.Infow("executing generate planet use case",
		"main_page", uc.settings.MainPage,
		"output_dir", uc.settings.OutputDir,
	)

	if uc.settings.MainPage == "" || uc.settings.OutputDir == "" {
		return nil, fmt.Errorf("planet main page and output directory are required")
	}
	if err := os.MkdirAll(uc.settings.OutputDir, 0o755); err != nil {
		uc.logger.Errorw("failed to create planet output directory", "dir", uc.settings.OutputDir, "error", err)
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	now := uc.now()
	var since time.Time
	if uc.settings.MaxAge > 0 {
		since = now.Add(-uc.settings.MaxAge)
	}

	pages := make([]dto.GroupPage, 0, len(uc.groups))
	for _, g := range uc.groups {
		entries, err := uc.repo.RecentEntries(ctx, g.Handle, since, uc.settings.EntriesPerGroup)
		if err != nil {
			uc.logger.Errorw("failed to load planet entries", "group", g.Handle, "error", err)
			return nil, err
		}
		pages = append(pages, dto.GroupPage{Handle: g.Handle, Title: g.Title, Entries: entries})
	}

	data := dto.PageData{
		Date:      now,
		Title:     uc.settings.Title,
		Groups:    pages,
		Utilities: dto.NewUtilities(uc.content),
	}

	result := &dto.GenerateResult{}
	mainPath := filepath.Join(uc.settings.OutputDir, uc.settings.MainPage)
	if err := uc.writePage(mainPath, uc.settings.MainPage, data); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, mainPath)

	for i := range pages {
		dir := filepath.Join(uc.settings.OutputDir, pages[i].Handle)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			uc.logger.Errorw("failed to create group directory", "dir", dir, "error", err)
			return nil, fmt.Errorf("create group dir: %w", err)
		}
		if !uc.renderer.Has(GroupTemplate) {
			continue
		}
		groupData := data
		groupData.Group = &pages[i]
		path := filepath.Join(dir, "index.html")
		if err := uc.writePage(path, GroupTemplate, groupData); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	uc.logger.Infow("planet generated", "files", len(result.Files))
	return result, nil
}

func (uc *GeneratePlanetUseCase) writePage(path, templateName string, data dto.PageData) error {
	var buf bytes.Buffer
	if err := uc.renderer.Render(&buf, templateName, data); err != nil {
		uc.logger.Errorw("failed to render planet page", "template", templateName, "error", err)
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".planet-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		uc.logger.Errorw("failed to publish planet page", "path", path, "error", err)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
