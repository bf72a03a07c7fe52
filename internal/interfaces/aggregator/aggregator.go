// Package aggregator assembles the planet feed aggregator from configuration
// for both the server scheduler and the one-shot CLI commands.
package aggregator

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/application/planet/usecases"
	"github.com/rollerweb/roller/internal/domain/planet"
	"github.com/rollerweb/roller/internal/infrastructure/feed"
	"github.com/rollerweb/roller/internal/infrastructure/repository"
	"github.com/rollerweb/roller/internal/infrastructure/template"
	sharedConfig "github.com/rollerweb/roller/internal/shared/config"
	"github.com/rollerweb/roller/internal/shared/db"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
	"github.com/rollerweb/roller/internal/shared/utils"
)

// Planet holds the two planet jobs.
type Planet struct {
	Refresh  *usecases.RefreshSubscriptionsUseCase
	Generate *usecases.GeneratePlanetUseCase
}

// New validates the configured groups and wires the planet use cases. Feed
// URLs that point at private or non-http addresses are rejected.
func New(conn *gorm.DB, cfg sharedConfig.PlanetConfig, contentService content.Service, log logger.Interface) (*Planet, error) {
	groups, settings, err := Groups(cfg.Groups)
	if err != nil {
		return nil, err
	}

	renderer := template.NewPlanetTemplateLoader(cfg.TemplateDir, log.Named("planet.templates"))
	if err := renderer.Load(); err != nil {
		return nil, fmt.Errorf("load planet templates: %w", err)
	}

	repo := repository.NewPlanetRepository(conn, log)
	fetcher := feed.NewFetcher(cfg.FetchTimeout())

	refresh := usecases.NewRefreshSubscriptionsUseCase(repo, fetcher, db.NewTransactionManager(conn), settings, cfg.FetchConcurrency, log.Named("planet.refresh"))
	generate := usecases.NewGeneratePlanetUseCase(repo, renderer, contentService, groups, usecases.GenerateSettings{
		Title:           cfg.Title,
		MainPage:        cfg.MainPage,
		OutputDir:       cfg.OutputDir,
		EntriesPerGroup: cfg.EntriesPerGroup,
		MaxAge:          cfg.MaxAge(),
	}, log.Named("planet.generate"))

	return &Planet{Refresh: refresh, Generate: generate}, nil
}

// Groups converts the group configuration. Handles must be unique weblog
// style handles and every subscription a public http(s) URL.
func Groups(cfgs []sharedConfig.PlanetGroupConfig) ([]planet.Group, []usecases.GroupSettings, error) {
	groups := make([]planet.Group, 0, len(cfgs))
	settings := make([]usecases.GroupSettings, 0, len(cfgs))
	seen := make(map[string]bool, len(cfgs))

	for _, gc := range cfgs {
		handle := strings.TrimSpace(gc.Handle)
		if err := utils.ValidateHandle(handle); err != nil {
			return nil, nil, fmt.Errorf("planet group %q: %w", gc.Handle, err)
		}
		if seen[handle] {
			return nil, nil, fmt.Errorf("planet group %q is configured twice", handle)
		}
		seen[handle] = true

		title := strings.TrimSpace(gc.Title)
		if title == "" {
			title = handle
		}

		urls := make([]string, 0, len(gc.Subscriptions))
		for _, raw := range gc.Subscriptions {
			u := strings.TrimSpace(raw)
			if err := utils.ValidateFeedURL(u); err != nil {
				return nil, nil, fmt.Errorf("planet group %q: %w", handle, err)
			}
			urls = append(urls, u)
		}

		g := planet.Group{Handle: handle, Title: title}
		groups = append(groups, g)
		settings = append(settings, usecases.GroupSettings{Group: g, FeedURLs: urls})
	}
	return groups, settings, nil
}
