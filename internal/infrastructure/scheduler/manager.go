// Package scheduler runs recurring background jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rollerweb/roller/internal/application/planet/dto"
	"github.com/rollerweb/roller/internal/shared/logger"
)

const (
	JobPlanetRefresh  = "planet-refresh"
	JobPlanetGenerate = "planet-generate"
	TagPlanet         = "planet"
)

// PlanetRefresher fetches every planet subscription.
type PlanetRefresher interface {
	Execute(ctx context.Context) (*dto.RefreshResult, error)
}

// PlanetGenerator writes the static planet pages.
type PlanetGenerator interface {
	Execute(ctx context.Context) (*dto.GenerateResult, error)
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// Track whether the scheduler has been started
	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler whose cron expressions are read in loc.
func NewSchedulerManager(log logger.Interface, loc *time.Location) (*SchedulerManager, error) {
	if loc == nil {
		loc = time.UTC
	}
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterPlanetJobs schedules the feed refresh and the page generation. The
// refresh starts immediately; generation waits one interval so it renders
// freshly fetched entries. A non-positive interval skips that job.
func (m *SchedulerManager) RegisterPlanetJobs(
	refresher PlanetRefresher,
	generator PlanetGenerator,
	refreshInterval time.Duration,
	generateInterval time.Duration,
) error {
	if refresher != nil && refreshInterval > 0 {
		_, err := m.scheduler.NewJob(
			gocron.DurationJob(refreshInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), refreshInterval)
				defer cancel()
				m.refreshPlanet(ctx, refresher)
			}),
			gocron.WithStartAt(gocron.WithStartImmediately()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithTags(TagPlanet, "refresh"),
			gocron.WithName(JobPlanetRefresh),
		)
		if err != nil {
			return err
		}
		m.logger.Infow("registered planet refresh job", "interval", refreshInterval.String())
	}

	if generator != nil && generateInterval > 0 {
		_, err := m.scheduler.NewJob(
			gocron.DurationJob(generateInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), generateInterval)
				defer cancel()
				m.generatePlanet(ctx, generator)
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithTags(TagPlanet, "generate"),
			gocron.WithName(JobPlanetGenerate),
		)
		if err != nil {
			return err
		}
		m.logger.Infow("registered planet generate job", "interval", generateInterval.String())
	}

	return nil
}

func (m *SchedulerManager) refreshPlanet(ctx context.Context, refresher PlanetRefresher) {
	startTime := time.Now()

	result, err := refresher.Execute(ctx)
	if err != nil {
		m.logger.Errorw("planet refresh failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("planet refresh finished",
		"subscriptions", result.Subscriptions,
		"failed", result.Failed,
		"new_entries", result.NewEntries,
		"duration", time.Since(startTime),
	)
}

func (m *SchedulerManager) generatePlanet(ctx context.Context, generator PlanetGenerator) {
	startTime := time.Now()

	result, err := generator.Execute(ctx)
	if err != nil {
		m.logger.Errorw("planet generation failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("planet generation finished",
		"files", len(result.Files),
		"duration", time.Since(startTime),
	)
}

// Start begins running registered jobs. Calling it twice is a no-op.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
