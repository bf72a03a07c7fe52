package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/infrastructure/auth"
	"github.com/rollerweb/roller/internal/infrastructure/config"
	"github.com/rollerweb/roller/internal/infrastructure/ratelimit"
	"github.com/rollerweb/roller/internal/infrastructure/scheduler"
	"github.com/rollerweb/roller/internal/infrastructure/urlstrategy"
	"github.com/rollerweb/roller/internal/interfaces/aggregator"
	"github.com/rollerweb/roller/internal/interfaces/http/handlers"
	"github.com/rollerweb/roller/internal/interfaces/http/middleware"
	"github.com/rollerweb/roller/internal/shared/i18n"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/services/content"
	"github.com/rollerweb/roller/internal/shared/version"
)

const (
	loginRequestsPerMinute = 10
	redisPingTimeout       = 3 * time.Second
)

// Container holds the infrastructure, repositories, use cases, handlers and
// background jobs of the server. Shutdown releases what it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Shared services
	urls           *urlstrategy.MultiWeblogURLStrategy
	contentService content.Service
	catalog        *i18n.Catalog
	jwtSvc         *auth.JWTService
	limiter        ratelimit.RateLimiter

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	searchLimiter  *middleware.RateLimiter
	loginLimiter   *middleware.RateLimiter

	// Background jobs, nil when planet is disabled
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component from the configuration. It fails when the
// planet configuration is invalid or its templates do not parse.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, shared services
	c.initInfrastructure()

	// Section 2: Weblog - renderer, search, entries, AtomPub
	c.initWeblog()

	// Section 3: Auth - tokens, user registry, identity middleware
	c.initAuth()

	// Section 4: Planet - aggregator jobs
	if err := c.initPlanet(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 5: Handlers
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() {
	cfg := c.cfg

	c.redis = initRedis(cfg, c.log)
	c.repos = newRepositories(c.db, c.log)

	c.urls = urlstrategy.NewMultiWeblogURLStrategy(cfg.Server.BaseURL)
	c.contentService = content.NewService()
	c.catalog = i18n.NewCatalog(c.log.Named("i18n"))

	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis)
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter()
	}
	c.searchLimiter = middleware.NewRateLimiter(c.limiter,
		ratelimit.RateLimitConfig{RequestsPerMinute: cfg.Weblogger.SearchRateLimit}, "search", c.log)
	c.loginLimiter = middleware.NewRateLimiter(c.limiter,
		ratelimit.RateLimitConfig{RequestsPerMinute: loginRequestsPerMinute}, "login", c.log)
}

// initRedis connects when Redis is enabled. An unreachable server is logged
// and the in-process limiter is used instead.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, using in-memory rate limiting", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client
}

func (c *Container) initPlanet() error {
	cfg := c.cfg.Planet
	if !cfg.Enabled {
		return nil
	}

	planet, err := aggregator.New(c.db, cfg, c.contentService, c.log)
	if err != nil {
		return fmt.Errorf("configure planet: %w", err)
	}

	loc, err := time.LoadLocation(c.cfg.Server.Timezone)
	if err != nil {
		c.log.Warnw("unknown server timezone, scheduling in UTC", "timezone", c.cfg.Server.Timezone, "error", err)
		loc = time.UTC
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"), loc)
	if err != nil {
		return err
	}
	if err := manager.RegisterPlanetJobs(planet.Refresh, planet.Generate, cfg.RefreshInterval(), cfg.GenerateInterval()); err != nil {
		_ = manager.Stop()
		return err
	}
	c.schedulerManager = manager
	return nil
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		searchHandler:  handlers.NewSearchHandler(c.ucs.searchEntries, c.log),
		entryHandler:   handlers.NewEntryHandler(c.ucs.getEntry, c.log),
		commentHandler: handlers.NewCommentHandler(c.ucs.moderateComment, c.log),
		authHandler:    handlers.NewAuthHandler(c.ucs.login, c.jwtSvc, c.log),
		atomPubHandler: handlers.NewAtomPubHandler(c.ucs.serviceDocument, c.log),
		systemHandler:  handlers.NewSystemHandler(version.String(), c.healthChecks(), c.log),
	}
}

// healthChecks pings the database and, when connected, Redis.
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}

// Engine returns the gin engine. Routes are registered by SetupRoutes.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start launches the background jobs.
func (c *Container) Start() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops the background jobs and closes the Redis client. The
// database is owned by the caller.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
	}
}
