package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"nexload-backend/internal/config"
	authHandler "nexload-backend/internal/domains/auth/handler"
	authService "nexload-backend/internal/domains/auth/service"
	resourceHandler "nexload-backend/internal/domains/resource/handler"
	resourceRepo "nexload-backend/internal/domains/resource/repository"
	resourceService "nexload-backend/internal/domains/resource/service"
	userRepo "nexload-backend/internal/domains/user/repository"
	infraCache "nexload-backend/internal/infrastructure/cache"
	"nexload-backend/internal/infrastructure/database"
	"nexload-backend/internal/infrastructure/storage"
	"nexload-backend/pkg/cache"
	"nexload-backend/pkg/jwt"
	"nexload-backend/pkg/logger"
)

// ========================================
// CONTAINER
// ========================================

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, in dependency order.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     storage.ObjectStorage
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Repositories
	ResourceRepo resourceRepo.ResourceRepository
	UserRepo     userRepo.UserRepository

	// Services
	ResourceService resourceService.ServiceInterface
	AuthService     authService.ServiceInterface

	// Handlers
	ResourceHandler *resourceHandler.ResourceHandler
	AuthHandler     *authHandler.AuthHandler
}

// NewContainer builds the whole graph. Order matters: config first,
// then infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("Database connected")

	// Step 3: cache. A Redis outage is non-critical; the cache
	// implementation degrades to misses.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			log.Info().Msg("Redis connected")
		}
	}
	c.Cache = redisCache

	// Step 4: object storage
	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Storage = objectStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("Object storage ready")

	// Step 5: session tokens
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.SessionExpiry)*time.Hour)

	// Step 6: task queue client
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 7: repositories
	c.ResourceRepo = resourceRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)

	// Step 8: services
	c.ResourceService = resourceService.NewResourceService(c.ResourceRepo, c.Storage, c.AsynqClient)
	c.AuthService = authService.NewGoogleAuthService(
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.BaseURL,
		c.Cache,
		c.UserRepo,
		c.JWTManager,
	)

	// Step 9: handlers
	c.ResourceHandler = resourceHandler.NewResourceHandler(c.ResourceService)
	c.AuthHandler = authHandler.NewAuthHandler(
		c.AuthService,
		cfg.App.FrontendOrigin,
		cfg.App.Environment == "production",
	)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup releases external connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close asynq client")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleaned up")
}
