package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nexconsult/brdocs-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const cacheCleanupInterval = 5 * time.Minute

// Container holds all service dependencies
type Container struct {
	config      *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	stop        context.CancelFunc

	DocumentService  DocumentServiceInterface
	AuthService      AuthServiceInterface
	CacheService     CacheServiceInterface
	ExtractorService ExtractorServiceInterface
	MetricsService   MetricsServiceInterface
}

// NewContainer creates a new service container
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("failed to initialize services: nil config")
	}

	container := &Container{
		config: cfg,
		logger: logger,
	}

	if cfg.Redis.Enabled {
		container.initRedis()
	} else {
		logger.Info("Redis disabled, using memory cache")
	}

	container.initServices()
	return container, nil
}

// initRedis connects to Redis, leaving the client nil when unreachable
func (c *Container) initRedis() {
	c.redisClient = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", c.config.Redis.Host, c.config.Redis.Port),
		Password:     c.config.Redis.Password,
		DB:           c.config.Redis.DB,
		PoolSize:     c.config.Redis.PoolSize,
		DialTimeout:  c.config.Redis.DialTimeout,
		ReadTimeout:  c.config.Redis.ReadTimeout,
		WriteTimeout: c.config.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), c.config.Redis.DialTimeout)
	defer cancel()

	if err := c.redisClient.Ping(ctx).Err(); err != nil {
		c.logger.WithError(err).Warn("Redis connection failed, running with memory cache")
		_ = c.redisClient.Close()
		c.redisClient = nil
	} else {
		c.logger.Info("Redis connection established")
	}
}

func (c *Container) initServices() {
	metrics := NewMetricsService()
	c.MetricsService = metrics

	cache := NewCacheService(c.redisClient, c.config.Documents.CacheTTL, c.config.Documents.CachePrefix, c.logger)
	metrics.TrackCacheSize(cache.Size)
	c.CacheService = cache

	ctx, cancel := context.WithCancel(context.Background())
	c.stop = cancel
	cache.StartCleanupRoutine(ctx, cacheCleanupInterval)

	c.ExtractorService = NewExtractorService(c.logger)
	c.DocumentService = NewDocumentService(c.config.Documents, c.CacheService, c.ExtractorService, c.MetricsService, c.logger)
	c.AuthService = NewAuthService(c.MetricsService, c.logger)
}

// Close closes all service connections
func (c *Container) Close() error {
	if c.stop != nil {
		c.stop()
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// Health checks the health of all services
func (c *Container) Health() map[string]interface{} {
	return map[string]interface{}{
		"cache":     c.CacheService.Health(),
		"documents": c.DocumentService.Health(),
		"extractor": c.ExtractorService.Health(),
		"metrics":   c.MetricsService.Health(),
	}
}

// GetRedisClient returns the Redis client, nil when running on memory
func (c *Container) GetRedisClient() *redis.Client {
	return c.redisClient
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logrus.Logger {
	return c.logger
}
