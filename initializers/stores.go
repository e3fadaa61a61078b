package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/services"
	"github.com/Kariqs/decorshop/utils"
	"github.com/Kariqs/decorshop/web"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Redis *redis.Client

// NewCartStore returns the cart backend selected by CART_STORE.
func NewCartStore(cfg *Config) (repository.CartStore, error) {
	switch cfg.CartStore {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		Redis = client
		logger.Log.Info("Connected to Redis", zap.String("addr", opts.Addr))
		return repository.NewRedisCartStore(client, cfg.CartTTL), nil
	case "memory", "":
		return repository.NewMemoryCartStore(cfg.CartTTL), nil
	default:
		return nil, fmt.Errorf("unknown CART_STORE %q", cfg.CartStore)
	}
}

// NewImageStore returns the image backend selected by IMAGE_STORE.
func NewImageStore(cfg *Config) (utils.ImageStore, error) {
	switch cfg.ImageStore {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when IMAGE_STORE=s3")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return utils.NewS3ImageStore(ctx, cfg.S3Bucket)
	case "local", "":
		return utils.NewLocalImageStore(cfg.UploadDir, "/"+cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORE %q", cfg.ImageStore)
	}
}

// NewNotifier returns the order mailer, or nil when SMTP is not configured.
func NewNotifier(cfg *Config) (services.OrderNotifier, error) {
	if cfg.Mail.Address == "" || cfg.Mail.From == "" {
		logger.Log.Info("SMTP not configured, order emails are disabled")
		return nil, nil
	}
	tmpl, err := web.EmailTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return utils.NewMailer(cfg.Mail, tmpl), nil
}

// Ping checks every backing connection that is open.
func Ping(ctx context.Context) error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if MongoClient != nil {
		if err := MongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
	}
	if Redis != nil {
		if err := Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func CloseRedis() error {
	if Redis == nil {
		return nil
	}
	return Redis.Close()
}
