package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	DB          *gorm.DB
	MongoClient *mongo.Client
	Mongo       *mongo.Database
)

// ConnectToDB opens the store selected by DB_DRIVER and returns its
// repositories.
func ConnectToDB(cfg *Config) (*repository.Repositories, error) {
	switch cfg.DBDriver {
	case "mysql", "postgres":
		if err := connectGorm(cfg); err != nil {
			return nil, err
		}
		logger.Log.Info("Connected to database", zap.String("driver", cfg.DBDriver))
		return repository.NewGormRepositories(DB), nil
	case "mongo":
		if err := connectMongo(cfg.MongoURL, cfg.MongoDB); err != nil {
			return nil, err
		}
		logger.Log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))
		return repository.NewMongoRepositories(Mongo), nil
	case "memory":
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		return repository.NewMemoryRepositories(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

func connectGorm(cfg *Config) error {
	if cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required for driver %s", cfg.DBDriver)
	}

	var dialector gorm.Dialector
	if cfg.DBDriver == "postgres" {
		dialector = postgres.Open(cfg.DBURL)
	} else {
		dialector = mysql.Open(cfg.DBURL)
	}

	logLevel := gormlogger.Info
	if cfg.Env == "production" {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = db
	return nil
}

func connectMongo(mongoURL, dbName string) error {
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	Mongo = client.Database(dbName)
	return nil
}

// CloseDB releases whichever connection ConnectToDB opened.
func CloseDB() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := MongoClient.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
		}
	}
	return nil
}
