package initializers

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port           string
	Env            string
	DBDriver       string
	DBURL          string
	MongoURL       string
	MongoDB        string
	CartStore      string
	RedisURL       string
	CartTTL        time.Duration
	SessionKey     []byte
	CSRFKey        []byte
	CookieSecure   bool
	CookieDomain   string
	ImageStore     string
	S3Bucket       string
	UploadDir      string
	AllowedOrigins []string
	Mail           utils.MailConfig
}

// LoadEnv reads .env when present. Variables already set in the
// environment win.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		Env:          getEnv("APP_ENV", "development"),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBURL:        getEnv("DB_URL", ""),
		MongoURL:     getEnv("MONGO_URL", "mongodb://127.0.0.1:27017"),
		MongoDB:      getEnv("MONGO_DB", "decorshop"),
		CartStore:    getEnv("CART_STORE", "memory"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CartTTL:      getEnvDuration("CART_TTL", 7*24*time.Hour),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		ImageStore:   getEnv("IMAGE_STORE", "local"),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		UploadDir:    getEnv("UPLOAD_DIR", "static/uploads"),
		Mail: utils.MailConfig{
			From:     getEnv("FROM_EMAIL", ""),
			Password: getEnv("FROM_EMAIL_PASSWORD", ""),
			SMTPHost: getEnv("FROM_EMAIL_SMTP", ""),
			Address:  getEnv("SMTP_ADDRESS", ""),
		},
	}

	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		logger.Log.Warn("Invalid PORT, falling back to 3000", zap.String("port", cfg.Port))
		cfg.Port = "3000"
	}
	return cfg
}

// loadKey decodes a base64 secret of at least 32 bytes, generating a random
// one when the variable is unset or unusable. Generated keys change on every
// restart, which logs everybody out.
func loadKey(name string) []byte {
	if value := os.Getenv(name); value != "" {
		key, err := base64.StdEncoding.DecodeString(value)
		if err == nil && len(key) >= 32 {
			return key
		}
		logger.Log.Warn("Key is invalid or shorter than 32 bytes, generating a random one", zap.String("key", name))
	} else {
		logger.Log.Warn("Key not set, generating a random one. Set it in production!", zap.String("key", name))
	}

	key, err := utils.RandomBytes(32)
	if err != nil {
		logger.Log.Fatal("Failed to generate key", zap.String("key", name), zap.Error(err))
	}
	return key
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Log.Warn("Invalid duration, using default",
			zap.String("key", key), zap.String("value", value), zap.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}
