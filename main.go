package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/decorshop/controllers"
	"github.com/Kariqs/decorshop/initializers"
	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/routes"
	"github.com/Kariqs/decorshop/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	envErr := initializers.LoadEnv()
	logger.Initialize(os.Getenv("APP_ENV"))
	defer logger.Log.Sync()
	if envErr != nil {
		logger.Log.Warn("Failed to load .env file", zap.Error(envErr))
	}

	cfg := initializers.LoadConfig()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := initializers.ConnectToDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer initializers.CloseDB()

	if err := initializers.SyncDatabase(); err != nil {
		logger.Log.Fatal("Failed to sync database", zap.Error(err))
	}

	carts, err := initializers.NewCartStore(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to set up cart store", zap.Error(err))
	}
	defer initializers.CloseRedis()

	images, err := initializers.NewImageStore(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to set up image store", zap.Error(err))
	}

	notifier, err := initializers.NewNotifier(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to set up mailer", zap.Error(err))
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Log.Fatal("Failed to load templates", zap.Error(err))
	}

	ctl := controllers.NewController(repos, carts, images, notifier)
	ctl.HealthCheck = initializers.Ping

	server := routes.SetupRouter(ctl, routes.RouterOptions{
		SessionStore:   middlewares.NewSessionStore(cfg.SessionKey, cfg.CookieSecure, cfg.CookieDomain),
		Renderer:       renderer,
		Users:          repos.Users,
		StaticDir:      "static",
		AllowedOrigins: cfg.AllowedOrigins,
	})

	handler := routes.Handler(server, routes.HandlerOptions{
		CSRFKey:        cfg.CSRFKey,
		Secure:         cfg.CookieSecure,
		TrustedOrigins: trustedOrigins(cfg),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed to listen and serve", zap.Error(err))
		}
	}()

	<-stop
	logger.Log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
		return
	}
	logger.Log.Info("Server exited gracefully.")
}

func trustedOrigins(cfg *initializers.Config) []string {
	origins := []string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port}
	for _, origin := range cfg.AllowedOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			origins = append(origins, u.Host)
		}
	}
	return origins
}
