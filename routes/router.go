package routes

import (
	"time"

	"github.com/Kariqs/decorshop/controllers"
	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/Kariqs/decorshop/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/gorilla/sessions"
)

type RouterOptions struct {
	SessionStore   sessions.Store
	Renderer       render.HTMLRender
	Users          repository.UserRepository
	StaticDir      string
	AllowedOrigins []string
}

// SetupRouter builds the gin engine with every page route registered.
func SetupRouter(ctl *controllers.Controller, opts RouterOptions) *gin.Engine {
	server := gin.New()
	server.HTMLRender = opts.Renderer
	server.MaxMultipartMemory = 10 << 20

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	server.Use(logger.RequestLogger(), middlewares.Recovery(), middlewares.ErrorHandler())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.Sessions(opts.SessionStore), middlewares.LoadUser(opts.Users))

	if opts.StaticDir != "" {
		server.Static("/static", opts.StaticDir)
	}

	DefaultRoutes(server, ctl)
	AuthRoutes(server, ctl)
	ProductRoutes(server, ctl)
	CartRoutes(server, ctl)
	OrderRoutes(server, ctl)
	return server
}
