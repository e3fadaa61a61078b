package routes

import (
	"github.com/Kariqs/decorshop/controllers"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, ctl *controllers.Controller) {
	server.GET("/authentication", ctl.GetAuthentication)
	for _, path := range []string{"/register", "/login", "/signin", "/signup"} {
		server.GET(path, ctl.RedirectToAuthentication)
	}

	api := server.Group("/api", middlewares.AuthRateLimit())
	{
		api.POST("/authentication-register", ctl.Signup)
		api.POST("/authentication-login", ctl.Login)
	}

	server.POST("/logout", middlewares.RequireAuth(), ctl.Logout)
}
