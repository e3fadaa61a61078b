package routes

import (
	"github.com/Kariqs/decorshop/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, ctl *controllers.Controller) {
	server.GET("/", ctl.GetHome)
	server.GET("/about", ctl.GetAbout)
	server.GET("/contact", ctl.GetContact)
	server.GET("/healthz", ctl.GetHealth)
	server.NoRoute(ctl.NotFound)
}
