package routes

import (
	"github.com/Kariqs/decorshop/controllers"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, ctl *controllers.Controller) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", ctl.GetCart)
		cart.GET("/add/:id", ctl.AddToCart)
		cart.GET("/update/:id", ctl.UpdateCart)
	}
}
