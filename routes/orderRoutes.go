package routes

import (
	"github.com/Kariqs/decorshop/controllers"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, ctl *controllers.Controller) {
	customer := server.Group("", middlewares.RequireAuth())
	{
		customer.GET("/checkout", ctl.GetCheckout)
		customer.POST("/checkout", ctl.CreateOrder)
		customer.GET("/profile", ctl.GetProfile)
	}

	admin := server.Group("/adminDashboard", middlewares.RequireAdmin())
	{
		admin.GET("", ctl.GetAdminDashboard)
		admin.POST("/delivered/:id", ctl.MarkOrderDelivered)
		admin.DELETE("/deleteCheckout/:id", ctl.DeleteOrder)
	}
}
