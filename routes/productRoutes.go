package routes

import (
	"github.com/Kariqs/decorshop/controllers"
	"github.com/Kariqs/decorshop/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, ctl *controllers.Controller) {
	server.GET("/shop", ctl.GetShop)
	server.GET("/productInfo/:id", ctl.GetProduct)

	admin := server.Group("/adminDashboard", middlewares.RequireAdmin())
	{
		admin.GET("/addProduct", ctl.GetAddProduct)
		admin.POST("/addProduct", ctl.CreateProduct)
		admin.GET("/editProduct/:id", ctl.GetEditProduct)
		admin.PUT("/editProduct/:id", ctl.UpdateProduct)
		admin.DELETE("/deleteProduct/:id", ctl.DeleteProduct)
	}
}
