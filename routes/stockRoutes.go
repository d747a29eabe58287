package routes

import (
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/gin-gonic/gin"
)

func StockRoutes(api *gin.RouterGroup, c *controllers.StockController, admin ...gin.HandlerFunc) {
	stock := api.Group("/stock")
	{
		stock.GET("", c.GetStock)
		stock.GET("/:productId", c.GetProductStock)
	}

	managed := stock.Group("", admin...)
	{
		managed.PUT("/:productId", c.UpdateProductStock)
		managed.POST("/batch", c.BatchUpdateStock)
		managed.GET("/alerts/low", c.GetLowStock)
	}
}
