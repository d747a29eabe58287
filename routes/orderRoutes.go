package routes

import (
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api *gin.RouterGroup, c *controllers.OrderController, optionalAuth gin.HandlerFunc, admin ...gin.HandlerFunc) {
	orders := api.Group("/orders")
	{
		orders.POST("", optionalAuth, c.CreateOrder)
		orders.GET("", optionalAuth, c.GetOrders)
		orders.GET("/queue", c.GetQueue)
		orders.GET("/:id", c.GetOrder)
	}

	managed := orders.Group("", admin...)
	{
		managed.PATCH("/:id/status", c.UpdateOrderStatus)
		managed.GET("/stats/financial", c.GetFinancialStats)
	}
}
