package routes

import (
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func DefaultRoutes(server *gin.Engine, serviceName string) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.Health(serviceName))
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))
	server.NoRoute(controllers.NotFound)
}

func DeliveryRoutes(api *gin.RouterGroup, c *controllers.DeliveryController) {
	api.GET("/delivery/quote", c.GetQuote)
}
