package routes

import (
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, c *controllers.AuthController) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Register)
		auth.POST("/login", c.Login)
		auth.POST("/guest", c.Guest)
	}
}
