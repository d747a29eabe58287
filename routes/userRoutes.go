package routes

import (
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/gin-gonic/gin"
)

func UserRoutes(api *gin.RouterGroup, c *controllers.UserController, auth gin.HandlerFunc, admin gin.HandlerFunc) {
	users := api.Group("/users", auth)
	{
		users.GET("/me", c.GetMe)
		users.PUT("/me", c.UpdateMe)
		users.POST("/loyalty/redeem", c.RedeemLoyalty)
		users.GET("", admin, c.GetUsers)
		users.PATCH("/:id/admin", admin, c.SetAdmin)
	}
}
