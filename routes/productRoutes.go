package routes

import (
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api *gin.RouterGroup, c *controllers.ProductController, admin ...gin.HandlerFunc) {
	products := api.Group("/products")
	{
		products.GET("", c.GetProducts)
		products.GET("/:id", c.GetProduct)
	}

	managed := products.Group("", admin...)
	{
		managed.POST("", c.CreateProduct)
		managed.PUT("/:id", c.UpdateProduct)
		managed.DELETE("/:id", c.DeleteProduct)
		managed.POST("/:id/image", c.UploadProductImage)
	}
}
