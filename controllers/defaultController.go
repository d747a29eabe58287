package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Chapa Quente API.

AUTH
- POST "/api/auth/register" - Create customer account
- POST "/api/auth/login" - Access customer account
- POST "/api/auth/guest" - Continue as guest

PRODUCTS
- GET "/api/products" - Catalogue with stock
- GET "/api/products/:id" - Product by ID
- POST, PUT, DELETE "/api/products[/:id]" - Manage catalogue (admin)

ORDERS
- POST "/api/orders" - Place an order
- GET "/api/orders" - List orders
- GET "/api/orders/queue" - Active kitchen queue
- GET "/api/orders/:id" - Order by ID
- PATCH "/api/orders/:id/status" - Update order status (admin)
- GET "/api/orders/stats/financial" - Revenue summary (admin)

STOCK
- GET "/api/stock" - Stock levels
- PUT "/api/stock/:productId", POST "/api/stock/batch" - Set stock (admin)
- GET "/api/stock/alerts/low" - Low stock alert (admin)

USERS
- GET, PUT "/api/users/me" - Profile
- POST "/api/users/loyalty/redeem" - Redeem loyalty reward

DELIVERY
- GET "/api/delivery/quote?lat=&lng=" - Delivery fee quote`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Health reports liveness only; it does not touch the database.
func Health(service string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   service,
		})
	}
}

func NotFound(ctx *gin.Context) {
	sendErrorResponse(ctx, http.StatusNotFound, msgRouteNotFound)
}
