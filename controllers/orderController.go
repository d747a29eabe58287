package controllers

import (
	"net/http"

	"github.com/Kariqs/chapaquente-api/middlewares"
	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgOrderCreateFailed  = "Failed to create order"
	msgOrderFetchFailed   = "Failed to fetch orders"
	msgStatusUpdateFailed = "Failed to update order status"
	msgStatsFailed        = "Failed to compute financial stats"
	msgInvalidStatus      = "status must be one of received, preparing, ready, delivered, cancelled"
)

type OrderController struct {
	orders  *services.OrderService
	reports *services.ReportService
	log     *zap.Logger
}

func NewOrderController(orders *services.OrderService, reports *services.ReportService, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, reports: reports, log: log}
}

// CreateOrder accepts guests and logged-in customers alike; only the latter
// earn a loyalty stamp.
func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var input models.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var userID *string
	if claims := middlewares.CurrentUser(ctx); claims != nil {
		id := claims.UserID
		userID = &id
	}

	order, err := c.orders.Create(ctx.Request.Context(), input, userID)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgOrderCreateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, order)
}

// GetOrders scopes the listing to the caller: admins see everything, other
// authenticated users only their own orders.
func (c *OrderController) GetOrders(ctx *gin.Context) {
	filter := models.OrderFilter{Status: models.OrderStatus(ctx.Query("status"))}
	if filter.Status != "" && !filter.Status.IsValid() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	var ok bool
	if filter.Limit, ok = queryInt(ctx, "limit", services.DefaultOrderLimit); !ok {
		return
	}
	if filter.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return
	}

	if claims := middlewares.CurrentUser(ctx); claims != nil && !claims.IsAdmin {
		id := claims.UserID
		filter.UserID = &id
	}

	orders, err := c.orders.List(ctx.Request.Context(), filter)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgOrderFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (c *OrderController) GetQueue(ctx *gin.Context) {
	queue, err := c.orders.Queue(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, c.log, err, msgOrderFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"queue": queue})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	order, err := c.orders.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, c.log, err, msgOrderFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var update models.StatusUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil || !update.Status.IsValid() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	order, err := c.orders.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), update.Status)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStatusUpdateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":        order.ID,
		"status":    order.Status,
		"updatedAt": order.UpdatedAt,
	})
}

func (c *OrderController) GetFinancialStats(ctx *gin.Context) {
	stats, err := c.reports.FinancialStats(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStatsFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, stats)
}
