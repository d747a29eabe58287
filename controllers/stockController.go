package controllers

import (
	"net/http"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgStockFetchFailed  = "Failed to fetch stock"
	msgStockUpdateFailed = "Failed to update stock"
	msgQuantityRequired  = "quantity is required and must not be negative"
)

type stockQuantityBody struct {
	Quantity *int `json:"quantity"`
}

type stockBatchBody struct {
	Updates []models.StockUpdate `json:"updates" binding:"dive"`
}

type StockController struct {
	stock *services.StockLedger
	log   *zap.Logger
}

func NewStockController(stock *services.StockLedger, log *zap.Logger) *StockController {
	return &StockController{stock: stock, log: log}
}

func (c *StockController) GetStock(ctx *gin.Context) {
	levels, err := c.stock.List(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStockFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, levels)
}

func (c *StockController) GetProductStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	level, err := c.stock.Get(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStockFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, level)
}

func (c *StockController) UpdateProductStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	var body stockQuantityBody
	if err := ctx.ShouldBindJSON(&body); err != nil || body.Quantity == nil || *body.Quantity < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgQuantityRequired)
		return
	}

	stock, err := c.stock.Set(ctx.Request.Context(), id, *body.Quantity)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStockUpdateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, stock)
}

// BatchUpdateStock applies the whole list or nothing.
func (c *StockController) BatchUpdateStock(ctx *gin.Context) {
	var body stockBatchBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	count, err := c.stock.BatchSet(ctx.Request.Context(), body.Updates)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStockUpdateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Stock updated", "count": count})
}

func (c *StockController) GetLowStock(ctx *gin.Context) {
	threshold, ok := queryInt(ctx, "threshold", services.DefaultLowStockThreshold)
	if !ok {
		return
	}

	levels, err := c.stock.LowStock(ctx.Request.Context(), threshold)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgStockFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"lowStock": levels, "threshold": threshold})
}
