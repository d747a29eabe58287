package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kariqs/chapaquente-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DeliveryController struct {
	delivery *services.DeliveryService
	log      *zap.Logger
}

func NewDeliveryController(delivery *services.DeliveryService, log *zap.Logger) *DeliveryController {
	return &DeliveryController{delivery: delivery, log: log}
}

func (c *DeliveryController) GetQuote(ctx *gin.Context) {
	lat, latErr := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(ctx.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, services.ErrInvalidCoordinates.Error())
		return
	}

	quote, err := c.delivery.Quote(ctx.Request.Context(), lat, lng)
	if err != nil {
		handleServiceError(ctx, c.log, err, "Failed to quote delivery")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, quote)
}
