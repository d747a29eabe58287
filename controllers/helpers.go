package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/chapaquente-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Standard response messages
const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgRouteNotFound       = "Route not found"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingItems),
		errors.Is(err, services.ErrMissingCustomerName),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrNegativeQuantity),
		errors.Is(err, services.ErrEmptyBatch),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrMissingCredentials),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrCurrentPasswordNeeded),
		errors.Is(err, services.ErrNotEnoughPoints),
		errors.Is(err, services.ErrInvalidCoordinates):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// handleServiceError answers with the status a service error maps to.
// Unmapped errors are logged and hidden behind fallback.
func handleServiceError(ctx *gin.Context, log *zap.Logger, err error, fallback string) {
	status := statusForError(err)
	if status != http.StatusInternalServerError {
		sendErrorResponse(ctx, status, err.Error())
		return
	}

	_ = ctx.Error(err)
	log.Error(fallback, zap.Error(err), zap.String("path", ctx.FullPath()))
	sendErrorResponse(ctx, status, fallback)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an optional integer query parameter.
func queryInt(ctx *gin.Context, name string, fallback int) (int, bool) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return value, true
}
