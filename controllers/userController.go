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
	msgUserFetchFailed  = "Failed to fetch user"
	msgUserUpdateFailed = "Failed to update user"
	msgRedeemFailed     = "Failed to redeem reward"
)

type adminFlagBody struct {
	IsAdmin *bool `json:"is_admin"`
}

type UserController struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUserController(users *services.UserService, log *zap.Logger) *UserController {
	return &UserController{users: users, log: log}
}

func (c *UserController) GetMe(ctx *gin.Context) {
	user, err := c.users.Get(ctx.Request.Context(), middlewares.CurrentUser(ctx).UserID)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgUserFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) UpdateMe(ctx *gin.Context) {
	var data models.UpdateProfileData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := c.users.UpdateProfile(ctx.Request.Context(), middlewares.CurrentUser(ctx).UserID, data)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgUserUpdateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) RedeemLoyalty(ctx *gin.Context) {
	user, err := c.users.RedeemLoyalty(ctx.Request.Context(), middlewares.CurrentUser(ctx).UserID)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgRedeemFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":   "Reward redeemed! Your loyalty card has been reset.",
		"newPoints": user.LoyaltyPoints,
	})
}

func (c *UserController) GetUsers(ctx *gin.Context) {
	limit, ok := queryInt(ctx, "limit", services.DefaultUserLimit)
	if !ok {
		return
	}
	offset, ok := queryInt(ctx, "offset", 0)
	if !ok {
		return
	}

	users, err := c.users.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgUserFetchFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, users)
}

func (c *UserController) SetAdmin(ctx *gin.Context) {
	var body adminFlagBody
	if err := ctx.ShouldBindJSON(&body); err != nil || body.IsAdmin == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "is_admin is required")
		return
	}

	user, err := c.users.SetAdmin(ctx.Request.Context(), ctx.Param("id"), *body.IsAdmin)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgUserUpdateFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, user)
}
