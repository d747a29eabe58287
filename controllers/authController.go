package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/services"
	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgFailedToGenerateToken = "failed to generate token"
	msgRegistrationFailed    = "Failed to register user"
	msgLoginFailed           = "Failed to log in"
	msgGuestNameRequired     = "name is required"
)

// WelcomeMailer is satisfied by *utils.Mailer.
type WelcomeMailer interface {
	Enabled() bool
	SendWelcomeEmail(name, email string) error
}

type AuthController struct {
	users  *services.UserService
	jwt    config.JWTConfig
	mailer WelcomeMailer
	log    *zap.Logger
}

func NewAuthController(users *services.UserService, jwt config.JWTConfig, mailer WelcomeMailer, log *zap.Logger) *AuthController {
	return &AuthController{users: users, jwt: jwt, mailer: mailer, log: log}
}

func (c *AuthController) generateJWT(user *models.User) (string, error) {
	return utils.GenerateJWT(c.jwt.Secret, utils.TokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, c.jwt.TTL)
}

func (c *AuthController) Register(ctx *gin.Context) {
	var data models.RegisterData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := c.users.Register(ctx.Request.Context(), data)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgRegistrationFailed)
		return
	}

	token, err := c.generateJWT(user)
	if err != nil {
		c.log.Error(msgFailedToGenerateToken, zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	if c.mailer != nil && c.mailer.Enabled() {
		go func(name, email string) {
			if err := c.mailer.SendWelcomeEmail(name, email); err != nil {
				c.log.Warn("Welcome email not sent", zap.String("user_id", user.ID), zap.Error(err))
			}
		}(user.Name, user.Email)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"user": user, "token": token})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := c.users.Authenticate(ctx.Request.Context(), data)
	if err != nil {
		handleServiceError(ctx, c.log, err, msgLoginFailed)
		return
	}

	token, err := c.generateJWT(user)
	if err != nil {
		c.log.Error(msgFailedToGenerateToken, zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user, "token": token})
}

// Guest hands out an ephemeral identity. Nothing is stored and no token is
// issued, so guest orders are anonymous.
func (c *AuthController) Guest(ctx *gin.Context) {
	var data models.GuestData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgGuestNameRequired)
		return
	}

	guest := models.GuestUser{
		ID:      fmt.Sprintf("guest_%d", time.Now().UnixMilli()),
		Name:    name,
		IsGuest: true,
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": guest, "token": nil})
}
