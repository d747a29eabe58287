package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

func bearerToken(ctx *gin.Context) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(ctx.GetHeader("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token claims under "user".
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication token required"})
			return
		}

		claims, err := utils.ParseJWT(secret, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set(userKey, &claims)
		ctx.Next()
	}
}

// OptionalAuth attaches the claims of a valid token and otherwise lets the
// request through as anonymous.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if claims, err := utils.ParseJWT(secret, token); err == nil {
				ctx.Set(userKey, &claims)
			}
		}
		ctx.Next()
	}
}

// CurrentUser returns the claims stored by RequireAuth or OptionalAuth, or
// nil for anonymous requests.
func CurrentUser(ctx *gin.Context) *utils.TokenClaims {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*utils.TokenClaims)
	return claims
}
