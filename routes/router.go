package routes

import (
	"time"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/Kariqs/chapaquente-api/controllers"
	"github.com/Kariqs/chapaquente-api/middlewares"
	"github.com/Kariqs/chapaquente-api/services"
	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer needs. Images and Mailer
// may be nil.
type Dependencies struct {
	Config   *config.Config
	Log      *zap.Logger
	Orders   *services.OrderService
	Reports  *services.ReportService
	Products *services.ProductService
	Stock    *services.StockLedger
	Users    *services.UserService
	Delivery *services.DeliveryService
	Images   utils.ImageStore
	Mailer   controllers.WelcomeMailer
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}
	return c
}

func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		middlewares.RequestLogger(deps.Log.Named("http")),
		middlewares.Metrics(),
		cors.New(corsConfig(cfg.CORS)),
	)

	requireAuth := middlewares.RequireAuth(cfg.JWT.Secret)
	optionalAuth := middlewares.OptionalAuth(cfg.JWT.Secret)
	requireAdmin := middlewares.RequireAdmin()

	DefaultRoutes(server, cfg.Server.ServiceName)

	api := server.Group("/api")
	AuthRoutes(api, controllers.NewAuthController(deps.Users, cfg.JWT, deps.Mailer, deps.Log))
	ProductRoutes(api, controllers.NewProductController(deps.Products, deps.Images, deps.Log), requireAuth, requireAdmin)
	OrderRoutes(api, controllers.NewOrderController(deps.Orders, deps.Reports, deps.Log), optionalAuth, requireAuth, requireAdmin)
	StockRoutes(api, controllers.NewStockController(deps.Stock, deps.Log), requireAuth, requireAdmin)
	UserRoutes(api, controllers.NewUserController(deps.Users, deps.Log), requireAuth, requireAdmin)
	DeliveryRoutes(api, controllers.NewDeliveryController(deps.Delivery, deps.Log))

	return server
}
