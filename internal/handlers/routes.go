package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/middleware"
	"stream-token-backend/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	PaymentIntentService services.PaymentIntentService
	TokenService         services.TokenService
	Config               *config.Config
}

// SetupRoutes configures all API routes. Endpoints accept every method and
// answer unsupported ones with 405 themselves, keeping CORS headers on it.
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	paymentIntentHandler := NewPaymentIntentHandler(cfg.PaymentIntentService)
	streamTokenHandler := NewStreamTokenHandler(cfg.TokenService)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	configured := map[string]bool{}
	if cfg.Config != nil {
		configured["payments"] = cfg.Config.Stripe.Configured()
		configured["chat"] = cfg.Config.Stream.Configured()
	}
	router.GET("/health", health(config.GetDeploymentMode(), configured))

	api := router.Group("/api")
	{
		paymentIntent := GinHandler(paymentIntentHandler.Handle, PaymentIntentCORS)
		api.Any("/payment-intent", paymentIntent)
		api.Any("/create-payment-intent", paymentIntent)

		api.Any("/stream-token", GinHandler(streamTokenHandler.Handle, StreamTokenCORS))
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine) {
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(gin.Recovery())
}
