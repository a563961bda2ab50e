package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace-v2/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/healthz", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Listing fee (public read; fee changes require an API key)
		v1.GET("/market/fee", handler.GetListingFee)
		v1.PUT("/market/fee", middleware.APIKeyAuth(authCfg), handler.UpdateListingFee)

		// Market item mutations (the JWT subject is the acting account)
		v1.POST("/market/items", middleware.Auth(authCfg), handler.CreateItem)
		v1.POST("/market/items/:id/sale", middleware.Auth(authCfg), handler.ExecuteSale)
		v1.POST("/market/items/:id/cancel", middleware.Auth(authCfg), handler.CancelItem)

		// Market item queries (public read access)
		v1.GET("/market/items/available", handler.GetAvailableItems)
		v1.GET("/market/items/latest", handler.GetLatestItemByToken)
		v1.GET("/market/items/:id", handler.GetItem)
		v1.GET("/market/stats", handler.GetStats)

		// Items by the caller's role (requires authentication)
		v1.GET("/market/items", middleware.Auth(authCfg), handler.GetItemsByRole)

		// Uploads (requires authentication)
		v1.POST("/uploads", middleware.Auth(authCfg), handler.UploadFile)
		v1.POST("/uploads/json", middleware.Auth(authCfg), handler.UploadJSON)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
	}
}
