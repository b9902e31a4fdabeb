package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nexload-backend/internal/shared/middleware"
	"nexload-backend/internal/shared/response"
	"nexload-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.FrontendOrigin),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupResourceRoutes(api, c)
	}

	setupAuthRoutes(router, c)

	return router
}

// ========================================
// RESOURCE ROUTES
// ========================================
func setupResourceRoutes(api *gin.RouterGroup, c *container.Container) {
	requireAuth := middleware.RequireAuth(c.JWTManager)

	// Public catalog
	api.GET("/resources", c.ResourceHandler.List)
	api.GET("/resources/:id", c.ResourceHandler.GetByID)
	api.GET("/resources/:id/download", c.ResourceHandler.Download)
	api.GET("/search", c.ResourceHandler.Search)
	api.GET("/stats", c.ResourceHandler.Stats)

	// Owner operations
	api.POST("/upload", requireAuth, c.ResourceHandler.Upload)
	api.POST("/upload/sign", requireAuth, c.ResourceHandler.SignUpload)
	api.GET("/user/resources", requireAuth, c.ResourceHandler.ListMine)
	api.PUT("/resources/:id", requireAuth, c.ResourceHandler.Update)
	api.DELETE("/resources/:id", requireAuth, c.ResourceHandler.Delete)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/auth")
	{
		auth.GET("/google", c.AuthHandler.Login)
		auth.GET("/google/callback", c.AuthHandler.Callback)
		auth.GET("/logout", c.AuthHandler.Logout)
		auth.GET("/current_user", middleware.OptionalAuth(c.JWTManager), c.AuthHandler.CurrentUser)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, gin.H{
			"status":    dbStatus,
			"database":  dbStatus,
			"cache":     cacheStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
