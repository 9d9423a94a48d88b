package router

import (
	"github.com/gin-gonic/gin"

	"github.com/blacks1k-sc/ParcelVision/internal/handler"
	"github.com/blacks1k-sc/ParcelVision/internal/middleware"
	"github.com/blacks1k-sc/ParcelVision/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	parcelH *handler.ParcelHandler,
	valetH *handler.ValetHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Valet polling routes. Unversioned: the paths are a wire contract with
	// the browser polling script.
	valet := r.Group("/valet")
	valet.GET("/pending", valetH.Pending)
	valet.POST("/complete", valetH.Complete)
	valet.GET("/queue-status", valetH.QueueStatus)
	valet.POST("/clear-queue", middleware.AuthMiddleware(authSvc), valetH.ClearQueue)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes. Open when no operator PIN is configured.
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	parcels := protected.Group("/parcels")
	parcels.POST("/upload", parcelH.Upload)
	parcels.GET("", parcelH.List)
	parcels.GET("/export", parcelH.Export)

	return r
}
