package handlers

import (
	"ecoroute/internal/logger"
	"ecoroute/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries HTTP-layer settings that come from configuration.
type Config struct {
	// FrontendOrigin is the CORS allow-list entry for the web client.
	// Empty means allow any origin (development).
	FrontendOrigin string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerRouteRoutes(router)
	h.registerAdminRoutes(router)

	// Live stats stream, served on the same port via HTTP upgrade
	router.GET("/ws/stats", h.wsStats)

	return router
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if h.cfg.FrontendOrigin != "" {
		cfg.AllowOrigins = []string{h.cfg.FrontendOrigin}
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)

		profile := auth.Group("/profile", h.userIDMiddleware)
		{
			profile.GET("", h.getProfile)
			profile.PUT("", h.updateProfile)
		}
	}
}

// Route CRUD is public per the API contract; only auth and admin surfaces
// require a bearer token.
func (h *Handler) registerRouteRoutes(r *gin.Engine) {
	routes := r.Group("/api/routes")
	{
		routes.GET("", h.listRoutes)
		routes.GET("/region/:regionCode", h.listRoutesByRegion)
		routes.GET("/:id", h.getRoute)
		routes.POST("", h.createRoute)
		routes.PUT("/:id", h.updateRoute)
		routes.DELETE("/:id", h.deleteRoute)
	}
}

func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", h.userIDMiddleware, h.adminOnlyMiddleware)
	{
		admin.GET("/stats", h.adminStats)
		admin.GET("/users", h.adminUsers)
		admin.GET("/system", h.adminSystem)
		admin.GET("/routes", h.adminRoutes)
	}
}
