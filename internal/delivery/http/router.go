package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	custommiddleware "moneytrail/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler   *AuthHandler
	RecordHandler *RecordHandler
	Sessions      *custommiddleware.Sessions
	Logger        zerolog.Logger
	AllowOrigins  []string
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommiddleware.RequestLogger(config.Logger))
	if len(config.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     config.AllowOrigins,
			AllowCredentials: true,
		}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "moneytrail-api",
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public, except session)
	auth := api.Group("/auth")
	{
		auth.GET("/providers", config.AuthHandler.Providers)
		auth.GET("/:provider/login", config.AuthHandler.Login)
		auth.GET("/:provider/callback", config.AuthHandler.Callback)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.GET("/session", config.AuthHandler.Session, config.Sessions.AuthMiddleware)
	}

	// Record routes (protected with AuthMiddleware)
	records := api.Group("/financial-records", config.Sessions.AuthMiddleware)
	{
		records.GET("", config.RecordHandler.List)
		records.POST("", config.RecordHandler.Create)
		records.GET("/export.xlsx", config.RecordHandler.Export)
		records.PATCH("/:id", config.RecordHandler.Update)
		records.DELETE("/:id", config.RecordHandler.Delete)
	}

	api.GET("/dashboard", config.RecordHandler.Dashboard, config.Sessions.AuthMiddleware)
	api.GET("/charts", config.RecordHandler.Chart, config.Sessions.AuthMiddleware)
}
