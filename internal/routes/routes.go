// Package routes defines HTTP routes for the inventory service.
package routes

import (
	"github.com/GunarsK-portfolio/inventory-service/internal/handlers"
	"github.com/GunarsK-portfolio/inventory-service/internal/metrics"
	"github.com/GunarsK-portfolio/inventory-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies bundles what the router needs.
type Dependencies struct {
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductHandler
	Health         *handlers.HealthHandler
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	LoadSession    gin.HandlerFunc
	AllowedOrigins []string
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, deps Dependencies) {
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	router.GET("/health", deps.Health.Check)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	v1.Use(
		middleware.CSRF(middleware.CSRFConfig{
			AllowedOrigins: deps.AllowedOrigins,
			SessionCookie:  handlers.SessionCookie,
		}),
		deps.LoadSession,
	)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/logout", deps.Auth.Logout)
		auth.GET("/me", deps.Auth.Me)
	}

	authenticated := v1.Group("", middleware.RequireSession())
	{
		authenticated.GET("/products/search", deps.Products.Search)
		authenticated.POST("/products/search", deps.Products.Search)
		authenticated.GET("/products/:id", deps.Products.Get)
		authenticated.PUT("/products/:id", deps.Products.Update)
		authenticated.GET("/history", deps.Products.History)
	}

	admin := v1.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/products", deps.Products.List)
		admin.POST("/products", deps.Products.Create)
		admin.PUT("/products/:id", deps.Products.Edit)
		admin.DELETE("/products/:id", deps.Products.Delete)
	}
}
