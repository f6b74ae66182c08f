package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/funnelhub/domainstack/api/handlers"
	"github.com/funnelhub/domainstack/api/middleware"
	"github.com/funnelhub/domainstack/internal/tracing"
	"github.com/funnelhub/domainstack/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	apiHandlers := handlers.InitHandlers(s.DomainService)

	// Health and status endpoints (no auth)
	r.GET("/health", handlers.HealthCheck)
	r.GET("/status", handlers.Status(s.CloudflareService))

	// Unauthenticated serving path used by the edge to resolve hostnames
	public := r.Group("/public")
	public.Use(middleware.TracingMiddleware())
	{
		public.GET("/funnels/:funnelId", apiHandlers.Funnels.PublicFunnel())
	}

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-FUNNELHUB-API-KEY",
		ValidAPIKey: apikey,
	})

	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.UserIdMiddleware())
	api.Use(middleware.CustomContextMiddleware("domainstack"))
	api.Use(middleware.TracingMiddleware())
	{
		domains := api.Group("/domains")
		{
			domains.GET("", apiHandlers.Domains.ListDomains())
			domains.POST("", apiHandlers.Domains.CreateCustomDomain())
			domains.GET("/:id", apiHandlers.Domains.GetDomain())
			domains.POST("/:id/verify", apiHandlers.Domains.VerifyDomain())
			domains.DELETE("/:id", apiHandlers.Domains.DeleteDomain())
		}

		subdomains := api.Group("/subdomains")
		{
			subdomains.POST("", apiHandlers.Domains.CreateSubdomain())
		}

		funnels := api.Group("/funnels")
		{
			funnels.GET("/:funnelId/domains", apiHandlers.Funnels.ListDomains())
			funnels.POST("/:funnelId/domains/:domainId", apiHandlers.Funnels.LinkDomain())
			funnels.DELETE("/:funnelId/domains/:domainId", apiHandlers.Funnels.UnlinkDomain())
		}
	}
}
