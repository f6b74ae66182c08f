package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funnelhub/domainstack/interfaces"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status reports whether the provisioning provider is usable.
func Status(cloudflare interfaces.CloudflareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":             "ok",
			"providerConfigured": cloudflare.IsConfigured(),
		})
	}
}
