package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/tracing"
)

type CreateCustomDomainRequest struct {
	Hostname string `json:"hostname"`
}

type CreateSubdomainRequest struct {
	Subdomain string `json:"subdomain"`
}

type DomainHandler struct {
	domainService interfaces.DomainService
}

func NewDomainHandler(domainService interfaces.DomainService) *DomainHandler {
	return &DomainHandler{
		domainService: domainService,
	}
}

// CreateCustomDomain attaches a customer-owned hostname to the platform
func (h *DomainHandler) CreateCustomDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.CreateCustomDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		var req CreateCustomDomainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		domain, err := h.domainService.CreateCustomDomain(ctx, userId, req.Hostname)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"domain": domain})
	}
}

// CreateSubdomain claims a label under the platform main domain
func (h *DomainHandler) CreateSubdomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.CreateSubdomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		var req CreateSubdomainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		domain, err := h.domainService.CreateSubdomain(ctx, userId, req.Subdomain)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"domain": domain})
	}
}

func (h *DomainHandler) ListDomains() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.ListDomains")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		domains, err := h.domainService.ListDomains(ctx, userId)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"domains": domains})
	}
}

func (h *DomainHandler) GetDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.GetDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		domain, err := h.domainService.GetDomain(ctx, c.Param("id"), userId)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"domain": domain})
	}
}

// VerifyDomain polls the provider and advances the domain state machine
func (h *DomainHandler) VerifyDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.VerifyDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		result, err := h.domainService.VerifyDomain(ctx, c.Param("id"), userId)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func (h *DomainHandler) DeleteDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainHandler.DeleteDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		if err := h.domainService.DeleteDomain(ctx, c.Param("id"), userId); err != nil {
			respondError(c, span, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
