package handlers

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/tracing"
)

type FunnelHandler struct {
	domainService interfaces.DomainService
}

func NewFunnelHandler(domainService interfaces.DomainService) *FunnelHandler {
	return &FunnelHandler{
		domainService: domainService,
	}
}

func (h *FunnelHandler) LinkDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "FunnelHandler.LinkDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		link, err := h.domainService.LinkFunnelToDomain(ctx, c.Param("funnelId"), c.Param("domainId"), userId)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"link": link})
	}
}

func (h *FunnelHandler) UnlinkDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "FunnelHandler.UnlinkDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		if err := h.domainService.UnlinkFunnelFromDomain(ctx, c.Param("funnelId"), c.Param("domainId"), userId); err != nil {
			respondError(c, span, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func (h *FunnelHandler) ListDomains() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "FunnelHandler.ListDomains")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		userId, ok := callerUserId(c)
		if !ok {
			return
		}

		links, err := h.domainService.ListFunnelDomains(ctx, c.Param("funnelId"), userId)
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"links": links})
	}
}

// PublicFunnel serves the unauthenticated hostname-to-funnel resolution used
// by the edge. The hostname comes from the Host header unless overridden by
// a query parameter.
func (h *FunnelHandler) PublicFunnel() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "FunnelHandler.PublicFunnel")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		host := c.Query("hostname")
		if host == "" {
			host = c.Request.Host
			// Host headers can carry an explicit port
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
		}

		funnel, err := h.domainService.GetPublicFunnel(ctx, host, c.Param("funnelId"))
		if err != nil {
			respondError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"funnel": funnel})
	}
}
