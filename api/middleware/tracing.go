package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/funnelhub/domainstack/internal/tracing"
)

// TracingMiddleware creates a new span for each request and adds common tags
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)
		tracing.SetDefaultRestSpanTags(ctx, span)

		if id := c.Param("id"); id != "" {
			tracing.TagEntity(span, id)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
