package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	er "github.com/funnelhub/domainstack/internal/errors"
	"github.com/funnelhub/domainstack/internal/tracing"
)

// respondError maps the error taxonomy onto HTTP statuses. Unknown errors
// become opaque 500s so internals never leak.
func respondError(c *gin.Context, span opentracing.Span, err error) {
	tracing.TraceErr(span, err)

	kind, ok := er.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case er.KindValidation, er.KindState:
		status = http.StatusBadRequest
	case er.KindConflict:
		status = http.StatusConflict
	case er.KindNotFound:
		status = http.StatusNotFound
	case er.KindProvider:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func callerUserId(c *gin.Context) (string, bool) {
	userId := c.GetString("UserId")
	if userId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user id"})
		return "", false
	}
	return userId, true
}
