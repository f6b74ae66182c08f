package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

type CustomContext struct {
	AppSource string
	UserId    string
}

var customContextKey = "CUSTOM_CONTEXT"

// UserIdHeaders are checked in order when resolving the caller identity.
var UserIdHeaders = []string{"X-FUNNELHUB-USER-ID", "X-USER-ID"}

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource: appSource,
		UserId:    c.GetString("UserId"),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetUserIdFromContext(ctx context.Context) string {
	return GetContext(ctx).UserId
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}
