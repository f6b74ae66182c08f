package tracing

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/funnelhub/domainstack/internal/utils"
)

const (
	SpanTagOwnerId   = "owner-id"
	SpanTagAppSource = "app-source"
	SpanTagEntityId  = "entity-id"
	SpanTagHostname  = "hostname"
	SpanTagComponent = "component"
)

const (
	SpanTagComponentPostgresRepository = "postgresRepository"
	SpanTagComponentRest               = "rest"
	SpanTagComponentService            = "service"
	SpanTagComponentProvisioning       = "provisioningClient"
	SpanTagComponentCache              = "cache"
)

func StartHttpServerTracerSpanWithHeader(ctx context.Context, operationName string, headers http.Header) (context.Context, opentracing.Span) {
	spanCtx, err := opentracing.GlobalTracer().Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(headers))
	if err != nil {
		serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
		opentracing.GlobalTracer().Inject(serverSpan.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(headers))
		return opentracing.ContextWithSpan(ctx, serverSpan), serverSpan
	}

	serverSpan := opentracing.GlobalTracer().StartSpan(operationName, ext.RPCServerOption(spanCtx))
	return opentracing.ContextWithSpan(ctx, serverSpan), serverSpan
}

func setDefaultSpanTags(ctx context.Context, span opentracing.Span) {
	if userId := utils.GetUserIdFromContext(ctx); userId != "" {
		span.SetTag(SpanTagOwnerId, userId)
	}
	if appSource := utils.GetAppSourceFromContext(ctx); appSource != "" {
		span.SetTag(SpanTagAppSource, appSource)
	}
}

func SetDefaultRestSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentRest(span)
}

func SetDefaultServiceSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentService(span)
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	ext.LogError(span, err, fields...)
}

func LogObjectAsJson(span opentracing.Span, name string, object any) {
	if object == nil {
		span.LogFields(log.String(name, "nil"))
	}
	jsonObject, err := json.Marshal(object)
	if err == nil {
		span.LogFields(log.String(name, string(jsonObject)))
	} else {
		span.LogFields(log.Object(name, object))
	}
}

func TagComponentPostgresRepository(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentPostgresRepository)
}

func TagComponentRest(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentRest)
}

func TagComponentService(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentService)
}

func TagComponentProvisioning(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentProvisioning)
}

func TagComponentCache(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentCache)
}

func TagOwner(span opentracing.Span, ownerId string) {
	if ownerId != "" {
		span.SetTag(SpanTagOwnerId, ownerId)
	}
}

func TagEntity(span opentracing.Span, entityId string) {
	if entityId != "" {
		span.SetTag(SpanTagEntityId, entityId)
	}
}

func TagHostname(span opentracing.Span, hostname string) {
	if hostname != "" {
		span.SetTag(SpanTagHostname, hostname)
	}
}

func RecoveryWithJaeger(tracer opentracing.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				span := tracer.StartSpan("panic-recovery")
				defer span.Finish()

				buf := make([]byte, 4096)
				stackSize := runtime.Stack(buf, false)
				span.LogKV(
					"event", "error",
					"error.object", r,
					"stack", string(buf[:stackSize]),
				)
				span.SetTag("error", true)
			}
		}()
		c.Next()
	}
}
