// Package cache invalidates owner-scoped domain reads after mutations.
// Invalidation is best-effort: a miss here only makes a later read slower.
package cache

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/tracing"
)

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// NewClient creates a Redis client from the configured URL. Returns nil
// when Redis is not configured; the invalidator degrades to a no-op.
func NewClient(cfg RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}

	return client, nil
}

type redisInvalidator struct {
	client *redis.Client
}

func NewInvalidator(client *redis.Client) interfaces.DomainCacheInvalidator {
	return &redisInvalidator{
		client: client,
	}
}

func ownerDomainsKey(ownerID string) string {
	return fmt.Sprintf("domains:owner:%s", ownerID)
}

func (i *redisInvalidator) InvalidateDomains(ctx context.Context, ownerID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CacheInvalidator.InvalidateDomains")
	defer span.Finish()
	tracing.TagComponentCache(span)
	tracing.TagOwner(span, ownerID)

	if i.client == nil {
		return nil
	}

	err := i.client.Del(ctx, ownerDomainsKey(ownerID)).Err()
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "redis del"))
		return err
	}

	return nil
}
