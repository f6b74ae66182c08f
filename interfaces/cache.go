package interfaces

import "context"

// DomainCacheInvalidator drops cached domain reads for an owner after a
// mutation. Best-effort: callers log failures and move on.
type DomainCacheInvalidator interface {
	InvalidateDomains(ctx context.Context, ownerID string) error
}
