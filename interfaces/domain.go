package interfaces

import (
	"context"

	"github.com/funnelhub/domainstack/internal/models"
)

// DomainService owns the domain lifecycle state machine.
type DomainService interface {
	CreateCustomDomain(ctx context.Context, ownerID, hostname string) (*models.Domain, error)
	CreateSubdomain(ctx context.Context, ownerID, label string) (*models.Domain, error)
	VerifyDomain(ctx context.Context, domainID, ownerID string) (*VerificationResult, error)
	DeleteDomain(ctx context.Context, domainID, ownerID string) error
	GetDomain(ctx context.Context, domainID, ownerID string) (*models.Domain, error)
	ListDomains(ctx context.Context, ownerID string) ([]models.Domain, error)
	LinkFunnelToDomain(ctx context.Context, funnelID, domainID, ownerID string) (*models.FunnelDomain, error)
	UnlinkFunnelFromDomain(ctx context.Context, funnelID, domainID, ownerID string) error
	ListFunnelDomains(ctx context.Context, funnelID, ownerID string) ([]models.FunnelDomain, error)
	GetPublicFunnel(ctx context.Context, hostname, funnelID string) (*models.Funnel, error)
}

// VerificationResult is what a verification poll hands back to the caller.
type VerificationResult struct {
	Domain        *models.Domain `json:"domain"`
	Message       string         `json:"message"`
	IsFullyActive bool           `json:"isFullyActive"`
}
