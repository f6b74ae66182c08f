package interfaces

import (
	"context"

	"github.com/funnelhub/domainstack/internal/models"
)

// CloudflareService is the contract against the CDN/DNS/TLS provider.
// Delete operations must return errors.ErrProviderResourceNotFound when the
// resource is already gone so callers can treat teardown as idempotent.
type CloudflareService interface {
	IsConfigured() bool
	Config() ProvisioningConfig
	CreateCustomHostname(ctx context.Context, hostname string) (*CustomHostname, error)
	GetCustomHostname(ctx context.Context, hostnameID string) (*CustomHostname, error)
	DeleteCustomHostname(ctx context.Context, hostnameID string) error
	CreateSubdomainRecord(ctx context.Context, label string) (*DNSRecord, error)
	DeleteDNSRecord(ctx context.Context, zoneID, recordID string) error
}

type ProvisioningConfig struct {
	ZoneID             string
	SaaSTarget         string
	PlatformMainDomain string
}

// CustomHostname mirrors the provider's custom hostname resource.
type CustomHostname struct {
	ID                    string                `json:"id"`
	Hostname              string                `json:"hostname"`
	Status                string                `json:"status"`
	OwnershipVerification OwnershipVerification `json:"ownership_verification"`
	SSL                   SSLDetails            `json:"ssl"`
}

type OwnershipVerification struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SSLDetails struct {
	Status            string                       `json:"status"`
	ValidationRecords []models.SSLValidationRecord `json:"validation_records"`
}

type DNSRecord struct {
	ID      string `json:"id"`
	ZoneID  string `json:"zone_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Provider-side hostname status values we branch on.
const (
	HostnameStatusActive = "active"

	SSLProviderStatusActive            = "active"
	SSLProviderStatusPendingValidation = "pending_validation"
)
