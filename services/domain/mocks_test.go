package domain

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/models"
)

type mockDomainRepository struct {
	mock.Mock
}

func (m *mockDomainRepository) Create(ctx context.Context, domain *models.Domain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *mockDomainRepository) Update(ctx context.Context, domain *models.Domain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *mockDomainRepository) GetByID(ctx context.Context, domainID, ownerID string) (*models.Domain, error) {
	args := m.Called(ctx, domainID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Domain), args.Error(1)
}

func (m *mockDomainRepository) GetByHostname(ctx context.Context, hostname string) (*models.Domain, error) {
	args := m.Called(ctx, hostname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Domain), args.Error(1)
}

func (m *mockDomainRepository) ExistsByHostname(ctx context.Context, hostname string) (bool, error) {
	args := m.Called(ctx, hostname)
	return args.Bool(0), args.Error(1)
}

func (m *mockDomainRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Domain, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Domain), args.Error(1)
}

func (m *mockDomainRepository) Delete(ctx context.Context, domainID string) error {
	args := m.Called(ctx, domainID)
	return args.Error(0)
}

type mockFunnelRepository struct {
	mock.Mock
}

func (m *mockFunnelRepository) GetByID(ctx context.Context, funnelID, ownerID string) (*models.Funnel, error) {
	args := m.Called(ctx, funnelID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Funnel), args.Error(1)
}

func (m *mockFunnelRepository) GetByIDAnyOwner(ctx context.Context, funnelID string) (*models.Funnel, error) {
	args := m.Called(ctx, funnelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Funnel), args.Error(1)
}

type mockFunnelDomainRepository struct {
	mock.Mock
}

func (m *mockFunnelDomainRepository) Create(ctx context.Context, link *models.FunnelDomain) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockFunnelDomainRepository) Exists(ctx context.Context, funnelID, domainID string) (bool, error) {
	args := m.Called(ctx, funnelID, domainID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFunnelDomainRepository) GetLink(ctx context.Context, funnelID, domainID string) (*models.FunnelDomain, error) {
	args := m.Called(ctx, funnelID, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FunnelDomain), args.Error(1)
}

func (m *mockFunnelDomainRepository) GetByFunnel(ctx context.Context, funnelID string) ([]models.FunnelDomain, error) {
	args := m.Called(ctx, funnelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FunnelDomain), args.Error(1)
}

func (m *mockFunnelDomainRepository) Delete(ctx context.Context, funnelID, domainID string) (int64, error) {
	args := m.Called(ctx, funnelID, domainID)
	return args.Get(0).(int64), args.Error(1)
}

type mockCloudflareService struct {
	mock.Mock
}

func (m *mockCloudflareService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockCloudflareService) Config() interfaces.ProvisioningConfig {
	args := m.Called()
	return args.Get(0).(interfaces.ProvisioningConfig)
}

func (m *mockCloudflareService) CreateCustomHostname(ctx context.Context, hostname string) (*interfaces.CustomHostname, error) {
	args := m.Called(ctx, hostname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.CustomHostname), args.Error(1)
}

func (m *mockCloudflareService) GetCustomHostname(ctx context.Context, hostnameID string) (*interfaces.CustomHostname, error) {
	args := m.Called(ctx, hostnameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.CustomHostname), args.Error(1)
}

func (m *mockCloudflareService) DeleteCustomHostname(ctx context.Context, hostnameID string) error {
	args := m.Called(ctx, hostnameID)
	return args.Error(0)
}

func (m *mockCloudflareService) CreateSubdomainRecord(ctx context.Context, label string) (*interfaces.DNSRecord, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DNSRecord), args.Error(1)
}

func (m *mockCloudflareService) DeleteDNSRecord(ctx context.Context, zoneID, recordID string) error {
	args := m.Called(ctx, zoneID, recordID)
	return args.Error(0)
}

type mockCacheInvalidator struct {
	mock.Mock
}

func (m *mockCacheInvalidator) InvalidateDomains(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}
