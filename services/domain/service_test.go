package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/enum"
	er "github.com/funnelhub/domainstack/internal/errors"
	"github.com/funnelhub/domainstack/internal/logger"
	"github.com/funnelhub/domainstack/internal/models"
	"github.com/funnelhub/domainstack/internal/repository"
	"github.com/funnelhub/domainstack/internal/utils"
)

const (
	testOwner  = "user_1"
	testDomain = "dom_abc123"
	testFunnel = "fnl_abc123"
)

type serviceFixture struct {
	domains       *mockDomainRepository
	funnels       *mockFunnelRepository
	funnelDomains *mockFunnelDomainRepository
	cloudflare    *mockCloudflareService
	cache         *mockCacheInvalidator
	service       interfaces.DomainService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		domains:       &mockDomainRepository{},
		funnels:       &mockFunnelRepository{},
		funnelDomains: &mockFunnelDomainRepository{},
		cloudflare:    &mockCloudflareService{},
		cache:         &mockCacheInvalidator{},
	}

	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()

	repos := &repository.Repositories{
		DomainRepository:       f.domains,
		FunnelRepository:       f.funnels,
		FunnelDomainRepository: f.funnelDomains,
	}
	f.service = NewDomainService(repos, f.cloudflare, f.cache, appLogger)
	return f
}

func providerConfig() interfaces.ProvisioningConfig {
	return interfaces.ProvisioningConfig{
		ZoneID:             "zone1",
		SaaSTarget:         "edge.funnelhub.io",
		PlatformMainDomain: "funnelhub.site",
	}
}

func TestCreateCustomDomain(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects bare root domain", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateCustomDomain(ctx, testOwner, "example.com")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindValidation))
		assert.Contains(t, err.Error(), "please provide a subdomain")
		f.cloudflare.AssertNotCalled(t, "CreateCustomHostname", mock.Anything, mock.Anything)
		f.domains.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed hostname", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateCustomDomain(ctx, testOwner, "not a hostname")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindValidation))
	})

	t.Run("rejects taken hostname before provider call", func(t *testing.T) {
		f := newFixture()
		f.domains.On("ExistsByHostname", mock.Anything, "www.example.com").Return(true, nil)

		_, err := f.service.CreateCustomDomain(ctx, testOwner, "www.example.com")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindConflict))
		f.cloudflare.AssertNotCalled(t, "CreateCustomHostname", mock.Anything, mock.Anything)
	})

	t.Run("fails when provider unconfigured", func(t *testing.T) {
		f := newFixture()
		f.domains.On("ExistsByHostname", mock.Anything, "www.example.com").Return(false, nil)
		f.cloudflare.On("IsConfigured").Return(false)

		_, err := f.service.CreateCustomDomain(ctx, testOwner, "www.example.com")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindProvider))
		f.domains.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("provider failure aborts before persistence", func(t *testing.T) {
		f := newFixture()
		f.domains.On("ExistsByHostname", mock.Anything, "www.example.com").Return(false, nil)
		f.cloudflare.On("IsConfigured").Return(true)
		f.cloudflare.On("CreateCustomHostname", mock.Anything, "www.example.com").Return(nil, assert.AnError)

		_, err := f.service.CreateCustomDomain(ctx, testOwner, "www.example.com")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindProvider))
		f.domains.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persists pending domain with verification material", func(t *testing.T) {
		f := newFixture()
		f.domains.On("ExistsByHostname", mock.Anything, "www.example.com").Return(false, nil)
		f.cloudflare.On("IsConfigured").Return(true)
		f.cloudflare.On("Config").Return(providerConfig())
		f.cloudflare.On("CreateCustomHostname", mock.Anything, "www.example.com").Return(&interfaces.CustomHostname{ID: "ch1"}, nil)
		f.cloudflare.On("GetCustomHostname", mock.Anything, "ch1").Return(&interfaces.CustomHostname{
			ID:       "ch1",
			Hostname: "www.example.com",
			Status:   "pending",
			OwnershipVerification: interfaces.OwnershipVerification{
				Type:  "txt",
				Name:  "_cf-custom-hostname.www.example.com",
				Value: "tok-123",
			},
			SSL: interfaces.SSLDetails{
				Status: "pending_validation",
				ValidationRecords: []models.SSLValidationRecord{
					{TxtName: "_acme-challenge.www.example.com", TxtValue: "acme-tok"},
				},
			},
		}, nil)
		f.domains.On("Create", mock.Anything, mock.AnythingOfType("*models.Domain")).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		domain, err := f.service.CreateCustomDomain(ctx, testOwner, "WWW.Example.com")

		require.NoError(t, err)
		assert.Equal(t, "www.example.com", domain.Hostname)
		assert.Equal(t, enum.DomainTypeCustom, domain.Type)
		assert.Equal(t, enum.DomainStatusPending, domain.Status)
		assert.Equal(t, enum.SSLStatusPending, domain.SSLStatus)
		assert.Equal(t, "ch1", *domain.ProviderHostnameID)
		assert.Equal(t, "zone1", *domain.ProviderZoneID)
		assert.Equal(t, "tok-123", domain.VerificationToken)
		require.NotNil(t, domain.OwnershipVerification)
		// provider-appended root domain suffix is stripped for the customer
		assert.Equal(t, "_cf-custom-hostname.www", domain.OwnershipVerification.Name)
		assert.Equal(t, "tok-123", domain.OwnershipVerification.RecordValue)
		require.NotNil(t, domain.DNSInstructions)
		assert.Equal(t, "CNAME", domain.DNSInstructions.RecordType)
		assert.Equal(t, "edge.funnelhub.io", domain.DNSInstructions.Target)
		require.Len(t, domain.SSLValidationRecords, 1)
		f.cache.AssertCalled(t, "InvalidateDomains", mock.Anything, testOwner)
	})

	t.Run("store conflict surfaces as conflict error", func(t *testing.T) {
		f := newFixture()
		f.domains.On("ExistsByHostname", mock.Anything, "www.example.com").Return(false, nil)
		f.cloudflare.On("IsConfigured").Return(true)
		f.cloudflare.On("Config").Return(providerConfig())
		f.cloudflare.On("CreateCustomHostname", mock.Anything, "www.example.com").Return(&interfaces.CustomHostname{ID: "ch1"}, nil)
		f.cloudflare.On("GetCustomHostname", mock.Anything, "ch1").Return(&interfaces.CustomHostname{ID: "ch1"}, nil)
		f.domains.On("Create", mock.Anything, mock.Anything).Return(er.Conflict("hostname www.example.com is already taken"))

		_, err := f.service.CreateCustomDomain(ctx, testOwner, "www.example.com")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindConflict))
	})
}

func TestCreateSubdomain(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects reserved labels", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateSubdomain(ctx, testOwner, "WWW")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindConflict))
		f.domains.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("fails without persisting when provider unconfigured", func(t *testing.T) {
		f := newFixture()
		f.cloudflare.On("Config").Return(providerConfig())
		f.cloudflare.On("IsConfigured").Return(false)
		f.domains.On("ExistsByHostname", mock.Anything, "mystore.funnelhub.site").Return(false, nil)

		_, err := f.service.CreateSubdomain(ctx, testOwner, "mystore")

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindProvider))
		f.domains.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persists active domain in one call", func(t *testing.T) {
		f := newFixture()
		f.cloudflare.On("Config").Return(providerConfig())
		f.cloudflare.On("IsConfigured").Return(true)
		f.domains.On("ExistsByHostname", mock.Anything, "mystore.funnelhub.site").Return(false, nil)
		f.cloudflare.On("CreateSubdomainRecord", mock.Anything, "mystore").Return(&interfaces.DNSRecord{ID: "rec1", ZoneID: "zone1"}, nil)
		f.domains.On("Create", mock.Anything, mock.AnythingOfType("*models.Domain")).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		domain, err := f.service.CreateSubdomain(ctx, testOwner, "mystore")

		require.NoError(t, err)
		assert.Equal(t, "mystore.funnelhub.site", domain.Hostname)
		assert.Equal(t, enum.DomainTypeSubdomain, domain.Type)
		assert.Equal(t, enum.DomainStatusActive, domain.Status)
		assert.Equal(t, enum.SSLStatusActive, domain.SSLStatus)
		assert.Equal(t, "rec1", *domain.ProviderRecordID)
		assert.NotNil(t, domain.LastVerifiedAt)
		f.domains.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestVerifyDomain(t *testing.T) {
	ctx := context.Background()

	pendingDomain := func() *models.Domain {
		return &models.Domain{
			ID:                 testDomain,
			Hostname:           "www.example.com",
			Type:               enum.DomainTypeCustom,
			Status:             enum.DomainStatusPending,
			SSLStatus:          enum.SSLStatusPending,
			OwnerID:            testOwner,
			ProviderHostnameID: utils.StringPtr("ch1"),
		}
	}

	t.Run("missing domain is not found", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(nil, nil)

		_, err := f.service.VerifyDomain(ctx, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindNotFound))
	})

	t.Run("active domain rejects re-verification with zero provider calls", func(t *testing.T) {
		f := newFixture()
		active := pendingDomain()
		active.Status = enum.DomainStatusActive
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(active, nil)

		_, err := f.service.VerifyDomain(ctx, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindState))
		f.cloudflare.AssertNotCalled(t, "GetCustomHostname", mock.Anything, mock.Anything)
		f.cloudflare.AssertNotCalled(t, "IsConfigured")
	})

	t.Run("unconfigured provider returns stored state without error", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(pendingDomain(), nil)
		f.cloudflare.On("IsConfigured").Return(false)

		result, err := f.service.VerifyDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
		assert.False(t, result.IsFullyActive)
		assert.Equal(t, enum.DomainStatusPending, result.Domain.Status)
		f.domains.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("hostname active with pending ssl moves to verified", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(pendingDomain(), nil)
		f.cloudflare.On("IsConfigured").Return(true)
		f.cloudflare.On("GetCustomHostname", mock.Anything, "ch1").Return(&interfaces.CustomHostname{
			ID:     "ch1",
			Status: "active",
			SSL:    interfaces.SSLDetails{Status: "pending_validation"},
		}, nil)
		f.domains.On("Update", mock.Anything, mock.AnythingOfType("*models.Domain")).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		result, err := f.service.VerifyDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
		assert.Equal(t, enum.DomainStatusVerified, result.Domain.Status)
		assert.Equal(t, enum.SSLStatusPending, result.Domain.SSLStatus)
		assert.False(t, result.IsFullyActive)
		assert.NotNil(t, result.Domain.LastVerifiedAt)
	})

	t.Run("hostname and ssl active reach terminal state", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(pendingDomain(), nil)
		f.cloudflare.On("IsConfigured").Return(true)
		f.cloudflare.On("GetCustomHostname", mock.Anything, "ch1").Return(&interfaces.CustomHostname{
			ID:     "ch1",
			Status: "active",
			SSL:    interfaces.SSLDetails{Status: "active"},
		}, nil)
		f.domains.On("Update", mock.Anything, mock.AnythingOfType("*models.Domain")).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		result, err := f.service.VerifyDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
		assert.Equal(t, enum.DomainStatusActive, result.Domain.Status)
		assert.Equal(t, enum.SSLStatusActive, result.Domain.SSLStatus)
		assert.True(t, result.IsFullyActive)
	})

	t.Run("unknown ssl status maps to error but stamps verification time", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(pendingDomain(), nil)
		f.cloudflare.On("IsConfigured").Return(true)
		f.cloudflare.On("GetCustomHostname", mock.Anything, "ch1").Return(&interfaces.CustomHostname{
			ID:     "ch1",
			Status: "pending",
			SSL:    interfaces.SSLDetails{Status: "validation_timed_out"},
		}, nil)
		f.domains.On("Update", mock.Anything, mock.AnythingOfType("*models.Domain")).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		result, err := f.service.VerifyDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
		assert.Equal(t, enum.DomainStatusPending, result.Domain.Status)
		assert.Equal(t, enum.SSLStatusError, result.Domain.SSLStatus)
		assert.NotNil(t, result.Domain.LastVerifiedAt)
	})
}

func TestDeleteDomain(t *testing.T) {
	ctx := context.Background()

	t.Run("missing domain is not found", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(nil, nil)

		err := f.service.DeleteDomain(ctx, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindNotFound))
	})

	t.Run("deletes row even when provider resources are already gone", func(t *testing.T) {
		f := newFixture()
		domain := &models.Domain{
			ID:                 testDomain,
			OwnerID:            testOwner,
			ProviderHostnameID: utils.StringPtr("ch1"),
			ProviderZoneID:     utils.StringPtr("zone1"),
			ProviderRecordID:   utils.StringPtr("rec1"),
		}
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(domain, nil)
		f.cloudflare.On("DeleteCustomHostname", mock.Anything, "ch1").Return(er.ErrProviderResourceNotFound)
		f.cloudflare.On("DeleteDNSRecord", mock.Anything, "zone1", "rec1").Return(er.ErrProviderResourceNotFound)
		f.domains.On("Delete", mock.Anything, testDomain).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		err := f.service.DeleteDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
		f.domains.AssertCalled(t, "Delete", mock.Anything, testDomain)
	})

	t.Run("provider errors are logged but do not block local delete", func(t *testing.T) {
		f := newFixture()
		domain := &models.Domain{
			ID:                 testDomain,
			OwnerID:            testOwner,
			ProviderHostnameID: utils.StringPtr("ch1"),
		}
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(domain, nil)
		f.cloudflare.On("DeleteCustomHostname", mock.Anything, "ch1").Return(assert.AnError)
		f.domains.On("Delete", mock.Anything, testDomain).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		err := f.service.DeleteDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
		f.domains.AssertCalled(t, "Delete", mock.Anything, testDomain)
	})

	t.Run("cache failure does not fail the request", func(t *testing.T) {
		f := newFixture()
		domain := &models.Domain{ID: testDomain, OwnerID: testOwner}
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(domain, nil)
		f.domains.On("Delete", mock.Anything, testDomain).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(assert.AnError)

		err := f.service.DeleteDomain(ctx, testDomain, testOwner)

		require.NoError(t, err)
	})
}

func TestLinkFunnelToDomain(t *testing.T) {
	ctx := context.Background()

	ownedFunnel := &models.Funnel{ID: testFunnel, OwnerID: testOwner, Status: enum.FunnelStatusLive}
	ownedDomain := &models.Domain{ID: testDomain, OwnerID: testOwner}

	t.Run("requires funnel ownership", func(t *testing.T) {
		f := newFixture()
		f.funnels.On("GetByID", mock.Anything, testFunnel, testOwner).Return(nil, nil)

		_, err := f.service.LinkFunnelToDomain(ctx, testFunnel, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindNotFound))
	})

	t.Run("requires domain ownership", func(t *testing.T) {
		f := newFixture()
		f.funnels.On("GetByID", mock.Anything, testFunnel, testOwner).Return(ownedFunnel, nil)
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(nil, nil)

		_, err := f.service.LinkFunnelToDomain(ctx, testFunnel, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindNotFound))
	})

	t.Run("duplicate link conflicts", func(t *testing.T) {
		f := newFixture()
		f.funnels.On("GetByID", mock.Anything, testFunnel, testOwner).Return(ownedFunnel, nil)
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(ownedDomain, nil)
		f.funnelDomains.On("Exists", mock.Anything, testFunnel, testDomain).Return(true, nil)

		_, err := f.service.LinkFunnelToDomain(ctx, testFunnel, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindConflict))
	})

	t.Run("creates active link", func(t *testing.T) {
		f := newFixture()
		f.funnels.On("GetByID", mock.Anything, testFunnel, testOwner).Return(ownedFunnel, nil)
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(ownedDomain, nil)
		f.funnelDomains.On("Exists", mock.Anything, testFunnel, testDomain).Return(false, nil)
		f.funnelDomains.On("Create", mock.Anything, mock.AnythingOfType("*models.FunnelDomain")).Return(nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		link, err := f.service.LinkFunnelToDomain(ctx, testFunnel, testDomain, testOwner)

		require.NoError(t, err)
		assert.True(t, link.IsActive)
		assert.Equal(t, testFunnel, link.FunnelID)
		assert.Equal(t, testDomain, link.DomainID)
	})
}

func TestUnlinkFunnelFromDomain(t *testing.T) {
	ctx := context.Background()

	ownedFunnel := &models.Funnel{ID: testFunnel, OwnerID: testOwner}
	ownedDomain := &models.Domain{ID: testDomain, OwnerID: testOwner}

	t.Run("missing link is not found", func(t *testing.T) {
		f := newFixture()
		f.funnels.On("GetByID", mock.Anything, testFunnel, testOwner).Return(ownedFunnel, nil)
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(ownedDomain, nil)
		f.funnelDomains.On("Delete", mock.Anything, testFunnel, testDomain).Return(int64(0), nil)

		err := f.service.UnlinkFunnelFromDomain(ctx, testFunnel, testDomain, testOwner)

		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindNotFound))
	})

	t.Run("removes the matching pair", func(t *testing.T) {
		f := newFixture()
		f.funnels.On("GetByID", mock.Anything, testFunnel, testOwner).Return(ownedFunnel, nil)
		f.domains.On("GetByID", mock.Anything, testDomain, testOwner).Return(ownedDomain, nil)
		f.funnelDomains.On("Delete", mock.Anything, testFunnel, testDomain).Return(int64(1), nil)
		f.cache.On("InvalidateDomains", mock.Anything, testOwner).Return(nil)

		err := f.service.UnlinkFunnelFromDomain(ctx, testFunnel, testDomain, testOwner)

		require.NoError(t, err)
		f.funnelDomains.AssertCalled(t, "Delete", mock.Anything, testFunnel, testDomain)
	})
}

func TestGetPublicFunnel(t *testing.T) {
	ctx := context.Background()

	activeDomain := func() *models.Domain {
		return &models.Domain{
			ID:       testDomain,
			Hostname: "www.example.com",
			Status:   enum.DomainStatusActive,
		}
	}

	assertUniformNotFound := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		assert.True(t, er.IsKind(err, er.KindNotFound))
		assert.Equal(t, "funnel not found", err.Error())
	}

	t.Run("unknown hostname", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByHostname", mock.Anything, "www.example.com").Return(nil, nil)

		_, err := f.service.GetPublicFunnel(ctx, "www.example.com", testFunnel)

		assertUniformNotFound(t, err)
	})

	t.Run("domain not active", func(t *testing.T) {
		f := newFixture()
		pending := activeDomain()
		pending.Status = enum.DomainStatusPending
		f.domains.On("GetByHostname", mock.Anything, "www.example.com").Return(pending, nil)

		_, err := f.service.GetPublicFunnel(ctx, "www.example.com", testFunnel)

		assertUniformNotFound(t, err)
	})

	t.Run("funnel not linked", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByHostname", mock.Anything, "www.example.com").Return(activeDomain(), nil)
		f.funnelDomains.On("GetLink", mock.Anything, testFunnel, testDomain).Return(nil, nil)

		_, err := f.service.GetPublicFunnel(ctx, "www.example.com", testFunnel)

		assertUniformNotFound(t, err)
	})

	t.Run("link inactive", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByHostname", mock.Anything, "www.example.com").Return(activeDomain(), nil)
		f.funnelDomains.On("GetLink", mock.Anything, testFunnel, testDomain).Return(&models.FunnelDomain{
			FunnelID: testFunnel, DomainID: testDomain, IsActive: false,
		}, nil)

		_, err := f.service.GetPublicFunnel(ctx, "www.example.com", testFunnel)

		assertUniformNotFound(t, err)
	})

	t.Run("funnel not live", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByHostname", mock.Anything, "www.example.com").Return(activeDomain(), nil)
		f.funnelDomains.On("GetLink", mock.Anything, testFunnel, testDomain).Return(&models.FunnelDomain{
			FunnelID: testFunnel, DomainID: testDomain, IsActive: true,
		}, nil)
		f.funnels.On("GetByIDAnyOwner", mock.Anything, testFunnel).Return(&models.Funnel{
			ID: testFunnel, Status: enum.FunnelStatusDraft,
		}, nil)

		_, err := f.service.GetPublicFunnel(ctx, "www.example.com", testFunnel)

		assertUniformNotFound(t, err)
	})

	t.Run("live funnel on active domain resolves", func(t *testing.T) {
		f := newFixture()
		f.domains.On("GetByHostname", mock.Anything, "www.example.com").Return(activeDomain(), nil)
		f.funnelDomains.On("GetLink", mock.Anything, testFunnel, testDomain).Return(&models.FunnelDomain{
			FunnelID: testFunnel, DomainID: testDomain, IsActive: true,
		}, nil)
		f.funnels.On("GetByIDAnyOwner", mock.Anything, testFunnel).Return(&models.Funnel{
			ID: testFunnel, Status: enum.FunnelStatusLive,
		}, nil)

		funnel, err := f.service.GetPublicFunnel(ctx, "www.example.com", testFunnel)

		require.NoError(t, err)
		assert.Equal(t, testFunnel, funnel.ID)
	})
}
