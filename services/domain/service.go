package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/enum"
	er "github.com/funnelhub/domainstack/internal/errors"
	"github.com/funnelhub/domainstack/internal/hostname"
	"github.com/funnelhub/domainstack/internal/logger"
	"github.com/funnelhub/domainstack/internal/models"
	"github.com/funnelhub/domainstack/internal/repository"
	"github.com/funnelhub/domainstack/internal/tracing"
	"github.com/funnelhub/domainstack/internal/utils"
)

type domainService struct {
	postgres   *repository.Repositories
	cloudflare interfaces.CloudflareService
	cache      interfaces.DomainCacheInvalidator
	log        logger.Logger
}

func NewDomainService(postgres *repository.Repositories, cloudflare interfaces.CloudflareService, cache interfaces.DomainCacheInvalidator, log logger.Logger) interfaces.DomainService {
	return &domainService{
		postgres:   postgres,
		cloudflare: cloudflare,
		cache:      cache,
		log:        log,
	}
}

func (s *domainService) CreateCustomDomain(ctx context.Context, ownerID, rawHostname string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.CreateCustomDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagOwner(span, ownerID)
	span.LogKV("request.hostname", rawHostname)

	host, err := hostname.ValidateHostname(rawHostname)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.TagHostname(span, host)

	parsed, err := hostname.Parse(host)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	// Bare root domains are rejected: the apex stays under the customer's
	// control so their root site keeps working.
	if parsed.Subdomain == "" {
		err = er.Validation("please provide a subdomain")
		tracing.TraceErr(span, err)
		return nil, err
	}

	exists, err := s.postgres.DomainRepository.ExistsByHostname(ctx, host)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if exists {
		err = er.Conflict("hostname %s is already taken", host)
		tracing.TraceErr(span, err)
		return nil, err
	}

	if !s.cloudflare.IsConfigured() {
		err = er.Provider(nil, "provisioning provider is not configured")
		tracing.TraceErr(span, err)
		return nil, err
	}

	created, err := s.cloudflare.CreateCustomHostname(ctx, host)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "Error creating custom hostname in Cloudflare"))
		return nil, er.Provider(err, "failed to provision hostname")
	}

	// Re-fetch for the full record; creation responses omit some of the
	// validation material.
	detailed, err := s.cloudflare.GetCustomHostname(ctx, created.ID)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "Error fetching custom hostname from Cloudflare"))
		return nil, er.Provider(err, "failed to fetch provisioned hostname")
	}

	providerCfg := s.cloudflare.Config()

	sslStatus := enum.SSLStatusPending
	if detailed.SSL.Status == interfaces.SSLProviderStatusActive {
		sslStatus = enum.SSLStatusActive
	}

	domain := &models.Domain{
		Hostname:           host,
		Type:               enum.DomainTypeCustom,
		Status:             enum.DomainStatusPending,
		SSLStatus:          sslStatus,
		OwnerID:            ownerID,
		ProviderHostnameID: utils.StringPtr(detailed.ID),
		ProviderZoneID:     utils.StringPtr(providerCfg.ZoneID),
		VerificationToken:  detailed.OwnershipVerification.Value,
		OwnershipVerification: &models.OwnershipVerification{
			Type: detailed.OwnershipVerification.Type,
			// The provider appends the root domain to the record name; the
			// customer enters the short form in their DNS panel.
			Name:        strings.TrimSuffix(detailed.OwnershipVerification.Name, "."+parsed.RootDomain),
			RecordValue: detailed.OwnershipVerification.Value,
			Purpose:     "ownership",
		},
		DNSInstructions: &models.DNSInstructions{
			RecordType: "CNAME",
			Name:       host,
			Target:     providerCfg.SaaSTarget,
		},
		SSLValidationRecords: detailed.SSL.ValidationRecords,
	}

	if err = s.postgres.DomainRepository.Create(ctx, domain); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.invalidateDomainCache(ctx, ownerID)

	span.LogFields(tracingLog.String("result.domainId", domain.ID))
	return domain, nil
}

func (s *domainService) CreateSubdomain(ctx context.Context, ownerID, rawLabel string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.CreateSubdomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagOwner(span, ownerID)
	span.LogKV("request.label", rawLabel)

	label, err := hostname.ValidateSubdomain(rawLabel)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	providerCfg := s.cloudflare.Config()
	host := label + "." + providerCfg.PlatformMainDomain
	tracing.TagHostname(span, host)

	exists, err := s.postgres.DomainRepository.ExistsByHostname(ctx, host)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if exists {
		err = er.Conflict("hostname %s is already taken", host)
		tracing.TraceErr(span, err)
		return nil, err
	}

	if !s.cloudflare.IsConfigured() {
		err = er.Provider(nil, "provisioning provider is not configured")
		tracing.TraceErr(span, err)
		return nil, err
	}

	record, err := s.cloudflare.CreateSubdomainRecord(ctx, label)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "Error creating subdomain record in Cloudflare"))
		return nil, er.Provider(err, "failed to provision subdomain")
	}

	// The platform controls the whole zone and its shared certificate, so
	// a subdomain is live the moment the record exists.
	domain := &models.Domain{
		Hostname:          host,
		Type:              enum.DomainTypeSubdomain,
		Status:            enum.DomainStatusActive,
		SSLStatus:         enum.SSLStatusActive,
		OwnerID:           ownerID,
		ProviderZoneID:    utils.StringPtr(providerCfg.ZoneID),
		ProviderRecordID:  utils.StringPtr(record.ID),
		VerificationToken: uuid.NewString(),
		LastVerifiedAt:    utils.NowPtr(),
	}

	if err = s.postgres.DomainRepository.Create(ctx, domain); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.invalidateDomainCache(ctx, ownerID)

	span.LogFields(tracingLog.String("result.domainId", domain.ID))
	return domain, nil
}

func (s *domainService) VerifyDomain(ctx context.Context, domainID, ownerID string) (*interfaces.VerificationResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.VerifyDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)
	tracing.TagOwner(span, ownerID)

	domain, err := s.postgres.DomainRepository.GetByID(ctx, domainID, ownerID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if domain == nil {
		err = er.NotFound("domain not found")
		tracing.TraceErr(span, err)
		return nil, err
	}

	// ACTIVE is terminal; callers should not re-poll a finished domain.
	if domain.Status == enum.DomainStatusActive {
		err = er.State("domain is already active")
		tracing.TraceErr(span, err)
		return nil, err
	}

	// Degraded read: without a provider we can only report stored state.
	if !s.cloudflare.IsConfigured() {
		span.LogFields(tracingLog.String("result.message", "provider not configured, returning stored state"))
		return &interfaces.VerificationResult{
			Domain:        domain,
			Message:       "Provisioning provider is not configured; returning last known status.",
			IsFullyActive: false,
		}, nil
	}

	if domain.ProviderHostnameID == nil {
		err = er.State("domain has no provisioned hostname")
		tracing.TraceErr(span, err)
		return nil, err
	}

	ch, err := s.cloudflare.GetCustomHostname(ctx, *domain.ProviderHostnameID)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "Error fetching custom hostname from Cloudflare"))
		return nil, er.Provider(err, "failed to check hostname status")
	}

	switch ch.SSL.Status {
	case interfaces.SSLProviderStatusActive:
		domain.SSLStatus = enum.SSLStatusActive
	case interfaces.SSLProviderStatusPendingValidation:
		domain.SSLStatus = enum.SSLStatusPending
	default:
		domain.SSLStatus = enum.SSLStatusError
	}

	hostnameActive := ch.Status == interfaces.HostnameStatusActive
	switch {
	case hostnameActive && domain.SSLStatus == enum.SSLStatusActive:
		domain.Status = enum.DomainStatusActive
	case hostnameActive:
		domain.Status = enum.DomainStatusVerified
	}

	if len(ch.SSL.ValidationRecords) > 0 {
		domain.SSLValidationRecords = ch.SSL.ValidationRecords
	}
	domain.LastVerifiedAt = utils.NowPtr()

	if err = s.postgres.DomainRepository.Update(ctx, domain); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.invalidateDomainCache(ctx, ownerID)

	result := &interfaces.VerificationResult{
		Domain:        domain,
		IsFullyActive: domain.IsFullyActive(),
	}
	switch domain.Status {
	case enum.DomainStatusActive:
		result.Message = "Domain is fully active and serving traffic."
	case enum.DomainStatusVerified:
		result.Message = "Domain ownership verified. Certificate issuance is still in progress."
	default:
		result.Message = "Domain ownership is still pending verification. Check your DNS records."
	}

	span.LogFields(tracingLog.String("result.status", domain.Status.String()), tracingLog.String("result.sslStatus", domain.SSLStatus.String()))
	return result, nil
}

func (s *domainService) DeleteDomain(ctx context.Context, domainID, ownerID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.DeleteDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)
	tracing.TagOwner(span, ownerID)

	domain, err := s.postgres.DomainRepository.GetByID(ctx, domainID, ownerID)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if domain == nil {
		err = er.NotFound("domain not found")
		tracing.TraceErr(span, err)
		return err
	}

	// Best-effort external teardown. Local consistency wins over leaked
	// provider state, so failures here never abort the delete.
	if domain.ProviderHostnameID != nil {
		err = s.cloudflare.DeleteCustomHostname(ctx, *domain.ProviderHostnameID)
		if err != nil && !errors.Is(err, er.ErrProviderResourceNotFound) {
			tracing.TraceErr(span, errors.Wrap(err, "Error deleting custom hostname in Cloudflare"))
			s.log.Errorf("failed to delete custom hostname %s for domain %s: %v", *domain.ProviderHostnameID, domain.ID, err)
		}
	}
	if domain.ProviderRecordID != nil && domain.ProviderZoneID != nil {
		err = s.cloudflare.DeleteDNSRecord(ctx, *domain.ProviderZoneID, *domain.ProviderRecordID)
		if err != nil && !errors.Is(err, er.ErrProviderResourceNotFound) {
			tracing.TraceErr(span, errors.Wrap(err, "Error deleting DNS record in Cloudflare"))
			s.log.Errorf("failed to delete DNS record %s for domain %s: %v", *domain.ProviderRecordID, domain.ID, err)
		}
	}

	if err = s.postgres.DomainRepository.Delete(ctx, domain.ID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.invalidateDomainCache(ctx, ownerID)

	return nil
}

func (s *domainService) GetDomain(ctx context.Context, domainID, ownerID string) (*models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.GetDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, domainID)
	tracing.TagOwner(span, ownerID)

	domain, err := s.postgres.DomainRepository.GetByID(ctx, domainID, ownerID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if domain == nil {
		return nil, er.NotFound("domain not found")
	}

	return domain, nil
}

func (s *domainService) ListDomains(ctx context.Context, ownerID string) ([]models.Domain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.ListDomains")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagOwner(span, ownerID)

	domains, err := s.postgres.DomainRepository.GetByOwner(ctx, ownerID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return domains, nil
}

func (s *domainService) LinkFunnelToDomain(ctx context.Context, funnelID, domainID, ownerID string) (*models.FunnelDomain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.LinkFunnelToDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagOwner(span, ownerID)
	span.LogKV("funnelId", funnelID, "domainId", domainID)

	if err := s.checkFunnelAndDomainOwnership(ctx, funnelID, domainID, ownerID); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	exists, err := s.postgres.FunnelDomainRepository.Exists(ctx, funnelID, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if exists {
		err = er.Conflict("funnel is already linked to this domain")
		tracing.TraceErr(span, err)
		return nil, err
	}

	link := &models.FunnelDomain{
		FunnelID: funnelID,
		DomainID: domainID,
		IsActive: true,
	}
	if err = s.postgres.FunnelDomainRepository.Create(ctx, link); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.invalidateDomainCache(ctx, ownerID)

	return link, nil
}

func (s *domainService) UnlinkFunnelFromDomain(ctx context.Context, funnelID, domainID, ownerID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.UnlinkFunnelFromDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagOwner(span, ownerID)
	span.LogKV("funnelId", funnelID, "domainId", domainID)

	if err := s.checkFunnelAndDomainOwnership(ctx, funnelID, domainID, ownerID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	rows, err := s.postgres.FunnelDomainRepository.Delete(ctx, funnelID, domainID)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if rows == 0 {
		err = er.NotFound("funnel is not linked to this domain")
		tracing.TraceErr(span, err)
		return err
	}

	s.invalidateDomainCache(ctx, ownerID)

	return nil
}

func (s *domainService) ListFunnelDomains(ctx context.Context, funnelID, ownerID string) ([]models.FunnelDomain, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.ListFunnelDomains")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagOwner(span, ownerID)
	span.LogKV("funnelId", funnelID)

	funnel, err := s.postgres.FunnelRepository.GetByID(ctx, funnelID, ownerID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if funnel == nil {
		return nil, er.NotFound("funnel not found")
	}

	links, err := s.postgres.FunnelDomainRepository.GetByFunnel(ctx, funnelID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return links, nil
}

// GetPublicFunnel resolves a hostname plus funnel id on the unauthenticated
// serving path. All failure modes return the same not-found error so the
// response does not leak which precondition failed.
func (s *domainService) GetPublicFunnel(ctx context.Context, rawHostname, funnelID string) (*models.Funnel, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.GetPublicFunnel")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHostname(span, rawHostname)
	span.LogKV("funnelId", funnelID)

	notFound := er.NotFound("funnel not found")

	host, err := hostname.ValidateHostname(rawHostname)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, notFound
	}

	domain, err := s.postgres.DomainRepository.GetByHostname(ctx, host)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if domain == nil || domain.Status != enum.DomainStatusActive {
		return nil, notFound
	}

	link, err := s.postgres.FunnelDomainRepository.GetLink(ctx, funnelID, domain.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if link == nil || !link.IsActive {
		return nil, notFound
	}

	funnel, err := s.postgres.FunnelRepository.GetByIDAnyOwner(ctx, funnelID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if funnel == nil || funnel.Status != enum.FunnelStatusLive {
		return nil, notFound
	}

	return funnel, nil
}

func (s *domainService) checkFunnelAndDomainOwnership(ctx context.Context, funnelID, domainID, ownerID string) error {
	funnel, err := s.postgres.FunnelRepository.GetByID(ctx, funnelID, ownerID)
	if err != nil {
		return err
	}
	if funnel == nil {
		return er.NotFound("funnel not found")
	}

	domain, err := s.postgres.DomainRepository.GetByID(ctx, domainID, ownerID)
	if err != nil {
		return err
	}
	if domain == nil {
		return er.NotFound("domain not found")
	}

	return nil
}

// invalidateDomainCache is fire-and-forget: the mutation already committed,
// a stale cache entry only delays visibility.
func (s *domainService) invalidateDomainCache(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDomains(ctx, ownerID); err != nil {
		s.log.Warnf("failed to invalidate domain cache for owner %s: %v", ownerID, err)
	}
}
