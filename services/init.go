package services

import (
	"github.com/funnelhub/domainstack/config"
	"github.com/funnelhub/domainstack/interfaces"
	"github.com/funnelhub/domainstack/internal/cache"
	"github.com/funnelhub/domainstack/internal/logger"
	"github.com/funnelhub/domainstack/internal/repository"
	"github.com/funnelhub/domainstack/services/cloudflare"
	"github.com/funnelhub/domainstack/services/domain"
)

type Services struct {
	CloudflareService interfaces.CloudflareService
	DomainService     interfaces.DomainService
	CacheInvalidator  interfaces.DomainCacheInvalidator
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	redisClient, err := cache.NewClient(*cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	invalidator := cache.NewInvalidator(redisClient)

	cloudflareService := cloudflare.NewCloudflareService(cfg.CloudflareConfig)

	services := Services{
		CloudflareService: cloudflareService,
		CacheInvalidator:  invalidator,
		DomainService:     domain.NewDomainService(repos, cloudflareService, invalidator, log),
	}

	return &services, nil
}
