package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	er "github.com/funnelhub/domainstack/internal/errors"
	"github.com/funnelhub/domainstack/internal/models"
	"github.com/funnelhub/domainstack/internal/tracing"
	"github.com/funnelhub/domainstack/internal/utils"
)

type DomainRepository interface {
	Create(ctx context.Context, domain *models.Domain) error
	Update(ctx context.Context, domain *models.Domain) error
	GetByID(ctx context.Context, domainID, ownerID string) (*models.Domain, error)
	GetByHostname(ctx context.Context, hostname string) (*models.Domain, error)
	ExistsByHostname(ctx context.Context, hostname string) (bool, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Domain, error)
	Delete(ctx context.Context, domainID string) error
}

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{
		db: db,
	}
}

func (r *domainRepository) Create(ctx context.Context, domain *models.Domain) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagOwner(span, domain.OwnerID)
	tracing.TagHostname(span, domain.Hostname)

	now := utils.Now()
	domain.CreatedAt = now
	domain.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(domain).Error
	if err != nil {
		// The unique index on hostname is the final authority on uniqueness;
		// a duplicate key here means the pre-flight check lost a race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return er.Conflict("hostname %s is already taken", domain.Hostname)
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}

	return nil
}

func (r *domainRepository) Update(ctx context.Context, domain *models.Domain) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.Update")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domain.ID)

	domain.UpdatedAt = utils.Now()

	err := r.db.WithContext(ctx).Save(domain).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}

	return nil
}

func (r *domainRepository) GetByID(ctx context.Context, domainID, ownerID string) (*models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)
	tracing.TagOwner(span, ownerID)

	var domain models.Domain
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", domainID, ownerID).
		First(&domain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &domain, nil
}

func (r *domainRepository) GetByHostname(ctx context.Context, hostname string) (*models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByHostname")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagHostname(span, hostname)

	var domain models.Domain
	err := r.db.WithContext(ctx).
		Where("hostname = ?", hostname).
		First(&domain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &domain, nil
}

func (r *domainRepository) ExistsByHostname(ctx context.Context, hostname string) (bool, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.ExistsByHostname")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagHostname(span, hostname)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("hostname = ?", hostname).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}

	span.LogFields(tracingLog.Bool("response.exists", count > 0))
	return count > 0, nil
}

func (r *domainRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetByOwner")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagOwner(span, ownerID)

	var domains []models.Domain
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&domains).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return domains, nil
}

// Delete removes the domain row and its funnel links in one transaction.
func (r *domainRepository) Delete(ctx context.Context, domainID string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.Delete")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("domain_id = ?", domainID).Delete(&models.FunnelDomain{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", domainID).Delete(&models.Domain{}).Error
	})
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}

	return nil
}
