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

type FunnelDomainRepository interface {
	Create(ctx context.Context, link *models.FunnelDomain) error
	Exists(ctx context.Context, funnelID, domainID string) (bool, error)
	GetLink(ctx context.Context, funnelID, domainID string) (*models.FunnelDomain, error)
	GetByFunnel(ctx context.Context, funnelID string) ([]models.FunnelDomain, error)
	Delete(ctx context.Context, funnelID, domainID string) (int64, error)
}

type funnelDomainRepository struct {
	db *gorm.DB
}

func NewFunnelDomainRepository(db *gorm.DB) FunnelDomainRepository {
	return &funnelDomainRepository{
		db: db,
	}
}

func (r *funnelDomainRepository) Create(ctx context.Context, link *models.FunnelDomain) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelDomainRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("funnelId", link.FunnelID, "domainId", link.DomainID)

	now := utils.Now()
	link.CreatedAt = now
	link.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return er.Conflict("funnel is already linked to this domain")
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}

	return nil
}

func (r *funnelDomainRepository) Exists(ctx context.Context, funnelID, domainID string) (bool, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelDomainRepository.Exists")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("funnelId", funnelID, "domainId", domainID)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FunnelDomain{}).
		Where("funnel_id = ? AND domain_id = ?", funnelID, domainID).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return false, err
	}

	span.LogFields(tracingLog.Bool("response.exists", count > 0))
	return count > 0, nil
}

func (r *funnelDomainRepository) GetLink(ctx context.Context, funnelID, domainID string) (*models.FunnelDomain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelDomainRepository.GetLink")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("funnelId", funnelID, "domainId", domainID)

	var link models.FunnelDomain
	err := r.db.WithContext(ctx).
		Where("funnel_id = ? AND domain_id = ?", funnelID, domainID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &link, nil
}

func (r *funnelDomainRepository) GetByFunnel(ctx context.Context, funnelID string) ([]models.FunnelDomain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelDomainRepository.GetByFunnel")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("funnelId", funnelID)

	var links []models.FunnelDomain
	err := r.db.WithContext(ctx).
		Where("funnel_id = ?", funnelID).
		Find(&links).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return links, nil
}

// Delete removes the rows matching the exact pair and reports how many went.
func (r *funnelDomainRepository) Delete(ctx context.Context, funnelID, domainID string) (int64, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelDomainRepository.Delete")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("funnelId", funnelID, "domainId", domainID)

	result := r.db.WithContext(ctx).
		Where("funnel_id = ? AND domain_id = ?", funnelID, domainID).
		Delete(&models.FunnelDomain{})
	if result.Error != nil {
		tracing.TraceErr(span, errors.Wrap(result.Error, "db error"))
		return 0, result.Error
	}

	span.LogFields(tracingLog.Int64("response.rowsDeleted", result.RowsAffected))
	return result.RowsAffected, nil
}
