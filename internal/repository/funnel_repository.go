package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/funnelhub/domainstack/internal/models"
	"github.com/funnelhub/domainstack/internal/tracing"
)

type FunnelRepository interface {
	GetByID(ctx context.Context, funnelID, ownerID string) (*models.Funnel, error)
	GetByIDAnyOwner(ctx context.Context, funnelID string) (*models.Funnel, error)
}

type funnelRepository struct {
	db *gorm.DB
}

func NewFunnelRepository(db *gorm.DB) FunnelRepository {
	return &funnelRepository{
		db: db,
	}
}

func (r *funnelRepository) GetByID(ctx context.Context, funnelID, ownerID string) (*models.Funnel, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, funnelID)
	tracing.TagOwner(span, ownerID)

	var funnel models.Funnel
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", funnelID, ownerID).
		First(&funnel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &funnel, nil
}

// GetByIDAnyOwner serves the unauthenticated public-funnel path, which has
// no caller identity to scope by.
func (r *funnelRepository) GetByIDAnyOwner(ctx context.Context, funnelID string) (*models.Funnel, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "FunnelRepository.GetByIDAnyOwner")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, funnelID)

	var funnel models.Funnel
	err := r.db.WithContext(ctx).
		Where("id = ?", funnelID).
		First(&funnel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &funnel, nil
}
