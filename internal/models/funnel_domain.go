package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/funnelhub/domainstack/internal/utils"
)

// FunnelDomain links a funnel to a domain. A pair can be linked at most once.
type FunnelDomain struct {
	ID       string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	FunnelID string `gorm:"column:funnel_id;type:varchar(50);uniqueIndex:idx_funnel_domain;not null" json:"funnelId"`
	DomainID string `gorm:"column:domain_id;type:varchar(50);uniqueIndex:idx_funnel_domain;index;not null" json:"domainId"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

func (FunnelDomain) TableName() string {
	return "funnel_domains"
}

func (fd *FunnelDomain) BeforeCreate(tx *gorm.DB) error {
	if fd.ID == "" {
		fd.ID = utils.GenerateNanoIdWithPrefix("fd", 16)
	}
	return nil
}
