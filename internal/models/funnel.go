package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/funnelhub/domainstack/internal/enum"
	"github.com/funnelhub/domainstack/internal/utils"
)

// Funnel is the published marketing funnel a domain routes to. Only the
// fields the domain lifecycle needs live here; funnel content is managed
// elsewhere.
type Funnel struct {
	ID      string            `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Name    string            `gorm:"column:name;type:varchar(255);not null" json:"name"`
	OwnerID string            `gorm:"column:owner_id;type:varchar(50);index;not null" json:"ownerId"`
	Status  enum.FunnelStatus `gorm:"column:status;type:varchar(50);not null" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

func (Funnel) TableName() string {
	return "funnels"
}

func (f *Funnel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = utils.GenerateNanoIdWithPrefix("fnl", 16)
	}
	return nil
}
