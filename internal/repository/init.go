package repository

import (
	"gorm.io/gorm"

	"github.com/funnelhub/domainstack/internal/models"
)

type Repositories struct {
	DomainRepository       DomainRepository
	FunnelRepository       FunnelRepository
	FunnelDomainRepository FunnelDomainRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DomainRepository:       NewDomainRepository(db),
		FunnelRepository:       NewFunnelRepository(db),
		FunnelDomainRepository: NewFunnelDomainRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Domain{},
		&models.Funnel{},
		&models.FunnelDomain{},
	)
}
