package repository

import (
	"bizdirectory/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultAuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *DefaultAuditRepository {
	return &DefaultAuditRepository{db: db}
}

func (a *DefaultAuditRepository) Create(entry *entity.AuditLog) error {
	return a.db.Create(entry).Error
}

func (a *DefaultAuditRepository) FindByResource(resourceType, resourceID string) ([]*entity.AuditLog, error) {
	var entries []*entity.AuditLog
	err := a.db.
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
