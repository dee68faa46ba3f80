package repository

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultLeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *DefaultLeadRepository {
	return &DefaultLeadRepository{db: db}
}

func (l *DefaultLeadRepository) Create(lead *entity.Lead) error {
	return l.db.Create(lead).Error
}

func (l *DefaultLeadRepository) FindByID(id int64) (*entity.Lead, error) {
	return findOne[entity.Lead](l.db.Where("id = ?", id))
}

func (l *DefaultLeadRepository) UpdateStatus(id int64, status entity.LeadStatus) error {
	return l.db.Model(&entity.Lead{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": utils.NowUTC()}).Error
}

// FindForUnclaimed returns the leads of every platform owned business.
func (l *DefaultLeadRepository) FindForUnclaimed() ([]*entity.Lead, error) {
	var leads []*entity.Lead
	err := l.db.
		Where("business_id IN (?)", l.db.Model(&entity.Business{}).Select("id").Where("owner_id IS NULL")).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (l *DefaultLeadRepository) FindForOwner(ownerID int64) ([]*entity.Lead, error) {
	var leads []*entity.Lead
	err := l.db.
		Where("business_id IN (?)", l.db.Model(&entity.Business{}).Select("id").Where("owner_id = ?", ownerID)).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}
