package repository

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultBusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *DefaultBusinessRepository {
	return &DefaultBusinessRepository{db: db}
}

func (b *DefaultBusinessRepository) FindByID(id string) (*entity.Business, error) {
	return findOne[entity.Business](b.db.Where("id = ?", id))
}

func (b *DefaultBusinessRepository) FindAllIDs() ([]string, error) {
	var ids []string
	err := b.db.Model(&entity.Business{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (b *DefaultBusinessRepository) Create(business *entity.Business) error {
	return mapWriteError(b.db.Create(business).Error)
}

func (b *DefaultBusinessRepository) SetOwner(id string, ownerID *int64) error {
	return b.db.Model(&entity.Business{}).
		Where("id = ?", id).
		Updates(map[string]any{"owner_id": ownerID, "updated_at": utils.NowUTC()}).Error
}

// ClearOwnerIf releases the listing only while it still belongs to ownerID.
func (b *DefaultBusinessRepository) ClearOwnerIf(id string, ownerID int64) (bool, error) {
	res := b.db.Model(&entity.Business{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{"owner_id": nil, "updated_at": utils.NowUTC()})
	return res.RowsAffected > 0, res.Error
}

func (b *DefaultBusinessRepository) UpdateRating(id string, stats entity.RatingStats) error {
	return b.db.Model(&entity.Business{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":        stats.Average,
			"reviews_count": stats.Count,
			"updated_at":    utils.NowUTC(),
		}).Error
}

func (b *DefaultBusinessRepository) SetFeatured(id string, featured bool) error {
	return b.db.Model(&entity.Business{}).
		Where("id = ?", id).
		Updates(map[string]any{"featured": featured, "updated_at": utils.NowUTC()}).Error
}

func (b *DefaultBusinessRepository) UpdateStatusIf(id string, from, to entity.ListingStatus) (bool, error) {
	res := b.db.Model(&entity.Business{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": utils.NowUTC()})
	return res.RowsAffected > 0, res.Error
}

// Delete removes the listing together with everything that hangs off it.
func (b *DefaultBusinessRepository) Delete(id string) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		children := []any{
			&entity.Review{},
			&entity.OwnershipClaim{},
			&entity.Lead{},
			&entity.FeaturedRequest{},
		}
		for _, model := range children {
			if err := tx.Where("business_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&entity.Business{}).Error
	})
}
