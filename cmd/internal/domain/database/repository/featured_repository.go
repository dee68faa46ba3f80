package repository

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultFeaturedRepository struct {
	db *gorm.DB
}

func NewFeaturedRepository(db *gorm.DB) *DefaultFeaturedRepository {
	return &DefaultFeaturedRepository{db: db}
}

func (f *DefaultFeaturedRepository) Create(req *entity.FeaturedRequest) error {
	return mapWriteError(f.db.Create(req).Error)
}

func (f *DefaultFeaturedRepository) FindByID(id int64) (*entity.FeaturedRequest, error) {
	return findOne[entity.FeaturedRequest](f.db.Where("id = ?", id))
}

func (f *DefaultFeaturedRepository) FindPending(userID int64, businessID string) (*entity.FeaturedRequest, error) {
	return findOne[entity.FeaturedRequest](f.db.
		Where("user_id = ? AND business_id = ? AND status = ?", userID, businessID, entity.FeaturedPending))
}

func (f *DefaultFeaturedRepository) FindAll(status *entity.FeaturedStatus) ([]*entity.FeaturedRequest, error) {
	var reqs []*entity.FeaturedRequest
	q := f.db.Order("created_at ASC, id ASC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&reqs).Error
	return reqs, err
}

func (f *DefaultFeaturedRepository) UpdateStatusIf(req *entity.FeaturedRequest, expected entity.FeaturedStatus) (bool, error) {
	return updateFeaturedIf(f.db, req, expected)
}

// ApproveAndFeature approves the request and promotes the listing atomically.
func (f *DefaultFeaturedRepository) ApproveAndFeature(req *entity.FeaturedRequest, expected entity.FeaturedStatus) (bool, error) {
	swapped := false
	err := f.db.Transaction(func(tx *gorm.DB) error {
		ok, err := updateFeaturedIf(tx, req, expected)
		if err != nil || !ok {
			return err
		}

		err = tx.Model(&entity.Business{}).
			Where("id = ?", req.BusinessID).
			Updates(map[string]any{"featured": true, "updated_at": utils.NowUTC()}).Error
		if err != nil {
			return err
		}
		swapped = true
		return nil
	})
	return swapped, err
}

func updateFeaturedIf(db *gorm.DB, req *entity.FeaturedRequest, expected entity.FeaturedStatus) (bool, error) {
	res := db.Model(&entity.FeaturedRequest{}).
		Where("id = ? AND status = ?", req.ID, expected).
		Updates(map[string]any{
			"status":        req.Status,
			"admin_message": req.AdminMessage,
			"reviewed_by":   req.ReviewedBy,
			"reviewed_at":   req.ReviewedAt,
			"updated_at":    utils.NowUTC(),
		})
	return res.RowsAffected > 0, res.Error
}
