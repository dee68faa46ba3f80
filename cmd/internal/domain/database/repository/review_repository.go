package repository

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *DefaultReviewRepository {
	return &DefaultReviewRepository{db: db}
}

func (r *DefaultReviewRepository) Create(review *entity.Review) error {
	return r.db.Create(review).Error
}

func (r *DefaultReviewRepository) FindByID(id int64) (*entity.Review, error) {
	return findOne[entity.Review](r.db.Where("id = ?", id))
}

func (r *DefaultReviewRepository) FindByBusiness(businessID string, status *entity.ReviewStatus) ([]*entity.Review, error) {
	var reviews []*entity.Review
	q := r.db.Where("business_id = ?", businessID).Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&reviews).Error
	return reviews, err
}

// Moderate writes the moderation fields of an existing review.
func (r *DefaultReviewRepository) Moderate(review *entity.Review) error {
	return r.db.Model(&entity.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"status":           review.Status,
			"moderated_by":     review.ModeratedBy,
			"moderation_notes": review.ModerationNotes,
			"moderated_at":     review.ModeratedAt,
			"updated_at":       utils.NowUTC(),
		}).Error
}

func (r *DefaultReviewRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&entity.Review{}).Error
}

// RatingStats averages approved reviews only. A business with none yields
// a zero average and count.
func (r *DefaultReviewRepository) RatingStats(businessID string) (entity.RatingStats, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("business_id = ? AND status = ?", businessID, entity.ReviewApproved).
		Scan(&row).Error
	if err != nil {
		return entity.RatingStats{}, err
	}
	return entity.RatingStats{Average: row.Average, Count: row.Count}, nil
}
