package repository

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) *DefaultClaimRepository {
	return &DefaultClaimRepository{db: db}
}

func (c *DefaultClaimRepository) Create(claim *entity.OwnershipClaim) error {
	return mapWriteError(c.db.Create(claim).Error)
}

func (c *DefaultClaimRepository) FindByID(id int64) (*entity.OwnershipClaim, error) {
	return findOne[entity.OwnershipClaim](c.db.Where("id = ?", id))
}

func (c *DefaultClaimRepository) FindByUserID(userID int64) ([]*entity.OwnershipClaim, error) {
	var claims []*entity.OwnershipClaim
	err := c.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&claims).Error
	return claims, err
}

// FindAll lists claims, optionally narrowed to one status. Oldest first so
// moderators work the queue in arrival order.
func (c *DefaultClaimRepository) FindAll(status *entity.ClaimStatus) ([]*entity.OwnershipClaim, error) {
	var claims []*entity.OwnershipClaim
	q := c.db.Order("created_at ASC, id ASC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&claims).Error
	return claims, err
}

func (c *DefaultClaimRepository) SetEvidence(id int64, key string) error {
	return c.db.Model(&entity.OwnershipClaim{}).
		Where("id = ?", id).
		Updates(map[string]any{"evidence_key": key, "updated_at": utils.NowUTC()}).Error
}

// UpdateStatusIf writes the decision fields of 'claim' only if the stored
// status still equals 'expected'. The bool is false when another writer won.
func (c *DefaultClaimRepository) UpdateStatusIf(claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error) {
	return updateClaimIf(c.db, claim, expected)
}

// ApproveAndTransfer flips the claim to approved and hands the business to the
// claimant in one transaction.
func (c *DefaultClaimRepository) ApproveAndTransfer(claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error) {
	swapped := false
	err := c.db.Transaction(func(tx *gorm.DB) error {
		ok, err := updateClaimIf(tx, claim, expected)
		if err != nil || !ok {
			return err
		}

		err = tx.Model(&entity.Business{}).
			Where("id = ?", claim.BusinessID).
			Updates(map[string]any{"owner_id": claim.UserID, "updated_at": utils.NowUTC()}).Error
		if err != nil {
			return err
		}
		swapped = true
		return nil
	})
	return swapped, err
}

// RejectAndRelease reverts an approved claim and clears the owner when the
// business still belongs to the claimant.
func (c *DefaultClaimRepository) RejectAndRelease(claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error) {
	swapped := false
	err := c.db.Transaction(func(tx *gorm.DB) error {
		ok, err := updateClaimIf(tx, claim, expected)
		if err != nil || !ok {
			return err
		}

		err = tx.Model(&entity.Business{}).
			Where("id = ? AND owner_id = ?", claim.BusinessID, claim.UserID).
			Updates(map[string]any{"owner_id": nil, "updated_at": utils.NowUTC()}).Error
		if err != nil {
			return err
		}
		swapped = true
		return nil
	})
	return swapped, err
}

func updateClaimIf(db *gorm.DB, claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error) {
	now := utils.NowUTC()
	res := db.Model(&entity.OwnershipClaim{}).
		Where("id = ? AND status = ?", claim.ID, expected).
		Updates(map[string]any{
			"status":        claim.Status,
			"admin_message": claim.AdminMessage,
			"reviewed_by":   claim.ReviewedBy,
			"reviewed_at":   claim.ReviewedAt,
			"updated_at":    now,
		})
	if res.Error != nil {
		return false, mapWriteError(res.Error)
	}

	if res.RowsAffected == 0 {
		return false, nil
	}
	claim.UpdatedAt = now
	return true, nil
}
