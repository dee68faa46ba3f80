package service

import "bizdirectory/cmd/internal/domain/entity"

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
}

type BusinessRepository interface {
	FindByID(id string) (*entity.Business, error)
	FindAllIDs() ([]string, error)
	Create(business *entity.Business) error
	SetOwner(id string, ownerID *int64) error
	ClearOwnerIf(id string, ownerID int64) (bool, error)
	UpdateRating(id string, stats entity.RatingStats) error
	SetFeatured(id string, featured bool) error
	UpdateStatusIf(id string, from, to entity.ListingStatus) (bool, error)
	Delete(id string) error
}

type CategoryRepository interface {
	FindByID(id int64) (*entity.Category, error)
}

type ClaimRepository interface {
	Create(claim *entity.OwnershipClaim) error
	FindByID(id int64) (*entity.OwnershipClaim, error)
	FindByUserID(userID int64) ([]*entity.OwnershipClaim, error)
	FindAll(status *entity.ClaimStatus) ([]*entity.OwnershipClaim, error)
	SetEvidence(id int64, key string) error
	UpdateStatusIf(claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error)
}

// ClaimTransactor is implemented by claim stores that can write the claim
// and the business owner in a single transaction. Stores without it get the
// sequential path, which may end in a PartialFailureError.
type ClaimTransactor interface {
	ApproveAndTransfer(claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error)
	RejectAndRelease(claim *entity.OwnershipClaim, expected entity.ClaimStatus) (bool, error)
}

type ReviewRepository interface {
	Create(review *entity.Review) error
	FindByID(id int64) (*entity.Review, error)
	FindByBusiness(businessID string, status *entity.ReviewStatus) ([]*entity.Review, error)
	Moderate(review *entity.Review) error
	Delete(id int64) error
	RatingStats(businessID string) (entity.RatingStats, error)
}

type FeaturedRepository interface {
	Create(req *entity.FeaturedRequest) error
	FindByID(id int64) (*entity.FeaturedRequest, error)
	FindPending(userID int64, businessID string) (*entity.FeaturedRequest, error)
	FindAll(status *entity.FeaturedStatus) ([]*entity.FeaturedRequest, error)
	UpdateStatusIf(req *entity.FeaturedRequest, expected entity.FeaturedStatus) (bool, error)
}

type FeaturedTransactor interface {
	ApproveAndFeature(req *entity.FeaturedRequest, expected entity.FeaturedStatus) (bool, error)
}

type LeadRepository interface {
	Create(lead *entity.Lead) error
	FindByID(id int64) (*entity.Lead, error)
	UpdateStatus(id int64, status entity.LeadStatus) error
	FindForUnclaimed() ([]*entity.Lead, error)
	FindForOwner(ownerID int64) ([]*entity.Lead, error)
}

type AuditRepository interface {
	Create(entry *entity.AuditLog) error
}

type ConnectionRepository interface {
	Save(conn *entity.Connection) error
	Delete(connID string) error
	FindByUserID(userID int64) ([]string, error)
	FindStale(now int64, hbLimit int64) ([]*entity.Connection, error)
	UpdateHeartbeat(connID string, now int64) error
}
