package policy

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/apierror"
)

type ReviewPolicy struct{}

func NewReviewPolicy() *ReviewPolicy {
	return &ReviewPolicy{}
}

// CanReview rejects owners reviewing their own listing.
func (p *ReviewPolicy) CanReview(actor *entity.User, business *entity.Business) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if business.IsOwnedBy(actor.ID) {
		return forbiddenError("owners cannot review their own business")
	}
	return nil
}

func (p *ReviewPolicy) CanModerate(actor *entity.User) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if !actor.Permissions.HasEffective(moderateReviews) {
		return permError(moderateReviews)
	}
	return nil
}
