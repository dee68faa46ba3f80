package policy

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/apierror"
)

type BusinessPolicy struct{}

func NewBusinessPolicy() *BusinessPolicy {
	return &BusinessPolicy{}
}

func (p *BusinessPolicy) CanModerate(actor *entity.User) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if !actor.Permissions.HasEffective(manageBusinesses) {
		return permError(manageBusinesses)
	}
	return nil
}

// FeaturedPolicy covers promotion requests for listings.
type FeaturedPolicy struct{}

func NewFeaturedPolicy() *FeaturedPolicy {
	return &FeaturedPolicy{}
}

// CanRequest checks if 'actor' may ask for 'business' to be featured:
// only the current owner, and only for a listing that is not featured yet.
func (p *FeaturedPolicy) CanRequest(actor *entity.User, business *entity.Business) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if !business.IsOwnedBy(actor.ID) {
		return forbiddenError("only the owner can request a featured listing")
	}

	if business.Featured {
		return apierror.NewConflictError("Business is already featured")
	}
	return nil
}

func (p *FeaturedPolicy) CanModerate(actor *entity.User) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if !actor.Permissions.HasEffective(manageFeatured) {
		return permError(manageFeatured)
	}
	return nil
}
