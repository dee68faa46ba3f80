package policy

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/apierror"
)

// ClaimPolicy encapsulates all business rules for ownership claims.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type ClaimPolicy struct{}

func NewClaimPolicy() *ClaimPolicy {
	return &ClaimPolicy{}
}

// CanCreate checks if 'actor' may file a claim for 'business'.
func (p *ClaimPolicy) CanCreate(actor *entity.User, business *entity.Business) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if business.IsOwnedBy(actor.ID) {
		return apierror.NewConflictError("You already own this business")
	}
	return nil
}

func (p *ClaimPolicy) CanModerate(actor *entity.User) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if !actor.Permissions.HasEffective(moderateClaims) {
		return permError(moderateClaims)
	}
	return nil
}

// CanAttachEvidence only lets the claimant add documents, and only while
// the claim still waits for a decision.
func (p *ClaimPolicy) CanAttachEvidence(actor *entity.User, claim *entity.OwnershipClaim) apierror.ErrorResponse {
	if apierr := requireActor(actor); apierr != nil {
		return apierr
	}

	if claim == nil || claim.UserID != actor.ID {
		return apierror.NewNotFound("Claim")
	}

	if claim.Status != entity.ClaimPending {
		return apierror.NewConflictError("Evidence can only be attached to pending claims")
	}
	return nil
}
