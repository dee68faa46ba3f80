package service

import (
	"context"
	"errors"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/policy"
	"bizdirectory/cmd/internal/domain/validation"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"
	"bizdirectory/cmd/internal/utils/uid"

	"github.com/labstack/gommon/log"
)

type DefaultBusinessService struct {
	Businesses BusinessRepository
	Categories CategoryRepository
	Audit      *AuditService
	policy     *policy.BusinessPolicy
}

func NewBusinessService(businesses BusinessRepository, categories CategoryRepository, audit *AuditService) *DefaultBusinessService {
	return &DefaultBusinessService{
		Businesses: businesses,
		Categories: categories,
		Audit:      audit,
		policy:     policy.NewBusinessPolicy(),
	}
}

// GetBusiness returns approved listings to anyone. Pending and rejected
// listings are only visible to moderators and to whoever submitted them.
func (b *DefaultBusinessService) GetBusiness(ctx context.Context, actor *entity.User, id string) (*contract.BusinessResponse, apierror.ErrorResponse) {
	business, apierr := findBusiness(b.Businesses, id)
	if apierr != nil {
		return nil, apierr
	}

	if business.Status != entity.ListingApproved && !b.canSeeUnlisted(actor, business) {
		return nil, apierror.NewNotFound("Business")
	}
	return toBusinessResponse(business), nil
}

// SubmitBusiness is the public suggestion path. The listing waits for
// moderation before it is shown.
func (b *DefaultBusinessService) SubmitBusiness(ctx context.Context, actor *entity.User, req *contract.CreateBusinessRequest) (*contract.BusinessResponse, apierror.ErrorResponse) {
	business, apierr := b.buildBusiness(req)
	if apierr != nil {
		return nil, apierr
	}

	business.ID = uid.GenerateString()
	business.Status = entity.ListingPending
	if actor != nil {
		business.SubmittedByID = utils.Int64Ptr(actor.ID)
	}

	if apierr = b.save(business); apierr != nil {
		return nil, apierr
	}
	return toBusinessResponse(business), nil
}

// CreateBusiness inserts a platform owned listing that is live immediately.
// A caller supplied id is kept, so imports can preserve their slugs.
func (b *DefaultBusinessService) CreateBusiness(ctx context.Context, actor *entity.User, req *contract.CreateBusinessRequest) (*contract.BusinessResponse, apierror.ErrorResponse) {
	if apierr := b.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	business, apierr := b.buildBusiness(req)
	if apierr != nil {
		return nil, apierr
	}

	if req.ID != "" {
		business.ID = req.ID
	} else {
		business.ID = uid.GenerateString()
	}
	business.Status = entity.ListingApproved

	if apierr = b.save(business); apierr != nil {
		return nil, apierr
	}

	b.Audit.Record(actor.ID, AuditBusinessCreate, "business", business.ID, nil, business)
	return toBusinessResponse(business), nil
}

func (b *DefaultBusinessService) ModerateBusiness(ctx context.Context, actor *entity.User, id string, req *contract.ModerateBusinessRequest) (*contract.BusinessResponse, apierror.ErrorResponse) {
	if apierr := b.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if apierr := apierror.FromResult(validation.ValidateListingDecision(req.Status)); apierr != nil {
		return nil, apierr
	}

	business, apierr := findBusiness(b.Businesses, id)
	if apierr != nil {
		return nil, apierr
	}

	if business.Status != entity.ListingPending {
		return nil, apierror.NewConflictError("Business is already %s", business.Status)
	}

	to := entity.ListingStatus(req.Status)
	swapped, err := b.Businesses.UpdateStatusIf(business.ID, entity.ListingPending, to)
	if err != nil {
		log.Errorf("failed to moderate business %s: %v", business.ID, err)
		return nil, apierror.InternalServerError
	}

	if !swapped {
		return nil, apierror.NewConflictError("Business was modified by another moderator, reload and try again")
	}

	before := *business
	business.Status = to
	business.UpdatedAt = utils.NowUTC()
	b.Audit.Record(actor.ID, AuditBusinessStatus, "business", business.ID, &before, business)
	return toBusinessResponse(business), nil
}

// BulkDeleteBusinesses removes each listing independently. Failures are
// collected in the summary and never stop the rest of the batch.
func (b *DefaultBusinessService) BulkDeleteBusinesses(ctx context.Context, actor *entity.User, req *contract.BulkDeleteRequest) (*contract.BulkDeleteResponse, apierror.ErrorResponse) {
	if apierr := b.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	res := validation.ValidateBulkDeleteRequest(validation.BulkDelete{BusinessIDs: req.BusinessIDs})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	resp := &contract.BulkDeleteResponse{
		TotalRequested: len(req.BusinessIDs),
		Errors:         make([]*contract.BulkDeleteError, 0),
	}

	for _, id := range req.BusinessIDs {
		if err := b.deleteOne(actor, id); err != "" {
			resp.Errors = append(resp.Errors, &contract.BulkDeleteError{BusinessID: id, Error: err})
			continue
		}
		resp.SuccessCount++
	}
	return resp, nil
}

func (b *DefaultBusinessService) deleteOne(actor *entity.User, id string) string {
	business, err := b.Businesses.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch business %s: %v", id, err)
		return "internal error"
	}

	if business == nil {
		return "business not found"
	}

	if err = b.Businesses.Delete(id); err != nil {
		log.Errorf("failed to delete business %s: %v", id, err)
		return "failed to delete business"
	}

	b.Audit.Record(actor.ID, AuditBusinessDelete, "business", id, business, nil)
	return ""
}

func (b *DefaultBusinessService) buildBusiness(req *contract.CreateBusinessRequest) (*entity.Business, apierror.ErrorResponse) {
	utils.Sanitize(req)
	res := validation.ValidateBusinessData(validation.BusinessData{
		Title:      req.Title,
		City:       req.City,
		Phone:      req.Phone,
		Website:    req.Website,
		CategoryID: req.CategoryID,
	})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	if req.CategoryID != nil {
		category, err := b.Categories.FindByID(*req.CategoryID)
		if err != nil {
			log.Errorf("failed to fetch category %d: %v", *req.CategoryID, err)
			return nil, apierror.InternalServerError
		}

		if category == nil {
			return nil, apierror.NewNotFound("Category")
		}
	}

	return &entity.Business{
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		Phone:       req.Phone,
		Website:     req.Website,
		Description: req.Description,
	}, nil
}

func (b *DefaultBusinessService) save(business *entity.Business) apierror.ErrorResponse {
	if err := b.Businesses.Create(business); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return apierror.NewConflictError("A business with id %s already exists", business.ID)
		}
		log.Errorf("failed to save business: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (b *DefaultBusinessService) canSeeUnlisted(actor *entity.User, business *entity.Business) bool {
	if actor == nil {
		return false
	}

	if business.SubmittedByID != nil && *business.SubmittedByID == actor.ID {
		return true
	}
	return b.policy.CanModerate(actor) == nil
}
