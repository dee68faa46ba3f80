package service

import (
	"context"
	"errors"
	"strings"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/policy"
	"bizdirectory/cmd/internal/domain/validation"
	"bizdirectory/cmd/internal/infrastructure/metrics"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

var (
	duplicateFeaturedError  = apierror.NewConflictError("You already have a pending featured request for this business")
	concurrentFeaturedError = apierror.NewConflictError("Featured request was modified by another moderator, reload and try again")
)

type DefaultFeaturedService struct {
	Requests   FeaturedRepository
	Businesses BusinessRepository
	Audit      *AuditService
	Notifier   Notifier
	policy     *policy.FeaturedPolicy
}

func NewFeaturedService(requests FeaturedRepository, businesses BusinessRepository, audit *AuditService, notifier Notifier) *DefaultFeaturedService {
	return &DefaultFeaturedService{
		Requests:   requests,
		Businesses: businesses,
		Audit:      audit,
		Notifier:   notifier,
		policy:     policy.NewFeaturedPolicy(),
	}
}

func (f *DefaultFeaturedService) CreateFeaturedRequest(ctx context.Context, actor *entity.User, req *contract.CreateFeaturedRequest) (*contract.FeaturedResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	utils.Sanitize(req)
	if req.BusinessID == "" {
		return nil, apierror.NewValidationError("business_id", "is required")
	}

	business, apierr := findBusiness(f.Businesses, req.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	if apierr = f.policy.CanRequest(actor, business); apierr != nil {
		return nil, apierr
	}

	pending, err := f.Requests.FindPending(actor.ID, business.ID)
	if err != nil {
		log.Errorf("failed to look up featured requests: %v", err)
		return nil, apierror.InternalServerError
	}

	if pending != nil {
		return nil, duplicateFeaturedError
	}

	request := &entity.FeaturedRequest{
		BusinessID: business.ID,
		UserID:     actor.ID,
		Status:     entity.FeaturedPending,
		Message:    req.Message,
	}

	if err = f.Requests.Create(request); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return nil, duplicateFeaturedError
		}
		log.Errorf("failed to save featured request: %v", err)
		return nil, apierror.InternalServerError
	}
	return toFeaturedResponse(request), nil
}

func (f *DefaultFeaturedService) ListFeaturedRequests(ctx context.Context, actor *entity.User, status string) ([]*contract.FeaturedResponse, apierror.ErrorResponse) {
	if apierr := f.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	var filter *entity.FeaturedStatus
	if status != "" {
		if apierr := apierror.FromResult(validation.ValidateClaimStatus(status)); apierr != nil {
			return nil, apierr
		}
		s := entity.FeaturedStatus(status)
		filter = &s
	}

	requests, err := f.Requests.FindAll(filter)
	if err != nil {
		log.Errorf("failed to list featured requests: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.FeaturedResponse, len(requests))
	for i, r := range requests {
		resp[i] = toFeaturedResponse(r)
	}
	return resp, nil
}

func (f *DefaultFeaturedService) UpdateFeaturedStatus(ctx context.Context, actor *entity.User, requestID int64, req *contract.UpdateFeaturedStatusRequest) (*contract.FeaturedResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	switch entity.FeaturedStatus(req.Status) {
	case entity.FeaturedApproved:
		return f.ApproveFeaturedRequest(ctx, actor, requestID, req.AdminMessage)
	case entity.FeaturedRejected:
		return f.RejectFeaturedRequest(ctx, actor, requestID, req.AdminMessage)
	default:
		return nil, apierror.NewValidationError("status", "must be one of: approved rejected")
	}
}

// ApproveFeaturedRequest promotes the listing, provided the requester still
// owns it at decision time.
func (f *DefaultFeaturedService) ApproveFeaturedRequest(ctx context.Context, actor *entity.User, requestID int64, adminMessage string) (*contract.FeaturedResponse, apierror.ErrorResponse) {
	request, apierr := f.loadPending(actor, requestID)
	if apierr != nil {
		return nil, apierr
	}

	business, apierr := findBusiness(f.Businesses, request.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	if !business.IsOwnedBy(request.UserID) {
		return nil, apierror.NewConflictError("Requester no longer owns this business")
	}

	before := *request
	f.decide(request, entity.FeaturedApproved, adminMessage, actor.ID)

	if tx, ok := f.Requests.(FeaturedTransactor); ok {
		swapped, err := tx.ApproveAndFeature(request, entity.FeaturedPending)
		if err != nil {
			log.Errorf("failed to approve featured request %d: %v", request.ID, err)
			return nil, apierror.InternalServerError
		}
		if !swapped {
			return nil, concurrentFeaturedError
		}
	} else {
		swapped, err := f.Requests.UpdateStatusIf(request, entity.FeaturedPending)
		if err != nil {
			log.Errorf("failed to approve featured request %d: %v", request.ID, err)
			return nil, apierror.InternalServerError
		}
		if !swapped {
			return nil, concurrentFeaturedError
		}

		if err = f.Businesses.SetFeatured(business.ID, true); err != nil {
			log.Errorf("featured request %d approved but business %s was not featured: %v", request.ID, business.ID, err)
			return nil, apierror.InternalServerError
		}
	}

	f.afterDecision(ctx, actor, AuditFeaturedApprove, &before, request)
	return toFeaturedResponse(request), nil
}

func (f *DefaultFeaturedService) RejectFeaturedRequest(ctx context.Context, actor *entity.User, requestID int64, adminMessage string) (*contract.FeaturedResponse, apierror.ErrorResponse) {
	if apierr := apierror.FromResult(validation.ValidateClaimRejection(adminMessage)); apierr != nil {
		return nil, apierr
	}

	request, apierr := f.loadPending(actor, requestID)
	if apierr != nil {
		return nil, apierr
	}

	before := *request
	f.decide(request, entity.FeaturedRejected, adminMessage, actor.ID)

	swapped, err := f.Requests.UpdateStatusIf(request, entity.FeaturedPending)
	if err != nil {
		log.Errorf("failed to reject featured request %d: %v", request.ID, err)
		return nil, apierror.InternalServerError
	}
	if !swapped {
		return nil, concurrentFeaturedError
	}

	f.afterDecision(ctx, actor, AuditFeaturedReject, &before, request)
	return toFeaturedResponse(request), nil
}

func (f *DefaultFeaturedService) loadPending(actor *entity.User, requestID int64) (*entity.FeaturedRequest, apierror.ErrorResponse) {
	if requestID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if apierr := f.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	request, err := f.Requests.FindByID(requestID)
	if err != nil {
		log.Errorf("failed to fetch featured request %d: %v", requestID, err)
		return nil, apierror.InternalServerError
	}

	if request == nil {
		return nil, apierror.NewNotFound("Featured request")
	}

	if request.Status != entity.FeaturedPending {
		return nil, apierror.NewConflictError("Featured request is already %s", request.Status)
	}
	return request, nil
}

func (f *DefaultFeaturedService) decide(req *entity.FeaturedRequest, status entity.FeaturedStatus, message string, reviewerID int64) {
	now := utils.NowUTC()
	req.Status = status
	req.AdminMessage = strings.TrimSpace(message)
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &now
}

func (f *DefaultFeaturedService) afterDecision(ctx context.Context, actor *entity.User, action string, before, after *entity.FeaturedRequest) {
	f.Audit.Record(actor.ID, action, "featured_request", featuredResourceID(after), before, after)
	metrics.FeaturedDecisions.WithLabelValues(string(after.Status)).Inc()

	if f.Notifier != nil {
		snapshot := *after
		go f.Notifier.FeaturedDecided(context.WithoutCancel(ctx), &snapshot)
	}
}
