package service

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
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

const (
	MassActionApprove = "approve"
	MassActionReject  = "reject"
	MassActionDelete  = "delete"
)

type DefaultReviewService struct {
	Reviews    ReviewRepository
	Businesses BusinessRepository
	Audit      *AuditService
	policy     *policy.ReviewPolicy
}

func NewReviewService(reviews ReviewRepository, businesses BusinessRepository, audit *AuditService) *DefaultReviewService {
	return &DefaultReviewService{
		Reviews:    reviews,
		Businesses: businesses,
		Audit:      audit,
		policy:     policy.NewReviewPolicy(),
	}
}

// CreatePublicReview stores an anonymous review as pending.
func (r *DefaultReviewService) CreatePublicReview(ctx context.Context, businessID string, req *contract.PublicReviewRequest) (*contract.ReviewResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	res := validation.ValidatePublicReviewData(validation.PublicReviewData{
		ReviewData:  validation.ReviewData{Rating: req.Rating, Title: req.Title, Content: req.Content},
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
	})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	business, apierr := findListedBusiness(r.Businesses, businessID)
	if apierr != nil {
		return nil, apierr
	}

	review := &entity.Review{
		BusinessID:  business.ID,
		AuthorName:  req.AuthorName,
		AuthorEmail: strings.ToLower(req.AuthorEmail),
		Rating:      req.Rating,
		Title:       req.Title,
		Comment:     req.Content,
		Status:      entity.ReviewPending,
	}
	return r.create(review)
}

func (r *DefaultReviewService) CreateUserReview(ctx context.Context, actor *entity.User, req *contract.UserReviewRequest) (*contract.ReviewResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	utils.Sanitize(req)
	res := validation.ValidateReviewData(validation.ReviewData{Rating: req.Rating, Title: req.Title, Content: req.Content})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	business, apierr := findListedBusiness(r.Businesses, req.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	if apierr = r.policy.CanReview(actor, business); apierr != nil {
		return nil, apierr
	}

	userID := actor.ID
	review := &entity.Review{
		BusinessID: business.ID,
		UserID:     &userID,
		AuthorName: actor.Username,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Content,
		Status:     entity.ReviewPending,
	}
	return r.create(review)
}

func (r *DefaultReviewService) create(review *entity.Review) (*contract.ReviewResponse, apierror.ErrorResponse) {
	if err := r.Reviews.Create(review); err != nil {
		log.Errorf("failed to save review: %v", err)
		return nil, apierror.InternalServerError
	}

	// Pending reviews don't move the rating, the hook runs anyway so every
	// write path behaves the same
	r.recompute(review.BusinessID)
	return toReviewResponse(review), nil
}

// ListBusinessReviews returns the publicly visible reviews of a listing.
func (r *DefaultReviewService) ListBusinessReviews(ctx context.Context, businessID string) ([]*contract.ReviewResponse, apierror.ErrorResponse) {
	if _, apierr := findListedBusiness(r.Businesses, businessID); apierr != nil {
		return nil, apierr
	}

	approved := entity.ReviewApproved
	reviews, err := r.Reviews.FindByBusiness(businessID, &approved)
	if err != nil {
		log.Errorf("failed to fetch reviews of business %s: %v", businessID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp[i] = toReviewResponse(review)
	}
	return resp, nil
}

func (r *DefaultReviewService) ApproveReview(ctx context.Context, actor *entity.User, reviewID int64, notes string) (*contract.ReviewResponse, apierror.ErrorResponse) {
	return r.moderate(actor, reviewID, entity.ReviewApproved, notes)
}

func (r *DefaultReviewService) RejectReview(ctx context.Context, actor *entity.User, reviewID int64, notes string) (*contract.ReviewResponse, apierror.ErrorResponse) {
	return r.moderate(actor, reviewID, entity.ReviewRejected, notes)
}

func (r *DefaultReviewService) moderate(actor *entity.User, reviewID int64, status entity.ReviewStatus, notes string) (*contract.ReviewResponse, apierror.ErrorResponse) {
	if reviewID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if apierr := r.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	review, apierr := r.findReview(reviewID)
	if apierr != nil {
		return nil, apierr
	}

	before := *review
	now := utils.NowUTC()
	moderator := actor.ID
	review.Status = status
	review.ModeratedBy = &moderator
	review.ModerationNotes = strings.TrimSpace(notes)
	review.ModeratedAt = &now

	if err := r.Reviews.Moderate(review); err != nil {
		log.Errorf("failed to moderate review %d: %v", review.ID, err)
		return nil, apierror.InternalServerError
	}

	r.recompute(review.BusinessID)

	action := AuditReviewApprove
	label := MassActionApprove
	if status == entity.ReviewRejected {
		action = AuditReviewReject
		label = MassActionReject
	}
	r.Audit.Record(actor.ID, action, "review", reviewResourceID(review), &before, review)
	metrics.ReviewModerations.WithLabelValues(label).Inc()
	return toReviewResponse(review), nil
}

// DeleteReview reads the review first, its business id is needed for the
// recomputation once the row is gone.
func (r *DefaultReviewService) DeleteReview(ctx context.Context, actor *entity.User, reviewID int64) apierror.ErrorResponse {
	if reviewID <= 0 {
		return apierror.InvalidIDError
	}

	if apierr := r.policy.CanModerate(actor); apierr != nil {
		return apierr
	}

	review, apierr := r.findReview(reviewID)
	if apierr != nil {
		return apierr
	}

	if err := r.Reviews.Delete(review.ID); err != nil {
		log.Errorf("failed to delete review %d: %v", review.ID, err)
		return apierror.InternalServerError
	}

	r.recompute(review.BusinessID)
	r.Audit.Record(actor.ID, AuditReviewDelete, "review", reviewResourceID(review), review, nil)
	metrics.ReviewModerations.WithLabelValues(MassActionDelete).Inc()
	return nil
}

// MassReviewAction applies one action to many reviews. Each id succeeds or
// fails on its own, a failure is reported and the loop moves on.
func (r *DefaultReviewService) MassReviewAction(ctx context.Context, actor *entity.User, req *contract.MassReviewActionRequest) (*contract.MassActionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	res := validation.ValidateMassReviewAction(validation.MassReviewAction{ReviewIDs: req.ReviewIDs, Action: req.Action})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	if apierr := r.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	resp := &contract.MassActionResponse{
		TotalRequested: len(req.ReviewIDs),
		Errors:         []*contract.MassActionError{},
	}

	for _, id := range req.ReviewIDs {
		var apierr apierror.ErrorResponse
		switch req.Action {
		case MassActionApprove:
			_, apierr = r.ApproveReview(ctx, actor, id, req.Notes)
		case MassActionReject:
			_, apierr = r.RejectReview(ctx, actor, id, req.Notes)
		case MassActionDelete:
			apierr = r.DeleteReview(ctx, actor, id)
		}

		if apierr != nil {
			resp.Errors = append(resp.Errors, &contract.MassActionError{ReviewID: id, Error: describe(apierr)})
			continue
		}
		resp.SuccessCount++
	}
	return resp, nil
}

// UpdateBusinessRating recomputes rating and count from approved reviews.
func (r *DefaultReviewService) UpdateBusinessRating(businessID string) error {
	stats, err := r.Reviews.RatingStats(businessID)
	if err != nil {
		return fmt.Errorf("rating stats for %s: %w", businessID, err)
	}

	stats.Average = utils.RoundTo(stats.Average, 1)
	if err = r.Businesses.UpdateRating(businessID, stats); err != nil {
		return fmt.Errorf("update rating of %s: %w", businessID, err)
	}
	return nil
}

// recompute swallows failures: a stale rating is tolerated, the reconciler
// job fixes it on its next pass.
func (r *DefaultReviewService) recompute(businessID string) {
	if err := r.UpdateBusinessRating(businessID); err != nil {
		log.Warnf("rating recomputation skipped: %v", err)
		metrics.RatingRecomputeFailures.Inc()
	}
}

func (r *DefaultReviewService) findReview(id int64) (*entity.Review, apierror.ErrorResponse) {
	review, err := r.Reviews.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch review %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if review == nil {
		return nil, apierror.NewNotFound("Review")
	}
	return review, nil
}

// describe flattens an error response into one line for batch summaries.
func describe(apierr apierror.ErrorResponse) string {
	switch e := apierr.(type) {
	case *apierror.APIError:
		return e.Message
	case *apierror.PartialFailureError:
		return e.Message
	case *apierror.StructuredError:
		fields := slices.Sorted(maps.Keys(e.Errors))
		for _, field := range fields {
			if problems := e.Errors[field]; len(problems) > 0 {
				return field + ": " + problems[0]
			}
		}
	}
	return http.StatusText(apierr.Code())
}
