package handler

import (
	"context"
	"net/http"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	CreatePublicReview(ctx context.Context, businessID string, req *contract.PublicReviewRequest) (*contract.ReviewResponse, apierror.ErrorResponse)
	CreateUserReview(ctx context.Context, actor *entity.User, req *contract.UserReviewRequest) (*contract.ReviewResponse, apierror.ErrorResponse)
	ListBusinessReviews(ctx context.Context, businessID string) ([]*contract.ReviewResponse, apierror.ErrorResponse)
	ApproveReview(ctx context.Context, actor *entity.User, reviewID int64, notes string) (*contract.ReviewResponse, apierror.ErrorResponse)
	RejectReview(ctx context.Context, actor *entity.User, reviewID int64, notes string) (*contract.ReviewResponse, apierror.ErrorResponse)
	DeleteReview(ctx context.Context, actor *entity.User, reviewID int64) apierror.ErrorResponse
	MassReviewAction(ctx context.Context, actor *entity.User, req *contract.MassReviewActionRequest) (*contract.MassActionResponse, apierror.ErrorResponse)
}

type DefaultReviewRoute struct {
	ReviewService ReviewService
}

func NewReviewDefault(reviewService ReviewService) *DefaultReviewRoute {
	return &DefaultReviewRoute{ReviewService: reviewService}
}

func (r *DefaultReviewRoute) GetBusinessReviews(c echo.Context) error {
	reviews, apierr := r.ReviewService.ListBusinessReviews(c.Request().Context(), c.Param("id"))
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}

func (r *DefaultReviewRoute) CreatePublicReview(c echo.Context) error {
	var req contract.PublicReviewRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	review, apierr := r.ReviewService.CreatePublicReview(c.Request().Context(), c.Param("id"), &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, review)
}

func (r *DefaultReviewRoute) CreateUserReview(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.UserReviewRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	review, apierr := r.ReviewService.CreateUserReview(c.Request().Context(), user, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, review)
}

func (r *DefaultReviewRoute) ApproveReview(c echo.Context) error {
	return r.moderate(c, r.ReviewService.ApproveReview)
}

func (r *DefaultReviewRoute) RejectReview(c echo.Context) error {
	return r.moderate(c, r.ReviewService.RejectReview)
}

type moderateFunc func(ctx context.Context, actor *entity.User, reviewID int64, notes string) (*contract.ReviewResponse, apierror.ErrorResponse)

func (r *DefaultReviewRoute) moderate(c echo.Context, fn moderateFunc) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	// The body is optional here
	var req contract.ModerateReviewRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return malformedBody(c)
		}
	}

	review, apierr := fn(c.Request().Context(), user, id, req.Notes)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, review)
}

func (r *DefaultReviewRoute) DeleteReview(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	if apierr = r.ReviewService.DeleteReview(c.Request().Context(), user, id); apierr != nil {
		return writeError(c, apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *DefaultReviewRoute) MassAction(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.MassReviewActionRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	summary, apierr := r.ReviewService.MassReviewAction(c.Request().Context(), user, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, summary)
}
