package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRatingWrites struct {
	BusinessRepository
}

func (failingRatingWrites) UpdateRating(string, entity.RatingStats) error {
	return errors.New("disk full")
}

func seedReview(t *testing.T, env *testEnv, businessID string, rating int, status entity.ReviewStatus) *entity.Review {
	t.Helper()
	r := &entity.Review{BusinessID: businessID, AuthorName: "guest", Rating: rating, Status: status}
	require.NoError(t, env.reviews.Create(r))
	return r
}

func TestReviewService_RatingCountsApprovedOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b2", nil)
	svc := env.reviewService()

	var ids []int64
	for _, rating := range []int{3, 4, 5} {
		ids = append(ids, seedReview(t, env, "b2", rating, entity.ReviewPending).ID)
	}
	seedReview(t, env, "b2", 1, entity.ReviewPending)

	for _, id := range ids {
		_, apierr := svc.ApproveReview(context.Background(), env.moderator, id, "")
		require.Nil(t, apierr)
	}

	b := env.reloadBusiness(t, "b2")
	assert.Equal(t, 4.0, b.Rating)
	assert.Equal(t, int64(3), b.ReviewsCount)
}

func TestReviewService_RatingFollowsEveryChange(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	svc := env.reviewService()

	a := seedReview(t, env, "b1", 5, entity.ReviewPending)
	b := seedReview(t, env, "b1", 2, entity.ReviewPending)

	_, apierr := svc.ApproveReview(context.Background(), env.admin, a.ID, "")
	require.Nil(t, apierr)
	_, apierr = svc.ApproveReview(context.Background(), env.admin, b.ID, "")
	require.Nil(t, apierr)
	assert.Equal(t, 3.5, env.reloadBusiness(t, "b1").Rating)

	_, apierr = svc.RejectReview(context.Background(), env.admin, b.ID, "spam")
	require.Nil(t, apierr)
	biz := env.reloadBusiness(t, "b1")
	assert.Equal(t, 5.0, biz.Rating)
	assert.Equal(t, int64(1), biz.ReviewsCount)

	require.Nil(t, svc.DeleteReview(context.Background(), env.admin, a.ID))
	biz = env.reloadBusiness(t, "b1")
	assert.Equal(t, 0.0, biz.Rating)
	assert.Equal(t, int64(0), biz.ReviewsCount)
}

func TestReviewService_RatingRoundsToOneDecimal(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	for _, rating := range []int{5, 4, 4} {
		seedReview(t, env, "b1", rating, entity.ReviewApproved)
	}

	require.NoError(t, env.reviewService().UpdateBusinessRating("b1"))
	assert.Equal(t, 4.3, env.reloadBusiness(t, "b1").Rating)
}

func TestReviewService_RecomputeFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	review := seedReview(t, env, "b1", 4, entity.ReviewPending)
	svc := NewReviewService(env.reviews, failingRatingWrites{env.businesses}, env.audit)

	resp, apierr := svc.ApproveReview(context.Background(), env.admin, review.ID, "")
	require.Nil(t, apierr)
	assert.Equal(t, string(entity.ReviewApproved), resp.Status)

	// The moderation landed even though the aggregate is stale
	stored, err := env.reviews.FindByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewApproved, stored.Status)
	assert.Equal(t, int64(0), env.reloadBusiness(t, "b1").ReviewsCount)

	assert.Error(t, svc.UpdateBusinessRating("b1"))
}

func TestReviewService_MassActionBestEffort(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	first := seedReview(t, env, "b1", 4, entity.ReviewPending)
	second := seedReview(t, env, "b1", 2, entity.ReviewPending)
	svc := env.reviewService()

	resp, apierr := svc.MassReviewAction(context.Background(), env.moderator, &contract.MassReviewActionRequest{
		ReviewIDs: []int64{first.ID, second.ID, 999},
		Action:    MassActionApprove,
	})
	require.Nil(t, apierr)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 3, resp.TotalRequested)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, int64(999), resp.Errors[0].ReviewID)
	assert.NotEmpty(t, resp.Errors[0].Error)

	assert.Equal(t, 3.0, env.reloadBusiness(t, "b1").Rating)
}

func TestReviewService_MassActionDelete(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	a := seedReview(t, env, "b1", 4, entity.ReviewApproved)
	b := seedReview(t, env, "b1", 2, entity.ReviewApproved)
	svc := env.reviewService()

	resp, apierr := svc.MassReviewAction(context.Background(), env.admin, &contract.MassReviewActionRequest{
		ReviewIDs: []int64{a.ID, b.ID},
		Action:    MassActionDelete,
	})
	require.Nil(t, apierr)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Empty(t, resp.Errors)

	stored, err := env.reviews.FindByID(a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestReviewService_MassActionValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.reviewService()

	ids := make([]int64, 51)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	tests := []struct {
		name  string
		actor *entity.User
		req   *contract.MassReviewActionRequest
		code  int
	}{
		{"empty", env.admin, &contract.MassReviewActionRequest{Action: MassActionApprove}, 400},
		{"too many", env.admin, &contract.MassReviewActionRequest{ReviewIDs: ids, Action: MassActionApprove}, 400},
		{"unknown action", env.admin, &contract.MassReviewActionRequest{ReviewIDs: []int64{1}, Action: "archive"}, 400},
		{"no permission", env.owner, &contract.MassReviewActionRequest{ReviewIDs: []int64{1}, Action: MassActionApprove}, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apierr := svc.MassReviewAction(context.Background(), tt.actor, tt.req)
			requireCode(t, tt.code, apierr)
		})
	}
}

func TestReviewService_CreateReviews(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", owned(ownerID))
	svc := env.reviewService()

	resp, apierr := svc.CreatePublicReview(context.Background(), "b1", &contract.PublicReviewRequest{
		Rating:      5,
		Content:     "Great coffee",
		AuthorName:  "Sam",
		AuthorEmail: "Sam@Example.com",
	})
	require.Nil(t, apierr)
	assert.Equal(t, string(entity.ReviewPending), resp.Status)

	_, apierr = svc.CreatePublicReview(context.Background(), "b1", &contract.PublicReviewRequest{
		Rating:      6,
		AuthorName:  "Sam",
		AuthorEmail: "sam@example.com",
	})
	requireCode(t, http.StatusBadRequest, apierr)

	_, apierr = svc.CreatePublicReview(context.Background(), "missing", &contract.PublicReviewRequest{
		Rating:      3,
		AuthorName:  "Sam",
		AuthorEmail: "sam@example.com",
	})
	requireCode(t, http.StatusNotFound, apierr)

	_, apierr = svc.CreateUserReview(context.Background(), env.owner, &contract.UserReviewRequest{BusinessID: "b1", Rating: 5})
	requireCode(t, http.StatusForbidden, apierr)

	resp, apierr = svc.CreateUserReview(context.Background(), env.other, &contract.UserReviewRequest{BusinessID: "b1", Rating: 1})
	require.Nil(t, apierr)
	assert.Equal(t, string(entity.ReviewPending), resp.Status)

	// Pending reviews stay out of the aggregate
	assert.Equal(t, int64(0), env.reloadBusiness(t, "b1").ReviewsCount)

	listed, apierr := svc.ListBusinessReviews(context.Background(), "b1")
	require.Nil(t, apierr)
	assert.Empty(t, listed)
}

func TestReviewService_ModerationRequiresPermission(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	review := seedReview(t, env, "b1", 4, entity.ReviewPending)
	svc := env.reviewService()

	_, apierr := svc.ApproveReview(context.Background(), env.owner, review.ID, "")
	requireCode(t, http.StatusForbidden, apierr)

	_, apierr = svc.ApproveReview(context.Background(), nil, review.ID, "")
	requireCode(t, http.StatusUnauthorized, apierr)

	requireCode(t, http.StatusNotFound, svc.DeleteReview(context.Background(), env.admin, 999))
}

func TestDescribe_StructuredErrorPicksFirstField(t *testing.T) {
	se := apierror.NewStructured(http.StatusBadRequest)
	se.Add("title", "must be at most 255 characters")
	se.Add("rating", "must be at least 1")
	se.Add("content", "must be at most 2000 characters")

	for i := 0; i < 20; i++ {
		assert.Equal(t, "content: must be at most 2000 characters", describe(se))
	}
}
