package service

import (
	"context"
	"net/http"
	"testing"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/uid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessService_SubmitAndModerate(t *testing.T) {
	uid.Init(1)
	env := newTestEnv(t)
	svc := env.businessService()

	submitted, apierr := svc.SubmitBusiness(context.Background(), env.other, &contract.CreateBusinessRequest{
		Title: "  Corner Bakery ",
		City:  "Lisbon",
	})
	require.Nil(t, apierr)
	assert.NotEmpty(t, submitted.ID)
	assert.Equal(t, "Corner Bakery", submitted.Title)
	assert.Equal(t, string(entity.ListingPending), submitted.Status)

	_, apierr = svc.GetBusiness(context.Background(), nil, submitted.ID)
	requireCode(t, http.StatusNotFound, apierr)

	_, apierr = svc.GetBusiness(context.Background(), env.other, submitted.ID)
	assert.Nil(t, apierr)

	_, apierr = svc.ModerateBusiness(context.Background(), env.owner, submitted.ID, &contract.ModerateBusinessRequest{Status: "approved"})
	requireCode(t, http.StatusForbidden, apierr)

	_, apierr = svc.ModerateBusiness(context.Background(), env.admin, submitted.ID, &contract.ModerateBusinessRequest{Status: "pending"})
	requireCode(t, http.StatusBadRequest, apierr)

	moderated, apierr := svc.ModerateBusiness(context.Background(), env.admin, submitted.ID, &contract.ModerateBusinessRequest{Status: "approved"})
	require.Nil(t, apierr)
	assert.Equal(t, string(entity.ListingApproved), moderated.Status)

	_, apierr = svc.ModerateBusiness(context.Background(), env.admin, submitted.ID, &contract.ModerateBusinessRequest{Status: "rejected"})
	requireCode(t, http.StatusConflict, apierr)

	public, apierr := svc.GetBusiness(context.Background(), nil, submitted.ID)
	require.Nil(t, apierr)
	assert.False(t, public.Claimed)
}

func TestBusinessService_CreateBusiness(t *testing.T) {
	uid.Init(1)
	env := newTestEnv(t)
	svc := env.businessService()
	require.NoError(t, env.db.Create(&entity.Category{ID: 7, Name: "Cafe", Slug: "cafe"}).Error)

	_, apierr := svc.CreateBusiness(context.Background(), env.owner, &contract.CreateBusinessRequest{Title: "Nope"})
	requireCode(t, http.StatusForbidden, apierr)

	_, apierr = svc.CreateBusiness(context.Background(), env.admin, &contract.CreateBusinessRequest{Title: "   "})
	requireCode(t, http.StatusBadRequest, apierr)

	_, apierr = svc.CreateBusiness(context.Background(), env.admin, &contract.CreateBusinessRequest{Title: "Bad site", Website: "not a url"})
	requireCode(t, http.StatusBadRequest, apierr)

	missing := int64(99)
	_, apierr = svc.CreateBusiness(context.Background(), env.admin, &contract.CreateBusinessRequest{Title: "Cafe", CategoryID: &missing})
	requireCode(t, http.StatusNotFound, apierr)

	cat := int64(7)
	created, apierr := svc.CreateBusiness(context.Background(), env.admin, &contract.CreateBusinessRequest{
		ID:         "blue-door-cafe",
		Title:      "Blue Door Cafe",
		CategoryID: &cat,
		Website:    "https://bluedoor.example.com",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "blue-door-cafe", created.ID)
	assert.Equal(t, string(entity.ListingApproved), created.Status)

	_, apierr = svc.CreateBusiness(context.Background(), env.admin, &contract.CreateBusinessRequest{ID: "blue-door-cafe", Title: "Again"})
	requireCode(t, http.StatusConflict, apierr)
}

func TestBusinessService_BulkDelete(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	env.seedBusiness(t, "b2", owned(ownerID))
	seedReview(t, env, "b1", 5, entity.ReviewApproved)
	svc := env.businessService()

	_, apierr := svc.BulkDeleteBusinesses(context.Background(), env.owner, &contract.BulkDeleteRequest{BusinessIDs: []string{"b1"}})
	requireCode(t, http.StatusForbidden, apierr)

	_, apierr = svc.BulkDeleteBusinesses(context.Background(), env.admin, &contract.BulkDeleteRequest{})
	requireCode(t, http.StatusBadRequest, apierr)

	resp, apierr := svc.BulkDeleteBusinesses(context.Background(), env.admin, &contract.BulkDeleteRequest{
		BusinessIDs: []string{"b1", "ghost", "b2"},
	})
	require.Nil(t, apierr)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 3, resp.TotalRequested)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "ghost", resp.Errors[0].BusinessID)

	b, err := env.businesses.FindByID("b1")
	require.NoError(t, err)
	assert.Nil(t, b)

	reviews, err := env.reviews.FindByBusiness("b1", nil)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestUnlistedBusinessRejectsContributions(t *testing.T) {
	env := newTestEnv(t)
	for _, status := range []entity.ListingStatus{entity.ListingPending, entity.ListingRejected} {
		id := "hidden-" + string(status)
		require.NoError(t, env.businesses.Create(&entity.Business{ID: id, Title: "Unlisted " + id, Status: status}))

		_, apierr := env.businessService().GetBusiness(context.Background(), nil, id)
		requireCode(t, http.StatusNotFound, apierr)

		_, apierr = env.reviewService().CreatePublicReview(context.Background(), id, &contract.PublicReviewRequest{
			Rating:      5,
			AuthorName:  "Ana",
			AuthorEmail: "ana@example.com",
		})
		requireCode(t, http.StatusNotFound, apierr)

		_, apierr = env.reviewService().CreateUserReview(context.Background(), env.other, &contract.UserReviewRequest{
			BusinessID: id,
			Rating:     4,
		})
		requireCode(t, http.StatusNotFound, apierr)

		_, apierr = env.reviewService().ListBusinessReviews(context.Background(), id)
		requireCode(t, http.StatusNotFound, apierr)

		_, apierr = env.leadService().CreateLead(context.Background(), &contract.CreateLeadRequest{
			BusinessID: id,
			Name:       "Ana",
			Email:      "ana@example.com",
			Message:    "Do you deliver?",
		})
		requireCode(t, http.StatusNotFound, apierr)

		_, apierr = env.claimService().CreateClaim(context.Background(), env.other, &contract.CreateClaimRequest{
			BusinessID: id,
			Message:    validClaimMessage,
		})
		requireCode(t, http.StatusNotFound, apierr)

		claims, err := env.claims.FindByUserID(otherID)
		require.NoError(t, err)
		assert.Empty(t, claims)
		assert.Nil(t, env.reloadBusiness(t, id).OwnerID)
	}
}
