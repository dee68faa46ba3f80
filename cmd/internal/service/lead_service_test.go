package service

import (
	"context"
	"net/http"
	"testing"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendLead(t *testing.T, svc *DefaultLeadService, businessID string) *contract.LeadResponse {
	t.Helper()
	lead, apierr := svc.CreateLead(context.Background(), &contract.CreateLeadRequest{
		BusinessID: businessID,
		Name:       "Jordan",
		Email:      "Jordan@Example.com",
		Message:    "Do you cater events?",
	})
	require.Nil(t, apierr)
	return lead
}

func TestLeadService_AccessFollowsOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	leads := env.leadService()
	claims := env.claimService()

	lead := sendLead(t, leads, "b1")
	assert.Equal(t, string(entity.LeadNew), lead.Status)
	assert.Equal(t, "jordan@example.com", lead.Email)

	// Unclaimed: only admins
	assert.True(t, leads.CanUserAccessLead(context.Background(), adminID, lead.ID))
	assert.False(t, leads.CanUserAccessLead(context.Background(), ownerID, lead.ID))

	adminView, apierr := leads.GetLeadsForUser(context.Background(), adminID)
	require.Nil(t, apierr)
	require.Len(t, adminView, 1)

	claim := createClaim(t, claims, env.owner, "b1")
	_, apierr = claims.ApproveClaim(context.Background(), env.admin, claim.ID, "")
	require.Nil(t, apierr)

	// Claimed: only the owner, admins lose access
	assert.True(t, leads.CanUserAccessLead(context.Background(), ownerID, lead.ID))
	assert.False(t, leads.CanUserAccessLead(context.Background(), otherID, lead.ID))
	assert.False(t, leads.CanUserAccessLead(context.Background(), adminID, lead.ID))

	ownerView, apierr := leads.GetLeadsForUser(context.Background(), ownerID)
	require.Nil(t, apierr)
	require.Len(t, ownerView, 1)
	assert.Equal(t, lead.ID, ownerView[0].ID)

	otherView, apierr := leads.GetLeadsForUser(context.Background(), otherID)
	require.Nil(t, apierr)
	assert.Empty(t, otherView)

	adminView, apierr = leads.GetLeadsForUser(context.Background(), adminID)
	require.Nil(t, apierr)
	assert.Empty(t, adminView)

	_, apierr = leads.GetLead(context.Background(), env.other, lead.ID)
	requireCode(t, http.StatusForbidden, apierr)
}

func TestLeadService_FailsClosed(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	leads := env.leadService()
	lead := sendLead(t, leads, "b1")

	assert.False(t, leads.CanUserAccessLead(context.Background(), adminID, 999))
	assert.False(t, leads.CanUserAccessLead(context.Background(), 999, lead.ID))

	// Business vanished underneath the lead
	require.NoError(t, env.db.Exec("DELETE FROM businesses WHERE id = ?", "b1").Error)
	assert.False(t, leads.CanUserAccessLead(context.Background(), adminID, lead.ID))
}

func TestLeadService_UpdateStatusIsPermissive(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", owned(ownerID))
	leads := env.leadService()
	lead := sendLead(t, leads, "b1")

	for _, status := range []string{"closed", "new", "converted", "contacted"} {
		resp, apierr := leads.UpdateLeadStatus(context.Background(), env.owner, lead.ID, &contract.UpdateLeadStatusRequest{Status: status})
		require.Nil(t, apierr, status)
		assert.Equal(t, status, resp.Status)
	}

	_, apierr := leads.UpdateLeadStatus(context.Background(), env.owner, lead.ID, &contract.UpdateLeadStatusRequest{Status: "lost"})
	requireCode(t, http.StatusBadRequest, apierr)

	_, apierr = leads.UpdateLeadStatus(context.Background(), env.other, lead.ID, &contract.UpdateLeadStatusRequest{Status: "closed"})
	requireCode(t, http.StatusForbidden, apierr)

	got, apierr := leads.GetLead(context.Background(), env.owner, lead.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "contacted", got.Status)
}

func TestLeadService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "b1", nil)
	leads := env.leadService()

	_, apierr := leads.CreateLead(context.Background(), &contract.CreateLeadRequest{
		BusinessID: "b1",
		Name:       "Jordan",
		Email:      "not-an-email",
		Message:    "hello",
	})
	requireCode(t, http.StatusBadRequest, apierr)

	_, apierr = leads.CreateLead(context.Background(), &contract.CreateLeadRequest{
		BusinessID: "nope",
		Name:       "Jordan",
		Email:      "jordan@example.com",
		Message:    "hello",
	})
	requireCode(t, http.StatusNotFound, apierr)
}

func TestLeadService_NotifiesOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedBusiness(t, "claimed", owned(ownerID))
	env.seedBusiness(t, "unclaimed", nil)
	notifier := &recordingNotifier{}
	leads := NewLeadService(env.leads, env.businesses, env.users, notifier)

	sendLead(t, leads, "unclaimed")

	notifier.expect(1)
	sendLead(t, leads, "claimed")
	notifier.wg.Wait()

	require.Len(t, notifier.leads, 1)
	assert.Equal(t, "claimed", notifier.leads[0].BusinessID)
}
