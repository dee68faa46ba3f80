package policy

import (
	"net/http"
	"testing"

	"bizdirectory/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func owned(by int64) *entity.Business {
	return &entity.Business{ID: "biz", OwnerID: &by}
}

func TestCanAccessLead(t *testing.T) {
	unclaimed := &entity.Business{ID: "biz"}

	tests := []struct {
		name     string
		actorID  int64
		role     entity.Role
		business *entity.Business
		want     bool
	}{
		{"admin sees unclaimed", 1, entity.RoleAdmin, unclaimed, true},
		{"user cannot see unclaimed", 2, entity.RoleUser, unclaimed, false},
		{"owner sees own", 3, entity.RoleUser, owned(3), true},
		{"other user blocked", 4, entity.RoleUser, owned(3), false},
		{"admin blocked on claimed", 1, entity.RoleAdmin, owned(3), false},
		{"admin owner sees own", 1, entity.RoleAdmin, owned(1), true},
		{"missing business", 3, entity.RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessLead(tt.actorID, tt.role, tt.business))
		})
	}
}

func TestClaimPolicy(t *testing.T) {
	p := NewClaimPolicy()
	user := &entity.User{ID: 5, Active: true}

	assert.Nil(t, p.CanCreate(user, &entity.Business{ID: "biz"}))

	apierr := p.CanCreate(user, owned(5))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())

	suspended := &entity.User{ID: 6, Active: true, Suspended: true}
	apierr = p.CanCreate(suspended, &entity.Business{ID: "biz"})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	apierr = p.CanModerate(user)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	mod := &entity.User{ID: 7, Active: true, Permissions: entity.PermissionModerateClaims}
	assert.Nil(t, p.CanModerate(mod))

	admin := &entity.User{ID: 8, Active: true, Permissions: entity.PermissionAdministrator}
	assert.Nil(t, p.CanModerate(admin))
}

func TestClaimPolicy_CanAttachEvidence(t *testing.T) {
	p := NewClaimPolicy()
	user := &entity.User{ID: 5, Active: true}

	assert.Nil(t, p.CanAttachEvidence(user, &entity.OwnershipClaim{UserID: 5, Status: entity.ClaimPending}))

	apierr := p.CanAttachEvidence(user, &entity.OwnershipClaim{UserID: 9, Status: entity.ClaimPending})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())

	apierr = p.CanAttachEvidence(user, &entity.OwnershipClaim{UserID: 5, Status: entity.ClaimApproved})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
}

func TestReviewPolicy_CanReview(t *testing.T) {
	p := NewReviewPolicy()
	user := &entity.User{ID: 5, Active: true}

	assert.Nil(t, p.CanReview(user, owned(6)))

	apierr := p.CanReview(user, owned(5))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())
}

func TestFeaturedPolicy_CanRequest(t *testing.T) {
	p := NewFeaturedPolicy()
	user := &entity.User{ID: 5, Active: true}

	assert.Nil(t, p.CanRequest(user, owned(5)))

	apierr := p.CanRequest(user, owned(6))
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	featured := owned(5)
	featured.Featured = true
	apierr = p.CanRequest(user, featured)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
}
