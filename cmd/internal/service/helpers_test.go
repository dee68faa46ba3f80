package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"bizdirectory/cmd/internal/domain/database"
	"bizdirectory/cmd/internal/domain/database/repository"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	adminID  = int64(1)
	ownerID  = int64(2)
	otherID  = int64(3)
	moderID  = int64(4)
	bannedID = int64(5)
)

var validClaimMessage = strings.Repeat("I run this shop. ", 4)[:60]

type testEnv struct {
	db         *gorm.DB
	users      *repository.DefaultUserRepository
	businesses *repository.DefaultBusinessRepository
	categories *repository.DefaultCategoryRepository
	claims     *repository.DefaultClaimRepository
	reviews    *repository.DefaultReviewRepository
	featured   *repository.DefaultFeaturedRepository
	leads      *repository.DefaultLeadRepository
	audits     *repository.DefaultAuditRepository
	audit      *AuditService

	admin, owner, other, moderator, banned *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Init(database.Options{Driver: database.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)

	env := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		businesses: repository.NewBusinessRepository(db),
		categories: repository.NewCategoryRepository(db),
		claims:     repository.NewClaimRepository(db),
		reviews:    repository.NewReviewRepository(db),
		featured:   repository.NewFeaturedRepository(db),
		leads:      repository.NewLeadRepository(db),
		audits:     repository.NewAuditRepository(db),
	}
	env.audit = NewAuditService(env.audits)

	env.admin = env.seedUser(t, adminID, "admin", entity.PermissionAdministrator)
	env.owner = env.seedUser(t, ownerID, "owner", 0)
	env.other = env.seedUser(t, otherID, "other", 0)
	env.moderator = env.seedUser(t, moderID, "reviews-mod", entity.PermissionModerateReviews)
	env.banned = env.seedUser(t, bannedID, "banned", entity.PermissionAdministrator)
	require.NoError(t, db.Model(env.banned).Update("suspended", true).Error)
	env.banned.Suspended = true
	return env
}

func (e *testEnv) seedUser(t *testing.T, id int64, name string, perms entity.Permission) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Username: name, Email: name + "@example.com", Permissions: perms, Active: true}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) seedBusiness(t *testing.T, id string, owner *int64) *entity.Business {
	t.Helper()
	b := &entity.Business{ID: id, Title: "Listing " + id, OwnerID: owner, Status: entity.ListingApproved}
	require.NoError(t, e.businesses.Create(b))
	return b
}

func (e *testEnv) reloadBusiness(t *testing.T, id string) *entity.Business {
	t.Helper()
	b, err := e.businesses.FindByID(id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func (e *testEnv) claimService() *DefaultClaimService {
	return NewClaimService(e.claims, e.businesses, nil, e.audit, nil)
}

func (e *testEnv) reviewService() *DefaultReviewService {
	return NewReviewService(e.reviews, e.businesses, e.audit)
}

func (e *testEnv) leadService() *DefaultLeadService {
	return NewLeadService(e.leads, e.businesses, e.users, nil)
}

func (e *testEnv) featuredService() *DefaultFeaturedService {
	return NewFeaturedService(e.featured, e.businesses, e.audit, nil)
}

func (e *testEnv) businessService() *DefaultBusinessService {
	return NewBusinessService(e.businesses, e.categories, e.audit)
}

func owned(id int64) *int64 {
	return &id
}

func requireCode(t *testing.T, code int, apierr apierror.ErrorResponse) {
	t.Helper()
	require.NotNil(t, apierr, "expected an error with status %d", code)
	assert.Equal(t, code, apierr.Code())
}

// recordingNotifier captures notifications dispatched by services.
type recordingNotifier struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	claims   []*entity.OwnershipClaim
	leads    []*entity.Lead
	featured []*entity.FeaturedRequest
}

func (r *recordingNotifier) expect(n int) {
	r.wg.Add(n)
}

func (r *recordingNotifier) ClaimDecided(_ context.Context, claim *entity.OwnershipClaim) {
	defer r.wg.Done()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims = append(r.claims, claim)
}

func (r *recordingNotifier) LeadReceived(_ context.Context, lead *entity.Lead, _ *entity.Business) {
	defer r.wg.Done()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, lead)
}

func (r *recordingNotifier) FeaturedDecided(_ context.Context, req *entity.FeaturedRequest) {
	defer r.wg.Done()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.featured = append(r.featured, req)
}
