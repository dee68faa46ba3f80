package service

import (
	"encoding/json"

	"bizdirectory/cmd/internal/domain/entity"

	"github.com/labstack/gommon/log"
)

const (
	AuditClaimApprove    = "claim.approve"
	AuditClaimReject     = "claim.reject"
	AuditClaimRevert     = "claim.revert"
	AuditClaimReopen     = "claim.reopen"
	AuditReviewApprove   = "review.approve"
	AuditReviewReject    = "review.reject"
	AuditReviewDelete    = "review.delete"
	AuditFeaturedApprove = "featured.approve"
	AuditFeaturedReject  = "featured.reject"
	AuditBusinessCreate  = "business.create"
	AuditBusinessStatus  = "business.status"
	AuditBusinessDelete  = "business.delete"
)

// AuditService keeps a trail of moderation decisions. Writing the trail
// never fails the decision itself.
type AuditService struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) *AuditService {
	return &AuditService{Repo: repo}
}

func (a *AuditService) Record(actorID int64, action, resourceType, resourceID string, before, after any) {
	if a == nil || a.Repo == nil {
		return
	}

	entry := &entity.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   snapshot(before),
		AfterJSON:    snapshot(after),
	}

	if err := a.Repo.Create(entry); err != nil {
		log.Warnf("audit: failed to record %s on %s/%s: %v", action, resourceType, resourceID, err)
	}
}

func snapshot(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
