package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/policy"
	"bizdirectory/cmd/internal/domain/validation"
	"bizdirectory/cmd/internal/infrastructure/aws/storage"
	"bizdirectory/cmd/internal/infrastructure/metrics"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const (
	defaultApprovalMessage = "Your ownership claim has been approved."

	partialApproveMessage = "Claim was approved but ownership was not transferred, manual reconciliation required"
	partialRevertMessage  = "Claim was reverted but ownership was not released, manual reconciliation required"
)

var (
	concurrentClaimError = apierror.NewConflictError("Claim was modified by another moderator, reload and try again")
	activeClaimError     = apierror.NewConflictError("User already has an active claim for this business")
)

type DefaultClaimService struct {
	Claims     ClaimRepository
	Businesses BusinessRepository
	S3         storage.S3Client
	Audit      *AuditService
	Notifier   Notifier
	policy     *policy.ClaimPolicy
}

func NewClaimService(
	claims ClaimRepository,
	businesses BusinessRepository,
	s3 storage.S3Client,
	audit *AuditService,
	notifier Notifier,
) *DefaultClaimService {
	return &DefaultClaimService{
		Claims:     claims,
		Businesses: businesses,
		S3:         s3,
		Audit:      audit,
		Notifier:   notifier,
		policy:     policy.NewClaimPolicy(),
	}
}

func (c *DefaultClaimService) CreateClaim(ctx context.Context, actor *entity.User, req *contract.CreateClaimRequest) (*contract.ClaimResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	utils.Sanitize(req)
	res := validation.ValidateClaimCreation(validation.ClaimCreation{
		UserID:     actor.ID,
		BusinessID: req.BusinessID,
		Message:    req.Message,
	})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	business, apierr := findListedBusiness(c.Businesses, req.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	if apierr = c.policy.CanCreate(actor, business); apierr != nil {
		return nil, apierr
	}

	existing, err := c.Claims.FindByUserID(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch claims of user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	for _, claim := range existing {
		if claim.BusinessID == business.ID && claim.Status.Active() {
			return nil, apierror.NewConflictError("You already have a %s claim for this business", claim.Status)
		}
	}

	claim := &entity.OwnershipClaim{
		UserID:     actor.ID,
		BusinessID: business.ID,
		Status:     entity.ClaimPending,
		Message:    req.Message,
	}

	if err = c.Claims.Create(claim); err != nil {
		return nil, c.writeFailed(err, "create claim")
	}
	return toClaimResponse(claim), nil
}

func (c *DefaultClaimService) GetClaim(ctx context.Context, actor *entity.User, claimID int64) (*contract.ClaimResponse, apierror.ErrorResponse) {
	if claimID <= 0 {
		return nil, apierror.InvalidIDError
	}

	claim, apierr := c.findClaim(claimID)
	if apierr != nil {
		return nil, apierr
	}

	// Claimants may read their own claims, anyone else needs moderation rights
	if claim.UserID != actor.ID {
		if apierr = c.policy.CanModerate(actor); apierr != nil {
			return nil, apierror.NewNotFound("Claim")
		}
	}
	return toClaimResponse(claim), nil
}

func (c *DefaultClaimService) ListClaims(ctx context.Context, actor *entity.User, status string) ([]*contract.ClaimResponse, apierror.ErrorResponse) {
	if apierr := c.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	var filter *entity.ClaimStatus
	if status != "" {
		if apierr := apierror.FromResult(validation.ValidateClaimStatus(status)); apierr != nil {
			return nil, apierr
		}
		s := entity.ClaimStatus(status)
		filter = &s
	}

	claims, err := c.Claims.FindAll(filter)
	if err != nil {
		log.Errorf("failed to list claims: %v", err)
		return nil, apierror.InternalServerError
	}
	return toClaimResponses(claims), nil
}

func (c *DefaultClaimService) ListUserClaims(ctx context.Context, actor *entity.User) ([]*contract.ClaimResponse, apierror.ErrorResponse) {
	claims, err := c.Claims.FindByUserID(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch claims of user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}
	return toClaimResponses(claims), nil
}

// UpdateClaimStatus is the single entry point for moderators. It routes to
// the approve/reject rules so that no raw status write can bypass them.
func (c *DefaultClaimService) UpdateClaimStatus(ctx context.Context, actor *entity.User, claimID int64, req *contract.UpdateClaimStatusRequest) (*contract.ClaimDecisionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if apierr := apierror.FromResult(validation.ValidateClaimStatus(req.Status)); apierr != nil {
		return nil, apierr
	}

	switch entity.ClaimStatus(req.Status) {
	case entity.ClaimApproved:
		return c.ApproveClaim(ctx, actor, claimID, req.AdminMessage)
	case entity.ClaimRejected:
		return c.RejectClaim(ctx, actor, claimID, req.AdminMessage)
	default:
		return c.reopenClaim(ctx, actor, claimID, req.AdminMessage)
	}
}

func (c *DefaultClaimService) ApproveClaim(ctx context.Context, actor *entity.User, claimID int64, adminMessage string) (*contract.ClaimDecisionResponse, apierror.ErrorResponse) {
	if claimID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if apierr := c.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	claim, apierr := c.findClaim(claimID)
	if apierr != nil {
		return nil, apierr
	}

	switch claim.Status {
	case entity.ClaimApproved:
		return nil, apierror.NewConflictError("Claim is already approved")
	case entity.ClaimRejected:
		return nil, apierror.NewConflictError("Claim is rejected, reopen it first")
	}

	if claim.BusinessID == "" || claim.UserID <= 0 {
		return nil, apierror.NewValidationError("claim", "claim has no resolvable business or user reference")
	}

	business, apierr := c.findBusiness(claim.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	if business.IsClaimed() && !business.IsOwnedBy(claim.UserID) {
		log.Warnf("claim %d hands business %s over from user %d to user %d", claim.ID, business.ID, *business.OwnerID, claim.UserID)
	}

	before := *claim
	observed := claim.Status
	message := strings.TrimSpace(adminMessage)
	if message == "" {
		message = defaultApprovalMessage
	}
	c.decide(claim, entity.ClaimApproved, message, actor.ID)

	if tx, ok := c.Claims.(ClaimTransactor); ok {
		swapped, err := tx.ApproveAndTransfer(claim, observed)
		if err != nil {
			return nil, c.writeFailed(err, "approve claim")
		}
		if !swapped {
			return nil, concurrentClaimError
		}
	} else {
		swapped, err := c.Claims.UpdateStatusIf(claim, observed)
		if err != nil {
			return nil, c.writeFailed(err, "approve claim")
		}
		if !swapped {
			return nil, concurrentClaimError
		}

		ownerID := claim.UserID
		if err = c.Businesses.SetOwner(business.ID, &ownerID); err != nil {
			log.Errorf("claim %d approved but owner of business %s was not set: %v", claim.ID, business.ID, err)
			metrics.ClaimPartialFailures.Inc()
			return nil, apierror.NewPartialFailure(claim.ID, business.ID, partialApproveMessage)
		}
	}

	ownerID := claim.UserID
	business.OwnerID = &ownerID

	c.afterDecision(ctx, actor, AuditClaimApprove, &before, claim)
	return &contract.ClaimDecisionResponse{
		Claim:    toClaimResponse(claim),
		Business: toBusinessResponse(business),
		Message:  message,
	}, nil
}

func (c *DefaultClaimService) RejectClaim(ctx context.Context, actor *entity.User, claimID int64, adminMessage string) (*contract.ClaimDecisionResponse, apierror.ErrorResponse) {
	if claimID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if apierr := c.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	if apierr := apierror.FromResult(validation.ValidateClaimRejection(adminMessage)); apierr != nil {
		return nil, apierr
	}

	claim, apierr := c.findClaim(claimID)
	if apierr != nil {
		return nil, apierr
	}

	switch claim.Status {
	case entity.ClaimRejected:
		return nil, apierror.NewConflictError("Claim is already rejected")
	case entity.ClaimApproved:
		return nil, apierror.NewConflictError("Claim is approved, revert it to remove the ownership")
	}

	before := *claim
	observed := claim.Status
	message := strings.TrimSpace(adminMessage)
	c.decide(claim, entity.ClaimRejected, message, actor.ID)

	swapped, err := c.Claims.UpdateStatusIf(claim, observed)
	if err != nil {
		return nil, c.writeFailed(err, "reject claim")
	}
	if !swapped {
		return nil, concurrentClaimError
	}

	c.afterDecision(ctx, actor, AuditClaimReject, &before, claim)
	return &contract.ClaimDecisionResponse{
		Claim:   toClaimResponse(claim),
		Message: message,
	}, nil
}

// RevertClaim undoes an approval: the claim becomes rejected and the business
// goes back to the platform if the claimant still owns it.
func (c *DefaultClaimService) RevertClaim(ctx context.Context, actor *entity.User, claimID int64, adminMessage string) (*contract.ClaimDecisionResponse, apierror.ErrorResponse) {
	if claimID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if apierr := c.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	if apierr := apierror.FromResult(validation.ValidateClaimRejection(adminMessage)); apierr != nil {
		return nil, apierr
	}

	claim, apierr := c.findClaim(claimID)
	if apierr != nil {
		return nil, apierr
	}

	if claim.Status != entity.ClaimApproved {
		return nil, apierror.NewConflictError("Only approved claims can be reverted, claim is %s", claim.Status)
	}

	business, apierr := c.findBusiness(claim.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	before := *claim
	message := strings.TrimSpace(adminMessage)
	c.decide(claim, entity.ClaimRejected, message, actor.ID)

	if tx, ok := c.Claims.(ClaimTransactor); ok {
		swapped, err := tx.RejectAndRelease(claim, entity.ClaimApproved)
		if err != nil {
			return nil, c.writeFailed(err, "revert claim")
		}
		if !swapped {
			return nil, concurrentClaimError
		}
	} else {
		swapped, err := c.Claims.UpdateStatusIf(claim, entity.ClaimApproved)
		if err != nil {
			return nil, c.writeFailed(err, "revert claim")
		}
		if !swapped {
			return nil, concurrentClaimError
		}

		if _, err = c.Businesses.ClearOwnerIf(business.ID, claim.UserID); err != nil {
			log.Errorf("claim %d reverted but business %s still has its owner: %v", claim.ID, business.ID, err)
			metrics.ClaimPartialFailures.Inc()
			return nil, apierror.NewPartialFailure(claim.ID, business.ID, partialRevertMessage)
		}
	}

	if business.IsOwnedBy(claim.UserID) {
		business.OwnerID = nil
	}

	c.afterDecision(ctx, actor, AuditClaimRevert, &before, claim)
	return &contract.ClaimDecisionResponse{
		Claim:    toClaimResponse(claim),
		Business: toBusinessResponse(business),
		Message:  message,
	}, nil
}

// reopenClaim moves a rejected claim back to the queue.
func (c *DefaultClaimService) reopenClaim(ctx context.Context, actor *entity.User, claimID int64, adminMessage string) (*contract.ClaimDecisionResponse, apierror.ErrorResponse) {
	if claimID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if apierr := c.policy.CanModerate(actor); apierr != nil {
		return nil, apierr
	}

	claim, apierr := c.findClaim(claimID)
	if apierr != nil {
		return nil, apierr
	}

	switch claim.Status {
	case entity.ClaimPending:
		return nil, apierror.NewConflictError("Claim is already pending")
	case entity.ClaimApproved:
		return nil, apierror.NewConflictError("Approved claims must be reverted before they can be reopened")
	}

	before := *claim
	claim.Status = entity.ClaimPending
	claim.AdminMessage = strings.TrimSpace(adminMessage)
	claim.ReviewedBy = nil
	claim.ReviewedAt = nil

	swapped, err := c.Claims.UpdateStatusIf(claim, entity.ClaimRejected)
	if err != nil {
		return nil, c.writeFailed(err, "reopen claim")
	}
	if !swapped {
		return nil, concurrentClaimError
	}

	c.Audit.Record(actor.ID, AuditClaimReopen, "claim", claimResourceID(claim), &before, claim)
	return &contract.ClaimDecisionResponse{
		Claim:   toClaimResponse(claim),
		Message: "Claim reopened",
	}, nil
}

// AttachEvidence stores a supporting document for a pending claim in S3.
// A previous document is replaced.
func (c *DefaultClaimService) AttachEvidence(ctx context.Context, actor *entity.User, claimID int64, fileHeader *multipart.FileHeader) (*contract.ClaimResponse, apierror.ErrorResponse) {
	if claimID <= 0 {
		return nil, apierror.InvalidIDError
	}

	if c.S3 == nil {
		return nil, apierror.EvidenceDisabledError
	}

	if apierr := checkEvidenceFile(fileHeader); apierr != nil {
		return nil, apierr
	}

	claim, apierr := c.findClaim(claimID)
	if apierr != nil {
		return nil, apierr
	}

	if apierr = c.policy.CanAttachEvidence(actor, claim); apierr != nil {
		return nil, apierr
	}

	data, apierr := readUpload(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	key := storage.PathClaimEvidence + uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, err := c.S3.UploadFile(ctx, data, key); err != nil {
		log.Errorf("failed to upload evidence for claim %d: %v", claim.ID, err)
		return nil, apierror.InternalServerError
	}

	if err := c.Claims.SetEvidence(claim.ID, key); err != nil {
		log.Errorf("failed to store evidence key for claim %d: %v", claim.ID, err)
		return nil, apierror.InternalServerError
	}

	if claim.EvidenceKey != "" {
		c.deleteEvidence(ctx, claim.EvidenceKey)
	}

	claim.EvidenceKey = key
	return toClaimResponse(claim), nil
}

func (c *DefaultClaimService) deleteEvidence(ctx context.Context, key string) {
	err := c.S3.DeleteFile(ctx, key)

	var noKey *types.NoSuchKey
	if err != nil && !errors.As(err, &noKey) {
		log.Warnf("failed to delete old evidence %s: %v", key, err)
	}
}

func (c *DefaultClaimService) decide(claim *entity.OwnershipClaim, status entity.ClaimStatus, message string, reviewerID int64) {
	now := utils.NowUTC()
	claim.Status = status
	claim.AdminMessage = message
	claim.ReviewedBy = &reviewerID
	claim.ReviewedAt = &now
}

func (c *DefaultClaimService) afterDecision(ctx context.Context, actor *entity.User, action string, before, after *entity.OwnershipClaim) {
	c.Audit.Record(actor.ID, action, "claim", claimResourceID(after), before, after)
	metrics.ClaimDecisions.WithLabelValues(string(after.Status)).Inc()

	if c.Notifier != nil {
		snapshot := *after
		go c.Notifier.ClaimDecided(context.WithoutCancel(ctx), &snapshot)
	}
}

func (c *DefaultClaimService) findClaim(id int64) (*entity.OwnershipClaim, apierror.ErrorResponse) {
	claim, err := c.Claims.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch claim %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if claim == nil {
		return nil, apierror.NewNotFound("Claim")
	}
	return claim, nil
}

func (c *DefaultClaimService) findBusiness(id string) (*entity.Business, apierror.ErrorResponse) {
	return findBusiness(c.Businesses, id)
}

func (c *DefaultClaimService) writeFailed(err error, op string) apierror.ErrorResponse {
	if errors.Is(err, entity.ErrDuplicate) {
		return activeClaimError
	}

	log.Errorf("failed to %s: %v", op, err)
	return apierror.InternalServerError
}

func findBusiness(repo BusinessRepository, id string) (*entity.Business, apierror.ErrorResponse) {
	business, err := repo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch business %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if business == nil {
		return nil, apierror.NewNotFound("Business")
	}
	return business, nil
}

// findListedBusiness hides listings that are not approved yet, so they can't
// collect claims, reviews or leads.
func findListedBusiness(repo BusinessRepository, id string) (*entity.Business, apierror.ErrorResponse) {
	business, apierr := findBusiness(repo, id)
	if apierr != nil {
		return nil, apierr
	}

	if business.Status != entity.ListingApproved {
		return nil, apierror.NewNotFound("Business")
	}
	return business, nil
}

func checkEvidenceFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader == nil {
		return apierror.MissingFileError
	}

	if fileHeader.Size > contract.MaxEvidenceFileSizeBytes {
		return apierror.NewFileTooLargeError(contract.MaxEvidenceFileSizeBytes)
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.MissingFileNameError
	}

	if ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidEvidenceFileTypes); !ok {
		return apierror.NewInvalidFileExtError(ext)
	}
	return nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
