package validation

import (
	"strings"
	"unicode/utf8"

	"bizdirectory/cmd/internal/domain/entity"
)

type ClaimCreation struct {
	UserID     int64  `json:"user_id" validate:"gt=0"`
	BusinessID string `json:"business_id" validate:"required,notblank"`
	Message    string `json:"message" validate:"required,mintrim=50"`
}

type LeadData struct {
	BusinessID  string `json:"business_id" validate:"required,notblank"`
	SenderName  string `json:"name" validate:"required,notblank,max=255"`
	SenderEmail string `json:"email" validate:"required,email"`
	Message     string `json:"message" validate:"required,notblank,max=5000"`
}

type ReviewData struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content" validate:"max=2000"`
}

type PublicReviewData struct {
	ReviewData
	AuthorName  string `json:"author_name" validate:"required,notblank,max=255"`
	AuthorEmail string `json:"author_email" validate:"required,email"`
}

type MassReviewAction struct {
	ReviewIDs []int64 `json:"review_ids" validate:"required,min=1,max=50,dive,gt=0"`
	Action    string  `json:"action" validate:"required,oneof=approve reject delete"`
}

type BulkDelete struct {
	BusinessIDs []string `json:"business_ids" validate:"required,min=1,max=100,nodupes,dive,notblank"`
}

func ValidateClaimCreation(in ClaimCreation) Result {
	return check(in)
}

func ValidateClaimStatus(status string) Result {
	if !entity.IsValidClaimStatus(status) {
		return invalid("status", "must be one of: pending approved rejected")
	}
	return ok()
}

// ValidateClaimRejection checks the admin explanation that accompanies a
// rejected claim or featured request.
func ValidateClaimRejection(message string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(message)) < MinRejectionMessageLength {
		return invalid("admin_message", "must be at least 10 characters")
	}
	return ok()
}

func ValidateLeadData(in LeadData) Result {
	return check(in)
}

// ValidateReviewData length bounds count runes, not bytes.
func ValidateReviewData(in ReviewData) Result {
	return check(in)
}

func ValidatePublicReviewData(in PublicReviewData) Result {
	if res := ValidateReviewData(in.ReviewData); !res.Valid {
		return res
	}
	return check(in)
}

func ValidateMassReviewAction(in MassReviewAction) Result {
	return check(in)
}

func ValidateBulkDeleteRequest(in BulkDelete) Result {
	return check(in)
}

func ValidateLeadStatus(status string) Result {
	if !entity.IsValidLeadStatus(status) {
		return invalid("status", "must be one of: new contacted qualified converted closed")
	}
	return ok()
}

type BusinessData struct {
	Title      string `json:"title" validate:"required,notblank,max=255"`
	City       string `json:"city" validate:"max=120"`
	Phone      string `json:"phone" validate:"max=40"`
	Website    string `json:"website" validate:"omitempty,url,max=500"`
	CategoryID *int64 `json:"category_id" validate:"omitempty,gt=0"`
}

func ValidateBusinessData(in BusinessData) Result {
	return check(in)
}

func ValidateListingDecision(status string) Result {
	switch entity.ListingStatus(status) {
	case entity.ListingApproved, entity.ListingRejected:
		return ok()
	}
	return invalid("status", "must be one of: approved rejected")
}
