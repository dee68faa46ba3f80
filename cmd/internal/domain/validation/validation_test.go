package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClaimCreation_MessageBoundary(t *testing.T) {
	base := ClaimCreation{UserID: 7, BusinessID: "biz-1"}

	base.Message = strings.Repeat("a", 49)
	res := ValidateClaimCreation(base)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "message")

	base.Message = strings.Repeat("a", 50)
	assert.True(t, ValidateClaimCreation(base).Valid)
}

func TestValidateClaimCreation_TrimsBeforeCounting(t *testing.T) {
	res := ValidateClaimCreation(ClaimCreation{
		UserID:     7,
		BusinessID: "biz-1",
		Message:    "   " + strings.Repeat("b", 49) + "   ",
	})
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Error)
}

func TestValidateClaimCreation_MissingReferences(t *testing.T) {
	res := ValidateClaimCreation(ClaimCreation{Message: strings.Repeat("c", 60)})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "user_id")
	assert.Contains(t, res.Problems, "business_id")
}

func TestValidateClaimStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		assert.True(t, ValidateClaimStatus(s).Valid, s)
	}
	assert.False(t, ValidateClaimStatus("archived").Valid)
	assert.False(t, ValidateClaimStatus("").Valid)
}

func TestValidateClaimRejection(t *testing.T) {
	assert.False(t, ValidateClaimRejection("too short").Valid)
	assert.False(t, ValidateClaimRejection("   short    ").Valid)
	assert.True(t, ValidateClaimRejection("ten chars!").Valid)
}

func TestValidateReviewData_RatingBoundaries(t *testing.T) {
	tests := []struct {
		rating int
		valid  bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
	}

	for _, tt := range tests {
		res := ValidateReviewData(ReviewData{Rating: tt.rating})
		assert.Equal(t, tt.valid, res.Valid, "rating %d", tt.rating)
	}
}

func TestValidateReviewData_Lengths(t *testing.T) {
	res := ValidateReviewData(ReviewData{Rating: 4, Title: strings.Repeat("t", MaxReviewTitleLength+1)})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "title")

	res = ValidateReviewData(ReviewData{Rating: 4, Content: strings.Repeat("c", MaxReviewContentLength+1)})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "content")

	res = ValidateReviewData(ReviewData{Rating: 4, Title: strings.Repeat("é", MaxReviewTitleLength), Content: strings.Repeat("c", MaxReviewContentLength)})
	assert.True(t, res.Valid)
}

func TestValidatePublicReviewData(t *testing.T) {
	valid := PublicReviewData{
		ReviewData:  ReviewData{Rating: 5, Title: "Great"},
		AuthorName:  "Sam",
		AuthorEmail: "sam@example.com",
	}
	assert.True(t, ValidatePublicReviewData(valid).Valid)

	blankName := valid
	blankName.AuthorName = "   "
	res := ValidatePublicReviewData(blankName)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "author_name")

	badEmail := valid
	badEmail.AuthorEmail = "not-an-email"
	res = ValidatePublicReviewData(badEmail)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "author_email")

	badRating := valid
	badRating.Rating = 6
	assert.False(t, ValidatePublicReviewData(badRating).Valid)
}

func TestValidateLeadData(t *testing.T) {
	lead := LeadData{
		BusinessID:  "biz-1",
		SenderName:  "Alex",
		SenderEmail: "alex@example.com",
		Message:     "Do you deliver on weekends?",
	}
	assert.True(t, ValidateLeadData(lead).Valid)

	lead.SenderEmail = "alex@"
	res := ValidateLeadData(lead)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "email")
}

func TestValidateMassReviewAction(t *testing.T) {
	assert.True(t, ValidateMassReviewAction(MassReviewAction{ReviewIDs: []int64{1, 2}, Action: "approve"}).Valid)
	assert.False(t, ValidateMassReviewAction(MassReviewAction{ReviewIDs: nil, Action: "approve"}).Valid)
	assert.False(t, ValidateMassReviewAction(MassReviewAction{ReviewIDs: []int64{1, 0}, Action: "delete"}).Valid)
	assert.False(t, ValidateMassReviewAction(MassReviewAction{ReviewIDs: []int64{1}, Action: "archive"}).Valid)

	ids := make([]int64, MaxMassReviewIDs+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	assert.False(t, ValidateMassReviewAction(MassReviewAction{ReviewIDs: ids, Action: "reject"}).Valid)
	assert.True(t, ValidateMassReviewAction(MassReviewAction{ReviewIDs: ids[:MaxMassReviewIDs], Action: "reject"}).Valid)
}

func TestValidateBulkDeleteRequest(t *testing.T) {
	assert.True(t, ValidateBulkDeleteRequest(BulkDelete{BusinessIDs: []string{"a", "b"}}).Valid)
	assert.False(t, ValidateBulkDeleteRequest(BulkDelete{}).Valid)
	assert.False(t, ValidateBulkDeleteRequest(BulkDelete{BusinessIDs: []string{"a", " "}}).Valid)

	ids := make([]string, MaxBulkDeleteIDs+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("biz-%d", i)
	}
	assert.False(t, ValidateBulkDeleteRequest(BulkDelete{BusinessIDs: ids}).Valid)
	assert.True(t, ValidateBulkDeleteRequest(BulkDelete{BusinessIDs: ids[:MaxBulkDeleteIDs]}).Valid)

	res := ValidateBulkDeleteRequest(BulkDelete{BusinessIDs: []string{"a", "b", "a"}})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"must not contain duplicates"}, res.Problems["business_ids"])
}

func TestValidateLeadStatus(t *testing.T) {
	for _, s := range []string{"new", "contacted", "qualified", "converted", "closed"} {
		assert.True(t, ValidateLeadStatus(s).Valid, s)
	}
	assert.False(t, ValidateLeadStatus("won").Valid)
}

func TestValidateBusinessData(t *testing.T) {
	assert.True(t, ValidateBusinessData(BusinessData{Title: "Corner Bakery", Website: "https://bakery.example"}).Valid)

	res := ValidateBusinessData(BusinessData{Title: "  "})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "title")

	res = ValidateBusinessData(BusinessData{Title: "Bakery", Website: "not a url"})
	assert.False(t, res.Valid)
	assert.Contains(t, res.Problems, "website")
}

func TestValidateListingDecision(t *testing.T) {
	assert.True(t, ValidateListingDecision("approved").Valid)
	assert.True(t, ValidateListingDecision("rejected").Valid)
	assert.False(t, ValidateListingDecision("pending").Valid)
}
