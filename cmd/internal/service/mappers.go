package service

import (
	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
)

func toBusinessResponse(b *entity.Business) *contract.BusinessResponse {
	if b == nil {
		return nil
	}

	return &contract.BusinessResponse{
		ID:           b.ID,
		Title:        b.Title,
		CategoryID:   b.CategoryID,
		Address:      b.Address,
		City:         b.City,
		State:        b.State,
		PostalCode:   b.PostalCode,
		Country:      b.Country,
		Phone:        b.Phone,
		Website:      b.Website,
		Description:  b.Description,
		OwnerID:      b.OwnerID,
		Claimed:      b.IsClaimed(),
		Featured:     b.Featured,
		Rating:       b.Rating,
		ReviewsCount: b.ReviewsCount,
		Status:       string(b.Status),
		CreatedAt:    utils.FormatEpoch(b.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(b.UpdatedAt),
	}
}

func toClaimResponse(c *entity.OwnershipClaim) *contract.ClaimResponse {
	return &contract.ClaimResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		BusinessID:   c.BusinessID,
		Status:       string(c.Status),
		Message:      c.Message,
		AdminMessage: c.AdminMessage,
		HasEvidence:  c.EvidenceKey != "",
		ReviewedBy:   c.ReviewedBy,
		ReviewedAt:   utils.FormatEpochPtr(c.ReviewedAt),
		CreatedAt:    utils.FormatEpoch(c.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(c.UpdatedAt),
	}
}

func toClaimResponses(claims []*entity.OwnershipClaim) []*contract.ClaimResponse {
	resp := make([]*contract.ClaimResponse, len(claims))
	for i, c := range claims {
		resp[i] = toClaimResponse(c)
	}
	return resp
}

// toReviewResponse never exposes the author email.
func toReviewResponse(r *entity.Review) *contract.ReviewResponse {
	return &contract.ReviewResponse{
		ID:          r.ID,
		BusinessID:  r.BusinessID,
		UserID:      r.UserID,
		AuthorName:  r.AuthorName,
		Rating:      r.Rating,
		Title:       r.Title,
		Content:     r.Comment,
		Status:      string(r.Status),
		ModeratedBy: r.ModeratedBy,
		ModeratedAt: utils.FormatEpochPtr(r.ModeratedAt),
		CreatedAt:   utils.FormatEpoch(r.CreatedAt),
	}
}

func toLeadResponse(l *entity.Lead) *contract.LeadResponse {
	return &contract.LeadResponse{
		ID:         l.ID,
		BusinessID: l.BusinessID,
		Name:       l.SenderName,
		Email:      l.SenderEmail,
		Phone:      l.SenderPhone,
		Message:    l.Message,
		Status:     string(l.Status),
		CreatedAt:  utils.FormatEpoch(l.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(l.UpdatedAt),
	}
}

func toLeadResponses(leads []*entity.Lead) []*contract.LeadResponse {
	resp := make([]*contract.LeadResponse, len(leads))
	for i, l := range leads {
		resp[i] = toLeadResponse(l)
	}
	return resp
}

func toFeaturedResponse(f *entity.FeaturedRequest) *contract.FeaturedResponse {
	return &contract.FeaturedResponse{
		ID:           f.ID,
		BusinessID:   f.BusinessID,
		UserID:       f.UserID,
		Status:       string(f.Status),
		Message:      f.Message,
		AdminMessage: f.AdminMessage,
		ReviewedAt:   utils.FormatEpochPtr(f.ReviewedAt),
		CreatedAt:    utils.FormatEpoch(f.CreatedAt),
	}
}
