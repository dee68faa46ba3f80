package contract

const MaxEvidenceFileSizeBytes = 10 * 1024 * 1024

var ValidEvidenceFileTypes = []string{"pdf", "png", "jpg", "jpeg", "webp"}

type CreateClaimRequest struct {
	BusinessID string `json:"business_id"`
	Message    string `json:"message"`
}

type UpdateClaimStatusRequest struct {
	Status       string `json:"status"`
	AdminMessage string `json:"admin_message"`
}

type RevertClaimRequest struct {
	AdminMessage string `json:"admin_message"`
}

type ClaimResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	BusinessID   string  `json:"business_id"`
	Status       string  `json:"status"`
	Message      string  `json:"message"`
	AdminMessage string  `json:"admin_message,omitempty"`
	HasEvidence  bool    `json:"has_evidence"`
	ReviewedBy   *int64  `json:"reviewed_by,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ClaimDecisionResponse is returned by approve, reject and revert.
type ClaimDecisionResponse struct {
	Claim    *ClaimResponse    `json:"claim"`
	Business *BusinessResponse `json:"business,omitempty"`
	Message  string            `json:"message"`
}
