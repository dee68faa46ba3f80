package contract

type PublicReviewRequest struct {
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}

type UserReviewRequest struct {
	BusinessID string `json:"business_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type ModerateReviewRequest struct {
	Notes string `json:"notes"`
}

type MassReviewActionRequest struct {
	ReviewIDs []int64 `json:"review_ids"`
	Action    string  `json:"action"`
	Notes     string  `json:"notes"`
}

type ReviewResponse struct {
	ID          int64   `json:"id"`
	BusinessID  string  `json:"business_id"`
	UserID      *int64  `json:"user_id,omitempty"`
	AuthorName  string  `json:"author_name,omitempty"`
	Rating      int     `json:"rating"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Status      string  `json:"status"`
	ModeratedBy *int64  `json:"moderated_by,omitempty"`
	ModeratedAt *string `json:"moderated_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type MassActionError struct {
	ReviewID int64  `json:"review_id"`
	Error    string `json:"error"`
}

type MassActionResponse struct {
	SuccessCount   int                `json:"success_count"`
	TotalRequested int                `json:"total_requested"`
	Errors         []*MassActionError `json:"errors"`
}
