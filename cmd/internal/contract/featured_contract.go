package contract

type CreateFeaturedRequest struct {
	BusinessID string `json:"business_id"`
	Message    string `json:"message"`
}

type UpdateFeaturedStatusRequest struct {
	Status       string `json:"status"`
	AdminMessage string `json:"admin_message"`
}

type FeaturedResponse struct {
	ID           int64   `json:"id"`
	BusinessID   string  `json:"business_id"`
	UserID       int64   `json:"user_id"`
	Status       string  `json:"status"`
	Message      string  `json:"message"`
	AdminMessage string  `json:"admin_message,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
