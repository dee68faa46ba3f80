package contract

type CreateBusinessRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CategoryID  *int64 `json:"category_id"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type ModerateBusinessRequest struct {
	Status string `json:"status"`
}

type BulkDeleteRequest struct {
	BusinessIDs []string `json:"business_ids"`
}

type BusinessResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	Phone        string  `json:"phone"`
	Website      string  `json:"website"`
	Description  string  `json:"description"`
	OwnerID      *int64  `json:"owner_id"`
	Claimed      bool    `json:"claimed"`
	Featured     bool    `json:"featured"`
	Rating       float64 `json:"rating"`
	ReviewsCount int64   `json:"reviews_count"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type BulkDeleteError struct {
	BusinessID string `json:"business_id"`
	Error      string `json:"error"`
}

type BulkDeleteResponse struct {
	SuccessCount   int                `json:"success_count"`
	TotalRequested int                `json:"total_requested"`
	Errors         []*BulkDeleteError `json:"errors"`
}
