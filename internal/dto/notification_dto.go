package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type NotificationRequest struct {
	Title       string  `json:"title"       validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required,min=1"`
	VideoURL    *string `json:"video_url"   validate:"omitempty,url"`
	Published   bool    `json:"published"`
}

// ReorderRequest carries the full resulting order: IDs[i] receives order
// index i. Persisted atomically in one transaction.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type NotificationResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoURL    *string `json:"video_url"`
	Published   bool    `json:"published"`
	OrderIndex  int     `json:"order_index"`
	CreatedAt   string  `json:"created_at"`
}
