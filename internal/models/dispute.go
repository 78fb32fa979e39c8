package models

const (
	DisputeOpen     = "open"
	DisputeReview   = "under_review"
	DisputeResolved = "resolved"
	DisputeRejected = "rejected"
)

type DisputeComment struct {
	ID        int    `json:"id"`
	Author    string `json:"author"`
	Role      string `json:"role,omitempty"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type Dispute struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	DisputeType  string           `json:"dispute_type"`
	Status       string           `json:"status"`
	Priority     string           `json:"priority"`
	Booking      int              `json:"booking,omitempty"`
	Payout       int              `json:"payout,omitempty"`
	PayoutAmount string           `json:"payout_amount"`
	RefundAmount string           `json:"refund_amount"`
	RaisedBy     string           `json:"raised_by,omitempty"`
	Comments     []DisputeComment `json:"comments"`
	CreatedAt    string           `json:"created_at,omitempty"`
}

// CreateDisputeRequest is the raise-dispute form
type CreateDisputeRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	DisputeType string `json:"dispute_type" validate:"required"`
	Booking     int    `json:"booking,omitempty"`
	Payout      int    `json:"payout,omitempty"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// DisputeCommentRequest adds a comment to a dispute
type DisputeCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// ResolveDisputeRequest is the admin resolution form
type ResolveDisputeRequest struct {
	Status       string `json:"status" validate:"required,oneof=resolved rejected under_review"`
	RefundAmount string `json:"refund_amount" validate:"omitempty,numeric"`
	Resolution   string `json:"resolution" validate:"required"`
}
