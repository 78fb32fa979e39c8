package models

const (
	PayoutPending  = "pending"
	PayoutApproved = "approved"
	PayoutPaid     = "paid"
	PayoutRejected = "rejected"
)

type Payout struct {
	ID               int            `json:"id"`
	Cleaner          *BookingParty  `json:"cleaner"`
	PaymentMethod    *PaymentMethod `json:"payment_method"`
	Amount           string         `json:"amount"`
	Status           string         `json:"status"`
	DisputesTotal    int            `json:"disputes_total"`
	DisputesPending  int            `json:"disputes_pending"`
	DisputesResolved int            `json:"disputes_resolved"`
	RejectionReason  string         `json:"rejection_reason,omitempty"`
	RequestedAt      string         `json:"requested_at,omitempty"`
	PaidAt           string         `json:"paid_at,omitempty"`
}

// PayoutRequest is the cleaner's "request payout" form
type PayoutRequest struct {
	Amount          string `json:"amount" validate:"required,numeric"`
	PaymentMethodID int    `json:"payment_method_id" validate:"required,gt=0"`
}

// RejectPayoutRequest carries the admin's reason for rejecting
type RejectPayoutRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CleanerBalance summarises what a cleaner can request
type CleanerBalance struct {
	Available string `json:"available"`
	Pending   string `json:"pending"`
	PaidOut   string `json:"paid_out"`
}
