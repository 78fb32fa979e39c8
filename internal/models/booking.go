package models

// Booking statuses as sent by the backend. The set is a convention, not an
// enforced enum; unknown values are displayed as-is.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// BookingParty is the nested customer/cleaner summary inside a booking.
type BookingParty struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type Booking struct {
	ID             int           `json:"id"`
	Customer       *BookingParty `json:"customer"`
	Location       string        `json:"location"`
	Postcode       string        `json:"postcode,omitempty"`
	BookingDate    string        `json:"booking_date"`
	TimeSlot       string        `json:"time_slot"`
	Hours          float64       `json:"hours,omitempty"`
	Service        *Service      `json:"service"`
	AssignCleaner  *BookingParty `json:"assign_cleaner"`
	Status         string        `json:"status"`
	PaymentHasDone bool          `json:"payment_has_done"`
	TotalAmount    string        `json:"total_amount,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      string        `json:"created_at,omitempty"`
}

// CreateBookingRequest is the customer booking form
type CreateBookingRequest struct {
	Service     int     `json:"service" validate:"required,gt=0"`
	Location    string  `json:"location" validate:"required"`
	Postcode    string  `json:"postcode" validate:"required"`
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot    string  `json:"time_slot" validate:"required"`
	Hours       float64 `json:"hours" validate:"required,gt=0"`
	Notes       string  `json:"notes,omitempty"`
}

// AssignCleanerRequest is used by admins to assign a cleaner to a booking
type AssignCleanerRequest struct {
	CleanerID int `json:"cleaner_id" validate:"required,gt=0"`
}

// BookingStatusRequest changes the status of a booking
type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}
