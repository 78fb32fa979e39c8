package models

// ReportFilter bounds a report by booking date (inclusive, YYYY-MM-DD).
type ReportFilter struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `json:"status,omitempty"`
}

// BookingReportRow is one line of the bookings report.
type BookingReportRow struct {
	BookingID   int     `json:"booking_id"`
	BookingDate string  `json:"booking_date"`
	TimeSlot    string  `json:"time_slot"`
	Customer    string  `json:"customer"`
	Cleaner     string  `json:"cleaner"`
	Service     string  `json:"service"`
	Hours       float64 `json:"hours"`
	Amount      string  `json:"amount"`
	PlatformFee string  `json:"platform_fee"`
	Status      string  `json:"status"`
}

// RevenueReport aggregates revenue over the filter window.
type RevenueReport struct {
	GrossRevenue   string         `json:"gross_revenue"`
	PlatformFees   string         `json:"platform_fees"`
	CleanerPayouts string         `json:"cleaner_payouts"`
	Refunds        string         `json:"refunds"`
	Monthly        []MonthlyPoint `json:"monthly"`
}

// PayoutReportRow is one line of the payouts report.
type PayoutReportRow struct {
	PayoutID    int    `json:"payout_id"`
	Cleaner     string `json:"cleaner"`
	Method      string `json:"method"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
	PaidAt      string `json:"paid_at"`
}
