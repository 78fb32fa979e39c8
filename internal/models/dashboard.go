package models

// AdminDashboard is the super-admin statistics payload.
type AdminDashboard struct {
	TotalBookings     int            `json:"total_bookings"`
	PendingBookings   int            `json:"pending_bookings"`
	CompletedBookings int            `json:"completed_bookings"`
	TotalCleaners     int            `json:"total_cleaners"`
	ActiveCleaners    int            `json:"active_cleaners"`
	TotalClients      int            `json:"total_clients"`
	TotalRevenue      string         `json:"total_revenue"`
	PendingPayouts    int            `json:"pending_payouts"`
	OpenDisputes      int            `json:"open_disputes"`
	MonthlyRevenue    []MonthlyPoint `json:"monthly_revenue"`
	RecentBookings    []Booking      `json:"recent_bookings"`
}

// CleanerDashboard is the cleaner statistics payload.
type CleanerDashboard struct {
	UpcomingJobs  int            `json:"upcoming_jobs"`
	CompletedJobs int            `json:"completed_jobs"`
	TotalEarnings string         `json:"total_earnings"`
	Rating        float64        `json:"rating"`
	Balance       CleanerBalance `json:"balance"`
	NextBookings  []Booking      `json:"next_bookings"`
}

// CustomerDashboard is the customer statistics payload.
type CustomerDashboard struct {
	UpcomingBookings  int       `json:"upcoming_bookings"`
	CompletedBookings int       `json:"completed_bookings"`
	TotalSpent        string    `json:"total_spent"`
	OpenDisputes      int       `json:"open_disputes"`
	RecentBookings    []Booking `json:"recent_bookings"`
}

type MonthlyPoint struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}
