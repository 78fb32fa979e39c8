package viewmodel

import (
	"strings"

	"icc-dashboard/internal/models"
	"icc-dashboard/internal/timeutil"
)

type CleanerRow struct {
	ID          int     `json:"id"`
	CleanerID   string  `json:"cleaner_id"`
	Name        string  `json:"name"`
	Initials    string  `json:"initials"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	Severity    string  `json:"severity"`
	Rating      float64 `json:"rating"`
	TotalJobs   int     `json:"total_jobs"`
	DBAVerified bool    `json:"dba_verified"`
	Active      bool    `json:"active"`
	JoinedOn    string  `json:"joined_on"`
}

func MapCleaner(u models.User) CleanerRow {
	status := u.Profile.Status
	if status == "" {
		status = "inactive"
		if u.IsActive {
			status = "active"
		}
	}
	return CleanerRow{
		ID:          u.ID,
		CleanerID:   CleanerID(u.ID),
		Name:        u.FullName(),
		Initials:    Initials(u.FirstName, u.LastName),
		Email:       u.Email,
		Phone:       u.Profile.Phone,
		Status:      status,
		StatusLabel: StatusLabel(status),
		Severity:    StatusSeverity(status),
		Rating:      u.Profile.Rating,
		TotalJobs:   u.Profile.TotalJobs,
		DBAVerified: u.Profile.DBAVerified,
		Active:      u.IsActive,
		JoinedOn:    timeutil.FormatDate(u.DateJoined),
	}
}

func MapCleaners(users []models.User) []CleanerRow {
	rows := make([]CleanerRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, MapCleaner(u))
	}
	return rows
}

type ClientRow struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Initials      string `json:"initials"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TotalBookings int    `json:"total_bookings"`
	Active        bool   `json:"active"`
	StatusLabel   string `json:"status_label"`
	JoinedOn      string `json:"joined_on"`
}

func MapClients(users []models.User) []ClientRow {
	rows := make([]ClientRow, 0, len(users))
	for _, u := range users {
		status := "inactive"
		if u.IsActive {
			status = "active"
		}
		address := strings.TrimSpace(strings.Join([]string{u.Profile.Address, u.Profile.Postcode}, " "))
		rows = append(rows, ClientRow{
			ID:            u.ID,
			Name:          u.FullName(),
			Initials:      Initials(u.FirstName, u.LastName),
			Email:         u.Email,
			Phone:         u.Profile.Phone,
			Address:       address,
			TotalBookings: u.Profile.TotalBookings,
			Active:        u.IsActive,
			StatusLabel:   StatusLabel(status),
			JoinedOn:      timeutil.FormatDate(u.DateJoined),
		})
	}
	return rows
}

type BookingRow struct {
	ID          int    `json:"id"`
	Customer    string `json:"customer"`
	Cleaner     string `json:"cleaner"`
	Assigned    bool   `json:"assigned"`
	Service     string `json:"service"`
	Location    string `json:"location"`
	When        string `json:"when"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Severity    string `json:"severity"`
	Paid        bool   `json:"paid"`
	Amount      string `json:"amount"`
}

func partyName(p *models.BookingParty) string {
	if p == nil {
		return ""
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}

func MapBooking(b models.Booking) BookingRow {
	when, err := timeutil.FormatBookingDateTime(b.BookingDate, b.TimeSlot)
	if err != nil {
		when = strings.TrimSpace(b.BookingDate + " " + b.TimeSlot)
	}
	row := BookingRow{
		ID:          b.ID,
		Customer:    partyName(b.Customer),
		Cleaner:     partyName(b.AssignCleaner),
		Assigned:    b.AssignCleaner != nil,
		Location:    b.Location,
		When:        when,
		Status:      b.Status,
		StatusLabel: StatusLabel(b.Status),
		Severity:    StatusSeverity(b.Status),
		Paid:        b.PaymentHasDone,
		Amount:      FormatAmountString(b.TotalAmount),
	}
	if !row.Assigned {
		row.Cleaner = "Unassigned"
	}
	if b.Service != nil {
		row.Service = b.Service.Name
	}
	return row
}

func MapBookings(bookings []models.Booking) []BookingRow {
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, MapBooking(b))
	}
	return rows
}

type PayoutRow struct {
	ID          int    `json:"id"`
	Cleaner     string `json:"cleaner"`
	Method      string `json:"method"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Severity    string `json:"severity"`
	Disputes    string `json:"disputes"`
	RequestedOn string `json:"requested_on"`
	CanApprove  bool   `json:"can_approve"`
	CanMarkPaid bool   `json:"can_mark_paid"`
	CanReject   bool   `json:"can_reject"`
}

// MapPayout derives which admin actions the row offers from its status. The
// backend remains the authority; these flags only drive the buttons.
func MapPayout(p models.Payout) PayoutRow {
	row := PayoutRow{
		ID:          p.ID,
		Cleaner:     partyName(p.Cleaner),
		Amount:      FormatAmountString(p.Amount),
		Status:      p.Status,
		StatusLabel: StatusLabel(p.Status),
		Severity:    StatusSeverity(p.Status),
		Disputes:    disputeSummary(p),
		RequestedOn: timeutil.FormatDate(p.RequestedAt),
	}
	if p.PaymentMethod != nil {
		row.Method = MethodLabel(p.PaymentMethod.Method)
	}
	switch p.Status {
	case models.PayoutPending:
		row.CanApprove, row.CanReject = true, true
	case models.PayoutApproved:
		row.CanMarkPaid, row.CanReject = true, true
	}
	return row
}

func disputeSummary(p models.Payout) string {
	if p.DisputesTotal == 0 {
		return "None"
	}
	return strings.Join([]string{
		itoa(p.DisputesPending) + " pending",
		itoa(p.DisputesResolved) + " resolved",
	}, ", ")
}

func MapPayouts(payouts []models.Payout) []PayoutRow {
	rows := make([]PayoutRow, 0, len(payouts))
	for _, p := range payouts {
		rows = append(rows, MapPayout(p))
	}
	return rows
}

type DisputeRow struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	StatusLabel  string `json:"status_label"`
	Severity     string `json:"severity"`
	Priority     string `json:"priority"`
	PayoutAmount string `json:"payout_amount"`
	RefundAmount string `json:"refund_amount"`
	Comments     int    `json:"comments"`
	RaisedOn     string `json:"raised_on"`
	Open         bool   `json:"open"`
}

func MapDisputes(disputes []models.Dispute) []DisputeRow {
	rows := make([]DisputeRow, 0, len(disputes))
	for _, d := range disputes {
		rows = append(rows, DisputeRow{
			ID:           d.ID,
			Title:        d.Title,
			Type:         StatusLabel(d.DisputeType),
			Status:       d.Status,
			StatusLabel:  StatusLabel(d.Status),
			Severity:     StatusSeverity(d.Status),
			Priority:     StatusLabel(d.Priority),
			PayoutAmount: FormatAmountString(d.PayoutAmount),
			RefundAmount: FormatAmountString(d.RefundAmount),
			Comments:     len(d.Comments),
			RaisedOn:     timeutil.FormatDate(d.CreatedAt),
			Open:         d.Status == models.DisputeOpen || d.Status == models.DisputeReview,
		})
	}
	return rows
}

type ServiceRow struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"price_per_hour"`
	PlatformFee  float64 `json:"platform_fee_per_hour"`
	PriceLabel   string  `json:"price_label"`
	FeeLabel     string  `json:"fee_label"`
	Active       bool    `json:"active"`
}

func MapServices(services []models.Service) []ServiceRow {
	rows := make([]ServiceRow, 0, len(services))
	for _, s := range services {
		price := ParseAmount(s.PricePerHour)
		fee := ParseAmount(s.PlatformFeePerHour)
		rows = append(rows, ServiceRow{
			ID:           s.ID,
			Name:         s.Name,
			Description:  s.Description,
			PricePerHour: price,
			PlatformFee:  fee,
			PriceLabel:   FormatAmount(price) + "/hr",
			FeeLabel:     FormatAmount(fee) + "/hr",
			Active:       s.IsActive,
		})
	}
	return rows
}

type PaymentMethodRow struct {
	ID        int    `json:"id"`
	Method    string `json:"method"`
	Label     string `json:"label"`
	Detail    string `json:"detail"`
	IsDefault bool   `json:"is_default"`
}

func MethodLabel(method string) string {
	switch method {
	case models.MethodPayPal:
		return "PayPal"
	case models.MethodBankTransfer:
		return "Bank Transfer"
	case models.MethodStripe:
		return "Card"
	default:
		return StatusLabel(method)
	}
}

// maskTail keeps the last n characters of s visible.
func maskTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.Repeat("•", 4) + s[len(s)-n:]
}

func MapPaymentMethods(methods []models.PaymentMethod) []PaymentMethodRow {
	rows := make([]PaymentMethodRow, 0, len(methods))
	for _, m := range methods {
		row := PaymentMethodRow{
			ID:        m.ID,
			Method:    m.Method,
			Label:     MethodLabel(m.Method),
			IsDefault: m.IsDefault,
		}
		switch m.Method {
		case models.MethodPayPal:
			row.Detail = m.PayPalEmail
		case models.MethodBankTransfer:
			row.Detail = strings.TrimSpace(m.BankName + " " + maskTail(m.AccountNumber, 4))
		case models.MethodStripe:
			row.Detail = strings.TrimSpace(StatusLabel(m.CardBrand) + " " + maskTail(m.CardLast4, 4))
		}
		rows = append(rows, row)
	}
	return rows
}
