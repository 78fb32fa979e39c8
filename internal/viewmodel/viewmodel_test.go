package viewmodel

import (
	"testing"

	"icc-dashboard/internal/models"
)

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		199.9:   "£199.90",
		0:       "£0.00",
		5:       "£5.00",
		0.1:     "£0.10",
		-12.5:   "-£12.50",
		1234.5:  "£1,234.50",
		19.999:  "£20.00",
		1000000: "£1,000,000.00",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAmountString(t *testing.T) {
	if got := FormatAmountString("45.50"); got != "£45.50" {
		t.Fatalf("got %q", got)
	}
	if got := FormatAmountString("n/a"); got != "£0.00" {
		t.Fatalf("unparseable amounts should format as zero, got %q", got)
	}
}

func TestCleanerID(t *testing.T) {
	cases := map[int]string{1: "ICC#00001", 42: "ICC#00042", 123456: "ICC#123456"}
	for in, want := range cases {
		if got := CleanerID(in); got != want {
			t.Errorf("CleanerID(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"in_progress":   "In Progress",
		"pending":       "Pending",
		"bank_transfer": "Bank Transfer",
		"":              "Unknown",
	}
	for in, want := range cases {
		if got := StatusLabel(in); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitials(t *testing.T) {
	if got := Initials("jane", "doe"); got != "JD" {
		t.Fatalf("got %q", got)
	}
	if got := Initials("", ""); got != "?" {
		t.Fatalf("got %q", got)
	}
	if got := Initials("Émile", ""); got != "É" {
		t.Fatalf("got %q", got)
	}
}

func TestMapCleaners(t *testing.T) {
	rows := MapCleaners([]models.User{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@icc.test", IsActive: true,
			Profile: models.Profile{Phone: "07700900123", Rating: 4.5}},
		{ID: 2, Username: "bob", IsActive: false, Profile: models.Profile{Status: "suspended"}},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CleanerID != "ICC#00001" || rows[0].Name != "Jane Doe" || rows[0].Status != "active" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Name != "bob" || rows[1].StatusLabel != "Suspended" || rows[1].Severity != "danger" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestMapBooking(t *testing.T) {
	row := MapBooking(models.Booking{
		ID:          9,
		Customer:    &models.BookingParty{FirstName: "Ann", LastName: "Lee"},
		BookingDate: "2025-08-15",
		TimeSlot:    "10:00:00",
		Service:     &models.Service{Name: "Deep Clean"},
		Status:      "in_progress",
		TotalAmount: "80",
	})

	if row.When != "15 Aug 2025, 10:00 AM" {
		t.Fatalf("unexpected when %q", row.When)
	}
	if row.Cleaner != "Unassigned" || row.Assigned {
		t.Fatalf("unassigned booking mapped wrong: %+v", row)
	}
	if row.Customer != "Ann Lee" || row.Service != "Deep Clean" || row.Amount != "£80.00" {
		t.Fatalf("unexpected row: %+v", row)
	}

	bad := MapBooking(models.Booking{BookingDate: "soon", TimeSlot: "later"})
	if bad.When != "soon later" {
		t.Fatalf("unparseable dates should pass through, got %q", bad.When)
	}
}

func TestMapPayoutActions(t *testing.T) {
	cases := []struct {
		status                    string
		approve, markPaid, reject bool
	}{
		{models.PayoutPending, true, false, true},
		{models.PayoutApproved, false, true, true},
		{models.PayoutPaid, false, false, false},
		{models.PayoutRejected, false, false, false},
		{"weird", false, false, false},
	}
	for _, tc := range cases {
		row := MapPayout(models.Payout{Status: tc.status, Amount: "10"})
		if row.CanApprove != tc.approve || row.CanMarkPaid != tc.markPaid || row.CanReject != tc.reject {
			t.Errorf("status %s: got %+v", tc.status, row)
		}
	}
}

func TestMapServicesParsesStringPrices(t *testing.T) {
	rows := MapServices([]models.Service{{ID: 3, Name: "Standard", PricePerHour: "18.50", PlatformFeePerHour: "2"}})
	if rows[0].PricePerHour != 18.5 || rows[0].PlatformFee != 2 {
		t.Fatalf("prices not parsed: %+v", rows[0])
	}
	if rows[0].PriceLabel != "£18.50/hr" {
		t.Fatalf("unexpected label %q", rows[0].PriceLabel)
	}
}

func TestMapPaymentMethodsMasksAccounts(t *testing.T) {
	rows := MapPaymentMethods([]models.PaymentMethod{
		{ID: 1, Method: models.MethodBankTransfer, BankName: "Barclays", AccountNumber: "12345678"},
		{ID: 2, Method: models.MethodPayPal, PayPalEmail: "me@pp.test", IsDefault: true},
	})
	if rows[0].Detail != "Barclays ••••5678" || rows[0].Label != "Bank Transfer" {
		t.Fatalf("unexpected bank row: %+v", rows[0])
	}
	if rows[1].Detail != "me@pp.test" || !rows[1].IsDefault {
		t.Fatalf("unexpected paypal row: %+v", rows[1])
	}
}

func TestMapAdminDashboard(t *testing.T) {
	view := MapAdminDashboard(models.AdminDashboard{
		TotalBookings:  12,
		TotalRevenue:   "1500",
		MonthlyRevenue: []models.MonthlyPoint{{Month: "Jan", Amount: "500"}, {Month: "Feb", Amount: "1000"}},
	})
	if view.Cards[0].Value != "12" || view.Cards[4].Value != "£1,500.00" {
		t.Fatalf("unexpected cards: %+v", view.Cards)
	}
	if view.Chart == nil || len(view.Chart.Values) != 2 || view.Chart.Values[1] != 1000 {
		t.Fatalf("unexpected chart: %+v", view.Chart)
	}
	if view.Recent == nil {
		t.Fatal("recent rows should be an empty slice, not nil")
	}
}

func TestMapProfileDBAStatus(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		want string
	}{
		{"verified", models.User{Role: "cleaner", Profile: models.Profile{DBAVerified: true, DBADocument: "dba.pdf"}}, "Verified"},
		{"uploaded", models.User{Role: "cleaner", Profile: models.Profile{DBADocument: "dba.pdf"}}, "Pending Review"},
		{"missing", models.User{Role: "cleaner"}, "Not Uploaded"},
		{"customer", models.User{Role: "customer", Profile: models.Profile{DBAVerified: true}}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapProfile(tc.user).DBAStatus; got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMapProfileHeader(t *testing.T) {
	v := MapProfile(models.User{
		ID:         3,
		FirstName:  "ada",
		LastName:   "Lovelace",
		Email:      "ada@icc.test",
		Role:       "customer",
		DateJoined: "2024-03-05",
	})
	if v.FullName != "ada Lovelace" || v.Initials != "AL" {
		t.Fatalf("unexpected name fields %+v", v)
	}
	if v.RoleLabel != "Customer" {
		t.Fatalf("role label = %q", v.RoleLabel)
	}
	if v.MemberSince == "" || v.MemberSince == "2024-03-05" {
		t.Fatalf("join date should be reformatted, got %q", v.MemberSince)
	}
}
