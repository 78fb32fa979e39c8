package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeBackend records the last request and answers from a path→handler map.
type fakeBackend struct {
	t      *testing.T
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	last   *http.Request
	body   []byte
}

func newFakeBackend(t *testing.T) (*fakeBackend, *backend.Client) {
	fb := &fakeBackend{t: t, routes: map[string]func(http.ResponseWriter, *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.last = r
		fb.body, _ = io.ReadAll(r.Body)
		h, ok := fb.routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no route"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, backend.NewClient(srv.URL, backend.Options{Logger: quietLogger()})
}

func (fb *fakeBackend) on(method, path string, status int, data any) {
	fb.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": status, "message": "done", "data": data})
	}
}

func TestBookingListUsesRolePrefix(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodGet, "/cleaner/api/bookings/", http.StatusOK, []models.Booking{{ID: 4, Status: "confirmed"}})

	svc := NewBookingService(client)
	got, err := svc.List(context.Background(), "cleaner", "confirmed")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("unexpected bookings: %+v", got)
	}
	if fb.last.URL.Query().Get("status") != "confirmed" {
		t.Fatalf("status filter not sent: %s", fb.last.URL.RawQuery)
	}

	if _, err := svc.List(context.Background(), "guest", ""); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestPayoutActions(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodPost, "/super-admin/api/payouts/7/approve/", http.StatusOK, models.Payout{ID: 7, Status: "approved"})
	fb.on(http.MethodPost, "/super-admin/api/payouts/7/reject/", http.StatusOK, models.Payout{ID: 7, Status: "rejected"})

	svc := NewPayoutService(client)
	p, err := svc.Approve(context.Background(), 7)
	if err != nil || p.Status != "approved" {
		t.Fatalf("Approve: %+v, %v", p, err)
	}

	_, err = svc.Reject(context.Background(), 7, &models.RejectPayoutRequest{Reason: "duplicate"})
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if !strings.Contains(string(fb.body), `"reason":"duplicate"`) {
		t.Fatalf("reason not sent: %s", fb.body)
	}
}

func TestDisputeServicePerRole(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodGet, "/customer/api/disputes/", http.StatusOK, []models.Dispute{{ID: 1}})
	fb.on(http.MethodGet, "/super-admin/api/disputes/", http.StatusOK, []models.Dispute{{ID: 1}, {ID: 2}})
	fb.on(http.MethodPost, "/cleaner/api/disputes/3/comments/", http.StatusCreated, models.DisputeComment{ID: 9, Comment: "hi"})

	svc := NewDisputeService(client)
	ctx := context.Background()

	customer, _ := svc.List(ctx, "customer", "")
	admin, _ := svc.List(ctx, "admin", "")
	if len(customer) != 1 || len(admin) != 2 {
		t.Fatalf("unexpected lists: %d, %d", len(customer), len(admin))
	}

	c, err := svc.Comment(ctx, "cleaner", 3, &models.DisputeCommentRequest{Comment: "hi"})
	if err != nil || c.ID != 9 {
		t.Fatalf("Comment: %+v, %v", c, err)
	}
}

func TestMostServicesPassErrorsThrough(t *testing.T) {
	_, client := newFakeBackend(t)
	_, err := NewCleanerService(client).Get(context.Background(), 99)

	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "no route" {
		t.Fatalf("expected raw APIError, got %v", err)
	}
	var norm *backend.NormalizedError
	if errors.As(err, &norm) {
		t.Fatal("cleaner service must not normalise errors")
	}
}

func TestProfileAndBillingNormaliseErrors(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodPut, "/auths/api/profile/", http.StatusBadRequest, nil)
	fb.on(http.MethodGet, "/customer/api/payment-methods/", http.StatusForbidden, nil)

	_, err := NewProfileService(client).Update(context.Background(), &models.UpdateProfileRequest{FirstName: "A", LastName: "B"})
	var norm *backend.NormalizedError
	if !errors.As(err, &norm) || norm.Message != backend.MsgInvalidData || norm.Status != 400 {
		t.Fatalf("expected normalised 400, got %v", err)
	}

	_, err = NewBillingService(client).List(context.Background(), "customer")
	if !errors.As(err, &norm) || norm.Message != backend.MsgForbidden {
		t.Fatalf("expected normalised 403, got %v", err)
	}

	methods, err := NewBillingService(client).List(context.Background(), "customer")
	if methods != nil || err == nil {
		t.Fatal("failed list should return no methods")
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodPost, "/auths/api/login/", http.StatusOK, models.LoginData{
		User:        models.User{ID: 1, Role: "superuser"},
		AccessToken: "a",
	})

	_, err := NewAuthService(client).Login(context.Background(), &models.LoginRequest{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

type memArchive struct {
	keys []string
	fail bool
}

func (m *memArchive) Archive(_ context.Context, kind, ext, _ string, data []byte) (string, error) {
	if m.fail {
		return "", errors.New("bucket gone")
	}
	key := kind + "." + ext
	m.keys = append(m.keys, key)
	return key, nil
}

func TestExportBookingsCSV(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodGet, "/report/api/bookings/", http.StatusOK, []models.BookingReportRow{
		{BookingID: 1, BookingDate: "2025-08-15", TimeSlot: "10:00:00", Customer: "Ann", Cleaner: "Bob",
			Service: "Deep Clean", Hours: 3, Amount: "60", PlatformFee: "6", Status: "completed"},
		{BookingID: 2, BookingDate: "2025-08-16", TimeSlot: "14:30", Customer: "Cat", Service: "Standard",
			Hours: 2, Amount: "30.5", PlatformFee: "3", Status: "pending"},
	})

	archive := &memArchive{}
	svc := NewReportService(client, archive, quietLogger())
	out, err := svc.Export(context.Background(), ReportBookings, FormatCSV, models.ReportFilter{StartDate: "2025-08-01"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if fb.last.URL.Query().Get("start_date") != "2025-08-01" {
		t.Fatalf("filter not forwarded: %s", fb.last.URL.RawQuery)
	}

	records, err := csv.NewReader(bytes.NewReader(out.Data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header, 2 rows and footer, got %d", len(records))
	}
	if records[1][1] != "15 Aug 2025, 10:00 AM" || records[1][6] != "£60.00" {
		t.Fatalf("unexpected row: %v", records[1])
	}
	if records[3][6] != "£90.50" {
		t.Fatalf("unexpected total: %v", records[3])
	}
	if out.ArchiveKey != "bookings.csv" || out.ContentType != "text/csv" {
		t.Fatalf("unexpected export meta: %+v", out)
	}
}

func TestExportFormats(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodGet, "/report/api/revenue/", http.StatusOK, models.RevenueReport{
		GrossRevenue: "1000", PlatformFees: "100",
		Monthly: []models.MonthlyPoint{{Month: "Aug 2025", Amount: "1000"}},
	})

	svc := NewReportService(client, &memArchive{fail: true}, quietLogger())
	ctx := context.Background()

	pdf, err := svc.Export(ctx, ReportRevenue, FormatPDF, models.ReportFilter{})
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	if !bytes.HasPrefix(pdf.Data, []byte("%PDF")) {
		t.Fatal("pdf export is not a PDF")
	}
	if pdf.ArchiveKey != "" {
		t.Fatal("failed archive should leave no key")
	}

	xlsx, err := svc.Export(ctx, ReportRevenue, FormatXLSX, models.ReportFilter{})
	if err != nil {
		t.Fatalf("xlsx export: %v", err)
	}
	if !bytes.HasPrefix(xlsx.Data, []byte("PK")) {
		t.Fatal("xlsx export is not a zip container")
	}

	if _, err := svc.Export(ctx, ReportRevenue, "doc", models.ReportFilter{}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := svc.Export(ctx, "weather", FormatCSV, models.ReportFilter{}); !errors.Is(err, ErrUnknownReport) {
		t.Fatalf("expected ErrUnknownReport, got %v", err)
	}
}
