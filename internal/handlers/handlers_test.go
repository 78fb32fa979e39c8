package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/logging"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/session"
	"icc-dashboard/internal/upload"
	"icc-dashboard/internal/validation"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Toast   *struct {
		Severity string `json:"severity"`
		Detail   string `json:"detail"`
	} `json:"toast"`
}

func readEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func backendServer(t *testing.T, hits *int32, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, backend.Options{Logger: logging.Discard()})
}

func signedIn(r *http.Request, role string) *http.Request {
	ac := &session.AuthContext{
		SessionID:   "sid-1",
		AccessToken: "tok",
		User:        &models.User{ID: 9, Email: "me@icc.test", Role: role},
	}
	ctx := session.WithAuth(r.Context(), ac)
	return r.WithContext(backend.WithToken(ctx, ac.AccessToken))
}

func TestCleanerListMapsBackendRows(t *testing.T) {
	var hits int32
	var gotPath, gotAuth string
	client := backendServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"message":"ok","data":[{"id":1,"first_name":"Jane","last_name":"Doe","email":"jane@icc.test","is_active":true,"profile":{"rating":4.5,"total_jobs":12}}]}`))
	})

	h := NewCleanerHandler(services.NewCleanerService(client), nil, logging.Discard())
	req := signedIn(httptest.NewRequest(http.MethodGet, "/api/admin/cleaners", nil), "admin")
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotPath != "/super-admin/api/cleaners/" {
		t.Fatalf("unexpected backend path %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}

	env := readEnvelope(t, rr)
	var rows []struct {
		CleanerID   string  `json:"cleaner_id"`
		Name        string  `json:"name"`
		StatusLabel string  `json:"status_label"`
		Rating      float64 `json:"rating"`
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].CleanerID != "ICC#00001" || rows[0].Name != "Jane Doe" || rows[0].StatusLabel != "Active" {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}

func TestCleanerListPassesBackendMessage(t *testing.T) {
	var hits int32
	client := backendServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Admins only"}`))
	})

	h := NewCleanerHandler(services.NewCleanerService(client), nil, logging.Discard())
	rr := httptest.NewRecorder()
	h.List(rr, signedIn(httptest.NewRequest(http.MethodGet, "/api/admin/cleaners", nil), "admin"))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	env := readEnvelope(t, rr)
	if env.Toast == nil || env.Toast.Detail != "Admins only" {
		t.Fatalf("expected backend message in toast, got %+v", env.Toast)
	}
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &validation.Error{Field: "email", Message: "Email is required"}, http.StatusBadRequest, "Email is required"},
		{"upload", &upload.Error{Kind: upload.ErrTooLarge, Message: "File size must be less than 5MB"}, http.StatusBadRequest, "File size must be less than 5MB"},
		{"backend 404", &backend.APIError{Status: 404, Message: "Booking not found"}, http.StatusNotFound, "Booking not found"},
		{"backend 500", &backend.APIError{Status: 500, Message: "boom"}, http.StatusBadGateway, "boom"},
		{"network", &backend.APIError{Network: true, Message: "dial tcp: refused"}, http.StatusBadGateway, backend.MsgConnectFailed},
		{"normalized", backend.Normalize(&backend.APIError{Status: 400, Message: "bad"}), http.StatusBadRequest, backend.MsgInvalidData},
		{"unknown role", fmt.Errorf("dashboard: %w", services.ErrUnknownRole), http.StatusForbidden, "Your account does not have dashboard access"},
		{"no prefix for role", prefixErr("guest"), http.StatusForbidden, "Your account does not have dashboard access"},
		{"normalized no prefix", backend.Normalize(prefixErr("")), http.StatusForbidden, "Your account does not have dashboard access"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, backend.MsgUnexpected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			writeError(rr, req, logging.Discard(), tc.err)

			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			env := readEnvelope(t, rr)
			if env.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", env.Message, tc.wantMsg)
			}
			if env.Toast == nil || env.Toast.Severity != "error" {
				t.Fatalf("expected error toast, got %+v", env.Toast)
			}
		})
	}
}

func prefixErr(role string) error {
	_, err := backend.PrefixFor(role)
	return err
}

func TestWriteErrorUnauthorizedRedirects(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/api/x", nil), logging.Discard(), &backend.APIError{Status: 401})

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var data struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(readEnvelope(t, rr).Data, &data); err != nil || data.Redirect != "/sign-in" {
		t.Fatalf("expected redirect to /sign-in, got %+v (%v)", data, err)
	}
}

func TestWriteErrorCanceledWritesNothing(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/api/x", nil), logging.Discard(), context.Canceled)
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestDecodeRejectsMalformedBody(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/x", strings.NewReader("{not json"))
	if decode(rr, req, &dst) {
		t.Fatal("decode should fail")
	}
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPayoutsForbiddenForCustomer(t *testing.T) {
	var hits int32
	client := backendServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {})

	h := NewPayoutHandler(services.NewPayoutService(client), nil, logging.Discard())
	rr := httptest.NewRecorder()
	h.List(rr, signedIn(httptest.NewRequest(http.MethodGet, "/api/payouts", nil), "customer"))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("backend must not be called")
	}
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newSettingsHandler(t *testing.T, hits *int32) *SettingsHandler {
	t.Helper()
	client := backendServer(t, hits, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"data":{"id":9,"role":"cleaner"}}`))
	})
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), session.NewBroker())
	return NewSettingsHandler(services.NewProfileService(client), sessions, logging.Discard())
}

func TestUploadOversizedDocumentNeverReachesBackend(t *testing.T) {
	var hits int32
	h := newSettingsHandler(t, &hits)

	content := append([]byte("%PDF-1.4\n"), make([]byte, 15*upload.MB)...)
	body, contentType := multipartBody(t, upload.DBADocumentField, "dba.pdf", content)
	req := signedIn(httptest.NewRequest(http.MethodPost, "/api/settings/dba-document", body), "cleaner")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.UploadDBADocument(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
	if env := readEnvelope(t, rr); env.Message != "File size must be less than 10MB" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("backend must not be called")
	}
}

func TestUploadPictureOverLimitIsRejected(t *testing.T) {
	var hits int32
	h := newSettingsHandler(t, &hits)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	content := append(png, make([]byte, 5*upload.MB+100*1024)...)
	body, contentType := multipartBody(t, upload.ProfilePictureField, "me.png", content)
	req := signedIn(httptest.NewRequest(http.MethodPost, "/api/settings/profile-picture", body), "cleaner")
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.UploadPicture(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if env := readEnvelope(t, rr); env.Message != "File size must be less than 5MB" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("backend must not be called")
	}
}

func TestUploadWithoutFile(t *testing.T) {
	var hits int32
	h := newSettingsHandler(t, &hits)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("note", "nothing attached")
	_ = mw.Close()
	req := signedIn(httptest.NewRequest(http.MethodPost, "/api/settings/profile-picture", &buf), "customer")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.UploadPicture(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if env := readEnvelope(t, rr); env.Message != "Please select a file to upload" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}
