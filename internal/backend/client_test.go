package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": status, "message": "ok", "data": data})
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []item{{ID: 1, Name: "Deep clean"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Options{Logger: quietLogger()})
	res := NewResource[item](c, AdminPrefix, "services")

	ctx := WithToken(context.Background(), "tok-123")
	items, err := res.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if len(items) != 1 || items[0].Name != "Deep clean" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Options{Logger: quietLogger()})
	if _, err := Post[map[string]any](context.Background(), c, Path(AuthPrefix, "login"), map[string]string{"email": "x"}); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedHookRunsOnlyForAttachedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	var calls int32
	c := NewClient(srv.URL, Options{
		Logger:         quietLogger(),
		OnUnauthorized: func(ctx context.Context) { atomic.AddInt32(&calls, 1) },
	})

	_, err := Get[item](WithToken(context.Background(), "stale"), c, "/cleaner/api/dashboard/", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected hook once, got %d", calls)
	}

	_, _ = Post[item](context.Background(), c, Path(AuthPrefix, "login"), map[string]string{})
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("hook must not run for anonymous calls, got %d", calls)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "token expired" {
		t.Fatalf("expected backend message, got %+v", apiErr)
	}
}

func TestBreakerOpensOnServerErrorsOnly(t *testing.T) {
	var hits int32
	status := int32(http.StatusNotFound)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(int(atomic.LoadInt32(&status)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Options{
		Logger:          quietLogger(),
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = Get[item](ctx, c, "/x/", nil)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("4xx responses must not trip the breaker, hits=%d", hits)
	}

	atomic.StoreInt32(&status, http.StatusBadGateway)
	for i := 0; i < 2; i++ {
		_, _ = Get[item](ctx, c, "/x/", nil)
	}
	_, err := Get[item](ctx, c, "/x/", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.Network {
		t.Fatalf("expected open breaker error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 5 {
		t.Fatalf("open breaker should short-circuit, hits=%d", hits)
	}
}

func TestUploadSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("profile_picture")
		if err != nil {
			t.Errorf("missing file: %v", err)
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		writeEnvelope(w, http.StatusOK, item{ID: len(body), Name: hdr.Filename})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Options{Logger: quietLogger()})
	env, err := Upload[item](context.Background(), c, http.MethodPost, Path(AuthPrefix, "profile", "picture"), FilePart{
		Field:       "profile_picture",
		Filename:    "me.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("pngdata"),
	}, nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if env.Data.Name != "me.png" || env.Data.ID != 7 {
		t.Fatalf("unexpected response: %+v", env.Data)
	}
}

func TestPath(t *testing.T) {
	cases := map[string]string{
		Path(AdminPrefix, "payouts", "4", "approve"): "/super-admin/api/payouts/4/approve/",
		Path(AuthPrefix, "login"):                    "/auths/api/login/",
		Path(CustomerPrefix, "/bookings/"):           "/customer/api/bookings/",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestPrefixFor(t *testing.T) {
	if p, _ := PrefixFor("cleaner"); p != CleanerPrefix {
		t.Fatalf("unexpected prefix %q", p)
	}
	if _, err := PrefixFor("guest"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
