package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 16 << 20

// Envelope is the {code, message, data} wrapper every backend response uses.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Options configures a Client. Zero values pick sensible defaults.
type Options struct {
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
	OnUnauthorized  UnauthorizedHook
	Transport       http.RoundTripper
	Logger          *logrus.Logger
}

// Client talks to the cleaning-service REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     opts.Logger,
	}
	c.http = &http.Client{
		Timeout: opts.Timeout,
		Transport: &authTransport{
			base:           otelhttp.NewTransport(base),
			onUnauthorized: opts.OnUnauthorized,
		},
	}
	c.breaker = newBreaker("backend", opts.BreakerFailures, opts.BreakerCooldown, c.log)
	return c
}

func newBreaker(name string, failures uint32, cooldown time.Duration, log *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).
				Warn("circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// The caller going away is not the backend's fault.
			if errors.Is(err, context.Canceled) {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && !apiErr.Network && apiErr.Status < 500
		},
	})
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping issues a bare GET against path and reports only transport failures.
func (c *Client) Ping(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return newNetworkError(err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return newStatusError(resp.StatusCode, nil)
	}
	return nil
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) send(req *http.Request) (*rawResponse, error) {
	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, newNetworkError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, newNetworkError(err)
		}
		if resp.StatusCode >= 400 {
			return nil, newStatusError(resp.StatusCode, body)
		}
		return &rawResponse{status: resp.StatusCode, body: body}, nil
	})

	entry := c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &APIError{Network: true, Message: "backend temporarily unavailable", Err: err}
		}
		entry.WithError(err).Debug("backend call failed")
		return nil, err
	}
	entry.Debug("backend call")
	return result.(*rawResponse), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func decode[T any](raw *rawResponse) (*Envelope[T], error) {
	var env Envelope[T]
	if len(bytes.TrimSpace(raw.body)) == 0 {
		env.Code = raw.status
		return &env, nil
	}
	if err := json.Unmarshal(raw.body, &env); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return &env, nil
}

// Do performs a JSON request and decodes the enveloped response into T.
func Do[T any](ctx context.Context, c *Client, method, path string, query url.Values, payload any) (*Envelope[T], error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}

func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (*Envelope[T], error) {
	return Do[T](ctx, c, http.MethodGet, path, query, nil)
}

func Post[T any](ctx context.Context, c *Client, path string, payload any) (*Envelope[T], error) {
	return Do[T](ctx, c, http.MethodPost, path, nil, payload)
}

func Put[T any](ctx context.Context, c *Client, path string, payload any) (*Envelope[T], error) {
	return Do[T](ctx, c, http.MethodPut, path, nil, payload)
}

func Patch[T any](ctx context.Context, c *Client, path string, payload any) (*Envelope[T], error) {
	return Do[T](ctx, c, http.MethodPatch, path, nil, payload)
}

func Delete[T any](ctx context.Context, c *Client, path string) (*Envelope[T], error) {
	return Do[T](ctx, c, http.MethodDelete, path, nil, nil)
}

// FilePart is a single file sent as multipart/form-data.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Upload sends file (plus optional text fields) as multipart/form-data.
func Upload[T any](ctx context.Context, c *Client, method, path string, file FilePart, fields map[string]string) (*Envelope[T], error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}

// Download fetches a non-enveloped body (exports, documents).
func (c *Client) Download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	raw, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return raw.body, nil
}
