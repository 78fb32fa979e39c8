package backend

import (
	"context"
	"net/http"
)

type tokenKey struct{}

// WithToken attaches the backend access token used for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the token attached by WithToken.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// UnauthorizedHook runs when the backend rejects a token we attached.
type UnauthorizedHook func(ctx context.Context)

// authTransport attaches "Authorization: Bearer <token>" to every request and
// forces a logout through onUnauthorized when the backend answers 401.
type authTransport struct {
	base           http.RoundTripper
	onUnauthorized UnauthorizedHook
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := TokenFrom(req.Context())
	if token != "" && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Only a token we sent can be revoked; a 401 on sign-in is a bad password.
	if resp.StatusCode == http.StatusUnauthorized && token != "" && t.onUnauthorized != nil {
		t.onUnauthorized(req.Context())
	}
	return resp, nil
}
