package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a failed backend call. Network is set when no HTTP response
// was received at all.
type APIError struct {
	Status  int
	Message string
	Body    []byte
	Network bool
	Err     error
}

func (e *APIError) Error() string {
	if e.Network {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newStatusError(status int, body []byte) *APIError {
	return &APIError{
		Status:  status,
		Message: extractMessage(status, body),
		Body:    body,
	}
}

func newNetworkError(err error) *APIError {
	return &APIError{Network: true, Message: err.Error(), Err: err}
}

// extractMessage pulls a human message out of the error body the backend
// sends ({message}, {detail} or {error}); otherwise the status text.
func extractMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Message, payload.Detail, payload.Error} {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	return http.StatusText(status)
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	var norm *NormalizedError
	if errors.As(err, &norm) {
		return norm.Status == http.StatusUnauthorized
	}
	return false
}

// StatusOf returns the backend status carried by err, 0 for network
// failures and 500 for anything else.
func StatusOf(err error) int {
	var norm *NormalizedError
	if errors.As(err, &norm) {
		return norm.Status
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// NormalizedError is the rewritten error shape produced by the services that
// normalise failures (profile/settings and billing).
type NormalizedError struct {
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Original error  `json:"-"`
}

func (e *NormalizedError) Error() string {
	return e.Message
}

func (e *NormalizedError) Unwrap() error {
	return e.Original
}

const (
	MsgInvalidData   = "Invalid data. Please check your input and try again."
	MsgAuthFailed    = "Authentication failed. Please sign in again."
	MsgForbidden     = "You do not have permission to perform this action."
	MsgNotFound      = "The requested resource was not found."
	MsgServerError   = "Server error. Please try again later."
	MsgConnectFailed = "Unable to connect to the server. Please check your connection."
	MsgUnexpected    = "An unexpected error occurred."
)

// Normalize maps err onto the coarse status→message table. nil stays nil.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var already *NormalizedError
	if errors.As(err, &already) {
		return already
	}

	norm := &NormalizedError{Original: err, Message: MsgUnexpected}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			norm.Message = MsgConnectFailed
		}
		return norm
	}

	norm.Status = apiErr.Status
	switch {
	case apiErr.Network:
		norm.Message = MsgConnectFailed
	case apiErr.Status == http.StatusBadRequest:
		norm.Message = MsgInvalidData
	case apiErr.Status == http.StatusUnauthorized:
		norm.Message = MsgAuthFailed
	case apiErr.Status == http.StatusForbidden:
		norm.Message = MsgForbidden
	case apiErr.Status == http.StatusNotFound:
		norm.Message = MsgNotFound
	case apiErr.Status >= 500:
		norm.Message = MsgServerError
	}
	return norm
}
