package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/composition"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/upload"
	"icc-dashboard/internal/validation"
	"icc-dashboard/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxJSONBody = 1 << 20

// decode reads a JSON body into dst and runs the validate tags on it. On
// failure the response has been written and false is returned.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validation.Struct(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// pathID parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

// writeError turns a service error into the toast the browser shows. Most
// services return the backend's own message; profile and billing return an
// already-normalized one.
func writeError(w http.ResponseWriter, r *http.Request, log *logrus.Logger, err error) {
	var (
		valErr  *validation.Error
		upErr   *upload.Error
		normErr *backend.NormalizedError
		apiErr  *backend.APIError
	)

	switch {
	case errors.Is(err, context.Canceled):
		// the browser went away; nobody is left to read a response
		return
	case errors.As(err, &valErr):
		utils.Error(w, http.StatusBadRequest, valErr.Message)
		return
	case errors.As(err, &upErr):
		utils.Error(w, http.StatusBadRequest, upErr.Message)
		return
	case errors.Is(err, composition.ErrNoMapping):
		utils.Error(w, http.StatusNotFound, "Page not found")
		return
	case errors.Is(err, services.ErrUnknownReport), errors.Is(err, services.ErrUnknownFormat):
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrUnknownRole):
		utils.Error(w, http.StatusForbidden, "Your account does not have dashboard access")
		return
	}

	if backend.IsUnauthorized(err) {
		utils.Redirect(w, http.StatusUnauthorized, "Your session has expired. Please sign in again.", auth.SignInPath)
		return
	}

	if errors.As(err, &normErr) {
		utils.Error(w, gatewayStatus(normErr.Status), normErr.Message)
		return
	}

	if errors.As(err, &apiErr) {
		entry := log.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(r.Context()),
			"status":     apiErr.Status,
			"path":       r.URL.Path,
		})
		if apiErr.Network || apiErr.Status >= 500 {
			entry.WithError(err).Warn("backend call failed")
		}
		if apiErr.Network {
			utils.Error(w, http.StatusBadGateway, backend.MsgConnectFailed)
			return
		}
		utils.Error(w, gatewayStatus(apiErr.Status), apiErr.Message)
		return
	}

	log.WithError(err).WithField("path", r.URL.Path).Error("unhandled handler error")
	utils.Error(w, http.StatusInternalServerError, backend.MsgUnexpected)
}

// gatewayStatus keeps backend 4xx statuses and reports everything else as a
// bad gateway.
func gatewayStatus(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}

// recordAdmin audits a mutating admin action, successful or not.
func recordAdmin(rec *audit.Recorder, r *http.Request, action, target string, id int, description string, err error) {
	ac := middleware.GetAuth(r)
	if ac.Role() != string(auth.RoleAdmin) {
		return
	}
	var targetID *int
	if id > 0 {
		targetID = &id
	}
	rec.Action(ac.User, action, target, targetID, description, err == nil, middleware.ClientIP(r))
}
