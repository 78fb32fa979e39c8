package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"icc-dashboard/internal/audit"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

const defaultAuditLimit = 100

type AuditHandler struct {
	Audit *audit.Recorder
	log   *logrus.Logger
}

func NewAuditHandler(recorder *audit.Recorder, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{Audit: recorder, log: log}
}

func limit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > 1000 {
		return defaultAuditLimit
	}
	return n
}

// Logins lists recent sign-ins and sign-outs
func (h *AuditHandler) Logins(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Audit.RecentLogins(r.Context(), limit(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	utils.OK(w, logs, nil)
}

// Actions lists recent admin actions
func (h *AuditHandler) Actions(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Audit.RecentActions(r.Context(), limit(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	utils.OK(w, logs, nil)
}

func (h *AuditHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, audit.ErrDisabled) {
		utils.Error(w, http.StatusNotFound, "Audit log is not enabled")
		return
	}
	h.log.WithError(err).Error("failed to read audit log")
	utils.Error(w, http.StatusInternalServerError, "Failed to load audit log")
}
