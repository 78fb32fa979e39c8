package handlers

import (
	"net/http"

	"icc-dashboard/internal/services"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	Service *services.DashboardService
	log     *logrus.Logger
}

func NewDashboardHandler(s *services.DashboardService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Service: s, log: log}
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Admin(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapAdminDashboard(*stats), nil)
}

func (h *DashboardHandler) Cleaner(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Cleaner(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapCleanerDashboard(*stats), nil)
}

func (h *DashboardHandler) Customer(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Customer(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapCustomerDashboard(*stats), nil)
}
