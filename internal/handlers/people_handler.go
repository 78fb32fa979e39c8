package handlers

import (
	"fmt"
	"net/http"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

type CleanerHandler struct {
	Service *services.CleanerService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewCleanerHandler(s *services.CleanerService, recorder *audit.Recorder, log *logrus.Logger) *CleanerHandler {
	return &CleanerHandler{Service: s, Audit: recorder, log: log}
}

// List returns cleaner rows, optionally narrowed by ?search=
func (h *CleanerHandler) List(w http.ResponseWriter, r *http.Request) {
	cleaners, err := h.Service.GetCleaners(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapCleaners(cleaners), nil)
}

func (h *CleanerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapCleaner(*u), nil)
}

func (h *CleanerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.StatusUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Service.UpdateStatus(r.Context(), id, &req)
	recordAdmin(h.Audit, r, "cleaner_status", "cleaner", id,
		fmt.Sprintf("Set cleaner %s active=%t status=%q", viewmodel.CleanerID(id), req.IsActive, req.Status), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapCleaner(*u), utils.SuccessToast("Cleaner status updated"))
}

type ClientHandler struct {
	Service *services.ClientService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewClientHandler(s *services.ClientService, recorder *audit.Recorder, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{Service: s, Audit: recorder, log: log}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.GetClients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapClients(clients), nil)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapClients([]models.User{*u})[0], nil)
}

// SetActive enables or disables a client account
func (h *ClientHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.StatusUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Service.SetActive(r.Context(), id, req.IsActive)
	recordAdmin(h.Audit, r, "client_active", "client", id,
		fmt.Sprintf("Set client %d active=%t", id, req.IsActive), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	msg := "Client deactivated"
	if req.IsActive {
		msg = "Client activated"
	}
	utils.OK(w, viewmodel.MapClients([]models.User{*u})[0], utils.SuccessToast(msg))
}
