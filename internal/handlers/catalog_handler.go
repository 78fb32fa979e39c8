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

type CatalogHandler struct {
	Service *services.CatalogService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewCatalogHandler(s *services.CatalogService, recorder *audit.Recorder, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Service: s, Audit: recorder, log: log}
}

// List returns every service for the admin catalog screen
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapServices(list), nil)
}

// ListActive feeds the customer booking form
func (h *CatalogHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListActive(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapServices(list), nil)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if !decode(w, r, &req) {
		return
	}

	svc, err := h.Service.Create(r.Context(), &req)
	id := 0
	if svc != nil {
		id = svc.ID
	}
	recordAdmin(h.Audit, r, "service_create", "service", id, "Created service "+req.Name, err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.Created(w, viewmodel.MapServices([]models.Service{*svc})[0], utils.SuccessToast("Service created"))
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.ServiceRequest
	if !decode(w, r, &req) {
		return
	}

	svc, err := h.Service.Update(r.Context(), id, &req)
	recordAdmin(h.Audit, r, "service_update", "service", id, "Updated service "+req.Name, err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapServices([]models.Service{*svc})[0], utils.SuccessToast("Service updated"))
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id)
	recordAdmin(h.Audit, r, "service_delete", "service", id, fmt.Sprintf("Deleted service %d", id), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, nil, utils.SuccessToast("Service deleted"))
}

// SetActive toggles whether customers can book a service
func (h *CatalogHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.StatusUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	svc, err := h.Service.SetActive(r.Context(), id, req.IsActive)
	recordAdmin(h.Audit, r, "service_active", "service", id,
		fmt.Sprintf("Set service %d active=%t", id, req.IsActive), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapServices([]models.Service{*svc})[0], utils.SuccessToast("Service updated"))
}
