package handlers

import (
	"fmt"
	"net/http"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

// BookingHandler serves the booking views of all three roles. The role comes
// from the session, so the same handler is mounted under each role's guard.
type BookingHandler struct {
	Service *services.BookingService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewBookingHandler(s *services.BookingService, recorder *audit.Recorder, log *logrus.Logger) *BookingHandler {
	return &BookingHandler{Service: s, Audit: recorder, log: log}
}

// List returns the caller's bookings as rows, filtered by ?status=
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetAuth(r).Role()
	bookings, err := h.Service.List(r.Context(), role, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapBookings(bookings), nil)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.Service.Get(r.Context(), middleware.GetAuth(r).Role(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapBooking(*b), nil)
}

// AssignCleaner is admin only
func (h *BookingHandler) AssignCleaner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.AssignCleanerRequest
	if !decode(w, r, &req) {
		return
	}

	b, err := h.Service.AssignCleaner(r.Context(), id, &req)
	recordAdmin(h.Audit, r, "assign_cleaner", "booking", id,
		fmt.Sprintf("Assigned cleaner %d to booking %d", req.CleanerID, id), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapBooking(*b), utils.SuccessToast("Cleaner assigned"))
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.BookingStatusRequest
	if !decode(w, r, &req) {
		return
	}

	b, err := h.Service.UpdateStatus(r.Context(), middleware.GetAuth(r).Role(), id, &req)
	recordAdmin(h.Audit, r, "booking_status", "booking", id,
		fmt.Sprintf("Set booking %d to %s", id, req.Status), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapBooking(*b), utils.SuccessToast("Booking marked "+viewmodel.StatusLabel(req.Status)))
}

// Create books a service for the signed-in customer
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.Created(w, viewmodel.MapBooking(*b), utils.SuccessToast("Booking created"))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.Service.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapBooking(*b), utils.SuccessToast("Booking cancelled"))
}
