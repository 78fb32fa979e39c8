package handlers

import (
	"net/http"

	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/validation"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

type BillingHandler struct {
	Service *services.BillingService
	log     *logrus.Logger
}

func NewBillingHandler(s *services.BillingService, log *logrus.Logger) *BillingHandler {
	return &BillingHandler{Service: s, log: log}
}

func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.Service.List(r.Context(), middleware.GetAuth(r).Role())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapPaymentMethods(methods), nil)
}

// Create checks the method-specific fields before calling the backend
func (h *BillingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentMethodRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validation.PaymentMethod(&req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	pm, err := h.Service.Create(r.Context(), middleware.GetAuth(r).Role(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.Created(w, viewmodel.MapPaymentMethods([]models.PaymentMethod{*pm})[0],
		utils.SuccessToast(viewmodel.MethodLabel(pm.Method)+" added"))
}

func (h *BillingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), middleware.GetAuth(r).Role(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, nil, utils.SuccessToast("Payment method removed"))
}

func (h *BillingHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	pm, err := h.Service.SetDefault(r.Context(), middleware.GetAuth(r).Role(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapPaymentMethods([]models.PaymentMethod{*pm})[0], utils.SuccessToast("Default payment method updated"))
}
