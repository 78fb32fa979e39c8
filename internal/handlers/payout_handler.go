package handlers

import (
	"context"
	"fmt"
	"net/http"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

type PayoutHandler struct {
	Service *services.PayoutService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewPayoutHandler(s *services.PayoutService, recorder *audit.Recorder, log *logrus.Logger) *PayoutHandler {
	return &PayoutHandler{Service: s, Audit: recorder, log: log}
}

// List shows every payout to admins and their own payouts to cleaners
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		payouts []models.Payout
		err     error
	)
	switch auth.Role(middleware.GetAuth(r).Role()) {
	case auth.RoleAdmin:
		payouts, err = h.Service.ListAll(r.Context(), r.URL.Query().Get("status"))
	case auth.RoleCleaner:
		payouts, err = h.Service.ListOwn(r.Context())
	default:
		utils.Error(w, http.StatusForbidden, "Payouts are not available for your account")
		return
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapPayouts(payouts), nil)
}

func (h *PayoutHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.adminAction(w, r, "approve", "Payout approved", h.Service.Approve)
}

func (h *PayoutHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.adminAction(w, r, "mark_paid", "Payout marked as paid", h.Service.MarkPaid)
}

func (h *PayoutHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.RejectPayoutRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.Service.Reject(r.Context(), id, &req)
	recordAdmin(h.Audit, r, "reject", "payout", id, fmt.Sprintf("Rejected payout %d: %s", id, req.Reason), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapPayout(*p), utils.SuccessToast("Payout rejected"))
}

func (h *PayoutHandler) adminAction(w http.ResponseWriter, r *http.Request, action, done string,
	call func(context.Context, int) (*models.Payout, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := call(r.Context(), id)
	recordAdmin(h.Audit, r, action, "payout", id, fmt.Sprintf("%s payout %d", viewmodel.StatusLabel(action), id), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, viewmodel.MapPayout(*p), utils.SuccessToast(done))
}

// Request asks for a payout of the cleaner's available balance
func (h *PayoutHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req models.PayoutRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Service.Request(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.Created(w, viewmodel.MapPayout(*p), utils.SuccessToast("Payout of "+viewmodel.FormatAmountString(req.Amount)+" requested"))
}

// BalanceView is the cleaner's balance with display amounts.
type BalanceView struct {
	Available string `json:"available"`
	Pending   string `json:"pending"`
	PaidOut   string `json:"paid_out"`
}

func (h *PayoutHandler) Balance(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Balance(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.OK(w, BalanceView{
		Available: viewmodel.FormatAmountString(b.Available),
		Pending:   viewmodel.FormatAmountString(b.Pending),
		PaidOut:   viewmodel.FormatAmountString(b.PaidOut),
	}, nil)
}
