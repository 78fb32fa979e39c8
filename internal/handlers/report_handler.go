package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/metrics"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/validation"
	"icc-dashboard/internal/viewmodel"
	"icc-dashboard/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const ArchiveKeyHeader = "X-Archive-Key"

type ReportHandler struct {
	Service *services.ReportService
	Audit   *audit.Recorder
	log     *logrus.Logger
}

func NewReportHandler(s *services.ReportService, recorder *audit.Recorder, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{Service: s, Audit: recorder, log: log}
}

// filter reads ?start_date=&end_date=&status= and validates the dates
func filter(w http.ResponseWriter, r *http.Request) (models.ReportFilter, bool) {
	q := r.URL.Query()
	f := models.ReportFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Status:    q.Get("status"),
	}
	if err := validation.Struct(&f); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return f, false
	}
	if f.StartDate != "" && f.EndDate != "" && f.EndDate < f.StartDate {
		utils.Error(w, http.StatusBadRequest, "End date must not be before start date")
		return f, false
	}
	return f, true
}

func (h *ReportHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	f, ok := filter(w, r)
	if !ok {
		return
	}
	rows, err := h.Service.Bookings(r.Context(), f)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	for i := range rows {
		rows[i].Amount = viewmodel.FormatAmountString(rows[i].Amount)
		rows[i].PlatformFee = viewmodel.FormatAmountString(rows[i].PlatformFee)
	}
	utils.OK(w, rows, nil)
}

func (h *ReportHandler) Payouts(w http.ResponseWriter, r *http.Request) {
	f, ok := filter(w, r)
	if !ok {
		return
	}
	rows, err := h.Service.Payouts(r.Context(), f)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	for i := range rows {
		rows[i].Amount = viewmodel.FormatAmountString(rows[i].Amount)
		rows[i].Method = viewmodel.MethodLabel(rows[i].Method)
	}
	utils.OK(w, rows, nil)
}

// RevenueView is the revenue report with display amounts and a chart.
type RevenueView struct {
	Cards []viewmodel.StatCard   `json:"cards"`
	Chart *viewmodel.ChartSeries `json:"chart,omitempty"`
}

func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	f, ok := filter(w, r)
	if !ok {
		return
	}
	rev, err := h.Service.Revenue(r.Context(), f)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view := RevenueView{Cards: []viewmodel.StatCard{
		{Label: "Gross Revenue", Value: viewmodel.FormatAmountString(rev.GrossRevenue), Icon: "pi pi-pound"},
		{Label: "Platform Fees", Value: viewmodel.FormatAmountString(rev.PlatformFees), Icon: "pi pi-percentage"},
		{Label: "Cleaner Payouts", Value: viewmodel.FormatAmountString(rev.CleanerPayouts), Icon: "pi pi-wallet"},
		{Label: "Refunds", Value: viewmodel.FormatAmountString(rev.Refunds), Icon: "pi pi-replay"},
	}}
	if len(rev.Monthly) > 0 {
		view.Chart = &viewmodel.ChartSeries{}
		for _, p := range rev.Monthly {
			view.Chart.Labels = append(view.Chart.Labels, p.Month)
			view.Chart.Values = append(view.Chart.Values, viewmodel.ParseAmount(p.Amount))
		}
	}
	utils.OK(w, view, nil)
}

// Export streams /api/admin/reports/{kind}/export?format=csv|pdf|xlsx as a
// download
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, ok := filter(w, r)
	if !ok {
		return
	}
	kind := mux.Vars(r)["kind"]
	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.FormatCSV
	}

	out, err := h.Service.Export(r.Context(), kind, format, f)
	recordAdmin(h.Audit, r, "export", "report", 0, fmt.Sprintf("Exported %s report as %s", kind, format), err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	metrics.ReportExports.WithLabelValues(kind, format).Inc()

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	if out.ArchiveKey != "" {
		w.Header().Set(ArchiveKeyHeader, out.ArchiveKey)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Data); err != nil {
		h.log.WithError(err).Warn("report download interrupted")
	}
}
