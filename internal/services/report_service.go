package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/timeutil"
	"icc-dashboard/internal/viewmodel"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	ReportBookings = "bookings"
	ReportPayouts  = "payouts"
	ReportRevenue  = "revenue"

	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var (
	ErrUnknownReport = errors.New("unknown report")
	ErrUnknownFormat = errors.New("unknown export format")
)

// ReportArchiver stores a copy of an exported report and returns its key.
type ReportArchiver interface {
	Archive(ctx context.Context, kind, ext, contentType string, data []byte) (string, error)
}

// Export is a rendered report file.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	ArchiveKey  string
}

// table is a report flattened to a header and string cells, shared by the
// three export formats.
type table struct {
	Title   string
	Headers []string
	Widths  []float64
	Rows    [][]string
	Footer  []string
}

type ReportService struct {
	client   *backend.Client
	archiver ReportArchiver
	log      *logrus.Logger
}

func NewReportService(client *backend.Client, archiver ReportArchiver, log *logrus.Logger) *ReportService {
	return &ReportService{client: client, archiver: archiver, log: log}
}

func filterQuery(f models.ReportFilter) url.Values {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

func (s *ReportService) Bookings(ctx context.Context, f models.ReportFilter) ([]models.BookingReportRow, error) {
	env, err := backend.Get[[]models.BookingReportRow](ctx, s.client, backend.Path(backend.ReportPrefix, "bookings"), filterQuery(f))
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []models.BookingReportRow{}, nil
	}
	return env.Data, nil
}

func (s *ReportService) Payouts(ctx context.Context, f models.ReportFilter) ([]models.PayoutReportRow, error) {
	env, err := backend.Get[[]models.PayoutReportRow](ctx, s.client, backend.Path(backend.ReportPrefix, "payouts"), filterQuery(f))
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []models.PayoutReportRow{}, nil
	}
	return env.Data, nil
}

func (s *ReportService) Revenue(ctx context.Context, f models.ReportFilter) (*models.RevenueReport, error) {
	env, err := backend.Get[models.RevenueReport](ctx, s.client, backend.Path(backend.ReportPrefix, "revenue"), filterQuery(f))
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Export fetches the report and renders it in format. When an archiver is
// configured a copy is stored; archive failures are logged, not returned.
func (s *ReportService) Export(ctx context.Context, kind, format string, f models.ReportFilter) (*Export, error) {
	t, err := s.buildTable(ctx, kind, f)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		contentType string
	)
	switch format {
	case FormatCSV:
		data, err = renderCSV(t)
		contentType = "text/csv"
	case FormatPDF:
		data, err = renderPDF(t)
		contentType = "application/pdf"
	case FormatXLSX:
		data, err = renderXLSX(t)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	out := &Export{
		Filename:    fmt.Sprintf("%s_report_%s.%s", kind, timeutil.Now().Format("20060102_1504"), format),
		ContentType: contentType,
		Data:        data,
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, kind, format, contentType, data)
		if err != nil {
			s.log.WithError(err).WithField("report", kind).Warn("report archive failed")
		} else {
			out.ArchiveKey = key
		}
	}
	return out, nil
}

func (s *ReportService) buildTable(ctx context.Context, kind string, f models.ReportFilter) (*table, error) {
	switch kind {
	case ReportBookings:
		rows, err := s.Bookings(ctx, f)
		if err != nil {
			return nil, err
		}
		return bookingsTable(rows), nil
	case ReportPayouts:
		rows, err := s.Payouts(ctx, f)
		if err != nil {
			return nil, err
		}
		return payoutsTable(rows), nil
	case ReportRevenue:
		rev, err := s.Revenue(ctx, f)
		if err != nil {
			return nil, err
		}
		return revenueTable(rev), nil
	default:
		return nil, ErrUnknownReport
	}
}

func bookingsTable(rows []models.BookingReportRow) *table {
	t := &table{
		Title:   "Bookings Report",
		Headers: []string{"ID", "When", "Customer", "Cleaner", "Service", "Hours", "Amount", "Fee", "Status"},
		Widths:  []float64{12, 38, 30, 30, 30, 14, 22, 20, 24},
	}
	var total, fees float64
	for _, r := range rows {
		when, err := timeutil.FormatBookingDateTime(r.BookingDate, r.TimeSlot)
		if err != nil {
			when = r.BookingDate
		}
		amount := viewmodel.ParseAmount(r.Amount)
		fee := viewmodel.ParseAmount(r.PlatformFee)
		total += amount
		fees += fee
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.BookingID),
			when,
			r.Customer,
			r.Cleaner,
			r.Service,
			strconv.FormatFloat(r.Hours, 'f', -1, 64),
			viewmodel.FormatAmount(amount),
			viewmodel.FormatAmount(fee),
			viewmodel.StatusLabel(r.Status),
		})
	}
	t.Footer = []string{"", "Total", "", "", "", "", viewmodel.FormatAmount(total), viewmodel.FormatAmount(fees), strconv.Itoa(len(rows)) + " bookings"}
	return t
}

func payoutsTable(rows []models.PayoutReportRow) *table {
	t := &table{
		Title:   "Payouts Report",
		Headers: []string{"ID", "Cleaner", "Method", "Amount", "Status", "Requested", "Paid"},
		Widths:  []float64{14, 50, 32, 28, 28, 34, 34},
	}
	var total float64
	for _, r := range rows {
		amount := viewmodel.ParseAmount(r.Amount)
		total += amount
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.PayoutID),
			r.Cleaner,
			viewmodel.MethodLabel(r.Method),
			viewmodel.FormatAmount(amount),
			viewmodel.StatusLabel(r.Status),
			timeutil.FormatDate(r.RequestedAt),
			timeutil.FormatDate(r.PaidAt),
		})
	}
	t.Footer = []string{"", "Total", "", viewmodel.FormatAmount(total), strconv.Itoa(len(rows)) + " payouts", "", ""}
	return t
}

func revenueTable(rev *models.RevenueReport) *table {
	t := &table{
		Title:   "Revenue Report",
		Headers: []string{"Period", "Amount"},
		Widths:  []float64{120, 60},
	}
	for _, m := range rev.Monthly {
		t.Rows = append(t.Rows, []string{m.Month, viewmodel.FormatAmountString(m.Amount)})
	}
	t.Rows = append(t.Rows,
		[]string{"Gross revenue", viewmodel.FormatAmountString(rev.GrossRevenue)},
		[]string{"Platform fees", viewmodel.FormatAmountString(rev.PlatformFees)},
		[]string{"Cleaner payouts", viewmodel.FormatAmountString(rev.CleanerPayouts)},
		[]string{"Refunds", viewmodel.FormatAmountString(rev.Refunds)},
	)
	return t
}

func renderCSV(t *table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	if t.Footer != nil {
		if err := w.Write(t.Footer); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderPDF(t *table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	// Core fonts are cp1252; the pound sign needs translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "ICC - "+t.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", timeutil.FormatUK(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range t.Headers {
		pdf.CellFormat(t.Widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for i, cell := range row {
			pdf.CellFormat(t.Widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if t.Footer != nil {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(240, 240, 240)
		for i, cell := range t.Footer {
			pdf.CellFormat(t.Widths[i], 7, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(t *table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	write := func(row int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(1, t.Headers); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		if err := write(i+2, row); err != nil {
			return nil, err
		}
	}
	if t.Footer != nil {
		if err := write(len(t.Rows)+2, t.Footer); err != nil {
			return nil, err
		}
	}

	for i, w := range t.Widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w/2)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
