package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/export"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/stats"
	"github.com/namaztracker/namaz/internal/ui"
)

// defaultRange is the quick range shown when no dates are given, newest day
// first unless a sort is chosen.
const defaultRange = 30

var quickRanges = []int{7, 30, 90, 365}

var errBadFilter = errors.New("invalid report filter")

type ReportHandler struct {
	reportService *service.ReportService
	calendar      Calendar
}

func NewReportHandler(reportService *service.ReportService, calendar Calendar) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		calendar:      calendar,
	}
}

// parseFilters reads start, end, range, sort, order and repeated prayer
// params. range wins over explicit dates; no dates selects the default range.
func (h *ReportHandler) parseFilters(r *http.Request) (model.ReportFilters, string, error) {
	q := r.URL.Query()
	f := model.ReportFilters{
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		PrayerIDs: q["prayer"],
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("order"),
	}

	switch f.SortBy {
	case "", model.SortByDate, model.SortByCompletion, model.SortByPrayer:
	default:
		return f, "", fmt.Errorf("%w: unknown sort %q", errBadFilter, f.SortBy)
	}
	if f.SortOrder != "" && f.SortOrder != model.SortAsc && f.SortOrder != model.SortDesc {
		return f, "", fmt.Errorf("%w: unknown order %q", errBadFilter, f.SortOrder)
	}
	if f.SortBy == "" {
		f.SortBy = model.SortByDate
		if f.SortOrder == "" {
			f.SortOrder = model.SortDesc
		}
	}

	rangeParam := q.Get("range")
	days := 0
	switch {
	case rangeParam != "":
		n, err := strconv.Atoi(rangeParam)
		if err != nil || !slices.Contains(quickRanges, n) {
			return f, "", fmt.Errorf("%w: unknown range %q", errBadFilter, rangeParam)
		}
		days = n
	case f.StartDate == "" && f.EndDate == "":
		days = defaultRange
		rangeParam = strconv.Itoa(defaultRange)
	}

	if days > 0 {
		start, end, err := stats.QuickRange(h.calendar.Today(), days)
		if err != nil {
			return f, "", err
		}
		f.StartDate, f.EndDate = start, end
	}
	return f, rangeParam, nil
}

func (h *ReportHandler) ReportPage(w http.ResponseWriter, r *http.Request) {
	f, rangeParam, err := h.parseFilters(r)
	if err != nil {
		ui.RenderStatus(w, r, http.StatusBadRequest, ui.ReportPage(ui.ReportView{Filters: f, Error: err.Error()}))
		return
	}

	report, err := h.reportService.Build(r.Context(), f)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			fail(w, r, err)
			return
		}
		ui.RenderStatus(w, r, status, ui.ReportPage(ui.ReportView{Filters: f, Range: rangeParam, Error: err.Error()}))
		return
	}

	ui.Render(w, r, ui.ReportPage(ui.ReportView{
		Filters: f,
		Range:   rangeParam,
		Report:  report,
	}))
}

func (h *ReportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatJSON)
}

func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatCSV)
}

func (h *ReportHandler) export(w http.ResponseWriter, r *http.Request, format string) {
	f, _, err := h.parseFilters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reportService.Build(r.Context(), f)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			ctxkeys.Logger(r.Context()).Error("failed to build report for export", "error", err)
			http.Error(w, "Failed to export report", status)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}

	var buf bytes.Buffer
	err = export.Write(&buf, format, report)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to encode report", "format", format, "error", err)
		http.Error(w, "Failed to export report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(report.StartDate, report.EndDate, format)))
	_, err = buf.WriteTo(w)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to write export", "error", err)
	}
}
