package handler

import (
	"net/http"

	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/ui"
)

type DashboardHandler struct {
	reportService *service.ReportService
	calendar      Calendar
}

func NewDashboardHandler(reportService *service.ReportService, calendar Calendar) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		calendar:      calendar,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	today := h.calendar.Today()

	d, err := h.reportService.Dashboard(r.Context(), today)
	if err != nil {
		fail(w, r, err)
		return
	}

	ui.Render(w, r, ui.DashboardPage(ui.DashboardView{
		Date:   today,
		Today:  d.Today,
		Week:   d.Week,
		Weekly: d.Weekly,
	}))
}
