package handler

import (
	"net/http"
	"net/url"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/stats"
	"github.com/namaztracker/namaz/internal/ui"
)

type TrackerHandler struct {
	recordService *service.RecordService
	calendar      Calendar
}

func NewTrackerHandler(recordService *service.RecordService, calendar Calendar) *TrackerHandler {
	return &TrackerHandler{
		recordService: recordService,
		calendar:      calendar,
	}
}

// TrackerPage shows one day, today unless ?date= names another.
func (h *TrackerHandler) TrackerPage(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.calendar.Today()
	}

	summary, err := h.recordService.Day(r.Context(), date)
	if err != nil {
		fail(w, r, err)
		return
	}

	// Day already validated date.
	prev, _ := stats.AddDays(date, -1)
	next, _ := stats.AddDays(date, 1)

	ui.Render(w, r, ui.TrackerPage(ui.TrackerView{
		Date:    date,
		Prev:    prev,
		Next:    next,
		Summary: *summary,
	}))
}

// Mark records the submitted action for {date}/{prayer} and returns to the day.
func (h *TrackerHandler) Mark(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	prayerID := r.PathValue("prayer")

	in := service.MarkInput{
		Date:     date,
		PrayerID: prayerID,
		Location: model.Location(r.PostFormValue("location")),
		Notes:    r.PostFormValue("notes"),
	}

	switch action := model.PrayerStatus(r.PostFormValue("action")); action {
	case model.StatusOnTime, model.StatusQaza:
		in.Offered = true
		in.Status = action
	case model.StatusMissed:
		in.Offered = false
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	_, err := h.recordService.Mark(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	target := "/app/tracker?date=" + url.QueryEscape(date) + "#prayer-" + url.PathEscape(prayerID)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
