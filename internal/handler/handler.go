package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/stats"
	"github.com/namaztracker/namaz/internal/ui"
)

// Calendar resolves "today" in the configured timezone.
type Calendar struct {
	Location *time.Location
	Now      func() time.Time
}

func NewCalendar(loc *time.Location) Calendar {
	return Calendar{Location: loc, Now: time.Now}
}

func (c Calendar) Today() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return stats.Today(now(), c.Location)
}

// statusFor maps service and aggregation errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, stats.ErrInvalidDate),
		errors.Is(err, stats.ErrInvalidRange),
		errors.Is(err, stats.ErrRangeTooLarge),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownPrayer):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail answers err with its status, logging only server-side failures.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctxkeys.Logger(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		ui.RenderStatus(w, r, status, ui.ErrorPage("Something went wrong. Please try again."))
		return
	}
	ui.RenderStatus(w, r, status, ui.ErrorPage(err.Error()))
}
