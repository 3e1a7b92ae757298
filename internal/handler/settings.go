package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/ui"
	"github.com/namaztracker/namaz/internal/validation"
)

type SettingsHandler struct {
	recordService *service.RecordService
	authService   *service.AuthService
	backend       string
	calendar      Calendar
}

func NewSettingsHandler(recordService *service.RecordService, authService *service.AuthService, backend string, calendar Calendar) *SettingsHandler {
	return &SettingsHandler{
		recordService: recordService,
		authService:   authService,
		backend:       backend,
		calendar:      calendar,
	}
}

func (h *SettingsHandler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "")
}

func (h *SettingsHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	snapshot, err := h.recordService.Snapshot(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	q := r.URL.Query()
	message := ""
	switch {
	case q.Has("restored"):
		message = fmt.Sprintf("Restored %s records.", q.Get("restored"))
	case q.Has("cleared"):
		message = "All prayer records were cleared."
	case q.Has("saved"):
		message = "Name saved."
	}

	ui.RenderStatus(w, r, status, ui.SettingsPage(ui.SettingsView{
		User:        ctxkeys.User(r.Context()),
		RecordCount: len(snapshot.PrayerRecords),
		Backend:     h.backend,
		Message:     message,
		Error:       errMsg,
	}))
}

// Clear wipes every record. The form must carry confirm=yes.
func (h *SettingsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "yes" {
		h.renderPage(w, r, http.StatusBadRequest, "Tick the confirmation box to clear your data.")
		return
	}

	err := h.recordService.ClearAll(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/app/settings?cleared=1", http.StatusSeeOther)
}

// Backup downloads every record in the persisted blob layout.
func (h *SettingsHandler) Backup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.recordService.Snapshot(r.Context())
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to snapshot records", "error", err)
		http.Error(w, "Failed to create backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=namaz-tracker-backup-%s.json", h.calendar.Today()))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(snapshot)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("failed to encode backup", "error", err)
	}
}

// Restore replaces every record with an uploaded backup.
func (h *SettingsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxBackupSize+(1<<20))

	file, header, err := r.FormFile("backup")
	if err != nil {
		h.renderPage(w, r, http.StatusBadRequest, "Choose a backup file to restore.")
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateBackup(header)
	if err != nil {
		h.renderPage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var data model.StoredData
	err = json.NewDecoder(file).Decode(&data)
	if err != nil {
		h.renderPage(w, r, http.StatusBadRequest, "The backup file is not valid JSON.")
		return
	}

	n, err := h.recordService.Import(r.Context(), &data)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			fail(w, r, err)
			return
		}
		h.renderPage(w, r, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, "/app/settings?restored="+strconv.Itoa(n), http.StatusSeeOther)
}

// UpdateName changes the signed-in user's display name.
func (h *SettingsHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		http.Error(w, "Sign in to change your name", http.StatusUnauthorized)
		return
	}

	err := h.authService.UpdateName(r.Context(), user.ID, r.PostFormValue("name"))
	if err != nil {
		h.renderPage(w, r, http.StatusBadRequest, err.Error())
		return
	}
	http.Redirect(w, r, "/app/settings?saved=1", http.StatusSeeOther)
}
