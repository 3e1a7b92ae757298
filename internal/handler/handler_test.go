package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/ctxkeys"
	"github.com/namaztracker/namaz/internal/db"
	"github.com/namaztracker/namaz/internal/export"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/repository"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/storage"
)

// 2024-01-05 is a Friday.
var testCalendar = Calendar{
	Location: time.UTC,
	Now:      func() time.Time { return time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC) },
}

type env struct {
	records *service.RecordService
	reports *service.ReportService
	auth    *service.AuthService
	mux     *http.ServeMux
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := repository.NewBlobRecordStore(storage.NewMemoryStore(), "namaz-tracker-data")
	database, err := db.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	e := &env{
		records: service.NewRecordService(store),
		reports: service.NewReportService(store),
		auth:    service.NewAuthService(repository.NewUserRepository(database), "test-secret", time.Hour, false),
		mux:     http.NewServeMux(),
	}

	tracker := NewTrackerHandler(e.records, testCalendar)
	report := NewReportHandler(e.reports, testCalendar)
	settings := NewSettingsHandler(e.records, e.auth, "memory", testCalendar)
	dashboard := NewDashboardHandler(e.reports, testCalendar)
	home := NewHomeHandler()
	help := NewHelpHandler(service.NewHelpService(filepath.Join("..", "..", "content")))

	e.mux.HandleFunc("GET /{$}", home.HomePage)
	e.mux.HandleFunc("GET /help", help.HelpPage)
	e.mux.HandleFunc("GET /app/dashboard", dashboard.DashboardPage)
	e.mux.HandleFunc("GET /app/tracker", tracker.TrackerPage)
	e.mux.HandleFunc("POST /app/tracker/{date}/{prayer}", tracker.Mark)
	e.mux.HandleFunc("GET /app/report", report.ReportPage)
	e.mux.HandleFunc("GET /app/report/export.json", report.ExportJSON)
	e.mux.HandleFunc("GET /app/report/export.csv", report.ExportCSV)
	e.mux.HandleFunc("GET /app/settings", settings.SettingsPage)
	e.mux.HandleFunc("GET /app/settings/backup", settings.Backup)
	e.mux.HandleFunc("POST /app/settings/restore", settings.Restore)
	e.mux.HandleFunc("POST /app/settings/clear", settings.Clear)
	e.mux.HandleFunc("POST /app/settings/name", settings.UpdateName)
	e.mux.HandleFunc("/{path...}", home.NotFoundPage)
	return e
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	ctx := ctxkeys.WithConfig(req.Context(), &config.Config{AppName: "Namaz Tracker"})
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func (e *env) get(target string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *env) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *env) mark(t *testing.T, date, prayerID, action, location string) {
	t.Helper()
	rec := e.postForm("/app/tracker/"+date+"/"+prayerID, url.Values{"action": {action}, "location": {location}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
}

func TestHomeRedirects(t *testing.T) {
	rec := newEnv(t).get("/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/dashboard", rec.Header().Get("Location"))
}

func TestNotFound(t *testing.T) {
	rec := newEnv(t).get("/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestTrackerMarkFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.postForm("/app/tracker/2024-01-05/dhuhr", url.Values{"action": {"on-time"}, "location": {"masjid"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/tracker?date=2024-01-05#prayer-dhuhr", rec.Header().Get("Location"))

	e.mark(t, "2024-01-05", model.PrayerFajr, "qaza", "")
	e.mark(t, "2024-01-05", model.PrayerAsr, "missed", "home")

	day, err := e.records.Day(context.Background(), "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, 2, day.TotalOffered)
	assert.Equal(t, 3, day.TotalMissed)
	assert.Equal(t, 1, day.TotalMasjid)
	assert.Equal(t, 0, day.TotalHome)

	rec = e.get("/app/tracker")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="2024-01-05"`)
	assert.Contains(t, body, "Jumma")
	assert.Contains(t, body, "2 of 5 offered, 40% complete")
}

func TestTrackerErrors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		target string
		action string
		want   int
	}{
		{name: "unknown action", target: "/app/tracker/2024-01-05/fajr", action: "late", want: http.StatusBadRequest},
		{name: "unknown prayer", target: "/app/tracker/2024-01-05/witr", action: "on-time", want: http.StatusNotFound},
		{name: "bad date", target: "/app/tracker/2024-02-30/fajr", action: "on-time", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.postForm(tt.target, url.Values{"action": {tt.action}})
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, e.get("/app/tracker?date=someday").Code)
}

func TestDashboardPage(t *testing.T) {
	e := newEnv(t)
	e.mark(t, "2024-01-05", model.PrayerFajr, "on-time", "")
	e.mark(t, "2024-01-01", model.PrayerFajr, "on-time", "")

	rec := e.get("/app/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Today, 2024-01-05")
	assert.Contains(t, body, "1 / 5")
	assert.Contains(t, body, "2 / 40")
}

func TestReportPage(t *testing.T) {
	e := newEnv(t)
	e.mark(t, "2024-01-02", model.PrayerIsha, "on-time", "")

	tests := []struct {
		name     string
		target   string
		want     int
		contains string
	}{
		{name: "default range", target: "/app/report", want: http.StatusOK, contains: "Monthly report, 2023-12-06 to 2024-01-05"},
		{name: "default order", target: "/app/report", want: http.StatusOK, contains: `<option value="desc" selected>Descending</option>`},
		{name: "week", target: "/app/report?range=7", want: http.StatusOK, contains: "Monthly report, 2023-12-29 to 2024-01-05"},
		{name: "range too large", target: "/app/report?start=0001-01-01&end=9999-12-31", want: http.StatusBadRequest, contains: "more than 3660 days"},
		{name: "quick range", target: "/app/report?range=30", want: http.StatusOK, contains: "Monthly report, 2023-12-06 to 2024-01-05"},
		{name: "explicit dates", target: "/app/report?start=2024-01-01&end=2024-01-03&sort=completion&order=desc", want: http.StatusOK, contains: "Weekly report, 2024-01-01 to 2024-01-03"},
		{name: "reversed range", target: "/app/report?start=2024-01-03&end=2024-01-01", want: http.StatusBadRequest, contains: "end date before start date"},
		{name: "unknown range", target: "/app/report?range=14", want: http.StatusBadRequest, contains: "unknown range"},
		{name: "unknown sort", target: "/app/report?sort=mood", want: http.StatusBadRequest, contains: "unknown sort"},
		{name: "unknown prayer", target: "/app/report?prayer=duha", want: http.StatusNotFound, contains: "unknown prayer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.get(tt.target)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestExport(t *testing.T) {
	e := newEnv(t)
	e.mark(t, "2024-01-05", model.PrayerDhuhr, "on-time", "masjid")

	rec := e.get("/app/report/export.csv?start=2024-01-04&end=2024-01-05")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=namaz-report-2024-01-04-to-2024-01-05.csv", rec.Header().Get("Content-Disposition"))

	// Newest day first when no sort is given.
	rows, err := export.ReadCSV(rec.Body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-05", rows[0].Date)
	assert.Equal(t, 1, rows[0].TotalJumma)
	assert.Equal(t, model.StatusOnTime, rows[0].Statuses[model.PrayerDhuhr])

	rec = e.get("/app/report/export.csv?start=2024-01-04&end=2024-01-05&sort=date&order=asc")
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err = export.ReadCSV(rec.Body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-04", rows[0].Date)

	rec = e.get("/app/report/export.json?range=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report model.ReportData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 8, report.TotalDays)
	assert.Equal(t, 1, report.TotalJumma)

	assert.Equal(t, http.StatusBadRequest, e.get("/app/report/export.csv?start=2024-01-05&end=2024-01-01").Code)
	assert.Equal(t, http.StatusBadRequest, e.get("/app/report/export.json?start=0001-01-01&end=9999-12-31").Code)
}

func TestSettingsBackupRestoreClear(t *testing.T) {
	e := newEnv(t)
	e.mark(t, "2024-01-05", model.PrayerFajr, "on-time", "")
	e.mark(t, "2024-01-04", model.PrayerIsha, "missed", "")

	rec := e.get("/app/settings")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 records stored (memory backend).")

	rec = e.get("/app/settings/backup")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=namaz-tracker-backup-2024-01-05.json", rec.Header().Get("Content-Disposition"))
	backup := rec.Body.Bytes()

	var data model.StoredData
	require.NoError(t, json.Unmarshal(backup, &data))
	assert.Len(t, data.PrayerRecords, 2)

	// Clearing needs confirmation.
	rec = e.postForm("/app/settings/clear", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.postForm("/app/settings/clear", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, e.get("/app/settings?cleared=1").Body.String(), "0 records stored")

	rec = e.do(uploadRequest(t, "/app/settings/restore", "backup.json", backup))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/settings?restored=2", rec.Header().Get("Location"))

	snapshot, err := e.records.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.PrayerRecords, 2)
}

func TestRestoreRejectsBadUploads(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "wrong extension", filename: "backup.csv", content: `{"prayerRecords":[]}`},
		{name: "not json", filename: "backup.json", content: "hello"},
		{name: "unknown prayer", filename: "backup.json", content: `{"prayerRecords":[{"date":"2024-01-01","prayerId":"witr"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(uploadRequest(t, "/app/settings/restore", tt.filename, []byte(tt.content)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateName(t *testing.T) {
	e := newEnv(t)

	rec := e.postForm("/app/settings/name", url.Values{"name": {"Hamza"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	user, err := e.auth.AuthenticateOAuth(context.Background(), "hamza@example.com", "", model.ProviderGoogle)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/app/settings/name", strings.NewReader(url.Values{"name": {"Hamza"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(ctxkeys.WithUser(req.Context(), user))
	rec = e.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestHelpPage(t *testing.T) {
	rec := newEnv(t).get("/help")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "How to use Namaz Tracker")
	assert.Contains(t, rec.Body.String(), `<a href="#backup-and-restore">Backup and restore</a>`)
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("backup", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
