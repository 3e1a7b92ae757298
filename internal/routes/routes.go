package routes

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/namaztracker/namaz/assets"
	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/handler"
	"github.com/namaztracker/namaz/internal/middleware"
	"github.com/namaztracker/namaz/internal/service"
)

// SetupRoutes builds the handler tree. Closing stop ends the in-process rate
// limiters' sweep loops.
func SetupRoutes(a *app.App, stop <-chan struct{}) (http.Handler, error) {
	calendar := handler.NewCalendar(a.Cfg.Location())

	home := handler.NewHomeHandler()
	dashboard := handler.NewDashboardHandler(a.ReportService, calendar)
	tracker := handler.NewTrackerHandler(a.RecordService, calendar)
	report := handler.NewReportHandler(a.ReportService, calendar)
	settings := handler.NewSettingsHandler(a.RecordService, a.AuthService, a.Cfg.StoreBackend, calendar)
	help := handler.NewHelpHandler(a.HelpService)
	auth := handler.NewAuthHandler(a.AuthService, a.Cfg)

	csrf, err := middleware.NewCSRF(a.Cfg.AppURL)
	if err != nil {
		return nil, err
	}

	limitAuth := middleware.Limit(newLimiter(a, "auth", 10, 15*time.Minute, stop))
	limitData := middleware.Limit(newLimiter(a, "data", 20, time.Minute, stop))
	// Backfilling a week is 35 marks, so marking gets a wider budget.
	limitMark := middleware.Limit(newLimiter(a, "mark", 120, time.Minute, stop))

	mux := http.NewServeMux()

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /help", help.HelpPage)

	// Sign-in is optional and never gates the pages below.
	mux.HandleFunc("GET /auth/google", limitAuth(middleware.RequireGuest(auth.GoogleAuth)))
	mux.HandleFunc("GET /auth/google/callback", limitAuth(auth.GoogleCallback))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	mux.HandleFunc("GET /app/dashboard", dashboard.DashboardPage)

	mux.HandleFunc("GET /app/tracker", tracker.TrackerPage)
	mux.HandleFunc("POST /app/tracker/{date}/{prayer}", limitMark(tracker.Mark))

	mux.HandleFunc("GET /app/report", report.ReportPage)
	mux.HandleFunc("GET /app/report/export.json", report.ExportJSON)
	mux.HandleFunc("GET /app/report/export.csv", report.ExportCSV)

	mux.HandleFunc("GET /app/settings", settings.SettingsPage)
	mux.HandleFunc("GET /app/settings/backup", settings.Backup)
	mux.HandleFunc("POST /app/settings/restore", limitData(settings.Restore))
	mux.HandleFunc("POST /app/settings/clear", limitData(settings.Clear))
	mux.HandleFunc("POST /app/settings/name", limitData(settings.UpdateName))

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	return middleware.Chain(
		mux,
		middleware.Config(a.Cfg), // first: CSRF reads APP_ENV from it
		middleware.NonceMiddleware,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		csrf.Protect,
		middleware.AuthMiddleware(a.AuthService, service.SessionCookie),
		middleware.WithURLPath,
	), nil
}

// newLimiter shares counters through redis when the app has a client, and
// otherwise keeps them in process.
func newLimiter(a *app.App, name string, limit int, window time.Duration, stop <-chan struct{}) middleware.Limiter {
	if a.Redis != nil {
		return middleware.NewRedisLimiter(a.Redis, name, limit, window)
	}
	l := middleware.NewMemoryLimiter(limit, window)
	go l.Run(5*time.Minute, stop)
	return l
}
