package ui

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	"github.com/namaztracker/namaz/internal/ctxkeys"
)

// Render writes c with status 200.
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	RenderStatus(w, r, http.StatusOK, c)
}

// RenderStatus buffers c so a failed render can still answer 500.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	err := c.Render(r.Context(), &buf)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	if err != nil {
		ctxkeys.Logger(r.Context()).Error("render write failed", "path", r.URL.Path, "error", err)
	}
}
