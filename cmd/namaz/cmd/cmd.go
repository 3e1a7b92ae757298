package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/stats"
)

// Opener wires the record services for one command run.
type Opener func() (*app.App, error)

var now = time.Now

func withApp(ctx context.Context, open Opener, fn func(ctx context.Context, a *app.App) error) error {
	a, err := open()
	if err != nil {
		return err
	}
	defer func() {
		closeErr := a.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	return fn(ctx, a)
}

func today(a *app.App) string {
	return stats.Today(now(), a.Cfg.Location())
}
