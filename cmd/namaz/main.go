package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/namaztracker/namaz/cmd/namaz/cmd"
	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/config"
	"github.com/namaztracker/namaz/internal/logger"
)

func main() {
	cfg := config.LoadCLI()

	logger.Init(logger.Options{
		Dev:       cfg.IsDevelopment(),
		SentryDSN: cfg.SentryDSN,
		Output:    os.Stderr,
		AppName:   cfg.AppName,
	})

	open := func() (*app.App, error) {
		return app.NewCLI(cfg)
	}

	rootCmd := &cobra.Command{
		Use:          "namaz",
		Short:        "Track the five daily prayers from the terminal",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MarkCmd(open))
	rootCmd.AddCommand(cmd.DayCmd(open))
	rootCmd.AddCommand(cmd.ReportCmd(open))
	rootCmd.AddCommand(cmd.ExportCmd(open))
	rootCmd.AddCommand(cmd.ClearCmd(open))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
