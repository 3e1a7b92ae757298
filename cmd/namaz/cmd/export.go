package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/export"
)

func ExportCmd(open Opener) *cobra.Command {
	var (
		f      reportFlags
		format string
		out    string
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Write a report as JSON or CSV",
		Example: `  namaz export --last 30 --format csv --out .
  namaz export --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), open, func(ctx context.Context, a *app.App) error {
				rf, err := f.filters(today(a))
				if err != nil {
					return err
				}

				report, err := a.ReportService.Build(ctx, rf)
				if err != nil {
					return err
				}

				var buf bytes.Buffer
				err = export.Write(&buf, format, report)
				if err != nil {
					return err
				}

				if out == "" {
					_, err = buf.WriteTo(cmd.OutOrStdout())
					return err
				}

				path := out
				info, err := os.Stat(out)
				if err == nil && info.IsDir() {
					path = filepath.Join(out, export.Filename(report.StartDate, report.EndDate, format))
				}
				err = os.WriteFile(path, buf.Bytes(), 0o644)
				if err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				slog.Info("report exported", "path", path, "format", format, "days", report.TotalDays)
				return nil
			})
		},
	}

	f.register(c)
	c.Flags().StringVar(&format, "format", export.FormatJSON, "json or csv")
	c.Flags().StringVar(&out, "out", "", "file or directory to write (default stdout)")
	return c
}
