package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/stats"
)

func DayCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Show the prayers recorded for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), open, func(ctx context.Context, a *app.App) error {
				date := today(a)
				if len(args) == 1 {
					date = args[0]
				}

				summary, err := a.RecordService.Day(ctx, date)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintf(tw, "%s\n", date)
				for _, p := range model.Prayers {
					status, location := "-", ""
					for _, r := range summary.Prayers {
						if r.PrayerID == p.ID {
							status = r.Status.Label()
							location = string(r.Location)
						}
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", stats.DisplayName(p, date), status, location)
				}
				_, _ = fmt.Fprintf(tw, "%d of %d offered, %d%% complete\n",
					summary.TotalOffered, model.CatalogSize(), summary.CompletionPercentage)
				return tw.Flush()
			})
		},
	}
}
