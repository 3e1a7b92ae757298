package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/service"
	"github.com/namaztracker/namaz/internal/stats"
)

func MarkCmd(open Opener) *cobra.Command {
	var location string

	c := &cobra.Command{
		Use:   "mark <date> <prayer> <on-time|qaza|missed>",
		Short: "Record one prayer for a day",
		Example: `  namaz mark 2024-01-05 fajr on-time
  namaz mark today dhuhr qaza --location masjid`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), open, func(ctx context.Context, a *app.App) error {
				date := args[0]
				if date == "today" {
					date = today(a)
				}

				in := service.MarkInput{
					Date:     date,
					PrayerID: args[1],
					Location: model.Location(location),
				}
				switch status := model.PrayerStatus(args[2]); status {
				case model.StatusOnTime, model.StatusQaza:
					in.Offered = true
					in.Status = status
				case model.StatusMissed:
				default:
					return fmt.Errorf("%w: %q", service.ErrInvalidStatus, args[2])
				}

				record, err := a.RecordService.Mark(ctx, in)
				if err != nil {
					return err
				}

				prayer, _ := model.PrayerByID(record.PrayerID)
				line := fmt.Sprintf("%s %s: %s", record.Date, stats.DisplayName(prayer, record.Date), record.Status.Label())
				if record.Location != "" {
					line += " (" + string(record.Location) + ")"
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
				return err
			})
		},
	}

	c.Flags().StringVar(&location, "location", "", "where the prayer was offered (home or masjid)")
	return c
}
