package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/namaztracker/namaz/internal/app"
	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/stats"
)

const defaultLast = 7

type reportFlags struct {
	from    string
	to      string
	last    int
	sort    string
	order   string
	prayers []string
}

func (f *reportFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD")
	c.Flags().StringVar(&f.to, "to", "", "last day, YYYY-MM-DD (default today)")
	c.Flags().IntVar(&f.last, "last", 0, "report the last N days ending today")
	c.Flags().StringSliceVar(&f.prayers, "prayer", nil, "limit the breakdown to these prayers")
}

// filters resolves the flags against today. --last wins over --from/--to;
// neither selects the last seven days.
func (f *reportFlags) filters(today string) (model.ReportFilters, error) {
	rf := model.ReportFilters{
		StartDate: f.from,
		EndDate:   f.to,
		PrayerIDs: f.prayers,
		SortBy:    f.sort,
		SortOrder: f.order,
	}

	last := f.last
	if last < 0 {
		return rf, errors.New("--last must be positive")
	}
	if last == 0 && f.from == "" && f.to == "" {
		last = defaultLast
	}
	if last > 0 {
		start, end, err := stats.QuickRange(today, last)
		if err != nil {
			return rf, err
		}
		rf.StartDate, rf.EndDate = start, end
		return rf, nil
	}

	if rf.StartDate == "" {
		return rf, errors.New("--from is required with --to")
	}
	if rf.EndDate == "" {
		rf.EndDate = today
	}
	return rf, nil
}

func ReportCmd(open Opener) *cobra.Command {
	var f reportFlags

	c := &cobra.Command{
		Use:   "report",
		Short: "Summarize a date range",
		Args:  cobra.NoArgs,
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
				return printReport(cmd.OutOrStdout(), report)
			})
		},
	}

	f.register(c)
	c.Flags().StringVar(&f.sort, "sort", "", "order days by date, completion or prayer")
	c.Flags().StringVar(&f.order, "order", "", "asc or desc")
	return c
}

func printReport(w io.Writer, r *model.ReportData) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "%s report, %s to %s (%d days)\n", stats.PeriodLabel(r.Period), r.StartDate, r.EndDate, r.TotalDays)
	_, _ = fmt.Fprintf(tw, "Offered %d of %d, missed %d, %d%% complete\n", r.TotalOffered, r.TotalPrayers, r.TotalMissed, r.CompletionPercentage)
	_, _ = fmt.Fprintf(tw, "On time %d, qaza %d, home %d, masjid %d, jumma %d\n\n", r.TotalOnTime, r.TotalQaza, r.TotalHome, r.TotalMasjid, r.TotalJumma)

	_, _ = fmt.Fprintln(tw, "Prayer\tOffered\tMissed\tOn time\tQaza\tCompletion")
	for _, p := range model.Prayers {
		b, ok := r.PrayerBreakdown[p.ID]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d%%\n", p.Name, b.Offered, b.Missed, b.OnTime, b.Qaza, b.Percentage)
	}

	_, _ = fmt.Fprintln(tw, "\nDate\tOffered\tMissed\tCompletion")
	for _, d := range r.DailyRecords {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n", d.Date, d.TotalOffered, d.TotalMissed, d.CompletionPercentage)
	}
	return tw.Flush()
}
