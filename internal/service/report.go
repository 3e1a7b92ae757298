package service

import (
	"context"
	"fmt"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/repository"
	"github.com/namaztracker/namaz/internal/stats"
)

// dashboardWindow is how many days before today the dashboard's week covers.
const dashboardWindow = 7

type ReportService struct {
	store repository.RecordStore
}

func NewReportService(store repository.RecordStore) *ReportService {
	return &ReportService{store: store}
}

// Build aggregates the filtered range. Sorting reorders DailyRecords only;
// the range totals are independent of it.
func (s *ReportService) Build(ctx context.Context, f model.ReportFilters) (*model.ReportData, error) {
	_, err := stats.DateRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}
	for _, id := range f.PrayerIDs {
		_, ok := model.PrayerByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPrayer, id)
		}
	}

	records, err := s.store.InRange(ctx, f.StartDate, f.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	report, err := stats.BuildReport(f.StartDate, f.EndDate, records)
	if err != nil {
		return nil, err
	}

	stats.FilterPrayers(report, f.PrayerIDs)
	if f.SortBy != "" {
		stats.SortDays(report.DailyRecords, f.SortBy, f.SortOrder)
	}
	return report, nil
}

type Dashboard struct {
	Today  model.DaySummary
	Week   []model.DailyRecord
	Weekly model.WeeklySummary
}

// Dashboard summarises today and the window today-7 .. today.
func (s *ReportService) Dashboard(ctx context.Context, today string) (*Dashboard, error) {
	start, err := stats.AddDays(today, -dashboardWindow)
	if err != nil {
		return nil, err
	}

	records, err := s.store.InRange(ctx, start, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	report, err := stats.BuildReport(start, today, records)
	if err != nil {
		return nil, err
	}

	byDate := stats.GroupByDate(records)
	return &Dashboard{
		Today:  stats.BuildDaySummary(today, byDate[today]),
		Week:   report.DailyRecords,
		Weekly: stats.SummarizeWeek(report.DailyRecords),
	}, nil
}
