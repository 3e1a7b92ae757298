package stats

import (
	"slices"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/namaztracker/namaz/internal/model"
)

// PeriodFor names a report window by its length.
func PeriodFor(totalDays int) model.Period {
	switch {
	case totalDays <= 7:
		return model.PeriodWeekly
	case totalDays <= 31:
		return model.PeriodMonthly
	default:
		return model.PeriodYearly
	}
}

func PeriodLabel(p model.Period) string {
	return cases.Title(language.English).String(string(p))
}

// GroupByDate buckets records by their date, keeping input order inside a day.
func GroupByDate(records []model.PrayerRecord) map[string][]model.PrayerRecord {
	byDate := make(map[string][]model.PrayerRecord)
	for _, r := range records {
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	return byDate
}

// BuildReport aggregates [start, end] inclusive. Every calendar day appears in
// DailyRecords, with zeroed counts when nothing was logged. Records outside the
// range are ignored.
func BuildReport(start, end string, records []model.PrayerRecord) (*model.ReportData, error) {
	dates, err := DateRange(start, end)
	if err != nil {
		return nil, err
	}

	byDate := GroupByDate(records)
	report := &model.ReportData{
		StartDate:       start,
		EndDate:         end,
		TotalDays:       len(dates),
		TotalPrayers:    len(dates) * model.CatalogSize(),
		DailyRecords:    make([]model.DailyRecord, 0, len(dates)),
		PrayerBreakdown: make(map[string]model.PrayerBreakdown, model.CatalogSize()),
	}
	report.Period = PeriodFor(report.TotalDays)

	for _, date := range dates {
		day := BuildDailyRecord(date, byDate[date])
		report.TotalOffered += day.TotalOffered
		report.TotalOnTime += day.TotalOnTime
		report.TotalQaza += day.TotalQaza
		report.TotalHome += day.TotalHome
		report.TotalMasjid += day.TotalMasjid
		report.TotalJumma += day.TotalJumma
		report.DailyRecords = append(report.DailyRecords, day)
	}
	report.TotalMissed = report.TotalPrayers - report.TotalOffered
	report.CompletionPercentage = Percent(report.TotalOffered, report.TotalPrayers)

	for _, p := range model.Prayers {
		report.PrayerBreakdown[p.ID] = breakdown(p, report.DailyRecords)
	}

	return report, nil
}

func breakdown(p model.Prayer, days []model.DailyRecord) model.PrayerBreakdown {
	b := model.PrayerBreakdown{Name: p.Name}
	for i := range days {
		r, ok := days[i].Record(p.ID)
		if !ok || !r.IsOffered {
			continue
		}
		b.Offered++
		switch r.Status {
		case model.StatusOnTime:
			b.OnTime++
		case model.StatusQaza:
			b.Qaza++
		}
		switch r.Location {
		case model.LocationHome:
			b.Home++
		case model.LocationMasjid:
			b.Masjid++
		}
	}
	b.Missed = len(days) - b.Offered
	b.Percentage = Percent(b.Offered, len(days))
	return b
}

// SortDays orders daily records in place. Sorting by prayer puts the days with
// the most offered prayers first in descending order, ties broken by date.
func SortDays(days []model.DailyRecord, by, order string) {
	desc := order == model.SortDesc

	less := func(a, b model.DailyRecord) bool {
		switch by {
		case model.SortByCompletion:
			if a.CompletionPercentage != b.CompletionPercentage {
				return a.CompletionPercentage < b.CompletionPercentage
			}
		case model.SortByPrayer:
			if a.TotalOffered != b.TotalOffered {
				return a.TotalOffered < b.TotalOffered
			}
		}
		return a.Date < b.Date
	}

	sort.SliceStable(days, func(i, j int) bool {
		if desc {
			return less(days[j], days[i])
		}
		return less(days[i], days[j])
	})
}

// FilterPrayers narrows a report's per-prayer breakdown to ids. An empty
// selection keeps every prayer. Unknown ids are ignored.
func FilterPrayers(report *model.ReportData, ids []string) {
	if len(ids) == 0 {
		return
	}
	for id := range report.PrayerBreakdown {
		if !slices.Contains(ids, id) {
			delete(report.PrayerBreakdown, id)
		}
	}
}
