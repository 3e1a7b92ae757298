package stats

import (
	"math"

	"github.com/namaztracker/namaz/internal/model"
)

// Percent rounds part/whole*100 half-up and returns 0 for an empty whole.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(whole)*100 + 0.5))
}

// BuildDailyRecord derives the range-view figures for one day. Missed counts
// only logged misses and completion is measured against the records present.
func BuildDailyRecord(date string, records []model.PrayerRecord) model.DailyRecord {
	day := model.DailyRecord{
		Date:    date,
		Prayers: records,
	}
	if day.Prayers == nil {
		day.Prayers = []model.PrayerRecord{}
	}

	dhuhrOffered := false
	for _, r := range records {
		if !r.IsOffered {
			day.TotalMissed++
			continue
		}
		day.TotalOffered++
		switch r.Status {
		case model.StatusOnTime:
			day.TotalOnTime++
		case model.StatusQaza:
			day.TotalQaza++
		}
		switch r.Location {
		case model.LocationHome:
			day.TotalHome++
		case model.LocationMasjid:
			day.TotalMasjid++
		}
		if r.PrayerID == model.PrayerDhuhr {
			dhuhrOffered = true
		}
	}

	if dhuhrOffered && IsFriday(date) {
		day.TotalJumma = 1
	}
	day.CompletionPercentage = Percent(day.TotalOffered, len(records))
	return day
}

// BuildDaySummary derives the single-day view: every catalog prayer without an
// offered record counts as missed and completion is out of the full catalog.
func BuildDaySummary(date string, records []model.PrayerRecord) model.DaySummary {
	s := model.DaySummary{
		Date:    date,
		Prayers: records,
	}
	if s.Prayers == nil {
		s.Prayers = []model.PrayerRecord{}
	}

	for _, r := range records {
		if !r.IsOffered {
			continue
		}
		s.TotalOffered++
		switch r.Status {
		case model.StatusOnTime:
			s.TotalOnTime++
		case model.StatusQaza:
			s.TotalQaza++
		}
		switch r.Location {
		case model.LocationHome:
			s.TotalHome++
		case model.LocationMasjid:
			s.TotalMasjid++
		}
	}

	s.TotalMissed = model.CatalogSize() - s.TotalOffered
	s.CompletionPercentage = Percent(s.TotalOffered, model.CatalogSize())
	return s
}

// SummarizeWeek folds the dashboard's trailing window of days.
func SummarizeWeek(days []model.DailyRecord) model.WeeklySummary {
	var w model.WeeklySummary
	for _, d := range days {
		w.TotalDays++
		w.TotalOffered += d.TotalOffered
		w.TotalMissed += d.TotalMissed
		w.TotalOnTime += d.TotalOnTime
		w.TotalQaza += d.TotalQaza
	}
	w.CompletionPercentage = Percent(w.TotalOffered, w.TotalDays*model.CatalogSize())
	return w
}

// DisplayName shows Dhuhr as Jumma on Fridays.
func DisplayName(p model.Prayer, date string) string {
	if p.ID == model.PrayerDhuhr && IsFriday(date) {
		return "Jumma"
	}
	return p.Name
}
