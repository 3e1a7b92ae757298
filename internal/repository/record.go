package repository

import (
	"context"
	"sort"

	"github.com/namaztracker/namaz/internal/model"
)

// RecordStore persists prayer records. At most one record exists per
// (date, prayerId); Upsert replaces an existing one. Date bounds are
// inclusive and compared as YYYY-MM-DD strings.
type RecordStore interface {
	All(ctx context.Context) ([]model.PrayerRecord, error)
	ForDate(ctx context.Context, date string) ([]model.PrayerRecord, error)
	InRange(ctx context.Context, start, end string) ([]model.PrayerRecord, error)
	Upsert(ctx context.Context, record model.PrayerRecord) error
	ReplaceAll(ctx context.Context, records []model.PrayerRecord) error
	Clear(ctx context.Context) error
}

func inRange(records []model.PrayerRecord, start, end string) []model.PrayerRecord {
	out := []model.PrayerRecord{}
	for _, r := range records {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	return out
}

// dedupe keeps the last record for each (date, prayerId), ordered by date then prayer.
func dedupe(records []model.PrayerRecord) []model.PrayerRecord {
	type pair struct{ date, prayerID string }
	latest := make(map[pair]model.PrayerRecord, len(records))
	for _, r := range records {
		latest[pair{r.Date, r.PrayerID}] = r
	}

	out := make([]model.PrayerRecord, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].PrayerID < out[j].PrayerID
	})
	return out
}
