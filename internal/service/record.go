package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/repository"
	"github.com/namaztracker/namaz/internal/stats"
)

var (
	ErrUnknownPrayer   = errors.New("unknown prayer")
	ErrInvalidStatus   = errors.New("invalid prayer status")
	ErrInvalidLocation = errors.New("invalid prayer location")
)

// MarkInput is one tracker decision. Offered=false logs a miss; Status and
// Location are then ignored.
type MarkInput struct {
	Date     string
	PrayerID string
	Offered  bool
	Status   model.PrayerStatus
	Location model.Location
	Notes    string
}

type RecordService struct {
	store repository.RecordStore
	now   func() time.Time
}

func NewRecordService(store repository.RecordStore) *RecordService {
	return &RecordService{
		store: store,
		now:   time.Now,
	}
}

// Mark is the single write path for prayer records.
func (s *RecordService) Mark(ctx context.Context, in MarkInput) (*model.PrayerRecord, error) {
	_, ok := model.PrayerByID(in.PrayerID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrayer, in.PrayerID)
	}
	_, err := stats.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	record := model.PrayerRecord{
		ID:        model.RecordID(in.Date, in.PrayerID),
		Date:      in.Date,
		PrayerID:  in.PrayerID,
		IsOffered: in.Offered,
		Status:    model.StatusMissed,
		Notes:     in.Notes,
	}

	if in.Offered {
		record.Status, err = offeredStatus(in.Status, in.Location)
		if err != nil {
			return nil, err
		}
		record.Location = in.Location
		offeredAt := s.now().UTC()
		record.OfferedAt = &offeredAt
	}

	existing, err := s.store.ForDate(ctx, in.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}
	for _, r := range existing {
		if r.PrayerID == in.PrayerID && r.ID != "" {
			record.ID = r.ID
			break
		}
	}

	err = s.store.Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	slog.Debug("prayer marked", "date", record.Date, "prayer", record.PrayerID, "status", record.Status)
	return &record, nil
}

// offeredStatus is the status an offered prayer is stored with: on-time when
// none is given, never missed. A location, when set, must be a known one.
func offeredStatus(status model.PrayerStatus, location model.Location) (model.PrayerStatus, error) {
	if location != "" && !location.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	switch {
	case status == "":
		return model.StatusOnTime, nil
	case status == model.StatusMissed || !status.Valid():
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return status, nil
}

// Day returns the records and single-day summary for date.
func (s *RecordService) Day(ctx context.Context, date string) (*model.DaySummary, error) {
	_, err := stats.ParseDate(date)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}

	summary := stats.BuildDaySummary(date, records)
	return &summary, nil
}

// Snapshot returns every stored record in the persisted blob layout.
func (s *RecordService) Snapshot(ctx context.Context) (*model.StoredData, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return &model.StoredData{
		PrayerRecords: records,
		LastUpdated:   s.now().UTC(),
	}, nil
}

// Import replaces every stored record with data. Records are held to the same
// rules as Mark, and one bad record rejects the whole import before anything
// is written.
func (s *RecordService) Import(ctx context.Context, data *model.StoredData) (int, error) {
	records := make([]model.PrayerRecord, 0, len(data.PrayerRecords))
	for _, r := range data.PrayerRecords {
		_, ok := model.PrayerByID(r.PrayerID)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownPrayer, r.PrayerID)
		}
		_, err := stats.ParseDate(r.Date)
		if err != nil {
			return 0, err
		}
		if r.ID == "" {
			r.ID = model.RecordID(r.Date, r.PrayerID)
		}
		if r.IsOffered {
			r.Status, err = offeredStatus(r.Status, r.Location)
			if err != nil {
				return 0, fmt.Errorf("record %s: %w", r.ID, err)
			}
		} else {
			r.Status = model.StatusMissed
			r.Location = ""
			r.OfferedAt = nil
		}
		records = append(records, r)
	}

	err := s.store.ReplaceAll(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("failed to import records: %w", err)
	}

	slog.Info("records imported", "count", len(records))
	return len(records), nil
}

func (s *RecordService) ClearAll(ctx context.Context) error {
	err := s.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	slog.Info("all prayer records cleared")
	return nil
}
