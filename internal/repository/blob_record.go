package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/storage"
)

// blobRecordStore keeps every record in one serialized StoredData blob.
type blobRecordStore struct {
	mu   sync.Mutex
	blob storage.BlobStore
	key  string
	now  func() time.Time
}

func NewBlobRecordStore(blob storage.BlobStore, key string) RecordStore {
	return &blobRecordStore{
		blob: blob,
		key:  key,
		now:  time.Now,
	}
}

// load returns the stored records. An absent or undecodable blob yields an
// empty set; only backend failures are returned as errors.
func (s *blobRecordStore) load(ctx context.Context) ([]model.PrayerRecord, error) {
	raw, err := s.blob.Get(ctx, s.key)
	if errors.Is(err, storage.ErrBlobNotFound) {
		return []model.PrayerRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prayer records: %w", err)
	}

	var data model.StoredData
	err = json.Unmarshal(raw, &data)
	if err != nil {
		slog.Warn("stored prayer records are unreadable, treating as empty", "key", s.key, "error", err)
		return []model.PrayerRecord{}, nil
	}
	if data.PrayerRecords == nil {
		return []model.PrayerRecord{}, nil
	}
	return data.PrayerRecords, nil
}

func (s *blobRecordStore) save(ctx context.Context, records []model.PrayerRecord) error {
	raw, err := json.Marshal(model.StoredData{
		PrayerRecords: records,
		LastUpdated:   s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode prayer records: %w", err)
	}

	err = s.blob.Put(ctx, s.key, raw)
	if err != nil {
		return fmt.Errorf("failed to save prayer records: %w", err)
	}
	return nil
}

func (s *blobRecordStore) All(ctx context.Context) ([]model.PrayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *blobRecordStore) ForDate(ctx context.Context, date string) ([]model.PrayerRecord, error) {
	return s.InRange(ctx, date, date)
}

func (s *blobRecordStore) InRange(ctx context.Context, start, end string) ([]model.PrayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return inRange(records, start, end), nil
}

func (s *blobRecordStore) Upsert(ctx context.Context, record model.PrayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].Date == record.Date && records[i].PrayerID == record.PrayerID {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	return s.save(ctx, records)
}

func (s *blobRecordStore) ReplaceAll(ctx context.Context, records []model.PrayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, dedupe(records))
}

func (s *blobRecordStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.blob.Delete(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to clear prayer records: %w", err)
	}
	return nil
}
