package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/namaztracker/namaz/internal/model"
)

const recordColumns = `id, date, prayer_id, is_offered, status, offered_at, location, notes`

type sqlRecordStore struct {
	db *sqlx.DB
}

// NewSQLRecordStore stores records in the prayer_records table, which carries
// a unique (date, prayer_id) constraint.
func NewSQLRecordStore(db *sqlx.DB) RecordStore {
	return &sqlRecordStore{db: db}
}

func (r *sqlRecordStore) All(ctx context.Context) ([]model.PrayerRecord, error) {
	records := []model.PrayerRecord{}
	query := `SELECT ` + recordColumns + ` FROM prayer_records ORDER BY date ASC, prayer_id ASC`

	err := r.db.SelectContext(ctx, &records, query)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sqlRecordStore) ForDate(ctx context.Context, date string) ([]model.PrayerRecord, error) {
	return r.InRange(ctx, date, date)
}

func (r *sqlRecordStore) InRange(ctx context.Context, start, end string) ([]model.PrayerRecord, error) {
	records := []model.PrayerRecord{}
	query := `SELECT ` + recordColumns + ` FROM prayer_records
	          WHERE date >= $1 AND date <= $2
	          ORDER BY date ASC, prayer_id ASC`

	err := r.db.SelectContext(ctx, &records, query, start, end)
	if err != nil {
		return nil, err
	}
	return records, nil
}

const upsertRecord = `INSERT INTO prayer_records (` + recordColumns + `, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (date, prayer_id) DO UPDATE SET
		id = excluded.id,
		is_offered = excluded.is_offered,
		status = excluded.status,
		offered_at = excluded.offered_at,
		location = excluded.location,
		notes = excluded.notes,
		updated_at = excluded.updated_at`

func upsertArgs(record model.PrayerRecord, now time.Time) []any {
	return []any{
		record.ID,
		record.Date,
		record.PrayerID,
		record.IsOffered,
		string(record.Status),
		record.OfferedAt,
		string(record.Location),
		record.Notes,
		now,
	}
}

func (r *sqlRecordStore) Upsert(ctx context.Context, record model.PrayerRecord) error {
	_, err := r.db.ExecContext(ctx, upsertRecord, upsertArgs(record, time.Now())...)
	return err
}

func (r *sqlRecordStore) ReplaceAll(ctx context.Context, records []model.PrayerRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM prayer_records`)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	now := time.Now()
	for _, record := range records {
		_, err := tx.ExecContext(ctx, upsertRecord, upsertArgs(record, now)...)
		if err != nil {
			return fmt.Errorf("failed to import record %s: %w", record.ID, err)
		}
	}

	return tx.Commit()
}

func (r *sqlRecordStore) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prayer_records`)
	return err
}
