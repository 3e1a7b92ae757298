package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namaztracker/namaz/internal/model"
	"github.com/namaztracker/namaz/internal/stats"
)

func TestMark(t *testing.T) {
	tests := []struct {
		name         string
		in           MarkInput
		wantStatus   model.PrayerStatus
		wantOffered  bool
		wantLocation model.Location
		wantErr      error
	}{
		{
			name:        "offered defaults to on time",
			in:          MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true},
			wantStatus:  model.StatusOnTime,
			wantOffered: true,
		},
		{
			name:         "qaza at masjid",
			in:           MarkInput{Date: "2024-01-05", PrayerID: model.PrayerAsr, Offered: true, Status: model.StatusQaza, Location: model.LocationMasjid},
			wantStatus:   model.StatusQaza,
			wantOffered:  true,
			wantLocation: model.LocationMasjid,
		},
		{
			name:       "missed drops location",
			in:         MarkInput{Date: "2024-01-05", PrayerID: model.PrayerIsha, Status: model.StatusOnTime, Location: model.LocationHome},
			wantStatus: model.StatusMissed,
		},
		{
			name:    "unknown prayer",
			in:      MarkInput{Date: "2024-01-05", PrayerID: "tahajjud", Offered: true},
			wantErr: ErrUnknownPrayer,
		},
		{
			name:    "bad date",
			in:      MarkInput{Date: "05/01/2024", PrayerID: model.PrayerFajr, Offered: true},
			wantErr: stats.ErrInvalidDate,
		},
		{
			name:    "offered as missed",
			in:      MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true, Status: model.StatusMissed},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "bad location",
			in:      MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true, Location: "office"},
			wantErr: ErrInvalidLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRecordService(memoryStore())

			record, err := s.Mark(context.Background(), tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, model.RecordID(tt.in.Date, tt.in.PrayerID), record.ID)
			assert.Equal(t, tt.wantStatus, record.Status)
			assert.Equal(t, tt.wantOffered, record.IsOffered)
			assert.Equal(t, tt.wantLocation, record.Location)
			if tt.wantOffered {
				require.NotNil(t, record.OfferedAt)
				assert.Equal(t, fixedNow, *record.OfferedAt)
			} else {
				assert.Nil(t, record.OfferedAt)
			}
		})
	}
}

func TestMarkReplacesAndKeepsID(t *testing.T) {
	ctx := context.Background()
	store := memoryStore()
	require.NoError(t, store.Upsert(ctx, model.PrayerRecord{
		ID: "legacy-1", Date: "2024-01-05", PrayerID: model.PrayerFajr, Status: model.StatusMissed,
	}))

	s := newRecordService(store)
	mark(t, s, MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true, Status: model.StatusQaza})

	records, err := store.ForDate(ctx, "2024-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "legacy-1", records[0].ID)
	assert.Equal(t, model.StatusQaza, records[0].Status)
}

func TestDay(t *testing.T) {
	ctx := context.Background()
	s := newRecordService(memoryStore())
	mark(t, s, MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true, Location: model.LocationHome})
	mark(t, s, MarkInput{Date: "2024-01-05", PrayerID: model.PrayerDhuhr, Offered: true, Status: model.StatusQaza})
	mark(t, s, MarkInput{Date: "2024-01-05", PrayerID: model.PrayerAsr})
	mark(t, s, MarkInput{Date: "2024-01-06", PrayerID: model.PrayerIsha, Offered: true})

	day, err := s.Day(ctx, "2024-01-05")
	require.NoError(t, err)
	assert.Len(t, day.Prayers, 3)
	assert.Equal(t, 2, day.TotalOffered)
	assert.Equal(t, 3, day.TotalMissed)
	assert.Equal(t, 1, day.TotalOnTime)
	assert.Equal(t, 1, day.TotalQaza)
	assert.Equal(t, 1, day.TotalHome)
	assert.Equal(t, 40, day.CompletionPercentage)

	_, err = s.Day(ctx, "tomorrow")
	assert.ErrorIs(t, err, stats.ErrInvalidDate)
}

func TestSnapshotImportClear(t *testing.T) {
	ctx := context.Background()
	source := newRecordService(memoryStore())
	mark(t, source, MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true})
	mark(t, source, MarkInput{Date: "2024-01-06", PrayerID: model.PrayerMaghrib})

	snapshot, err := source.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.PrayerRecords, 2)
	assert.Equal(t, fixedNow, snapshot.LastUpdated)

	target := newRecordService(memoryStore())
	mark(t, target, MarkInput{Date: "2023-12-31", PrayerID: model.PrayerAsr, Offered: true})

	n, err := target.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	restored, err := target.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.PrayerRecords, restored.PrayerRecords)

	require.NoError(t, target.ClearAll(ctx))
	cleared, err := target.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared.PrayerRecords)
}

func TestImportRejectsBadRecords(t *testing.T) {
	ctx := context.Background()
	s := newRecordService(memoryStore())
	mark(t, s, MarkInput{Date: "2024-01-05", PrayerID: model.PrayerFajr, Offered: true})

	tests := []struct {
		name    string
		record  model.PrayerRecord
		wantErr error
	}{
		{name: "unknown prayer", record: model.PrayerRecord{Date: "2024-01-01", PrayerID: "witr"}, wantErr: ErrUnknownPrayer},
		{name: "bad date", record: model.PrayerRecord{Date: "2024-13-01", PrayerID: model.PrayerAsr}, wantErr: stats.ErrInvalidDate},
		{name: "bad status", record: model.PrayerRecord{Date: "2024-01-01", PrayerID: model.PrayerAsr, IsOffered: true, Status: "late"}, wantErr: ErrInvalidStatus},
		{name: "offered but missed", record: model.PrayerRecord{Date: "2024-01-03", PrayerID: model.PrayerFajr, IsOffered: true, Status: model.StatusMissed}, wantErr: ErrInvalidStatus},
		{name: "bad location", record: model.PrayerRecord{Date: "2024-01-03", PrayerID: model.PrayerFajr, IsOffered: true, Status: model.StatusQaza, Location: "roof"}, wantErr: ErrInvalidLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Import(ctx, &model.StoredData{PrayerRecords: []model.PrayerRecord{tt.record}})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	// A rejected import leaves existing data untouched.
	day, err := s.Day(ctx, "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, 1, day.TotalOffered)
}

func TestImportNormalisesMisses(t *testing.T) {
	ctx := context.Background()
	s := newRecordService(memoryStore())

	_, err := s.Import(ctx, &model.StoredData{PrayerRecords: []model.PrayerRecord{
		{Date: "2024-01-01", PrayerID: model.PrayerFajr, Status: model.StatusOnTime, Location: model.LocationHome},
	}})
	require.NoError(t, err)

	snapshot, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.PrayerRecords, 1)
	r := snapshot.PrayerRecords[0]
	assert.Equal(t, "2024-01-01-fajr", r.ID)
	assert.Equal(t, model.StatusMissed, r.Status)
	assert.Empty(t, r.Location)
}

func TestImportDefaultsOfferedStatus(t *testing.T) {
	ctx := context.Background()
	s := newRecordService(memoryStore())

	_, err := s.Import(ctx, &model.StoredData{PrayerRecords: []model.PrayerRecord{
		{Date: "2024-01-01", PrayerID: model.PrayerAsr, IsOffered: true, Location: model.LocationMasjid},
	}})
	require.NoError(t, err)

	day, err := s.Day(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 1, day.TotalOffered)

	snapshot, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.PrayerRecords, 1)
	assert.Equal(t, model.StatusOnTime, snapshot.PrayerRecords[0].Status)
	assert.Equal(t, model.LocationMasjid, snapshot.PrayerRecords[0].Location)
}
