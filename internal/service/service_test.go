package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namaztracker/namaz/internal/db"
	"github.com/namaztracker/namaz/internal/repository"
	"github.com/namaztracker/namaz/internal/storage"
)

var fixedNow = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

func memoryStore() repository.RecordStore {
	return repository.NewBlobRecordStore(storage.NewMemoryStore(), "namaz-tracker-data")
}

func newRecordService(store repository.RecordStore) *RecordService {
	s := NewRecordService(store)
	s.now = func() time.Time { return fixedNow }
	return s
}

func userRepository(t *testing.T) repository.UserRepository {
	t.Helper()
	database, err := db.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })
	return repository.NewUserRepository(database)
}

func mark(t *testing.T, s *RecordService, in MarkInput) {
	t.Helper()
	_, err := s.Mark(context.Background(), in)
	require.NoError(t, err)
}
