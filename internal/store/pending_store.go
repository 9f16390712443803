package store

import (
	"path/filepath"
	"sync"

	"walletsegue/internal/domain"
)

const pendingFile = "pending.json"

// PendingFileStore keeps outstanding requests as JSON so a response that
// arrives after a restart can still be matched.
type PendingFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPendingFileStore returns a PendingFileStore rooted at dir.
func NewPendingFileStore(dir string) *PendingFileStore {
	return &PendingFileStore{dir: dir}
}

// SavePending replaces the stored set with records.
func (s *PendingFileStore) SavePending(records []domain.PendingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []domain.PendingRecord{}
	}
	return storeJSON(filepath.Join(s.dir, pendingFile), records)
}

// LoadPending returns the stored records; none when the file is missing.
func (s *PendingFileStore) LoadPending() ([]domain.PendingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.PendingRecord
	if err := loadJSON(filepath.Join(s.dir, pendingFile), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time assertion that PendingFileStore implements domain.PendingStore.
var _ domain.PendingStore = (*PendingFileStore)(nil)
