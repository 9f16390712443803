package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"walletsegue/internal/domain"
)

const sessionFile = "session.enc"

// SessionFileStore persists the session record sealed with a passphrase.
type SessionFileStore struct {
	dir    string
	sealer sealer
	mu     sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir, passphrase string, kdf KDFParams) *SessionFileStore {
	return &SessionFileStore{
		dir:    dir,
		sealer: sealer{passphrase: []byte(passphrase), kdf: kdf},
	}
}

// LoadSession reads and opens the record. A missing file is not an error.
func (s *SessionFileStore) LoadSession() (domain.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok, err := loadFile(filepath.Join(s.dir, sessionFile))
	if err != nil || !ok {
		return domain.SessionRecord{}, false, err
	}
	raw, err := s.sealer.open(b)
	if err != nil {
		return domain.SessionRecord{}, false, err
	}
	var rec domain.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.SessionRecord{}, false, err
	}
	return rec, true, nil
}

// SaveSession seals and writes the record.
func (s *SessionFileStore) SaveSession(rec domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	blob, err := s.sealer.seal(raw)
	if err != nil {
		return err
	}
	return storeFile(filepath.Join(s.dir, sessionFile), blob)
}

// DeleteSession removes the record. Deleting a missing record is not an error.
func (s *SessionFileStore) DeleteSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(filepath.Join(s.dir, sessionFile))
}

// Compile-time assertion that SessionFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*SessionFileStore)(nil)
