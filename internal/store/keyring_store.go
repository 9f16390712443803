package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"

	"walletsegue/internal/domain"
)

// KeyringStore keeps the session record as one item in an OS keyring.
type KeyringStore struct {
	ring keyring.Keyring
	key  string
	mu   sync.Mutex
}

// NewKeyringStore stores the record under key in ring.
func NewKeyringStore(ring keyring.Keyring, key string) *KeyringStore {
	return &KeyringStore{ring: ring, key: key}
}

// OpenKeyring opens the platform keyring for service. When no native
// backend is available it falls back to an encrypted file keyring in dir
// unlocked with passphrase.
func OpenKeyring(service, dir, passphrase string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		PassPrefix:       service,
		WinCredPrefix:    service,
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(passphrase),
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

// LoadSession returns the stored record, if any.
func (s *KeyringStore) LoadSession() (domain.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.ring.Get(s.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return domain.SessionRecord{}, false, nil
	}
	if err != nil {
		return domain.SessionRecord{}, false, err
	}
	var rec domain.SessionRecord
	if err := json.Unmarshal(it.Data, &rec); err != nil {
		return domain.SessionRecord{}, false, fmt.Errorf("keyring item %s: %w", s.key, err)
	}
	return rec, true, nil
}

// SaveSession replaces the stored record.
func (s *KeyringStore) SaveSession(rec domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.ring.Set(keyring.Item{
		Key:         s.key,
		Data:        data,
		Label:       "wallet session",
		Description: "walletsegue session keys",
	})
}

// DeleteSession removes the stored record.
func (s *KeyringStore) DeleteSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ring.Remove(s.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Compile-time assertion that KeyringStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyringStore)(nil)
