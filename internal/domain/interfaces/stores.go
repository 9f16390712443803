package interfaces

import domaintypes "walletsegue/internal/domain/types"

// KeyStore persists the session record (id, local key pair, peer key).
type KeyStore interface {
	LoadSession() (domaintypes.SessionRecord, bool, error)
	SaveSession(rec domaintypes.SessionRecord) error
	DeleteSession() error
}

// PendingStore persists outstanding requests so that a response arriving
// after a restart can still be matched.
type PendingStore interface {
	SavePending(records []domaintypes.PendingRecord) error
	LoadPending() ([]domaintypes.PendingRecord, error)
}
