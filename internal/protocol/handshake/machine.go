package handshake

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
)

// Machine is the session state machine. It is safe for concurrent use.
type Machine struct {
	mu    sync.Mutex
	store domain.KeyStore
	now   func() time.Time

	state   domain.SessionState
	id      domain.SessionID
	keys    crypto.KeyPair
	peer    domain.X25519Public
	key     crypto.SymmetricKey
	created int64
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// New loads the persisted session from store or creates and saves a fresh
// one. A record that already holds a peer key restores Established.
func New(store domain.KeyStore, opts ...Option) (*Machine, error) {
	if store == nil {
		return nil, fmt.Errorf("handshake: nil key store")
	}
	m := &Machine{store: store, now: time.Now}
	for _, o := range opts {
		o(m)
	}

	rec, ok, err := store.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		if err := m.fresh(); err != nil {
			return nil, err
		}
		return m, nil
	}

	m.id = rec.ID
	m.keys = crypto.KeyPair{Private: rec.LocalPrivate, Public: rec.LocalPublic}
	m.created = rec.CreatedUTC
	m.state = domain.StateUnestablished
	if rec.HasPeer {
		key, err := m.keys.Establish(rec.PeerPublic.Slice())
		if err != nil {
			return nil, fmt.Errorf("restore session %s: %w", rec.ID, err)
		}
		m.peer = rec.PeerPublic
		m.key = key
		m.state = domain.StateEstablished
	}
	return m, nil
}

// Begin moves Unestablished to Handshaking. With force, an Established
// session also moves to Handshaking and the current key is returned so the
// caller can seal the renegotiation under it. The stored record loses its
// peer key at that point, so a restarted process resumes the renegotiation
// instead of the superseded session.
func (m *Machine) Begin(force bool) (*crypto.SymmetricKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case domain.StateUnestablished:
		m.state = domain.StateHandshaking
		return nil, nil
	case domain.StateHandshaking:
		return nil, domain.ErrAlreadyInProgress
	case domain.StateEstablished:
		if !force {
			return nil, domain.ErrAlreadyEstablished
		}
		prev := m.key
		if err := m.renegotiateLocked(); err != nil {
			return nil, err
		}
		return &prev, nil
	default:
		return nil, domain.ErrDisconnected
	}
}

// Resume re-enters Handshaking for a handshake that was dispatched before a
// restart. An Established session is a renegotiation whose record still
// carried the old peer key; it gives that key up as Begin(true) would.
func (m *Machine) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case domain.StateUnestablished:
		m.state = domain.StateHandshaking
		return nil
	case domain.StateHandshaking:
		return nil
	case domain.StateEstablished:
		return m.renegotiateLocked()
	default:
		return domain.ErrDisconnected
	}
}

// Derive computes the key a handshake response would establish without
// changing state, so the response can be authenticated before Complete.
func (m *Machine) Derive(peer []byte) (crypto.SymmetricKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateHandshaking {
		return crypto.SymmetricKey{}, fmt.Errorf("%w: no handshake in progress (state %s)", domain.ErrHandshake, m.state)
	}
	return m.keys.Establish(peer)
}

// Complete derives the session key from the wallet's public key and
// persists the established session. Any failure leaves Unestablished.
func (m *Machine) Complete(peer []byte) (crypto.SymmetricKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != domain.StateHandshaking {
		return crypto.SymmetricKey{}, fmt.Errorf("%w: no handshake in progress (state %s)", domain.ErrHandshake, m.state)
	}
	key, err := m.keys.Establish(peer)
	if err != nil {
		m.dropPeerLocked()
		return crypto.SymmetricKey{}, err
	}
	pub, _ := domain.ParseX25519Public(peer)

	rec := m.recordLocked()
	rec.PeerPublic = pub
	rec.HasPeer = true
	rec.EstablishedAt = m.now().Unix()
	if err := m.store.SaveSession(rec); err != nil {
		key.Wipe()
		m.dropPeerLocked()
		return crypto.SymmetricKey{}, fmt.Errorf("%w: persist session: %v", domain.ErrHandshake, err)
	}

	m.peer = pub
	m.key = key
	m.state = domain.StateEstablished
	return key, nil
}

// Abort returns a Handshaking session to Unestablished.
func (m *Machine) Abort() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateHandshaking {
		return nil
	}
	return m.dropPeerLocked()
}

// SymmetricKey returns the session key. Only an Established session has one.
func (m *Machine) SymmetricKey() (crypto.SymmetricKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateEstablished {
		return crypto.SymmetricKey{}, fmt.Errorf("%w (state %s)", domain.ErrNotConnected, m.state)
	}
	return m.key, nil
}

// Disconnect wipes all key material and deletes the persisted record.
// The machine stays Disconnected until Reset.
func (m *Machine) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key.Wipe()
	m.keys.Wipe()
	m.peer = domain.X25519Public{}
	m.state = domain.StateDisconnected
	if err := m.store.DeleteSession(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Reset discards the current session and starts a fresh Unestablished one
// with a new id and key pair.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key.Wipe()
	m.keys.Wipe()
	m.peer = domain.X25519Public{}
	return m.fresh()
}

// State returns the current lifecycle state.
func (m *Machine) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SessionID returns the current session id.
func (m *Machine) SessionID() domain.SessionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

// PublicKey returns the local public key sent to the wallet.
func (m *Machine) PublicKey() domain.X25519Public {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys.Public
}

// PeerPublic returns the wallet's key once established.
func (m *Machine) PeerPublic() (domain.X25519Public, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peer, m.state == domain.StateEstablished
}

// fresh replaces the session with a new id and key pair and saves it.
// Callers hold m.mu or have exclusive access.
func (m *Machine) fresh() error {
	kp, err := crypto.NewKeyPair()
	if err != nil {
		return fmt.Errorf("generate session keys: %w", err)
	}
	m.keys = kp
	m.id = domain.SessionID(uuid.NewString())
	m.created = m.now().Unix()
	m.key = crypto.SymmetricKey{}
	m.peer = domain.X25519Public{}
	m.state = domain.StateUnestablished
	if err := m.store.SaveSession(m.recordLocked()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// renegotiateLocked moves Established to Handshaking and persists the
// session without its peer. On a save failure nothing changes.
func (m *Machine) renegotiateLocked() error {
	peer := m.peer
	m.peer = domain.X25519Public{}
	if err := m.store.SaveSession(m.recordLocked()); err != nil {
		m.peer = peer
		return fmt.Errorf("save session: %w", err)
	}
	m.key.Wipe()
	m.state = domain.StateHandshaking
	return nil
}

// dropPeerLocked forgets any peer key and persists the session without it.
func (m *Machine) dropPeerLocked() error {
	m.key.Wipe()
	m.peer = domain.X25519Public{}
	m.state = domain.StateUnestablished
	if err := m.store.SaveSession(m.recordLocked()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *Machine) recordLocked() domain.SessionRecord {
	rec := domain.SessionRecord{
		ID:           m.id,
		LocalPrivate: m.keys.Private,
		LocalPublic:  m.keys.Public,
		CreatedUTC:   m.created,
	}
	if !m.peer.IsZero() {
		rec.PeerPublic = m.peer
		rec.HasPeer = true
	}
	return rec
}
