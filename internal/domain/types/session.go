package types

// SessionState is the lifecycle position of a Session.
type SessionState int

const (
	// StateUnestablished has no peer key and no symmetric key.
	StateUnestablished SessionState = iota
	// StateHandshaking has a key-exchange request awaiting its response.
	StateHandshaking
	// StateEstablished holds a symmetric key; ordinary requests are allowed.
	StateEstablished
	// StateDisconnected is terminal; key material has been discarded.
	StateDisconnected
)

// String returns a lower-case name for the state.
func (s SessionState) String() string {
	switch s {
	case StateUnestablished:
		return "unestablished"
	case StateHandshaking:
		return "handshaking"
	case StateEstablished:
		return "established"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// SessionRecord is the persisted part of a session: everything needed to
// recover the symmetric key after a process restart.
type SessionRecord struct {
	ID            SessionID     `json:"session_id"`
	LocalPrivate  X25519Private `json:"local_private"`
	LocalPublic   X25519Public  `json:"local_public"`
	PeerPublic    X25519Public  `json:"peer_public"`
	HasPeer       bool          `json:"has_peer"`
	CreatedUTC    int64         `json:"created_utc"`
	EstablishedAt int64         `json:"established_utc,omitempty"`
}
