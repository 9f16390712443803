package types

// RequestID correlates one dispatched request with its response.
type RequestID string

// String returns the string form of the request identifier.
func (id RequestID) String() string { return string(id) }

// SessionID identifies a logical connection to one wallet instance.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
