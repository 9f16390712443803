package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"walletsegue/internal/domain"
	"walletsegue/internal/util/memzero"
)

// SymmetricKeySize is the length of a derived session key.
const SymmetricKeySize = 32

// SymmetricKey is the shared secret both peers derive after a handshake.
type SymmetricKey [SymmetricKeySize]byte

// Wipe zeroes the key in place.
func (k *SymmetricKey) Wipe() { memzero.Zero(k[:]) }

// KeyPair is the local half of a session key agreement.
type KeyPair struct {
	Private domain.X25519Private
	Public  domain.X25519Public
}

// NewKeyPair generates a fresh local key pair.
func NewKeyPair() (KeyPair, error) {
	priv, pub, err := GenerateX25519()
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Private: priv, Public: pub}, nil
}

// Establish derives the session key shared with peer.
//
// Steps:
//  1. Reject peer keys that are not exactly 32 bytes.
//  2. X25519(local private, peer public); low-order points fail here.
//  3. HKDF-SHA256 over the shared secret with empty salt and info.
func (kp KeyPair) Establish(peer []byte) (SymmetricKey, error) {
	var key SymmetricKey
	pub, err := domain.ParseX25519Public(peer)
	if err != nil {
		return key, fmt.Errorf("%w: %v", domain.ErrHandshake, err)
	}
	shared, err := DH(kp.Private, pub)
	if err != nil {
		return key, fmt.Errorf("%w: key agreement: %v", domain.ErrHandshake, err)
	}
	defer memzero.Zero(shared[:])

	r := hkdf.New(sha256.New, shared[:], nil, nil)
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return key, fmt.Errorf("%w: hkdf: %v", domain.ErrHandshake, err)
	}
	return key, nil
}

// Wipe zeroes the private key.
func (kp *KeyPair) Wipe() { memzero.Zero(kp.Private[:]) }
