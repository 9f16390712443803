package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"walletsegue/internal/domain"
)

const (
	NonceBytes = chacha20poly1305.NonceSize
	TagBytes   = chacha20poly1305.Overhead
)

// Seal encrypts plaintext under key with a random nonce and binds ad.
// The result is nonce || ciphertext || tag.
func Seal(key SymmetricKey, plaintext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, NonceBytes, NonceBytes+len(plaintext)+TagBytes)
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return aead.Seal(out, out[:NonceBytes], plaintext, ad), nil
}

// Open reverses Seal. Any malformed or tampered envelope yields ErrDecryption.
func Open(key SymmetricKey, envelope, ad []byte) ([]byte, error) {
	if len(envelope) < NonceBytes+TagBytes {
		return nil, fmt.Errorf("%w: envelope too short (%d bytes)", domain.ErrDecryption, len(envelope))
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecryption, err)
	}
	pt, err := aead.Open(nil, envelope[:NonceBytes], envelope[NonceBytes:], ad)
	if err != nil {
		return nil, domain.ErrDecryption
	}
	return pt, nil
}
