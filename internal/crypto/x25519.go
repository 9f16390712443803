package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"

	"walletsegue/internal/domain"
)

// GenerateX25519 returns a fresh, RFC 7748 clamped Curve25519 key pair.
func GenerateX25519() (domain.X25519Private, domain.X25519Public, error) {
	return generateFrom(rand.Reader)
}

func generateFrom(r io.Reader) (priv domain.X25519Private, pub domain.X25519Public, err error) {
	if _, err = io.ReadFull(r, priv[:]); err != nil {
		return priv, pub, fmt.Errorf("x25519 entropy: %w", err)
	}
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64
	pub, err = PublicFrom(priv)
	return priv, pub, err
}

// PublicFrom recomputes the public half of priv.
func PublicFrom(priv domain.X25519Private) (domain.X25519Public, error) {
	var pub domain.X25519Public
	b, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return pub, err
	}
	copy(pub[:], b)
	return pub, nil
}

// DH returns the raw X25519 shared secret. The all-zero output of a
// low-order peer key is an error.
func DH(priv domain.X25519Private, peer domain.X25519Public) ([32]byte, error) {
	var shared [32]byte
	b, err := curve25519.X25519(priv.Slice(), peer.Slice())
	if err != nil {
		return shared, err
	}
	copy(shared[:], b)
	return shared, nil
}
