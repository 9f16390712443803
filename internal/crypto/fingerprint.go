package crypto

import (
	"crypto/sha256"

	"github.com/mr-tron/base58/base58"

	"walletsegue/internal/domain"
)

// fingerprintLen is how many digest bytes a fingerprint keeps.
const fingerprintLen = 10

// Fingerprint is the base58 SHA-256 prefix of pub, short enough for a user
// to compare host and wallet screens by eye.
func Fingerprint(pub domain.X25519Public) domain.Fingerprint {
	sum := sha256.Sum256(pub.Slice())
	return domain.Fingerprint(base58.Encode(sum[:fingerprintLen]))
}
