// Package crypto exposes the primitives a wallet session needs.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519, DH)
//   - Session key agreement with HKDF-SHA256 (KeyPair.Establish)
//   - Authenticated payload sealing with ChaCha20-Poly1305 (Seal, Open)
//   - Short base58 public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Sealed payloads are laid out as nonce(12) || ciphertext || tag(16). Open
// never returns partial plaintext; every failure maps to ErrDecryption.
package crypto
