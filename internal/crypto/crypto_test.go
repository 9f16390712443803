package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
)

func TestEstablishAgrees(t *testing.T) {
	host, err := crypto.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}
	wallet, err := crypto.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}

	k1, err := host.Establish(wallet.Public.Slice())
	if err != nil {
		t.Fatalf("Establish host: %v", err)
	}
	k2, err := wallet.Establish(host.Public.Slice())
	if err != nil {
		t.Fatalf("Establish wallet: %v", err)
	}
	if k1 != k2 {
		t.Fatal("derived keys differ")
	}
}

func TestEstablishRejectsBadPeerKey(t *testing.T) {
	kp, err := crypto.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}
	if _, err := kp.Establish([]byte{1, 2, 3}); !errors.Is(err, domain.ErrHandshake) {
		t.Fatalf("short key: got %v, want ErrHandshake", err)
	}
	// The all-zero point is low order; the shared secret would be zero.
	if _, err := kp.Establish(make([]byte, 32)); !errors.Is(err, domain.ErrHandshake) {
		t.Fatalf("low-order key: got %v, want ErrHandshake", err)
	}
}

func TestSealOpen(t *testing.T) {
	var key crypto.SymmetricKey
	key[0] = 7
	ad := []byte("req|sess")
	msg := []byte(`{"actions":[]}`)

	env, err := crypto.Seal(key, msg, ad)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if len(env) != crypto.NonceBytes+len(msg)+crypto.TagBytes {
		t.Fatalf("envelope length = %d", len(env))
	}
	got, err := crypto.Open(key, env, ad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("Open = %q, want %q", got, msg)
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	var key crypto.SymmetricKey
	key[3] = 9
	ad := []byte("a|b")
	env, err := crypto.Seal(key, []byte("hello wallet"), ad)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	for i := range env {
		bad := append([]byte(nil), env...)
		bad[i] ^= 0x01
		if _, err := crypto.Open(key, bad, ad); !errors.Is(err, domain.ErrDecryption) {
			t.Fatalf("flip byte %d: got %v, want ErrDecryption", i, err)
		}
	}

	if _, err := crypto.Open(key, env, []byte("a|c")); !errors.Is(err, domain.ErrDecryption) {
		t.Fatalf("wrong ad: got %v, want ErrDecryption", err)
	}
	if _, err := crypto.Open(key, env[:10], ad); !errors.Is(err, domain.ErrDecryption) {
		t.Fatalf("short: got %v, want ErrDecryption", err)
	}
	var other crypto.SymmetricKey
	if _, err := crypto.Open(other, env, ad); !errors.Is(err, domain.ErrDecryption) {
		t.Fatalf("wrong key: got %v, want ErrDecryption", err)
	}
}

func TestFingerprintStable(t *testing.T) {
	_, pub, err := crypto.GenerateX25519()
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	a, b := crypto.Fingerprint(pub), crypto.Fingerprint(pub)
	if a != b || a == "" {
		t.Fatalf("Fingerprint unstable: %q vs %q", a, b)
	}
}

func TestDecodeB64Variants(t *testing.T) {
	raw := []byte{0xfb, 0xff, 0x01, 0x02}
	for _, s := range []string{crypto.B64(raw), crypto.B64URL(raw)} {
		got, err := crypto.DecodeB64(s)
		if err != nil {
			t.Fatalf("DecodeB64(%q): %v", s, err)
		}
		if !bytes.Equal(got, raw) {
			t.Fatalf("DecodeB64(%q) = %x", s, got)
		}
	}
}
