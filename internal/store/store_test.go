package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"

	"walletsegue/internal/domain"
	"walletsegue/internal/store"
)

var fastKDF = store.KDFParams{N: 1 << 10, R: 8, P: 1}

func sampleRecord() domain.SessionRecord {
	return domain.SessionRecord{
		ID:           "sess-1",
		LocalPrivate: domain.X25519Private{2},
		LocalPublic:  domain.X25519Public{1},
		PeerPublic:   domain.X25519Public{3},
		HasPeer:      true,
		CreatedUTC:   1700000000,
	}
}

func TestSessionFile_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var ks domain.KeyStore = store.NewSessionFileStore(home, "pass", fastKDF)

	if _, ok, err := ks.LoadSession(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	rec := sampleRecord()
	if err := ks.SaveSession(rec); err != nil {
		t.Fatalf("save session: %v", err)
	}
	got, ok, err := ks.LoadSession()
	if err != nil || !ok {
		t.Fatalf("load session: ok=%v err=%v", ok, err)
	}
	if got != rec {
		t.Fatalf("mismatch after load: %+v", got)
	}

	info, err := os.Stat(filepath.Join(home, "session.enc"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	if err := ks.DeleteSession(); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if err := ks.DeleteSession(); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
	if _, ok, _ := ks.LoadSession(); ok {
		t.Fatal("record survived delete")
	}
}

func TestSessionFile_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	if err := store.NewSessionFileStore(home, "correct", fastKDF).SaveSession(sampleRecord()); err != nil {
		t.Fatalf("save session: %v", err)
	}
	_, _, err := store.NewSessionFileStore(home, "wrong", fastKDF).LoadSession()
	if !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("got %v, want ErrWrongPassphrase", err)
	}
}

func TestSessionFile_Corrupted_Fails(t *testing.T) {
	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, "session.enc"), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := store.NewSessionFileStore(home, "pass", fastKDF).LoadSession(); err == nil {
		t.Fatal("expected error for corrupted file")
	}
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)
	var ks domain.KeyStore = store.NewKeyringStore(ring, "session")

	if _, ok, err := ks.LoadSession(); err != nil || ok {
		t.Fatalf("empty ring: ok=%v err=%v", ok, err)
	}
	rec := sampleRecord()
	if err := ks.SaveSession(rec); err != nil {
		t.Fatalf("save session: %v", err)
	}
	got, ok, err := ks.LoadSession()
	if err != nil || !ok || got != rec {
		t.Fatalf("load session: %+v ok=%v err=%v", got, ok, err)
	}
	if err := ks.DeleteSession(); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := ks.LoadSession(); ok {
		t.Fatal("record survived delete")
	}
}

func TestPendingFile_SaveLoad(t *testing.T) {
	home := t.TempDir()
	var ps domain.PendingStore = store.NewPendingFileStore(home)

	got, err := ps.LoadPending()
	if err != nil || len(got) != 0 {
		t.Fatalf("empty store: %v %v", got, err)
	}

	recs := []domain.PendingRecord{{
		RequestID:  "r1",
		SessionID:  "s1",
		Actions:    []domain.Action{{Method: "eth_chainId"}},
		Handshake:  true,
		CreatedUTC: 1700000000,
	}}
	if err := ps.SavePending(recs); err != nil {
		t.Fatalf("save pending: %v", err)
	}
	got, err = ps.LoadPending()
	if err != nil {
		t.Fatalf("load pending: %v", err)
	}
	if len(got) != 1 || got[0].RequestID != "r1" || !got[0].Handshake || got[0].Actions[0].Method != "eth_chainId" {
		t.Fatalf("load pending = %+v", got)
	}

	if err := ps.SavePending(nil); err != nil {
		t.Fatalf("clear pending: %v", err)
	}
	if got, _ = ps.LoadPending(); len(got) != 0 {
		t.Fatalf("after clear = %+v", got)
	}
}
