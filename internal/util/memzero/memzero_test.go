package memzero

import (
	"bytes"
	"testing"
)

func TestZero(t *testing.T) {
	a := []byte{1, 2, 3}
	b := bytes.Repeat([]byte{0xff}, 32)
	Zero(a, nil, b)
	if !bytes.Equal(a, make([]byte, 3)) || !bytes.Equal(b, make([]byte, 32)) {
		t.Fatalf("not zeroed: %x %x", a, b)
	}
}
