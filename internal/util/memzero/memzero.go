// Package memzero scrubs key material from memory once it is no longer
// needed.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites every given buffer with zeros.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
		runtime.KeepAlive(b)
	}
}
