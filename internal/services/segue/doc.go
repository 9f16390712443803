// Package segue is the host-side wallet session client.
//
// A Client turns action batches into wallet URLs and turns the wallet's
// callback URLs back into per-action results. Dispatch and ingress are two
// synchronous calls; the client starts no goroutines and owns no timers.
package segue
