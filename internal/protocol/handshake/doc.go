// Package handshake drives the lifecycle of one wallet session:
// Unestablished → Handshaking → Established → Disconnected.
//
// The machine owns the local key pair and the derived symmetric key. The
// persisted part (id, key pair, peer key) goes through a domain.KeyStore on
// every transition that changes it, so an established session survives a
// process restart.
package handshake
