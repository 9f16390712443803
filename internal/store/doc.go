// Package store provides persistence for wallet session state.
//
// It contains concrete implementations of the domain storage interfaces:
//   - Session record sealed with a passphrase on disk (SessionFileStore)
//   - Session record in the OS keyring (KeyringStore)
//   - Outstanding requests awaiting a wallet response (PendingFileStore)
//
// File writes go through a temp file and rename. All methods are
// concurrency-safe via internal locking.
package store
