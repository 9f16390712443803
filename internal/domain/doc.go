// Package domain is the vocabulary of a wallet segue session: identifiers,
// key types, actions and results, persisted records, errors and the store
// contracts. Nothing in it performs I/O or cryptography.
package domain
