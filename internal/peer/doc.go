// Package peer simulates the wallet side of the protocol: it reads host
// requests and writes responses in the same wire format a wallet uses.
// It exists for tests and the walletsim command.
package peer
