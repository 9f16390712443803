// Package envelope defines the outer wire messages exchanged with a wallet
// and their URL transport encoding.
//
// A message travels as <base>?p=<base64url(JSON)>. The correlation fields
// (requestId, sessionId) and the sender key are always in clear; the action
// or result payload is sealed unless it is the very first handshake.
package envelope
