// Package observability builds the zerolog logger and prometheus metrics
// used by the wallet session client and its CLI.
package observability
