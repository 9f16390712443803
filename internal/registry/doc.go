// Package registry tracks in-flight wallet requests by request id and
// delivers each one's outcome exactly once.
//
// Entries are removed before their callbacks run, and callbacks run outside
// the registry lock, so a callback may dispatch a follow-up request.
package registry
