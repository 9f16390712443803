// Package commands implements the walletsegue CLI subcommands.
//
// Each invocation loads the session from the key store and the outstanding
// requests from pending.json, runs one command, then writes pending.json
// back. This lets a response URL handled by a later invocation resolve a
// request dispatched by an earlier one.
package commands
