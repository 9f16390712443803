// Package app wires application dependencies for the CLI.
//
// It loads Config from config.toml, builds the key and pending stores, the
// logger, metrics and the wallet session client, and exposes them via the
// Wire struct for commands to use.
package app
