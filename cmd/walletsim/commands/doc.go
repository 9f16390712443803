// Package commands implements walletsim, a stand-in wallet that answers
// walletsegue request URLs from the terminal. Its key pair is kept in an
// encrypted file under --home and rotated on every handshake.
package commands
