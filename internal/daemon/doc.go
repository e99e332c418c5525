// Package daemon coordinates the long-running crossfade process.
//
// It wires configuration, the pairing engine, and the pair store into a
// single lifecycle with flock-based locking to prevent multiple instances,
// and exposes the control API the CLI talks to.
package daemon
