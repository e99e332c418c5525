// Package daemonctl implements the HTTP client the CLI uses to talk to a
// running crossfade daemon.
package daemonctl
