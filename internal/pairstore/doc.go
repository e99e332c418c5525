// Package pairstore persists resolved track/video pairings in SQLite.
package pairstore
