// Package pairing resolves and caches track/video counterpart pairings.
//
// The engine searches the catalog for both renditions of a song, scores the
// candidates against the reference title, verifies the winners still exist,
// and caches the resulting pairing bidirectionally. Failed resolutions are
// cached negatively so repeat requests stay cheap, and concurrent requests
// for the same song collapse into a single catalog round trip.
package pairing
