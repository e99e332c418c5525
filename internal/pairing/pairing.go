package pairing

import (
	"strings"

	"crossfade/internal/catalog"
)

// Pairing is a confirmed association between the track and video renditions
// of the same song. Both ids are positive and live in distinct catalog
// namespaces; a Pairing is never partially constructed.
type Pairing struct {
	TrackID int64
	VideoID int64
}

// IDForKind returns the member id in the requested namespace.
func (p Pairing) IDForKind(kind catalog.Kind) int64 {
	if kind == catalog.KindVideo {
		return p.VideoID
	}
	return p.TrackID
}

// MediaRef identifies a playable item in the host catalog.
type MediaRef struct {
	ID   int64
	Kind catalog.Kind
}

// Key builds the composite lookup key shared by the negative cache and the
// in-flight registry. It is derived from the caller-supplied strings, so two
// id pairs sharing a lowercased "artist - title" share one key.
func Key(title, artist string) string {
	return strings.ToLower(strings.TrimSpace(artist)) + " - " + strings.ToLower(strings.TrimSpace(title))
}
