package catalog

import (
	"context"
	"strings"
)

// Kind identifies which catalog namespace an id belongs to. Track and video
// ids live in distinct namespaces and are never compared across kinds.
type Kind string

const (
	KindTrack Kind = "track"
	KindVideo Kind = "video"
)

// Valid reports whether the kind is one of the known namespaces.
func (k Kind) Valid() bool {
	return k == KindTrack || k == KindVideo
}

// Counterpart returns the opposite namespace.
func (k Kind) Counterpart() Kind {
	if k == KindTrack {
		return KindVideo
	}
	return KindTrack
}

// ParseKind normalizes a user-supplied kind string.
func ParseKind(value string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(value)))
	return k, k.Valid()
}

// Candidate is a single search hit: the catalog id and the raw display title.
// This is the only shape search payloads are allowed to take past the
// transport boundary.
type Candidate struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Searcher defines the catalog operations the pairing engine consumes.
type Searcher interface {
	// Search returns candidates for the query in remote relevance order.
	Search(ctx context.Context, query string, kind Kind, limit int) ([]Candidate, error)
	// Exists confirms the item still resolves and is playable. A missing
	// item is (false, nil); transport failures return an error.
	Exists(ctx context.Context, id int64, kind Kind) (bool, error)
}
