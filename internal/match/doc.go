// Package match holds the title disambiguation heuristics: normalization,
// candidate scoring, and best-existing selection.
//
// Catalog search results for a song title are mostly noise (lyric videos, fan
// covers, live cuts, extras sharing the title). The scorer hard-rejects
// candidates that fail containment, boundary, or reject-keyword checks, then
// ranks survivors by how cleanly the candidate title reduces to the reference
// song name. The selector walks candidates in score order and returns the
// first one whose existence the catalog confirms.
package match
