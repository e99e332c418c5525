package match

import (
	"context"
	"log/slog"
	"sort"

	"crossfade/internal/catalog"
	"crossfade/internal/logging"
)

// DefaultProbeLimit caps how many top candidates get an existence check.
const DefaultProbeLimit = 3

// ExistsFunc confirms that a candidate id still resolves in the catalog.
// A transport error is treated the same as a missing item (fail closed).
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

type scoredCandidate struct {
	catalog.Candidate
	score int
}

// SelectBestExisting reduces an ordered search-result list to the single most
// plausible counterpart id. Candidates are scored against referenceTitle,
// sorted by score (ties keep the remote relevance order), and probed with
// exists in that order; the first confirmed id wins. With an empty reference
// the scoring step is skipped and candidates are probed in their original
// order. Returns false when the list is empty, every probe fails, or scoring
// rejects everything.
func SelectBestExisting(ctx context.Context, logger *slog.Logger, candidates []catalog.Candidate, referenceTitle string, probeLimit int, exists ExistsFunc) (int64, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if probeLimit <= 0 {
		probeLimit = DefaultProbeLimit
	}

	reference := Normalize(referenceTitle)

	ordered := make([]scoredCandidate, 0, len(candidates))
	if reference == "" {
		for _, c := range candidates {
			ordered = append(ordered, scoredCandidate{Candidate: c})
		}
	} else {
		logger.Debug("scoring analysis",
			logging.String("reference", reference),
			logging.Int("total_candidates", len(candidates)))
		for idx, c := range candidates {
			score := Score(reference, c.Title)
			logger.Debug("scored candidate",
				logging.Int("candidate_index", idx),
				logging.Int64("id", c.ID),
				logging.String("title", c.Title),
				logging.Int("score", score))
			if score <= 0 {
				continue
			}
			ordered = append(ordered, scoredCandidate{Candidate: c, score: score})
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].score > ordered[j].score
		})
	}

	probes := 0
	for _, candidate := range ordered {
		if probes >= probeLimit {
			break
		}
		probes++
		ok, err := exists(ctx, candidate.ID)
		if err != nil {
			logger.Debug("existence check failed",
				logging.Int64("id", candidate.ID),
				logging.Error(err))
			continue
		}
		if ok {
			logger.Debug("selected candidate",
				logging.Int64("id", candidate.ID),
				logging.String("title", candidate.Title),
				logging.Int("score", candidate.score))
			return candidate.ID, true
		}
	}
	return 0, false
}
