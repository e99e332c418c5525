package pairing

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"crossfade/internal/catalog"
	"crossfade/internal/logging"
	"crossfade/internal/match"
)

// Resolve finds the track/video pairing for a song named by its title and
// artist. A nil result means the pairing could not be established; failed
// attempts are remembered in the negative cache until the next Clear.
// Concurrent calls for the same key share one underlying resolution.
func (e *Engine) Resolve(ctx context.Context, title, artist string) *Pairing {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return nil
	}
	key := Key(title, artist)
	if e.negatives.Has(key) {
		e.logger.Debug("negative cache hit", logging.String("key", key))
		return nil
	}
	e.mu.Lock()
	e.inflight[key] = struct{}{}
	e.mu.Unlock()
	result, _, _ := e.flight.Do(key, func() (any, error) {
		defer func() {
			e.mu.Lock()
			delete(e.inflight, key)
			e.mu.Unlock()
		}()
		// The shared resolution must not die with the first caller
		// that gives up; the catalog client's own timeout bounds it.
		return e.resolveKey(context.WithoutCancel(ctx), key, title, artist), nil
	})
	pairing, _ := result.(*Pairing)
	return pairing
}

func (e *Engine) resolveKey(ctx context.Context, key, title, artist string) *Pairing {
	query := artist + " " + title

	var trackCandidates, videoCandidates []catalog.Candidate
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		trackCandidates, err = e.searcher.Search(groupCtx, query, catalog.KindTrack, e.searchLimit)
		return err
	})
	group.Go(func() error {
		var err error
		videoCandidates, err = e.searcher.Search(groupCtx, query, catalog.KindVideo, e.searchLimit)
		return err
	})
	if err := group.Wait(); err != nil {
		e.logger.Warn("catalog search failed",
			logging.String("key", key),
			logging.Error(err))
		e.negatives.Add(key)
		return nil
	}

	exists := func(kind catalog.Kind) match.ExistsFunc {
		return func(ctx context.Context, id int64) (bool, error) {
			return e.searcher.Exists(ctx, id, kind)
		}
	}
	trackID, ok := match.SelectBestExisting(ctx, e.logger, trackCandidates, title, e.probeLimit, exists(catalog.KindTrack))
	if !ok {
		e.logger.Debug("no playable track candidate", logging.String("key", key))
		e.negatives.Add(key)
		return nil
	}
	videoID, ok := match.SelectBestExisting(ctx, e.logger, videoCandidates, title, e.probeLimit, exists(catalog.KindVideo))
	if !ok {
		e.logger.Debug("no playable video candidate", logging.String("key", key))
		e.negatives.Add(key)
		return nil
	}

	pairing := Pairing{TrackID: trackID, VideoID: videoID}
	e.pairs.Put(pairing)
	if e.store != nil {
		if err := e.store.Save(ctx, trackID, videoID, title, artist); err != nil {
			e.logger.Warn("pair store save failed",
				logging.String("key", key),
				logging.Error(err))
		}
	}
	e.logger.Info("pairing resolved",
		logging.String(logging.FieldEventType, "pairing_resolved"),
		logging.String("key", key),
		logging.Int64("track_id", trackID),
		logging.Int64("video_id", videoID))
	return &pairing
}
