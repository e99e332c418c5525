package pairing

import (
	"context"
	"time"
)

// SwitchTarget computes the counterpart of the currently playing item so the
// player can flip between the audio track and the music video of the same
// song. When resumeSeek is set, the current position is remembered for the
// counterpart to pick up on playback start.
func (e *Engine) SwitchTarget(ctx context.Context, active MediaRef, title, artist string, position time.Duration, resumeSeek bool) (MediaRef, bool) {
	counterpartID, ok := e.CounterpartID(ctx, active)
	if !ok {
		resolved := e.Resolve(ctx, title, artist)
		if resolved == nil {
			return MediaRef{}, false
		}
		counterpartID = resolved.IDForKind(active.Kind.Counterpart())
	}
	if resumeSeek {
		e.RememberSeek(counterpartID, position)
	}
	return MediaRef{ID: counterpartID, Kind: active.Kind.Counterpart()}, true
}
