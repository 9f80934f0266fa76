package viewerstate

import "math"

// SetFrame requests a frame. The index is clamped into [0, frames) and
// stored as the pending frame; CommitFrame moves it to the current frame
// once the consumer has the frame ready.
func (s *Store) SetFrame(frame int) {
	_ = s.mutate(func(st *ViewerState) error {
		st.PendingFrame = clampFrame(st, frame)
		return nil
	})
}

// CommitFrame marks a frame as displayed. Stale completions, where a
// newer frame request has superseded this one, are discarded.
func (s *Store) CommitFrame(frame int) bool {
	committed := false
	_ = s.mutate(func(st *ViewerState) error {
		if frame != st.PendingFrame {
			return nil
		}
		st.CurrentFrame = frame
		committed = true
		return nil
	})
	return committed
}

// SetPlaybackFPS sets the playback rate. Non-finite or non-positive
// rates are rejected.
func (s *Store) SetPlaybackFPS(fps float64) error {
	return s.mutate(func(st *ViewerState) error {
		if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
			return validationErrorf("playback fps", "rate must be positive and finite, got %v", fps)
		}
		st.PlaybackFPS = fps
		return nil
	})
}

// SetPlaying starts or stops playback.
func (s *Store) SetPlaying(playing bool) {
	_ = s.mutate(func(st *ViewerState) error {
		st.Playing = playing
		return nil
	})
}

func clampFrame(st *ViewerState, frame int) int {
	if frame < 0 {
		return 0
	}
	if st.Dataset != nil && st.Dataset.Frames() > 0 && frame >= st.Dataset.Frames() {
		return st.Dataset.Frames() - 1
	}
	return frame
}
