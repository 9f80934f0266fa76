package viewerstate

// Track selection mutators. Selected tracks keep insertion order; each
// gets a highlight color slot in [0, TrackColorSlots). Freed slots are
// reused lowest-first; once every slot is occupied the cyclic cursor
// wraps and slots repeat.

// SetTracks replaces the selection. slots assigns an explicit color slot
// per track (parallel to ids); pass -1 for entries without one, or a nil
// slice to assign all slots. Unslotted tracks are assigned ascending,
// continuing after the highest explicit slot. Unknown track IDs fail the
// whole call.
func (s *Store) SetTracks(ids []int, slots []int) error {
	return s.mutate(func(st *ViewerState) error {
		if st.Dataset == nil {
			return validationErrorf("tracks", "no dataset loaded")
		}
		if slots != nil && len(slots) != len(ids) {
			return validationErrorf("tracks", "%d slots for %d tracks", len(slots), len(ids))
		}
		for _, id := range ids {
			if st.Dataset.Track(id) == nil {
				return validationErrorf("tracks", "unknown track %d", id)
			}
		}

		st.TrackIDs = make([]int, 0, len(ids))
		st.TrackColorSlot = make(map[int]int, len(ids))
		s.slotCursor = 0

		// First pass: explicit slots. The cursor continues after the
		// highest explicit slot so reassignment stays cyclic.
		for i, id := range ids {
			if contains(st.TrackIDs, id) {
				continue
			}
			st.TrackIDs = append(st.TrackIDs, id)
			if slots != nil && slots[i] >= 0 && slots[i] < TrackColorSlots {
				st.TrackColorSlot[id] = slots[i]
				if slots[i]+1 > s.slotCursor {
					s.slotCursor = slots[i] + 1
				}
			}
		}
		// Second pass: missing slots are reassigned ascending,
		// continuing the cyclic counter from the explicit slots.
		for _, id := range st.TrackIDs {
			if _, ok := st.TrackColorSlot[id]; !ok {
				st.TrackColorSlot[id] = s.slotFromCursor(st)
			}
		}
		st.trackRev++
		return nil
	})
}

// AddTracks appends tracks to the selection, assigning each a free color
// slot. Already selected tracks are ignored.
func (s *Store) AddTracks(ids ...int) error {
	return s.mutate(func(st *ViewerState) error {
		if st.Dataset == nil {
			return validationErrorf("tracks", "no dataset loaded")
		}
		for _, id := range ids {
			if st.Dataset.Track(id) == nil {
				return validationErrorf("tracks", "unknown track %d", id)
			}
		}
		next := append([]int(nil), st.TrackIDs...)
		for _, id := range ids {
			if contains(next, id) {
				continue
			}
			next = append(next, id)
			st.TrackColorSlot[id] = s.nextColorSlot(st)
		}
		st.TrackIDs = next
		st.trackRev++
		return nil
	})
}

// RemoveTracks drops tracks from the selection, freeing their color
// slots. IDs not in the selection are ignored.
func (s *Store) RemoveTracks(ids ...int) error {
	return s.mutate(func(st *ViewerState) error {
		if st.Dataset == nil {
			return validationErrorf("tracks", "no dataset loaded")
		}
		for _, id := range ids {
			st.TrackIDs = remove(st.TrackIDs, id)
			delete(st.TrackColorSlot, id)
		}
		st.trackRev++
		return nil
	})
}

// ClearTracks empties the selection and resets the slot cursor.
func (s *Store) ClearTracks() {
	_ = s.mutate(func(st *ViewerState) error {
		s.clearTracksLocked(st)
		return nil
	})
}

func (s *Store) clearTracksLocked(st *ViewerState) {
	st.TrackIDs = nil
	st.TrackColorSlot = map[int]int{}
	s.slotCursor = 0
	st.trackRev++
}

// nextColorSlot picks the lowest slot not used by any selected track.
// When every slot is occupied the cyclic cursor decides, so slots repeat
// in rotation rather than failing.
func (s *Store) nextColorSlot(st *ViewerState) int {
	used := make(map[int]bool, len(st.TrackColorSlot))
	for _, slot := range st.TrackColorSlot {
		used[slot] = true
	}
	for slot := 0; slot < TrackColorSlots; slot++ {
		if !used[slot] {
			if slot+1 > s.slotCursor {
				s.slotCursor = slot + 1
			}
			return slot
		}
	}
	slot := s.slotCursor % TrackColorSlots
	s.slotCursor++
	return slot
}

// slotFromCursor scans cyclically from the cursor for a free slot. Used
// when replaying an ordered selection so reassigned slots continue the
// counter instead of reusing the lowest free slot.
func (s *Store) slotFromCursor(st *ViewerState) int {
	used := make(map[int]bool, len(st.TrackColorSlot))
	for _, slot := range st.TrackColorSlot {
		used[slot] = true
	}
	for i := 0; i < TrackColorSlots; i++ {
		slot := (s.slotCursor + i) % TrackColorSlots
		if !used[slot] {
			s.slotCursor = slot + 1
			return slot
		}
	}
	slot := s.slotCursor % TrackColorSlots
	s.slotCursor++
	return slot
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func remove(list []int, v int) []int {
	out := make([]int, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
