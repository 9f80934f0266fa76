package urlstate

import (
	"strconv"
	"strings"
)

// Track selection wire format: ordered comma list of "trackId" or
// "trackId:colorSlot". A missing or unparsable slot token decodes as -1,
// which the store resolves by ascending reassignment continuing the
// cyclic slot counter.

// EncodeTracks renders the selection with its color slots.
func EncodeTracks(ids []int, slots map[int]int) string {
	entries := make([]string, 0, len(ids))
	for _, id := range ids {
		if slot, ok := slots[id]; ok {
			entries = append(entries, strconv.Itoa(id)+":"+strconv.Itoa(slot))
		} else {
			entries = append(entries, strconv.Itoa(id))
		}
	}
	return strings.Join(entries, ",")
}

// DecodeTracks parses a selection list. Entries with an unparsable track
// ID are dropped; entries with an unparsable slot keep the track and
// yield slot -1.
func DecodeTracks(s string) (ids []int, slots []int) {
	if s == "" {
		return nil, nil
	}
	for _, entry := range strings.Split(s, ",") {
		idPart, slotPart, hasSlot := strings.Cut(entry, ":")
		id, ok := parseInt(strings.TrimSpace(idPart))
		if !ok {
			continue
		}
		slot := -1
		if hasSlot {
			if v, ok := parseInt(strings.TrimSpace(slotPart)); ok && v >= 0 {
				slot = v
			}
		}
		ids = append(ids, id)
		slots = append(slots, slot)
	}
	return ids, slots
}
