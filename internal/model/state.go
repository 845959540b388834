package model

// State is the whole application state. It is replaced wholesale by the
// reducer on every action, never mutated in place, and the full struct is
// what the store persists.
type State struct {
	Entries       []Entry  `json:"entries"`
	DraftText     string   `json:"draft_text"`
	DraftCategory Category `json:"draft_category"`
	NextID        int      `json:"next_id"`
	Filter        Filter   `json:"filter"`
}

// Default returns the startup state used when nothing is persisted: empty
// list, All filter, empty draft, Work category, id counter at zero.
func Default() State {
	return State{
		Entries:       []Entry{},
		DraftText:     "",
		DraftCategory: CategoryWork,
		NextID:        0,
		Filter:        FilterAll,
	}
}

// Visible returns the entries selected by the current filter, preserving
// their relative order. The returned slice is freshly allocated.
func (s State) Visible() []Entry {
	out := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		switch s.Filter {
		case FilterActive:
			if e.Completed {
				continue
			}
		case FilterCompleted:
			if !e.Completed {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// AllCompleted reports whether every entry in the full, unfiltered list is
// completed. Vacuously true for an empty list; the toggle-all control is
// hidden then, so the value is never shown.
func (s State) AllCompleted() bool {
	for _, e := range s.Entries {
		if !e.Completed {
			return false
		}
	}
	return true
}

// Remaining counts not-yet-completed entries over the full list.
func (s State) Remaining() int {
	n := 0
	for _, e := range s.Entries {
		if !e.Completed {
			n++
		}
	}
	return n
}

// CompletedCount counts completed entries over the full list.
func (s State) CompletedCount() int {
	return len(s.Entries) - s.Remaining()
}

// Entry returns the entry with the given id, if present.
func (s State) Entry(id int) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// EditingEntry returns the entry currently in edit mode, if any. At most one
// entry is editing at a time under the reducer's transitions, but the state
// restored from disk is trusted as-is, so the first match wins.
func (s State) EditingEntry() (Entry, bool) {
	for _, e := range s.Entries {
		if e.Editing {
			return e, true
		}
	}
	return Entry{}, false
}
