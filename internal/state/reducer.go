package state

import "tikkit/internal/model"

// Reduce maps (state, action) to the next state. It is pure, total, and
// synchronous: no failure cases, no side effects, and the input state is
// never modified. Actions addressing an id that does not exist return the
// state unchanged.
func Reduce(s model.State, a Action) model.State {
	switch a := a.(type) {
	case SetDraftText:
		s.DraftText = a.Text
		return s

	case SetDraftCategory:
		s.DraftCategory = a.Category
		return s

	case AddEntry:
		// Only the exactly-empty string blocks addition; no trimming, so
		// a whitespace-only draft is still a valid entry.
		if s.DraftText == "" {
			return s
		}
		entries := make([]model.Entry, len(s.Entries), len(s.Entries)+1)
		copy(entries, s.Entries)
		s.Entries = append(entries, model.Entry{
			ID:          s.NextID,
			Description: s.DraftText,
			Completed:   false,
			Editing:     false,
			Category:    s.DraftCategory,
		})
		s.NextID++
		s.DraftText = ""
		s.DraftCategory = model.CategoryWork
		return s

	case SetEditing:
		return updateEntry(s, a.ID, func(e model.Entry) model.Entry {
			e.Editing = a.Editing
			return e
		})

	case SetEntryDescription:
		return updateEntry(s, a.ID, func(e model.Entry) model.Entry {
			e.Description = a.Text
			return e
		})

	case SetEntryCategory:
		return updateEntry(s, a.ID, func(e model.Entry) model.Entry {
			e.Category = a.Category
			return e
		})

	case DeleteEntry:
		return deleteWhere(s, func(e model.Entry) bool { return e.ID == a.ID })

	case DeleteCompleted:
		return deleteWhere(s, func(e model.Entry) bool { return e.Completed })

	case SetCompleted:
		return updateEntry(s, a.ID, func(e model.Entry) model.Entry {
			e.Completed = a.Completed
			return e
		})

	case SetAllCompleted:
		entries := make([]model.Entry, len(s.Entries))
		for i, e := range s.Entries {
			e.Completed = a.Completed
			entries[i] = e
		}
		s.Entries = entries
		return s

	case SetFilter:
		s.Filter = a.Filter
		return s
	}

	// NoOp and anything unrecognized.
	return s
}

// updateEntry replaces the entry with the given id using fn, copying the
// slice so the previous state stays untouched. Unknown ids are silent no-ops.
func updateEntry(s model.State, id int, fn func(model.Entry) model.Entry) model.State {
	for i, e := range s.Entries {
		if e.ID != id {
			continue
		}
		entries := make([]model.Entry, len(s.Entries))
		copy(entries, s.Entries)
		entries[i] = fn(e)
		s.Entries = entries
		return s
	}
	return s
}

// deleteWhere removes every entry matching the predicate, preserving the
// order of the rest. Returns the state unchanged when nothing matches.
func deleteWhere(s model.State, match func(model.Entry) bool) model.State {
	keep := make([]model.Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if !match(e) {
			keep = append(keep, e)
		}
	}
	if len(keep) == len(s.Entries) {
		return s
	}
	s.Entries = keep
	return s
}
