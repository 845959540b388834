// Package state defines the closed action set and the pure reducer that is
// the only place application state changes.
package state

import "tikkit/internal/model"

// Action is one named state transition. The set is sealed: only types in
// this package implement it, so Reduce can enumerate every case.
type Action interface {
	isAction()
}

// SetDraftText replaces the new-entry input text.
type SetDraftText struct {
	Text string
}

// SetDraftCategory replaces the new-entry category selection.
type SetDraftCategory struct {
	Category model.Category
}

// AddEntry appends an entry built from the draft fields. An exactly-empty
// draft makes this a no-op; a whitespace-only draft does not.
type AddEntry struct{}

// SetEditing sets an entry's edit-mode flag. The driver pairs the
// Editing=true transition with a detached focus request.
type SetEditing struct {
	ID      int
	Editing bool
}

// SetEntryDescription replaces an entry's description.
type SetEntryDescription struct {
	ID   int
	Text string
}

// SetEntryCategory replaces an entry's category.
type SetEntryCategory struct {
	ID       int
	Category model.Category
}

// DeleteEntry removes the entry with the given id.
type DeleteEntry struct {
	ID int
}

// DeleteCompleted removes every completed entry.
type DeleteCompleted struct{}

// SetCompleted sets an entry's completed flag.
type SetCompleted struct {
	ID        int
	Completed bool
}

// SetAllCompleted sets the completed flag on every entry.
type SetAllCompleted struct {
	Completed bool
}

// SetFilter replaces the visibility filter.
type SetFilter struct {
	Filter model.Filter
}

// NoOp is what acknowledged fire-and-forget side effects collapse to.
type NoOp struct{}

func (SetDraftText) isAction()        {}
func (SetDraftCategory) isAction()    {}
func (AddEntry) isAction()            {}
func (SetEditing) isAction()          {}
func (SetEntryDescription) isAction() {}
func (SetEntryCategory) isAction()    {}
func (DeleteEntry) isAction()         {}
func (DeleteCompleted) isAction()     {}
func (SetCompleted) isAction()        {}
func (SetAllCompleted) isAction()     {}
func (SetFilter) isAction()           {}
func (NoOp) isAction()                {}
