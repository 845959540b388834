package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tikkit/internal/model"
)

func threeEntries() model.State {
	return model.State{
		Entries: []model.Entry{
			{ID: 0, Description: "Write report", Category: model.CategoryWork},
			{ID: 1, Description: "Read chapter 4", Completed: true, Category: model.CategoryStudies},
			{ID: 2, Description: "Buy eggs", Category: model.CategoryShopping},
		},
		DraftCategory: model.CategoryWork,
		NextID:        3,
		Filter:        model.FilterAll,
	}
}

func TestAddEntry(t *testing.T) {
	s := model.Default()
	s.NextID = 5
	s = Reduce(s, SetDraftText{Text: "Buy milk"})
	s = Reduce(s, SetDraftCategory{Category: model.CategoryShopping})

	got := Reduce(s, AddEntry{})

	want := model.State{
		Entries: []model.Entry{
			{ID: 5, Description: "Buy milk", Category: model.CategoryShopping},
		},
		DraftText:     "",
		DraftCategory: model.CategoryWork,
		NextID:        6,
		Filter:        model.FilterAll,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AddEntry state mismatch (-want +got):\n%s", diff)
	}
}

func TestAddEntryEmptyDraftIsNoOp(t *testing.T) {
	s := threeEntries()
	s.DraftText = ""

	got := Reduce(s, AddEntry{})
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("empty draft should not add (-want +got):\n%s", diff)
	}
}

func TestAddEntryWhitespaceDraftIsAccepted(t *testing.T) {
	// Only the exactly-empty string blocks addition; whitespace is a
	// valid description.
	s := model.Default()
	s = Reduce(s, SetDraftText{Text: "   "})

	got := Reduce(s, AddEntry{})
	if len(got.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got.Entries))
	}
	if got.Entries[0].Description != "   " {
		t.Errorf("description = %q, want %q", got.Entries[0].Description, "   ")
	}
}

func TestIDsNeverReused(t *testing.T) {
	s := model.Default()
	s = Reduce(s, SetDraftText{Text: "first"})
	s = Reduce(s, AddEntry{})
	s = Reduce(s, DeleteEntry{ID: 0})
	s = Reduce(s, SetDraftText{Text: "second"})
	s = Reduce(s, AddEntry{})

	if s.Entries[0].ID != 1 {
		t.Errorf("second entry id = %d, want 1", s.Entries[0].ID)
	}
	if s.NextID != 2 {
		t.Errorf("NextID = %d, want 2", s.NextID)
	}
}

func TestMissingIDIsSilentNoOp(t *testing.T) {
	s := threeEntries()

	actions := []Action{
		SetEditing{ID: 99, Editing: true},
		SetEntryDescription{ID: 99, Text: "ghost"},
		SetEntryCategory{ID: 99, Category: model.CategoryShopping},
		SetCompleted{ID: 99, Completed: true},
		DeleteEntry{ID: 99},
	}
	for _, a := range actions {
		got := Reduce(s, a)
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("%T on missing id changed state (-want +got):\n%s", a, diff)
		}
	}
}

func TestSetCompletedIdempotent(t *testing.T) {
	s := threeEntries()

	once := Reduce(s, SetCompleted{ID: 0, Completed: true})
	twice := Reduce(once, SetCompleted{ID: 0, Completed: true})
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("repeated SetCompleted diverged (-want +got):\n%s", diff)
	}
}

func TestDeleteCompletedPreservesOrder(t *testing.T) {
	s := threeEntries()
	s = Reduce(s, SetCompleted{ID: 2, Completed: true})

	got := Reduce(s, DeleteCompleted{})

	if len(got.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got.Entries))
	}
	if got.Entries[0].ID != 0 {
		t.Errorf("surviving entry id = %d, want 0", got.Entries[0].ID)
	}
}

func TestDeleteCompletedNothingCompleted(t *testing.T) {
	s := threeEntries()
	s = Reduce(s, SetCompleted{ID: 1, Completed: false})

	got := Reduce(s, DeleteCompleted{})
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("nothing to clear should not change state (-want +got):\n%s", diff)
	}
}

func TestSetAllCompleted(t *testing.T) {
	s := threeEntries()

	all := Reduce(s, SetAllCompleted{Completed: true})
	for _, e := range all.Entries {
		if !e.Completed {
			t.Errorf("entry %d not completed after SetAllCompleted(true)", e.ID)
		}
	}
	if !all.AllCompleted() {
		t.Error("AllCompleted() = false after marking everything done")
	}

	none := Reduce(all, SetAllCompleted{Completed: false})
	for _, e := range none.Entries {
		if e.Completed {
			t.Errorf("entry %d still completed after SetAllCompleted(false)", e.ID)
		}
	}
}

// TestToggleAllNegation exercises the toggle-all gesture: the UI dispatches
// the negation of the current all-completed value, so a mixed list first
// becomes fully completed, then fully active.
func TestToggleAllNegation(t *testing.T) {
	s := threeEntries() // mixed: one of three completed

	s = Reduce(s, SetAllCompleted{Completed: !s.AllCompleted()})
	if !s.AllCompleted() {
		t.Fatal("mixed list should become fully completed")
	}

	s = Reduce(s, SetAllCompleted{Completed: !s.AllCompleted()})
	if s.Remaining() != len(s.Entries) {
		t.Fatal("fully completed list should become fully active")
	}
}

func TestEditLifecycle(t *testing.T) {
	s := threeEntries()

	s = Reduce(s, SetEditing{ID: 1, Editing: true})
	e, ok := s.EditingEntry()
	if !ok || e.ID != 1 {
		t.Fatalf("EditingEntry = %+v, %v; want entry 1", e, ok)
	}

	s = Reduce(s, SetEntryDescription{ID: 1, Text: "Read chapter 5"})
	s = Reduce(s, SetEntryCategory{ID: 1, Category: model.CategoryWork})
	s = Reduce(s, SetEditing{ID: 1, Editing: false})

	e, _ = s.Entry(1)
	want := model.Entry{ID: 1, Description: "Read chapter 5", Completed: true, Category: model.CategoryWork}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("entry after edit (-want +got):\n%s", diff)
	}
}

func TestSetFilterDoesNotTouchEntries(t *testing.T) {
	s := threeEntries()

	got := Reduce(s, SetFilter{Filter: model.FilterCompleted})
	if got.Filter != model.FilterCompleted {
		t.Errorf("Filter = %v, want completed", got.Filter)
	}
	if diff := cmp.Diff(s.Entries, got.Entries); diff != "" {
		t.Errorf("filter change altered entries (-want +got):\n%s", diff)
	}
}

func TestNoOpActionLeavesStateUnchanged(t *testing.T) {
	s := threeEntries()
	got := Reduce(s, NoOp{})
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("NoOp changed state (-want +got):\n%s", diff)
	}
}

// TestInputStateNotMutated snapshots the input, runs every mutating action,
// and verifies the original value is intact afterwards.
func TestInputStateNotMutated(t *testing.T) {
	s := threeEntries()
	snapshot := model.State{
		Entries:       append([]model.Entry(nil), s.Entries...),
		DraftText:     s.DraftText,
		DraftCategory: s.DraftCategory,
		NextID:        s.NextID,
		Filter:        s.Filter,
	}
	s.DraftText = "pending draft"
	snapshot.DraftText = "pending draft"

	actions := []Action{
		SetDraftText{Text: "other"},
		SetDraftCategory{Category: model.CategoryShopping},
		AddEntry{},
		SetEditing{ID: 0, Editing: true},
		SetEntryDescription{ID: 0, Text: "changed"},
		SetEntryCategory{ID: 0, Category: model.CategoryStudies},
		DeleteEntry{ID: 0},
		DeleteCompleted{},
		SetCompleted{ID: 0, Completed: true},
		SetAllCompleted{Completed: true},
		SetFilter{Filter: model.FilterActive},
	}
	for _, a := range actions {
		_ = Reduce(s, a)
		if diff := cmp.Diff(snapshot, s); diff != "" {
			t.Fatalf("%T mutated its input (-want +got):\n%s", a, diff)
		}
	}
}
