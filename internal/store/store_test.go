package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tikkit/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("some-key", []byte("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	blob, found, err := s.Get("some-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("key not found after Put")
	}
	if string(blob) != "hello" {
		t.Errorf("Get = %q, want %q", blob, "hello")
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	blob, found, err := s.Get("never-written")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Errorf("missing key reported found, blob=%q", blob)
	}
}

func TestPutOverwritesLastWriteWins(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("k", []byte("first")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put("k", []byte("second")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	blob, _, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(blob) != "second" {
		t.Errorf("Get = %q, want %q", blob, "second")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := s.Put(StateKey, []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s2.Close()

	blob, found, err := s2.Get(StateKey)
	if err != nil || !found {
		t.Fatalf("Get after reopen: blob=%q found=%v err=%v", blob, found, err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := model.State{
		Entries: []model.Entry{
			{ID: 0, Description: "Write report", Category: model.CategoryWork},
			{ID: 1, Description: "Buy milk", Completed: true, Category: model.CategoryShopping},
			{ID: 2, Description: "Revise notes", Editing: true, Category: model.CategoryStudies},
		},
		DraftText:     "half typed",
		DraftCategory: model.CategoryStudies,
		NextID:        3,
		Filter:        model.FilterActive,
	}

	blob, err := EncodeState(want)
	if err != nil {
		t.Fatalf("EncodeState failed: %v", err)
	}
	got, err := DecodeState(blob)
	if err != nil {
		t.Fatalf("DecodeState failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"not json":         []byte("{{{{"),
		"wrong shape":      []byte(`{"tasks": []}`),
		"bad category":     []byte(`{"entries":[{"id":0,"description":"x","completed":false,"editing":false,"category":"chores"}],"draft_text":"","draft_category":"work","next_id":1,"filter":"all"}`),
		"bad filter":       []byte(`{"entries":[],"draft_text":"","draft_category":"work","next_id":0,"filter":"someday"}`),
		"negative next_id": []byte(`{"entries":[],"draft_text":"","draft_category":"work","next_id":-1,"filter":"all"}`),
	}
	for name, blob := range cases {
		if _, err := DecodeState(blob); err == nil {
			t.Errorf("%s: DecodeState accepted invalid blob", name)
		}
	}
}

func TestLoadStateFallsBackToDefault(t *testing.T) {
	s := openTestStore(t)

	// Nothing stored yet: defaults, no error.
	got, err := LoadState(s, StateKey)
	if err != nil {
		t.Fatalf("LoadState on empty store: %v", err)
	}
	if diff := cmp.Diff(model.Default(), got); diff != "" {
		t.Errorf("empty store state (-want +got):\n%s", diff)
	}

	// Corrupt blob: defaults, error reported for logging.
	if err := s.Put(StateKey, []byte("not valid json")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err = LoadState(s, StateKey)
	if err == nil {
		t.Error("LoadState on corrupt blob returned no error")
	}
	if diff := cmp.Diff(model.Default(), got); diff != "" {
		t.Errorf("corrupt blob state (-want +got):\n%s", diff)
	}
}

func TestSaveLoadState(t *testing.T) {
	s := openTestStore(t)

	want := model.Default()
	want.Entries = []model.Entry{{ID: 0, Description: "persisted", Category: model.CategoryWork}}
	want.NextID = 1

	if err := SaveState(s, StateKey, want); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	got, err := LoadState(s, StateKey)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("save/load mismatch (-want +got):\n%s", diff)
	}
}
