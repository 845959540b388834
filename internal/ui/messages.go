package ui

// Messages for the fire-and-forget side channels. Both are detached
// commands whose results feed back here and collapse to no-ops: persistence
// failures are logged, never surfaced; a focus request for an entry that no
// longer exists is discarded.

// stateSavedMsg reports the outcome of a persistence write.
type stateSavedMsg struct {
	err error
}

// editFocusMsg asks the view to move input focus to an entry's edit field.
type editFocusMsg struct {
	id int
}

// themeChangedMsg indicates the theme was changed.
type themeChangedMsg struct {
	name string
}
