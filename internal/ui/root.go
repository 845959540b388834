// Package ui renders the todo list as a Bubble Tea program. The RootModel
// owns the single application state; every user interaction becomes an
// action, the reducer produces the next state, and a detached persistence
// write mirrors it to the store.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tikkit/internal/app"
	"tikkit/internal/model"
	"tikkit/internal/state"
	"tikkit/internal/store"
	"tikkit/internal/ui/theme"
)

// Mode represents the current input mode of the UI
type Mode int

const (
	ModeNormal Mode = iota
	ModeDraft
	ModeEdit
	ModeConfirmDelete
)

// editField identifies which control inside the edit row has focus. Moving
// between these two must not leave edit mode; moving anywhere else does.
type editField int

const (
	editFieldDescription editField = iota
	editFieldCategory
)

// doubleClickWindow is how close two clicks on the same row must be to count
// as a double click.
const doubleClickWindow = 400 * time.Millisecond

// RootModel is the application driver: state container, action dispatcher,
// and renderer.
type RootModel struct {
	app   *app.App
	state model.State
	keys  KeyMap
	help  help.Model

	width  int
	height int

	mode         Mode
	cursor       int // index into the visible entries
	scrollOffset int

	draftInput textinput.Model
	editInput  textinput.Model
	editID     int
	editField  editField

	deleteID int

	statusMsg   string
	helpVisible bool

	lastClickAt  time.Time
	lastClickRow int
}

// NewRootModel creates the root model, restoring persisted state or falling
// back to defaults.
func NewRootModel(application *app.App) RootModel {
	st, err := store.LoadState(application.Store, store.StateKey)
	if err != nil {
		application.Logger.Warn("falling back to default state", "err", err)
	}

	di := textinput.New()
	di.Placeholder = "What needs doing?"
	di.CharLimit = 256
	di.Prompt = "❯ "
	di.SetValue(st.DraftText)

	ei := textinput.New()
	ei.CharLimit = 256
	ei.Prompt = ""

	m := RootModel{
		app:          application,
		state:        st,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		draftInput:   di,
		editInput:    ei,
		editID:       -1,
		lastClickRow: -1,
	}

	// An entry persisted mid-edit reopens still marked editing.
	if e, ok := st.EditingEntry(); ok {
		m.mode = ModeEdit
		m.editID = e.ID
		m.editInput.SetValue(e.Description)
		m.moveCursorTo(e.ID)
	}

	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	if m.mode == ModeEdit {
		return tea.Batch(m.focusRequestCmd(m.editID), textinput.Blink)
	}
	return nil
}

// dispatch runs an action through the reducer and schedules the persistence
// mirror. The write is fire-and-forget: its result comes back as a
// stateSavedMsg and is dropped there.
func (m *RootModel) dispatch(a state.Action) tea.Cmd {
	m.state = state.Reduce(m.state, a)
	m.clampCursor()
	return m.persistCmd()
}

// persistCmd snapshots the current state and writes it in the background.
func (m *RootModel) persistCmd() tea.Cmd {
	snapshot := m.state
	st := m.app.Store
	return func() tea.Msg {
		return stateSavedMsg{err: store.SaveState(st, store.StateKey, snapshot)}
	}
}

// focusRequestCmd asks for input focus on an entry's edit field. Detached
// and uncoordinated: if the entry is gone by delivery time, the message is
// discarded on receipt.
func (m *RootModel) focusRequestCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return editFocusMsg{id: id}
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.draftInput.Width = msg.Width - 8
		m.editInput.Width = msg.Width - 16
		m.ensureCursorVisible()
		return m, nil

	case stateSavedMsg:
		// Fire-and-forget acknowledgement; failure is logged, never shown.
		if msg.err != nil {
			m.app.Logger.Warn("state write failed", "err", msg.err)
		}
		return m, nil

	case editFocusMsg:
		if e, ok := m.state.Entry(msg.id); ok && e.Editing && m.mode == ModeEdit {
			m.editInput.SetValue(e.Description)
			m.editInput.CursorEnd()
			return m, m.editInput.Focus()
		}
		return m, nil

	case themeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.name)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a keypress by mode after the global bindings.
func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	// ctrl+c always quits; q only outside input modes.
	if key.Matches(msg, m.keys.Quit) {
		if msg.String() == "ctrl+c" || m.mode == ModeNormal {
			return m, tea.Quit
		}
	}

	if key.Matches(msg, m.keys.ThemeCycle) {
		return m, m.cycleTheme()
	}

	switch m.mode {
	case ModeDraft:
		return m.handleDraftMode(msg)
	case ModeEdit:
		return m.handleEditMode(msg)
	case ModeConfirmDelete:
		return m.handleDeleteConfirm(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode handles keypresses in normal mode
func (m RootModel) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.state.Visible()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(visible)-1)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeDraft
		return m, tea.Batch(m.draftInput.Focus(), textinput.Blink)

	case key.Matches(msg, m.keys.Edit):
		if len(visible) > 0 {
			return m.beginEdit(visible[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(visible) > 0 {
			e := visible[m.cursor]
			return m, m.dispatch(state.SetCompleted{ID: e.ID, Completed: !e.Completed})
		}

	case key.Matches(msg, m.keys.ToggleAll):
		if len(m.state.Entries) > 0 {
			// The toggle-all control sends the negation of the derived
			// all-completed value over the full, unfiltered list.
			return m, m.dispatch(state.SetAllCompleted{Completed: !m.state.AllCompleted()})
		}

	case key.Matches(msg, m.keys.CycleCategory):
		if len(visible) > 0 {
			e := visible[m.cursor]
			return m, m.dispatch(state.SetEntryCategory{ID: e.ID, Category: e.Category.Next()})
		}

	case key.Matches(msg, m.keys.Delete):
		if len(visible) > 0 {
			m.deleteID = visible[m.cursor].ID
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, m.keys.ClearCompleted):
		if m.state.CompletedCount() > 0 {
			return m, m.dispatch(state.DeleteCompleted{})
		}
		m.statusMsg = "Nothing completed to clear"

	case key.Matches(msg, m.keys.FilterAll):
		return m, m.dispatch(state.SetFilter{Filter: model.FilterAll})

	case key.Matches(msg, m.keys.FilterActive):
		return m, m.dispatch(state.SetFilter{Filter: model.FilterActive})

	case key.Matches(msg, m.keys.FilterCompleted):
		return m, m.dispatch(state.SetFilter{Filter: model.FilterCompleted})

	case key.Matches(msg, m.keys.CycleFilter):
		next := nextFilter(m.state.Filter)
		return m, m.dispatch(state.SetFilter{Filter: next})

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
	}

	return m, nil
}

// handleDraftMode handles keypresses while the new-entry input has focus.
// The draft text lives in the application state, not the widget: each edit
// dispatches SetDraftText so the input box only mirrors the state.
func (m RootModel) handleDraftMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// The reducer rejects only an exactly-empty draft.
		cmd := m.dispatch(state.AddEntry{})
		m.draftInput.SetValue(m.state.DraftText)
		return m, cmd

	case "esc":
		// Leave the input; the draft text stays in state.
		m.mode = ModeNormal
		m.draftInput.Blur()
		return m, nil

	case "tab":
		return m, m.dispatch(state.SetDraftCategory{Category: m.state.DraftCategory.Next()})
	}

	var cmd tea.Cmd
	m.draftInput, cmd = m.draftInput.Update(msg)
	dispatchCmd := m.dispatch(state.SetDraftText{Text: m.draftInput.Value()})
	return m, tea.Batch(cmd, dispatchCmd)
}

// beginEdit flips an entry into edit mode and issues the detached focus
// request for its description field.
func (m RootModel) beginEdit(id int) (tea.Model, tea.Cmd) {
	cmd := m.dispatch(state.SetEditing{ID: id, Editing: true})
	e, ok := m.state.Entry(id)
	if !ok {
		return m, cmd
	}
	m.mode = ModeEdit
	m.editID = e.ID
	m.editField = editFieldDescription
	m.editInput.SetValue(e.Description)
	m.editInput.CursorEnd()
	return m, tea.Batch(cmd, m.focusRequestCmd(e.ID), textinput.Blink)
}

// endEdit leaves edit mode for the current entry.
func (m RootModel) endEdit() (tea.Model, tea.Cmd) {
	id := m.editID
	m.mode = ModeNormal
	m.editID = -1
	m.editInput.Blur()
	return m, m.dispatch(state.SetEditing{ID: id, Editing: false})
}

// handleEditMode handles keypresses while an entry is in edit mode.
//
// Focus moves between the entry's own description and category controls with
// tab without leaving edit mode; Enter, Escape, or moving focus to anything
// outside the edit row exits it. A naive exit-on-any-blur would flicker when
// tabbing between the two controls.
func (m RootModel) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		return m.endEdit()

	case "tab", "shift+tab":
		if m.editField == editFieldDescription {
			m.editField = editFieldCategory
			m.editInput.Blur()
			return m, nil
		}
		m.editField = editFieldDescription
		return m, tea.Batch(m.editInput.Focus(), textinput.Blink)

	case "up", "down":
		// Focus is leaving the edit row for the list: exit edit mode, then
		// let normal mode handle the movement.
		newM, cmd := m.endEdit()
		root := newM.(RootModel)
		newM2, moveCmd := root.handleNormalMode(msg)
		return newM2, tea.Batch(cmd, moveCmd)
	}

	if m.editField == editFieldCategory {
		switch msg.String() {
		case "left", "h", "right", "l", " ":
			if e, ok := m.state.Entry(m.editID); ok {
				return m, m.dispatch(state.SetEntryCategory{ID: e.ID, Category: e.Category.Next()})
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	dispatchCmd := m.dispatch(state.SetEntryDescription{ID: m.editID, Text: m.editInput.Value()})
	return m, tea.Batch(cmd, dispatchCmd)
}

// handleDeleteConfirm handles the y/n delete confirmation
func (m RootModel) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.deleteID
		m.mode = ModeNormal
		m.deleteID = 0
		return m, m.dispatch(state.DeleteEntry{ID: id})
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.deleteID = 0
	}
	return m, nil
}

// handleMouse moves the cursor on click and enters edit mode on double
// click, mirroring the double-click-to-edit gesture.
func (m RootModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.mode == ModeConfirmDelete || m.helpVisible || len(m.state.Entries) == 0 {
		return m, nil
	}

	row := msg.Y - m.listTop()
	visible := m.state.Visible()
	idx := row + m.scrollOffset
	if row < 0 || idx < 0 || idx >= len(visible) {
		return m, nil
	}

	now := time.Now()
	isDouble := idx == m.lastClickRow && now.Sub(m.lastClickAt) <= doubleClickWindow
	m.lastClickAt = now
	m.lastClickRow = idx

	if m.mode == ModeEdit && visible[idx].ID != m.editID {
		// Clicking outside the editing entry's controls is a blur to a
		// non-edit element: leave edit mode first.
		newM, cmd := m.endEdit()
		root := newM.(RootModel)
		root.cursor = idx
		root.ensureCursorVisible()
		return root, cmd
	}

	m.cursor = idx
	m.ensureCursorVisible()

	if isDouble {
		return m.beginEdit(visible[idx].ID)
	}
	return m, nil
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() tea.Cmd {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			return func() tea.Msg {
				return themeChangedMsg{name: next.Name}
			}
		}
	}
	return nil
}

// clampCursor keeps the cursor inside the visible entry range after a
// reduction changed the list.
func (m *RootModel) clampCursor() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	m.ensureCursorVisible()
}

// moveCursorTo points the cursor at the visible entry with the given id.
func (m *RootModel) moveCursorTo(id int) {
	for i, e := range m.state.Visible() {
		if e.ID == id {
			m.cursor = i
			break
		}
	}
	m.ensureCursorVisible()
}

// visibleRowCount returns how many entry rows fit in the viewport.
func (m RootModel) visibleRowCount() int {
	// Header, draft row, toggle-all line, footer block.
	available := m.height - 11
	if available < 1 {
		available = 1
	}
	return available
}

// ensureCursorVisible adjusts scrollOffset to keep the cursor in view.
func (m *RootModel) ensureCursorVisible() {
	visible := m.visibleRowCount()

	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	maxOffset := len(m.state.Visible()) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}

// listTop returns the screen line of the first entry row, for mouse
// hit-testing. Must mirror the layout produced by View.
func (m RootModel) listTop() int {
	// header + blank + draft + blank + toggle-all line
	top := 5
	if m.scrollOffset > 0 {
		top++ // the "more above" indicator
	}
	return top
}

func nextFilter(f model.Filter) model.Filter {
	filters := model.Filters()
	for i, cur := range filters {
		if cur == f {
			return filters[(i+1)%len(filters)]
		}
	}
	return model.FilterAll
}

// State exposes the current application state, for the quick-add path and
// tests.
func (m RootModel) State() model.State {
	return m.state
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, "")
	sections = append(sections, m.renderDraftRow())
	sections = append(sections, "")

	if m.helpVisible {
		sections = append(sections, m.help.View(m.keys))
		return strings.Join(sections, "\n")
	}

	sections = append(sections, m.renderList()...)
	sections = append(sections, m.renderFooter()...)

	return strings.Join(sections, "\n")
}
