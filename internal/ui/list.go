package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tikkit/internal/model"
	"tikkit/internal/ui/theme"
)

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("tikkit")

	sub := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	filterIndicator := sub.Render(fmt.Sprintf("[%s]", m.state.Filter.Label()))
	themeIndicator := sub.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, filterIndicator)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderDraftRow renders the always-present new-entry input with its
// category selector.
func (m RootModel) renderDraftRow() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	catStyle := lipgloss.NewStyle().
		Foreground(t.CategoryColor(m.state.DraftCategory)).
		Bold(m.mode == ModeDraft)
	cat := catStyle.Render(fmt.Sprintf("%s %s", m.state.DraftCategory.Icon(), m.state.DraftCategory))

	input := m.draftInput.View()
	if m.mode == ModeDraft {
		hint := styles.HelpDesc.Render("  tab: category")
		return " " + input + "  " + cat + hint
	}
	return " " + input + "  " + cat
}

// renderList renders the toggle-all line and the entry rows. The list
// section is replaced by an empty-state hint when the full entry list is
// empty, regardless of the active filter.
func (m RootModel) renderList() []string {
	styles := theme.Current.Styles

	if len(m.state.Entries) == 0 {
		return []string{styles.Empty.Render("Nothing here yet. Press 'a' to add a task.")}
	}

	var lines []string
	lines = append(lines, m.renderToggleAll())

	visible := m.state.Visible()
	if len(visible) == 0 {
		lines = append(lines, styles.Empty.Render(fmt.Sprintf("No %s tasks.", strings.ToLower(m.state.Filter.Label()))))
		return lines
	}

	rows := m.visibleRowCount()
	endIdx := m.scrollOffset + rows
	if endIdx > len(visible) {
		endIdx = len(visible)
	}

	if m.scrollOffset > 0 {
		lines = append(lines, styles.HelpDesc.Render(fmt.Sprintf("  ↑ %d more above", m.scrollOffset)))
	}

	for i := m.scrollOffset; i < endIdx; i++ {
		e := visible[i]
		if e.Editing && m.mode == ModeEdit && e.ID == m.editID {
			lines = append(lines, m.renderEditRow(e, i == m.cursor))
		} else {
			lines = append(lines, m.renderEntry(e, i == m.cursor))
		}
	}

	if remaining := len(visible) - endIdx; remaining > 0 {
		lines = append(lines, styles.HelpDesc.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
	}

	return lines
}

// renderToggleAll renders the toggle-all control. Its checked state is the
// derived all-completed value over the full list.
func (m RootModel) renderToggleAll() string {
	styles := theme.Current.Styles

	box := "[ ]"
	if m.state.AllCompleted() {
		box = "[✓]"
	}
	return styles.HelpDesc.Render(fmt.Sprintf(" %s all done (A)", box))
}

// renderEntry renders one display row: checkbox, category icon, description,
// in insertion order within the filtered view.
func (m RootModel) renderEntry(e model.Entry, focused bool) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	cursor := "  "
	if focused {
		cursor = "> "
	}

	box := "[ ]"
	if e.Completed {
		box = "[x]"
	}

	icon := lipgloss.NewStyle().
		Foreground(t.CategoryColor(e.Category)).
		Render(e.Category.Icon())

	textStyle := styles.EntryNormal
	if e.Completed {
		textStyle = styles.EntryDone
	}
	if focused {
		textStyle = textStyle.Bold(true)
	}

	return fmt.Sprintf("%s%s %s%s", cursor, box, icon, textStyle.Render(e.Description))
}

// renderEditRow renders the in-place editor for an entry: description input
// plus the category selector, with an underline marking the focused control.
func (m RootModel) renderEditRow(e model.Entry, focused bool) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	cursor := "  "
	if focused {
		cursor = "> "
	}

	descStyle := lipgloss.NewStyle().Foreground(t.Warning)
	if m.editField == editFieldDescription {
		descStyle = descStyle.Underline(true)
	}

	var cats []string
	for _, c := range model.Categories() {
		s := lipgloss.NewStyle().Foreground(t.Subtle)
		if c == e.Category {
			s = lipgloss.NewStyle().Foreground(t.CategoryColor(c)).Bold(true)
			if m.editField == editFieldCategory {
				s = s.Underline(true)
			}
		}
		cats = append(cats, s.Render(fmt.Sprintf("%s %s", c.Icon(), c)))
	}

	hint := styles.HelpDesc.Render("  tab: switch · enter/esc: done")
	return cursor + descStyle.Render(m.editInput.View()) + "  " + strings.Join(cats, " ") + hint
}

// renderFooter renders the counts, filter controls, clear-completed control,
// key hints, and status line. Hidden entirely when the full list is empty.
func (m RootModel) renderFooter() []string {
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, "")

	if len(m.state.Entries) > 0 {
		lines = append(lines, m.renderCounts())
	}

	if m.mode == ModeConfirmDelete {
		if e, ok := m.state.Entry(m.deleteID); ok {
			prompt := styles.ControlEnabled.Render(fmt.Sprintf("Delete %q? (y/n)", e.Description))
			lines = append(lines, prompt)
		}
	}

	if m.statusMsg != "" {
		lines = append(lines, styles.Status.Render(m.statusMsg))
	}

	lines = append(lines, m.renderHints())
	return lines
}

// renderCounts renders the remaining count, the filter controls with the
// active one highlighted, and the clear-completed control. All counts are
// over the full, unfiltered list.
func (m RootModel) renderCounts() string {
	styles := theme.Current.Styles

	remaining := m.state.Remaining()
	noun := "items"
	if remaining == 1 {
		noun = "item"
	}
	left := styles.Footer.Render(fmt.Sprintf("%d %s left", remaining, noun))

	var filters []string
	for _, f := range model.Filters() {
		if f == m.state.Filter {
			// The active filter is highlighted and inert to re-selection.
			filters = append(filters, styles.FilterActive.Render(f.Label()))
		} else {
			filters = append(filters, styles.FilterInactive.Render(f.Label()))
		}
	}
	filterBlock := strings.Join(filters, "")

	completed := m.state.CompletedCount()
	clearLabel := fmt.Sprintf("Clear completed (%d)", completed)
	var clear string
	if completed > 0 {
		clear = styles.ControlEnabled.Render(clearLabel + " · C")
	} else {
		clear = styles.ControlMuted.Render(clearLabel)
	}

	sep := styles.HelpSeparator.Render(" │ ")
	return left + sep + filterBlock + sep + clear
}

// renderHints renders the context-aware key hint line.
func (m RootModel) renderHints() string {
	styles := theme.Current.Styles

	k := func(keys, desc string) string {
		return styles.HelpKey.Render(keys) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	switch m.mode {
	case ModeDraft:
		return k("enter", "add") + sep + k("tab", "category") + sep + k("esc", "back")
	case ModeEdit:
		return k("tab", "field") + sep + k("enter/esc", "done")
	case ModeConfirmDelete:
		return k("y", "delete") + sep + k("n", "keep")
	default:
		return k("a", "add") + sep +
			k("enter", "edit") + sep +
			k("space", "done") + sep +
			k("c", "category") + sep +
			k("d", "del") + sep +
			k("1/2/3", "filter") + sep +
			k("?", "help") + sep +
			k("q", "quit")
	}
}
