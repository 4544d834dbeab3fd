package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ckpecfg/internal/classify"
	"ckpecfg/pkg/ini"
)

// ModelView renders the editor model's view as a string.
func ModelView(m model) string {
	if m.quitting {
		return ""
	}
	switch m.ActiveView {
	case ViewEntries:
		return entriesView(m)
	case ViewEdit:
		return editView(m)
	case ViewConfirmQuit:
		return confirmQuitView(m)
	default:
		return sectionsView(m)
	}
}

func sectionsView(m model) string {
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(1).
		Render(m.sectionList.View())

	parts := []string{box}
	if item, ok := m.sectionList.SelectedItem().(SectionItem); ok && item.section.Comment != "" {
		parts = append(parts, commentStyle().Render(wrapText(item.section.Comment, max(m.width-4, 20))))
	}
	if s := statusLine(m); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, helpLine("enter open section  s save  r reload  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func entriesView(m model) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF")).
		Render(fmt.Sprintf("[%s]", m.section.Name))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Render(m.entryTable.View())

	parts := []string{header, box}
	if e := selectedEntry(m); e != nil && e.Comment != "" {
		parts = append(parts, commentStyle().Render(wrapText(e.Comment, max(m.width-4, 20))))
	}
	if s := statusLine(m); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, helpLine("enter edit  esc back  s save  r reload  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func editView(m model) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	e := m.editEntry

	var editor, help string
	switch m.editClass.Kind {
	case classify.Boolean:
		editor = choiceLine([]string{"true", "false"}, boolIndex(m.editBuf))
		help = "space toggle  enter accept  esc cancel"
	case classify.Enum:
		opt := m.editClass.Options[m.editIdx]
		editor = fmt.Sprintf("< %s (%d) >  %d/%d", opt.Label, opt.Value, m.editIdx+1, len(m.editClass.Options))
		help = "left/right choose  enter accept  esc cancel"
	case classify.Integer:
		editor = m.editBuf + "█" + commentStyle().Render(fmt.Sprintf("  %d to %d", m.editClass.Min, m.editClass.Max))
		help = "digits only  enter accept  esc cancel"
	default:
		editor = m.editBuf + "█"
		help = "enter accept  esc cancel"
	}

	lines := []string{
		headerStyle.Render(fmt.Sprintf("[%s] %s", m.section.Name, e.Name)),
		"",
		"file value: " + e.Value,
		"new value:  " + editor,
	}
	if e.Comment != "" {
		lines = append(lines, "", commentStyle().Render(wrapText(e.Comment, max(m.width-8, 20))))
	}

	box := lipgloss.NewStyle().
		Padding(1).
		BorderStyle(lipgloss.RoundedBorder()).
		Render(strings.Join(lines, "\n"))

	parts := []string{box}
	if s := statusLine(m); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, helpLine(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func confirmQuitView(m model) string {
	warnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	return lipgloss.NewStyle().
		Padding(1).
		BorderStyle(lipgloss.DoubleBorder()).
		Render(fmt.Sprintf("%s\n\n%s",
			warnStyle.Render(fmt.Sprintf("Quit with %d unsaved edits?", len(m.sess.Edits()))),
			"The edits are kept as a draft for the next run.\nPress y to quit, n to go back."))
}

// statusLine summarizes the session state below the active widget.
func statusLine(m model) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)

	var parts []string
	if n := len(m.sess.Edits()); n > 0 {
		parts = append(parts, warn.Render(fmt.Sprintf("%d unsaved", n)))
	}
	if t := m.sess.LastSaved(); !t.IsZero() {
		parts = append(parts, dim.Render("saved "+t.Format("15:04:05")))
	}
	if m.fileChanged {
		parts = append(parts, warn.Render("file changed on disk, r reloads"))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, dim.Render("  |  "))
}

// choiceLine renders a fixed set of choices with the selected one
// highlighted.
func choiceLine(options []string, selected int) string {
	sel := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	parts := make([]string, len(options))
	for i, o := range options {
		if i == selected {
			parts[i] = sel.Render("[" + o + "]")
		} else {
			parts[i] = " " + o + " "
		}
	}
	return strings.Join(parts, " ")
}

func boolIndex(value string) int {
	if strings.EqualFold(value, "true") {
		return 0
	}
	return 1
}

func selectedEntry(m model) *ini.Entry {
	idx := m.entryTable.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}
	return m.entries[idx]
}

func commentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
}

func helpLine(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render(s)
}
