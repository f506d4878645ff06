package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (m Model) helpSections() []helpSection {
	k := m.keys
	return []helpSection{
		{title: "Filter", bindings: []key.Binding{k.FocusName, k.Confirm, k.LeaveInput, k.NextCity, k.PrevCity, k.ResetCity, k.ClearFilters}},
		{title: "Sort", bindings: []key.Binding{k.SortName, k.SortCity, k.SortBirthday, k.SortClear}},
		{title: "Navigation", bindings: []key.Binding{k.Down, k.Up, k.Top, k.Bottom, k.PageDown, k.PageUp}},
		{title: "General", bindings: []key.Binding{k.ToggleOldest, k.CycleTheme, k.Help, k.Quit}},
	}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := styles.WarningText.Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	sections := m.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Click a column header to sort."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Themes: " + strings.Join(ThemeNames(), ", ")))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return m.place(modal.Render(b.String()))
}
