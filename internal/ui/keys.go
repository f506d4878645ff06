package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the browser.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Filters
	FocusName    key.Binding
	NextCity     key.Binding
	PrevCity     key.Binding
	ResetCity    key.Binding
	ClearFilters key.Binding
	ToggleOldest key.Binding
	Confirm      key.Binding
	LeaveInput   key.Binding

	// Sorting
	SortName     key.Binding
	SortCity     key.Binding
	SortBirthday key.Binding
	SortClear    key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		FocusName: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter by name"),
		),
		NextCity: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next city"),
		),
		PrevCity: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Previous city"),
		),
		ResetCity: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Any city"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear filters"),
		),
		ToggleOldest: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Highlight oldest"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply name now"),
		),
		LeaveInput: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc/tab", "Leave name input"),
		),

		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Sort by name"),
		),
		SortCity: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Sort by city"),
		),
		SortBirthday: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Sort by birthday"),
		),
		SortClear: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Original order"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),
	}
}
