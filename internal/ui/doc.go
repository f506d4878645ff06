// Package ui provides the Bubble Tea terminal interface for roster.
//
// # Layout
//
// The browser is a single screen:
//
//   - Title bar: program name and active theme
//   - Controls: name filter input, city selector, oldest highlight and sort
//   - Table: Name, City and Birthday columns; the active sort column carries ▲ or ▼
//   - Footer: visible/total counts and key hints
//
// While the people load is in flight a spinner fills the screen. A failed load
// replaces everything with a full-page error view.
//
// # Filtering
//
// Typing in the name input re-arms a debounce gate; the filter only applies once
// the input has been quiet for the configured period (default 500ms). Stale
// settle messages carry an old token and are dropped. The city selector cycles
// through the distinct cities of the loaded set and matches them exactly.
//
// # Keyboard Shortcuts
//
//   - /: Focus the name input (enter applies immediately, esc or tab leaves it)
//   - c, C: Next or previous city; x resets to any city
//   - esc: Clear all filters
//   - o: Toggle the oldest-per-city highlight
//   - 1, 2, 3: Sort by name, city or birthday; repeating flips direction
//   - 0: Restore the original order
//   - j/k, g/G, ctrl+d/u: Navigate rows
//   - T: Cycle theme
//   - h, ?: Help
//   - q, ctrl+c: Quit
//
// Column headers are also clickable.
//
// Theme, highlight and sort are written to the preferences file through a
// coalescing debouncer that is flushed on exit.
package ui
