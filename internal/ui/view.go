package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/roster"
)

// Screen rows above the table body, plus the footer.
const (
	tableHeaderRow = 3
	tableFirstRow  = 4
	chromeLines    = 5
)

const (
	rowIndent     = 1
	markerWidth   = 2
	columnGap     = 2
	birthdayWidth = 10
	minFlexWidth  = 20
	oldestMarker  = "*"
)

// columns holds the cell widths of the flexible table columns.
type columns struct {
	name     int
	city     int
	birthday int
}

func layoutColumns(width int) columns {
	flex := width - rowIndent - markerWidth - birthdayWidth - 2*columnGap - 1
	if flex < minFlexWidth {
		flex = minFlexWidth
	}
	name := flex * 3 / 5
	return columns{name: name, city: flex - name, birthday: birthdayWidth}
}

// columnAt maps a screen x position on the header row to its column. The gap
// after a column belongs to it.
func (c columns) columnAt(x int) roster.Column {
	start := rowIndent + markerWidth
	nameEnd := start + c.name + columnGap
	cityEnd := nameEnd + c.city + columnGap
	switch {
	case x < start:
		return roster.ColumnNone
	case x < nameEnd:
		return roster.ColumnName
	case x < cityEnd:
		return roster.ColumnCity
	case x < cityEnd+c.birthday:
		return roster.ColumnBirthday
	default:
		return roster.ColumnNone
	}
}

func (c columns) line(marker, name, city, birthday string) string {
	gap := strings.Repeat(" ", columnGap)
	return strings.Repeat(" ", rowIndent) +
		fit(marker, markerWidth) +
		fit(name, c.name) + gap +
		fit(city, c.city) + gap +
		fit(birthday, c.birthday)
}

// renderMain renders the browser: title, controls, table and footer.
func (m Model) renderMain() string {
	width := m.viewWidth()
	lines := make([]string, 0, m.pageSize()+chromeLines)
	lines = append(lines, m.renderTitle(width))
	lines = append(lines, m.renderControls(width))
	lines = append(lines, m.renderRule(width))
	lines = append(lines, m.renderTableHeader(width))
	lines = append(lines, m.renderRows(width)...)
	lines = append(lines, m.renderFooter(width))
	return strings.Join(lines, "\n")
}

func (m Model) renderTitle(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Render(" roster", styles.Logo) + bg.Render("  people browser", styles.MutedText)
	right := styles.Header.Render("Theme: " + m.theme.Name + " ")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	return bg.FillLine(left+bg.Spaces(gap)+right, width)
}

func (m Model) renderControls(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	nameLabel := styles.MutedText
	if m.nameInput.Focused() {
		nameLabel = styles.AccentText
	}
	oldestState := styles.FaintText
	if m.highlight {
		oldestState = styles.SuccessText
	}
	parts := []string{
		bg.Render(" Name:", nameLabel) + bg.Spaces(1) + m.nameInput.View(),
		bg.Render("City:", styles.MutedText) + bg.Spaces(1) + bg.Render(m.cityLabel(), styles.Text),
		bg.Render("Oldest:", styles.MutedText) + bg.Spaces(1) +
			bg.Render(ternary(m.highlight, "on", "off"), oldestState),
		bg.Render("Sort:", styles.MutedText) + bg.Spaces(1) + bg.Render(m.sortLabel(), styles.Text),
	}
	return bg.FillLine(bg.Join(parts, "   "), width)
}

func (m Model) renderRule(width int) string {
	rule := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Border)).
		Background(lipgloss.Color(m.theme.Background))
	return rule.Render(strings.Repeat("─", width))
}

func (m Model) renderTableHeader(width int) string {
	cols := layoutColumns(width)
	text := cols.line("",
		roster.ColumnName.String()+m.sortIndicator(roster.ColumnName),
		roster.ColumnCity.String()+m.sortIndicator(roster.ColumnCity),
		roster.ColumnBirthday.String()+m.sortIndicator(roster.ColumnBirthday),
	)
	return m.theme.Styles().ColumnHeader.Width(width).MaxWidth(width).Render(text)
}

// renderRows renders the visible window of the table body, padded to a full page.
func (m Model) renderRows(width int) []string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	page := m.pageSize()
	blank := styles.Background.Width(width).Render("")
	rows := make([]string, 0, page)

	if len(m.view) == 0 {
		empty := strings.Repeat(" ", rowIndent+markerWidth) + "No users found"
		rows = append(rows, styles.WarningText.Width(width).Render(empty))
	}

	cols := layoutColumns(width)
	end := min(m.offset+page, len(m.view))
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(m.view[i], i == m.selected, cols, width))
	}
	for len(rows) < page {
		rows = append(rows, blank)
	}
	return rows
}

func (m Model) renderRow(r roster.Record, selected bool, cols columns, width int) string {
	styles := m.theme.Styles()
	body := styles.WithBackground(m.theme.Background)
	oldest := m.highlight && r.IsOldest

	style := body.Text
	marker := ""
	if oldest {
		style = body.Oldest
		marker = oldestMarker
	}
	if selected {
		style = styles.Selected
		if oldest {
			style = style.Foreground(lipgloss.Color(m.theme.Oldest)).Bold(true)
		}
	}
	return style.Width(width).MaxWidth(width).Render(cols.line(marker, r.Name, r.City, r.BirthdayText()))
}

func (m Model) renderFooter(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	sum := roster.Summarize(m.snapshot.Records, m.view)
	summary := fmt.Sprintf(" Showing %d of %d", sum.Visible, sum.Total)
	if m.highlight {
		summary += fmt.Sprintf(" · %d oldest", sum.Oldest)
	}
	hints := "/ name  c city  o oldest  1-3 sort  ? help  q quit "
	if !m.filter.IsZero() {
		hints = "esc clear  " + hints
	}
	if m.nameInput.Focused() {
		hints = "enter apply  esc done "
	}

	left := bg.Render(summary, styles.Text)
	right := styles.Footer.Render(hints)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	return bg.FillLine(left+bg.Spaces(gap)+right, width)
}

func (m Model) sortIndicator(col roster.Column) string {
	if m.sort.Column != col {
		return ""
	}
	if m.sort.Direction == roster.Descending {
		return " ▼"
	}
	return " ▲"
}

func (m Model) sortLabel() string {
	if !m.sort.Active() {
		return "none"
	}
	return m.sort.Column.String() + m.sortIndicator(m.sort.Column)
}

// renderLoading renders the full-page loading state.
func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	content := m.spinner.View() + " " + styles.Text.Render("Loading people…")
	return m.place(content)
}

// renderError renders the full-page load failure.
func (m Model) renderError() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Error: " + m.snapshot.Error))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Press q to quit"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2).
		MaxWidth(m.viewWidth()).
		Render(b.String())
	return m.place(box)
}

func (m Model) place(content string) string {
	return lipgloss.Place(
		m.viewWidth(),
		m.viewHeight(),
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}
