package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
)

// LoadError reports a failed people load. Its text is the message the UI
// would show on its error page.
type LoadError struct {
	Message string
}

func (e *LoadError) Error() string {
	return e.Message
}

// ListOptions select and order the rows printed by List.
type ListOptions struct {
	Name      string
	City      string
	ExactCity bool
	SortBy    string
	Desc      bool
	Highlight bool
	NoDelay   bool
}

// Filter returns the record filter these options describe.
func (o ListOptions) Filter() roster.Filter {
	f := roster.Filter{Name: o.Name, City: o.City}
	if o.ExactCity && o.City != "" {
		f.CityMode = roster.CityExact
	}
	return f
}

// Sort returns the record order these options describe.
func (o ListOptions) Sort() (roster.Sort, error) {
	if strings.TrimSpace(o.SortBy) == "" {
		return roster.Sort{}, nil
	}
	col := roster.ParseColumn(o.SortBy)
	if col == roster.ColumnNone {
		return roster.Sort{}, fmt.Errorf("unknown sort column %q (want name, city or birthday)", o.SortBy)
	}
	s := roster.Sort{Column: col}
	if o.Desc {
		s.Direction = roster.Descending
	}
	return s, nil
}

// List loads the people listing once and prints the filtered, sorted table to out.
func List(ctx context.Context, opts Options, list ListOptions, out io.Writer) error {
	sort, err := list.Sort()
	if err != nil {
		return err
	}

	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	if list.NoDelay {
		rt.loader.delay = 0
	}
	snap := rt.loader.Load(ctx)
	if snap.Phase != state.PhaseReady {
		return &LoadError{Message: snap.Error}
	}

	view := roster.Derive(snap.Records, list.Filter(), sort)
	_, err = io.WriteString(out, RenderList(snap.Records, view, sort, list.Highlight))
	return err
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	oldestStyle = cellStyle.Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// RenderList formats view as a table followed by a count line. With highlight
// on, the oldest person of each city is marked with an asterisk.
func RenderList(all, view []roster.Record, sort roster.Sort, highlight bool) string {
	var b strings.Builder
	if len(view) == 0 {
		b.WriteString("No users found\n")
		return b.String()
	}

	rows := make([][]string, 0, len(view))
	for _, r := range view {
		marker := ""
		if highlight && r.IsOldest {
			marker = "*"
		}
		rows = append(rows, []string{marker, r.Name, r.City, r.BirthdayText()})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("", headerLabel(roster.ColumnName, sort), headerLabel(roster.ColumnCity, sort), headerLabel(roster.ColumnBirthday, sort)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case highlight && row >= 0 && row < len(view) && view[row].IsOldest:
				return oldestStyle
			default:
				return cellStyle
			}
		})

	b.WriteString(t.String())
	b.WriteString("\n")

	sum := roster.Summarize(all, view)
	count := fmt.Sprintf("%d of %d people", sum.Visible, sum.Total)
	if highlight {
		count += fmt.Sprintf(", %d oldest in their city", sum.Oldest)
	}
	b.WriteString(dimStyle.Render(count))
	b.WriteString("\n")
	return b.String()
}

func headerLabel(col roster.Column, sort roster.Sort) string {
	label := strings.ToUpper(col.String())
	if sort.Column != col {
		return label
	}
	if sort.Direction == roster.Descending {
		return label + " ▼"
	}
	return label + " ▲"
}
