package roster

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// CityMode selects how the city filter compares.
type CityMode int

const (
	// CityContains keeps records whose city contains the filter text.
	CityContains CityMode = iota
	// CityExact keeps records whose city equals the filter text.
	CityExact
)

// Filter narrows the records shown. The zero value matches everything.
// In CityExact mode an empty City selects the records that have no city.
type Filter struct {
	Name     string
	City     string
	CityMode CityMode
}

// IsZero reports whether the filter keeps every record.
func (f Filter) IsZero() bool {
	return f.Name == "" && f.City == "" && f.CityMode == CityContains
}

// Column identifies a sortable column.
type Column int

const (
	ColumnNone Column = iota
	ColumnName
	ColumnCity
	ColumnBirthday
)

// String returns the column header label.
func (c Column) String() string {
	switch c {
	case ColumnName:
		return "Name"
	case ColumnCity:
		return "City"
	case ColumnBirthday:
		return "Birthday"
	default:
		return ""
	}
}

// ParseColumn maps a column name to a Column. Unknown names map to ColumnNone.
func ParseColumn(value string) Column {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "name":
		return ColumnName
	case "city":
		return ColumnCity
	case "birthday", "birthdate", "birth":
		return ColumnBirthday
	default:
		return ColumnNone
	}
}

// Direction is the sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Sort is the active sort column and direction.
type Sort struct {
	Column    Column
	Direction Direction
}

// Active reports whether a sort column is set.
func (s Sort) Active() bool {
	return s.Column != ColumnNone
}

// Toggle returns the sort after a header click on col: the same column flips
// direction, a different column starts ascending.
func (s Sort) Toggle(col Column) Sort {
	if col == ColumnNone {
		return Sort{}
	}
	if s.Column == col {
		if s.Direction == Ascending {
			return Sort{Column: col, Direction: Descending}
		}
		return Sort{Column: col, Direction: Ascending}
	}
	return Sort{Column: col, Direction: Ascending}
}

// Clear returns an unsorted Sort.
func (s Sort) Clear() Sort {
	return Sort{}
}

// Derive returns the records that match f, ordered by s. The input slice and
// its records are left untouched.
func Derive(records []Record, f Filter, s Sort) []Record {
	out := Apply(records, f)
	if s.Active() {
		slices.SortStableFunc(out, comparator(s))
	}
	return out
}

// Apply returns a new slice with the records that match f, in input order.
func Apply(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	m := newMatcher(f)
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

type matcher struct {
	name     string
	city     string
	cityMode CityMode
}

func newMatcher(f Filter) matcher {
	fold := cases.Fold()
	return matcher{
		name:     fold.String(f.Name),
		city:     fold.String(f.City),
		cityMode: f.CityMode,
	}
}

func (m matcher) match(r Record) bool {
	name, city := r.keys()
	if m.name != "" && !strings.Contains(name, m.name) {
		return false
	}
	if m.cityMode == CityExact {
		return city == m.city
	}
	return m.city == "" || strings.Contains(city, m.city)
}

// keys returns the folded name and city. Records built outside Build are
// folded on demand.
func (r Record) keys() (string, string) {
	if r.nameKey == "" && r.Name != "" || r.cityKey == "" && r.City != "" {
		fold := cases.Fold()
		return fold.String(r.Name), fold.String(r.City)
	}
	return r.nameKey, r.cityKey
}

func comparator(s Sort) func(a, b Record) int {
	var cmp func(a, b Record) int
	switch s.Column {
	case ColumnName:
		cmp = func(a, b Record) int { return strings.Compare(a.Name, b.Name) }
	case ColumnCity:
		cmp = func(a, b Record) int { return strings.Compare(a.City, b.City) }
	case ColumnBirthday:
		cmp = func(a, b Record) int { return a.Birthday.Compare(b.Birthday) }
	default:
		return func(a, b Record) int { return 0 }
	}
	if s.Direction == Descending {
		return func(a, b Record) int { return cmp(b, a) }
	}
	return cmp
}

// Summary describes a derived view relative to the full set.
type Summary struct {
	Visible int
	Total   int
	Oldest  int
}

// Summarize counts the visible, total and visible-oldest records.
func Summarize(all, view []Record) Summary {
	s := Summary{Visible: len(view), Total: len(all)}
	for _, r := range view {
		if r.IsOldest {
			s.Oldest++
		}
	}
	return s
}
