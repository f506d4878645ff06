// Package roster maps people into display records and derives filtered, sorted
// views of them.
package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/five82/roster/internal/people"
)

// BirthdayLayout is the display layout for birthdays.
const BirthdayLayout = "2006-01-02"

// birthDateLayout accepts both padded and unpadded month/day ("1996-5-30").
const birthDateLayout = "2006-1-2"

var (
	// ErrInvalidBirthDate reports a birth date that is not a calendar date.
	ErrInvalidBirthDate = errors.New("invalid birth date")
	// ErrDuplicateID reports two people sharing one identifier.
	ErrDuplicateID = errors.New("duplicate person id")
)

// Record is the mapped form of a person used for filtering, sorting and display.
type Record struct {
	ID       int64
	Name     string
	Birthday time.Time
	City     string
	IsOldest bool

	// Case-folded name and city, filled by Build for matching.
	nameKey string
	cityKey string
}

// BirthdayText formats the birthday for display.
func (r Record) BirthdayText() string {
	if r.Birthday.IsZero() {
		return ""
	}
	return r.Birthday.Format(BirthdayLayout)
}

// Dataset is the immutable result of one load.
type Dataset struct {
	Records []Record
	Cities  []string
}

// Len returns the number of loaded records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Build maps users into records and marks the oldest person of every city.
func Build(users []people.User) (Dataset, error) {
	records := make([]Record, 0, len(users))
	seen := make(map[int64]struct{}, len(users))
	fold := cases.Fold()
	for _, u := range users {
		if _, dup := seen[u.ID]; dup {
			return Dataset{}, fmt.Errorf("%w: %d", ErrDuplicateID, u.ID)
		}
		seen[u.ID] = struct{}{}

		rec, err := mapUser(u)
		if err != nil {
			return Dataset{}, err
		}
		rec.nameKey = fold.String(rec.Name)
		rec.cityKey = fold.String(rec.City)
		records = append(records, rec)
	}
	markOldest(records)
	return Dataset{Records: records, Cities: distinctCities(records)}, nil
}

func mapUser(u people.User) (Record, error) {
	birthday, err := ParseBirthDate(u.BirthDate)
	if err != nil {
		return Record{}, fmt.Errorf("person %d: %w", u.ID, err)
	}
	return Record{
		ID:       u.ID,
		Name:     u.FirstName + " " + u.LastName,
		Birthday: birthday,
		City:     u.Address.City,
	}, nil
}

// ParseBirthDate parses a YYYY-M-D calendar date into UTC midnight.
func ParseBirthDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	t, err := time.ParseInLocation(birthDateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidBirthDate, value)
	}
	return t, nil
}

// markOldest flags every record whose birthday is the earliest in its city.
// Ties on the earliest date are all flagged.
func markOldest(records []Record) {
	earliest := make(map[string]time.Time, len(records))
	for _, r := range records {
		if cur, ok := earliest[r.City]; !ok || r.Birthday.Before(cur) {
			earliest[r.City] = r.Birthday
		}
	}
	for i := range records {
		records[i].IsOldest = records[i].Birthday.Equal(earliest[records[i].City])
	}
}

func distinctCities(records []Record) []string {
	cities := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.City]; ok {
			continue
		}
		seen[r.City] = struct{}{}
		cities = append(cities, r.City)
	}
	slices.Sort(cities)
	return cities
}
