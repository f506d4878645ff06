package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/roster/internal/people"
)

func user(id int64, first, last, birth, city string) people.User {
	return people.User{
		ID:        id,
		FirstName: first,
		LastName:  last,
		BirthDate: birth,
		Address:   people.Address{City: city},
	}
}

func sample(t *testing.T) Dataset {
	t.Helper()
	ds, err := Build([]people.User{
		user(1, "Bob", "Stone", "1990-01-01", "A"),
		user(2, "Ann", "Reed", "1985-05-05", "A"),
		user(3, "Cid", "Hale", "2000-01-01", "B"),
	})
	require.NoError(t, err)
	return ds
}

func names(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func oldestByName(records []Record) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.Name] = r.IsOldest
	}
	return out
}

func TestBuild_MapsUsers(t *testing.T) {
	ds, err := Build([]people.User{user(7, "Emily", "Johnson", "1996-5-30", "Phoenix")})
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)

	rec := ds.Records[0]
	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, "Emily Johnson", rec.Name)
	assert.Equal(t, "Phoenix", rec.City)
	assert.Equal(t, "1996-05-30", rec.BirthdayText())
	assert.True(t, rec.IsOldest, "sole member of a city is oldest")
	assert.Equal(t, []string{"Phoenix"}, ds.Cities)
}

func TestBuild_SpecExample(t *testing.T) {
	ds := sample(t)

	assert.Equal(t, map[string]bool{
		"Bob Stone": false,
		"Ann Reed":  true,
		"Cid Hale":  true,
	}, oldestByName(ds.Records))

	assert.Equal(t, []string{"Ann Reed"}, names(Derive(ds.Records, Filter{Name: "an"}, Sort{})))
	assert.Equal(t, []string{"Ann Reed", "Bob Stone", "Cid Hale"},
		names(Derive(ds.Records, Filter{}, Sort{Column: ColumnName})))
}

func TestBuild_TiesAreAllOldest(t *testing.T) {
	ds, err := Build([]people.User{
		user(1, "Ann", "A", "1980-02-02", "Oslo"),
		user(2, "Ben", "B", "1980-2-2", "Oslo"),
		user(3, "Cal", "C", "1999-09-09", "Oslo"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Ann A": true, "Ben B": true, "Cal C": false}, oldestByName(ds.Records))

	ds, err = Build([]people.User{
		user(1, "Ann", "A", "1980-02-02", "Oslo"),
		user(2, "Ben", "B", "1980-02-02", "Oslo"),
		user(3, "Cal", "C", "1970-01-01", "Oslo"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Ann A": false, "Ben B": false, "Cal C": true}, oldestByName(ds.Records))
}

func TestBuild_EveryCityHasAnOldest(t *testing.T) {
	ds, err := Build([]people.User{
		user(1, "A", "1", "1990-01-01", "X"),
		user(2, "B", "2", "1991-01-01", "Y"),
		user(3, "C", "3", "1989-01-01", "X"),
		user(4, "D", "4", "1991-01-01", "Y"),
		user(5, "E", "5", "1950-12-31", "Z"),
		user(6, "F", "6", "1990-01-01", "x"),
	})
	require.NoError(t, err)

	groups := make(map[string]int)
	for _, r := range ds.Records {
		if r.IsOldest {
			groups[r.City]++
		}
	}
	for _, city := range ds.Cities {
		assert.GreaterOrEqual(t, groups[city], 1, "city %q has no oldest record", city)
	}
	assert.Equal(t, []string{"X", "Y", "Z", "x"}, ds.Cities)
	assert.Equal(t, 2, groups["Y"], "equal earliest birthdays in Y are both oldest")
}

func TestBuild_Empty(t *testing.T) {
	ds, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Cities)
	assert.Empty(t, Derive(ds.Records, Filter{}, Sort{Column: ColumnCity}))
}

func TestBuild_InvalidBirthDate(t *testing.T) {
	_, err := Build([]people.User{user(9, "Bad", "Date", "yesterday", "A")})
	require.ErrorIs(t, err, ErrInvalidBirthDate)
	assert.Contains(t, err.Error(), "person 9")
}

func TestBuild_DuplicateID(t *testing.T) {
	_, err := Build([]people.User{
		user(1, "A", "A", "1990-01-01", "A"),
		user(1, "B", "B", "1990-01-01", "B"),
	})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestFilter_CaseInsensitiveAndIdempotent(t *testing.T) {
	ds := sample(t)

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty matches all", Filter{}, []string{"Bob Stone", "Ann Reed", "Cid Hale"}},
		{"name upper", Filter{Name: "REED"}, []string{"Ann Reed"}},
		{"city contains", Filter{City: "a"}, []string{"Bob Stone", "Ann Reed"}},
		{"city exact", Filter{City: "b", CityMode: CityExact}, []string{"Cid Hale"}},
		{"name and city", Filter{Name: "o", City: "A"}, []string{"Bob Stone"}},
		{"nothing", Filter{Name: "zzz"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := Apply(ds.Records, tc.filter)
			assert.Equal(t, tc.want, names(once))
			assert.Equal(t, once, Apply(once, tc.filter), "filtering twice must equal filtering once")
		})
	}
}

func TestFilter_CityExactDoesNotMatchSubstring(t *testing.T) {
	ds, err := Build([]people.User{
		user(1, "A", "A", "1990-01-01", "York"),
		user(2, "B", "B", "1990-01-01", "New York"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A A"}, names(Apply(ds.Records, Filter{City: "york", CityMode: CityExact})))
	assert.Equal(t, []string{"A A", "B B"}, names(Apply(ds.Records, Filter{City: "york"})))
}

func TestFilter_ExactEmptyCitySelectsCityless(t *testing.T) {
	ds, err := Build([]people.User{
		user(1, "Ann", "A", "1990-01-01", ""),
		user(2, "Bob", "B", "1990-01-01", "Paris"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"", "Paris"}, ds.Cities)

	assert.Equal(t, []string{"Ann A"}, names(Apply(ds.Records, Filter{City: "", CityMode: CityExact})))
	assert.Equal(t, []string{"Ann A", "Bob B"}, names(Apply(ds.Records, Filter{})))
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Name: "a"}.IsZero())
	assert.False(t, Filter{CityMode: CityExact}.IsZero())
}

func TestFilter_MatchesRecordsBuiltByHand(t *testing.T) {
	records := []Record{{ID: 1, Name: "ÅSA Berg", City: "Malmö"}, {ID: 2, Name: "Per Lund", City: "Oslo"}}

	assert.Equal(t, []string{"ÅSA Berg"}, names(Apply(records, Filter{Name: "åsa", City: "MALMÖ"})))
}

func TestSort_ToggleAndReverse(t *testing.T) {
	ds, err := Build([]people.User{
		user(1, "Cat", "X", "1990-03-01", "Rome"),
		user(2, "Ada", "X", "1980-03-01", "Oslo"),
		user(3, "Bea", "X", "2000-03-01", "Lima"),
	})
	require.NoError(t, err)

	s := Sort{}.Toggle(ColumnBirthday)
	assert.Equal(t, Sort{Column: ColumnBirthday, Direction: Ascending}, s)
	asc := Derive(ds.Records, Filter{}, s)
	assert.Equal(t, []string{"Ada X", "Cat X", "Bea X"}, names(asc))

	s = s.Toggle(ColumnBirthday)
	assert.Equal(t, Descending, s.Direction)
	desc := Derive(ds.Records, Filter{}, s)
	assert.Equal(t, []string{"Bea X", "Cat X", "Ada X"}, names(desc))

	s = s.Toggle(ColumnCity)
	assert.Equal(t, Sort{Column: ColumnCity, Direction: Ascending}, s)
	assert.Equal(t, []string{"Bea X", "Ada X", "Cat X"}, names(Derive(ds.Records, Filter{}, s)))

	assert.False(t, s.Clear().Active())
	assert.Equal(t, Sort{}, s.Toggle(ColumnNone))
}

func TestSort_StableOnTies(t *testing.T) {
	ds, err := Build([]people.User{
		user(1, "Ann", "One", "1990-01-01", "Same"),
		user(2, "Ben", "Two", "1980-01-01", "Same"),
		user(3, "Cy", "Three", "1970-01-01", "Other"),
		user(4, "Dee", "Four", "1960-01-01", "Same"),
	})
	require.NoError(t, err)

	asc := Derive(ds.Records, Filter{}, Sort{Column: ColumnCity})
	assert.Equal(t, []string{"Cy Three", "Ann One", "Ben Two", "Dee Four"}, names(asc))

	desc := Derive(ds.Records, Filter{}, Sort{Column: ColumnCity, Direction: Descending})
	assert.Equal(t, []string{"Ann One", "Ben Two", "Dee Four", "Cy Three"}, names(desc))
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	ds := sample(t)
	before := append([]Record(nil), ds.Records...)

	out := Derive(ds.Records, Filter{}, Sort{Column: ColumnName, Direction: Descending})
	require.Len(t, out, 3)
	out[0].IsOldest = !out[0].IsOldest

	assert.Equal(t, before, ds.Records)
}

func TestParseColumn(t *testing.T) {
	assert.Equal(t, ColumnName, ParseColumn(" Name "))
	assert.Equal(t, ColumnCity, ParseColumn("city"))
	assert.Equal(t, ColumnBirthday, ParseColumn("BIRTHDAY"))
	assert.Equal(t, ColumnNone, ParseColumn("age"))
	assert.Equal(t, "Birthday", ColumnBirthday.String())
	assert.Equal(t, "", ColumnNone.String())
}

func TestSummarize(t *testing.T) {
	ds := sample(t)
	view := Apply(ds.Records, Filter{City: "A", CityMode: CityExact})
	assert.Equal(t, Summary{Visible: 2, Total: 3, Oldest: 1}, Summarize(ds.Records, view))
}
