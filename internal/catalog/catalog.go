// Package catalog filters and orders pattern catalogs for the list panels.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
)

// All is the wire value meaning "any" for a filter field.
const All = "all"

// SortKey selects the ordering of the filtered list.
type SortKey string

// Sort keys. Both order descending.
const (
	SortPrice   SortKey = "price"
	SortSamples SortKey = "samples"
)

// ParseSortKey maps a string to a SortKey. Unknown values fall back to price.
func ParseSortKey(s string) SortKey {
	if SortKey(strings.ToLower(s)) == SortSamples {
		return SortSamples
	}
	return SortPrice
}

// Filter holds optional predicates. A nil or empty field matches everything.
type Filter struct {
	FixedCount *int
	ExtraCount *int
	Level      *int
	Grade      model.Grade
	Part       model.Part
	CombatStat string
}

// Entry is one row of the filtered list.
type Entry struct {
	Record model.PatternRecord
	Key    string
}

// Matches reports whether rec passes every set predicate.
func (f Filter) Matches(rec model.PatternRecord) bool {
	if f.Grade != "" && rec.Grade() != f.Grade {
		return false
	}
	if f.Part != "" && rec.PartOrType() != string(f.Part) {
		return false
	}
	if f.Level != nil && rec.Level() != *f.Level {
		return false
	}
	if f.FixedCount != nil {
		n, ok := rec.FixedOptionCount()
		if !ok || n != *f.FixedCount {
			return false
		}
	}
	if f.ExtraCount != nil {
		n, ok := rec.ExtraOptionCount()
		if !ok || n != *f.ExtraCount {
			return false
		}
	}
	if f.CombatStat != "" && !strings.Contains(rec.CombatStats(), f.CombatStat) {
		return false
	}
	return true
}

// FilterAndSort returns the entries of c matching f, ordered by sortKey.
// Ties keep lexicographic key order so the result is deterministic.
func FilterAndSort(c model.Catalog, f Filter, sortKey SortKey) []Entry {
	if len(c) == 0 {
		return []Entry{}
	}

	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		rec := c[k]
		if f.Matches(rec) {
			entries = append(entries, Entry{Key: k, Record: rec})
		}
	}

	value := func(e Entry) float64 { return e.Record.Price() }
	if sortKey == SortSamples {
		value = func(e Entry) float64 { return e.Record.SampleCount() }
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return value(entries[i]) > value(entries[j])
	})

	return entries
}

// ParseCount parses an optional count filter. "" and "all" mean any.
func ParseCount(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, All) {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: count %q", common.ErrInvalidArgument, s)
	}
	return &n, nil
}

// ParseGrade parses an optional grade filter.
func ParseGrade(s string) (model.Grade, error) {
	if s == "" || strings.EqualFold(s, All) {
		return "", nil
	}
	for _, g := range model.Grades {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: grade %q", common.ErrInvalidArgument, s)
}

// ParsePart parses an optional accessory part filter.
func ParsePart(s string) (model.Part, error) {
	if s == "" || strings.EqualFold(s, All) {
		return "", nil
	}
	for _, p := range model.Parts {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: part %q", common.ErrInvalidArgument, s)
}

// ParseStat parses an optional combat-stat filter.
func ParseStat(s string) (string, error) {
	if s == "" || strings.EqualFold(s, All) {
		return "", nil
	}
	for _, stat := range CombatStats {
		if stat == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: combat stat %q", common.ErrInvalidArgument, s)
}

// FilterArgs are the string forms of a Filter as they arrive from flags or the UI.
type FilterArgs struct {
	Grade, Part, Level, Fixed, Extra, Stat string
}

// ParseFilter builds a Filter from strings.
func ParseFilter(a FilterArgs) (Filter, error) {
	var f Filter
	var err error

	if f.Grade, err = ParseGrade(a.Grade); err != nil {
		return Filter{}, err
	}
	if f.Part, err = ParsePart(a.Part); err != nil {
		return Filter{}, err
	}
	if f.Level, err = ParseCount(a.Level); err != nil {
		return Filter{}, err
	}
	if f.FixedCount, err = ParseCount(a.Fixed); err != nil {
		return Filter{}, err
	}
	if f.ExtraCount, err = ParseCount(a.Extra); err != nil {
		return Filter{}, err
	}
	if f.CombatStat, err = ParseStat(a.Stat); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// CombatStats are the bracelet combat stats offered by the stat selector.
var CombatStats = []string{"특화", "치명", "신속"}

// FixedCountOptions are the fixed option counts offered by the bracelet selector.
var FixedCountOptions = []int{1, 2}

// ExtraCountOptions returns the extra option counts offered for a grade.
func ExtraCountOptions(grade model.Grade) []int {
	switch grade {
	case model.GradeAncient:
		return []int{2, 3}
	case model.GradeRelic:
		return []int{1, 2}
	default:
		return nil
	}
}
