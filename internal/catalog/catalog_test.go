package catalog

import (
	"errors"
	"testing"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func bracelet(grade model.Grade, combat string, fixed, extra int, price, samples float64) model.PatternRecord {
	return model.NewBraceletRecord(model.BraceletPattern{
		Grade:            grade,
		Type:             "팔찌",
		CombatStats:      combat,
		FixedOptionCount: intPtr(fixed),
		ExtraOptionCount: intPtr(extra),
		CurrentPrice:     price,
		SampleCount:      samples,
	})
}

func keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestFilterAndSort_GradeFilter(t *testing.T) {
	c := model.Catalog{
		"A": bracelet(model.GradeAncient, "치명", 2, 2, 100, 1),
		"B": bracelet(model.GradeRelic, "치명", 2, 2, 200, 1),
	}

	got := FilterAndSort(c, Filter{Grade: model.GradeAncient}, SortPrice)
	assert.Equal(t, []string{"A"}, keys(got))
}

func TestFilterAndSort_Predicates(t *testing.T) {
	c := model.Catalog{
		"a": bracelet(model.GradeAncient, "치명 특화", 2, 3, 900, 4),
		"b": bracelet(model.GradeAncient, "신속", 1, 3, 800, 9),
		"c": bracelet(model.GradeAncient, "특화", 2, 2, 700, 2),
		"d": bracelet(model.GradeRelic, "특화", 2, 3, 1000, 1),
	}

	tests := []struct {
		name   string
		filter Filter
		sort   SortKey
		want   []string
	}{
		{name: "no filter by price", filter: Filter{}, sort: SortPrice, want: []string{"d", "a", "b", "c"}},
		{name: "no filter by samples", filter: Filter{}, sort: SortSamples, want: []string{"b", "a", "c", "d"}},
		{name: "fixed count", filter: Filter{FixedCount: intPtr(2)}, sort: SortPrice, want: []string{"d", "a", "c"}},
		{name: "extra count", filter: Filter{ExtraCount: intPtr(3), Grade: model.GradeAncient}, sort: SortPrice, want: []string{"a", "b"}},
		{name: "combat stat membership", filter: Filter{CombatStat: "특화"}, sort: SortPrice, want: []string{"d", "a", "c"}},
		{name: "nothing matches", filter: Filter{CombatStat: "제압"}, sort: SortPrice, want: []string{}},
		{name: "unknown sort falls back to price", filter: Filter{}, sort: SortKey("bogus"), want: []string{"d", "a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(FilterAndSort(c, tt.filter, tt.sort)))
		})
	}
}

func TestFilterAndSort_StableTies(t *testing.T) {
	c := model.Catalog{
		"z": bracelet(model.GradeAncient, "치명", 2, 2, 100, 5),
		"m": bracelet(model.GradeAncient, "치명", 2, 2, 300, 5),
		"a": bracelet(model.GradeAncient, "치명", 2, 2, 200, 5),
	}

	first := keys(FilterAndSort(c, Filter{}, SortSamples))
	assert.Equal(t, []string{"a", "m", "z"}, first, "equal sample counts keep key order")

	for range 20 {
		assert.Equal(t, first, keys(FilterAndSort(c, Filter{}, SortSamples)))
	}
}

func TestFilterAndSort_Accessory(t *testing.T) {
	acc := func(part model.Part, level int, base float64) model.PatternRecord {
		return model.NewAccessoryRecord(model.AccessoryPattern{
			Grade: model.GradeAncient, Part: part, Level: level, Pattern: "p", BasePrice: base,
		})
	}
	c := model.Catalog{
		"n1": acc(model.PartNecklace, 1, 500),
		"n3": acc(model.PartNecklace, 3, 900),
		"r3": acc(model.PartRing, 3, 700),
	}

	got := FilterAndSort(c, Filter{Part: model.PartNecklace}, SortPrice)
	assert.Equal(t, []string{"n3", "n1"}, keys(got))

	got = FilterAndSort(c, Filter{Level: intPtr(3)}, SortPrice)
	assert.Equal(t, []string{"n3", "r3"}, keys(got))

	got = FilterAndSort(c, Filter{FixedCount: intPtr(1)}, SortPrice)
	assert.Empty(t, got, "accessories have no fixed count")
}

func TestFilterAndSort_Empty(t *testing.T) {
	assert.Empty(t, FilterAndSort(nil, Filter{}, SortPrice))
	assert.NotNil(t, FilterAndSort(model.Catalog{}, Filter{}, SortPrice))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(FilterArgs{Grade: "고대", Fixed: "all", Extra: "3", Stat: "치명", Level: ""})
	require.NoError(t, err)
	assert.Equal(t, model.GradeAncient, f.Grade)
	assert.Nil(t, f.FixedCount)
	require.NotNil(t, f.ExtraCount)
	assert.Equal(t, 3, *f.ExtraCount)
	assert.Nil(t, f.Level)
	assert.Equal(t, "치명", f.CombatStat)

	_, err = ParseFilter(FilterArgs{Grade: "전설"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidArgument))

	_, err = ParseFilter(FilterArgs{Extra: "two"})
	require.Error(t, err)

	_, err = ParseFilter(FilterArgs{Part: "팔찌"})
	require.Error(t, err)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortSamples, ParseSortKey("samples"))
	assert.Equal(t, SortPrice, ParseSortKey("price"))
	assert.Equal(t, SortPrice, ParseSortKey(""))
}

func TestExtraCountOptions(t *testing.T) {
	assert.Equal(t, []int{2, 3}, ExtraCountOptions(model.GradeAncient))
	assert.Equal(t, []int{1, 2}, ExtraCountOptions(model.GradeRelic))
	assert.Nil(t, ExtraCountOptions(""))
}
