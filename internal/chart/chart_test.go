package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"
)

func braceletSeries(points ...[2]float64) model.PriceSeries {
	s := make(model.PriceSeries, 0, len(points))
	for _, p := range points {
		s = append(s, model.NewBraceletPoint(model.BraceletPoint{Timestamp: int64(p[0]), Price: p[1], SampleCount: 1}))
	}
	return s
}

func accessoryPoint(ts int64, prices model.QualityPrices) model.PricePoint {
	return model.NewAccessoryPoint(model.AccessoryPoint{Timestamp: ts, QualityPrices: prices, SampleCount: 2})
}

func rowSummary(table *AlignedTable) []map[string]float64 {
	out := make([]map[string]float64, 0, len(table.Rows))
	for _, row := range table.Rows {
		m := map[string]float64{"t": float64(row.Timestamp)}
		for k, c := range row.Cells {
			m[k] = c.Value
		}
		out = append(out, m)
	}
	return out
}

func TestAlign_InterleavedSeries(t *testing.T) {
	series := model.SeriesSet{
		"A": braceletSeries([2]float64{100, 50}, [2]float64{200, 60}),
		"B": braceletSeries([2]float64{150, 30}),
	}

	table := Align(series, []string{"A", "B"}, model.DefaultQualityTier)

	assert.Equal(t, []map[string]float64{
		{"t": 100, "A": 50},
		{"t": 150, "B": 30},
		{"t": 200, "A": 60},
	}, rowSummary(table))
	assert.Equal(t, []string{"A", "B"}, table.Keys)
}

func TestAlign_SharedTimestamps(t *testing.T) {
	series := model.SeriesSet{
		"A": braceletSeries([2]float64{300, 1}, [2]float64{100, 2}),
		"B": braceletSeries([2]float64{100, 3}, [2]float64{200, 4}),
	}

	table := Align(series, []string{"B", "A"}, model.DefaultQualityTier)
	require.Len(t, table.Rows, 3)

	for i := 1; i < len(table.Rows); i++ {
		assert.Less(t, table.Rows[i-1].Timestamp, table.Rows[i].Timestamp)
	}
	assert.Equal(t, []string{"B", "A"}, table.Rows[0].Keys, "row keys follow selection order")
}

func TestAlign_ZeroTierIsGap(t *testing.T) {
	series := model.SeriesSet{
		"acc": {
			accessoryPoint(100, model.QualityPrices{"90": 0, "70": 500}),
			accessoryPoint(200, model.QualityPrices{"90": 900}),
			accessoryPoint(300, model.QualityPrices{"60": 100}),
		},
	}

	table := Align(series, []string{"acc"}, model.Quality90)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, int64(200), table.Rows[0].Timestamp)

	_, ok := table.Rows[0].Cell("acc")
	assert.True(t, ok)

	table = Align(series, []string{"acc"}, model.Quality70)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, int64(100), table.Rows[0].Timestamp)

	cell, _ := table.Rows[0].Cell("acc")
	assert.InDelta(t, 500, cell.Value, 0.001)
	assert.InDelta(t, 2, cell.SampleCount, 0.001)
	assert.Equal(t, model.QualityPrices{"90": 0, "70": 500}, cell.QualityPrices)
}

func TestAlign_AbsentKeysAndDuplicates(t *testing.T) {
	series := model.SeriesSet{"A": braceletSeries([2]float64{1, 10})}

	table := Align(series, []string{"missing", "A", "A"}, model.DefaultQualityTier)
	assert.Equal(t, []string{"A"}, table.Keys)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"A"}, table.Rows[0].Keys)

	empty := Align(series, []string{"missing"}, model.DefaultQualityTier)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Keys)

	assert.True(t, Align(nil, nil, model.DefaultQualityTier).Empty())
}

func TestAlign_Deterministic(t *testing.T) {
	series := model.SeriesSet{
		"A": braceletSeries([2]float64{5, 1}, [2]float64{3, 2}, [2]float64{9, 3}),
		"B": braceletSeries([2]float64{3, 4}, [2]float64{7, 5}),
	}
	first := Align(series, []string{"A", "B"}, model.DefaultQualityTier)
	for range 20 {
		assert.Equal(t, first, Align(series, []string{"A", "B"}, model.DefaultQualityTier))
	}
}

func TestMemo(t *testing.T) {
	series := model.SeriesSet{"A": braceletSeries([2]float64{1, 10})}
	var memo Memo

	first := memo.Align(1, series, []string{"A"}, model.Quality90)
	same := memo.Align(1, series, []string{"A"}, model.Quality90)
	assert.Same(t, first, same)

	assert.NotSame(t, first, memo.Align(2, series, []string{"A"}, model.Quality90), "version change recomputes")
	third := memo.Align(2, series, []string{"A"}, model.Quality70)
	assert.NotSame(t, first, third, "tier change recomputes")
	assert.NotSame(t, third, memo.Align(2, series, []string{"A", "B"}, model.Quality70), "selection change recomputes")

	memo.Reset()
	assert.NotSame(t, third, memo.Align(2, series, []string{"A"}, model.Quality70))
}

func tooltipCatalog() model.Catalog {
	fixed, extra := 2, 3
	return model.Catalog{
		"low": model.NewAccessoryRecord(model.AccessoryPattern{
			Grade: model.GradeAncient, Part: model.PartRing, Level: 1, Pattern: "치적 중",
		}),
		"high": model.NewAccessoryRecord(model.AccessoryPattern{
			Grade: model.GradeAncient, Part: model.PartNecklace, Level: 3, Pattern: "추피 상",
		}),
		"br": model.NewBraceletRecord(model.BraceletPattern{
			Grade: model.GradeAncient, Type: "팔찌", CombatStats: "치명",
			FixedOptionCount: &fixed, ExtraOptionCount: &extra,
		}),
	}
}

func TestFormatTooltip_OrderAndSkip(t *testing.T) {
	row := Row{
		Timestamp: 100,
		Keys:      []string{"low", "ghost", "high", "br"},
		Cells: map[string]Cell{
			"low":   {Value: 1000, SampleCount: 3},
			"ghost": {Value: 99999},
			"high":  {Value: 123456, SampleCount: 1.5},
			"br":    {Value: 5000, Kind: model.KindBracelet},
		},
	}

	blocks := FormatTooltip(row, tooltipCatalog())
	require.Len(t, blocks, 3, "keys absent from the catalog are skipped")

	assert.Equal(t, "high", blocks[0].Key)
	assert.Equal(t, "br", blocks[1].Key)
	assert.Equal(t, "low", blocks[2].Key)
	for i := 1; i < len(blocks); i++ {
		assert.GreaterOrEqual(t, blocks[i-1].Value, blocks[i].Value)
	}

	assert.Equal(t, "고대 목걸이 3연마 (추피 상)", blocks[0].Label)
	assert.Equal(t, "123,456골드", blocks[0].Price)
	assert.Equal(t, "고정 2개, 부여 3개", blocks[1].Detail)
	assert.Empty(t, blocks[2].Detail)
}

func TestFormatTooltip_TiesKeepColumnOrder(t *testing.T) {
	row := Row{
		Keys: []string{"low", "high"},
		Cells: map[string]Cell{
			"low":  {Value: 10},
			"high": {Value: 10},
		},
	}
	blocks := FormatTooltip(row, tooltipCatalog())
	require.Len(t, blocks, 2)
	assert.Equal(t, "low", blocks[0].Key)
	assert.Equal(t, "high", blocks[1].Key)
}

func TestFormatTooltip_Options(t *testing.T) {
	row := Row{
		Keys: []string{"high"},
		Cells: map[string]Cell{
			"high": {Value: 10, OptionValues: model.OptionValues{
				"힘": {"하": 100, "상": 900, "중": 400},
				"공격력": {"상": 2500},
			}},
		},
	}

	blocks := FormatTooltip(row, tooltipCatalog())
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Options, 2)
	assert.Equal(t, "공격력", blocks[0].Options[0].Name)
	assert.Equal(t, "힘", blocks[0].Options[1].Name)
	assert.Equal(t, []OptionDelta{{Value: "상", Delta: 900}, {Value: "중", Delta: 400}, {Value: "하", Delta: 100}},
		blocks[0].Options[1].Deltas)

	out := RenderTooltip(0, blocks, NewPalette([]string{"high"}))
	assert.Contains(t, out, "부가 옵션 가치:")
	assert.Contains(t, out, "상: +2,500골드")
	assert.Contains(t, out, "가격: 10골드")
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "0골드", FormatGold(0))
	assert.Equal(t, "1,235골드", FormatGold(1234.6))
	assert.Equal(t, "1.5", FormatCount(1.5))
	assert.Equal(t, "12", FormatCount(12))
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "#8884d8", ColorAt(0))
	assert.Equal(t, "#8884d8", ColorAt(8), "palette cycles")
	assert.Equal(t, "#f95d6a", ColorAt(7))

	p := NewPalette([]string{"a", "b"})
	assert.Equal(t, "#82ca9d", p.Color("b"))
	assert.Equal(t, Colors[0], p.Color("zzz"))
}

func TestSparkline(t *testing.T) {
	table := Align(model.SeriesSet{
		"A": braceletSeries([2]float64{1, 10}, [2]float64{3, 20}),
		"B": braceletSeries([2]float64{2, 5}),
	}, []string{"A", "B"}, model.DefaultQualityTier)

	assert.Equal(t, "▁ █", Sparkline(table, "A"))
	assert.Equal(t, " ▁ ", Sparkline(table, "B"))
	assert.Empty(t, Sparkline(&AlignedTable{}, "A"))
}

func sampleTable() *AlignedTable {
	return Align(model.SeriesSet{
		"A": braceletSeries([2]float64{100, 50}, [2]float64{200, 60}),
		"B": braceletSeries([2]float64{150, 30}),
	}, []string{"A", "B"}, model.DefaultQualityTier)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(), nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "timestamp,A,B", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",50,"))
	assert.True(t, strings.HasSuffix(lines[2], ",,30"))

	assert.ErrorIs(t, WriteCSV(&buf, &AlignedTable{}, nil), common.ErrEmptySelection)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable(), tooltipCatalog()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"timestamp", "A", "B"}, rows[0])
	assert.Equal(t, "50", rows[1][1])
	assert.Equal(t, "30", rows[2][2])
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, sampleTable(), tooltipCatalog(), RenderOptions{Title: "가격 추이"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, RenderPNG(&buf, &AlignedTable{}, nil, RenderOptions{}), common.ErrEmptySelection)
}

func TestLineSeries_ColorsFollowSelection(t *testing.T) {
	series := model.SeriesSet{"B": braceletSeries([2]float64{1, 10}, [2]float64{2, 12})}
	selection := []string{"missing", "B"}
	table := Align(series, selection, model.DefaultQualityTier)
	require.Equal(t, []string{"B"}, table.Keys)

	lines := lineSeries(table, nil, selection)
	require.Len(t, lines, 1)
	ts, ok := lines[0].(gochart.TimeSeries)
	require.True(t, ok)
	assert.Equal(t, "B", ts.Name)
	assert.Equal(t, drawing.ColorFromHex(strings.TrimPrefix(ColorAt(1), "#")), ts.Style.StrokeColor,
		"second selected key keeps the second colour")

	ts = lineSeries(table, nil, nil)[0].(gochart.TimeSeries)
	assert.Equal(t, drawing.ColorFromHex(strings.TrimPrefix(ColorAt(0), "#")), ts.Style.StrokeColor)
}
