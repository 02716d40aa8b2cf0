package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/Veraticus/tradepost/internal/market"
	"github.com/Veraticus/tradepost/internal/model"
)

// demoMarket serves generated catalogs and random-walk price histories.
type demoMarket struct {
	roles          model.RoleCatalog
	bracelets      map[model.Grade]model.Catalog
	series         model.SeriesSet
	braceletSeries model.SeriesSet
}

var demoAccessories = []struct {
	role    model.Role
	part    model.Part
	level   int
	pattern string
	base    float64
}{
	{model.RoleDealer, model.PartNecklace, 3, "추피 상 + 적주피 상", 480000},
	{model.RoleDealer, model.PartNecklace, 2, "추피 중 + 적주피 하", 95000},
	{model.RoleDealer, model.PartEarring, 3, "공% 상", 210000},
	{model.RoleDealer, model.PartRing, 3, "치적 상 + 치피 중", 260000},
	{model.RoleDealer, model.PartRing, 1, "치피 하", 18000},
	{model.RoleSupport, model.PartNecklace, 3, "아덴 상 + 낙인력 상", 390000},
	{model.RoleSupport, model.PartEarring, 2, "무공% 중", 60000},
	{model.RoleSupport, model.PartRing, 3, "아공강 상 + 아피강 중", 240000},
}

var demoBracelets = []struct {
	stats        string
	fixed, extra int
	base         float64
}{
	{"치명 특화", 2, 3, 150000},
	{"특화 신속", 2, 2, 42000},
	{"치명 신속", 1, 2, 21000},
}

func newDemoMarket(seed uint64, points int, now time.Time) *demoMarket {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	step := 15 * time.Minute
	start := now.Add(-time.Duration(points) * step)

	m := &demoMarket{
		roles:          model.RoleCatalog{Dealer: model.Catalog{}, Support: model.Catalog{}},
		bracelets:      map[model.Grade]model.Catalog{},
		series:         model.SeriesSet{},
		braceletSeries: model.SeriesSet{},
	}

	for _, a := range demoAccessories {
		p := model.AccessoryPattern{
			Grade: model.GradeAncient, Part: a.part, Level: a.level, Pattern: a.pattern,
			BasePrice: a.base, SampleCount: float64(5 + rng.IntN(40)),
			QualityPrices: tiers(a.base),
		}
		key := p.Key()
		if a.role == model.RoleDealer {
			m.roles.Dealer[key] = model.NewAccessoryRecord(p)
		} else {
			m.roles.Support[key] = model.NewAccessoryRecord(p)
		}

		series := make(model.PriceSeries, 0, points)
		for i, price := range walk(rng, a.base, points) {
			// Thin markets skip some snapshots.
			if rng.Float64() < 0.1 {
				continue
			}
			series = append(series, model.NewAccessoryPoint(model.AccessoryPoint{
				Timestamp:     start.Add(time.Duration(i) * step).UnixMilli(),
				QualityPrices: tiers(price),
				SampleCount:   float64(1 + rng.IntN(6)),
				CommonOptionValues: model.OptionValues{
					"깡공": {"상": price * 0.01, "중": price * 0.004},
				},
			}))
		}
		m.series[key] = series
	}

	for _, grade := range model.Grades {
		m.bracelets[grade] = model.Catalog{}
		scale := 1.0
		if grade == model.GradeRelic {
			scale = 0.3
		}
		for _, b := range demoBracelets {
			fixed, extra := b.fixed, b.extra
			key := string(grade) + ":" + b.stats
			m.bracelets[grade][key] = model.NewBraceletRecord(model.BraceletPattern{
				Grade: grade, Type: "팔찌", CombatStats: b.stats,
				FixedOptionCount: &fixed, ExtraOptionCount: &extra,
				CurrentPrice: b.base * scale, SampleCount: float64(3 + rng.IntN(20)),
			})

			series := make(model.PriceSeries, 0, points)
			for i, price := range walk(rng, b.base*scale, points) {
				series = append(series, model.NewBraceletPoint(model.BraceletPoint{
					Timestamp:   start.Add(time.Duration(i) * step).UnixMilli(),
					Price:       price,
					SampleCount: float64(1 + rng.IntN(4)),
				}))
			}
			m.braceletSeries[key] = series
		}
	}

	return m
}

// walk returns n prices drifting around base by up to 2% per step.
func walk(rng *rand.Rand, base float64, n int) []float64 {
	out := make([]float64, n)
	price := base
	for i := range out {
		price *= 1 + (rng.Float64()-0.5)*0.04
		out[i] = float64(int(price/10) * 10)
	}
	return out
}

func tiers(p float64) model.QualityPrices {
	return model.QualityPrices{"60": p * 0.7, "70": p * 0.8, "80": p * 0.9, "90": p}
}

func (m *demoMarket) GetPriceTrends(_ context.Context, q market.TrendQuery) (model.SeriesSet, error) {
	catalog := m.roles.ForRole(q.Role)
	out := make(model.SeriesSet, len(catalog))
	for key := range catalog {
		out[key] = m.series[key]
	}
	return out, nil
}

func (m *demoMarket) GetAllPatterns(context.Context) (model.RoleCatalog, error) {
	return m.roles, nil
}

func (m *demoMarket) GetBraceletTrends(_ context.Context, q market.BraceletQuery) (model.SeriesSet, error) {
	out := model.SeriesSet{}
	for key := range m.bracelets[q.Grade] {
		out[key] = m.braceletSeries[key]
	}
	return out, nil
}

func (m *demoMarket) GetBraceletPatterns(_ context.Context, q market.BraceletQuery) (model.Catalog, error) {
	return m.bracelets[q.Grade], nil
}
