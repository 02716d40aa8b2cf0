package main

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tradepost/internal/dashboard"
	"github.com/Veraticus/tradepost/internal/market"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ dashboard.Fetcher = (*demoMarket)(nil)

func TestDemoMarket(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	m := newDemoMarket(7, 20, now)
	ctx := context.Background()

	roles, err := m.GetAllPatterns(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, roles.Dealer)
	assert.NotEmpty(t, roles.Support)

	series, err := m.GetPriceTrends(ctx, market.TrendQuery{Role: model.RoleSupport})
	require.NoError(t, err)
	assert.Len(t, series, len(roles.Support))
	for _, s := range series {
		for i := 1; i < len(s); i++ {
			assert.Less(t, s[i-1].Timestamp(), s[i].Timestamp())
		}
		for _, p := range s {
			assert.Less(t, p.Timestamp(), now.UnixMilli())
		}
	}

	relic, err := m.GetBraceletPatterns(ctx, market.BraceletQuery{Grade: model.GradeRelic})
	require.NoError(t, err)
	trends, err := m.GetBraceletTrends(ctx, market.BraceletQuery{Grade: model.GradeRelic})
	require.NoError(t, err)
	assert.Len(t, trends, len(relic))
	for _, s := range trends {
		assert.Len(t, s, 20)
	}
}

func TestDemoMarket_Deterministic(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	a := newDemoMarket(3, 10, now)
	b := newDemoMarket(3, 10, now)
	assert.Equal(t, a.series, b.series)
}
