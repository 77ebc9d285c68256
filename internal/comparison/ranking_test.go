package comparison

import (
	"testing"

	"cartscout-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func shopsWithTotals(totals ...*float64) []models.ShopComparison {
	shops := make([]models.ShopComparison, len(totals))
	for i, total := range totals {
		shops[i] = models.ShopComparison{
			Shop:       models.Shop{ID: string(rune('A' + i))},
			TotalPrice: total,
		}
	}
	return shops
}

func ptr(v float64) *float64 {
	return &v
}

func TestRankSelectedShopIsCheapest(t *testing.T) {
	shops := shopsWithTotals(ptr(45.50), ptr(38.20), ptr(52.00))

	summary := Rank(shops, 1)
	assert.True(t, summary.IsCheapest)
	assert.False(t, summary.IsMostExpensive)
	assert.InDelta(t, 38.20, summary.CheapestTotal, 0.0001)
	assert.InDelta(t, 52.00, summary.MostExpensiveTotal, 0.0001)
	assert.InDelta(t, 0, summary.SavingsVsCheapest, 0.0001)
	assert.InDelta(t, 13.80, summary.SavingsVsMostExpensive, 0.0001)
}

func TestRankSelectedShopIsMostExpensive(t *testing.T) {
	shops := shopsWithTotals(ptr(45.50), ptr(38.20), ptr(52.00))

	summary := Rank(shops, 2)
	assert.False(t, summary.IsCheapest)
	assert.True(t, summary.IsMostExpensive)
	assert.InDelta(t, 13.80, summary.SavingsVsCheapest, 0.0001)
	assert.InDelta(t, 0, summary.SavingsVsMostExpensive, 0.0001)
}

func TestRankMiddleShop(t *testing.T) {
	shops := shopsWithTotals(ptr(45.50), ptr(38.20), ptr(52.00))

	summary := Rank(shops, 0)
	assert.False(t, summary.IsCheapest)
	assert.False(t, summary.IsMostExpensive)
	assert.InDelta(t, 7.30, summary.SavingsVsCheapest, 0.0001)
	assert.InDelta(t, 6.50, summary.SavingsVsMostExpensive, 0.0001)
}

func TestRankNilTotalsExcluded(t *testing.T) {
	shops := shopsWithTotals(ptr(45.50), nil, ptr(52.00))

	summary := Rank(shops, 0)
	assert.InDelta(t, 45.50, summary.CheapestTotal, 0.0001)
	assert.True(t, summary.IsCheapest)

	// A selected shop without a total gets no badges or savings.
	summary = Rank(shops, 1)
	assert.False(t, summary.IsCheapest)
	assert.False(t, summary.IsMostExpensive)
	assert.InDelta(t, 0, summary.SavingsVsCheapest, 0.0001)
}

func TestRankNoValidTotals(t *testing.T) {
	summary := Rank(shopsWithTotals(nil, nil), 0)
	assert.Equal(t, models.RankSummary{}, summary)

	summary = Rank(nil, 0)
	assert.Equal(t, models.RankSummary{}, summary)
}

func TestRankZeroTotalsNeverBadged(t *testing.T) {
	shops := shopsWithTotals(ptr(0), ptr(0))

	summary := Rank(shops, 0)
	assert.False(t, summary.IsCheapest)
	assert.False(t, summary.IsMostExpensive)
}

func TestRankTiesAllQualify(t *testing.T) {
	shops := shopsWithTotals(ptr(20.00), ptr(20.00), ptr(35.00))

	for _, i := range []int{0, 1} {
		summary := Rank(shops, i)
		assert.True(t, summary.IsCheapest, "shop %d should share the cheapest badge", i)
		assert.False(t, summary.IsMostExpensive)
	}
}

func TestRankSingleShopIsBothExtremes(t *testing.T) {
	summary := Rank(shopsWithTotals(ptr(20.00)), 0)
	assert.True(t, summary.IsCheapest)
	assert.True(t, summary.IsMostExpensive)
}
