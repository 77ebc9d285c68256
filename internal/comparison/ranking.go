package comparison

import (
	"cartscout-backend/internal/models"
)

// Rank computes how the shop at currentIndex compares against the whole
// comparison set. Shops without a total (the upstream omits totals it could
// not price) are excluded from the extremes. Rank position is the shop's
// index in the server-provided ordering; ties all qualify for the cheapest
// and most expensive badges independently.
func Rank(shops []models.ShopComparison, currentIndex int) models.RankSummary {
	var summary models.RankSummary

	first := true
	for _, shop := range shops {
		if shop.TotalPrice == nil {
			continue
		}
		total := *shop.TotalPrice
		if first {
			summary.CheapestTotal = total
			summary.MostExpensiveTotal = total
			first = false
			continue
		}
		if total < summary.CheapestTotal {
			summary.CheapestTotal = total
		}
		if total > summary.MostExpensiveTotal {
			summary.MostExpensiveTotal = total
		}
	}
	if first {
		// No shop carries a valid total.
		return summary
	}

	if currentIndex < 0 || currentIndex >= len(shops) || shops[currentIndex].TotalPrice == nil {
		return summary
	}
	current := *shops[currentIndex].TotalPrice

	// The strictly-positive guard keeps an empty or all-zero comparison from
	// wearing a "cheapest" badge.
	summary.IsCheapest = current == summary.CheapestTotal && current > 0
	summary.IsMostExpensive = current == summary.MostExpensiveTotal && current > 0
	summary.SavingsVsCheapest = current - summary.CheapestTotal
	summary.SavingsVsMostExpensive = summary.MostExpensiveTotal - current

	return summary
}
