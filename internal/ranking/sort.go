package ranking

import (
	"sort"

	"github.com/hyperjump/pakar/internal/models"
)

// BestValue is score per rupiah. Products without a price have no value and sort last.
func BestValue(r *models.Recommendation) float64 {
	if r.EstimatedPrice <= 0 {
		return 0
	}
	return r.Score / r.EstimatedPrice
}

// Sort orders items in place. Ties keep their prior relative order. Unknown options sort
// by score.
func Sort(items []*models.Recommendation, opt models.SortOption) {
	var less func(a, b *models.Recommendation) bool
	switch opt {
	case models.SortLowestPrice:
		less = func(a, b *models.Recommendation) bool { return a.EstimatedPrice < b.EstimatedPrice }
	case models.SortHighestPrice:
		less = func(a, b *models.Recommendation) bool { return a.EstimatedPrice > b.EstimatedPrice }
	case models.SortBestValue:
		less = func(a, b *models.Recommendation) bool { return BestValue(a) > BestValue(b) }
	default:
		less = func(a, b *models.Recommendation) bool { return a.Score > b.Score }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	for i, r := range items {
		r.Rank = i + 1
	}
}
