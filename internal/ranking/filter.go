package ranking

import (
	"strings"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
)

// Criteria is everything the eligibility filter needs from one query.
type Criteria struct {
	Budget  int64
	Search  string
	Brand   string
	Bypass  bool
	Profile rules.Profile
}

// FilterResult is the eligible set. When Products is empty, EmptyAt names the stage
// that removed the last candidate.
type FilterResult struct {
	Products []models.Product
	EmptyAt  models.EmptyReason
}

// Filter narrows products by budget, name search, brand and profile thresholds, in that
// order. The input slice is not modified; the result is a fresh slice.
func Filter(products []models.Product, c Criteria) FilterResult {
	limit := BudgetLimit(c.Budget)
	out := keep(products, func(p *models.Product) bool { return p.Price <= limit })
	if len(out) == 0 {
		return FilterResult{EmptyAt: models.EmptyReasonBudget}
	}

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		out = keep(out, func(p *models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), needle)
		})
		if len(out) == 0 {
			return FilterResult{EmptyAt: models.EmptyReasonSearch}
		}
	}

	if c.Brand != "" && !strings.EqualFold(c.Brand, models.BrandAll) {
		out = keep(out, func(p *models.Product) bool { return strings.EqualFold(p.Brand, c.Brand) })
		if len(out) == 0 {
			return FilterResult{EmptyAt: models.EmptyReasonBrand}
		}
	}

	if !c.Bypass {
		out = keep(out, func(p *models.Product) bool { return MeetsProfile(*p, c.Profile) })
		if len(out) == 0 {
			return FilterResult{EmptyAt: models.EmptyReasonRequirements}
		}
	}
	return FilterResult{Products: out}
}

// MeetsProfile reports whether p satisfies every minimum of prof.
func MeetsProfile(p models.Product, prof rules.Profile) bool {
	return p.CPUScore >= prof.MinCPU &&
		p.GPUScore >= prof.MinGPU &&
		p.RAM >= prof.MinRAM &&
		p.ScreenScore >= prof.MinScreen &&
		p.RefreshRate >= prof.MinRefreshRate
}

func keep(in []models.Product, pred func(*models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(in))
	for i := range in {
		if pred(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}
