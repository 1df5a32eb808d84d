// Package ranking filters catalog products against a query and rule profile, scores the
// survivors with Simple Additive Weighting, and sorts and pages the result.
package ranking

// ConversionFactor converts a catalog price into the buyer's currency (IDR).
const ConversionFactor = 166.9

// BudgetTolerance lets products up to 10% above the converted budget through.
const BudgetTolerance = 1.1

// BudgetLimit returns the highest catalog price accepted for a budget in IDR.
func BudgetLimit(budget int64) float64 {
	return (float64(budget) / ConversionFactor) * BudgetTolerance
}

// EstimatedPrice converts a catalog price into IDR.
func EstimatedPrice(price float64) float64 {
	return price * ConversionFactor
}
