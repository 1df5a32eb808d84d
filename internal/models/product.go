// Package models defines core data structures for products, queries, and recommendation results.
package models

// Product is one normalized catalog row. Numeric fields are never negative.
type Product struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	CPUScore    float64 `json:"cpu_score"`
	GPUScore    float64 `json:"gpu_score"`
	RAM         float64 `json:"ram_gb"`
	StorageGB   float64 `json:"storage_gb"`
	ScreenScore float64 `json:"screen_score"`
	Processor   string  `json:"processor,omitempty"`
	GPU         string  `json:"gpu,omitempty"`
	Display     string  `json:"display,omitempty"`
	RefreshRate int     `json:"refresh_rate_hz"`
	Brand       string  `json:"brand"`
	DetailURL   string  `json:"detail_url,omitempty"`
	BuyURL      string  `json:"buy_url,omitempty"`
}

// Recommendation is a product scored for one query. It is never persisted.
type Recommendation struct {
	ID             string  `json:"id"`
	Product        Product `json:"product"`
	Score          float64 `json:"score"`
	EstimatedPrice float64 `json:"estimated_price"`
	Rationale      string  `json:"rationale"`
	Rank           int     `json:"rank"`
}
