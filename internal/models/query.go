package models

import (
	"fmt"
	"strings"
)

// SortOption selects the ordering of a ranked result list.
type SortOption string

const (
	// SortScore orders by fitness score, highest first.
	SortScore SortOption = "score"
	// SortLowestPrice orders by estimated price, cheapest first.
	SortLowestPrice SortOption = "lowest_price"
	// SortHighestPrice orders by estimated price, most expensive first.
	SortHighestPrice SortOption = "highest_price"
	// SortBestValue orders by score per unit of estimated price, highest first.
	SortBestValue SortOption = "best_value"
)

// BrandAll is the brand filter value that matches every brand.
const BrandAll = "ALL"

// RecommendQuery is a recommendation request from the web form or CLI.
type RecommendQuery struct {
	Budget      int64      `json:"budget" validate:"gt=0"`
	Category    string     `json:"category" validate:"required"`
	SubCategory string     `json:"sub_category,omitempty"`
	Search      string     `json:"search,omitempty" validate:"max=100"`
	Brand       string     `json:"brand,omitempty" validate:"max=50"`
	Sort        SortOption `json:"sort,omitempty" validate:"omitempty,oneof=score lowest_price highest_price best_value"`
	Page        int        `json:"page,omitempty"`
	PageSize    int        `json:"page_size,omitempty" validate:"gte=0"`
}

// Normalize trims text fields and fills defaults. Page is left as given; out of range
// pages are clamped during pagination. PageSize falls back to defaultPageSize when unset
// and is capped at maxPageSize.
func (q *RecommendQuery) Normalize(defaultPageSize, maxPageSize int) {
	q.Category = strings.ToUpper(strings.TrimSpace(q.Category))
	q.SubCategory = strings.ToUpper(strings.TrimSpace(q.SubCategory))
	q.Search = strings.TrimSpace(q.Search)
	q.Brand = strings.TrimSpace(q.Brand)
	if q.Brand == "" || strings.EqualFold(q.Brand, BrandAll) {
		q.Brand = BrandAll
	}
	if q.Sort == "" {
		q.Sort = SortScore
	}
	q.Sort = SortOption(strings.ToLower(string(q.Sort)))
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if maxPageSize > 0 && q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// Key returns a string identifying the normalized query, used for result caching.
func (q *RecommendQuery) Key() string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%d|%d",
		q.Budget, q.Category, q.SubCategory, strings.ToLower(q.Search), strings.ToUpper(q.Brand), q.Sort, q.Page, q.PageSize)
}
