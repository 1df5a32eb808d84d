package models

import (
	"testing"
)

func TestRecommendQuery_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		query        *RecommendQuery
		wantBrand    string
		wantSort     SortOption
		wantPageSize int
		wantCategory string
	}{
		{"defaults", &RecommendQuery{Budget: 1, Category: " gaming "}, BrandAll, SortScore, 24, "GAMING"},
		{"keeps explicit brand", &RecommendQuery{Brand: "asus"}, "asus", SortScore, 24, ""},
		{"all is case insensitive", &RecommendQuery{Brand: "all"}, BrandAll, SortScore, 24, ""},
		{"lowercases sort", &RecommendQuery{Sort: "LOWEST_PRICE"}, BrandAll, SortLowestPrice, 24, ""},
		{"caps page size", &RecommendQuery{PageSize: 500}, BrandAll, SortScore, 100, ""},
		{"keeps page size", &RecommendQuery{PageSize: 5}, BrandAll, SortScore, 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.query.Normalize(24, 100)
			if tt.query.Brand != tt.wantBrand {
				t.Errorf("Brand = %q, want %q", tt.query.Brand, tt.wantBrand)
			}
			if tt.query.Sort != tt.wantSort {
				t.Errorf("Sort = %q, want %q", tt.query.Sort, tt.wantSort)
			}
			if tt.query.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.query.PageSize, tt.wantPageSize)
			}
			if tt.query.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", tt.query.Category, tt.wantCategory)
			}
		})
	}
}

func TestRecommendQuery_Key(t *testing.T) {
	a := &RecommendQuery{Budget: 1000, Category: "gaming", SubCategory: "aaa", Search: "ROG"}
	b := &RecommendQuery{Budget: 1000, Category: "GAMING", SubCategory: "AAA", Search: "rog"}
	a.Normalize(24, 100)
	b.Normalize(24, 100)
	if a.Key() != b.Key() {
		t.Errorf("equivalent queries produced different keys: %q vs %q", a.Key(), b.Key())
	}
	b.Page = 2
	if a.Key() == b.Key() {
		t.Error("different pages must produce different keys")
	}
}
