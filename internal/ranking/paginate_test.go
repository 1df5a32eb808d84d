package ranking

import (
	"testing"

	"github.com/hyperjump/pakar/internal/models"
)

func makeItems(n int) []*models.Recommendation {
	out := make([]*models.Recommendation, n)
	for i := range out {
		out[i] = &models.Recommendation{Rank: i + 1}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		page      int
		size      int
		wantLen   int
		wantPages int
		wantPage  int
		wantFirst int
	}{
		{"first page", 50, 1, 24, 24, 3, 1, 1},
		{"last partial page", 50, 3, 24, 2, 3, 3, 49},
		{"page zero clamps to one", 50, 0, 24, 24, 3, 1, 1},
		{"negative page clamps to one", 50, -4, 24, 24, 3, 1, 1},
		{"beyond end clamps to last", 50, 9, 24, 2, 3, 3, 49},
		{"exact multiple", 48, 2, 24, 24, 2, 2, 25},
		{"empty", 0, 3, 24, 0, 0, 1, 0},
		{"non-positive size uses default", 30, 1, 0, 24, 2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(makeItems(tt.n), tt.page, tt.size)
			if len(p.Items) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(p.Items), tt.wantLen)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tt.wantPage)
			}
			if p.TotalItems != tt.n {
				t.Errorf("TotalItems = %d, want %d", p.TotalItems, tt.n)
			}
			if tt.wantLen > 0 && p.Items[0].Rank != tt.wantFirst {
				t.Errorf("first rank = %d, want %d", p.Items[0].Rank, tt.wantFirst)
			}
		})
	}
}

func TestPaginate_PagesCoverAllItems(t *testing.T) {
	for _, n := range []int{0, 1, 23, 24, 25, 97} {
		for _, size := range []int{1, 5, 24} {
			first := Paginate(makeItems(n), 1, size)
			sum := 0
			for page := 1; page <= first.TotalPages; page++ {
				sum += len(Paginate(makeItems(n), page, size).Items)
			}
			if sum != n {
				t.Errorf("n=%d size=%d: pages sum to %d", n, size, sum)
			}
			if want := (n + size - 1) / size; first.TotalPages != want {
				t.Errorf("n=%d size=%d: TotalPages = %d, want %d", n, size, first.TotalPages, want)
			}
		}
	}
}
