package ranking

import (
	"math"
	"testing"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
)

func TestBudgetLimit(t *testing.T) {
	got := BudgetLimit(100_000_000)
	want := (100_000_000 / 166.9) * 1.1
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("BudgetLimit = %v, want %v", got, want)
	}
	if got < 659_000 || got > 659_100 {
		t.Errorf("BudgetLimit = %v, want about 659,000", got)
	}
}

func TestFilter_BudgetShowAll(t *testing.T) {
	products := []models.Product{
		{Name: "A", Price: 300},
		{Name: "B", Price: 500},
		{Name: "C", Price: 900},
	}
	// 100,000 IDR converts to a limit of about 659 catalog units.
	res := Filter(products, Criteria{Budget: 100_000, Brand: models.BrandAll, Bypass: true})
	if len(res.Products) != 2 {
		t.Fatalf("got %d products, want 2", len(res.Products))
	}
	if res.Products[0].Name != "A" || res.Products[1].Name != "B" {
		t.Errorf("got %v", res.Products)
	}

	res = Filter(products, Criteria{Budget: 100_000_000, Bypass: true})
	if len(res.Products) != 3 {
		t.Errorf("large budget: got %d products, want 3", len(res.Products))
	}
}

func TestFilter_Thresholds(t *testing.T) {
	products := []models.Product{
		{Name: "low", Price: 100, CPUScore: 20000, RAM: 8, RefreshRate: 60},
		{Name: "mid", Price: 100, CPUScore: 20000, RAM: 16, RefreshRate: 60},
		{Name: "high", Price: 100, CPUScore: 20000, RAM: 32, RefreshRate: 60},
	}
	prof := rules.Profile{MinRAM: 16, WeightRAM: 1}
	res := Filter(products, Criteria{Budget: 1_000_000, Profile: prof})
	if len(res.Products) != 2 || res.Products[0].Name != "mid" || res.Products[1].Name != "high" {
		t.Fatalf("got %v", res.Products)
	}
	if m := ComputeMaxima(res.Products); m.RAM != 32 {
		t.Errorf("RAM max = %v, want 32", m.RAM)
	}
	for _, p := range res.Products {
		if !MeetsProfile(p, prof) {
			t.Errorf("%s does not meet profile", p.Name)
		}
	}
}

func TestFilter_BypassIgnoresThresholds(t *testing.T) {
	products := []models.Product{{Name: "weak", Price: 10}}
	prof := rules.Profile{MinCPU: 99999}
	if res := Filter(products, Criteria{Budget: 1_000_000, Profile: prof, Bypass: true}); len(res.Products) != 1 {
		t.Errorf("bypass should keep product, got %v", res)
	}
	if res := Filter(products, Criteria{Budget: 1_000_000, Profile: prof}); res.EmptyAt != models.EmptyReasonRequirements {
		t.Errorf("EmptyAt = %q, want requirements", res.EmptyAt)
	}
}

func TestFilter_Brand(t *testing.T) {
	var products []models.Product
	for i := 0; i < 8; i++ {
		products = append(products, models.Product{Name: "Lenovo", Brand: "LENOVO", Price: 100})
	}
	products = append(products,
		models.Product{Name: "ASUS One", Brand: "ASUS", Price: 100},
		models.Product{Name: "ASUS Two", Brand: "ASUS", Price: 100},
	)
	res := Filter(products, Criteria{Budget: 1_000_000, Brand: "ASUS", Bypass: true})
	if len(res.Products) != 2 {
		t.Errorf("got %d, want 2", len(res.Products))
	}
	res = Filter(products, Criteria{Budget: 1_000_000, Brand: "asus", Bypass: true})
	if len(res.Products) != 2 {
		t.Errorf("case-insensitive brand: got %d, want 2", len(res.Products))
	}
	res = Filter(products, Criteria{Budget: 1_000_000, Brand: "DELL", Bypass: true})
	if res.EmptyAt != models.EmptyReasonBrand {
		t.Errorf("EmptyAt = %q, want brand", res.EmptyAt)
	}
}

func TestFilter_SearchAndStages(t *testing.T) {
	products := []models.Product{
		{Name: "ASUS ROG Strix", Price: 100},
		{Name: "Acer Nitro", Price: 100},
	}
	tests := []struct {
		name     string
		criteria Criteria
		want     int
		wantAt   models.EmptyReason
	}{
		{"search case-insensitive", Criteria{Budget: 1_000_000, Search: "rog", Bypass: true}, 1, ""},
		{"search no match", Criteria{Budget: 1_000_000, Search: "macbook", Bypass: true}, 0, models.EmptyReasonSearch},
		{"budget too low", Criteria{Budget: 1, Search: "rog", Bypass: true}, 0, models.EmptyReasonBudget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Filter(products, tt.criteria)
			if len(res.Products) != tt.want {
				t.Errorf("got %d products, want %d", len(res.Products), tt.want)
			}
			if res.EmptyAt != tt.wantAt {
				t.Errorf("EmptyAt = %q, want %q", res.EmptyAt, tt.wantAt)
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	products := []models.Product{{Name: "A", Price: 900}, {Name: "B", Price: 100}}
	_ = Filter(products, Criteria{Budget: 100_000, Bypass: true})
	if products[0].Name != "A" || products[1].Name != "B" || len(products) != 2 {
		t.Errorf("input modified: %v", products)
	}
}
