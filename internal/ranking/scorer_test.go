package ranking

import (
	"testing"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
)

func TestComputeMaxima_ZeroBecomesOne(t *testing.T) {
	m := ComputeMaxima([]models.Product{{CPUScore: 0, RAM: 8}})
	if m.CPU != 1 || m.GPU != 1 || m.Storage != 1 || m.Screen != 1 {
		t.Errorf("zero maxima should be 1: %+v", m)
	}
	if m.RAM != 8 {
		t.Errorf("RAM max = %v, want 8", m.RAM)
	}
	if empty := ComputeMaxima(nil); empty.CPU != 1 || empty.RefreshRate != 1 {
		t.Errorf("empty set maxima = %+v", empty)
	}
}

func TestScore(t *testing.T) {
	prof := rules.Profile{WeightCPU: 0.5, WeightRAM: 0.4, WeightStorage: 0.1}
	products := []models.Product{
		{CPUScore: 20000, RAM: 16, StorageGB: 512},
		{CPUScore: 10000, RAM: 32, StorageGB: 1024},
	}
	m := ComputeMaxima(products)
	got := Score(products[0], m, prof)
	want := 0.5*1 + 0.4*0.5 + 0.1*0.5
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestScoreAll_Bounds(t *testing.T) {
	_, prof, err := rules.Lookup("GAMING", "ESPORTS")
	if err != nil {
		t.Fatal(err)
	}
	products := []models.Product{
		{Name: "a", Price: 1000, CPUScore: 15000, GPUScore: 9000, RAM: 16, RefreshRate: 144},
		{Name: "b", Price: 1200, CPUScore: 20000, GPUScore: 12000, RAM: 32, RefreshRate: 240},
		{Name: "c", Price: 800, CPUScore: 12000, GPUScore: 8000, RAM: 8, RefreshRate: 120},
	}
	scored := ScoreAll(products, prof, false)
	if len(scored) != 3 {
		t.Fatalf("got %d", len(scored))
	}
	for i, r := range scored {
		if r.Product.Name != products[i].Name {
			t.Errorf("order changed at %d", i)
		}
		if r.Score < 0 || r.Score > prof.TotalWeight()+1e-9 {
			t.Errorf("%s: score %v outside [0, %v]", r.Product.Name, r.Score, prof.TotalWeight())
		}
		if r.EstimatedPrice != products[i].Price*ConversionFactor {
			t.Errorf("%s: estimated price %v", r.Product.Name, r.EstimatedPrice)
		}
		if r.Rationale == "" {
			t.Errorf("%s: empty rationale", r.Product.Name)
		}
	}
	if scored[1].Score <= scored[2].Score {
		t.Errorf("stronger laptop should score higher: %v <= %v", scored[1].Score, scored[2].Score)
	}
}
