package ranking

import (
	"github.com/hyperjump/pakar/internal/catalog"
	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
)

// Maxima holds the largest value of each scored attribute across one eligible set.
// A zero maximum is stored as 1 so normalization never divides by zero.
type Maxima struct {
	CPU         float64
	GPU         float64
	RAM         float64
	Storage     float64
	Screen      float64
	RefreshRate float64
}

// ComputeMaxima scans products for per-attribute maxima.
func ComputeMaxima(products []models.Product) Maxima {
	var m Maxima
	for _, p := range products {
		m.CPU = max(m.CPU, p.CPUScore)
		m.GPU = max(m.GPU, p.GPUScore)
		m.RAM = max(m.RAM, p.RAM)
		m.Storage = max(m.Storage, p.StorageGB)
		m.Screen = max(m.Screen, p.ScreenScore)
		m.RefreshRate = max(m.RefreshRate, float64(p.RefreshRate))
	}
	m.CPU = orOne(m.CPU)
	m.GPU = orOne(m.GPU)
	m.RAM = orOne(m.RAM)
	m.Storage = orOne(m.Storage)
	m.Screen = orOne(m.Screen)
	m.RefreshRate = orOne(m.RefreshRate)
	return m
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Score computes the SAW fitness of p: the sum over attributes of (value / max) * weight.
// Scores are only comparable within the set the maxima were computed from.
func Score(p models.Product, m Maxima, prof rules.Profile) float64 {
	return (p.CPUScore/m.CPU)*prof.WeightCPU +
		(p.GPUScore/m.GPU)*prof.WeightGPU +
		(p.RAM/m.RAM)*prof.WeightRAM +
		(p.StorageGB/m.Storage)*prof.WeightStorage +
		(p.ScreenScore/m.Screen)*prof.WeightScreen +
		(float64(p.RefreshRate)/m.RefreshRate)*prof.WeightRefreshRate
}

// ScoreAll scores every product of an eligible set and attaches its rationale.
// The returned slice preserves the input order.
func ScoreAll(products []models.Product, prof rules.Profile, bypass bool) []*models.Recommendation {
	m := ComputeMaxima(products)
	out := make([]*models.Recommendation, len(products))
	for i, p := range products {
		score := Score(p, m, prof)
		out[i] = &models.Recommendation{
			ID:             catalog.ProductID(p),
			Product:        p,
			Score:          score,
			EstimatedPrice: EstimatedPrice(p.Price),
			Rationale:      Rationale(p, prof, bypass, score),
		}
	}
	return out
}
