package ranking

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hyperjump/pakar/internal/catalog"
	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
)

// FormatRupiah renders an IDR amount rounded to whole rupiah with thousands separators.
func FormatRupiah(amount float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Rp %d", int64(math.Round(amount)))
}

// Rationale explains why p was recommended under prof. It depends only on its arguments.
func Rationale(p models.Product, prof rules.Profile, bypass bool, score float64) string {
	est := FormatRupiah(EstimatedPrice(p.Price))
	cpu := int64(p.CPUScore)
	gpu := int64(p.GPUScore)
	ram := int64(p.RAM)
	if bypass {
		return fmt.Sprintf("Est: %s | CPU %d, GPU %d, RAM %dGB", est, cpu, gpu, ram)
	}

	var reasons []string
	if prof.MinCPU > 0 {
		reasons = append(reasons, fmt.Sprintf("CPU %d (Min %d)", cpu, int64(prof.MinCPU)))
	} else {
		reasons = append(reasons, fmt.Sprintf("CPU %d", cpu))
	}

	switch {
	case prof.MinGPU > 0:
		reasons = append(reasons, fmt.Sprintf("GPU %d (Min %d)", gpu, int64(prof.MinGPU)))
	case prof.WeightGPU > 0 || gpu > 0:
		reasons = append(reasons, fmt.Sprintf("GPU %d", gpu))
	}

	reasons = append(reasons, fmt.Sprintf("RAM %dGB", ram))

	if prof.WeightScreen > 0 {
		reasons = append(reasons, fmt.Sprintf("Screen %d", int64(p.ScreenScore)))
	}
	if prof.WeightRefreshRate > 0 && p.RefreshRate > catalog.DefaultRefreshRate {
		reasons = append(reasons, fmt.Sprintf("%dHz", p.RefreshRate))
	}

	return fmt.Sprintf("Est: %s | Detail: %s | Score: %.3f", est, strings.Join(reasons, ", "), score)
}
