package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/tabular"
)

// Canonical column names.
const (
	colPrice     = "price"
	colCPU       = "cpu_score"
	colGPU       = "gpu_score"
	colRAM       = "ram"
	colStorage   = "storage_gb"
	colName      = "name"
	colScreen    = "screen_score"
	colProcessor = "processor"
	colGPUType   = "gpu"
	colDisplay   = "display"
	colDetailURL = "detail_url"
	colBuyURL    = "buy_url"
)

// fallbackPriceColumn is tried only when no alias resolved to the price column.
const fallbackPriceColumn = "Price"

// DefaultRefreshRate is assumed when the display text names no refresh rate.
const DefaultRefreshRate = 60

// columnAliases maps historical source column names onto canonical names.
// Canonical names map onto themselves so already-normalized tables load unchanged.
var columnAliases = map[string]string{
	"Harga_USD": colPrice, "Harga": colPrice, "Price_USD": colPrice, colPrice: colPrice,
	"CPU_Score": colCPU, "CpuScore": colCPU, colCPU: colCPU,
	"GPU_Score": colGPU, "GpuScore": colGPU, colGPU: colGPU,
	"RAM_Clean": colRAM, "RAM": colRAM, colRAM: colRAM,
	"Storage": colStorage, "Storage_GB": colStorage, colStorage: colStorage,
	"Nama_Laptop": colName, "Nama_Produk": colName, "Name": colName, colName: colName,
	"Screen_Score": colScreen, "ScreenScore": colScreen, colScreen: colScreen,
	"Processor": colProcessor, "TipeProcessor": colProcessor, colProcessor: colProcessor,
	"GPU": colGPUType, "TipeGPU": colGPUType, colGPUType: colGPUType,
	"Display": colDisplay, "DetailLayar": colDisplay, colDisplay: colDisplay,
	"Detail_URL": colDetailURL, "LinkPenjelasan": colDetailURL, colDetailURL: colDetailURL,
	"Buy_Link": colBuyURL, "LinkPembelian": colBuyURL, colBuyURL: colBuyURL,
}

// numericColumns must always be present on a Product; missing columns read as zero.
var numericColumns = []string{colPrice, colCPU, colGPU, colRAM, colStorage, colScreen}

var (
	nonNumeric   = regexp.MustCompile(`[^\d.]`)
	refreshRegex = regexp.MustCompile(`(?i)(\d+)\s*hz`)
)

// schema records which source column backs each canonical field.
type schema struct {
	index   map[string]int
	missing []string
}

// resolveSchema applies the alias table to header. When several source columns resolve
// to the same canonical name only the first is kept. Unknown columns keep their own name.
func resolveSchema(header []string) *schema {
	s := &schema{index: make(map[string]int, len(header))}
	for i, h := range header {
		name := h
		if canonical, ok := columnAliases[h]; ok {
			name = canonical
		}
		if _, dup := s.index[name]; dup {
			continue
		}
		s.index[name] = i
	}
	if _, ok := s.index[colPrice]; !ok {
		if i, ok := s.index[fallbackPriceColumn]; ok {
			s.index[colPrice] = i
		}
	}
	for _, c := range numericColumns {
		if _, ok := s.index[c]; !ok {
			s.missing = append(s.missing, c)
		}
	}
	return s
}

func (s *schema) hasPrice() bool {
	_, ok := s.index[colPrice]
	return ok
}

func (s *schema) text(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *schema) number(row []string, col string) float64 {
	return ParseNumber(s.text(row, col))
}

// normalizeRow converts one source row into a Product.
func (s *schema) normalizeRow(row []string) models.Product {
	p := models.Product{
		Name:        s.text(row, colName),
		Price:       s.number(row, colPrice),
		CPUScore:    s.number(row, colCPU),
		GPUScore:    s.number(row, colGPU),
		RAM:         s.number(row, colRAM),
		StorageGB:   s.number(row, colStorage),
		ScreenScore: s.number(row, colScreen),
		Processor:   s.text(row, colProcessor),
		GPU:         s.text(row, colGPUType),
		Display:     s.text(row, colDisplay),
		DetailURL:   s.text(row, colDetailURL),
		BuyURL:      s.text(row, colBuyURL),
	}
	p.RefreshRate = ParseRefreshRate(p.Display)
	p.Brand = DetectBrand(p.Name)
	return p
}

// normalizeTable converts every row of t.
func normalizeTable(s *schema, t *tabular.Table) []models.Product {
	out := make([]models.Product, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, s.normalizeRow(row))
	}
	return out
}

// ParseNumber keeps only digits and '.' from s and parses the rest. Anything
// unparseable, including the empty string, is 0.
func ParseNumber(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseRefreshRate extracts "<n> Hz" from a display description, defaulting to 60.
func ParseRefreshRate(display string) int {
	m := refreshRegex.FindStringSubmatch(display)
	if m == nil {
		return DefaultRefreshRate
	}
	hz, err := strconv.Atoi(m[1])
	if err != nil || hz <= 0 {
		return DefaultRefreshRate
	}
	return hz
}
