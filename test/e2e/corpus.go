// Package e2e provides end-to-end tests over a generated laptop catalog and many queries.
package e2e

import (
	"fmt"

	"github.com/hyperjump/pakar/internal/models"
)

// Header is the source header of the generated catalog, using the historical column names.
var Header = []string{
	"Nama_Laptop", "Harga_USD", "CPU_Score", "GPU_Score", "RAM_Clean",
	"Storage_GB", "Screen_Score", "TipeProcessor", "TipeGPU", "DetailLayar", "LinkPembelian",
}

// tier is one product line; every brand ships every tier.
type tier struct {
	line    string
	price   int
	cpu     int
	gpu     int
	ram     int
	storage int
	screen  int
	proc    string
	gpuName string
	display string
}

var tiers = []tier{
	{"Air 14", 30000, 4000, 800, 8, 256, 55, "Core i3-1215U", "Intel UHD", "14 inch IPS"},
	{"Pro 15", 50000, 10000, 2000, 16, 512, 65, "Core i5-1335U", "Iris Xe", "15.6 inch IPS"},
	{"Creator 16", 110000, 16000, 9000, 32, 1024, 85, "Core i7-13700H", "RTX 4050", "16 inch OLED 120Hz"},
	{"Gamer 15", 80000, 14000, 10000, 16, 512, 60, "Ryzen 7 7735HS", "RTX 4060", "15.6 inch 165Hz"},
	{"Titan 17", 180000, 22000, 20000, 32, 2048, 80, "Core i9-13980HX", "RTX 4090", "17.3 inch 240Hz"},
}

// CorpusBrands are the brands present in the generated catalog.
var CorpusBrands = []string{"ASUS", "ACER", "LENOVO", "HP", "DELL", "MSI", "APPLE", "SAMSUNG", "AXIOO", "RAZER"}

// QueryTestCase is a query with the outcome it must produce on the corpus.
type QueryTestCase struct {
	Description string
	Query       models.RecommendQuery
	WantTotal   int
	WantEmpty   models.EmptyReason
	// WantAdvisory requires a non-empty advisory.
	WantAdvisory bool
	// WantNames must all appear on the returned page.
	WantNames []string
}

// Corpus holds catalog rows and query test cases for E2E tests.
type Corpus struct {
	// Rows includes Header as its first row.
	Rows         [][]string
	TestCases    []QueryTestCase
	TotalLaptops int
	TotalQueries int
}

// BuildCorpus returns a catalog of 100 laptops (ten brands, five tiers, two generations)
// and query test cases whose expected totals follow from the tier specs.
func BuildCorpus() *Corpus {
	rows := buildRows(100)
	cases := buildQueryTestCases()
	return &Corpus{
		Rows:         rows,
		TestCases:    cases,
		TotalLaptops: len(rows) - 1,
		TotalQueries: len(cases),
	}
}

// LaptopName is the product name of brand's tier t in generation gen.
func LaptopName(brand string, t int, gen int) string {
	return fmt.Sprintf("%s %s Gen%d", brand, tiers[t].line, gen)
}

func buildRows(n int) [][]string {
	rows := make([][]string, 0, n+1)
	rows = append(rows, append([]string(nil), Header...))
	for i := 0; i < n; i++ {
		brand := CorpusBrands[i%len(CorpusBrands)]
		ti := (i / len(CorpusBrands)) % len(tiers)
		gen := i/(len(CorpusBrands)*len(tiers)) + 1
		t := tiers[ti]
		name := LaptopName(brand, ti, gen)
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", t.price+(i%7)*100),
			fmt.Sprintf("%d", t.cpu+gen*100),
			fmt.Sprintf("%d", t.gpu+gen*50),
			fmt.Sprintf("%d GB", t.ram),
			fmt.Sprintf("%d", t.storage),
			fmt.Sprintf("%d", t.screen),
			t.proc,
			t.gpuName,
			t.display,
			fmt.Sprintf("https://shop.example.com/p/%d", i),
		})
	}
	return rows
}

// Tier indexes into tiers.
const (
	tierAir = iota
	tierPro
	tierCreator
	tierGamer
	tierTitan
)

func buildQueryTestCases() []QueryTestCase {
	const big = 100_000_000
	return []QueryTestCase{
		{
			Description: "show all returns the whole catalog",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL"},
			WantTotal:   100,
		},
		{
			Description: "AAA gaming keeps only the flagship tier",
			Query:       models.RecommendQuery{Budget: big, Category: "GAMING", SubCategory: "AAA"},
			WantTotal:   20,
			WantNames:   []string{LaptopName("ASUS", tierTitan, 2)},
		},
		{
			Description: "esports needs a high refresh display",
			Query:       models.RecommendQuery{Budget: big, Category: "GAMING", SubCategory: "ESPORTS"},
			WantTotal:   60,
		},
		{
			Description: "esports on a mid budget leaves the gaming tier",
			Query:       models.RecommendQuery{Budget: 15_000_000, Category: "GAMING", SubCategory: "ESPORTS", PageSize: 50},
			WantTotal:   20,
			WantNames:   []string{LaptopName("MSI", tierGamer, 1), LaptopName("LENOVO", tierGamer, 2)},
		},
		{
			Description: "photo editing needs a good screen",
			Query:       models.RecommendQuery{Budget: big, Category: "DESIGN", SubCategory: "PHOTO"},
			WantTotal:   40,
		},
		{
			Description: "data science needs a discrete GPU",
			Query:       models.RecommendQuery{Budget: big, Category: "PROGRAMMING", SubCategory: "DATA_SCIENCE"},
			WantTotal:   60,
		},
		{
			Description: "office student on an entry budget",
			Query:       models.RecommendQuery{Budget: 6_000_000, Category: "OFFICE", SubCategory: "STUDENT", PageSize: 50},
			WantTotal:   20,
			WantNames:   []string{LaptopName("AXIOO", tierAir, 1)},
		},
		{
			Description: "brand filter",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Brand: "msi"},
			WantTotal:   10,
		},
		{
			Description: "name search with brand",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Search: "titan", Brand: "ASUS"},
			WantTotal:   2,
			WantNames:   []string{LaptopName("ASUS", tierTitan, 1), LaptopName("ASUS", tierTitan, 2)},
		},
		{
			Description: "nothing within budget",
			Query:       models.RecommendQuery{Budget: 1_000_000, Category: "SHOW_ALL"},
			WantEmpty:   models.EmptyReasonBudget,
		},
		{
			Description: "search matches nothing",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Search: "chromebook"},
			WantEmpty:   models.EmptyReasonSearch,
		},
		{
			Description: "brand absent from catalog",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Brand: "XIAOMI"},
			WantEmpty:   models.EmptyReasonBrand,
		},
		{
			Description:  "low gaming budget is advised and fails requirements",
			Query:        models.RecommendQuery{Budget: 5_000_000, Category: "GAMING", SubCategory: "ESPORTS"},
			WantEmpty:    models.EmptyReasonRequirements,
			WantAdvisory: true,
		},
		{
			Description: "cheapest first",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Sort: models.SortLowestPrice, PageSize: 1},
			WantTotal:   100,
			WantNames:   []string{LaptopName("ASUS", tierAir, 1)},
		},
		{
			Description: "best value across the catalog",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Sort: models.SortBestValue},
			WantTotal:   100,
		},
		{
			Description: "last page is partial",
			Query:       models.RecommendQuery{Budget: big, Category: "SHOW_ALL", Page: 5, PageSize: 24},
			WantTotal:   100,
		},
	}
}
