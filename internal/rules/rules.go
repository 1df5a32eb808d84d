// Package rules holds the static rule base: which hardware thresholds and scoring weights
// apply to each use-case category and sub-category.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a top-level use case.
type Category string

// SubCategory refines a Category.
type SubCategory string

const (
	CategoryOffice      Category = "OFFICE"
	CategoryProgramming Category = "PROGRAMMING"
	CategoryDesign      Category = "DESIGN"
	CategoryGaming      Category = "GAMING"
	// CategoryShowAll skips sub-category selection and threshold filtering.
	CategoryShowAll Category = "SHOW_ALL"
)

const (
	SubStudent     SubCategory = "STUDENT"
	SubAdmin       SubCategory = "ADMIN"
	SubBusiness    SubCategory = "BUSINESS"
	SubWeb         SubCategory = "WEB"
	SubMobile      SubCategory = "MOBILE"
	SubDataScience SubCategory = "DATA_SCIENCE"
	SubPhoto       SubCategory = "PHOTO"
	SubVideo       SubCategory = "VIDEO"
	SubRender3D    SubCategory = "RENDER_3D"
	SubEsports     SubCategory = "ESPORTS"
	SubAAA         SubCategory = "AAA"
)

var (
	// ErrUnknownCategory is returned when the category is not in the rule base.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownSubCategory is returned when the sub-category does not belong to the category.
	ErrUnknownSubCategory = errors.New("unknown sub-category")
	// ErrSubCategoryRequired is returned when a category other than SHOW_ALL has no sub-category.
	ErrSubCategoryRequired = errors.New("sub-category is required")
)

// Profile is the threshold and weight set for one (Category, SubCategory) pair.
// Minimums are inclusive lower bounds. Weights are relative and need not sum to 1.
type Profile struct {
	MinCPU         float64 `json:"min_cpu"`
	MinGPU         float64 `json:"min_gpu"`
	MinRAM         float64 `json:"min_ram"`
	MinScreen      float64 `json:"min_screen"`
	MinRefreshRate int     `json:"min_refresh_rate"`

	WeightCPU         float64 `json:"w_cpu"`
	WeightGPU         float64 `json:"w_gpu"`
	WeightRAM         float64 `json:"w_ram"`
	WeightStorage     float64 `json:"w_storage"`
	WeightScreen      float64 `json:"w_screen"`
	WeightRefreshRate float64 `json:"w_refresh_rate"`

	Description string `json:"description"`
}

// TotalWeight returns the sum of all six weights, the upper bound of any score under this profile.
func (p Profile) TotalWeight() float64 {
	return p.WeightCPU + p.WeightGPU + p.WeightRAM + p.WeightStorage + p.WeightScreen + p.WeightRefreshRate
}

// showAllProfile has no thresholds and equal weights. Refresh rate is deliberately left out
// of the ranking (weight 0).
var showAllProfile = Profile{
	WeightCPU:     1,
	WeightGPU:     1,
	WeightRAM:     1,
	WeightStorage: 1,
	WeightScreen:  1,
	Description:   "All laptops within budget, ranked by overall specification.",
}

type categoryEntry struct {
	description   string
	minimumBudget int64
	subs          []SubCategory
	profiles      map[SubCategory]Profile
}

// ruleBase is read-only after package initialization.
var ruleBase = map[Category]*categoryEntry{
	CategoryOffice: {
		description:   "Typing, browsing and light office work.",
		minimumBudget: 2_000_000,
		subs:          []SubCategory{SubStudent, SubAdmin, SubBusiness},
		profiles: map[SubCategory]Profile{
			SubStudent: {
				MinCPU: 3000, MinRAM: 4,
				WeightCPU: 0.2, WeightRAM: 0.3, WeightStorage: 0.5,
				Description: "Note taking, browsing and online classes.",
			},
			SubAdmin: {
				MinCPU: 4000, MinRAM: 8,
				WeightCPU: 0.3, WeightRAM: 0.3, WeightStorage: 0.3, WeightScreen: 0.1,
				Description: "Spreadsheets, documents and many browser tabs.",
			},
			SubBusiness: {
				MinCPU: 6000, MinRAM: 8, MinScreen: 50,
				WeightCPU: 0.3, WeightRAM: 0.3, WeightStorage: 0.2, WeightScreen: 0.2,
				Description: "Presentations and video calls with a good display.",
			},
		},
	},
	CategoryProgramming: {
		description:   "Compiling code, multitasking with emulators and containers.",
		minimumBudget: 5_000_000,
		subs:          []SubCategory{SubWeb, SubMobile, SubDataScience},
		profiles: map[SubCategory]Profile{
			SubWeb: {
				MinCPU: 9000, MinRAM: 8,
				WeightCPU: 0.5, WeightRAM: 0.4, WeightStorage: 0.1,
				Description: "Editors, local servers and browsers side by side.",
			},
			SubMobile: {
				MinCPU: 11000, MinRAM: 16,
				WeightCPU: 0.5, WeightRAM: 0.4, WeightStorage: 0.1,
				Description: "Heavy builds with Android emulators or simulators.",
			},
			SubDataScience: {
				MinCPU: 13000, MinGPU: 5000, MinRAM: 16,
				WeightCPU: 0.4, WeightGPU: 0.3, WeightRAM: 0.3,
				Description: "Notebooks, dataframes and small model training on GPU.",
			},
		},
	},
	CategoryDesign: {
		description:   "Graphic design, video editing and 3D rendering.",
		minimumBudget: 9_000_000,
		subs:          []SubCategory{SubPhoto, SubVideo, SubRender3D},
		profiles: map[SubCategory]Profile{
			SubPhoto: {
				MinCPU: 12000, MinGPU: 4000, MinRAM: 16, MinScreen: 70,
				WeightCPU: 0.3, WeightGPU: 0.2, WeightRAM: 0.2, WeightScreen: 0.3,
				Description: "Photo editing where colour accuracy matters.",
			},
			SubVideo: {
				MinCPU: 15000, MinGPU: 8000, MinRAM: 16,
				WeightCPU: 0.4, WeightGPU: 0.4, WeightStorage: 0.1, WeightScreen: 0.1,
				Description: "Video editing with GPU-accelerated timelines.",
			},
			SubRender3D: {
				MinCPU: 15000, MinGPU: 8000, MinRAM: 16,
				WeightCPU: 0.4, WeightGPU: 0.6,
				Description: "3D rendering that needs GPU acceleration.",
			},
		},
	},
	CategoryGaming: {
		description:   "Playing games with a stable frame rate.",
		minimumBudget: 10_000_000,
		subs:          []SubCategory{SubEsports, SubAAA},
		profiles: map[SubCategory]Profile{
			SubEsports: {
				MinCPU: 12000, MinGPU: 8000, MinRAM: 8, MinRefreshRate: 120,
				WeightCPU: 0.3, WeightGPU: 0.4, WeightRAM: 0.1, WeightRefreshRate: 0.2,
				Description: "Competitive titles on high refresh rate displays.",
			},
			SubAAA: {
				MinCPU: 14000, MinGPU: 13000, MinRAM: 16,
				WeightCPU: 0.2, WeightGPU: 0.7, WeightRAM: 0.1,
				Description: "AAA games at high settings with stable FPS.",
			},
		},
	},
	CategoryShowAll: {
		description: "Show every laptop within budget.",
	},
}

// categoryOrder is the presentation order of categories.
var categoryOrder = []Category{CategoryOffice, CategoryProgramming, CategoryDesign, CategoryGaming, CategoryShowAll}

// ParseCategory converts a case-insensitive name to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := ruleBase[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Lookup resolves the profile for a category and sub-category given as strings.
// SHOW_ALL ignores the sub-category and always returns the permissive profile.
func Lookup(category, subCategory string) (Category, Profile, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return "", Profile{}, err
	}
	if c == CategoryShowAll {
		return c, showAllProfile, nil
	}
	sub := SubCategory(strings.ToUpper(strings.TrimSpace(subCategory)))
	if sub == "" {
		return c, Profile{}, fmt.Errorf("%w for category %s", ErrSubCategoryRequired, c)
	}
	p, ok := ruleBase[c].profiles[sub]
	if !ok {
		return c, Profile{}, fmt.Errorf("%w: %q for category %s", ErrUnknownSubCategory, subCategory, c)
	}
	return c, p, nil
}

// IsBypass reports whether c skips threshold filtering.
func (c Category) IsBypass() bool {
	return c == CategoryShowAll
}

// CheckBudget returns an advisory message when budget is below the usual minimum for
// the category, or "" otherwise. It never blocks a query.
func CheckBudget(c Category, budget int64) string {
	entry, ok := ruleBase[c]
	if !ok || entry.minimumBudget == 0 || budget >= entry.minimumBudget {
		return ""
	}
	return fmt.Sprintf("Budget Rp %d is low for %s; the usual minimum is Rp %d.", budget, c, entry.minimumBudget)
}

// SubCategoryInfo describes one sub-category for UI population.
type SubCategoryInfo struct {
	Name    SubCategory `json:"name"`
	Profile Profile     `json:"profile"`
}

// CategoryInfo describes one category and its sub-categories.
type CategoryInfo struct {
	Name          Category          `json:"name"`
	Description   string            `json:"description"`
	MinimumBudget int64             `json:"minimum_budget,omitempty"`
	SubCategories []SubCategoryInfo `json:"sub_categories,omitempty"`
}

// Categories returns the rule base as an ordered list.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		entry := ruleBase[c]
		info := CategoryInfo{Name: c, Description: entry.description, MinimumBudget: entry.minimumBudget}
		for _, sub := range entry.subs {
			info.SubCategories = append(info.SubCategories, SubCategoryInfo{Name: sub, Profile: entry.profiles[sub]})
		}
		out = append(out, info)
	}
	return out
}
