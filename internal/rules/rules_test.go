package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		category string
		sub      string
		wantCat  Category
		wantErr  error
	}{
		{"known pair", "GAMING", "AAA", CategoryGaming, nil},
		{"case insensitive", "programming", "web", CategoryProgramming, nil},
		{"show all ignores sub", "SHOW_ALL", "", CategoryShowAll, nil},
		{"show all with junk sub", "show_all", "whatever", CategoryShowAll, nil},
		{"unknown category", "COOKING", "AAA", "", ErrUnknownCategory},
		{"missing sub", "DESIGN", "", CategoryDesign, ErrSubCategoryRequired},
		{"sub from other category", "OFFICE", "AAA", CategoryOffice, ErrUnknownSubCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, _, err := Lookup(tt.category, tt.sub)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCat, cat)
		})
	}
}

func TestShowAllProfile(t *testing.T) {
	_, p, err := Lookup("SHOW_ALL", "")
	require.NoError(t, err)
	assert.Zero(t, p.MinCPU)
	assert.Zero(t, p.MinGPU)
	assert.Zero(t, p.MinRAM)
	assert.Zero(t, p.MinScreen)
	assert.Zero(t, p.MinRefreshRate)
	assert.Zero(t, p.WeightRefreshRate)
	assert.Equal(t, p.WeightCPU, p.WeightGPU)
	assert.Equal(t, p.WeightCPU, p.WeightRAM)
	assert.True(t, CategoryShowAll.IsBypass())
	assert.False(t, CategoryGaming.IsBypass())
}

func TestProfiles_WeightsNonNegative(t *testing.T) {
	for _, info := range Categories() {
		for _, sub := range info.SubCategories {
			p := sub.Profile
			for _, w := range []float64{p.WeightCPU, p.WeightGPU, p.WeightRAM, p.WeightStorage, p.WeightScreen, p.WeightRefreshRate} {
				assert.GreaterOrEqual(t, w, 0.0, "%s/%s", info.Name, sub.Name)
			}
			assert.Greater(t, p.TotalWeight(), 0.0, "%s/%s", info.Name, sub.Name)
			assert.NotEmpty(t, p.Description)
		}
	}
}

func TestCategories_Order(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, CategoryOffice, cats[0].Name)
	assert.Equal(t, CategoryShowAll, cats[4].Name)
	assert.Empty(t, cats[4].SubCategories)
	assert.Len(t, cats[3].SubCategories, 2)
}

func TestCheckBudget(t *testing.T) {
	assert.NotEmpty(t, CheckBudget(CategoryGaming, 6_000_000))
	assert.Empty(t, CheckBudget(CategoryGaming, 10_000_000))
	assert.Empty(t, CheckBudget(CategoryOffice, 2_500_000))
	assert.Empty(t, CheckBudget(CategoryShowAll, 1))
}
