package keyword

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/pakar/internal/catalog"
	"github.com/hyperjump/pakar/internal/models"
)

func buildIndex(t *testing.T) *NameIndex {
	t.Helper()
	c := catalog.New([]models.Product{
		{Name: "ASUS ROG Strix G15", Brand: "ASUS", DetailURL: "a"},
		{Name: "ASUS ROG Strix G15", Brand: "ASUS", DetailURL: "b"},
		{Name: "Acer Nitro 5", Brand: "ACER"},
		{Name: "Lenovo Legion 5 Pro", Brand: "LENOVO"},
		{Name: "Lenovo IdeaPad Slim 3", Brand: "LENOVO"},
	}, "test.csv")
	idx, err := Build(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestBuild(t *testing.T) {
	idx := buildIndex(t)
	n, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
	assert.NotEmpty(t, idx.CatalogID())
}

func TestBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, catalog.New([]models.Product{{Name: "x"}}, ""))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSuggest(t *testing.T) {
	idx := buildIndex(t)
	ctx := context.Background()

	tests := []struct {
		name string
		term string
		want string
	}{
		{"typo in model", "strx", "ASUS ROG Strix G15"},
		{"typo in series", "legoin", "Lenovo Legion 5 Pro"},
		{"case insensitive", "NITRO", "Acer Nitro 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Suggest(ctx, tt.term, 3)
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestSuggest_DistinctAndLimited(t *testing.T) {
	idx := buildIndex(t)
	got, err := idx.Suggest(context.Background(), "strix", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASUS ROG Strix G15"}, got)

	got, err = idx.Suggest(context.Background(), "lenovo", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSuggest_Empty(t *testing.T) {
	idx := buildIndex(t)
	got, err := idx.Suggest(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorrect(t *testing.T) {
	idx := buildIndex(t)
	tests := []struct {
		query       string
		want        string
		wantChanged bool
	}{
		{"rgo strx", "rog strix", true},
		{"legion", "legion", false},
		{"idepad", "ideapad", true},
		{"zzzzzzzzzz", "zzzzzzzzzz", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, changed := idx.Correct(tt.query)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestClose(t *testing.T) {
	idx := buildIndex(t)
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close(), "second Close is a no-op")

	_, err := idx.Suggest(context.Background(), "strix", 3)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = idx.DocCount()
	assert.ErrorIs(t, err, ErrClosed)

	got, changed := idx.Correct("legoin")
	assert.True(t, changed, "Correct only reads the term table")
	assert.Equal(t, "legion", got)
}

func TestClose_WaitsForRunningSearches(t *testing.T) {
	idx := buildIndex(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := idx.Suggest(ctx, "strix", 3)
				if err != nil && !errors.Is(err, ErrClosed) {
					t.Errorf("Suggest: %v", err)
					return
				}
			}
		}()
	}
	require.NoError(t, idx.Close())
	wg.Wait()
}
