package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
)

func samplePage() *models.ResultPage {
	return &models.ResultPage{
		Items: []*models.Recommendation{
			{
				ID: "abc123",
				Product: models.Product{
					Name:        "ASUS ROG Strix G15",
					Brand:       "ASUS",
					Processor:   "Ryzen 7 6800H",
					GPU:         "RTX 3060",
					RAM:         16,
					StorageGB:   512,
					RefreshRate: 144,
					BuyURL:      "https://example.com/rog",
				},
				Score:          0.8123,
				EstimatedPrice: 16690000,
				Rationale:      "Est: Rp 16,690,000 | CPU 20000 (Min 15000)",
				Rank:           1,
			},
		},
		TotalItems:  1,
		TotalPages:  1,
		CurrentPage: 1,
		PageSize:    24,
		Sort:        models.SortScore,
		CatalogID:   "cat-1",
		QueryTime:   7,
	}
}

func TestWriteResultPage_JSON(t *testing.T) {
	page := samplePage()
	var buf bytes.Buffer
	if err := WriteResultPage(&buf, page, OutputJSON); err != nil {
		t.Fatalf("WriteResultPage(json): %v", err)
	}
	var decoded models.ResultPage
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.TotalItems != 1 || decoded.CatalogID != "cat-1" {
		t.Errorf("decoded total_items=%d catalog_id=%q", decoded.TotalItems, decoded.CatalogID)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].Product.Name != "ASUS ROG Strix G15" {
		t.Errorf("decoded items: %+v", decoded.Items)
	}
}

func TestWriteResultPage_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultPage(&buf, samplePage(), OutputText); err != nil {
		t.Fatalf("WriteResultPage(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{
		"Found 1 laptops", "7ms", "page 1 of 1", "sorted by score",
		"#1 ASUS ROG Strix G15", "Score: 0.8123", "Rp 16,690,000", "RTX 3060", "144 Hz",
		"CPU 20000 (Min 15000)", "Buy: https://example.com/rog",
	} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteResultPage_textEmpty(t *testing.T) {
	page := &models.ResultPage{
		Sort:        models.SortScore,
		EmptyReason: models.EmptyReasonSearch,
		DidYouMean:  "strix",
		Suggestions: []string{"ASUS ROG Strix G15"},
		Advisory:    "Budget Rp 1000 is low for GAMING; the usual minimum is Rp 10000000.",
	}
	var buf bytes.Buffer
	if err := WriteResultPage(&buf, page, OutputText); err != nil {
		t.Fatalf("WriteResultPage(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Note: Budget", "No laptops match", "no name matches the search", "Did you mean: strix", "- ASUS ROG Strix G15"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteResultPage_compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultPage(&buf, samplePage(), OutputCompact); err != nil {
		t.Fatalf("WriteResultPage(compact): %v", err)
	}
	want := "1\t0.8123\tRp 16,690,000\tASUS ROG Strix G15\n"
	if buf.String() != want {
		t.Errorf("compact = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	_ = WriteResultPage(&buf, &models.ResultPage{EmptyReason: models.EmptyReasonBudget}, OutputCompact)
	if buf.String() != "no matches (nothing within budget)\n" {
		t.Errorf("compact empty = %q", buf.String())
	}
}

func TestWriteResultPage_unknownFormatTreatedAsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultPage(&buf, samplePage(), OutputFormat("unknown")); err != nil {
		t.Fatalf("WriteResultPage(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{" compact ", OutputCompact, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteBrands(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBrands(&buf, []string{"ASUS", "LENOVO"}, OutputText); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ASUS\nLENOVO\n" {
		t.Errorf("text brands = %q", buf.String())
	}

	buf.Reset()
	if err := WriteBrands(&buf, []string{"ASUS"}, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded map[string][]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("brands JSON: %v", err)
	}
	if len(decoded["brands"]) != 1 || decoded["brands"][0] != "ASUS" {
		t.Errorf("decoded brands = %v", decoded)
	}
}

func TestWriteCategories(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCategories(&buf, rules.Categories(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, sub := range []string{"GAMING", "ESPORTS", "SHOW_ALL", "refresh>="} {
		if !strings.Contains(out, sub) {
			t.Errorf("categories output missing %q:\n%s", sub, out)
		}
	}
}
