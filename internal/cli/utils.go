// Package cli provides CLI utilities for pakar.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/ranking"
	"github.com/hyperjump/pakar/internal/rules"
	"github.com/hyperjump/pakar/pkg/utils"
)

// OutputFormat is the format for recommendation output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one recommendation per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteResultPage writes a recommendation page to w in the given format.
// Unknown formats fall back to text.
func WriteResultPage(w io.Writer, page *models.ResultPage, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, page)
	case OutputCompact:
		writeCompact(w, page)
		return nil
	default:
		writeText(w, page)
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeText(w io.Writer, page *models.ResultPage) {
	if page.Advisory != "" {
		fmt.Fprintf(w, "\nNote: %s\n", page.Advisory)
	}
	if page.IsEmpty() {
		fmt.Fprintf(w, "\nNo laptops match (%s) in %dms\n", emptyReasonText(page.EmptyReason), page.QueryTime)
		writeSuggestions(w, page)
		return
	}
	fmt.Fprintf(w, "\nFound %d laptops in %dms (page %d of %d, sorted by %s)\n\n",
		page.TotalItems, page.QueryTime, page.CurrentPage, page.TotalPages, page.Sort)
	for _, rec := range page.Items {
		writeOneRecommendation(w, rec)
	}
}

func writeOneRecommendation(w io.Writer, rec *models.Recommendation) {
	p := rec.Product
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "#%d %s | Score: %.4f\n", rec.Rank, p.Name, rec.Score)
	fmt.Fprintf(w, "Brand: %s | Price: %s\n", p.Brand, ranking.FormatRupiah(rec.EstimatedPrice))
	if p.Processor != "" || p.GPU != "" {
		fmt.Fprintf(w, "CPU: %s | GPU: %s\n", orDash(p.Processor), orDash(p.GPU))
	}
	fmt.Fprintf(w, "RAM: %.0f GB | Storage: %.0f GB | Refresh: %d Hz\n", p.RAM, p.StorageGB, p.RefreshRate)
	if rec.Rationale != "" {
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(rec.Rationale, 400))
	}
	if p.BuyURL != "" {
		fmt.Fprintf(w, "Buy: %s\n", p.BuyURL)
	}
	fmt.Fprintln(w)
}

func writeCompact(w io.Writer, page *models.ResultPage) {
	if page.IsEmpty() {
		fmt.Fprintf(w, "no matches (%s)\n", emptyReasonText(page.EmptyReason))
		return
	}
	for _, rec := range page.Items {
		fmt.Fprintf(w, "%d\t%.4f\t%s\t%s\n", rec.Rank, rec.Score, ranking.FormatRupiah(rec.EstimatedPrice), rec.Product.Name)
	}
}

func writeSuggestions(w io.Writer, page *models.ResultPage) {
	if page.DidYouMean != "" {
		fmt.Fprintf(w, "Did you mean: %s\n", page.DidYouMean)
	}
	if len(page.Suggestions) > 0 {
		fmt.Fprintln(w, "Similar products:")
		for _, s := range page.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}

func emptyReasonText(r models.EmptyReason) string {
	switch r {
	case models.EmptyReasonBudget:
		return "nothing within budget"
	case models.EmptyReasonSearch:
		return "no name matches the search"
	case models.EmptyReasonBrand:
		return "no product from that brand"
	case models.EmptyReasonRequirements:
		return "no product meets the category requirements"
	default:
		return "empty catalog"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WriteBrands writes the brand list, one per line, or as JSON.
func WriteBrands(w io.Writer, brands []string, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, map[string][]string{"brands": brands})
	}
	for _, b := range brands {
		fmt.Fprintln(w, b)
	}
	return nil
}

// WriteCategories writes the rule base. Text output lists each category with its
// sub-categories and thresholds.
func WriteCategories(w io.Writer, cats []rules.CategoryInfo, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, map[string]any{"categories": cats})
	}
	for _, c := range cats {
		fmt.Fprintf(w, "%s  %s\n", c.Name, c.Description)
		if c.MinimumBudget > 0 {
			fmt.Fprintf(w, "  minimum budget: %s\n", ranking.FormatRupiah(float64(c.MinimumBudget)))
		}
		for _, sub := range c.SubCategories {
			p := sub.Profile
			fmt.Fprintf(w, "  %-12s cpu>=%g gpu>=%g ram>=%gGB screen>=%g refresh>=%dHz\n",
				sub.Name, p.MinCPU, p.MinGPU, p.MinRAM, p.MinScreen, p.MinRefreshRate)
		}
	}
	return nil
}

// PrintResultPage prints a page to stdout in text format.
func PrintResultPage(page *models.ResultPage) {
	_ = WriteResultPage(os.Stdout, page, OutputText)
}
