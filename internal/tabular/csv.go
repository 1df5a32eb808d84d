package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// readDelimited parses delimiter-separated text. Rows may have differing widths and
// stray quotes are tolerated, as scraped catalogs often contain both.
func readDelimited(content []byte, delim rune) ([][]string, error) {
	// A leading BOM would otherwise hide the opening quote of the first header cell.
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), "\ufffd"))
	}
	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	return records, nil
}
