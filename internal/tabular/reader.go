// Package tabular reads catalog tables (header row plus data rows) from CSV, TSV, XLSX and ODS files.
package tabular

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoHeader is returned when a source has no header row.
var ErrNoHeader = errors.New("table has no header row")

// Table is a rectangular view of a tabular source. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Reader reads tables from files.
type Reader struct{}

// NewReader returns a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile reads the file at path and parses it according to its extension.
func (r *Reader) ReadFile(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return r.ReadBytes(content, ext)
}

// ReadBytes parses content based on the given extension (with leading dot).
// Unknown extensions are parsed as comma-separated text.
func (r *Reader) ReadBytes(content []byte, ext string) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch ext {
	case ".xlsx":
		records, err = readExcel(content)
	case ".ods":
		records, err = readODS(content)
	case ".tsv", ".tab":
		records, err = readDelimited(content, '\t')
	default:
		records, err = readDelimited(content, ',')
	}
	if err != nil {
		return nil, err
	}
	return NewTable(records)
}

// NewTable builds a Table from raw records whose first record is the header.
// Header cells are trimmed; data rows are padded or truncated to the header width.
func NewTable(records [][]string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	t := &Table{Header: header, Rows: make([][]string, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
