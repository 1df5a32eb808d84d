package e2e

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// SupportedCatalogExtensions lists the file types the catalog loader reads from disk,
// apart from SQLite which is covered by the integration tests.
var SupportedCatalogExtensions = []string{".csv", ".tsv", ".xlsx", ".ods"}

// EncodeCatalog renders rows in the format named by ext.
func EncodeCatalog(ext string, rows [][]string) ([]byte, error) {
	switch ext {
	case ".csv":
		return delimited(rows, ',')
	case ".tsv":
		return delimited(rows, '\t')
	case ".xlsx":
		return xlsx(rows)
	case ".ods":
		return ods(rows)
	default:
		return nil, fmt.Errorf("unsupported catalog extension %q", ext)
	}
}

// WriteCatalog writes rows to dir/laptops<ext> and returns the path.
func WriteCatalog(dir, ext string, rows [][]string) (string, error) {
	data, err := EncodeCatalog(ext, rows)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "laptops"+ext)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

func delimited(rows [][]string, comma rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func xlsx(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow("Sheet1", cell, &values); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ods(rows [][]string) ([]byte, error) {
	var content bytes.Buffer
	content.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" ` +
		`xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" ` +
		`xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">` +
		`<office:body><office:spreadsheet><table:table table:name="Sheet1">`)
	for _, row := range rows {
		content.WriteString("<table:table-row>")
		for _, v := range row {
			content.WriteString(`<table:table-cell office:value-type="string"><text:p>`)
			if err := xml.EscapeText(&content, []byte(v)); err != nil {
				return nil, err
			}
			content.WriteString("</text:p></table:table-cell>")
		}
		content.WriteString("</table:table-row>")
	}
	content.WriteString(`</table:table></office:spreadsheet></office:body></office:document-content>`)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("content.xml")
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
