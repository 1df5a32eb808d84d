package tabular

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// odsContentPath is the path to the main content inside an .ods zip (OpenDocument Spreadsheet).
const odsContentPath = "content.xml"

// maxRepeatedCells caps table:number-columns-repeated; spreadsheets pad rows with huge repeats.
const maxRepeatedCells = 256

// readODS returns the rows of the first table in an .ods document.
func readODS(content []byte) ([][]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("read ODS: not a zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != odsContentPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read ODS: open %s: %w", f.Name, err)
		}
		defer rc.Close()
		return parseODSContent(rc)
	}
	return nil, fmt.Errorf("read ODS: %s not found", odsContentPath)
}

func parseODSContent(r io.Reader) ([][]string, error) {
	dec := xml.NewDecoder(r)
	var (
		rows      [][]string
		row       []string
		cell      strings.Builder
		repeat    int
		inTable   bool
		inCell    bool
		paragraph int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read ODS: parse content: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "table":
				inTable = true
			case "table-row":
				row = nil
			case "table-cell", "covered-table-cell":
				inCell = true
				cell.Reset()
				paragraph = 0
				repeat = repeatedAttr(t.Attr)
			case "p":
				if inCell && paragraph > 0 {
					cell.WriteByte(' ')
				}
				paragraph++
			}
		case xml.CharData:
			if inCell {
				cell.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "table-cell", "covered-table-cell":
				v := strings.TrimSpace(cell.String())
				for i := 0; i < repeat; i++ {
					row = append(row, v)
				}
				inCell = false
			case "table-row":
				if inTable {
					rows = append(rows, trimTrailingEmpty(row))
				}
			case "table":
				// Only the first sheet is read.
				return rows, nil
			}
		}
	}
}

func repeatedAttr(attrs []xml.Attr) int {
	for _, a := range attrs {
		if a.Name.Local != "number-columns-repeated" {
			continue
		}
		n, err := strconv.Atoi(a.Value)
		if err != nil || n < 1 {
			return 1
		}
		if n > maxRepeatedCells {
			return maxRepeatedCells
		}
		return n
	}
	return 1
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}
