// Package numbers extracts phone numbers from user-supplied files so they can
// be fed into a batch check.
package numbers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	MinLength = 8
	MaxImport = 100
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, use .txt, .csv or .xlsx")
	ErrNoNumbers         = errors.New("no valid phone numbers found in the file")

	textPattern = regexp.MustCompile(`[+]?[0-9]{8,15}`)
	cleanRe     = regexp.MustCompile(`[^0-9+]`)
)

// Import holds the numbers kept from a file and how many were found in total.
type Import struct {
	Numbers    []string
	TotalFound int
}

// Text returns the numbers one per line, ready for batch input.
func (im Import) Text() string { return strings.Join(im.Numbers, "\n") }

// ImportFile reads path and extracts numbers based on its extension.
func ImportFile(path string) (Import, error) {
	f, err := os.Open(path)
	if err != nil {
		return Import{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ImportReader(filepath.Base(path), f)
}

// ImportReader extracts numbers from r; name selects the format.
func ImportReader(name string, r io.Reader) (Import, error) {
	var raw []string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		b, err := io.ReadAll(r)
		if err != nil {
			return Import{}, fmt.Errorf("read %s: %w", name, err)
		}
		raw = FromText(string(b))
	case ".csv":
		var err error
		raw, err = FromCSV(r)
		if err != nil {
			return Import{}, fmt.Errorf("parse %s: %w", name, err)
		}
	case ".xlsx":
		var err error
		raw, err = FromXLSX(r)
		if err != nil {
			return Import{}, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		return Import{}, ErrUnsupportedFormat
	}

	clean := Clean(raw)
	if len(clean) == 0 {
		return Import{}, ErrNoNumbers
	}
	im := Import{Numbers: clean, TotalFound: len(clean)}
	if len(im.Numbers) > MaxImport {
		im.Numbers = im.Numbers[:MaxImport]
	}
	return im, nil
}

// FromText finds number-like runs anywhere in free text.
func FromText(s string) []string {
	return textPattern.FindAllString(s, -1)
}

// FromCSV takes every column whose header mentions phone, number or mobile.
// Without such a column the first column is used.
func FromCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

// FromXLSX applies the FromCSV column rules to the first sheet of a workbook.
func FromXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return fromRecords(rows), nil
}

func fromRecords(records [][]string) []string {
	if len(records) < 2 {
		return nil
	}
	header, rows := records[0], records[1:]

	var cols []int
	for i, h := range header {
		h = strings.ToLower(h)
		if strings.Contains(h, "phone") || strings.Contains(h, "number") || strings.Contains(h, "mobile") {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 && len(header) > 0 {
		cols = []int{0}
	}

	// column-major, matching a column-by-column scan of the sheet
	var out []string
	for _, c := range cols {
		for _, row := range rows {
			if c < len(row) {
				out = append(out, row[c])
			}
		}
	}
	return out
}

// Clean strips everything but digits and '+', dropping values shorter than MinLength.
func Clean(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, n := range raw {
		c := cleanRe.ReplaceAllString(n, "")
		if len(c) >= MinLength {
			out = append(out, c)
		}
	}
	return out
}
