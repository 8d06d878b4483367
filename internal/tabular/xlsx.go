// Package tabular loads chart rows from spreadsheets.
package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chartspec/internal/ir"

	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned for a sheet without a header row.
var ErrNoHeader = errors.New("sheet has no header row")

// LoadXLSX reads a sheet whose first non-empty row holds the column names.
// Every later non-empty row becomes one row keyed by those names. An empty
// sheet name selects the first sheet.
func LoadXLSX(path, sheet string) ([]ir.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return FromCells(rows)
}

// FromCells turns a header row plus data rows into chart rows. Blank cells
// are left out of the row.
func FromCells(cells [][]string) ([]ir.Row, error) {
	var header []string
	var out []ir.Row
	for _, row := range cells {
		if blank(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}
		r := ir.Row{}
		for i, v := range row {
			if i >= len(header) || header[i] == "" || v == "" {
				continue
			}
			r[header[i]] = parseValue(v)
		}
		out = append(out, r)
	}
	if header == nil {
		return nil, ErrNoHeader
	}
	return out, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseValue returns int64 for integers, float64 for decimals, bool for
// TRUE/FALSE and the original string otherwise.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}
