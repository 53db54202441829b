// Package sheetio loads and saves first-sheet worksheet tables with every
// cell kept as text, so phone numbers and order ids survive unchanged.
package sheetio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// ErrNoSheets indicates a workbook without any sheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// maxXLSRows bounds legacy BIFF reads; courier tracking files are small.
const maxXLSRows = 100000

// LoadXLSX reads the first sheet of an xlsx workbook.
func LoadXLSX(path string) (*models.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows), nil
}

// LoadXLS reads the first sheet of a legacy BIFF (.xls) workbook.
func LoadXLS(path string) (*models.RawTable, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}
	return tableFromRows(wb.ReadAllCells(maxXLSRows)), nil
}

// Load picks a loader from the file extension and falls back to the other
// one when a mislabeled file refuses to parse.
func Load(path string) (*models.RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		t, err := LoadXLS(path)
		if err == nil {
			return t, nil
		}
		if t2, err2 := LoadXLSX(path); err2 == nil {
			return t2, nil
		}
		return nil, err
	}
	t, err := LoadXLSX(path)
	if err == nil {
		return t, nil
	}
	if t2, err2 := LoadXLS(path); err2 == nil {
		return t2, nil
	}
	return nil, err
}

// tableFromRows treats the first row as headers and pads headers and data
// rows to a common width.
func tableFromRows(rows [][]string) *models.RawTable {
	if len(rows) == 0 {
		return &models.RawTable{}
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	pad := func(r []string) []string {
		out := make([]string, width)
		copy(out, r)
		return out
	}
	t := &models.RawTable{Headers: pad(rows[0])}
	for _, r := range rows[1:] {
		t.Rows = append(t.Rows, pad(r))
	}
	return t
}
