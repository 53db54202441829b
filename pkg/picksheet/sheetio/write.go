package sheetio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// quantityHeader is the one column written back as numbers. Everything else
// stays text so ids and phone numbers keep their exact digits.
const quantityHeader = "수량"

// Write saves a raw table as a single-sheet xlsx workbook.
func Write(t *models.RawTable, path, sheetName string) error {
	f, err := build(t, sheetName)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// WriteTo streams the workbook, for zip entries and buffers.
func WriteTo(w io.Writer, t *models.RawTable, sheetName string) error {
	f, err := build(t, sheetName)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func build(t *models.RawTable, sheetName string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if sheetName != "" && sheetName != sheet {
		if err := f.SetSheetName(sheet, sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = sheetName
	}

	numeric := make(map[int]bool)
	for c, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			f.Close()
			return nil, err
		}
		if h == quantityHeader {
			numeric[c] = true
		}
	}

	for r := range t.Rows {
		for c := 0; c < t.Width(); c++ {
			v := t.Cell(r, c)
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if numeric[c] {
				if n, perr := strconv.ParseFloat(strings.TrimSpace(v), 64); perr == nil {
					if err := f.SetCellValue(sheet, cell, n); err != nil {
						f.Close()
						return nil, err
					}
					continue
				}
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	return f, nil
}
