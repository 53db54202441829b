package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/colref"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// xlsxColWidths are the printed column widths per picking field.
var xlsxColWidths = [models.NumFields]float64{18, 60, 50, 10, 18, 50, 40}

// xlsxWrapFields hold long free text and wrap with top alignment.
var xlsxWrapFields = []models.Field{
	models.FieldProduct,
	models.FieldOption,
	models.FieldAddress,
	models.FieldNote,
}

// XLSXOptions adjust the workbook layout.
type XLSXOptions struct {
	// SheetName overrides the workbook's default sheet name when set.
	SheetName string
	// NoPageBreaks lets address groups share pages instead of starting
	// each group on a fresh page.
	NoPageBreaks bool
}

// XLSX renders picking tables as print-ready Excel workbooks.
type XLSX struct {
	Options XLSXOptions
}

// Name returns "xlsx".
func (*XLSX) Name() string { return "xlsx" }

// Render writes the table to path as an xlsx workbook.
func (x *XLSX) Render(t *models.PickingTable, path string) error {
	f, err := x.build(t)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (x *XLSX) build(t *models.PickingTable) (*excelize.File, error) {
	if t == nil {
		return nil, ErrNilTable
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if x.Options.SheetName != "" {
		if err := f.SetSheetName(sheet, x.Options.SheetName); err != nil {
			return nil, err
		}
		sheet = x.Options.SheetName
	}

	for i, h := range models.Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	rows := t.Flatten()
	for r, row := range rows {
		for c := models.Field(0); c < models.NumFields; c++ {
			cell, err := excelize.CoordinatesToCellName(int(c)+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := writeCell(f, sheet, cell, c, row[c]); err != nil {
				return nil, err
			}
		}
	}

	lastRow := len(rows) + 1
	if err := applyStyles(f, sheet, lastRow); err != nil {
		return nil, err
	}
	if err := applyPageSetup(f, sheet, lastRow); err != nil {
		return nil, err
	}
	if !x.Options.NoPageBreaks {
		if err := insertGroupBreaks(f, sheet, t); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// writeCell writes codes and quantities as numbers when they parse so
// sorting and summing keep working in Excel; everything else stays text.
func writeCell(f *excelize.File, sheet, cell string, field models.Field, value string) error {
	if value == "" {
		return nil
	}
	if field == models.FieldCode || field == models.FieldQuantity {
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f.SetCellValue(sheet, cell, n)
		}
	}
	return f.SetCellStr(sheet, cell, value)
}

func applyStyles(f *excelize.File, sheet string, lastRow int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "center"},
	})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(int(models.NumFields), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for c := models.Field(0); c < models.NumFields; c++ {
		letter, err := colref.Letter(int(c))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, letter, letter, xlsxColWidths[c]); err != nil {
			return err
		}
	}

	if lastRow < 2 {
		return nil
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	for _, field := range xlsxWrapFields {
		letter, err := colref.Letter(int(field))
		if err != nil {
			return err
		}
		top := letter + "2"
		bottom := letter + strconv.Itoa(lastRow)
		if err := f.SetCellStyle(sheet, top, bottom, wrapStyle); err != nil {
			return err
		}
	}
	return nil
}

// applyPageSetup lays the sheet out for printing: landscape, scaled to
// one page wide, headers repeated on every page, and a centered
// "page / total" footer.
func applyPageSetup(f *excelize.File, sheet string, lastRow int) error {
	orientation := "landscape"
	fitToWidth, fitToHeight := 1, 0
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		FitToWidth:  &fitToWidth,
		FitToHeight: &fitToHeight,
	}); err != nil {
		return err
	}
	fitToPage := true
	if err := f.SetSheetProps(sheet, &excelize.SheetPropsOptions{FitToPage: &fitToPage}); err != nil {
		return err
	}

	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Titles",
		RefersTo: fmt.Sprintf("'%s'!$1:$1", sheet),
		Scope:    sheet,
	}); err != nil {
		return err
	}
	lastLetter, err := colref.Letter(int(models.NumFields) - 1)
	if err != nil {
		return err
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!$A$1:$%s$%d", sheet, lastLetter, lastRow),
		Scope:    sheet,
	}); err != nil {
		return err
	}

	return f.SetHeaderFooter(sheet, &excelize.HeaderFooterOptions{
		OddFooter: "&C&P / &N",
	})
}

// insertGroupBreaks starts every address group after the first on a new
// printed page. Each group spans its order rows plus one subtotal row.
func insertGroupBreaks(f *excelize.File, sheet string, t *models.PickingTable) error {
	row := 2
	for i, g := range t.Groups {
		if i > 0 {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.InsertPageBreak(sheet, cell); err != nil {
				return err
			}
		}
		row += len(g.Rows) + 1
	}
	return nil
}
