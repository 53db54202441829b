package render

import (
	"archive/zip"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

func pickRow(code, product, qty, addr string) models.Row {
	var r models.Row
	r[models.FieldCode] = code
	r[models.FieldProduct] = product
	r[models.FieldQuantity] = qty
	r[models.FieldAddress] = addr
	return r
}

func subtotalRow(addr, qty string) models.Row {
	var r models.Row
	r[models.FieldProduct] = models.TotalSentinel
	r[models.FieldQuantity] = qty
	r[models.FieldAddress] = addr
	return r
}

func sampleTable() *models.PickingTable {
	return &models.PickingTable{Groups: []models.AddressGroup{
		{
			Address:  "부산시 해운대구",
			Rows:     []models.Row{pickRow("9", "감자 20kg", "3", "부산시 해운대구")},
			Subtotal: subtotalRow("부산시 해운대구", "3"),
		},
		{
			Address: "서울시 마포구",
			Rows: []models.Row{
				pickRow("5", "오이 10kg", "1", "서울시 마포구"),
				pickRow("3", "당근 5kg", "2", "서울시 마포구"),
			},
			Subtotal: subtotalRow("서울시 마포구", "3"),
		},
	}}
}

func worksheetXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open workbook zip: %v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "xl/worksheets/sheet1.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open worksheet part: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read worksheet part: %v", err)
		}
		return string(data)
	}
	t.Fatalf("Worksheet part not found in %s", path)
	return ""
}

func TestXLSXRenderValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picking.xlsx")
	if err := (&XLSX{}).Render(sampleTable(), path); err != nil {
		t.Fatalf("Failed to render workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	checks := []struct {
		cell string
		want string
	}{
		{"A1", "상품연동코드"},
		{"G1", "주문요청사항"},
		{"A2", "9"},
		{"B2", "감자 20kg"},
		{"B3", "합계"},
		{"D3", "3"},
		{"F3", "부산시 해운대구"},
		{"A4", "5"},
		{"B6", "합계"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(sheet, c.cell)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", c.cell, err)
		}
		if got != c.want {
			t.Errorf("Cell %s = %q, want %q", c.cell, got, c.want)
		}
	}

	width, err := f.GetColWidth(sheet, "B")
	if err != nil {
		t.Fatalf("Failed to read column width: %v", err)
	}
	if width != 60 {
		t.Errorf("Column B width = %v, want 60", width)
	}
}

func TestXLSXPageSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picking.xlsx")
	if err := (&XLSX{}).Render(sampleTable(), path); err != nil {
		t.Fatalf("Failed to render workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	layout, err := f.GetPageLayout(sheet)
	if err != nil {
		t.Fatalf("Failed to read page layout: %v", err)
	}
	if layout.Orientation == nil || *layout.Orientation != "landscape" {
		t.Errorf("Expected landscape orientation, got %v", layout.Orientation)
	}
	if layout.FitToWidth == nil || *layout.FitToWidth != 1 {
		t.Errorf("Expected fit to one page wide, got %v", layout.FitToWidth)
	}

	var titles, area string
	for _, dn := range f.GetDefinedName() {
		switch dn.Name {
		case "_xlnm.Print_Titles":
			titles = dn.RefersTo
		case "_xlnm.Print_Area":
			area = dn.RefersTo
		}
	}
	if titles != "'Sheet1'!$1:$1" {
		t.Errorf("Print titles = %q, want first row repeated", titles)
	}
	if area != "'Sheet1'!$A$1:$G$6" {
		t.Errorf("Print area = %q, want 'Sheet1'!$A$1:$G$6", area)
	}

	xmlData := worksheetXML(t, path)
	// The second group starts at row 4, so the break sits after row 3.
	if !strings.Contains(xmlData, `<brk id="3"`) {
		t.Error("Expected a page break before the second address group")
	}
	if !strings.Contains(xmlData, "&amp;C&amp;P / &amp;N") {
		t.Error("Expected a centered page-number footer")
	}
}

func TestXLSXNoPageBreaks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picking.xlsx")
	r := &XLSX{Options: XLSXOptions{NoPageBreaks: true}}
	if err := r.Render(sampleTable(), path); err != nil {
		t.Fatalf("Failed to render workbook: %v", err)
	}
	if strings.Contains(worksheetXML(t, path), "<brk ") {
		t.Error("Expected no page breaks")
	}
}

func TestXLSXSheetNameOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picking.xlsx")
	r := &XLSX{Options: XLSXOptions{SheetName: "피킹시트"}}
	if err := r.Render(sampleTable(), path); err != nil {
		t.Fatalf("Failed to render workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetName(0); got != "피킹시트" {
		t.Errorf("Sheet name = %q, want 피킹시트", got)
	}
	for _, dn := range f.GetDefinedName() {
		if dn.Name == "_xlnm.Print_Titles" && dn.RefersTo != "'피킹시트'!$1:$1" {
			t.Errorf("Print titles = %q, want renamed sheet reference", dn.RefersTo)
		}
	}
}

func TestXLSXNilTable(t *testing.T) {
	err := (&XLSX{}).Render(nil, filepath.Join(t.TempDir(), "out.xlsx"))
	if !errors.Is(err, ErrNilTable) {
		t.Errorf("Expected ErrNilTable, got %v", err)
	}
}
