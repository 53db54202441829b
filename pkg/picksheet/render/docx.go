package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/docml"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

const (
	// shadeFill alternates row backgrounds as the linkage code changes.
	shadeFill = "EFEFEF"
	// alertColor flags quantities of two or more for the packer.
	alertColor = "FF0000"
)

// docxColWidths are the table column widths in inches per picking field.
var docxColWidths = [models.NumFields]float64{0.8, 2.4, 1.4, 0.6, 1.0, 1.2, 1.1}

// docxFieldSizes are the run font sizes in half-points per picking field.
// Codes print large for scanning, addresses small since the heading
// already carries them.
var docxFieldSizes = [models.NumFields]int{28, 16, 16, 24, 16, 10, 16}

// Docx renders picking tables as Word picking sheets with one address
// group per page.
type Docx struct{}

// Name returns "docx".
func (*Docx) Name() string { return "docx" }

// Render writes the table to path as a docx document.
func (d *Docx) Render(t *models.PickingTable, path string) error {
	doc, err := d.build(t)
	if err != nil {
		return err
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (d *Docx) build(t *models.PickingTable) (*docml.Document, error) {
	if t == nil {
		return nil, ErrNilTable
	}

	doc := docml.New()
	doc.SetDefaultFont("맑은 고딕", docml.HalfPoints(9))
	doc.SetPageSize(docml.Inches(8.27), docml.Inches(11.69))
	margin := docml.Inches(0.35)
	doc.SetMargins(margin, margin, margin, margin)

	widths := make([]int, models.NumFields)
	for f, inches := range docxColWidths {
		widths[f] = docml.Inches(inches)
	}
	rowHeight := docml.Points(26)

	// The shade toggle carries across groups so facing pages do not
	// repeat the same pattern; the last-seen code resets per group so
	// each group's first row flips the shade.
	shadeOn := false
	for gi, g := range t.Groups {
		heading := doc.AddParagraph().SpacingAfter(docml.Points(4))
		heading.AddText("주소: " + g.Address).Bold().Size(20)

		tbl := doc.AddTable(widths)
		header := tbl.AddRow(rowHeight, docml.RuleExact)
		for _, h := range models.Headers() {
			header.AddCell().Paragraph().AddText(h).Size(16)
		}

		lastCode := ""
		seenCode := false
		for _, row := range g.Rows {
			if !seenCode || row[models.FieldCode] != lastCode {
				shadeOn = !shadeOn
			}
			seenCode = true
			lastCode = row[models.FieldCode]
			writeDataRow(tbl.AddRow(rowHeight, docml.RuleExact), row, shadeOn)
		}
		writeSubtotalRow(tbl.AddRow(rowHeight, docml.RuleExact), g.Subtotal)

		if gi < len(t.Groups)-1 {
			doc.AddPageBreak()
		}
	}
	return doc, nil
}

func writeDataRow(tr *docml.TableRow, row models.Row, shaded bool) {
	for f := models.Field(0); f < models.NumFields; f++ {
		cell := tr.AddCell()
		if shaded {
			cell.Shade(shadeFill)
		}
		v := row[f]
		if v == "" {
			continue
		}
		run := cell.Paragraph().AddText(v).Size(docxFieldSizes[f])
		if f == models.FieldCode {
			run.Bold()
		}
		if f == models.FieldQuantity && quantityAlert(v) {
			run.Color(alertColor)
		}
	}
}

// writeSubtotalRow prints the totals large and bold. The address cell
// stays blank since the group heading already names it.
func writeSubtotalRow(tr *docml.TableRow, row models.Row) {
	for f := models.Field(0); f < models.NumFields; f++ {
		cell := tr.AddCell()
		if f == models.FieldAddress {
			continue
		}
		v := row[f]
		if v == "" {
			continue
		}
		run := cell.Paragraph().AddText(v).Size(32).Bold()
		if f == models.FieldQuantity && quantityAlert(v) {
			run.Color(alertColor)
		}
	}
}

// quantityAlert reports whether a quantity's whole part is two or more.
func quantityAlert(v string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return false
	}
	return math.Trunc(n) >= 2
}
