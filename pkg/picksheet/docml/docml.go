// Package docml builds minimal WordprocessingML (.docx) documents.
//
// It covers only what picking sheets need: default font and page setup,
// plain and page-break paragraphs, and fixed-layout bordered tables with
// exact row heights and cell shading. Element names carry their "w:"
// prefix literally, so the marshaled document.xml matches the
// wordprocessingml main namespace declared on the root element.
package docml

import (
	"encoding/xml"
)

// XML namespaces used in WordprocessingML
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// HeightRule controls how Word interprets a table row height.
type HeightRule string

const (
	// RuleAuto lets the row grow with its content.
	RuleAuto HeightRule = "auto"
	// RuleAtLeast enforces a minimum row height.
	RuleAtLeast HeightRule = "atLeast"
	// RuleExact fixes the row height regardless of content.
	RuleExact HeightRule = "exact"
)

// Document accumulates block content and page setup for one docx package.
type Document struct {
	blocks   []any
	sect     sectPr
	fontName string
	fontSize int
}

// New returns a document with A4 portrait pages, one-inch margins and an
// 11pt Calibri default font.
func New() *Document {
	return &Document{
		fontName: "Calibri",
		fontSize: 22,
		sect: sectPr{
			Size: pageSize{W: Inches(8.27), H: Inches(11.69)},
			Margins: pageMargins{
				Top:    Inches(1),
				Right:  Inches(1),
				Bottom: Inches(1),
				Left:   Inches(1),
				Header: 720,
				Footer: 720,
			},
		},
	}
}

// SetDefaultFont sets the document default font name and size in half-points.
func (d *Document) SetDefaultFont(name string, halfPoints int) {
	d.fontName = name
	d.fontSize = halfPoints
}

// SetPageSize sets the page width and height in twips.
func (d *Document) SetPageSize(width, height int) {
	d.sect.Size = pageSize{W: width, H: height}
}

// SetMargins sets the four page margins in twips.
func (d *Document) SetMargins(top, right, bottom, left int) {
	d.sect.Margins.Top = top
	d.sect.Margins.Right = right
	d.sect.Margins.Bottom = bottom
	d.sect.Margins.Left = left
}

// AddParagraph appends an empty paragraph to the document body.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.blocks = append(d.blocks, p)
	return p
}

// AddPageBreak appends a paragraph holding a single page break.
func (d *Document) AddPageBreak() {
	p := &Paragraph{Runs: []*Run{{Break: &pageBreak{Type: "page"}}}}
	d.blocks = append(d.blocks, p)
}

// AddTable appends a centered, bordered, fixed-layout table whose columns
// take the given widths in twips.
func (d *Document) AddTable(colWidths []int) *Table {
	t := &Table{
		Props: tblProps{
			Width:   tblWidth{W: 0, Type: "auto"},
			Justify: &stringVal{Val: "center"},
			Borders: defaultBorders(),
			Layout:  &tblLayout{Type: "fixed"},
		},
		widths: colWidths,
	}
	for _, w := range colWidths {
		t.Grid.Cols = append(t.Grid.Cols, gridCol{W: w})
	}
	d.blocks = append(d.blocks, t)
	return t
}

func (d *Document) documentXML() ([]byte, error) {
	doc := document{
		NSW: nsW,
		NSR: nsR,
		Body: body{
			Blocks: d.blocks,
			Sect:   &d.sect,
		},
	}
	data, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// Paragraph is a block of text runs with optional spacing properties.
type Paragraph struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *paraProps
	Runs    []*Run
}

// AddText appends a run holding the given text and returns it for styling.
func (p *Paragraph) AddText(s string) *Run {
	r := &Run{Text: &text{Space: "preserve", Value: s}}
	p.Runs = append(p.Runs, r)
	return r
}

// SpacingBefore sets the space above the paragraph in twips.
func (p *Paragraph) SpacingBefore(twips int) *Paragraph {
	p.ensureSpacing().Before = &twips
	return p
}

// SpacingAfter sets the space below the paragraph in twips.
func (p *Paragraph) SpacingAfter(twips int) *Paragraph {
	p.ensureSpacing().After = &twips
	return p
}

func (p *Paragraph) ensureSpacing() *spacing {
	if p.Props == nil {
		p.Props = &paraProps{}
	}
	if p.Props.Spacing == nil {
		p.Props.Spacing = &spacing{}
	}
	return p.Props.Spacing
}

// Run is a span of text sharing one set of character properties.
type Run struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *runProps
	Break   *pageBreak `xml:"w:br"`
	Text    *text      `xml:"w:t"`
}

// Bold marks the run bold.
func (r *Run) Bold() *Run {
	r.props().Bold = &toggle{}
	return r
}

// Size sets the run font size in half-points.
func (r *Run) Size(halfPoints int) *Run {
	p := r.props()
	p.Size = &intVal{Val: halfPoints}
	p.SizeCs = &intVal{Val: halfPoints}
	return r
}

// Color sets the run color as an RRGGBB hex string.
func (r *Run) Color(hex string) *Run {
	r.props().Color = &stringVal{Val: hex}
	return r
}

// Font sets the run font for ascii, east asian and high ANSI ranges.
func (r *Run) Font(name string) *Run {
	r.props().Fonts = &runFonts{ASCII: name, EastAsia: name, HAnsi: name}
	return r
}

func (r *Run) props() *runProps {
	if r.Props == nil {
		r.Props = &runProps{}
	}
	return r.Props
}

// Table is a block-level table with a fixed column grid.
type Table struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   tblProps
	Grid    tblGrid
	Rows    []*TableRow

	widths []int
}

// AddRow appends a row. A positive height in twips is applied with the
// given rule; zero leaves the height automatic.
func (t *Table) AddRow(height int, rule HeightRule) *TableRow {
	r := &TableRow{table: t}
	if height > 0 {
		r.Props = &trProps{Height: &trHeight{Val: height, Rule: rule}}
	}
	t.Rows = append(t.Rows, r)
	return r
}

// TableRow is a single table row.
type TableRow struct {
	XMLName xml.Name `xml:"w:tr"`
	Props   *trProps
	Cells   []*TableCell

	table *Table
}

// AddCell appends a cell sized from the table grid at the cell's position.
// The cell starts with one paragraph with zero spacing so exact row
// heights are honored.
func (r *TableRow) AddCell() *TableCell {
	width := 0
	if i := len(r.Cells); i < len(r.table.widths) {
		width = r.table.widths[i]
	}
	zero := 0
	c := &TableCell{
		Props: tcProps{Width: tblWidth{W: width, Type: "dxa"}},
		Paras: []*Paragraph{{
			Props: &paraProps{Spacing: &spacing{Before: &zero, After: &zero}},
		}},
	}
	r.Cells = append(r.Cells, c)
	return c
}

// TableCell is a single table cell.
type TableCell struct {
	XMLName xml.Name `xml:"w:tc"`
	Props   tcProps
	Paras   []*Paragraph
}

// Shade fills the cell background with an RRGGBB hex color.
func (c *TableCell) Shade(fill string) *TableCell {
	c.Props.Shade = &shading{Val: "clear", Color: "auto", Fill: fill}
	return c
}

// Paragraph returns the cell's first paragraph.
func (c *TableCell) Paragraph() *Paragraph {
	return c.Paras[0]
}

// Marshaling types. Names keep their "w:" prefix so the emitted elements
// resolve against the xmlns:w declaration on w:document.

type document struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    body
}

type body struct {
	XMLName xml.Name `xml:"w:body"`
	Blocks  []any
	Sect    *sectPr
}

type sectPr struct {
	XMLName xml.Name    `xml:"w:sectPr"`
	Size    pageSize    `xml:"w:pgSz"`
	Margins pageMargins `xml:"w:pgMar"`
}

type pageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type paraProps struct {
	XMLName xml.Name `xml:"w:pPr"`
	Spacing *spacing
}

type spacing struct {
	XMLName xml.Name `xml:"w:spacing"`
	Before  *int     `xml:"w:before,attr,omitempty"`
	After   *int     `xml:"w:after,attr,omitempty"`
}

// runProps fields follow the rPr schema order: rFonts, b, color, sz, szCs.
type runProps struct {
	XMLName xml.Name   `xml:"w:rPr"`
	Fonts   *runFonts  `xml:"w:rFonts"`
	Bold    *toggle    `xml:"w:b"`
	Color   *stringVal `xml:"w:color"`
	Size    *intVal    `xml:"w:sz"`
	SizeCs  *intVal    `xml:"w:szCs"`
}

type runFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
}

// toggle marks an on/off run property that is on when present.
type toggle struct{}

type stringVal struct {
	Val string `xml:"w:val,attr"`
}

type intVal struct {
	Val int `xml:"w:val,attr"`
}

type pageBreak struct {
	Type string `xml:"w:type,attr"`
}

type text struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

// tblProps fields follow the tblPr schema order: tblW, jc, tblBorders,
// tblLayout.
type tblProps struct {
	XMLName xml.Name   `xml:"w:tblPr"`
	Width   tblWidth   `xml:"w:tblW"`
	Justify *stringVal `xml:"w:jc"`
	Borders *tblBorders
	Layout  *tblLayout `xml:"w:tblLayout"`
}

type tblWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tblLayout struct {
	Type string `xml:"w:type,attr"`
}

type tblBorders struct {
	XMLName xml.Name `xml:"w:tblBorders"`
	Top     border   `xml:"w:top"`
	Left    border   `xml:"w:left"`
	Bottom  border   `xml:"w:bottom"`
	Right   border   `xml:"w:right"`
	InsideH border   `xml:"w:insideH"`
	InsideV border   `xml:"w:insideV"`
}

// border size is in eighths of a point; 4 is the half-point grid line Word
// uses for its built-in table grid.
type border struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

func defaultBorders() *tblBorders {
	line := border{Val: "single", Size: 4, Space: 0, Color: "auto"}
	return &tblBorders{
		Top:     line,
		Left:    line,
		Bottom:  line,
		Right:   line,
		InsideH: line,
		InsideV: line,
	}
}

type tblGrid struct {
	XMLName xml.Name `xml:"w:tblGrid"`
	Cols    []gridCol
}

type gridCol struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       int      `xml:"w:w,attr"`
}

type trProps struct {
	XMLName xml.Name  `xml:"w:trPr"`
	Height  *trHeight `xml:"w:trHeight"`
}

type trHeight struct {
	Val  int        `xml:"w:val,attr"`
	Rule HeightRule `xml:"w:hRule,attr"`
}

type tcProps struct {
	XMLName xml.Name `xml:"w:tcPr"`
	Width   tblWidth `xml:"w:tcW"`
	Shade   *shading `xml:"w:shd"`
}

type shading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}
