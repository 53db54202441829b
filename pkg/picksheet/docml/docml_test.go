package docml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func TestUnits(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"Inches(8.27)", Inches(8.27), 11909},
		{"Inches(11.69)", Inches(11.69), 16834},
		{"Inches(0.35)", Inches(0.35), 504},
		{"Points(26)", Points(26), 520},
		{"Points(4)", Points(4), 80},
		{"HalfPoints(9)", HalfPoints(9), 18},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func buildSampleDoc() *Document {
	d := New()
	d.SetDefaultFont("맑은 고딕", 18)
	d.SetPageSize(Inches(8.27), Inches(11.69))
	d.SetMargins(Inches(0.35), Inches(0.35), Inches(0.35), Inches(0.35))

	heading := d.AddParagraph().SpacingAfter(Points(4))
	heading.AddText("주소: 서울시 마포구").Bold().Size(20)

	tbl := d.AddTable([]int{Inches(1), Inches(2)})
	row := tbl.AddRow(Points(26), RuleExact)
	row.AddCell().Shade("EFEFEF").Paragraph().AddText("A-1").Size(28).Bold()
	row.AddCell().Paragraph().AddText("오이 10kg").Size(16)
	row2 := tbl.AddRow(Points(26), RuleExact)
	row2.AddCell().Paragraph().AddText("B-2").Size(28)
	row2.AddCell().Paragraph().AddText("감자 20kg").Size(16).Color("FF0000")

	d.AddPageBreak()
	return d
}

func writePackage(t *testing.T, d *Document) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		t.Fatalf("Failed to write package: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to reopen package: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("Part %s not found in package", name)
	return nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func TestWritePackageParts(t *testing.T) {
	zr := writePackage(t, buildSampleDoc())

	want := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
	}
	for _, name := range want {
		readPart(t, zr, name)
	}
	if len(zr.File) != len(want) {
		t.Errorf("Expected %d parts, got %d", len(want), len(zr.File))
	}
}

func TestDocumentXML(t *testing.T) {
	zr := writePackage(t, buildSampleDoc())
	data := readPart(t, zr, "word/document.xml")

	var (
		tables, rows, cells, bolds, breaks int
		texts, shades, sizes               []string
		trHeightVal, trHeightRule          string
		pageW, pageH, marginTop            string
		breakType                          string
		inText                             bool
	)

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Failed to decode document.xml: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				tables++
			case "tr":
				rows++
			case "tc":
				cells++
			case "b":
				bolds++
			case "br":
				breaks++
				breakType = attrValue(el, "type")
			case "shd":
				shades = append(shades, attrValue(el, "fill"))
			case "sz":
				sizes = append(sizes, attrValue(el, "val"))
			case "trHeight":
				trHeightVal = attrValue(el, "val")
				trHeightRule = attrValue(el, "hRule")
			case "pgSz":
				pageW = attrValue(el, "w")
				pageH = attrValue(el, "h")
			case "pgMar":
				marginTop = attrValue(el, "top")
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				texts = append(texts, string(el))
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
			}
		}
	}

	if tables != 1 {
		t.Errorf("Expected 1 table, got %d", tables)
	}
	if rows != 2 {
		t.Errorf("Expected 2 rows, got %d", rows)
	}
	if cells != 4 {
		t.Errorf("Expected 4 cells, got %d", cells)
	}
	if breaks != 1 || breakType != "page" {
		t.Errorf("Expected 1 page break, got %d of type %q", breaks, breakType)
	}
	if len(texts) == 0 || texts[0] != "주소: 서울시 마포구" {
		t.Errorf("Heading text missing, got %v", texts)
	}
	if len(shades) != 1 || shades[0] != "EFEFEF" {
		t.Errorf("Expected one EFEFEF shade, got %v", shades)
	}
	if trHeightVal != "520" || trHeightRule != "exact" {
		t.Errorf("Row height = %s/%s, want 520/exact", trHeightVal, trHeightRule)
	}
	if pageW != "11909" || pageH != "16834" {
		t.Errorf("Page size = %sx%s, want 11909x16834", pageW, pageH)
	}
	if marginTop != "504" {
		t.Errorf("Top margin = %s, want 504", marginTop)
	}
	// Heading bold plus the A-1 bold run.
	if bolds != 2 {
		t.Errorf("Expected 2 bold runs, got %d", bolds)
	}
	wantSizes := []string{"20", "28", "16", "28", "16"}
	if len(sizes) != len(wantSizes) {
		t.Fatalf("Expected %d sz elements, got %d (%v)", len(wantSizes), len(sizes), sizes)
	}
	for i, want := range wantSizes {
		if sizes[i] != want {
			t.Errorf("sz[%d] = %s, want %s", i, sizes[i], want)
		}
	}
}

func TestStylesDefaultFont(t *testing.T) {
	zr := writePackage(t, buildSampleDoc())
	styles := string(readPart(t, zr, "word/styles.xml"))

	if !strings.Contains(styles, `w:ascii="맑은 고딕"`) {
		t.Errorf("Default font missing from styles: %s", styles)
	}
	if !strings.Contains(styles, `w:val="18"`) {
		t.Errorf("Default size missing from styles: %s", styles)
	}
}

func TestSaveCreatesFile(t *testing.T) {
	path := t.TempDir() + "/out.docx"
	if err := buildSampleDoc().Save(path); err != nil {
		t.Fatalf("Failed to save docx: %v", err)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to reopen saved docx: %v", err)
	}
	defer zr.Close()
	readPart(t, &zr.Reader, "word/document.xml")
}
