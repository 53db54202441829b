// Package csvenc writes raw tables as CSV in the encodings Korean
// fulfillment tools expect.
//
// Output defaults to cp949 with comma separators, which Korean Excel
// installs open cleanly. Phone-number-like columns are wrapped as
// ="value" so spreadsheets keep their leading zeros.
package csvenc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// Encoding names an output byte encoding.
type Encoding string

const (
	// UTF8 writes plain UTF-8 without a byte order mark.
	UTF8 Encoding = "utf-8"
	// UTF8SIG writes UTF-8 with a byte order mark.
	UTF8SIG Encoding = "utf-8-sig"
	// CP949 writes the Windows Korean code page.
	CP949 Encoding = "cp949"
	// EUCKR writes EUC-KR, byte-identical to cp949 here.
	EUCKR Encoding = "euc-kr"
)

// ParseEncoding maps a flag value to an Encoding. Empty selects cp949.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CP949, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-8-sig", "utf8-sig":
		return UTF8SIG, nil
	case "cp949":
		return CP949, nil
	case "euc-kr", "euckr":
		return EUCKR, nil
	}
	return "", fmt.Errorf("unknown encoding: %s", s)
}

// ParseSeparator maps a flag value to a separator rune. Empty selects
// the comma.
func ParseSeparator(s string) (rune, error) {
	if s == "\t" {
		return '\t', nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "comma", ",":
		return ',', nil
	case "semicolon", ";":
		return ';', nil
	case "tab", `\t`:
		return '\t', nil
	case "pipe", "|":
		return '|', nil
	}
	return 0, fmt.Errorf("unknown separator: %s", s)
}

// Options configures CSV output.
type Options struct {
	// Encoding selects the output byte encoding.
	// If empty, cp949 is used.
	Encoding Encoding
	// Separator is the field separator.
	// If zero, the comma is used.
	Separator rune
	// GuardPhoneText wraps values in phone-number-like columns as
	// ="value" so Excel does not strip leading zeros.
	// If nil, defaults to true.
	GuardPhoneText *bool
}

func (o Options) encoding() Encoding {
	if o.Encoding != "" {
		return o.Encoding
	}
	return CP949
}

func (o Options) separator() rune {
	if o.Separator != 0 {
		return o.Separator
	}
	return ','
}

// ShouldGuardPhoneText returns whether phone-number-like columns are
// wrapped as Excel text.
func (o Options) ShouldGuardPhoneText() bool {
	if o.GuardPhoneText != nil {
		return *o.GuardPhoneText
	}
	return true
}

// phonePattern matches the headers whose values carry leading zeros.
var phonePattern = regexp.MustCompile(`전화번호|연락처|휴대폰`)

// GuardExcelText wraps s as ="s" so Excel keeps it textual. Empty and
// already wrapped values pass through.
func GuardExcelText(s string) string {
	if s == "" || strings.HasPrefix(s, `="`) {
		return s
	}
	return `="` + s + `"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Write saves a raw table as a CSV file.
func Write(t *models.RawTable, path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	if err := WriteTo(f, t, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTo streams a raw table as CSV, for zip entries and buffers.
func WriteTo(w io.Writer, t *models.RawTable, opts Options) error {
	out := w
	var flush io.Closer
	switch opts.encoding() {
	case UTF8SIG:
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write byte order mark: %w", err)
		}
	case CP949, EUCKR:
		// The transform writer buffers, so it must be closed after the
		// csv writer flushes.
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(korean.EUCKR.NewEncoder()))
		out = tw
		flush = tw
	}

	guarded := make(map[int]bool)
	if opts.ShouldGuardPhoneText() {
		for c, h := range t.Headers {
			if phonePattern.MatchString(h) {
				guarded[c] = true
			}
		}
	}

	cw := csv.NewWriter(out)
	cw.Comma = opts.separator()
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	row := make([]string, t.Width())
	for r := range t.Rows {
		for c := 0; c < t.Width(); c++ {
			v := t.Cell(r, c)
			if guarded[c] {
				v = GuardExcelText(v)
			}
			row[c] = v
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	if flush != nil {
		if err := flush.Close(); err != nil {
			return fmt.Errorf("failed to flush encoder: %w", err)
		}
	}
	return nil
}
