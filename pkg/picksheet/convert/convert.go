// Package convert reshapes marketplace order exports into the common
// 3PL order template.
//
// Laora, coupang and ttarimall exports keep stable column positions, so
// their converters move columns by letter. Smartstore reshuffles
// columns between exports and is converted by header keywords instead.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/colref"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// Platform identifies a marketplace export layout.
type Platform string

const (
	// PlatformAuto detects the platform from the header row.
	PlatformAuto Platform = "auto"
	// PlatformLaora is the 3PL's own export, moved by letter mapping.
	PlatformLaora Platform = "laora"
	// PlatformCoupang is a coupang export with fixed columns.
	PlatformCoupang Platform = "coupang"
	// PlatformSmartstore is a smartstore export, matched by headers.
	PlatformSmartstore Platform = "smartstore"
	// PlatformTtarimall is a ttarimall export with fixed columns.
	PlatformTtarimall Platform = "ttarimall"
)

// ParsePlatform parses a platform name. Empty means auto.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformAuto, "":
		return PlatformAuto, nil
	case PlatformLaora:
		return PlatformLaora, nil
	case PlatformCoupang:
		return PlatformCoupang, nil
	case PlatformSmartstore:
		return PlatformSmartstore, nil
	case PlatformTtarimall:
		return PlatformTtarimall, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// ErrEmptyMapping indicates a letter mapping with no bound columns.
var ErrEmptyMapping = errors.New("letter mapping has no columns bound")

// Options configures conversions.
type Options struct {
	// TemplateColumns override the 3PL template header row.
	// If nil, DefaultTemplateColumns is used.
	TemplateColumns []string
	// LaoraMapping overrides the laora column letters.
	// If nil, DefaultLaoraMapping is used.
	LaoraMapping LetterMapping
}

func (o Options) templateColumns() []string {
	if o.TemplateColumns != nil {
		return o.TemplateColumns
	}
	return DefaultTemplateColumns
}

func (o Options) laoraMapping() LetterMapping {
	if o.LaoraMapping != nil {
		return o.LaoraMapping
	}
	return DefaultLaoraMapping()
}

// Result is a converted order table.
type Result struct {
	Platform Platform
	Table    *models.RawTable
}

// Convert reshapes src into the 3PL order template.
func Convert(src *models.RawTable, platform Platform, opts Options) (*Result, error) {
	if platform == PlatformAuto || platform == "" {
		platform = Detect(src)
	}
	cols := opts.templateColumns()

	var (
		out *models.RawTable
		err error
	)
	switch platform {
	case PlatformLaora:
		out, err = convertLaora(src, cols, opts.laoraMapping())
	case PlatformCoupang:
		out, err = convertByLetters(src, cols, coupangMapping())
	case PlatformTtarimall:
		out, err = convertTtarimall(src, cols)
	case PlatformSmartstore:
		out, err = convertSmartstore(src, cols)
	default:
		return nil, fmt.Errorf("unknown platform %q", platform)
	}
	if err != nil {
		return nil, err
	}

	coerceQuantity(out)
	return &Result{Platform: platform, Table: out}, nil
}

func convertLaora(src *models.RawTable, cols []string, m LetterMapping) (*models.RawTable, error) {
	bound := 0
	for _, letter := range m {
		if letter != "" {
			bound++
		}
	}
	if bound == 0 {
		return nil, ErrEmptyMapping
	}
	return convertByLetters(src, cols, m)
}

// convertByLetters fills template columns from fixed source positions.
// Unbound columns stay empty; bound letters outside the source width
// are an error.
func convertByLetters(src *models.RawTable, cols []string, m LetterMapping) (*models.RawTable, error) {
	out := newTemplate(cols, len(src.Rows))
	for c, col := range cols {
		letter := m[col]
		if letter == "" {
			continue
		}
		idx, err := colref.Index(letter)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		if idx >= src.Width() {
			return nil, fmt.Errorf("%w: %s wants column %s but the sheet has %d columns",
				colref.ErrColumnOutOfRange, col, letter, src.Width())
		}
		for r := range src.Rows {
			out.Rows[r][c] = src.Cell(r, idx)
		}
	}
	return out, nil
}

// convertTtarimall applies the fixed letters plus the S&V product rule:
// unless the option column S repeats the product column V, the option
// text prefixes the product name.
func convertTtarimall(src *models.RawTable, cols []string) (*models.RawTable, error) {
	out, err := convertByLetters(src, cols, ttarimallMapping())
	if err != nil {
		return nil, err
	}
	productCol := indexOf(cols, "상품명")
	if productCol < 0 {
		return out, nil
	}

	optIdx, err := colref.Index("S")
	if err != nil {
		return nil, err
	}
	if optIdx >= src.Width() {
		return nil, fmt.Errorf("%w: 상품명 wants column S but the sheet has %d columns",
			colref.ErrColumnOutOfRange, src.Width())
	}
	for r := range out.Rows {
		s := src.Cell(r, optIdx)
		if v := out.Rows[r][productCol]; s != v {
			out.Rows[r][productCol] = s + v
		}
	}
	return out, nil
}

// smartstoreKeywords finds each template column by header keywords,
// first match winning.
var smartstoreKeywords = map[string][]string{
	"주문번호":     {"주문번호"},
	"받는분 이름":   {"수취인명"},
	"받는분 주소":   {"통합배송지"},
	"받는분 전화번호": {"수취인연락처1", "수취인연락처", "수취인휴대폰", "연락처1"},
	"상품명":      {"상품명"},
	"수량":       {"수량", "구매수량"},
	"메모":       {"배송메세지", "배송메시지", "배송요청사항"},
}

var smartstoreOptionKeywords = []string{"옵션정보", "옵션명", "옵션내용"}

func convertSmartstore(src *models.RawTable, cols []string) (*models.RawTable, error) {
	out := newTemplate(cols, len(src.Rows))
	for c, col := range cols {
		keywords, ok := smartstoreKeywords[col]
		if !ok {
			continue
		}
		idx, err := src.FindColumn(keywords...)
		if err != nil {
			return nil, fmt.Errorf("smartstore %s: %w", col, err)
		}
		for r := range src.Rows {
			out.Rows[r][c] = src.Cell(r, idx)
		}
	}

	// The ordered product name is the listing name plus the chosen
	// option, run together.
	if productCol := indexOf(cols, "상품명"); productCol >= 0 {
		optIdx, err := src.FindColumn(smartstoreOptionKeywords...)
		if err != nil {
			return nil, fmt.Errorf("smartstore 상품명: %w", err)
		}
		for r := range out.Rows {
			out.Rows[r][productCol] += src.Cell(r, optIdx)
		}
	}
	return out, nil
}

// coerceQuantity normalizes the 수량 column: parseable values become
// canonical numbers, everything else becomes empty.
func coerceQuantity(t *models.RawTable) {
	c := t.HeaderIndex("수량")
	if c < 0 {
		return
	}
	for r := range t.Rows {
		v := strings.TrimSpace(t.Cell(r, c))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			t.SetCell(r, c, "")
			continue
		}
		t.SetCell(r, c, strconv.FormatFloat(n, 'f', -1, 64))
	}
}

func newTemplate(cols []string, rows int) *models.RawTable {
	t := &models.RawTable{Headers: append([]string(nil), cols...)}
	t.Rows = make([][]string, rows)
	for i := range t.Rows {
		t.Rows[i] = make([]string, len(cols))
	}
	return t
}

func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}
