package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultTemplateColumns is the seven-column 3PL order template the
// converted workbooks follow.
var DefaultTemplateColumns = []string{
	"주문번호",
	"받는분 이름",
	"받는분 주소",
	"받는분 전화번호",
	"상품명",
	"수량",
	"메모",
}

// LetterMapping maps template column names to source column letters.
// An empty letter leaves the template column blank.
type LetterMapping map[string]string

// DefaultLaoraMapping returns the stock laora column letters.
func DefaultLaoraMapping() LetterMapping {
	return LetterMapping{
		"주문번호":     "A",
		"받는분 이름":   "I",
		"받는분 주소":   "L",
		"받는분 전화번호": "J",
		"상품명":      "D",
		"수량":       "G",
		"메모":       "M",
	}
}

// coupangMapping is fixed; coupang exports do not vary per seller.
func coupangMapping() LetterMapping {
	return LetterMapping{
		"주문번호":     "C",
		"받는분 이름":   "AA",
		"받는분 주소":   "AD",
		"받는분 전화번호": "AB",
		"상품명":      "P",
		"수량":       "W",
		"메모":       "AE",
	}
}

// ttarimallMapping is fixed. The product column V is combined with the
// option column S by the S&V rule at conversion time.
func ttarimallMapping() LetterMapping {
	return LetterMapping{
		"주문번호":     "H",
		"받는분 이름":   "AB",
		"받는분 주소":   "AE",
		"받는분 전화번호": "AC",
		"상품명":      "V",
		"수량":       "Y",
		"메모":       "AA",
	}
}

var letterPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// LoadMapping reads a {column: letter} JSON file and overlays it on the
// default laora mapping. Keys outside the template columns are dropped,
// letters are uppercased, and template columns missing from the file
// keep their defaults. An empty letter is kept and leaves the column
// blank.
func LoadMapping(path string, templateCols []string) (LetterMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	if templateCols == nil {
		templateCols = DefaultTemplateColumns
	}
	defaults := DefaultLaoraMapping()
	m := make(LetterMapping, len(templateCols))
	for _, col := range templateCols {
		letter, ok := raw[col]
		if !ok {
			m[col] = defaults[col]
			continue
		}
		letter = strings.TrimSpace(letter)
		if letter != "" && !letterPattern.MatchString(letter) {
			return nil, fmt.Errorf("mapping for %q: invalid column letter %q", col, letter)
		}
		m[col] = strings.ToUpper(letter)
	}
	return m, nil
}

// SaveMapping writes the mapping as indented JSON.
func SaveMapping(path string, m LetterMapping) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
