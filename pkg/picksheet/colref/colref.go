// Package colref converts spreadsheet column letters to zero-based indexes
// and binds the picking sheet's logical fields to source columns.
package colref

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// ErrBadColumnLetter indicates a malformed column letter reference.
var ErrBadColumnLetter = errors.New("invalid column letter")

// ErrMissingField indicates a logical column with no letter assigned.
var ErrMissingField = errors.New("no column letter for field")

// ErrColumnOutOfRange indicates a letter beyond the sheet's last column.
var ErrColumnOutOfRange = errors.New("column out of range")

var letterPattern = regexp.MustCompile(`^[A-Z]+$`)

// Index converts a column letter reference ("A", "J", "AA") to a zero-based
// column index. Letters are trimmed and case-insensitive.
func Index(letter string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(letter))
	if !letterPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrBadColumnLetter, letter)
	}
	n, err := excelize.ColumnNameToNumber(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadColumnLetter, letter)
	}
	return n - 1, nil
}

// Letter converts a zero-based column index back to its letter reference.
func Letter(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: index %d", ErrBadColumnLetter, index)
	}
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return "", fmt.Errorf("%w: index %d", ErrBadColumnLetter, index)
	}
	return name, nil
}

// Letters returns the first n column letters ("A" through the nth).
func Letters(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name, err := Letter(i)
		if err != nil {
			break
		}
		out = append(out, name)
	}
	return out
}

// ColumnMap binds each logical picking field to a source column letter.
type ColumnMap map[models.Field]string

// DefaultColumnMap returns the stock mall export layout.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		models.FieldCode:     "J",
		models.FieldProduct:  "K",
		models.FieldOption:   "L",
		models.FieldQuantity: "N",
		models.FieldCustomer: "Q",
		models.FieldAddress:  "V",
		models.FieldNote:     "W",
	}
}

// Resolve converts the map to zero-based column indexes and validates them
// against a table width columns wide.
func (m ColumnMap) Resolve(width int) ([models.NumFields]int, error) {
	var idx [models.NumFields]int
	for f := models.Field(0); f < models.NumFields; f++ {
		letter := strings.TrimSpace(m[f])
		if letter == "" {
			return idx, fmt.Errorf("%w: %s", ErrMissingField, f.Header())
		}
		i, err := Index(letter)
		if err != nil {
			return idx, fmt.Errorf("column for %s: %w", f.Header(), err)
		}
		if i >= width {
			return idx, fmt.Errorf("%w: %s wants %s (column %d) but the sheet has %d columns",
				ErrColumnOutOfRange, f.Header(), strings.ToUpper(letter), i+1, width)
		}
		idx[f] = i
	}
	return idx, nil
}

// LoadColumnMap reads a JSON mapping file keyed by Korean column headers
// ({"주문상품": "K", ...}) and overlays it on the default layout. Unknown keys
// are ignored; missing keys keep their defaults.
func LoadColumnMap(path string) (ColumnMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var byHeader map[string]string
	if err := json.Unmarshal(data, &byHeader); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}
	m := DefaultColumnMap()
	for name, letter := range byHeader {
		f, ok := models.FieldByHeader(strings.TrimSpace(name))
		if !ok {
			continue
		}
		if strings.TrimSpace(letter) == "" {
			continue
		}
		if _, err := Index(letter); err != nil {
			return nil, fmt.Errorf("mapping for %s: %w", name, err)
		}
		m[f] = strings.ToUpper(strings.TrimSpace(letter))
	}
	return m, nil
}

// SaveColumnMap writes the mapping as indented JSON keyed by Korean column
// headers, the layout LoadColumnMap reads back.
func SaveColumnMap(path string, m ColumnMap) error {
	byHeader := make(map[string]string, len(m))
	for f, letter := range m {
		byHeader[f.Header()] = letter
	}
	data, err := json.MarshalIndent(byHeader, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
