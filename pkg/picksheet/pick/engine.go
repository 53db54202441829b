// Package pick projects raw mall export tables onto the picking schema and
// groups them by delivery address with per-address subtotals.
package pick

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/colref"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// Direction orders codes within an address group.
type Direction string

const (
	// Descending sorts order codes from high to low (the stock behavior).
	Descending Direction = "desc"
	// Ascending sorts order codes from low to high.
	Ascending Direction = "asc"
)

// ParseDirection validates a direction flag value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Descending, "":
		return Descending, nil
	case Ascending:
		return Ascending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
}

// Project maps each source row onto the seven picking fields using the
// resolved column letters. The address is trimmed once here so sorting,
// grouping and rendering agree on the same key.
func Project(src *models.RawTable, cm colref.ColumnMap) ([]models.Row, error) {
	idx, err := cm.Resolve(src.Width())
	if err != nil {
		return nil, err
	}
	rows := make([]models.Row, 0, len(src.Rows))
	for r := range src.Rows {
		var row models.Row
		for f := models.Field(0); f < models.NumFields; f++ {
			row[f] = src.Cell(r, idx[f])
		}
		row[models.FieldAddress] = strings.TrimSpace(row[models.FieldAddress])
		rows = append(rows, row)
	}
	return rows, nil
}

// Sort orders rows by address ascending, then order code in the given
// direction. The sort is stable so full ties keep their input order.
func Sort(rows []models.Row, dir Direction) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a[models.FieldAddress] != b[models.FieldAddress] {
			return a[models.FieldAddress] < b[models.FieldAddress]
		}
		c := compareCodes(a[models.FieldCode], b[models.FieldCode])
		if dir == Ascending {
			return c < 0
		}
		return c > 0
	})
}

// compareCodes orders codes numerically when both sides parse as numbers;
// numbers sort before non-numbers; anything else falls back to byte order.
func compareCodes(a, b string) int {
	fa, aok := parseNumber(a)
	fb, bok := parseNumber(b)
	switch {
	case aok && bok:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a, b)
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// Group splits sorted rows into contiguous address runs and computes each
// run's subtotal row. Rows must already be sorted.
func Group(rows []models.Row) []models.AddressGroup {
	var groups []models.AddressGroup
	for start := 0; start < len(rows); {
		addr := rows[start][models.FieldAddress]
		end := start
		for end < len(rows) && rows[end][models.FieldAddress] == addr {
			end++
		}
		run := append([]models.Row(nil), rows[start:end]...)
		groups = append(groups, models.AddressGroup{
			Address:  addr,
			Rows:     run,
			Subtotal: subtotalRow(addr, run),
		})
		start = end
	}
	return groups
}

// subtotalRow builds the 합계 row: the quantity is the group sum with
// non-numeric cells counted as zero, rendered without a decimal point when
// integral so parsing it back gives the exact sum.
func subtotalRow(addr string, run []models.Row) models.Row {
	var sum float64
	for _, r := range run {
		if v, ok := parseNumber(r[models.FieldQuantity]); ok {
			sum += v
		}
	}
	var row models.Row
	row[models.FieldProduct] = models.TotalSentinel
	row[models.FieldQuantity] = strconv.FormatFloat(sum, 'f', -1, 64)
	row[models.FieldAddress] = addr
	return row
}

// Build runs the whole pipeline: project, sort, group.
func Build(src *models.RawTable, cm colref.ColumnMap, dir Direction) (*models.PickingTable, error) {
	rows, err := Project(src, cm)
	if err != nil {
		return nil, err
	}
	Sort(rows, dir)
	return &models.PickingTable{Groups: Group(rows)}, nil
}
