package models

// RawTable is a first-row-headers worksheet table with every cell kept as
// text. Loaders pad headers and rows to a common width so positional access
// never goes out of bounds.
type RawTable struct {
	// Headers holds the first row of the sheet.
	Headers []string
	// Rows holds the data rows below the header row.
	Rows [][]string
}

// Width returns the column count of the table.
func (t *RawTable) Width() int {
	return len(t.Headers)
}

// Cell returns the cell at row r, column c, or "" when out of range.
func (t *RawTable) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) {
		return ""
	}
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Column returns all values of column c in row order.
func (t *RawTable) Column(c int) []string {
	out := make([]string, len(t.Rows))
	for r := range t.Rows {
		out[r] = t.Cell(r, c)
	}
	return out
}

// HeaderIndex returns the index of the first header equal to name, or -1.
func (t *RawTable) HeaderIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// AppendColumn adds a column with the given header, fills every row with
// fill, and returns the new column's index.
func (t *RawTable) AppendColumn(name, fill string) int {
	idx := len(t.Headers)
	t.Headers = append(t.Headers, name)
	for r := range t.Rows {
		for len(t.Rows[r]) < idx {
			t.Rows[r] = append(t.Rows[r], "")
		}
		t.Rows[r] = append(t.Rows[r], fill)
	}
	return idx
}

// SetCell writes the cell at row r, column c, growing the row if a previous
// AppendColumn left it short.
func (t *RawTable) SetCell(r, c int, v string) {
	if r < 0 || r >= len(t.Rows) || c < 0 {
		return
	}
	for len(t.Rows[r]) <= c {
		t.Rows[r] = append(t.Rows[r], "")
	}
	t.Rows[r][c] = v
}
