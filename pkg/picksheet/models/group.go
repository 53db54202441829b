package models

// AddressGroup is a maximal run of sorted rows sharing one delivery address,
// together with the group's computed subtotal row.
type AddressGroup struct {
	// Address is the trimmed delivery address shared by Rows.
	Address string
	// Rows holds the order rows of the group in sorted order.
	Rows []Row
	// Subtotal is the group's subtotal row (product cell = TotalSentinel).
	Subtotal Row
}

// PickingTable is the grouped output of the picking pipeline. It is built
// once and treated as read-only by renderers.
type PickingTable struct {
	// Groups holds the address groups in ascending address order.
	Groups []AddressGroup
}

// RowCount returns the number of order rows across all groups, subtotal rows
// excluded.
func (t *PickingTable) RowCount() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Rows)
	}
	return n
}

// GroupCount returns the number of distinct delivery addresses.
func (t *PickingTable) GroupCount() int {
	return len(t.Groups)
}

// Flatten returns rows and subtotals interleaved in group order: each group's
// rows followed by its subtotal row.
func (t *PickingTable) Flatten() []Row {
	out := make([]Row, 0, t.RowCount()+t.GroupCount())
	for _, g := range t.Groups {
		out = append(out, g.Rows...)
		out = append(out, g.Subtotal)
	}
	return out
}
