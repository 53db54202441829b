// Package picksheet turns mall order exports into warehouse picking
// sheets and related fulfillment artifacts.
package picksheet

import (
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/colref"
	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/pick"
)

// Options configures picking sheet builds.
type Options struct {
	// Columns maps picking fields to source column letters.
	// If nil, colref.DefaultColumnMap is used.
	Columns colref.ColumnMap
	// Direction orders linkage codes within each address group.
	// If empty, codes sort descending.
	Direction pick.Direction
	// XLSXPath is the workbook output path. Empty skips the workbook.
	XLSXPath string
	// DocxPath is the document output path. Empty skips the document.
	DocxPath string
	// SheetName overrides the workbook's default sheet name.
	SheetName string
	// NoPageBreaks keeps workbook address groups on shared pages.
	NoPageBreaks bool
}

// DefaultOptions returns default build options.
func DefaultOptions() Options {
	return Options{
		Direction: pick.Descending,
	}
}

func (o Options) columns() colref.ColumnMap {
	if o.Columns != nil {
		return o.Columns
	}
	return colref.DefaultColumnMap()
}

func (o Options) direction() pick.Direction {
	if o.Direction != "" {
		return o.Direction
	}
	return pick.Descending
}
