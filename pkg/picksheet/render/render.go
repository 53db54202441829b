// Package render writes picking tables as printable warehouse documents.
//
// Each output format implements Renderer. The xlsx renderer produces a
// print-ready workbook for the office; the docx renderer produces a
// one-page-per-address sheet for the packing floor.
package render

import (
	"errors"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// ErrNilTable is returned when a renderer receives no picking table.
var ErrNilTable = errors.New("no picking table to render")

// Renderer writes a picking table to a file in one output format.
type Renderer interface {
	// Name identifies the output format, such as "xlsx" or "docx".
	Name() string
	// Render writes the table to path.
	Render(t *models.PickingTable, path string) error
}
