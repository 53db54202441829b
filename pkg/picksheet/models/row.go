// Package models defines the data structures shared by the picking sheet
// pipeline: raw worksheet tables, projected picking rows, and address groups.
package models

import "strings"

// Field identifies one logical column of a picking row.
type Field int

const (
	// FieldCode is the product link code column (상품연동코드).
	FieldCode Field = iota
	// FieldProduct is the ordered product column (주문상품).
	FieldProduct
	// FieldOption is the product option column (옵션).
	FieldOption
	// FieldQuantity is the order quantity column (주문수량).
	FieldQuantity
	// FieldCustomer is the ordering member column (주문회원).
	FieldCustomer
	// FieldAddress is the delivery address column (주소).
	FieldAddress
	// FieldNote is the delivery request column (주문요청사항).
	FieldNote

	// NumFields is the number of logical picking columns.
	NumFields
)

var fieldHeaders = [NumFields]string{
	"상품연동코드",
	"주문상품",
	"옵션",
	"주문수량",
	"주문회원",
	"주소",
	"주문요청사항",
}

// Header returns the Korean column header of the field.
func (f Field) Header() string {
	if f < 0 || f >= NumFields {
		return ""
	}
	return fieldHeaders[f]
}

// Headers returns the picking sheet column headers in output order.
func Headers() []string {
	h := make([]string, NumFields)
	copy(h, fieldHeaders[:])
	return h
}

// FieldByHeader returns the field whose Korean header equals name.
func FieldByHeader(name string) (Field, bool) {
	for f, h := range fieldHeaders {
		if h == name {
			return Field(f), true
		}
	}
	return 0, false
}

// TotalSentinel marks a subtotal row in the product column.
const TotalSentinel = "합계"

// Row is a single picking row holding one value per Field in declared order.
// Cells keep the source text; numeric meaning is applied where needed.
type Row [NumFields]string

// IsSubtotal reports whether the row is a per-address subtotal row.
func (r Row) IsSubtotal() bool {
	return strings.Contains(r[FieldProduct], TotalSentinel)
}
