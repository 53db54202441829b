// Package tracking reconciles courier tracking numbers with marketplace
// order exports.
//
// A courier invoice is reduced to (order id, tracking number) pairs,
// the pairs are classified by marketplace from the shape of the order
// id, and each marketplace's order export is filled the way that mall's
// dispatch upload expects.
package tracking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// OrderKeys are the headers recognized as order-number columns in
// courier invoices.
var OrderKeys = []string{"주문번호", "주문ID", "주문코드", "주문번호1", "고객주문번호"}

// TrackingKeys are the headers recognized as tracking-number columns.
var TrackingKeys = []string{"송장번호", "운송장번호", "운송장", "등기번호", "운송장 번호", "송장번호1"}

// ttarimall order exports use a narrower order-number set.
var tmOrderKeys = []string{"주문번호", "주문ID", "주문코드", "주문번호1"}

// smartstore order exports key strictly on 주문번호.
var ssOrderKeys = []string{"주문번호"}

// Entry pairs an order id with its tracking number.
type Entry struct {
	OrderID  string
	Tracking string
}

// Extract reduces a courier invoice to its (order id, tracking number)
// pairs. Rows with either side empty are dropped; when an order id
// repeats, the last tracking number wins but the id keeps its first
// position.
func Extract(t *models.RawTable) ([]Entry, error) {
	orderCol, err := t.FindColumn(OrderKeys...)
	if err != nil {
		return nil, fmt.Errorf("invoice order column: %w", err)
	}
	trackCol, err := t.FindColumn(TrackingKeys...)
	if err != nil {
		return nil, fmt.Errorf("invoice tracking column: %w", err)
	}

	index := make(map[string]int)
	var entries []Entry
	for r := range t.Rows {
		order := t.Cell(r, orderCol)
		track := t.Cell(r, trackCol)
		if order == "" || track == "" {
			continue
		}
		if i, ok := index[order]; ok {
			entries[i].Tracking = track
			continue
		}
		index[order] = len(entries)
		entries = append(entries, Entry{OrderID: order, Tracking: track})
	}
	return entries, nil
}

// Classification buckets invoice entries by marketplace.
type Classification struct {
	// Lao holds entries whose order id contains "LO".
	Lao []Entry
	// Smartstore holds entries whose order id carries 16 digits.
	Smartstore []Entry
	// All holds every entry for the exact and digit matchers.
	All []Entry
}

// Classify buckets entries by the shape of their trimmed order id. Lao
// wins over smartstore when an id matches both.
func Classify(entries []Entry) Classification {
	c := Classification{All: entries}
	for _, e := range entries {
		id := strings.TrimSpace(e.OrderID)
		switch {
		case strings.Contains(strings.ToUpper(id), "LO"):
			c.Lao = append(c.Lao, Entry{OrderID: id, Tracking: e.Tracking})
		case len(DigitsOnly(id)) == 16:
			c.Smartstore = append(c.Smartstore, Entry{OrderID: id, Tracking: e.Tracking})
		}
	}
	return c
}

var nonDigits = regexp.MustCompile(`\D+`)

// DigitsOnly strips everything but digits from s.
func DigitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}
