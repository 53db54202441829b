package tracking

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

func TestFillSmartstore(t *testing.T) {
	orders := &models.RawTable{
		Headers: []string{"주문번호", "수취인명", "송장번호", "택배사"},
		Rows: [][]string{
			{"2025111122223333", "김하나", "", ""},
			{"2025444455556666", "박두리", "HAND-1", ""},
			{"2025777788889999", "최세나", "  ", "한진택배"},
			{"9999", "정네리", "", ""},
		},
	}
	entries := []Entry{
		{OrderID: "2025111122223333", Tracking: "T1"},
		{OrderID: "2025444455556666", Tracking: "T2"},
		{OrderID: "2025777788889999", Tracking: "T3"},
	}

	out, filled, err := FillSmartstore(orders, entries, Options{})
	if err != nil {
		t.Fatalf("FillSmartstore failed: %v", err)
	}
	if filled != 2 {
		t.Errorf("Expected 2 fills, got %d", filled)
	}

	want := [][]string{
		{"2025111122223333", "김하나", "T1", "CJ대한통운"},
		{"2025444455556666", "박두리", "HAND-1", "CJ대한통운"},
		{"2025777788889999", "최세나", "T3", "한진택배"},
		{"9999", "정네리", "", "CJ대한통운"},
	}
	if diff := cmp.Diff(want, out.Rows); diff != "" {
		t.Errorf("Row mismatch (-want +got):\n%s", diff)
	}

	if orders.Rows[0][2] != "" {
		t.Errorf("Source table was mutated: %q", orders.Rows[0][2])
	}
}

func TestFillSmartstoreAppendsColumns(t *testing.T) {
	orders := &models.RawTable{
		Headers: []string{"주문번호", "수취인명"},
		Rows:    [][]string{{"2025111122223333", "김하나"}},
	}
	entries := []Entry{{OrderID: "2025111122223333", Tracking: "T1"}}

	out, filled, err := FillSmartstore(orders, entries, Options{})
	if err != nil {
		t.Fatalf("FillSmartstore failed: %v", err)
	}
	if filled != 1 {
		t.Errorf("Expected 1 fill, got %d", filled)
	}

	wantHeaders := []string{"주문번호", "수취인명", "송장번호", "택배사"}
	if diff := cmp.Diff(wantHeaders, out.Headers); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
	wantRow := []string{"2025111122223333", "김하나", "T1", "CJ대한통운"}
	if diff := cmp.Diff(wantRow, out.Rows[0]); diff != "" {
		t.Errorf("Row mismatch (-want +got):\n%s", diff)
	}
}

func TestFillSmartstoreMissingOrderColumn(t *testing.T) {
	orders := &models.RawTable{Headers: []string{"수취인명"}}
	if _, _, err := FillSmartstore(orders, nil, Options{}); !errors.Is(err, models.ErrHeaderNotFound) {
		t.Errorf("Expected ErrHeaderNotFound, got %v", err)
	}
}

// coupangInvoice builds a 16-column invoice so the order id sits in
// column P by position, with the tracking numbers under 운송장번호.
func coupangInvoice(rows [][]string) *models.RawTable {
	headers := make([]string, 16)
	for i := range headers {
		headers[i] = fmt.Sprintf("열%d", i+1)
	}
	headers[4] = "운송장번호"
	return &models.RawTable{Headers: headers, Rows: rows}
}

func invoiceRow(orderID, tracking string) []string {
	row := make([]string, 16)
	row[15] = orderID
	row[4] = tracking
	return row
}

func TestFillCoupang(t *testing.T) {
	invoice := coupangInvoice([][]string{
		invoiceRow("2025-1000", "T-100"),
		invoiceRow("", "T-X"),
		invoiceRow("3000", ""),
		invoiceRow("4000", "T-400"),
	})
	orders := &models.RawTable{
		Headers: []string{"번호", "묶음배송번호", "주문번호", "수취인", "운송장번호"},
		Rows: [][]string{
			{"1", "B1", "20251000", "김하나", "OLD"},
			{"2", "B2", "777", "박두리", ""},
			{"3", "B3", "  ", "최세나", ""},
		},
	}

	out, matched, err := FillCoupang(orders, invoice)
	if err != nil {
		t.Fatalf("FillCoupang failed: %v", err)
	}
	if matched != 1 {
		t.Errorf("Expected 1 match, got %d", matched)
	}
	if out.Rows[0][4] != "T-100" {
		t.Errorf("Expected T-100 over the old value, got %q", out.Rows[0][4])
	}
	if out.Rows[1][4] != "" {
		t.Errorf("Unmatched row should stay empty, got %q", out.Rows[1][4])
	}
	if orders.Rows[0][4] != "OLD" {
		t.Errorf("Source table was mutated: %q", orders.Rows[0][4])
	}
}

func TestFillCoupangNarrowFiles(t *testing.T) {
	// A short invoice falls back to header search and a short order
	// file gets the tracking column appended.
	invoice := &models.RawTable{
		Headers: []string{"주문번호", "송장번호"},
		Rows:    [][]string{{"5000", "T-500"}},
	}
	orders := &models.RawTable{
		Headers: []string{"가", "나", "주문번호"},
		Rows:    [][]string{{"x", "y", "5000"}},
	}

	out, matched, err := FillCoupang(orders, invoice)
	if err != nil {
		t.Fatalf("FillCoupang failed: %v", err)
	}
	if matched != 1 {
		t.Errorf("Expected 1 match, got %d", matched)
	}
	wantHeaders := []string{"가", "나", "주문번호", "운송장 번호"}
	if diff := cmp.Diff(wantHeaders, out.Headers); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
	if out.Rows[0][3] != "T-500" {
		t.Errorf("Expected T-500 in the appended column, got %q", out.Rows[0][3])
	}
}

func TestFillCoupangNoColumnC(t *testing.T) {
	invoice := &models.RawTable{
		Headers: []string{"주문번호", "송장번호"},
		Rows:    [][]string{{"5000", "T-500"}},
	}
	orders := &models.RawTable{Headers: []string{"가", "나"}}

	_, _, err := FillCoupang(orders, invoice)
	if err == nil || !strings.Contains(err.Error(), "no column C") {
		t.Errorf("Expected a column C error, got %v", err)
	}
}

func TestFillTtarimall(t *testing.T) {
	orders := &models.RawTable{
		Headers: []string{"주문코드", "수취인", "운송장번호"},
		Rows: [][]string{
			{"TM-1", "김하나", ""},
			{"TM-2", "박두리", "T2"},
			{"TM-3 ", "최세나", ""},
		},
	}
	entries := []Entry{
		{OrderID: "TM-1", Tracking: "T1"},
		{OrderID: "TM-2", Tracking: "T2"},
		{OrderID: "TM-3", Tracking: "T3"},
	}

	out, changed, err := FillTtarimall(orders, entries)
	if err != nil {
		t.Fatalf("FillTtarimall failed: %v", err)
	}
	if changed != 1 {
		t.Errorf("Expected 1 change, got %d", changed)
	}

	want := [][]string{
		{"TM-1", "김하나", "T1"},
		{"TM-2", "박두리", "T2"},
		{"TM-3 ", "최세나", ""},
	}
	if diff := cmp.Diff(want, out.Rows); diff != "" {
		t.Errorf("Row mismatch (-want +got):\n%s", diff)
	}
	if len(out.Headers) != 3 {
		t.Errorf("Existing tracking column should be reused, got %d columns", len(out.Headers))
	}
}

func TestFillTtarimallAppendsTrackingColumn(t *testing.T) {
	orders := &models.RawTable{
		Headers: []string{"주문번호", "수취인"},
		Rows:    [][]string{{"TM-9", "정네리"}},
	}
	entries := []Entry{{OrderID: "TM-9", Tracking: "T9"}}

	out, changed, err := FillTtarimall(orders, entries)
	if err != nil {
		t.Fatalf("FillTtarimall failed: %v", err)
	}
	if changed != 1 {
		t.Errorf("Expected 1 change, got %d", changed)
	}
	wantHeaders := []string{"주문번호", "수취인", "송장번호"}
	if diff := cmp.Diff(wantHeaders, out.Headers); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
	if out.Rows[0][2] != "T9" {
		t.Errorf("Expected T9, got %q", out.Rows[0][2])
	}
}
