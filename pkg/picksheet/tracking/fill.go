package tracking

import (
	"fmt"
	"strings"

	"github.com/tiendc/go-deepcopy"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"
)

// Options configure carrier defaults for the dispatch outputs.
type Options struct {
	// LaoCarrierCode fills the 택배사코드 column of lao uploads.
	// If empty, "04" is used.
	LaoCarrierCode string
	// SmartstoreCarrier fills empty 택배사 cells.
	// If empty, "CJ대한통운" is used.
	SmartstoreCarrier string
	// SmartstoreSheet names the smartstore output sheet.
	// If empty, "발송처리" is used.
	SmartstoreSheet string
}

// DefaultOptions returns the current carrier defaults.
func DefaultOptions() Options {
	return Options{
		LaoCarrierCode:    "04",
		SmartstoreCarrier: "CJ대한통운",
		SmartstoreSheet:   "발송처리",
	}
}

func (o Options) carrierCode() string {
	if o.LaoCarrierCode != "" {
		return o.LaoCarrierCode
	}
	return "04"
}

func (o Options) carrier() string {
	if o.SmartstoreCarrier != "" {
		return o.SmartstoreCarrier
	}
	return "CJ대한통운"
}

// Sheet returns the smartstore output sheet name.
func (o Options) Sheet() string {
	if o.SmartstoreSheet != "" {
		return o.SmartstoreSheet
	}
	return "발송처리"
}

// LaoTable lays lao entries out as the 3PL upload expects.
func LaoTable(entries []Entry, opts Options) *models.RawTable {
	t := &models.RawTable{Headers: []string{"주문번호", "택배사코드", "송장번호"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.OrderID, opts.carrierCode(), e.Tracking})
	}
	return t
}

// SmartstoreTable builds a standalone dispatch table for when no order
// export is supplied.
func SmartstoreTable(entries []Entry, opts Options) *models.RawTable {
	t := &models.RawTable{Headers: []string{"주문번호", "송장번호", "택배사"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.OrderID, e.Tracking, opts.carrier()})
	}
	return t
}

// FillSmartstore writes tracking numbers into a smartstore order
// export. Only empty 송장번호 cells are filled, so numbers entered by
// hand survive. The 택배사 column is added if missing and defaulted
// where empty. Returns the filled copy and the fill count.
func FillSmartstore(orders *models.RawTable, entries []Entry, opts Options) (*models.RawTable, int, error) {
	out, err := copyTable(orders)
	if err != nil {
		return nil, 0, err
	}
	orderCol, err := out.FindColumn(ssOrderKeys...)
	if err != nil {
		return nil, 0, fmt.Errorf("smartstore order column: %w", err)
	}

	trackCol := out.HeaderIndex("송장번호")
	if trackCol < 0 {
		trackCol = out.AppendColumn("송장번호", "")
	}
	carrierCol := out.HeaderIndex("택배사")
	if carrierCol < 0 {
		carrierCol = out.AppendColumn("택배사", "")
	}

	byID := make(map[string]string, len(entries))
	for _, e := range entries {
		byID[e.OrderID] = e.Tracking
	}

	filled := 0
	for r := range out.Rows {
		if isBlank(out.Cell(r, trackCol)) {
			if track, ok := byID[out.Cell(r, orderCol)]; ok {
				out.SetCell(r, trackCol, track)
				filled++
			}
		}
		if isBlank(out.Cell(r, carrierCol)) {
			out.SetCell(r, carrierCol, opts.carrier())
		}
	}
	return out, filled, nil
}

// FillCoupang writes tracking numbers into a coupang order export.
// Coupang invoices keep the order id in column P and coupang order
// files keep it in column C with the tracking column at E; ids are
// matched on their digits and existing tracking values are overwritten.
// Returns the filled copy and the match count.
func FillCoupang(orders, invoice *models.RawTable) (*models.RawTable, int, error) {
	const (
		invoiceOrderIdx = 15 // column P
		orderIDIdx      = 2  // column C
		trackingIdx     = 4  // column E
	)

	trackCol, err := invoice.FindColumn(TrackingKeys...)
	if err != nil {
		return nil, 0, fmt.Errorf("coupang invoice tracking column: %w", err)
	}
	orderIdx := invoiceOrderIdx
	if invoice.Width() <= invoiceOrderIdx {
		orderIdx, err = invoice.FindColumn(OrderKeys...)
		if err != nil {
			return nil, 0, fmt.Errorf("coupang invoice order column: %w", err)
		}
	}

	byDigits := make(map[string]string)
	for r := range invoice.Rows {
		key := DigitsOnly(invoice.Cell(r, orderIdx))
		track := invoice.Cell(r, trackCol)
		if key == "" || track == "" {
			continue
		}
		byDigits[key] = track
	}

	out, err := copyTable(orders)
	if err != nil {
		return nil, 0, err
	}
	if out.Width() <= orderIDIdx {
		return nil, 0, fmt.Errorf("coupang order file has no column C (%d columns)", out.Width())
	}
	target := trackingIdx
	if out.Width() <= trackingIdx {
		target = out.AppendColumn("운송장 번호", "")
	}

	matched := 0
	for r := range out.Rows {
		key := DigitsOnly(out.Cell(r, orderIDIdx))
		if key == "" {
			continue
		}
		if track, ok := byDigits[key]; ok {
			out.SetCell(r, target, track)
			matched++
		}
	}
	return out, matched, nil
}

// FillTtarimall writes tracking numbers into a ttarimall order export.
// Order ids match exactly as written, the first recognized tracking
// header is reused before a new 송장번호 column is added, and only
// cells that actually change are counted.
func FillTtarimall(orders *models.RawTable, entries []Entry) (*models.RawTable, int, error) {
	out, err := copyTable(orders)
	if err != nil {
		return nil, 0, err
	}
	orderCol, err := out.FindColumn(tmOrderKeys...)
	if err != nil {
		return nil, 0, fmt.Errorf("ttarimall order column: %w", err)
	}

	trackCol := -1
	for _, key := range TrackingKeys {
		if i := out.HeaderIndex(key); i >= 0 {
			trackCol = i
			break
		}
	}
	if trackCol < 0 {
		trackCol = out.AppendColumn("송장번호", "")
	}

	byID := make(map[string]string, len(entries))
	for _, e := range entries {
		byID[e.OrderID] = e.Tracking
	}

	changed := 0
	for r := range out.Rows {
		track, ok := byID[out.Cell(r, orderCol)]
		if !ok {
			continue
		}
		if out.Cell(r, trackCol) != track {
			out.SetCell(r, trackCol, track)
			changed++
		}
	}
	return out, changed, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// copyTable deep-copies a table so fills never mutate the caller's.
func copyTable(t *models.RawTable) (*models.RawTable, error) {
	var out models.RawTable
	if err := deepcopy.Copy(&out, t); err != nil {
		return nil, fmt.Errorf("copy table: %w", err)
	}
	return &out, nil
}
