package convert

import "github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/models"

// Detection signals, checked in order. Ttarimall and smartstore carry
// receiver headers no other platform uses; coupang overlaps with the
// others and needs combined signals.
var (
	ttarimallSignals  = []string{"수령자명", "수령자연락처", "옵션명:옵션값"}
	smartstoreSignals = []string{"수취인명", "수취인연락처1", "통합배송지"}
)

// Detect guesses which marketplace a table was exported from. Tables
// matching no signal are treated as laora exports.
func Detect(t *models.RawTable) Platform {
	headers := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		headers[models.NormalizeHeader(h)] = true
	}
	has := func(name string) bool {
		return headers[models.NormalizeHeader(name)]
	}

	for _, s := range ttarimallSignals {
		if has(s) {
			return PlatformTtarimall
		}
	}
	for _, s := range smartstoreSignals {
		if has(s) {
			return PlatformSmartstore
		}
	}
	if has("최초등록상품명") || (has("구매수") && has("옵션명")) || has("배송메시지") {
		return PlatformCoupang
	}
	return PlatformLaora
}
