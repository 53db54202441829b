package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrHeaderNotFound indicates no header matched any of the given keywords.
var ErrHeaderNotFound = errors.New("header not found")

// headerJunk matches the whitespace and separator punctuation that varies
// between mall exports, including the full-width colon.
var headerJunk = regexp.MustCompile(`[\s()\[\]{}:：/\\-]`)

// NormalizeHeader lowercases a header and strips separator punctuation so
// that spellings like 수취인 연락처1 and 수취인연락처(1) collide.
func NormalizeHeader(s string) string {
	return headerJunk.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// FindColumn locates a header matching any keyword, trying keywords in
// order. An exact normalized match wins; otherwise substring containment,
// preferring the shortest header name. Returns the column index.
func (t *RawTable) FindColumn(keywords ...string) (int, error) {
	norm := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		norm[i] = NormalizeHeader(h)
	}
	for _, kw := range keywords {
		want := NormalizeHeader(kw)
		if want == "" {
			continue
		}
		found := -1
		for i, nh := range norm {
			if nh == want {
				found = i
			}
		}
		if found >= 0 {
			return found, nil
		}
		best := -1
		for i, nh := range norm {
			if nh == "" || !strings.Contains(nh, want) {
				continue
			}
			if best < 0 || utf8.RuneCountInString(t.Headers[i]) < utf8.RuneCountInString(t.Headers[best]) {
				best = i
			}
		}
		if best >= 0 {
			return best, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrHeaderNotFound, strings.Join(keywords, ", "))
}
