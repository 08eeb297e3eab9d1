package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reInt   = regexp.MustCompile(`^[0-9]+$`)
	rePrice = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// ID parses a non-negative integer token. Sign characters and anything
// non-numeric (including "true"/"false") fail the shape check.
func ID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reInt.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Price parses a non-negative decimal token.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !rePrice.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Q validates a search query: trims and enforces a max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, true
}

// Text decodes a tokenized free-text field: '/' and '_' stand in for spaces
// inside a single whitespace-separated token.
func Text(s string) string {
	s = strings.ReplaceAll(s, "/", " ")
	return strings.ReplaceAll(s, "_", " ")
}
