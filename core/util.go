package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	tagsRegex       = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	numericStringRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?\s*$`)
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SanitizeKey lowers `s` and drops every character that is not a lowercase
// alphanumeric, an underscore or a dash.
func SanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeText strips tags, collapses whitespace (including line breaks and tabs) and trims `s`.
func SanitizeText(s string) string {
	s = tagsRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// AbsInt coerces a raw value into a non-negative integer.
// Missing or non-numeric values become 0, numeric strings are read up to the
// first non-numeric character, fractions are truncated and negatives flipped.
func AbsInt(v interface{}) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		return absInt64(int64(val))
	case int64:
		return absInt64(val)
	case int32:
		return absInt64(int64(val))
	case float64:
		return absFloat(val)
	case float32:
		return absFloat(float64(val))
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		return absIntString(val)
	default:
		return 0
	}
}

func absIntString(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return 0
	}
	if numericStringRegex.MatchString(s) {
		if f, err := strconv.ParseFloat(strings.TrimRightFunc(s, unicode.IsSpace), 64); err == nil {
			return absFloat(f)
		}
	}

	// leading integer prefix: [+-]?[0-9]+
	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil { // out of range
		return math.MaxInt64
	}
	return absInt64(n)
}

func absInt64(n int64) int64 {
	if n < 0 {
		if n == math.MinInt64 {
			return math.MaxInt64
		}
		return -n
	}
	return n
}

func absFloat(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Abs(math.Trunc(f))
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}
