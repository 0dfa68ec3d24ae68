// Package yardcode turns raw yard sheet cells into typed container attributes.
package yardcode

import (
	"strconv"
	"strings"
	"unicode"
)

// leadingFloat parses the longest decimal prefix of s, the way a lenient sheet
// reader would. It returns 0 when s has no usable prefix.
func leadingFloat(s string) float64 {
	end := 0
	seenDigit, seenDot := false, false
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' {
			seenDigit = true
		} else if ch == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
		end++
	}
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// leadingInt parses the leading run of ASCII digits of s. The boolean is false
// when s does not start with a digit.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func keepRunes(s string, keep func(r rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func stripSpace(s string) string {
	return keepRunes(s, func(r rune) bool { return !unicode.IsSpace(r) })
}
