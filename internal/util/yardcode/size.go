package yardcode

import (
	"strconv"
	"strings"

	"github.com/portyard/yardboard/internal/model"
)

// ClassifySize resolves the nominal container length. An explicit size cell wins:
// 40 and 45 footers count as 40, anything else as 20. Without one, the ISO code
// prefix decides.
func ClassifySize(sizeRaw string, iso string) int {
	if sizeRaw != "" {
		n, err := strconv.Atoi(keepRunes(sizeRaw, isASCIIDigit))
		if err == nil && (n == 40 || n == 45) {
			return 40
		}
		return 20
	}
	if strings.HasPrefix(iso, "4") || strings.HasPrefix(iso, "L") {
		return 40
	}
	return 20
}

// NormalizeISO trims and upper-cases an ISO type code. Blank codes are invalid.
func NormalizeISO(raw string) (string, bool) {
	iso := strings.ToUpper(strings.TrimSpace(raw))
	return iso, iso != ""
}

// CalculateTEU returns the TEU a container occupies. The ISO prefix takes
// precedence over the recorded size; unknown prefixes fall back to the size.
func CalculateTEU(c *model.Container) int {
	if c.ISO.Valid {
		if code, ok := NormalizeISO(c.ISO.String); ok {
			switch code[0] {
			case '1', '2':
				return 1
			case '4', 'L':
				return 2
			}
		}
	}
	if c.Size >= 40 {
		return 2
	}
	return 1
}
