package yardcode

import "strings"

// kgThreshold is the value above which a weight is taken to be in kilograms.
const kgThreshold = 100

// ParseWeight normalizes a weight cell to tons. A comma with no period is read as
// a decimal comma ("9,13"); otherwise commas are thousands separators
// ("9,130.00"). Unit suffixes are dropped and unparseable input yields 0.
func ParseWeight(raw string) float64 {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	s = keepRunes(s, func(r rune) bool { return isASCIIDigit(r) || r == '.' })
	w := leadingFloat(s)
	if w > kgThreshold {
		w /= 1000
	}
	return w
}
