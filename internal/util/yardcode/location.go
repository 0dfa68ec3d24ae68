package yardcode

import (
	"strings"

	"github.com/portyard/yardboard/internal/model"
)

// Location is a decomposed BLOCK-BAY-ROW-TIER yard position.
type Location struct {
	Block  string
	Bay    int
	Row    int
	Tier   int
	Mapped bool
}

var unmapped = Location{Block: model.BlockUnknown}

// ParseLocation decomposes a location such as "A1-05-02-03". Whitespace is
// ignored anywhere in the string. Any shape other than four dash separated parts
// with numeric bay, row and tier is unmapped.
func ParseLocation(raw string) Location {
	s := stripSpace(raw)
	if s == "" {
		return unmapped
	}
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return unmapped
	}

	bay, ok := leadingInt(parts[1])
	if !ok {
		return unmapped
	}
	row, ok := leadingInt(parts[2])
	if !ok {
		return unmapped
	}
	tier, ok := leadingInt(parts[3])
	if !ok {
		return unmapped
	}

	return Location{
		Block:  strings.ToUpper(parts[0]),
		Bay:    bay,
		Row:    row,
		Tier:   tier,
		Mapped: true,
	}
}

// DisplayLocation is the location string kept on the container record.
func DisplayLocation(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return model.LocationUnmapped
}
