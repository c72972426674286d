package tally

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// NormalizeQuantity coerces user input into a non-negative count.
//
// Strings are read as typed into a digits-only field: a plain integer is
// used as is, otherwise every non-digit is dropped ("1a2" -> 12). Numbers are
// truncated. Anything else, negative values and out of range values become 0.
func NormalizeQuantity(raw any) int {
	var n int
	switch v := raw.(type) {
	case nil, bool:
		return 0
	case string:
		n = parseDigits(v)
	default:
		parsed, err := cast.ToIntE(v)
		if err != nil {
			return 0
		}
		n = parsed
	}

	if n < 0 {
		return 0
	}
	return n
}

func parseDigits(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
