package cart

import (
	"strconv"
	"strings"
)

// DefaultMaxQuantity is the upper bound used when none is configured.
const DefaultMaxQuantity = 99

// QuantitySanitizer turns the raw text of a quantity field into a usable
// quantity. It never fails.
type QuantitySanitizer struct {
	Max     int // Inclusive upper bound
	Default int // Used when the input holds no digits
}

// NewQuantitySanitizer returns a sanitizer clamping to [0, max] with a default of 1
func NewQuantitySanitizer(max int) QuantitySanitizer {
	if max < 1 {
		max = DefaultMaxQuantity
	}
	return QuantitySanitizer{Max: max, Default: 1}
}

// Sanitize keeps only ASCII digits, parses them and clamps the result.
// "12a" -> 12, "" -> Default, "500" -> Max, "-3" -> 3.
func (q QuantitySanitizer) Sanitize(raw string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if digits == "" {
		return q.clamp(q.Default)
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow is possible here: the string is all digits.
		return q.Max
	}
	return q.clamp(n)
}

// Step applies a stepper button press (+1 / -1) to the current field value.
func (q QuantitySanitizer) Step(raw string, delta int) int {
	return q.clamp(q.Sanitize(raw) + delta)
}

func (q QuantitySanitizer) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > q.Max {
		return q.Max
	}
	return n
}
