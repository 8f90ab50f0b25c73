package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantitySanitizer_Sanitize(t *testing.T) {
	q := NewQuantitySanitizer(99)

	tests := []struct {
		raw  string
		want int
	}{
		{"12a", 12},
		{"", 1},
		{"abc", 1},
		{"500", 99},
		{"-3", 3},
		{"0", 0},
		{" 7 ", 7},
		{"1,5", 15},
		{"99999999999999999999999", 99},
		{"٣", 1}, // non-ASCII digits are stripped
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, q.Sanitize(tt.raw), "Sanitize(%q)", tt.raw)
	}
}

func TestQuantitySanitizer_ConfigurableMax(t *testing.T) {
	q := NewQuantitySanitizer(10)
	assert.Equal(t, 10, q.Sanitize("11"))
	assert.Equal(t, 10, q.Step("10", 1))

	q = NewQuantitySanitizer(0)
	assert.Equal(t, DefaultMaxQuantity, q.Max)
}

func TestQuantitySanitizer_Step(t *testing.T) {
	q := NewQuantitySanitizer(99)

	assert.Equal(t, 3, q.Step("2", 1))
	assert.Equal(t, 1, q.Step("2", -1))
	assert.Equal(t, 0, q.Step("0", -1))
	assert.Equal(t, 0, q.Step("", -1), "empty field defaults to 1 before stepping")
	assert.Equal(t, 99, q.Step("99", 1))
}
