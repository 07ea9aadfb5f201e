package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQuantity(t *testing.T) {
	cases := []struct {
		segment  string
		wantQty  int
		wantRest string
	}{
		{"two chicken biryanis", 2, "chicken biryanis"},
		{"one butter chicken with spicy", 1, "butter chicken with spicy"},
		{"ten samosas", 10, "samosas"},
		{"3 garlic naan", 3, "garlic naan"},
		{"15 garlic naan", 15, "garlic naan"},
		{"butter chicken", 1, "butter chicken"},
		{"Two mango lassis", 2, "mango lassis"},
		{"", 1, ""},
	}

	for _, tc := range cases {
		qty, rest := ExtractQuantity(tc.segment)
		assert.Equal(t, tc.wantQty, qty, "segment %q", tc.segment)
		assert.Equal(t, tc.wantRest, rest, "segment %q", tc.segment)
	}
}

func TestExtractSpiceLevel(t *testing.T) {
	cases := []struct {
		segment string
		want    string
	}{
		{"butter chicken with mild", SpiceMild},
		{"butter chicken with medium", SpiceMild},
		{"lamb curry hot", SpiceSpicy},
		{"lamb curry very hot", SpiceExtraSpicy},
		{"chicken biryani extra spicy", SpiceExtraSpicy},
		{"chicken biryani very mild", SpiceVeryMild},
		{"chicken biryani with spicy", SpiceSpicy},
		{"garlic naan", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractSpiceLevel(tc.segment), "segment %q", tc.segment)
	}
}

func TestExtractSpiceLevelFirstMatchWins(t *testing.T) {
	assert.Equal(t, SpiceMild, ExtractSpiceLevel("mild not spicy"))
}

func TestExtractSpiceLevelIgnoresHotAndSour(t *testing.T) {
	assert.Equal(t, "", ExtractSpiceLevel("hot & sour soup"))
	assert.Equal(t, "", ExtractSpiceLevel("hot and sour soup"))
	// A real spice token after the soup name still counts.
	assert.Equal(t, SpiceSpicy, ExtractSpiceLevel("hot & sour soup with hot"))
}
