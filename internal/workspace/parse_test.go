package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"12", 12},
		{"12.5", 12.5},
		{"12,5", 12.5},
		{"1.250,75", 1250.75},
		{" 45 ", 45},
		{"-3", -3},
		{"abc", 0},
		{"12,5,0", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAmount(tc.in), "input %q", tc.in)
	}
}
