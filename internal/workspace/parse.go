package workspace

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount coerces operator-typed numeric text. Both comma and dot
// decimal separators are accepted; when both appear the dots are treated
// as thousands marks. Anything unparseable, NaN or infinite becomes 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
