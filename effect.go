package snprisk

import (
	"math"
	"strconv"
	"strings"
)

// ParseEffect reads a numeric effect-size cell. Text that is not a finite
// number, including "NaN" and "Inf", becomes 0.
func ParseEffect(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || !IsFinite(v) {
		return 0.0
	}

	return v
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
