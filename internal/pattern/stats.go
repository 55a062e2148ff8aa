package pattern

import (
	"math"
	"sort"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

// Median returns the middle value of values, or the mean of the two middle
// values for an even count. The input is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, domain.NewError(domain.KindPatternExtraction, "cannot compute median of empty set", nil)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Mean returns the arithmetic mean of values; 0 for an empty set.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values; 0 for an empty set.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
