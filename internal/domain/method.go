package domain

import (
	"sort"
	"strings"
)

// Method selects how a list of per-member ratings collapses into one
// crew-level value.
type Method string

// Supported aggregation methods.
const (
	// MethodTotal sums all ratings. This is the default and the fallback
	// for unrecognized method names.
	MethodTotal Method = "Total"

	// MethodAverage takes the arithmetic mean of all ratings.
	MethodAverage Method = "Average"

	// MethodMedian takes the statistical median: the middle value for an
	// odd count, the mean of the two middle sorted values for an even count.
	MethodMedian Method = "Median"

	// MethodMode takes the most frequent rating. Ties break to the first
	// value encountered with the maximum frequency, which keeps the
	// result deterministic for a fixed input order.
	MethodMode Method = "Mode"
)

// ParseMethod maps a method name to a Method, ignoring case so CLI and
// stored inputs both resolve ("average" and "Average" are the same
// method). Unrecognized names fall back to MethodTotal rather than
// failing; an invalid method is a presentation-layer mistake, not a
// reason to abort a scoring run.
func ParseMethod(s string) Method {
	switch strings.ToLower(s) {
	case "total":
		return MethodTotal
	case "average":
		return MethodAverage
	case "median":
		return MethodMedian
	case "mode":
		return MethodMode
	default:
		return MethodTotal
	}
}

// Aggregate reduces values to a single number using the given method.
// An empty slice aggregates to 0 so downstream sums stay total; callers
// that need to distinguish "no ratings" should check before calling.
func Aggregate(values []float64, method Method) float64 {
	if len(values) == 0 {
		return 0
	}
	switch method {
	case MethodAverage:
		return sum(values) / float64(len(values))
	case MethodMedian:
		return median(values)
	case MethodMode:
		return mode(values)
	default:
		return sum(values)
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// median computes the statistical median without disturbing the caller's
// slice. Even counts average the two middle values of the sorted copy.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mode returns the most frequent value. When several values share the
// maximum frequency, the first of them in input order wins.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best := values[0]
	bestCount := 0
	for _, v := range values {
		if c := counts[v]; c > bestCount {
			best = v
			bestCount = c
		}
	}
	return best
}
