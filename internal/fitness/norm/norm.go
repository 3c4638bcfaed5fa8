// Package norm normalizes loosely typed metric values coming from
// client payloads and stored JSON, where a weight may arrive as a
// number, a numeric string, or garbage.
package norm

import (
	"math"
	"strconv"
	"strings"
)

// Float coerces a raw metric value into a float64. Numeric types pass
// through, strings are trimmed and parsed. A nil result means the
// value is absent or unusable and must be skipped, never treated as 0.
func Float(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return finite(float64(v))
	case int32:
		return finite(float64(v))
	case int64:
		return finite(float64(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return finite(parsed)
	default:
		return nil
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Round1 rounds to one decimal place, used for averaged metrics.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, used for ratios and deltas.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Avg returns the mean of vals, or 0 for an empty slice.
func Avg(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

const trendDelta = 0.25

// TrendDirection compares the averages of the first and second half of
// a difficulty series. Deltas smaller than 0.25 in either direction
// count as flat.
func TrendDirection(firstHalfAvg, secondHalfAvg float64) string {
	diff := secondHalfAvg - firstHalfAvg
	switch {
	case diff >= trendDelta:
		return "up"
	case diff <= -trendDelta:
		return "down"
	default:
		return "flat"
	}
}
