package utils

import (
	"math"
	"strings"
)

// LastPathSegment returns the final path segment of an entity href, with any
// query string or fragment removed. It returns "" for an empty href.
//
//	LastPathSegment("https://host/entity/product/42?expand=x") == "42"
func LastPathSegment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}

// NonNegativeCount floors a stock quantity to a whole count, clamping negatives and NaN to zero.
func NonNegativeCount(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}
