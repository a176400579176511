package utils

import (
	"encoding/json"
	"math"
	"strconv"
)

// NumberOrZero coerces a decoded JSON value to a float64, falling back to 0
// for anything non-numeric. Clients send macro fields as numbers or strings
// interchangeably; a malformed value zeroes the field instead of failing the
// request.
func NumberOrZero(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}
