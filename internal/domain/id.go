package domain

import (
	"math"
	"strconv"
	"strings"
)

// IDValue is anything an airport id can arrive as: a typed id or the raw
// string of a form value or URL parameter.
type IDValue interface {
	int | int32 | int64 | string
}

// ParseID converts a form or query value to an id. Surrounding whitespace is
// ignored and integral decimals ("3.0") are accepted.
func ParseID(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// NormalizeID brings v to int64.
func NormalizeID[T IDValue](v T) (int64, bool) {
	switch x := any(v).(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case string:
		return ParseID(x)
	}
	return 0, false
}

// MatchID is the single loose id comparison: id == v after coercion.
// A value that does not parse never matches.
func MatchID[T IDValue](id int64, v T) bool {
	n, ok := NormalizeID(v)
	return ok && n == id
}
