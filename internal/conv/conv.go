// Package conv provides checked numeric conversions for values that cross
// an untyped boundary (expression environments, command-line arguments).
//
// Unlike a plain Go conversion, these functions report values that would
// be truncated or fall outside the code-point range instead of silently
// wrapping.
package conv

import (
	"math"

	"github.com/coregx/ustring/codec"
)

// ToInt converts an integral value of any built-in numeric type to int.
// Floats are accepted only when they hold an exact integer.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

// IntToRune converts n to a rune. It fails when n is negative or above
// codec.MaxRune. Surrogates are left for the codec to reject.
func IntToRune(n int) (rune, bool) {
	if n < 0 || n > int(codec.MaxRune) {
		return 0, false
	}
	return rune(n), true
}

// IntsToRunes converts every element with IntToRune. The index of the
// first failing element is returned with false.
func IntsToRunes(ns []int) ([]rune, int, bool) {
	out := make([]rune, len(ns))
	for i, n := range ns {
		r, ok := IntToRune(n)
		if !ok {
			return nil, i, false
		}
		out[i] = r
	}
	return out, -1, true
}
