package types

import (
	"math"
	"strings"
)

// RequireNonEmpty fails when s is empty or only whitespace.
func RequireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyString
	}
	return nil
}

// RequirePositiveInt fails when n <= 0.
func RequirePositiveInt(n int) error {
	if n <= 0 {
		return ErrNotPositive
	}
	return nil
}

// RequireNonNegativeInt fails when n < 0.
func RequireNonNegativeInt(n int) error {
	if n < 0 {
		return ErrNegativeInt
	}
	return nil
}

// RequireNonNegativeReal fails when x < 0 or x is not finite.
func RequireNonNegativeReal(x float64) error {
	if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return ErrNegativeReal
	}
	return nil
}
