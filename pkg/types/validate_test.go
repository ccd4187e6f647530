package types

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarRules(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"non-empty string", RequireNonEmpty("Aegis"), nil},
		{"empty string", RequireNonEmpty(""), ErrEmptyString},
		{"blank string", RequireNonEmpty("  \t"), ErrEmptyString},
		{"positive int", RequirePositiveInt(1), nil},
		{"zero is not positive", RequirePositiveInt(0), ErrNotPositive},
		{"zero is non-negative", RequireNonNegativeInt(0), nil},
		{"negative int", RequireNonNegativeInt(-1), ErrNegativeInt},
		{"zero real", RequireNonNegativeReal(0), nil},
		{"negative real", RequireNonNegativeReal(-0.5), ErrNegativeReal},
		{"NaN real", RequireNonNegativeReal(math.NaN()), ErrNegativeReal},
		{"infinite real", RequireNonNegativeReal(math.Inf(1)), ErrNegativeReal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				assert.NoError(t, tt.err)
				return
			}
			assert.ErrorIs(t, tt.err, tt.wantErr)
			assert.ErrorIs(t, tt.err, ErrValidation)
		})
	}
}

func TestRuleErrorKinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrInvalidFoodType, ErrValidation},
		{ErrDuplicateGalaxyCode, ErrConflict},
		{ErrDuplicateHandle, ErrConflict},
		{ErrCargoOverCapacity, ErrCapacity},
		{ErrCapacityBelowLoad, ErrCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			for _, other := range []error{ErrValidation, ErrConflict, ErrCapacity, ErrNotFound} {
				if !errors.Is(other, tt.kind) {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}
