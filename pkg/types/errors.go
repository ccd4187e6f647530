package types

import "errors"

// Error kinds. Every domain rule violation unwraps to exactly one of these, so
// callers can branch with errors.Is without knowing the specific rule.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrCapacity   = errors.New("capacity exceeded")
	ErrNotFound   = errors.New("entity not found")
)

// RuleError is a specific rule violation of a given kind.
type RuleError struct {
	Kind   error
	Reason string
}

func (e *RuleError) Error() string { return e.Kind.Error() + ": " + e.Reason }

// Unwrap returns the error kind.
func (e *RuleError) Unwrap() error { return e.Kind }

func validationRule(reason string) *RuleError { return &RuleError{Kind: ErrValidation, Reason: reason} }
func conflictRule(reason string) *RuleError   { return &RuleError{Kind: ErrConflict, Reason: reason} }
func capacityRule(reason string) *RuleError   { return &RuleError{Kind: ErrCapacity, Reason: reason} }

// Scalar attribute errors.
var (
	ErrEmptyString       = validationRule("string must not be empty")
	ErrNotPositive       = validationRule("integer must be positive")
	ErrNegativeInt       = validationRule("integer must not be negative")
	ErrNegativeReal      = validationRule("real must be finite and not negative")
	ErrMissingDate       = validationRule("date is required")
	ErrMissingReference  = validationRule("reference must not be empty")
	ErrInvalidGalaxyType = validationRule("unknown galaxy type")
	ErrInvalidShipType   = validationRule("unknown ship type")
	ErrInvalidFoodType   = validationRule("unknown food type")
	ErrShieldRequired    = validationRule("shielded ship requires a solar flare shield strength")
	ErrShieldForbidden   = validationRule("unprotected ship cannot have a solar flare shield strength")
	ErrNotPeaceful       = validationRule("galaxy is not peaceful")
	ErrNotDangerous      = validationRule("galaxy is not dangerous")
	ErrAlreadyPeaceful   = validationRule("galaxy is already peaceful")
	ErrAlreadyDangerous  = validationRule("galaxy is already dangerous")
	ErrNotShielded       = validationRule("ship has no solar flare shield")
	ErrWrongShipKind     = validationRule("attribute does not apply to this ship kind")
	ErrWrongCrewKind     = validationRule("attribute does not apply to this crew member kind")
	ErrSalaryForbidden   = validationRule("mechanical crew member cannot have a salary")
	ErrSalaryRequired    = validationRule("organic crew member requires a salary")
)

// Uniqueness and membership errors.
var (
	ErrDuplicateGalaxyCode = conflictRule("galaxy code is already in use")
	ErrUnregisteredOwner   = conflictRule("owner is not registered")
	ErrOwnerHasCargo       = conflictRule("owner still has cargo")
	ErrDuplicateContract   = conflictRule("contract between this ship and crew member already exists")
	ErrContractMismatch    = conflictRule("contract does not belong to this party")
	ErrAsymmetricLink      = conflictRule("relation is not recorded on both sides")
	ErrDuplicateHandle     = conflictRule("handle is already registered")
)

// Capacity errors.
var (
	ErrCargoOverCapacity = capacityRule("cargo would exceed ship capacity")
	ErrCapacityBelowLoad = capacityRule("capacity would fall below the mass aboard")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
