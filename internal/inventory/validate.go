package inventory

import (
	"errors"
	"fmt"
	"math"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Validation sentinels. Compare with errors.Is.
var (
	// ErrNegativeQuantity indicates a quantity below zero.
	ErrNegativeQuantity = constError("quantity cannot be negative")

	// ErrPercentOutOfRange indicates a percentage outside [0,100].
	ErrPercentOutOfRange = constError("percentage must be between 0 and 100")

	// ErrNotFinite indicates a NaN or infinite value.
	ErrNotFinite = constError("value must be finite")

	// ErrPHOutOfRange indicates an effluent pH outside [0,14].
	ErrPHOutOfRange = constError("effluent pH must be between 0 and 14")
)

// Bounds for validated fields.
const (
	MinPercent = 0.0
	MaxPercent = 100.0
	MinPH      = 0.0
	MaxPH      = 14.0
)

// FieldError reports which field failed validation and why.
type FieldError struct {
	Field string
	Value float64
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (got %g)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// New validates r and returns it unchanged when it is well formed.
func New(r Record) (Record, error) {
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks every quantity is finite and non-negative, every
// percentage lies in [0,100] and the effluent pH lies in [0,14].
// All violations are reported together via errors.Join.
func (r Record) Validate() error {
	var errs []error

	for _, q := range r.quantities() {
		if err := checkFinite(q); err != nil {
			errs = append(errs, err)
			continue
		}
		if q.value < 0 {
			errs = append(errs, &FieldError{Field: q.name, Value: q.value, Err: ErrNegativeQuantity})
		}
	}

	for _, p := range r.percentages() {
		if err := checkFinite(p); err != nil {
			errs = append(errs, err)
			continue
		}
		if p.value < MinPercent || p.value > MaxPercent {
			errs = append(errs, &FieldError{Field: p.name, Value: p.value, Err: ErrPercentOutOfRange})
		}
	}

	ph := namedValue{"effluent_ph", r.EffluentPH}
	if err := checkFinite(ph); err != nil {
		errs = append(errs, err)
	} else if ph.value < MinPH || ph.value > MaxPH {
		errs = append(errs, &FieldError{Field: ph.name, Value: ph.value, Err: ErrPHOutOfRange})
	}

	return errors.Join(errs...)
}

func checkFinite(v namedValue) error {
	if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
		return &FieldError{Field: v.name, Value: v.value, Err: ErrNotFinite}
	}
	return nil
}
