package report

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnknownFormat is returned for an output format that is not
	// table, json or ndjson.
	ErrUnknownFormat = constError("unknown output format")

	// ErrNegativeValue is returned for a negative GWP.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow is returned when an equivalency is not finite.
	ErrCalculationOverflow = constError("calculation overflow")
)
