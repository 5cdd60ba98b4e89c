package qsim

import "errors"

/*
Sentinel errors returned by the simulator. Callers match them with errors.Is;
the library wraps them with context via fmt.Errorf("...: %w", ErrX).
Every error is a call-site mistake and is returned before any state changes.
*/
var (
	// ErrConfiguration covers mutually exclusive options that were both given
	// or both omitted, and invalid qubit counts or classical digits.
	ErrConfiguration = errors.New("qsim: invalid configuration")

	// ErrShape is returned when a local operator is not 2x2.
	ErrShape = errors.New("qsim: invalid operator shape")

	// ErrDimension is returned when a gate or vector does not match the
	// dimension it is combined with.
	ErrDimension = errors.New("qsim: dimension mismatch")

	// ErrIndex is returned for a qubit or basis-state index out of range,
	// or qubits repeated within one gate.
	ErrIndex = errors.New("qsim: index out of range")

	// ErrNormalization is returned when a distribution to sample from does
	// not sum to one within the configured tolerance.
	ErrNormalization = errors.New("qsim: state is not normalized")
)
