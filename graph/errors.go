package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrSetup is returned when a node's contract cannot be satisfied by the
	// connected inputs.
	ErrSetup = errors.New("setup failed")

	// ErrInvalidInput is returned when a packet is present but unusable, for
	// example an empty image.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrTypeMismatch is returned by the runner when a packet value does not
	// have the type declared in the contract.
	ErrTypeMismatch = errors.New("packet type mismatch")
)

// StepError reports a failed node callback. Err usually wraps one of the
// package sentinels so callers can test it with errors.Is.
type StepError struct {
	Node      string
	Phase     string
	Timestamp Timestamp
	Err       error
}

func (e *StepError) Error() string {
	if e.Phase == PhaseProcess {
		return fmt.Sprintf("%s: %s at timestamp %v: %v", e.Node, e.Phase, e.Timestamp, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Node, e.Phase, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Phases of a node's lifecycle, as reported in StepError.
const (
	PhaseContract = "contract"
	PhaseOpen     = "open"
	PhaseProcess  = "process"
	PhaseClose    = "close"
)
