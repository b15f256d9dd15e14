package domain

import "errors"

// Sentinel error kinds. Callers classify failures with errors.Is.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNonIntegralSteps = errors.New("TT * 60 / T must be an integer")
	ErrOutputTarget     = errors.New("invalid output target")
	ErrWrite            = errors.New("write failed")
)

// ParameterError reports a rainfall parameter outside its valid range.
// It matches ErrInvalidParameter under errors.Is.
type ParameterError struct {
	Name   string
	Reason string
}

func (e *ParameterError) Error() string {
	return "Parameter " + e.Name + " " + e.Reason
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
