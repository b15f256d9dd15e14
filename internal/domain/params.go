package domain

import (
	"fmt"
	"math"
)

// stepTolerance bounds how far TT*60/T may stray from a whole number before
// the parameters are rejected. It absorbs floating-point noise in inputs such
// as T=0.1.
const stepTolerance = 1e-9

// RainfallParams holds the IDF coefficients and the storm discretisation.
type RainfallParams struct {
	A  float64 // exponent
	B  float64 // additive constant
	C  float64 // numerator constant
	T  float64 // time step [min]
	TT float64 // total duration [h]
}

// NewRainfallParams validates the raw values and returns a RainfallParams.
// Each coefficient must be finite and strictly positive, and the storm
// duration must divide into a whole number (at least one) of time steps.
func NewRainfallParams(a, b, c, t, tt float64) (RainfallParams, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"A", a},
		{"B", b},
		{"C", c},
		{"T", t},
		{"TT", tt},
	}
	for _, f := range fields {
		if err := checkPositive(f.name, f.value); err != nil {
			return RainfallParams{}, err
		}
	}

	nt := tt * 60 / t
	if math.Abs(nt-math.Round(nt)) > stepTolerance {
		return RainfallParams{}, fmt.Errorf(
			"%w: TT=%g, T=%g gives NT=%.4f, which is not an integer; adjust T or TT so that the duration divides evenly into time steps",
			ErrNonIntegralSteps, tt, t, nt)
	}
	if math.Round(nt) < 1 {
		return RainfallParams{}, fmt.Errorf("%w: TT=%g, T=%g gives no time steps; TT*60 must be at least T",
			ErrInvalidParameter, tt, t)
	}

	return RainfallParams{A: a, B: b, C: c, T: t, TT: tt}, nil
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParameterError{Name: name, Reason: fmt.Sprintf("must be a finite number, got %g", v)}
	}
	if v <= 0 {
		return &ParameterError{
			Name:   name,
			Reason: fmt.Sprintf("must be positive (> 0), got %g. Valid range: %s > 0", v, name),
		}
	}
	return nil
}

// StepCount returns NT, the number of time steps in the storm.
func (p RainfallParams) StepCount() int {
	return int(math.Round(p.TT * 60 / p.T))
}

// Intensity evaluates the IDF formula K = C/(T^A+B) for a duration in minutes.
func (p RainfallParams) Intensity(durationMinutes float64) float64 {
	return p.C / (math.Pow(durationMinutes, p.A) + p.B)
}
