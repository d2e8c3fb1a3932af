package interp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// codecVersion is bumped whenever the encoded layout changes.
const codecVersion = 1

type wireInterpolator struct {
	Version       int           `json:"version"`
	Scale         Scale         `json:"scale"`
	Exponent      int           `json:"exponent"`
	Extrapolation Extrapolation `json:"extrapolation"`
	Knots         []float64     `json:"knots"`
	Values        [][]float64   `json:"values"`
}

// MarshalJSON encodes the fitted state. Knots and values are stored after the
// axis transforms, so decoding never refits.
func (l *LogInterpolator) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireInterpolator{
		Version:       codecVersion,
		Scale:         l.scale,
		Exponent:      l.exponent,
		Extrapolation: l.extrap,
		Knots:         l.knots,
		Values:        l.values,
	})
}

// UnmarshalJSON decodes state written by MarshalJSON. Unknown fields and
// inconsistent shapes are rejected.
func (l *LogInterpolator) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wireInterpolator
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("%w: decode interpolator: %v", ErrInvalidInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after interpolator", ErrInvalidInput)
	}
	if w.Version != codecVersion {
		return fmt.Errorf("%w: interpolator version %d, want %d", ErrInvalidInput, w.Version, codecVersion)
	}

	cfg := config{exponent: w.Exponent, scale: w.Scale, extrap: w.Extrapolation}
	if err := cfg.validate(); err != nil {
		return err
	}
	if len(w.Knots) < 2 {
		return fmt.Errorf("%w: need at least 2 knots, got %d", ErrInvalidInput, len(w.Knots))
	}
	for i, k := range w.Knots {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: knot %d is not finite", ErrInvalidInput, i)
		}
		if i > 0 && k <= w.Knots[i-1] {
			return fmt.Errorf("%w: knots must be strictly increasing at index %d", ErrInvalidInput, i)
		}
	}
	if len(w.Values) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidInput)
	}
	for c, ch := range w.Values {
		if len(ch) != len(w.Knots) {
			return fmt.Errorf("%w: channel %d has %d values, want %d", ErrInvalidInput, c, len(ch), len(w.Knots))
		}
	}

	*l = *newFitted(cfg, w.Knots, w.Values)
	return nil
}
