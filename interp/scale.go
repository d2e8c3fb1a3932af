package interp

import (
	"fmt"
	"math"
	"strings"
)

// Scale selects the axis transforms applied before interpolation. The name
// reads value axis first, sample axis second.
type Scale int

const (
	ScaleLinLin Scale = iota
	ScaleLinLog
	ScaleLogLin
	ScaleLogLog
)

var scaleNames = [...]string{
	ScaleLinLin: "lin-lin",
	ScaleLinLog: "lin-log",
	ScaleLogLin: "log-lin",
	ScaleLogLog: "log-log",
}

// ParseScale parses a scale name such as "lin-log".
func ParseScale(s string) (Scale, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range scaleNames {
		if n == name {
			return Scale(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown scale %q", ErrInvalidInput, s)
}

func (s Scale) String() string {
	if !s.valid() {
		return fmt.Sprintf("Scale(%d)", int(s))
	}
	return scaleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Scale) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: unknown scale %d", ErrInvalidInput, int(s))
	}
	return []byte(scaleNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scale) UnmarshalText(text []byte) error {
	v, err := ParseScale(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Scale) valid() bool {
	return s >= ScaleLinLin && s <= ScaleLogLog
}

// LogSamples reports whether the sample axis is interpolated in log space.
func (s Scale) LogSamples() bool {
	return s == ScaleLinLog || s == ScaleLogLog
}

// LogValues reports whether channel values are interpolated in log space.
func (s Scale) LogValues() bool {
	return s == ScaleLogLin || s == ScaleLogLog
}

func (s Scale) forwardX(x float64) float64 {
	if s.LogSamples() {
		return math.Log(x)
	}
	return x
}

func (s Scale) forwardY(y float64) float64 {
	if s.LogValues() {
		return math.Log(y)
	}
	return y
}

func (s Scale) inverseY(y float64) float64 {
	if s.LogValues() {
		return math.Exp(y)
	}
	return y
}

// Extrapolation controls evaluation outside the sampled range.
type Extrapolation int

const (
	// ExtrapolateZero returns 0 on every channel outside the sampled range.
	ExtrapolateZero Extrapolation = iota
	// ExtrapolateClamp holds the nearest edge sample.
	ExtrapolateClamp
)

var extrapolationNames = [...]string{
	ExtrapolateZero:  "zero",
	ExtrapolateClamp: "clamp",
}

// ParseExtrapolation parses "zero" or "clamp".
func ParseExtrapolation(s string) (Extrapolation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range extrapolationNames {
		if n == name {
			return Extrapolation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown extrapolation %q", ErrInvalidInput, s)
}

func (e Extrapolation) String() string {
	if !e.valid() {
		return fmt.Sprintf("Extrapolation(%d)", int(e))
	}
	return extrapolationNames[e]
}

// MarshalText implements encoding.TextMarshaler.
func (e Extrapolation) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: unknown extrapolation %d", ErrInvalidInput, int(e))
	}
	return []byte(extrapolationNames[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Extrapolation) UnmarshalText(text []byte) error {
	v, err := ParseExtrapolation(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func (e Extrapolation) valid() bool {
	return e == ExtrapolateZero || e == ExtrapolateClamp
}
