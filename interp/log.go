package interp

import (
	"fmt"
	"math"
	"sort"
)

// Option configures a LogInterpolator.
type Option func(*config)

type config struct {
	exponent int
	scale    Scale
	extrap   Extrapolation
}

func defaultConfig() config {
	return config{
		exponent: 1,
		scale:    ScaleLinLog,
		extrap:   ExtrapolateZero,
	}
}

// WithExponent sets the interpolation order along the transformed axes:
// 1 = piecewise linear, 3 = 4-point cubic Hermite.
func WithExponent(n int) Option {
	return func(c *config) {
		c.exponent = n
	}
}

// WithScale sets the axis transforms.
func WithScale(s Scale) Option {
	return func(c *config) {
		c.scale = s
	}
}

// WithExtrapolation sets out-of-range behaviour.
func WithExtrapolation(e Extrapolation) Option {
	return func(c *config) {
		c.extrap = e
	}
}

// LogInterpolator interpolates multi-channel samples with optional log
// transforms on either axis.
type LogInterpolator struct {
	scale    Scale
	exponent int
	extrap   Extrapolation
	prim     *LagrangeInterpolator

	// knots are the sample positions after the sample-axis transform.
	knots []float64
	// values is channel-major: values[c][i] belongs to knots[i].
	values [][]float64
}

// NewLogInterpolator fits an interpolator to x (strictly increasing) and y,
// where y[i] holds the channel values at x[i].
func NewLogInterpolator(x []float64, y [][]float64, opts ...Option) (*LogInterpolator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidInput, len(x))
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf("%w: %d sample positions but %d value rows", ErrInvalidInput, len(x), len(y))
	}
	channels := len(y[0])
	if channels == 0 {
		return nil, fmt.Errorf("%w: value rows are empty", ErrInvalidInput)
	}

	knots := make([]float64, len(x))
	values := make([][]float64, channels)
	for c := range values {
		values[c] = make([]float64, len(x))
	}
	for i, xi := range x {
		if math.IsNaN(xi) || math.IsInf(xi, 0) {
			return nil, fmt.Errorf("%w: sample %d is not finite", ErrInvalidInput, i)
		}
		if i > 0 && xi <= x[i-1] {
			return nil, fmt.Errorf("%w: samples must be strictly increasing at index %d", ErrInvalidInput, i)
		}
		if cfg.scale.LogSamples() && xi <= 0 {
			return nil, fmt.Errorf("%w: %s scale needs positive samples, got %v at index %d", ErrInvalidInput, cfg.scale, xi, i)
		}
		knots[i] = cfg.scale.forwardX(xi)

		if len(y[i]) != channels {
			return nil, fmt.Errorf("%w: row %d has %d channels, want %d", ErrInvalidInput, i, len(y[i]), channels)
		}
		for c, v := range y[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: value (%d,%d) is not finite", ErrInvalidInput, i, c)
			}
			if cfg.scale.LogValues() && v <= 0 {
				return nil, fmt.Errorf("%w: %s scale needs positive values, got %v at (%d,%d)", ErrInvalidInput, cfg.scale, v, i, c)
			}
			values[c][i] = cfg.scale.forwardY(v)
		}
	}

	return newFitted(cfg, knots, values), nil
}

func newFitted(cfg config, knots []float64, values [][]float64) *LogInterpolator {
	return &LogInterpolator{
		scale:    cfg.scale,
		exponent: cfg.exponent,
		extrap:   cfg.extrap,
		prim:     NewLagrangeInterpolator(cfg.exponent),
		knots:    knots,
		values:   values,
	}
}

func (c config) validate() error {
	if c.exponent != 1 && c.exponent != 3 {
		return fmt.Errorf("%w: exponent must be 1 or 3, got %d", ErrInvalidInput, c.exponent)
	}
	if !c.scale.valid() {
		return fmt.Errorf("%w: unknown scale %d", ErrInvalidInput, int(c.scale))
	}
	if !c.extrap.valid() {
		return fmt.Errorf("%w: unknown extrapolation %d", ErrInvalidInput, int(c.extrap))
	}
	return nil
}

// Len returns the number of samples.
func (l *LogInterpolator) Len() int { return len(l.knots) }

// Channels returns the number of output channels.
func (l *LogInterpolator) Channels() int { return len(l.values) }

// Exponent returns the interpolation order.
func (l *LogInterpolator) Exponent() int { return l.exponent }

// Scale returns the axis transforms.
func (l *LogInterpolator) Scale() Scale { return l.scale }

// Extrapolation returns the out-of-range behaviour.
func (l *LogInterpolator) Extrapolation() Extrapolation { return l.extrap }

// Bounds returns the first and last sample positions before any log transform.
func (l *LogInterpolator) Bounds() (lo, hi float64) {
	n := len(l.knots)
	return l.inverseX(l.knots[0]), l.inverseX(l.knots[n-1])
}

func (l *LogInterpolator) inverseX(t float64) float64 {
	if l.scale.LogSamples() {
		return math.Exp(t)
	}
	return t
}

// Evaluate returns one row of Channels() values per query point.
func (l *LogInterpolator) Evaluate(xq []float64) [][]float64 {
	cols := l.EvaluateChannels(xq)
	rows := make([][]float64, len(xq))
	for i := range rows {
		row := make([]float64, len(cols))
		for c := range cols {
			row[c] = cols[c][i]
		}
		rows[i] = row
	}
	return rows
}

// EvaluateChannels is Evaluate in channel-major layout: out[c][i] is channel c
// at xq[i].
func (l *LogInterpolator) EvaluateChannels(xq []float64) [][]float64 {
	out := make([][]float64, len(l.values))
	for c := range out {
		out[c] = make([]float64, len(xq))
	}
	for i, x := range xq {
		l.evalAt(x, out, i)
	}
	return out
}

// position classifies a query against the knots.
type position int

const (
	posInside position = iota
	posNode
	posBelow
	posAbove
	posUndefined
)

// locate returns the segment index and fractional offset of x. For posNode,
// seg is the matching knot index.
func (l *LogInterpolator) locate(x float64) (pos position, seg int, frac float64) {
	if math.IsNaN(x) {
		return posUndefined, 0, 0
	}
	if l.scale.LogSamples() && x <= 0 {
		return posBelow, 0, 0
	}
	t := l.scale.forwardX(x)
	n := len(l.knots)
	if t < l.knots[0] {
		return posBelow, 0, 0
	}
	if t > l.knots[n-1] {
		return posAbove, 0, 0
	}
	idx := sort.SearchFloat64s(l.knots, t)
	if l.knots[idx] == t {
		return posNode, idx, 0
	}
	seg = idx - 1
	frac = (t - l.knots[seg]) / (l.knots[seg+1] - l.knots[seg])
	return posInside, seg, frac
}

func (l *LogInterpolator) evalAt(x float64, out [][]float64, i int) {
	pos, seg, frac := l.locate(x)
	n := len(l.knots)
	for c, v := range l.values {
		switch pos {
		case posUndefined:
			out[c][i] = math.NaN()
		case posNode:
			out[c][i] = l.scale.inverseY(v[seg])
		case posBelow, posAbove:
			if l.extrap == ExtrapolateZero {
				out[c][i] = 0
				continue
			}
			edge := 0
			if pos == posAbove {
				edge = n - 1
			}
			out[c][i] = l.scale.inverseY(v[edge])
		default:
			out[c][i] = l.scale.inverseY(l.segment(v, seg, frac))
		}
	}
}

// segment interpolates channel samples v between knots seg and seg+1. The
// cubic neighbours are clamped at the table edges.
func (l *LogInterpolator) segment(v []float64, seg int, frac float64) float64 {
	if l.exponent != 3 {
		return l.prim.Interpolate(v[seg:seg+2], frac)
	}
	last := len(v) - 1
	var window [4]float64
	for k := range window {
		j := seg - 1 + k
		if j < 0 {
			j = 0
		} else if j > last {
			j = last
		}
		window[k] = v[j]
	}
	return l.prim.Interpolate(window[:], frac)
}
