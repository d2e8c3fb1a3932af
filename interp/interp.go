package interp

// LagrangeInterpolator evaluates one segment of a sampled curve at a
// fractional offset. LogInterpolator uses it on the transformed axes.
type LagrangeInterpolator struct {
	order int
}

// NewLagrangeInterpolator creates an interpolator.
// order: 1 = linear, 3 = cubic (Hermite-style 4-point interpolation).
func NewLagrangeInterpolator(order int) *LagrangeInterpolator {
	return &LagrangeInterpolator{order: order}
}

// Order reports the configured order.
func (l *LagrangeInterpolator) Order() int {
	return l.order
}

// Interpolate evaluates the segment at frac in [0,1]. Order 3 with a
// 4-sample window interpolates between samples[1] and samples[2]; every other
// case falls back to linear between samples[0] and samples[1].
func (l *LagrangeInterpolator) Interpolate(samples []float64, frac float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	if len(samples) < 2 {
		return samples[0]
	}
	if l.order == 3 && len(samples) >= 4 {
		return Hermite4(frac, samples[0], samples[1], samples[2], samples[3])
	}
	return Linear2(frac, samples[0], samples[1])
}

// Linear2 computes 2-point linear interpolation from x0 (t=0) to x1 (t=1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
