// Package interp provides interpolation over tabulated samples.
//
// Two layers live here:
//
//   - Point primitives: [Linear2], [Hermite4] and [LagrangeInterpolator]
//     interpolate between neighbouring samples at a fractional position.
//   - [LogInterpolator]: a multi-channel table interpolator that maps the
//     sample axis and/or the channel values into log space before applying a
//     primitive, then maps the result back.
//
// # Scales
//
// A [Scale] names the value axis first and the sample axis second, so
// [ScaleLinLog] interpolates linearly in the channel values against log(x).
// Log axes require strictly positive samples.
//
// # Usage
//
//	li, err := interp.NewLogInterpolator(x, rows,
//		interp.WithExponent(1),
//		interp.WithScale(interp.ScaleLinLog))
//	out := li.Evaluate([]float64{0.25, 0.5})
//
// A constructed interpolator is immutable and safe for concurrent use. It
// encodes to JSON ([LogInterpolator.MarshalJSON]) so fitted tables can be
// persisted and restored without refitting.
package interp
