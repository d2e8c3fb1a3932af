package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance). NaN matches only NaN.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if msg := compare(got, want, eps); msg != "" {
		t.Fatal(msg)
	}
}

// RequireRowsNearlyEqual applies RequireSliceNearlyEqual row by row.
func RequireRowsNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if msg := compare(got[i], want[i], eps); msg != "" {
			t.Fatalf("row %d: %s", i, msg)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// compare returns a description of the first mismatch, or "".
func compare(got, want []float64, eps float64) string {
	if len(got) != len(want) {
		return fmt.Sprintf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		g, w := got[i], want[i]
		if math.IsNaN(g) || math.IsNaN(w) {
			if math.IsNaN(g) != math.IsNaN(w) {
				return fmt.Sprintf("index %d: got %v, want %v", i, g, w)
			}
			continue
		}
		if diff := math.Abs(g - w); diff > eps {
			return fmt.Sprintf("index %d: got %v, want %v (diff %v > eps %v)", i, g, w, diff, eps)
		}
	}
	return ""
}
