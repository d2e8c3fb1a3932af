package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-secondaries/internal/testutil"
)

func TestApproxDiracOnNode(t *testing.T) {
	grid := testutil.UniformGrid(0, 1, 11)
	for k := 1; k < len(grid)-1; k++ {
		w, err := ApproxDirac(grid[k], grid)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if w[k] != 1 {
			t.Fatalf("k=%d: w[k] = %v, want 1", k, w[k])
		}
		for j := range w {
			if (j < k-1 || j > k+1) && w[j] != 0 {
				t.Fatalf("k=%d: w[%d] = %v, want 0", k, j, w[j])
			}
		}
	}
}

func TestApproxDiracInteriorProperties(t *testing.T) {
	grids := [][]float64{
		testutil.UniformGrid(-2, 2, 9),
		testutil.LogGrid(1e-3, 1, 25),
		{0, 0.1, 0.3, 0.35, 1, 2.5},
	}
	for gi, grid := range grids {
		for _, frac := range []float64{0.1, 0.37, 0.5, 0.81} {
			for i := 0; i < len(grid)-1; i++ {
				p := grid[i] + frac*(grid[i+1]-grid[i])
				w, err := ApproxDirac(p, grid)
				if err != nil {
					t.Fatalf("grid %d p=%v: %v", gi, p, err)
				}
				if len(w) != len(grid) {
					t.Fatalf("len = %d, want %d", len(w), len(grid))
				}
				nearest := i
				if frac > 0.5 {
					nearest = i + 1
				}
				for j, v := range w {
					if v < 0 || v > 1 {
						t.Fatalf("grid %d p=%v: w[%d] = %v out of [0,1]", gi, p, j, v)
					}
					if j != nearest && frac != 0.5 && v >= w[nearest] {
						t.Fatalf("grid %d p=%v: w[%d]=%v >= nearest w[%d]=%v", gi, p, j, v, nearest, w[nearest])
					}
				}
			}
		}
	}
}

func TestApproxDiracUniformMass(t *testing.T) {
	grid := testutil.UniformGrid(0, 10, 41)
	for _, p := range []float64{0.3, 2.5, 5.01, 9.6} {
		w, err := ApproxDirac(p, grid)
		if err != nil {
			t.Fatal(err)
		}
		if m := Mass(w); math.Abs(m-1) > 1e-12 {
			t.Fatalf("p=%v: mass = %v, want 1", p, m)
		}
	}
}

func TestApproxDiracBoundary(t *testing.T) {
	grid := []float64{0, 1, 2, 4}

	// Last node: spacing of the final interval (2).
	w, err := ApproxDirac(4, grid)
	if err != nil {
		t.Fatalf("last node: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0, 0, 1}, 1e-15)

	// Beyond the grid on either side.
	w, err = ApproxDirac(5, grid)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0, 0, 0.5}, 1e-15)

	w, err = ApproxDirac(-0.5, grid)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{0.5, 0, 0, 0}, 1e-15)
}

func TestApproxDiracLocalSpacing(t *testing.T) {
	grid := []float64{0, 1, 2, 4, 8}
	// 3 lies in [2,4]: spacing 2, so nodes at 2 and 4 both get 0.5 and 1 gets 0.
	w, err := ApproxDirac(3, grid)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0, 0.5, 0.5, 0}, 1e-15)
}

func TestApproxDiracRejects(t *testing.T) {
	for _, tc := range []struct {
		name  string
		point float64
		grid  []float64
	}{
		{"empty", 0, nil},
		{"single", 0, []float64{1}},
		{"duplicate", 0.5, []float64{0, 0, 1}},
		{"decreasing", 0.5, []float64{1, 0}},
		{"nan point", math.NaN(), []float64{0, 1}},
		{"nan node", 0.5, []float64{0, math.NaN(), 1}},
	} {
		if _, err := ApproxDirac(tc.point, tc.grid); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestInterval(t *testing.T) {
	grid := []float64{0, 1, 2, 3}
	for _, tc := range []struct {
		p    float64
		want int
	}{
		{-1, 0}, {0, 0}, {0.5, 0}, {1, 1}, {2.9, 2}, {3, 2}, {7, 2},
	} {
		if got := Interval(tc.p, grid); got != tc.want {
			t.Fatalf("Interval(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}
