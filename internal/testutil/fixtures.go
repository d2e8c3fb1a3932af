package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// UniformGrid returns n evenly spaced points from lo to hi inclusive.
func UniformGrid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// LogGrid returns n logarithmically spaced points from lo to hi inclusive.
// Both bounds must be positive.
func LogGrid(lo, hi float64, n int) []float64 {
	out := UniformGrid(math.Log(lo), math.Log(hi), n)
	for i, v := range out {
		out[i] = math.Exp(v)
	}
	out[0], out[n-1] = lo, hi
	return out
}

// DeterministicSpectrum generates a reproducible table of n rows on a log
// grid over [1e-3, 1] with the given number of non-negative channels.
func DeterministicSpectrum(seed int64, n, channels int) ([]float64, [][]float64) {
	x := LogGrid(1e-3, 1, n)
	rng := rand.New(rand.NewSource(seed))
	y := make([][]float64, n)
	for i := range y {
		row := make([]float64, channels)
		for c := range row {
			row[c] = rng.Float64() * (1 - x[i])
		}
		y[i] = row
	}
	return x, y
}

// FormatTable renders rows as whitespace-delimited text, one sample per line.
func FormatTable(x []float64, y [][]float64) string {
	var b strings.Builder
	for i := range x {
		fmt.Fprintf(&b, "%.17g", x[i])
		for _, v := range y[i] {
			fmt.Fprintf(&b, " %.17g", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTable writes x/y as a table file named name inside dir and returns
// its path.
func WriteTable(t *testing.T, dir, name string, x []float64, y [][]float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(FormatTable(x, y)), 0o644); err != nil {
		t.Fatalf("write table %s: %v", path, err)
	}
	return path
}
