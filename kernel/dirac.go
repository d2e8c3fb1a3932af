package kernel

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidInput reports a grid or point the kernel cannot be built on.
var ErrInvalidInput = errors.New("kernel: invalid input")

// ApproxDirac returns hat-function weights w[j] = max(0, 1-|point-grid[j]|/h)
// where h is the spacing of the grid interval containing point. The grid must
// be strictly increasing with at least two nodes.
//
// Points outside the grid are clamped when locating the interval, and a point
// on or past the last node uses the last interval's spacing.
func ApproxDirac(point float64, grid []float64) ([]float64, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: grid needs at least 2 nodes, got %d", ErrInvalidInput, len(grid))
	}
	if math.IsNaN(point) {
		return nil, fmt.Errorf("%w: point is NaN", ErrInvalidInput)
	}
	for j := 1; j < len(grid); j++ {
		if !(grid[j] > grid[j-1]) {
			return nil, fmt.Errorf("%w: grid must be strictly increasing at index %d", ErrInvalidInput, j)
		}
	}

	i := Interval(point, grid)
	spacing := grid[i+1] - grid[i]

	w := make([]float64, len(grid))
	for j, g := range grid {
		w[j] = math.Max(0, 1-math.Abs(point-g)/spacing)
	}
	return w, nil
}

// Interval returns the index i of the grid interval [grid[i], grid[i+1]] used
// for point, in the range [0, len(grid)-2]. grid must be strictly increasing
// with at least two nodes.
func Interval(point float64, grid []float64) int {
	last := len(grid) - 1
	if point <= grid[0] {
		return 0
	}
	if point >= grid[last] {
		return last - 1
	}
	// First node strictly above point; the interval starts one before it.
	k := sort.Search(len(grid), func(j int) bool { return grid[j] > point })
	return k - 1
}

// Mass returns the total weight, which is 1 for an interior point on a
// locally uniform grid.
func Mass(weights []float64) float64 {
	return vecmath.Sum(weights)
}
