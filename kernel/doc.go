// Package kernel builds discrete approximations of a point mass on a sample
// grid.
//
// [ApproxDirac] places a triangular (linear hat) kernel centred on a point,
// with its half-width set by the grid spacing around that point. On a
// locally uniform grid the weights sum to 1, which makes the result a usable
// stand-in for a Dirac delta when a spectrum is tabulated on the grid.
package kernel
