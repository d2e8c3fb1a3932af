// Package table reads tabulated normalized spectra.
//
// A table file is whitespace-delimited text with one sample per line: the
// energy ratio x followed by three channel values. Further columns are
// ignored, blank lines and '#' comments are skipped, and x must be strictly
// increasing.
package table
