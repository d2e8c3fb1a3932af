package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// Columns is the number of leading columns read from each line.
const Columns = 4

var (
	// ErrInvalidInput reports a malformed table.
	ErrInvalidInput = errors.New("table: invalid input")
	// ErrNotFound reports a missing table file. It also matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("table: not found: %w", fs.ErrNotExist)
)

// Table holds one spectrum. Y[i] are the channel values at X[i].
type Table struct {
	X []float64
	Y [][]float64
}

// Len returns the number of samples.
func (t *Table) Len() int { return len(t.X) }

// Channels returns the number of value columns.
func (t *Table) Channels() int { return Columns - 1 }

// ReadFile reads the table at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a table from r.
func Read(r io.Reader) (*Table, error) {
	t := &Table{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < Columns {
			return nil, fmt.Errorf("%w: line %d has %d columns, want at least %d", ErrInvalidInput, line, len(fields), Columns)
		}

		var row [Columns]float64
		for c := range row {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q is not a number", ErrInvalidInput, line, c+1, fields[c])
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d column %d: value is not finite", ErrInvalidInput, line, c+1)
			}
			row[c] = v
		}
		if n := len(t.X); n > 0 && row[0] <= t.X[n-1] {
			return nil, fmt.Errorf("%w: line %d: x=%v does not increase on %v", ErrInvalidInput, line, row[0], t.X[n-1])
		}
		t.X = append(t.X, row[0])
		t.Y = append(t.Y, append([]float64(nil), row[1:]...))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: read: %w", err)
	}
	if len(t.X) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidInput)
	}
	return t, nil
}
