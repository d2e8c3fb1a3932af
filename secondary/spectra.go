package secondary

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-secondaries/cache"
	"github.com/cwbudde/algo-secondaries/internal/logging"
	"github.com/cwbudde/algo-secondaries/interp"
	"github.com/cwbudde/algo-secondaries/table"
)

// Option configures Spectra.
type Option func(*Spectra)

// WithTableDir reads raw tables from dir instead of the store root.
func WithTableDir(dir string) Option {
	return func(s *Spectra) {
		s.tableDir = dir
	}
}

// WithInterpolatorOptions replaces the options used when fitting a table.
// The default is exponent 1 on the lin-log scale.
func WithInterpolatorOptions(opts ...interp.Option) Option {
	copied := append([]interp.Option(nil), opts...)
	return func(s *Spectra) {
		s.interpOpts = copied
	}
}

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spectra) {
		s.logger = logger
	}
}

// Spectra evaluates secondary spectra for every Kind through one cache store.
// It is safe for concurrent use.
type Spectra struct {
	store      *cache.Store
	tableDir   string
	interpOpts []interp.Option
	logger     *slog.Logger
}

// New returns Spectra backed by store. Raw tables are read from the store
// root unless WithTableDir is given.
func New(store *cache.Store, opts ...Option) *Spectra {
	s := &Spectra{
		store:      store,
		tableDir:   store.Root(),
		interpOpts: []interp.Option{interp.WithExponent(1), interp.WithScale(interp.ScaleLinLog)},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "secondary")
	return s
}

// EnergyVector copies scalar or sequence energies into a fresh slice, so
// EnergyVector(e) and EnergyVector(es...) can be passed to Evaluate alike.
func EnergyVector(values ...float64) []float64 {
	return append(make([]float64, 0, len(values)), values...)
}

// Interpolator returns the fitted interpolator for kind, loading or building
// its cache artifact on first use.
func (s *Spectra) Interpolator(kind Kind) (*interp.LogInterpolator, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("secondary: unknown particle kind %d", int(kind))
	}
	li, err := s.store.GetOrBuild(kind.ArtifactName(), func() (*interp.LogInterpolator, error) {
		return s.build(kind)
	})
	if err != nil {
		var se *StageError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &StageError{Stage: StageCache, Kind: kind, Err: err}
	}
	return li, nil
}

func (s *Spectra) build(kind Kind) (*interp.LogInterpolator, error) {
	path := filepath.Join(s.tableDir, kind.TableFile())
	t, err := table.ReadFile(path)
	if err != nil {
		return nil, &StageError{Stage: StageTable, Kind: kind, Err: err}
	}
	li, err := interp.NewLogInterpolator(t.X, t.Y, s.interpOpts...)
	if err != nil {
		return nil, &StageError{Stage: StageTable, Kind: kind, Err: err}
	}
	s.logger.Debug("fitted spectrum table",
		logging.String(logging.FieldKind, kind.String()),
		logging.String(logging.FieldPath, path),
		logging.Int("samples", t.Len()))
	return li, nil
}

// Evaluate returns one row of channel densities per secondary energy for a
// primary of energy ePrimary. Rows are the interpolated spectrum at
// x = E_secondary/ePrimary divided by E_secondary.
func (s *Spectra) Evaluate(kind Kind, eSecondary []float64, ePrimary float64) ([][]float64, error) {
	if ePrimary == 0 {
		return nil, &StageError{Stage: StageEvaluate, Kind: kind, Err: fmt.Errorf("%w: primary energy is zero", ErrDivisionByZero)}
	}
	x := make([]float64, len(eSecondary))
	inv := make([]float64, len(eSecondary))
	for i, e := range eSecondary {
		if e == 0 {
			return nil, &StageError{Stage: StageEvaluate, Kind: kind, Err: fmt.Errorf("%w: secondary energy %d is zero", ErrDivisionByZero, i)}
		}
		x[i] = e / ePrimary
		inv[i] = 1 / e
	}

	li, err := s.Interpolator(kind)
	if err != nil {
		return nil, err
	}

	cols := li.EvaluateChannels(x)
	for _, ch := range cols {
		vecmath.MulBlockInPlace(ch, inv)
	}

	rows := make([][]float64, len(eSecondary))
	for i := range rows {
		row := make([]float64, len(cols))
		for c := range cols {
			row[c] = cols[c][i]
		}
		rows[i] = row
	}
	return rows, nil
}

// EvaluateScalar evaluates a single secondary energy; the result has one row.
func (s *Spectra) EvaluateScalar(kind Kind, eSecondary, ePrimary float64) ([][]float64, error) {
	return s.Evaluate(kind, EnergyVector(eSecondary), ePrimary)
}

// FromMuon evaluates the secondaries of a muon of energy ePrimary.
func (s *Spectra) FromMuon(eSecondary []float64, ePrimary float64) ([][]float64, error) {
	return s.Evaluate(Muon, eSecondary, ePrimary)
}

// FromPi0 evaluates the secondaries of a neutral pion of energy ePrimary.
func (s *Spectra) FromPi0(eSecondary []float64, ePrimary float64) ([][]float64, error) {
	return s.Evaluate(Pi0, eSecondary, ePrimary)
}

// FromPiCh evaluates the secondaries of a charged pion of energy ePrimary.
func (s *Spectra) FromPiCh(eSecondary []float64, ePrimary float64) ([][]float64, error) {
	return s.Evaluate(PiCh, eSecondary, ePrimary)
}

// Warm loads or builds the interpolators for kinds in parallel, or for every
// kind when none are given. It returns the first error.
func (s *Spectra) Warm(kinds ...Kind) error {
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	var g errgroup.Group
	for _, k := range kinds {
		g.Go(func() error {
			_, err := s.Interpolator(k)
			return err
		})
	}
	return g.Wait()
}
