package secondary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-secondaries/cache"
	"github.com/cwbudde/algo-secondaries/internal/testutil"
	"github.com/cwbudde/algo-secondaries/interp"
	"github.com/cwbudde/algo-secondaries/table"
)

func newSpectra(t *testing.T, dir string, opts ...Option) *Spectra {
	t.Helper()
	store, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	return New(store, opts...)
}

// writeTables writes a distinct deterministic table for every kind.
func writeTables(t *testing.T, dir string) {
	t.Helper()
	for i, k := range Kinds() {
		x, y := testutil.DeterministicSpectrum(int64(100+i), 40, 3)
		testutil.WriteTable(t, dir, k.TableFile(), x, y)
	}
}

func writeIdentityTable(t *testing.T, dir string, k Kind) {
	t.Helper()
	testutil.WriteTable(t, dir, k.TableFile(),
		[]float64{0.1, 0.5, 0.9},
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
}

func TestEvaluateIdentityScenario(t *testing.T) {
	dir := t.TempDir()
	writeIdentityTable(t, dir, Muon)
	sp := newSpectra(t, dir)

	rows, err := sp.EvaluateScalar(Muon, 0.5, 1.0)
	if err != nil {
		t.Fatalf("EvaluateScalar: %v", err)
	}
	testutil.RequireRowsNearlyEqual(t, rows, [][]float64{{0, 2, 0}}, 1e-12)
}

func TestEvaluateScalarMatchesSingleton(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	sp := newSpectra(t, dir)

	for _, k := range Kinds() {
		scalar, err := sp.EvaluateScalar(k, 0.37, 2.0)
		if err != nil {
			t.Fatal(err)
		}
		seq, err := sp.Evaluate(k, []float64{0.37}, 2.0)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireRowsNearlyEqual(t, scalar, seq, 0)
		if len(scalar) != 1 || len(scalar[0]) != 3 {
			t.Fatalf("%s: shape %dx%d", k, len(scalar), len(scalar[0]))
		}
	}
}

func TestEvaluateShapeAndOrder(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	sp := newSpectra(t, dir)

	energies := []float64{8, 0.02, 3, 0.5}
	rows, err := sp.FromPi0(energies, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(energies) {
		t.Fatalf("rows = %d, want %d", len(rows), len(energies))
	}
	for i, e := range energies {
		single, err := sp.EvaluateScalar(Pi0, e, 10)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, rows[i], single[0], 0)
	}

	empty, err := sp.FromPi0(nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty input returned %d rows", len(empty))
	}
}

// The rescale divides by E_secondary, not E_primary.
func TestEvaluateRescalesBySecondaryEnergy(t *testing.T) {
	dir := t.TempDir()
	writeIdentityTable(t, dir, PiCh)
	sp := newSpectra(t, dir)

	rows, err := sp.EvaluateScalar(PiCh, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireRowsNearlyEqual(t, rows, [][]float64{{0, 1, 0}}, 1e-12)

	li, err := sp.Interpolator(PiCh)
	if err != nil {
		t.Fatal(err)
	}
	energies := []float64{0.3, 0.8, 1.1, 1.7}
	const primary = 2.0
	got, err := sp.FromPiCh(energies, primary)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range energies {
		raw := li.Evaluate([]float64{e / primary})[0]
		for c := range raw {
			raw[c] /= e
		}
		testutil.RequireSliceNearlyEqual(t, got[i], raw, 1e-12)
	}
}

func TestEvaluateZeroPrimaryEnergy(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	sp := newSpectra(t, dir)

	entries := map[Kind]func([]float64, float64) ([][]float64, error){
		Muon: sp.FromMuon,
		Pi0:  sp.FromPi0,
		PiCh: sp.FromPiCh,
	}
	for k, fn := range entries {
		rows, err := fn([]float64{0.5, 1}, 0)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("%s: err = %v, want ErrDivisionByZero", k, err)
		}
		if rows != nil {
			t.Fatalf("%s: rows = %v, want nil", k, rows)
		}
		var se *StageError
		if !errors.As(err, &se) || se.Stage != StageEvaluate || se.Kind != k {
			t.Fatalf("%s: err = %#v, want evaluate StageError", k, err)
		}
		if _, err := sp.EvaluateScalar(k, 0.5, 0); !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("%s scalar: err = %v", k, err)
		}
	}
}

func TestEvaluateZeroSecondaryEnergy(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	sp := newSpectra(t, dir)

	if _, err := sp.FromMuon([]float64{0.5, 0}, 1); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("err = %v, want ErrDivisionByZero", err)
	}
}

func TestCacheRoundTripEveryKind(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	energies := testutil.LogGrid(1e-3, 5, 41)
	const primary = 5.0

	fresh := newSpectra(t, dir)
	want := make(map[Kind][][]float64)
	for _, k := range Kinds() {
		rows, err := fresh.Evaluate(k, energies, primary)
		if err != nil {
			t.Fatalf("%s fresh: %v", k, err)
		}
		want[k] = rows
	}

	// Without the raw tables only the artifacts can satisfy a new store.
	for _, k := range Kinds() {
		if err := os.Remove(filepath.Join(dir, k.TableFile())); err != nil {
			t.Fatal(err)
		}
	}
	loaded := newSpectra(t, dir)
	for _, k := range Kinds() {
		rows, err := loaded.Evaluate(k, energies, primary)
		if err != nil {
			t.Fatalf("%s loaded: %v", k, err)
		}
		testutil.RequireRowsNearlyEqual(t, rows, want[k], 1e-12)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeTables(t, a)
	writeTables(t, b)
	energies := []float64{0.004, 0.09, 0.7, 2.2}

	ra, err := newSpectra(t, a).FromMuon(energies, 3)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := newSpectra(t, b).FromMuon(energies, 3)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireRowsNearlyEqual(t, ra, rb, 0)
}

func TestMissingTable(t *testing.T) {
	sp := newSpectra(t, t.TempDir())
	_, err := sp.FromMuon([]float64{1}, 2)
	if !errors.Is(err, table.ErrNotFound) {
		t.Fatalf("err = %v, want table.ErrNotFound", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageTable || se.Kind != Muon {
		t.Fatalf("err = %#v, want table StageError", err)
	}
}

func TestMalformedTable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Pi0.TableFile()), []byte("0.1 1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := newSpectra(t, dir).FromPi0([]float64{1}, 2)
	if !errors.Is(err, table.ErrInvalidInput) {
		t.Fatalf("err = %v, want table.ErrInvalidInput", err)
	}
}

func TestCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	sp := newSpectra(t, dir)
	if err := os.WriteFile(filepath.Join(dir, Muon.ArtifactName()+".json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := sp.FromMuon([]float64{1}, 2)
	if !errors.Is(err, cache.ErrLoad) {
		t.Fatalf("err = %v, want cache.ErrLoad", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageCache {
		t.Fatalf("err = %#v, want cache StageError", err)
	}
}

func TestWarmBuildsEveryArtifact(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	store, err := cache.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := New(store).Warm(); err != nil {
		t.Fatalf("Warm: %v", err)
	}
	entries, err := store.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
}

func TestWarmReportsMissingTable(t *testing.T) {
	dir := t.TempDir()
	writeIdentityTable(t, dir, Muon)
	sp := newSpectra(t, dir)

	err := sp.Warm(Muon, PiCh)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageTable || se.Kind != PiCh {
		t.Fatalf("Warm error = %v, want table stage error for piCh", err)
	}
	if _, err := os.Stat(filepath.Join(dir, Muon.ArtifactName()+".json")); err != nil {
		t.Fatalf("muon artifact not written: %v", err)
	}
}

func TestOptions(t *testing.T) {
	tables := t.TempDir()
	writeIdentityTable(t, tables, Muon)
	sp := newSpectra(t, t.TempDir(),
		WithTableDir(tables),
		WithInterpolatorOptions(interp.WithExtrapolation(interp.ExtrapolateClamp)))

	// x = 2 lies beyond the table; clamping holds the last row.
	rows, err := sp.EvaluateScalar(Muon, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireRowsNearlyEqual(t, rows, [][]float64{{0, 0, 0.25}}, 1e-12)

	li, err := sp.Interpolator(Muon)
	if err != nil {
		t.Fatal(err)
	}
	if li.Extrapolation() != interp.ExtrapolateClamp {
		t.Fatalf("extrapolation = %s", li.Extrapolation())
	}
}

func TestEnergyVectorCopies(t *testing.T) {
	in := []float64{1, 2}
	out := EnergyVector(in...)
	out[0] = 9
	if in[0] != 1 {
		t.Fatal("EnergyVector aliases its input")
	}
	if got := EnergyVector(3); len(got) != 1 || got[0] != 3 {
		t.Fatalf("EnergyVector(3) = %v", got)
	}
}

func TestUnknownKind(t *testing.T) {
	sp := newSpectra(t, t.TempDir())
	if _, err := sp.Evaluate(Kind(9), []float64{1}, 1); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
