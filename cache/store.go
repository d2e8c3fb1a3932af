package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/cwbudde/algo-secondaries/internal/logging"
	"github.com/cwbudde/algo-secondaries/interp"
)

const (
	artifactExt = ".json"
	lockExt     = ".lock"
	tmpExt      = ".tmp"
)

var (
	// ErrLoad reports an artifact that exists but cannot be decoded. It is
	// never resolved by rebuilding.
	ErrLoad = errors.New("cache: load artifact")
	// ErrInvalidName reports an artifact name that is not a plain file stem.
	ErrInvalidName = errors.New("cache: invalid artifact name")
)

// Builder produces an interpolator on a cache miss.
type Builder func() (*interp.LogInterpolator, error)

// Entry describes one artifact on disk.
type Entry struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// artifact is the on-disk envelope.
type artifact struct {
	SpecInterpolator *interp.LogInterpolator `json:"spec_interpolator"`
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is an artifact cache rooted at one directory. It is safe for
// concurrent use.
type Store struct {
	root   string
	logger *slog.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	loaded map[string]*interp.LogInterpolator
}

// Open returns a store rooted at root, creating the directory if needed.
func Open(root string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("cache: empty root directory")
	}
	s := &Store{
		root:   filepath.Clean(root),
		loaded: make(map[string]*interp.LogInterpolator),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "cache")

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create root %s: %w", s.root, err)
	}
	return s, nil
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// Path returns the artifact path for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name+artifactExt)
}

// GetOrBuild returns the interpolator for name, loading its artifact or
// building and persisting it on a miss. A present but unreadable artifact
// fails with ErrLoad.
func (s *Store) GetOrBuild(name string, build Builder) (*interp.LogInterpolator, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if li, ok := s.memo(name); ok {
		return li, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		if li, ok := s.memo(name); ok {
			return li, nil
		}
		li, err := s.loadOrBuild(name, build)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.loaded[name] = li
		s.mu.Unlock()
		return li, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*interp.LogInterpolator), nil
}

func (s *Store) memo(name string) (*interp.LogInterpolator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	li, ok := s.loaded[name]
	return li, ok
}

func (s *Store) loadOrBuild(name string, build Builder) (*interp.LogInterpolator, error) {
	path := s.Path(name)
	unlock, err := s.lock(path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	li, err := readArtifact(path)
	if err == nil {
		s.logger.Debug("loaded artifact",
			logging.String(logging.FieldEventType, "artifact_loaded"),
			logging.String(logging.FieldArtifact, name),
			logging.String(logging.FieldPath, path))
		return li, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("artifact unreadable",
			logging.String(logging.FieldEventType, "artifact_load_failed"),
			logging.String(logging.FieldArtifact, name),
			logging.Error(err))
		return nil, err
	}

	if build == nil {
		return nil, fmt.Errorf("cache: no builder for missing artifact %s", name)
	}
	start := time.Now()
	li, err = build()
	if err != nil {
		return nil, fmt.Errorf("cache: build %s: %w", name, err)
	}
	if li == nil {
		return nil, fmt.Errorf("cache: build %s: builder returned nil", name)
	}
	if err := s.writeArtifact(path, li); err != nil {
		return nil, err
	}

	s.logger.Info("built artifact",
		logging.String(logging.FieldEventType, "artifact_built"),
		logging.String(logging.FieldArtifact, name),
		logging.String(logging.FieldPath, path),
		logging.Int("samples", li.Len()),
		logging.Duration("elapsed", time.Since(start)))
	return li, nil
}

// lock takes the cross-process lock guarding path.
func (s *Store) lock(path string) (func(), error) {
	fl := flock.New(path + lockExt)
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("cache: lock %s: %w", path, err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("release artifact lock failed",
				logging.String(logging.FieldPath, fl.Path()),
				logging.Error(err))
		}
	}, nil
}

// readArtifact decodes the artifact at path. A missing file is reported as
// fs.ErrNotExist; anything else is ErrLoad.
func readArtifact(path string) (*interp.LogInterpolator, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var a artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w %s: trailing data", ErrLoad, path)
	}
	if a.SpecInterpolator == nil {
		return nil, fmt.Errorf("%w %s: missing spec_interpolator entry", ErrLoad, path)
	}
	return a.SpecInterpolator, nil
}

// writeArtifact writes atomically via a uniquely named temp file.
func (s *Store) writeArtifact(path string, li *interp.LogInterpolator) error {
	data, err := json.Marshal(artifact{SpecInterpolator: li})
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", path, err)
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+tmpExt)
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("cache: sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cache: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cache: rename temp file: %w", err)
	}
	return nil
}

// Invalidate deletes the artifact for name and forgets the in-memory copy.
// A missing artifact is not an error.
func (s *Store) Invalidate(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	path := s.Path(name)
	unlock, err := s.lock(path)
	if err != nil {
		return err
	}
	defer unlock()

	s.mu.Lock()
	delete(s.loaded, name)
	s.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cache: remove %s: %w", path, err)
	}
	s.logger.Info("invalidated artifact",
		logging.String(logging.FieldEventType, "artifact_invalidated"),
		logging.String(logging.FieldArtifact, name))
	return nil
}

// Entries lists the artifacts on disk sorted by name.
func (s *Store) Entries() ([]Entry, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("cache: list %s: %w", s.root, err)
	}
	var entries []Entry
	for _, d := range dirents {
		fileName := d.Name()
		if d.IsDir() || strings.HasPrefix(fileName, ".") || filepath.Ext(fileName) != artifactExt {
			continue
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("cache: stat %s: %w", fileName, err)
		}
		entries = append(entries, Entry{
			Name:    strings.TrimSuffix(fileName, artifactExt),
			Path:    filepath.Join(s.root, fileName),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
