package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/cwbudde/algo-secondaries/interp"
)

//go:embed sample_config.toml
var sampleConfig string

// Data locates the spectrum tables and artifact cache.
type Data struct {
	Root string `toml:"root"`
}

// Interpolation configures interpolators built from raw tables.
type Interpolation struct {
	Exponent      int    `toml:"exponent"`
	Scale         string `toml:"scale"`
	Extrapolation string `toml:"extrapolation"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values.
type Config struct {
	Data          Data          `toml:"data"`
	Interpolation Interpolation `toml:"interpolation"`
	Logging       Logging       `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data: Data{Root: defaultDataRoot()},
		Interpolation: Interpolation{
			Exponent:      1,
			Scale:         interp.ScaleLinLog.String(),
			Extrapolation: interp.ExtrapolateZero.String(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/secondaries/config.toml")
}

// Load parses and validates the configuration at path, or at the default
// location when path is empty. It returns the resolved path and whether the
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, "", false, err
		}
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, "", false, err
	}

	exists := true
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func (c *Config) normalize() error {
	root, err := ExpandPath(strings.TrimSpace(c.Data.Root))
	if err != nil {
		return err
	}
	c.Data.Root = root
	c.Interpolation.Scale = strings.ToLower(strings.TrimSpace(c.Interpolation.Scale))
	c.Interpolation.Extrapolation = strings.ToLower(strings.TrimSpace(c.Interpolation.Extrapolation))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Data.Root == "" {
		return errors.New("config: data.root must be set")
	}
	if _, err := c.InterpolatorOptions(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("config: logging.format %q must be auto, console or json", c.Logging.Format)
	}
	return nil
}

// InterpolatorOptions converts the [interpolation] section to interp options.
func (c *Config) InterpolatorOptions() ([]interp.Option, error) {
	if c.Interpolation.Exponent != 1 && c.Interpolation.Exponent != 3 {
		return nil, fmt.Errorf("config: interpolation.exponent must be 1 or 3, got %d", c.Interpolation.Exponent)
	}
	scale, err := interp.ParseScale(c.Interpolation.Scale)
	if err != nil {
		return nil, fmt.Errorf("config: interpolation.scale: %w", err)
	}
	extrap, err := interp.ParseExtrapolation(c.Interpolation.Extrapolation)
	if err != nil {
		return nil, fmt.Errorf("config: interpolation.extrapolation: %w", err)
	}
	return []interp.Option{
		interp.WithExponent(c.Interpolation.Exponent),
		interp.WithScale(scale),
		interp.WithExtrapolation(extrap),
	}, nil
}

// ExpandPath expands a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

func defaultDataRoot() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "secondaries")
	}
	return "~/.local/share/secondaries"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
