package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-secondaries/cache"
	"github.com/cwbudde/algo-secondaries/internal/config"
	"github.com/cwbudde/algo-secondaries/internal/logging"
	"github.com/cwbudde/algo-secondaries/secondary"
)

type commandContext struct {
	configFlag   string
	dataRootFlag string
	jsonFlag     bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	spectraOnce sync.Once
	store       *cache.Store
	spectra     *secondary.Spectra
	spectraErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if root := strings.TrimSpace(c.dataRootFlag); root != "" {
			expanded, err := config.ExpandPath(root)
			if err != nil {
				c.configErr = fmt.Errorf("resolve data root: %w", err)
				return
			}
			cfg.Data.Root = expanded
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
}

// ensureSpectra opens the artifact store and the evaluator on first use.
func (c *commandContext) ensureSpectra() (*cache.Store, *secondary.Spectra, error) {
	c.spectraOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.spectraErr = err
			return
		}
		logger, err := c.logger()
		if err != nil {
			c.spectraErr = err
			return
		}
		interpOpts, err := cfg.InterpolatorOptions()
		if err != nil {
			c.spectraErr = err
			return
		}
		store, err := cache.Open(cfg.Data.Root, cache.WithLogger(logger))
		if err != nil {
			c.spectraErr = err
			return
		}
		c.store = store
		c.spectra = secondary.New(store,
			secondary.WithLogger(logger),
			secondary.WithInterpolatorOptions(interpOpts...))
	})
	return c.store, c.spectra, c.spectraErr
}

func (c *commandContext) JSONMode() bool {
	return c.jsonFlag
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// parseKinds resolves kind names, defaulting to every kind.
func parseKinds(args []string) ([]secondary.Kind, error) {
	if len(args) == 0 {
		return secondary.Kinds(), nil
	}
	kinds := make([]secondary.Kind, 0, len(args))
	for _, a := range args {
		k, err := secondary.ParseKind(a)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
