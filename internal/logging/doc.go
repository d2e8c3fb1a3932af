// Package logging constructs the slog loggers used across the module.
//
// Library packages accept a *slog.Logger and fall back to [NewNop], so they
// stay silent unless a caller wires a logger in. The CLI builds one from
// configuration with [New].
package logging
