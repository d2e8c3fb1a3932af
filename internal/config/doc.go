// Package config loads the TOML configuration for the secondaries tools.
//
// Sections:
//   - [data]: data_root holding the *_normed.dat tables and cached artifacts
//   - [interpolation]: exponent, scale and extrapolation used when building
//   - [logging]: level and format
//
// Missing files are not an error; [Default] values apply.
package config
