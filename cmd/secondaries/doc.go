// Command secondaries evaluates secondary-particle spectra and manages the
// cached interpolators behind them.
//
// Usage:
//
//	secondaries [--config path] [--data-root dir] [--json] <command>
//
// Examples:
//
//	secondaries eval muon --primary 10 0.5 1 2
//	secondaries cache build
//	secondaries cache list
//	secondaries cache invalidate pi0
//	secondaries kernel --point 0.3 0 0.25 0.5 0.75 1
//	secondaries config init
package main
