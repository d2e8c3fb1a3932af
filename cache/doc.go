// Package cache persists fitted interpolators so they are built once.
//
// A [Store] owns one directory. Each artifact is a JSON file named
// "<name>.json" holding a single entry:
//
//	{"spec_interpolator": { ... }}
//
// [Store.GetOrBuild] returns the in-memory interpolator when this process has
// already produced it, loads the artifact when the file exists, and otherwise
// calls the builder and writes the artifact. The presence of the file is the
// only record that a build happened: artifacts are never refreshed, so a
// changed source table needs an explicit [Store.Invalidate].
//
// Concurrent callers for the same name share one build (singleflight), and a
// lock file next to each artifact serialises builders across processes.
// Artifacts are written to a temporary file and renamed into place, so
// readers never observe a partial write.
package cache
