// Package core provides a small, stable facade over pdfscrub's internal
// pipeline for other programs. It re-exports a narrow API surface so callers
// can depend on a stable import path without importing internal packages.
//
// Example:
//
//	res, err := core.Clean(core.Config{Source: "in", Dest: "out"})
//	if err != nil { /* handle */ }
//	_ = core.MarshalRecords(os.Stdout, res.Records)
package core
