// Package pdfscrub provides the command-line interface for pdfscrub.
// It wires flags, config files and environment overrides into a cleaning
// run and exposes helper subcommands (summarize, history, config, etc.).
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/pdfscrub/cmd/pdfscrub"
//	func main() { pdfscrub.Execute() }
package pdfscrub
