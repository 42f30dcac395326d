// Package config loads pdfscrub configuration from local and global YAML
// files with precedence rules, and describes the fixed context of a run
// (source, destination, logs directory and start time). CLI code maps flags
// and files into these values.
package config
