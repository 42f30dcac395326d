package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout formats the run start time in output file names.
const TimestampLayout = "2006-01-02_15-04-05"

const (
	reportSuffix = "_log-pdf-processing-report.csv"
	auditName    = "pdfscrub_audit.jsonl"
)

// Run is the fixed context of one cleaning run. It is built once by the
// entry point and passed down; nothing below reads the environment itself.
type Run struct {
	Source  string
	Dest    string
	LogsDir string
	Started time.Time
}

// DefaultLogsDir returns <home>/h2ogpt_rg/logs.
func DefaultLogsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("resolve home directory: empty")
	}
	return filepath.Join(home, "h2ogpt_rg", "logs"), nil
}

// NewRun resolves absolute paths and fills in the default logs directory
// when logsDir is empty.
func NewRun(source, dest, logsDir string, started time.Time) (Run, error) {
	if logsDir == "" {
		d, err := DefaultLogsDir()
		if err != nil {
			return Run{}, err
		}
		logsDir = d
	}
	r := Run{Started: started}
	for _, p := range []struct {
		in  string
		out *string
	}{{source, &r.Source}, {dest, &r.Dest}, {logsDir, &r.LogsDir}} {
		abs, err := filepath.Abs(p.in)
		if err != nil {
			return Run{}, err
		}
		*p.out = abs
	}
	return r, nil
}

// Timestamp is the run start formatted for file names.
func (r Run) Timestamp() string { return r.Started.Format(TimestampLayout) }

// ReportPath is the CSV ledger path for this run.
func (r Run) ReportPath() string {
	return filepath.Join(r.LogsDir, r.Timestamp()+reportSuffix)
}

// SummaryPath is the summary text path for this run.
func (r Run) SummaryPath() string {
	return strings.TrimSuffix(r.ReportPath(), ".csv") + "_summary.txt"
}

// AuditPath is the append-only audit log shared by all runs.
func (r Run) AuditPath() string { return filepath.Join(r.LogsDir, auditName) }

// EnsureLogsDir creates the logs directory if needed.
func (r Run) EnsureLogsDir() error {
	if err := os.MkdirAll(r.LogsDir, 0o755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	return nil
}
