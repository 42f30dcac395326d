package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRun_Paths(t *testing.T) {
	logs := t.TempDir()
	started := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	r, err := NewRun("in", "out", logs, started)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(r.Source))
	assert.True(t, filepath.IsAbs(r.Dest))
	assert.Equal(t, "2024-03-09_14-05-07", r.Timestamp())
	assert.Equal(t, filepath.Join(logs, "2024-03-09_14-05-07_log-pdf-processing-report.csv"), r.ReportPath())
	assert.Equal(t, filepath.Join(logs, "2024-03-09_14-05-07_log-pdf-processing-report_summary.txt"), r.SummaryPath())
	assert.Equal(t, filepath.Join(logs, "pdfscrub_audit.jsonl"), r.AuditPath())
}

func TestNewRun_DefaultLogsDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	r, err := NewRun("in", "out", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "h2ogpt_rg", "logs"), r.LogsDir)

	require.NoError(t, r.EnsureLogsDir())
	st, err := os.Stat(r.LogsDir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestEnsureLogsDir_Blocked(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	r := Run{LogsDir: filepath.Join(blocker, "logs")}
	assert.Error(t, r.EnsureLogsDir())
}
