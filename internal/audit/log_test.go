package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/pdfscrub/internal/types"
)

func TestCreateRunRecord(t *testing.T) {
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	recs := []types.FileRecord{
		{Path: "a.pdf", TotalPages: 3, CleanedPages: 2, DroppedPages: 1, Status: types.StatusSuccess, Checksum: "00000000deadbeef"},
		{Path: "b.pdf", Status: types.StatusFailure, Error: "not a PDF"},
	}
	rec := CreateRunRecord(RunInfo{Started: started, Source: "/in", Dest: "/out", Duration: 2 * time.Second, Halted: errors.New("move failed")}, recs)

	assert.Equal(t, "run_20240102T030405", rec.RunID)
	assert.Equal(t, 2, rec.FilesProcessed)
	assert.Equal(t, 1, rec.Succeeded)
	assert.Equal(t, 1, rec.Failed)
	assert.Equal(t, 3, rec.TotalPages)
	assert.Equal(t, 2, rec.CleanedPages)
	assert.Equal(t, 1, rec.DroppedPages)
	assert.Equal(t, "2s", rec.Duration)
	assert.Equal(t, "move failed", rec.Halted)
	require.Len(t, rec.Files, 2)
	assert.Equal(t, "00000000deadbeef", rec.Files[0].Checksum)
	assert.Equal(t, "not a PDF", rec.Files[1].Error)
}

func TestLogRun_LoadHistory_NewestFirst(t *testing.T) {
	p := filepath.Join(t.TempDir(), "audit.jsonl")
	log := NewAuditLog(p)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, log.LogRun(RunRecord{Timestamp: base.Add(time.Duration(i) * time.Hour), FilesProcessed: i}))
	}

	hist, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, 2, hist[0].FilesProcessed)
	assert.Equal(t, 0, hist[2].FilesProcessed)
	assert.NotEmpty(t, hist[0].RunID)

	st, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestLoadHistory_Missing(t *testing.T) {
	_, err := NewAuditLog(filepath.Join(t.TempDir(), "none.jsonl")).LoadHistory()
	assert.Error(t, err)
}

func TestLoadHistory_SkipsCorruptLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "audit.jsonl")
	require.NoError(t, os.WriteFile(p, []byte("{\"run_id\":\"r1\"}\n{\"run_id\": oops}\n\n{\"run_id\":\"r2\"}\n{\"run_id\":\"r3\""), 0o600))

	done := make(chan struct{})
	var (
		hist []RunRecord
		err  error
	)
	go func() {
		defer close(done)
		hist, err = NewAuditLog(p).LoadHistory()
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("LoadHistory did not return")
	}

	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "r2", hist[0].RunID)
	assert.Equal(t, "r1", hist[1].RunID)
}
