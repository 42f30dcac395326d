package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/pdfscrub/internal/pdf/pdftest"
	"github.com/redactyl/pdfscrub/internal/types"
)

func TestClean_Smoke(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "in")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, pdftest.Write(filepath.Join(src, "a.pdf"), 2, 1))

	res, err := Clean(Config{
		Source:  src,
		Dest:    filepath.Join(base, "out"),
		LogsDir: filepath.Join(base, "logs"),
		Opener:  &pdftest.Opener{},
	})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Records[0].DroppedPages)
	assert.FileExists(t, res.ReportPath)
	assert.FileExists(t, res.SummaryPath)
	assert.Contains(t, res.Summary, "Cleaned Pages: 1 (50.00% cleaned)")
	assert.FileExists(t, filepath.Join(base, "out", "a.pdf"))
}

func TestRecordsJSON(t *testing.T) {
	in := []Record{
		{Path: "/x/a.pdf", TotalPages: 2, CleanedPages: 2, SizeBefore: 10, SizeAfter: 9, Status: types.StatusSuccess},
		{Path: "/x/b.pdf", Status: types.StatusFailure, Error: "not a PDF"},
	}
	var buf bytes.Buffer
	require.NoError(t, MarshalRecords(&buf, in))
	assert.Contains(t, buf.String(), `"status": "Failure"`)

	out, err := UnmarshalRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
