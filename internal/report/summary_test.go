package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/pdfscrub/internal/ledger"
	"github.com/redactyl/pdfscrub/internal/types"
)

func saveLedger(t *testing.T, recs ...types.FileRecord) string {
	t.Helper()
	l := ledger.New()
	for _, r := range recs {
		l.Log(r)
	}
	p := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, l.Save(p))
	return p
}

func TestWriteSummary_Scenario(t *testing.T) {
	csvPath := saveLedger(t,
		types.FileRecord{Path: "a.pdf", TotalPages: 3, CleanedPages: 3, SizeBefore: 10, SizeAfter: 9, Status: types.StatusSuccess},
		types.FileRecord{Path: "b.pdf", SizeBefore: 5, Status: types.StatusFailure, Error: "not a PDF"},
	)
	out := filepath.Join(filepath.Dir(csvPath), "summary.txt")

	d, err := WriteSummary(csvPath, out)
	require.NoError(t, err)
	assert.Equal(t, Digest{TotalFiles: 2, Succeeded: 1, Failed: 1, TotalPages: 3, CleanedPages: 3}, d)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "Total PDFs Processed: 2\n" +
		"Total Successful: 1 (50.00% successful)\n" +
		"Total Failed: 1\n" +
		"Total Pages: 3\n" +
		"Cleaned Pages: 3 (100.00% cleaned)\n" +
		"Dropped Pages: 0"
	assert.Equal(t, want, string(b))
}

func TestWriteSummary_Empty(t *testing.T) {
	csvPath := saveLedger(t)
	out := filepath.Join(filepath.Dir(csvPath), "summary.txt")

	d, err := WriteSummary(csvPath, out)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, d.TotalFiles)
	b, rerr := os.ReadFile(out)
	require.NoError(t, rerr)
	assert.Equal(t, noDataLine, string(b))
}

func TestDigest_NoPages(t *testing.T) {
	d := FromRecords([]types.FileRecord{{Path: "x.pdf", Status: types.StatusFailure}})
	_, err := d.PctCleaned()
	assert.ErrorIs(t, err, ErrNoPages)
	lines, err := d.Lines()
	require.NoError(t, err)
	assert.Equal(t, "Total Successful: 0 (0.00% successful)", lines[1])
	assert.Equal(t, "Cleaned Pages: 0 (n/a cleaned)", lines[4])
}

func TestDigest_TotalsMatchRows(t *testing.T) {
	recs := []types.FileRecord{
		{TotalPages: 4, CleanedPages: 3, DroppedPages: 1, Status: types.StatusSuccess},
		{TotalPages: 2, CleanedPages: 0, DroppedPages: 2, Status: types.StatusSuccess},
		{Status: types.StatusFailure},
	}
	csvPath := saveLedger(t, recs...)
	d, err := Summarize(csvPath)
	require.NoError(t, err)
	assert.Equal(t, d.TotalPages, d.CleanedPages+d.DroppedPages)
	assert.Equal(t, 2, d.Succeeded)
	assert.Equal(t, 1, d.Failed)
	pct, err := d.PctCleaned()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pct, 0.0001)
}

func TestSummarize_MissingFile(t *testing.T) {
	_, err := Summarize(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}
