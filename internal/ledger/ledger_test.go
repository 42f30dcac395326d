package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/pdfscrub/internal/types"
)

func sampleRecords() []types.FileRecord {
	return []types.FileRecord{
		{Path: "/in/a.pdf", TotalPages: 3, CleanedPages: 3, SizeBefore: 1200, SizeAfter: 1100, Status: types.StatusSuccess},
		{Path: "/in/b.pdf", Status: types.StatusFailure, SizeBefore: 7, Error: "failed to open file: not a PDF document"},
		{Path: "/in/with, comma \"quoted\".pdf", TotalPages: 2, CleanedPages: 1, DroppedPages: 1, SizeBefore: 9, SizeAfter: 8, Status: types.StatusSuccess},
		{Path: "/in/multi\nline.pdf", Status: types.StatusFailure, Error: "line one\nline two, with comma"},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	l := New()
	for _, r := range sampleRecords() {
		l.Log(r)
	}
	p := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, l.Save(p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, l.Len(), got.Len())
	assert.Equal(t, sampleRecords(), got.Records())
}

func TestWrite_HeaderAndOrder(t *testing.T) {
	l := New()
	l.Log(types.FileRecord{Path: "first.pdf", Status: types.StatusSuccess})
	l.Log(types.FileRecord{Path: "second.pdf", Status: types.StatusFailure, Error: "boom"})

	var b strings.Builder
	require.NoError(t, l.Write(&b))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "File Path,Total Pages,Cleaned Pages,Dropped Pages,Size Before (bytes),Size After (bytes),Status,Error", lines[0])
	assert.Equal(t, "first.pdf,0,0,0,0,0,Success,", lines[1])
	assert.Equal(t, "second.pdf,0,0,0,0,0,Failure,boom", lines[2])
}

func TestRecords_ReturnsCopy(t *testing.T) {
	l := New()
	l.Log(types.FileRecord{Path: "a.pdf"})
	rs := l.Records()
	rs[0].Path = "changed"
	assert.Equal(t, "a.pdf", l.Records()[0].Path)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "missing header"},
		{"missing column", "File Path,Status\nx,Success\n", "missing column"},
		{"bad number", strings.Join(Header, ",") + "\na.pdf,x,0,0,0,0,Success,\n", "Total Pages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	l, err := Read(strings.NewReader(strings.Join(Header, ",") + "\n"))
	require.NoError(t, err)
	assert.Zero(t, l.Len())
}

func TestSave_Unwritable(t *testing.T) {
	err := New().Save(filepath.Join(t.TempDir(), "missing", "report.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
