package scrub

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/pdfscrub/internal/pdf"
	"github.com/redactyl/pdfscrub/internal/pdf/pdftest"
	"github.com/redactyl/pdfscrub/internal/types"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		pages       int
		bad         []int
		wantCleaned int
		wantDropped int
		wantKept    string
	}{
		{name: "all pages redactable", pages: 3, wantCleaned: 3, wantKept: "kept: 0,1,2"},
		{name: "some pages corrupt", pages: 4, bad: []int{1, 3}, wantCleaned: 2, wantDropped: 2, wantKept: "kept: 0,2"},
		{name: "every page corrupt", pages: 2, bad: []int{0, 1}, wantDropped: 2, wantKept: "pages: 0"},
		{name: "zero pages", pages: 0, wantKept: "pages: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "doc.pdf")
			require.NoError(t, pdftest.Write(p, tt.pages, tt.bad...))
			before, _ := os.Stat(p)

			opener := &pdftest.Opener{}
			out := New(opener).Clean(p)

			require.NoError(t, out.Err)
			rec := out.Record
			assert.Equal(t, types.StatusSuccess, rec.Status)
			assert.Equal(t, tt.pages, rec.TotalPages)
			assert.Equal(t, tt.wantCleaned, rec.CleanedPages)
			assert.Equal(t, tt.wantDropped, rec.DroppedPages)
			assert.Equal(t, rec.TotalPages, rec.CleanedPages+rec.DroppedPages)
			assert.Equal(t, before.Size(), rec.SizeBefore)
			assert.Empty(t, rec.Error)
			assert.Len(t, rec.Checksum, 16)

			b, err := os.ReadFile(p)
			require.NoError(t, err)
			assert.Contains(t, string(b), tt.wantKept)
			assert.Equal(t, int64(len(b)), rec.SizeAfter)
			assert.NoFileExists(t, TempPath(p))

			require.Len(t, opener.Opened, 1)
			assert.True(t, opener.Opened[0].Closed, "document must be closed")
			assert.Len(t, out.Pages, tt.pages)
			for _, pr := range out.Pages {
				if pr.Outcome == types.PageDropped {
					var pe *PageRedactionError
					require.ErrorAs(t, pr.Err, &pe)
					assert.Equal(t, pr.Index, pe.Page)
					assert.ErrorIs(t, pr.Err, pdftest.ErrCorruptPage)
				}
			}
		})
	}
}

func TestClean_PDFCPU(t *testing.T) {
	const header = "BT /F1 12 Tf 72 770 Td (HEADERSECRET) Tj ET\n"
	const body = "BT /F1 12 Tf 72 400 Td (BODYTEXT) Tj ET\n"
	broken := pdftest.PDFPage{BrokenStream: true}

	tests := []struct {
		name        string
		pages       []pdftest.PDFPage
		wantCleaned int
		wantDropped int
	}{
		{
			name:        "broken page among good ones",
			pages:       []pdftest.PDFPage{{Content: header + body}, broken, {Content: header}},
			wantCleaned: 2,
			wantDropped: 1,
		},
		{
			name:        "every page broken",
			pages:       []pdftest.PDFPage{broken, broken},
			wantDropped: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "doc.pdf")
			require.NoError(t, pdftest.WritePDF(p, tt.pages...))

			out := New(pdf.NewPDFCPU()).Clean(p)

			require.NoError(t, out.Err)
			rec := out.Record
			assert.Equal(t, types.StatusSuccess, rec.Status)
			assert.Equal(t, len(tt.pages), rec.TotalPages)
			assert.Equal(t, tt.wantCleaned, rec.CleanedPages)
			assert.Equal(t, tt.wantDropped, rec.DroppedPages)
			assert.NoFileExists(t, TempPath(p))

			raw, err := os.ReadFile(p)
			require.NoError(t, err)
			assert.NotContains(t, string(raw), "HEADERSECRET")
			assert.Equal(t, int64(len(raw)), rec.SizeAfter)

			if tt.wantCleaned == 0 {
				return
			}
			doc, err := pdf.NewPDFCPU().Open(p)
			require.NoError(t, err)
			defer doc.Close()
			assert.Equal(t, tt.wantCleaned, doc.PageCount())
		})
	}
}

func TestClean_OpenFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "b.pdf")
	require.NoError(t, os.WriteFile(p, []byte("garbage"), 0o644))

	out := New(&pdftest.Opener{}).Clean(p)

	var oe *DocumentOpenError
	require.ErrorAs(t, out.Err, &oe)
	rec := out.Record
	assert.Equal(t, types.StatusFailure, rec.Status)
	assert.Zero(t, rec.TotalPages)
	assert.Zero(t, rec.SizeAfter)
	assert.Equal(t, int64(7), rec.SizeBefore)
	assert.Contains(t, rec.Error, "not a PDF")
	b, _ := os.ReadFile(p)
	assert.Equal(t, "garbage", string(b), "original must be untouched")
}

func TestClean_SaveFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.pdf")
	require.NoError(t, pdftest.Write(p, 2, 1))
	opener := &pdftest.Opener{SaveErr: errors.New("disk full")}

	out := New(opener).Clean(p)

	var se *DocumentSaveError
	require.ErrorAs(t, out.Err, &se)
	assert.Equal(t, "save", se.Op)
	rec := out.Record
	assert.Equal(t, types.StatusFailure, rec.Status)
	assert.Equal(t, "disk full", rec.Error)
	assert.Equal(t, 2, rec.TotalPages)
	assert.Equal(t, 1, rec.CleanedPages)
	assert.Equal(t, 1, rec.DroppedPages)
	assert.Zero(t, rec.SizeAfter)
	assert.True(t, opener.Opened[0].Closed)
	assert.NoFileExists(t, TempPath(p))
}

func TestClean_MissingFile(t *testing.T) {
	out := New(&pdftest.Opener{}).Clean(filepath.Join(t.TempDir(), "gone.pdf"))
	var oe *DocumentOpenError
	require.ErrorAs(t, out.Err, &oe)
	assert.Equal(t, types.StatusFailure, out.Record.Status)
}

func TestClean_TempPathTaken(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "x.pdf")
	other := filepath.Join(dir, "x_temp.pdf")
	require.NoError(t, pdftest.Write(p, 2))
	require.NoError(t, os.WriteFile(other, []byte("another input"), 0o644))
	opener := &pdftest.Opener{}

	out := New(opener).Clean(p)

	var se *DocumentSaveError
	require.ErrorAs(t, out.Err, &se)
	assert.ErrorIs(t, out.Err, ErrTempExists)
	assert.Equal(t, types.StatusFailure, out.Record.Status)
	assert.Zero(t, out.Record.SizeAfter)
	assert.Empty(t, opener.Opened, "the document is not opened")
	b, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "another input", string(b))
	b, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "redacted: true")
}

func TestClean_AtomicReplace(t *testing.T) {
	p := filepath.Join(t.TempDir(), "d.pdf")
	require.NoError(t, pdftest.Write(p, 1))
	out := New(&pdftest.Opener{}, WithAtomicReplace(true)).Clean(p)
	require.NoError(t, out.Err)
	b, _ := os.ReadFile(p)
	assert.Contains(t, string(b), "redacted: true")
}

func TestClean_LogsFailures(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p := filepath.Join(t.TempDir(), "e.pdf")
	require.NoError(t, pdftest.Write(p, 2, 0))

	New(&pdftest.Opener{}, WithLogger(logger)).Clean(p)

	var dropped int
	for _, e := range hook.AllEntries() {
		if e.Message == "dropping page" {
			dropped++
			assert.Equal(t, 0, e.Data["page"])
			assert.Equal(t, p, e.Data["file"])
		}
	}
	assert.Equal(t, 1, dropped)
}

func TestTempPath(t *testing.T) {
	cases := map[string]string{
		"/x/report.pdf":    "/x/report_temp.pdf",
		"/x/REPORT.PDF":    "/x/REPORT_temp.pdf",
		"/x/a.pdf.d/b.pdf": "/x/a.pdf.d/b_temp.pdf",
		"/x/no-extension":  "/x/no-extension_temp.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, TempPath(in), in)
		assert.True(t, strings.HasSuffix(TempPath(in), "_temp.pdf"))
	}
}

type panicPage struct{ pdftest.Page }

func (*panicPage) ApplyRedactions() error { panic("bad xref") }

type panicDoc struct{ pdftest.Document }

func (*panicDoc) PageCount() int { return 1 }

func (*panicDoc) Page(int) (pdf.Page, error) { return &panicPage{}, nil }

func TestRedactPage_RecoversPanic(t *testing.T) {
	res := redactPage(&panicDoc{}, 0)
	assert.Equal(t, types.PageDropped, res.Outcome)
	var pe *PageRedactionError
	require.ErrorAs(t, res.Err, &pe)
	assert.Contains(t, res.Err.Error(), "bad xref")
}
