// Package scrub cleans a single PDF in place: it redacts the header band on
// every page, drops the pages that cannot be redacted and swaps the result in
// for the original file.
package scrub

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/redactyl/pdfscrub/internal/files"
	"github.com/redactyl/pdfscrub/internal/pdf"
	"github.com/redactyl/pdfscrub/internal/types"
)

// PageResult is the outcome of redacting one page. Err is a
// *PageRedactionError when Outcome is types.PageDropped.
type PageResult struct {
	Index   int
	Outcome types.PageOutcome
	Err     error
}

// Outcome is everything Clean learned about one file. Err is nil on success
// and otherwise one of *DocumentOpenError, *DocumentSaveError or
// *ReplacementError.
type Outcome struct {
	Record types.FileRecord
	Pages  []PageResult
	Err    error
}

// Redactor cleans PDFs through an Opener.
type Redactor struct {
	opener        pdf.Opener
	log           logrus.FieldLogger
	atomicReplace bool
}

// Option configures a Redactor.
type Option func(*Redactor)

// WithLogger sets the logger used for per-file and per-page events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Redactor) { r.log = l }
}

// WithAtomicReplace renames the cleaned file over the original instead of
// deleting the original first.
func WithAtomicReplace(on bool) Option {
	return func(r *Redactor) { r.atomicReplace = on }
}

// New returns a Redactor using opener.
func New(opener pdf.Opener, opts ...Option) *Redactor {
	r := &Redactor{opener: opener}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.log = l
	}
	return r
}

// TempPath returns the sibling path the cleaned document is saved to before
// it replaces path: the four-character extension becomes "_temp.pdf".
//
// The name can collide with a real input (x.pdf next to x_temp.pdf). Clean
// refuses such files with ErrTempExists rather than overwrite the other one.
func TempPath(path string) string {
	if strings.EqualFold(fileExt(path), ".pdf") {
		return path[:len(path)-4] + "_temp.pdf"
	}
	return path + "_temp.pdf"
}

func fileExt(p string) string {
	if len(p) < 4 {
		return ""
	}
	return p[len(p)-4:]
}

// Clean redacts the header band of every page in the file at path and
// replaces the file with the result.
func (r *Redactor) Clean(path string) Outcome {
	log := r.log.WithField("file", path)
	out := Outcome{Record: types.FileRecord{Path: path}}

	size, err := files.Size(path)
	if err != nil {
		return r.fail(log, out, &DocumentOpenError{Path: path, Err: err})
	}
	out.Record.SizeBefore = size

	tmp := TempPath(path)
	if files.Exists(tmp) {
		return r.fail(log, out, &DocumentSaveError{Path: tmp, Op: "save", Err: ErrTempExists})
	}

	doc, err := r.opener.Open(path)
	if err != nil {
		return r.fail(log, out, &DocumentOpenError{Path: path, Err: err})
	}
	out.Record.TotalPages = doc.PageCount()

	var failed []int
	for i := 0; i < out.Record.TotalPages; i++ {
		res := redactPage(doc, i)
		out.Pages = append(out.Pages, res)
		if res.Outcome == types.PageCleaned {
			out.Record.CleanedPages++
			continue
		}
		out.Record.DroppedPages++
		failed = append(failed, i)
		log.WithField("page", i).WithError(res.Err).Debug("dropping page")
	}

	// highest index first so the remaining indices stay valid
	for j := len(failed) - 1; j >= 0; j-- {
		if err := doc.DeletePage(failed[j]); err != nil {
			_ = doc.Close()
			return r.fail(log, out, &DocumentSaveError{Path: path, Op: "delete page", Err: err})
		}
	}

	if err := doc.Save(tmp); err != nil {
		_ = doc.Close()
		_ = os.Remove(tmp)
		return r.fail(log, out, &DocumentSaveError{Path: tmp, Op: "save", Err: err})
	}
	// the handle must be released before the original is touched
	if err := doc.Close(); err != nil {
		return r.fail(log, out, &DocumentSaveError{Path: path, Op: "close", Err: err})
	}
	if err := files.Replace(tmp, path, r.atomicReplace); err != nil {
		return r.fail(log, out, &ReplacementError{Path: path, Temp: tmp, Err: err})
	}

	after, err := files.Size(path)
	if err != nil {
		return r.fail(log, out, &ReplacementError{Path: path, Temp: tmp, Err: err})
	}
	out.Record.SizeAfter = after
	out.Record.Status = types.StatusSuccess
	if sum, err := checksum(path); err == nil {
		out.Record.Checksum = sum
	} else {
		log.WithError(err).Warn("checksum failed")
	}
	log.WithFields(logrus.Fields{
		"pages":       out.Record.TotalPages,
		"cleaned":     out.Record.CleanedPages,
		"dropped":     out.Record.DroppedPages,
		"size_before": out.Record.SizeBefore,
		"size_after":  out.Record.SizeAfter,
	}).Debug("cleaned")
	return out
}

func (r *Redactor) fail(log logrus.FieldLogger, out Outcome, err error) Outcome {
	out.Err = err
	out.Record.Status = types.StatusFailure
	out.Record.SizeAfter = 0
	out.Record.Error = cause(err).Error()
	log.WithError(err).Warn("clean failed")
	return out
}

// cause strips the package's own wrapper so the report carries the
// underlying message.
func cause(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	return err
}

func redactPage(doc pdf.Document, i int) (res PageResult) {
	res = PageResult{Index: i, Outcome: types.PageCleaned}
	drop := func(err error) PageResult {
		return PageResult{Index: i, Outcome: types.PageDropped, Err: &PageRedactionError{Page: i, Err: err}}
	}
	// PDF backends may panic on malformed page content
	defer func() {
		if v := recover(); v != nil {
			res = drop(fmt.Errorf("panic: %v", v))
		}
	}()

	page, err := doc.Page(i)
	if err != nil {
		return drop(err)
	}
	bounds, err := page.Bounds()
	if err != nil {
		return drop(err)
	}
	if err := page.AddRedaction(pdf.HeaderRect(bounds), pdf.White); err != nil {
		return drop(err)
	}
	if err := page.ApplyRedactions(); err != nil {
		return drop(err)
	}
	return res
}

func checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
