// Package pdftest provides a file-backed fake of the pdf capability for tests,
// and a writer for small real PDFs.
//
// A fake document is a small text file:
//
//	%FAKEPDF
//	pages: 3
//	bad: 1,2
//
// Pages listed under "bad" fail redaction. Anything without the %FAKEPDF
// marker fails to open.
package pdftest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/redactyl/pdfscrub/internal/pdf"
)

const magic = "%FAKEPDF"

// ErrCorruptPage is returned when redacting a page marked bad.
var ErrCorruptPage = errors.New("corrupt content stream")

// Write creates a fake document at path with the given page count. Indices
// in bad fail redaction.
func Write(path string, pages int, bad ...int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\npages: %d\n", magic, pages)
	if len(bad) > 0 {
		ids := make([]string, len(bad))
		for i, n := range bad {
			ids[i] = strconv.Itoa(n)
		}
		fmt.Fprintf(&b, "bad: %s\n", strings.Join(ids, ","))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Opener opens fake documents and remembers every one it handed out.
type Opener struct {
	SaveErr error
	Opened  []*Document
}

func (o *Opener) Open(path string) (pdf.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(b, []byte(magic)) {
		return nil, errors.New("failed to open file: not a PDF document")
	}
	d := &Document{saveErr: o.SaveErr}
	bad := map[int]bool{}
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch key {
		case "pages":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("bad page count %q", val)
			}
			d.pages = make([]*Page, n)
		case "bad":
			for _, f := range strings.Split(val, ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(f)); err == nil {
					bad[n] = true
				}
			}
		}
	}
	for i := range d.pages {
		d.pages[i] = &Page{ID: i, Bad: bad[i]}
	}
	o.Opened = append(o.Opened, d)
	return d, nil
}

// Document is an in-memory fake document.
type Document struct {
	pages   []*Page
	saveErr error
	Closed  bool
	SavedTo string
}

func (d *Document) PageCount() int { return len(d.pages) }

func (d *Document) Page(index int) (pdf.Page, error) {
	if d.Closed {
		return nil, pdf.ErrClosed
	}
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range", index)
	}
	return d.pages[index], nil
}

func (d *Document) DeletePage(index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("page index %d out of range", index)
	}
	d.pages = append(d.pages[:index], d.pages[index+1:]...)
	return nil
}

// Save writes the surviving pages; the output lists their original IDs.
func (d *Document) Save(path string) error {
	if d.Closed {
		return pdf.ErrClosed
	}
	if d.saveErr != nil {
		return d.saveErr
	}
	ids := make([]string, len(d.pages))
	for i, p := range d.pages {
		ids[i] = strconv.Itoa(p.ID)
	}
	body := fmt.Sprintf("%s\npages: %d\nkept: %s\nredacted: true\n", magic, len(d.pages), strings.Join(ids, ","))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return err
	}
	d.SavedTo = path
	return nil
}

func (d *Document) Close() error {
	d.Closed = true
	return nil
}

// Page is a fake page of fixed A4 size.
type Page struct {
	ID       int
	Bad      bool
	Redacted []pdf.Rect
	pending  []pdf.Rect
}

func (p *Page) Bounds() (pdf.Rect, error) {
	return pdf.Rect{X1: 595, Y1: 842}, nil
}

func (p *Page) AddRedaction(r pdf.Rect, _ pdf.Color) error {
	p.pending = append(p.pending, r)
	return nil
}

func (p *Page) ApplyRedactions() error {
	if p.Bad {
		return ErrCorruptPage
	}
	p.Redacted = append(p.Redacted, p.pending...)
	p.pending = nil
	return nil
}
