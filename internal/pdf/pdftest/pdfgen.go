package pdftest

import (
	"bytes"
	"fmt"
	"os"
)

// PDFPage describes one page of a generated PDF.
type PDFPage struct {
	// Content is the page's content stream, stored uncompressed.
	Content string
	Rotate  int
	// BrokenStream marks the content FlateDecode while storing bytes that
	// do not inflate.
	BrokenStream bool
}

// WritePDF writes a minimal real PDF to path. Pages inherit a 612x792 media
// box and a Helvetica font resource /F1 from the page tree root.
func WritePDF(path string, pages ...PDFPage) error {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> >>", kids, len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, pg := range pages {
		rotate := ""
		if pg.Rotate != 0 {
			rotate = fmt.Sprintf(" /Rotate %d", pg.Rotate)
		}
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R%s >>", 5+2*i, rotate))
		if pg.BrokenStream {
			junk := "this is not zlib data\n"
			obj(fmt.Sprintf("<< /Length %d /Filter /FlateDecode >>\nstream\n%sendstream", len(junk), junk))
			continue
		}
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(pg.Content), pg.Content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
