package pdf

// HeaderHeight is the height, in PDF units, of the band removed from the top
// of every page.
const HeaderHeight = 50.0

// Rect is an axis-aligned rectangle in page space with the origin at the
// top-left corner and y growing downwards.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Color is an RGB fill with components in [0,1].
type Color struct {
	R, G, B float64
}

// White is the fill used for header redactions.
var White = Color{R: 1, G: 1, B: 1}

// HeaderRect returns the header band for a page with the given bounds: the
// full page width and HeaderHeight units from the top.
func HeaderRect(bounds Rect) Rect {
	return Rect{X0: 0, Y0: 0, X1: bounds.Width(), Y1: HeaderHeight}
}

// Page is a single page of an open document.
type Page interface {
	// Bounds returns the visible page area with the origin at the top-left.
	Bounds() (Rect, error)
	// AddRedaction marks r to be covered with fill when the page's
	// redactions are applied.
	AddRedaction(r Rect, fill Color) error
	// ApplyRedactions commits every pending redaction on the page. Content
	// inside a committed region is removed from the saved page, not just
	// covered.
	ApplyRedactions() error
}

// Document is an open PDF. Page indices are zero-based.
type Document interface {
	PageCount() int
	Page(index int) (Page, error)
	// DeletePage removes the page at index; later pages shift down by one.
	DeletePage(index int) error
	Save(path string) error
	Close() error
}

// Opener opens documents from disk.
type Opener interface {
	Open(path string) (Document, error)
}
