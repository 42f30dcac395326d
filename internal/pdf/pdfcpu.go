package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrClosed is returned when a closed document is used.
var ErrClosed = errors.New("pdf: document is closed")

// PDFCPU opens documents with pdfcpu.
//
// Redacting a page removes text shown inside the region from the content
// streams, paints an opaque overlay over it and removes annotations that
// overlap it. pdfcpu only writes
// objects reachable from the document root, so deleted pages are not carried
// into the saved file.
type PDFCPU struct{}

// NewPDFCPU returns the pdfcpu-backed Opener.
func NewPDFCPU() PDFCPU { return PDFCPU{} }

// Open reads and validates the document at path.
func (PDFCPU) Open(path string) (Document, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, err
	}
	d := &cpuDocument{ctx: ctx}
	for nr := 1; nr <= ctx.PageCount; nr++ {
		p := &cpuPage{doc: d, nr: nr}
		dict, ref, inh, err := ctx.PageDict(nr, false)
		switch {
		case err != nil:
			p.err = err
		case dict == nil || ref == nil:
			p.err = fmt.Errorf("page %d: missing page object", nr)
		default:
			p.dict, p.ref, p.inh = dict, ref, inh
		}
		d.pages = append(d.pages, p)
	}
	return d, nil
}

type cpuDocument struct {
	ctx     *model.Context
	pages   []*cpuPage
	deleted bool
}

func (d *cpuDocument) PageCount() int { return len(d.pages) }

func (d *cpuDocument) Page(index int) (Page, error) {
	if d.ctx == nil {
		return nil, ErrClosed
	}
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0,%d)", index, len(d.pages))
	}
	p := d.pages[index]
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

func (d *cpuDocument) DeletePage(index int) error {
	if d.ctx == nil {
		return ErrClosed
	}
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("page index %d out of range [0,%d)", index, len(d.pages))
	}
	d.pages = append(d.pages[:index], d.pages[index+1:]...)
	d.deleted = true
	return nil
}

func (d *cpuDocument) Save(path string) error {
	if d.ctx == nil {
		return ErrClosed
	}
	if d.deleted {
		if err := d.rebuildPageTree(); err != nil {
			return err
		}
	}
	return api.WriteContextFile(d.ctx, path)
}

func (d *cpuDocument) Close() error {
	d.ctx = nil
	d.pages = nil
	return nil
}

// rebuildPageTree replaces the page tree with a single level holding the
// remaining pages. Attributes the pages inherited from intermediate nodes are
// copied onto each page first.
func (d *cpuDocument) rebuildPageTree() error {
	rootRef := d.ctx.RootDict.IndirectRefEntry("Pages")
	if rootRef == nil {
		return errors.New("document catalog has no page tree")
	}
	root, err := d.ctx.DereferenceDict(*rootRef)
	if err != nil {
		return fmt.Errorf("page tree: %w", err)
	}
	kids := types.Array{}
	for _, p := range d.pages {
		if p.ref == nil {
			return fmt.Errorf("page %d: %w", p.nr, p.err)
		}
		p.materializeInherited()
		p.dict.Update("Parent", *rootRef)
		kids = append(kids, *p.ref)
	}
	root.Update("Kids", kids)
	root.Update("Count", types.Integer(len(kids)))
	d.ctx.PageCount = len(kids)
	return nil
}

type cpuPage struct {
	doc     *cpuDocument
	nr      int
	dict    types.Dict
	ref     *types.IndirectRef
	inh     *model.InheritedPageAttrs
	err     error
	pending []overlay
}

// overlay is a redaction in PDF user space (origin bottom-left).
type overlay struct {
	llx, lly, urx, ury float64
	fill               Color
}

// Bounds reports the page as displayed: width and height swap when the
// page is rotated by 90 or 270 degrees.
func (p *cpuPage) Bounds() (Rect, error) {
	box, err := p.box()
	if err != nil {
		return Rect{}, err
	}
	w, h := box.Width(), box.Height()
	if r := p.rotation(); r == 90 || r == 270 {
		w, h = h, w
	}
	return Rect{X0: 0, Y0: 0, X1: w, Y1: h}, nil
}

func (p *cpuPage) AddRedaction(r Rect, fill Color) error {
	if r.Empty() {
		return fmt.Errorf("page %d: empty redaction area", p.nr)
	}
	box, err := p.box()
	if err != nil {
		return err
	}
	rot := p.rotation()
	ax, ay := toUserSpace(box, rot, r.X0, r.Y0)
	bx, by := toUserSpace(box, rot, r.X1, r.Y1)
	p.pending = append(p.pending, overlay{
		llx:  min(ax, bx),
		lly:  min(ay, by),
		urx:  max(ax, bx),
		ury:  max(ay, by),
		fill: fill,
	})
	return nil
}

// toUserSpace maps a point given from the displayed top-left corner, x to the
// right and y down, into the page's default user space. rot is the page's
// clockwise display rotation.
func toUserSpace(box *types.Rectangle, rot int, x, y float64) (float64, float64) {
	x0, y0, x1, y1 := box.LL.X, box.LL.Y, box.UR.X, box.UR.Y
	switch rot {
	case 90:
		return x0 + y, y0 + x
	case 180:
		return x1 - x, y0 + y
	case 270:
		return x1 - y, y1 - x
	default:
		return x0 + x, y1 - y
	}
}

// rotation returns the page's /Rotate, own or inherited, in [0, 360).
func (p *cpuPage) rotation() int {
	r := 0
	if obj, found := p.dict.Find("Rotate"); found && obj != nil {
		if o, err := p.doc.ctx.Dereference(obj); err == nil {
			if n, ok := number(o); ok {
				r = int(n)
			}
		}
	} else if p.inh != nil {
		r = p.inh.Rotate
	}
	return ((r % 360) + 360) % 360
}

// ApplyRedactions removes text whose origin falls inside a pending region
// from the page content, wraps the content in a saved graphics state and
// appends one stream painting every pending overlay. Content that does not
// decode or tokenize fails the page.
func (p *cpuPage) ApplyRedactions() error {
	if len(p.pending) == 0 {
		return nil
	}
	ctx := p.doc.ctx
	if ctx == nil {
		return ErrClosed
	}
	body, content, err := p.content()
	if err != nil {
		return fmt.Errorf("page %d content: %w", p.nr, err)
	}
	scrubbed, n, err := scrubText(content, p.pending)
	if err != nil {
		return fmt.Errorf("page %d content: %w", p.nr, err)
	}
	if n > 0 {
		// the original streams still hold the text, so the page stops
		// referencing them
		ref, err := p.newStream(scrubbed)
		if err != nil {
			return err
		}
		body = types.Array{*ref}
	}

	var buf bytes.Buffer
	buf.WriteString("Q\n")
	for _, o := range p.pending {
		fmt.Fprintf(&buf, "q\n%.4f %.4f %.4f rg\n%.4f %.4f %.4f %.4f re\nf\nQ\n",
			o.fill.R, o.fill.G, o.fill.B, o.llx, o.lly, o.urx-o.llx, o.ury-o.lly)
	}
	open, err := p.newStream([]byte("q\n"))
	if err != nil {
		return err
	}
	paint, err := p.newStream(buf.Bytes())
	if err != nil {
		return err
	}

	contents := types.Array{*open}
	contents = append(contents, body...)
	contents = append(contents, *paint)
	p.dict.Update("Contents", contents)

	if err := p.dropCoveredAnnots(); err != nil {
		return fmt.Errorf("page %d annotations: %w", p.nr, err)
	}
	p.pending = nil
	return nil
}

func (p *cpuPage) newStream(b []byte) (*types.IndirectRef, error) {
	sd, err := p.doc.ctx.NewStreamDictForBuf(b)
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return p.doc.ctx.IndRefForNewObject(*sd)
}

// content returns the page's content stream entries and their decoded
// bytes, concatenated in order.
func (p *cpuPage) content() (types.Array, []byte, error) {
	obj, found := p.dict.Find("Contents")
	if !found || obj == nil {
		return nil, nil, nil
	}
	var entries types.Array
	if ir, ok := obj.(types.IndirectRef); ok {
		o, err := p.doc.ctx.Dereference(ir)
		if err != nil {
			return nil, nil, err
		}
		if arr, ok := o.(types.Array); ok {
			entries = arr
		} else {
			entries = types.Array{ir}
		}
	} else if arr, ok := obj.(types.Array); ok {
		entries = arr
	} else {
		return nil, nil, fmt.Errorf("unexpected Contents entry %T", obj)
	}
	var buf bytes.Buffer
	for _, e := range entries {
		o, err := p.doc.ctx.Dereference(e)
		if err != nil {
			return nil, nil, err
		}
		sd, ok := o.(types.StreamDict)
		if !ok {
			return nil, nil, fmt.Errorf("content entry is %T, not a stream", o)
		}
		if err := sd.Decode(); err != nil {
			return nil, nil, err
		}
		buf.Write(sd.Content)
		buf.WriteByte('\n')
	}
	return entries, buf.Bytes(), nil
}

func (p *cpuPage) dropCoveredAnnots() error {
	obj, found := p.dict.Find("Annots")
	if !found || obj == nil {
		return nil
	}
	o, err := p.doc.ctx.Dereference(obj)
	if err != nil {
		return err
	}
	annots, ok := o.(types.Array)
	if !ok {
		return nil
	}
	kept := types.Array{}
	for _, a := range annots {
		ad, err := p.doc.ctx.DereferenceDict(a)
		if err != nil || ad == nil {
			kept = append(kept, a)
			continue
		}
		r, ok := p.rectEntry(ad, "Rect")
		if ok && p.covered(r) {
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		p.dict.Delete("Annots")
		return nil
	}
	p.dict.Update("Annots", kept)
	return nil
}

func (p *cpuPage) covered(r *types.Rectangle) bool {
	for _, o := range p.pending {
		if r.LL.X < o.urx && r.UR.X > o.llx && r.LL.Y < o.ury && r.UR.Y > o.lly {
			return true
		}
	}
	return false
}

// box returns the crop box, falling back to the media box, from the page or
// its ancestors.
func (p *cpuPage) box() (*types.Rectangle, error) {
	if p.dict == nil {
		return nil, fmt.Errorf("page %d: %w", p.nr, p.err)
	}
	if r, ok := p.rectEntry(p.dict, "CropBox"); ok {
		return r, nil
	}
	if p.inh != nil && p.inh.CropBox != nil {
		return p.inh.CropBox, nil
	}
	if r, ok := p.rectEntry(p.dict, "MediaBox"); ok {
		return r, nil
	}
	if p.inh != nil && p.inh.MediaBox != nil {
		return p.inh.MediaBox, nil
	}
	return nil, fmt.Errorf("page %d: no media box", p.nr)
}

func (p *cpuPage) rectEntry(d types.Dict, key string) (*types.Rectangle, bool) {
	obj, found := d.Find(key)
	if !found || obj == nil {
		return nil, false
	}
	o, err := p.doc.ctx.Dereference(obj)
	if err != nil {
		return nil, false
	}
	arr, ok := o.(types.Array)
	if !ok || len(arr) != 4 {
		return nil, false
	}
	var v [4]float64
	for i, e := range arr {
		n, ok := number(e)
		if !ok {
			return nil, false
		}
		v[i] = n
	}
	return types.NewRectangle(min(v[0], v[2]), min(v[1], v[3]), max(v[0], v[2]), max(v[1], v[3])), true
}

func (p *cpuPage) materializeInherited() {
	if p.inh == nil {
		return
	}
	if _, ok := p.dict.Find("MediaBox"); !ok && p.inh.MediaBox != nil {
		p.dict.Update("MediaBox", p.inh.MediaBox.Array())
	}
	if _, ok := p.dict.Find("CropBox"); !ok && p.inh.CropBox != nil {
		p.dict.Update("CropBox", p.inh.CropBox.Array())
	}
	if _, ok := p.dict.Find("Resources"); !ok && p.inh.Resources != nil {
		p.dict.Update("Resources", p.inh.Resources)
	}
	if _, ok := p.dict.Find("Rotate"); !ok && p.inh.Rotate != 0 {
		p.dict.Update("Rotate", types.Integer(p.inh.Rotate))
	}
}

func number(o types.Object) (float64, bool) {
	switch n := o.(type) {
	case types.Float:
		return float64(n), true
	case types.Integer:
		return float64(n), true
	}
	return 0, false
}
