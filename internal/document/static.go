package document

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
)

// StaticDecoder produces in-memory documents with synthetic page content.
// Tests and the render pipeline's own checks use it in place of a real
// PDF engine.
type StaticDecoder struct {
	// Pages is the page count of every decoded document
	Pages int

	// PageWidth and PageHeight are the intrinsic page size in points.
	// Zero values fall back to US Letter (612x792).
	PageWidth  float64
	PageHeight float64

	// SizeFunc overrides the page size per page number when set
	SizeFunc func(page int) (w, h float64)

	// DecodeErr makes every Decode call fail when set
	DecodeErr error

	// LastDoc is the most recently decoded document
	LastDoc *StaticDocument
}

// RenderRecord captures one completed page raster
type RenderRecord struct {
	Page     int
	Viewport Viewport
}

// StaticDocument is the document produced by StaticDecoder
type StaticDocument struct {
	dec *StaticDecoder

	mu       sync.Mutex
	closed   bool
	rendered []RenderRecord
}

// Decode implements Decoder
func (d *StaticDecoder) Decode(data []byte) (Document, error) {
	if d.DecodeErr != nil {
		return nil, d.DecodeErr
	}
	doc := &StaticDocument{dec: d}
	d.LastDoc = doc
	return doc, nil
}

// PageCount implements Document
func (doc *StaticDocument) PageCount() int {
	return doc.dec.Pages
}

// Page implements Document
func (doc *StaticDocument) Page(number int) (Page, error) {
	if number < 1 || number > doc.dec.Pages {
		return nil, fmt.Errorf("page %d out of range (1-%d)", number, doc.dec.Pages)
	}
	return &staticPage{doc: doc, number: number}, nil
}

// Close implements Document
func (doc *StaticDocument) Close() error {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.closed = true
	return nil
}

// Closed reports whether Close has been called
func (doc *StaticDocument) Closed() bool {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return doc.closed
}

// Rendered returns every raster completed so far
func (doc *StaticDocument) Rendered() []RenderRecord {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	out := make([]RenderRecord, len(doc.rendered))
	copy(out, doc.rendered)
	return out
}

func (doc *StaticDocument) record(r RenderRecord) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.rendered = append(doc.rendered, r)
}

type staticPage struct {
	doc    *StaticDocument
	number int
}

// Size implements Page
func (p *staticPage) Size() (float64, float64) {
	if p.doc.dec.SizeFunc != nil {
		return p.doc.dec.SizeFunc(p.number)
	}

	w, h := p.doc.dec.PageWidth, p.doc.dec.PageHeight
	if w <= 0 {
		w = 612
	}
	if h <= 0 {
		h = 792
	}
	return w, h
}

// RenderInto fills the buffer with a flat color keyed to the page number,
// so tests can tell which page a surface holds
func (p *staticPage) RenderInto(ctx context.Context, img *image.RGBA, vp Viewport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fill := PageFillColor(p.number)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	p.doc.record(RenderRecord{Page: p.number, Viewport: vp})
	return nil
}

// PageFillColor returns the flat color StaticDocument pages render with
func PageFillColor(page int) color.RGBA {
	return color.RGBA{R: uint8(page % 256), G: 100, B: 200, A: 255}
}
