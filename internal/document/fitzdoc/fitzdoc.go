// Package fitzdoc adapts the MuPDF bindings to the document interfaces.
// It is the only package that links the PDF engine, so everything above it
// can run against in-memory documents.
package fitzdoc

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	"github.com/studiowebux/monight/internal/document"
)

// Decoder opens PDF data with MuPDF
type Decoder struct{}

// New creates a PDF decoder
func New() Decoder {
	return Decoder{}
}

// Decode implements document.Decoder
func (Decoder) Decode(data []byte) (document.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return &pdfDocument{doc: doc}, nil
}

type pdfDocument struct {
	doc  *fitz.Document
	once sync.Once
}

func (d *pdfDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *pdfDocument) Page(number int) (document.Page, error) {
	count := d.doc.NumPage()
	if number < 1 || number > count {
		return nil, fmt.Errorf("page %d out of range (1-%d)", number, count)
	}
	return &pdfPage{doc: d, index: number - 1}, nil
}

func (d *pdfDocument) Close() error {
	var err error
	d.once.Do(func() {
		err = d.doc.Close()
	})
	return err
}

type pdfPage struct {
	doc   *pdfDocument
	index int
}

// Size returns the page bounds in points
func (p *pdfPage) Size() (float64, float64) {
	bounds, err := p.doc.doc.Bound(p.index)
	if err != nil {
		return 612, 792
	}
	return float64(bounds.Dx()), float64(bounds.Dy())
}

// RenderInto rasterizes the page at the viewport scale, applies the view
// rotation, and fits the result into the backing buffer. MuPDF calls
// cannot be interrupted, so cancellation is checked between stages.
func (p *pdfPage) RenderInto(ctx context.Context, img *image.RGBA, vp document.Viewport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dpi := 72 * vp.Scale
	if dpi <= 0 {
		dpi = 72
	}

	src, err := p.doc.doc.ImageDPI(p.index, dpi)
	if err != nil {
		return fmt.Errorf("failed to render page %d: %w", p.index+1, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	raster := src
	if vp.Rotation != 0 {
		raster = rotateRGBA(raster, vp.Rotation)
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	xdraw.BiLinear.Scale(img, img.Bounds(), raster, raster.Bounds(), xdraw.Src, nil)
	return nil
}

// rotateRGBA returns a copy rotated clockwise by 90, 180 or 270 degrees.
// Any other angle returns the source unchanged.
func rotateRGBA(src *image.RGBA, degrees int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	switch degrees {
	case 90:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.SetRGBA(h-1-y, x, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
			}
		}
	case 180:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.SetRGBA(w-1-x, h-1-y, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
			}
		}
	case 270:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.SetRGBA(y, w-1-x, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
			}
		}
	default:
		return src
	}

	return dst
}
