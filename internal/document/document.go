package document

import (
	"context"
	"image"
)

// Decoder opens a document from raw bytes. Implementations must treat the
// byte slice as read-only.
type Decoder interface {
	Decode(data []byte) (Document, error)
}

// Document is an open, page-addressable document. Page numbers are 1-based
// everywhere in the application.
type Document interface {
	// PageCount returns the number of pages
	PageCount() int

	// Page returns the page with the given 1-based number
	Page(number int) (Page, error)

	// Close releases decoder resources. Close is idempotent.
	Close() error
}

// Page is one page of an open document
type Page interface {
	// Size returns the intrinsic page size in points
	Size() (width, height float64)

	// RenderInto rasterizes the page into img, filling it completely.
	// The raster honors the viewport's scale and rotation. Cancellation
	// is checked between pipeline stages; a cancelled render returns
	// ctx.Err().
	RenderInto(ctx context.Context, img *image.RGBA, vp Viewport) error
}

// Viewport describes one raster target
type Viewport struct {
	// Width and Height are the backing buffer dimensions in pixels
	Width  int
	Height int

	// Scale is the effective raster scale: zoom multiplied by the
	// device pixel adjustment
	Scale float64

	// Rotation is the view rotation in degrees (0, 90, 180 or 270)
	Rotation int
}
