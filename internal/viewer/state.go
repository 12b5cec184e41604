package viewer

import "image"

// State tracks a session through its lifecycle
type State int

const (
	// StateEmpty is a session with no document yet
	StateEmpty State = iota
	// StateLoaded has a decoded document but no raster yet
	StateLoaded
	// StateRendering has at least one render in flight
	StateRendering
	// StateIdle has a committed raster and nothing in flight
	StateIdle
	// StateDestroyed is terminal; every operation is a no-op
	StateDestroyed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateRendering:
		return "rendering"
	case StateIdle:
		return "idle"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Mode selects the page presentation
type Mode string

const (
	// ModeSingle shows one page on one surface
	ModeSingle Mode = "single"
	// ModeContinuous stacks per-page surfaces in a scroll column
	ModeContinuous Mode = "continuous"
)

// Surface is one drawable raster target. In single mode the session keeps
// exactly one; in continuous mode one per visible page.
type Surface struct {
	// Page is the page number the committed raster shows
	Page int

	// Buf is the committed raster, nil until the first completion
	Buf *image.RGBA

	// CSSWidth and CSSHeight are the logical draw size. The backing
	// buffer is larger by the device pixel fraction; the host draws it
	// scaled down to this size.
	CSSWidth  int
	CSSHeight int

	// Filter is the presentational recolor expression to apply when
	// drawing
	Filter string

	// Visible is cleared when the owning tab is in the background.
	// Hidden surfaces keep their raster.
	Visible bool

	inflight *RenderOp
}

// Rendering reports whether the surface has an uncommitted render
func (sf *Surface) Rendering() bool {
	return sf.inflight != nil
}
