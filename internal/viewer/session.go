package viewer

import (
	"fmt"
	"log"
	"math"

	"github.com/studiowebux/monight/internal/document"
)

// Zoom limits and step, shared with the host's zoom controls
const (
	ZoomMin  = 0.25
	ZoomMax  = 5.0
	ZoomStep = 0.25
)

// viewPadding is the fixed margin subtracted from the container on each
// side when fitting a page
const viewPadding = 16

// pageGap is the vertical space between pages in continuous mode
const pageGap = 16

type pageSize struct {
	w, h float64
}

// Session renders one document. All methods must be called from the host
// event loop; only RenderOp.Render runs elsewhere.
type Session struct {
	id   string
	dec  document.Decoder
	doc  document.Document
	name string
	path string

	state    State
	mode     Mode
	page     int
	total    int
	zoom     float64
	rotation int

	containerW int
	containerH int

	dpr    float64
	dprNum int
	dprDen int

	filterExpr string
	visible    bool

	// single is the one surface of single mode
	single *Surface

	// pages holds the per-page surfaces of continuous mode
	pages map[int]*Surface

	// sizes caches intrinsic page sizes, 1-based
	sizes []pageSize

	// offsets[i] is the scroll offset of page i's top, 1-based;
	// heights[i] its css height at the current zoom and rotation
	offsets []int
	heights []int
	totalH  int

	scrollTop   int
	scrollDirty bool

	seq    uint64
	report func(format string, v ...any)
}

// NewSession creates an empty session for the given decoder
func NewSession(dec document.Decoder, id string) *Session {
	return &Session{
		id:      id,
		dec:     dec,
		state:   StateEmpty,
		mode:    ModeSingle,
		zoom:    1.0,
		dpr:     1.0,
		dprNum:  1,
		dprDen:  1,
		visible: true,
		pages:   make(map[int]*Surface),
		report:  log.Printf,
	}
}

// SetReporter replaces the log function used for diagnostics
func (s *Session) SetReporter(fn func(format string, v ...any)) {
	if fn != nil {
		s.report = fn
	}
}

// Load decodes the document bytes. On failure the session stays empty and
// the error carries the user-facing message.
func (s *Session) Load(data []byte, name, path string) error {
	if s.state == StateDestroyed {
		return fmt.Errorf("session destroyed")
	}
	if s.state != StateEmpty {
		return fmt.Errorf("document already loaded")
	}

	doc, err := s.dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	total := doc.PageCount()
	if total < 1 {
		doc.Close()
		return fmt.Errorf("failed to load %s: document has no pages", name)
	}

	sizes := make([]pageSize, total+1)
	for i := 1; i <= total; i++ {
		page, err := doc.Page(i)
		if err != nil {
			doc.Close()
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
		w, h := page.Size()
		sizes[i] = pageSize{w: w, h: h}
	}

	s.doc = doc
	s.name = name
	s.path = path
	s.total = total
	s.page = 1
	s.sizes = sizes
	s.state = StateLoaded
	return nil
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Name returns the display name of the loaded document
func (s *Session) Name() string { return s.name }

// Path returns the file path of the loaded document
func (s *Session) Path() string { return s.path }

// State returns the lifecycle state
func (s *Session) State() State { return s.state }

// ViewMode returns the active presentation mode
func (s *Session) ViewMode() Mode { return s.mode }

// CurrentPage returns the 1-based current page
func (s *Session) CurrentPage() int { return s.page }

// PageCount returns the total page count, 0 before load
func (s *Session) PageCount() int { return s.total }

// Zoom returns the current zoom factor
func (s *Session) Zoom() float64 { return s.zoom }

// Rotation returns the view rotation in degrees
func (s *Session) Rotation() int { return s.rotation }

// Filter returns the active presentational filter expression
func (s *Session) Filter() string { return s.filterExpr }

// ScrollTop returns the continuous-mode scroll offset
func (s *Session) ScrollTop() int { return s.scrollTop }

// TotalHeight returns the continuous-mode column height
func (s *Session) TotalHeight() int { return s.totalH }

// Surface returns the single-mode surface, nil before the first render
// request or in continuous mode
func (s *Session) Surface() *Surface {
	return s.single
}

// PageSurfaces returns the continuous-mode surfaces in page order
func (s *Session) PageSurfaces() []*Surface {
	if len(s.pages) == 0 {
		return nil
	}

	out := make([]*Surface, 0, len(s.pages))
	for i := 1; i <= s.total; i++ {
		if sf, ok := s.pages[i]; ok {
			out = append(out, sf)
		}
	}
	return out
}

// PageOffset returns the scroll offset of a page top in continuous mode
func (s *Session) PageOffset(page int) int {
	if page < 1 || page >= len(s.offsets) {
		return 0
	}
	return s.offsets[page]
}

// SetVisible shows or hides every surface without touching rasters.
// Background tabs hide; activation shows.
func (s *Session) SetVisible(visible bool) {
	if s.state == StateDestroyed {
		return
	}

	s.visible = visible
	if s.single != nil {
		s.single.Visible = visible
	}
	for _, sf := range s.pages {
		sf.Visible = visible
	}
}

// Visible reports whether the session's surfaces are shown
func (s *Session) Visible() bool { return s.visible }

// ApplyFilter sets the presentational filter expression on the session and
// every surface. No re-render happens; the raster stays untouched and the
// host applies the recolor when drawing.
func (s *Session) ApplyFilter(expr string) {
	if s.state == StateDestroyed {
		return
	}

	s.filterExpr = expr
	if s.single != nil {
		s.single.Filter = expr
	}
	for _, sf := range s.pages {
		sf.Filter = expr
	}
}

// SetContainerSize updates the viewport size in css pixels. Continuous
// mode recomputes the visible set; the caller starts the returned ops.
func (s *Session) SetContainerSize(w, h int) []*RenderOp {
	if s.state == StateDestroyed {
		return nil
	}

	if w == s.containerW && h == s.containerH {
		return nil
	}
	s.containerW = w
	s.containerH = h

	if s.mode == ModeContinuous && s.state != StateEmpty {
		s.scrollTop = s.clampScroll(s.scrollTop)
		return s.applyVisibility()
	}
	return nil
}

// ContainerSize returns the viewport size in css pixels
func (s *Session) ContainerSize() (int, int) {
	return s.containerW, s.containerH
}

// Destroy cancels every in-flight render, releases the document and
// detaches all surfaces. Destroy is idempotent and safe to call in any
// state; a destroyed session ignores all further calls.
func (s *Session) Destroy() {
	if s.state == StateDestroyed {
		return
	}

	if s.single != nil && s.single.inflight != nil {
		s.single.inflight.cancel()
		s.single.inflight = nil
	}
	for _, sf := range s.pages {
		if sf.inflight != nil {
			sf.inflight.cancel()
			sf.inflight = nil
		}
	}

	s.single = nil
	s.pages = make(map[int]*Surface)

	if s.doc != nil {
		if err := s.doc.Close(); err != nil {
			s.report("viewer: close %s: %v", s.name, err)
		}
		s.doc = nil
	}

	s.state = StateDestroyed
}

// pageCSSSize returns the logical draw size of a page at the current zoom
// and rotation
func (s *Session) pageCSSSize(page int) (int, int) {
	size := s.sizes[page]
	w, h := size.w, size.h
	if s.rotation == 90 || s.rotation == 270 {
		w, h = h, w
	}

	cssW := int(math.Round(w * s.zoom))
	cssH := int(math.Round(h * s.zoom))
	if cssW < 1 {
		cssW = 1
	}
	if cssH < 1 {
		cssH = 1
	}
	return cssW, cssH
}
