package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/studiowebux/monight/internal/document"
)

// RenderOp is one scheduled page raster. The session creates it on the
// event loop; Render runs anywhere; the result goes back to the loop and
// is committed through CompleteRender.
type RenderOp struct {
	session *Session
	doc     document.Document
	surf    *Surface

	ctx    context.Context
	cancel context.CancelFunc

	page int
	seq  uint64

	cssW int
	cssH int
	vp   document.Viewport
	buf  *image.RGBA
}

// Page returns the page number being rendered
func (op *RenderOp) Page() int { return op.page }

// Context returns the op's cancellation context
func (op *RenderOp) Context() context.Context { return op.ctx }

// Render performs the raster work. It is the only part of the pipeline
// that runs off the event loop.
func (op *RenderOp) Render() error {
	if err := op.ctx.Err(); err != nil {
		return err
	}

	page, err := op.doc.Page(op.page)
	if err != nil {
		return err
	}

	return page.RenderInto(op.ctx, op.buf, op.vp)
}

// startRender cancels whatever the surface has in flight and schedules a
// fresh op for the given page. At most one op per surface exists at any
// time.
func (s *Session) startRender(surf *Surface, page int) *RenderOp {
	if surf.inflight != nil {
		surf.inflight.cancel()
		surf.inflight = nil
	}

	cssW, cssH := s.pageCSSSize(page)
	adjW, adjH, backW, backH := s.backingSize(cssW, cssH)

	ctx, cancel := context.WithCancel(context.Background())
	s.seq++

	op := &RenderOp{
		session: s,
		doc:     s.doc,
		surf:    surf,
		ctx:     ctx,
		cancel:  cancel,
		page:    page,
		seq:     s.seq,
		cssW:    adjW,
		cssH:    adjH,
		vp: document.Viewport{
			Width:    backW,
			Height:   backH,
			Scale:    s.zoom * s.dprScale(),
			Rotation: s.rotation,
		},
		buf: image.NewRGBA(image.Rect(0, 0, backW, backH)),
	}

	surf.inflight = op
	s.state = StateRendering
	return op
}

// RenderPage schedules a raster of the given page on the single-mode
// surface. The page becomes current when the raster commits; a failed
// render leaves the current page untouched.
func (s *Session) RenderPage(page int) (*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if page < 1 || page > s.total {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, s.total)
	}

	if s.single == nil {
		s.single = &Surface{Visible: s.visible, Filter: s.filterExpr}
	}

	return s.startRender(s.single, page), nil
}

// CompleteRender commits a finished op. Stale ops (superseded, torn down
// or arriving after destroy) and cancelled ops never mutate the session;
// other render errors propagate to the caller.
func (s *Session) CompleteRender(op *RenderOp, err error) error {
	if op == nil {
		return nil
	}

	if s.state == StateDestroyed {
		return nil
	}

	if op.surf == nil || op.surf.inflight != op {
		// Superseded by a newer op or the surface was torn down.
		return nil
	}
	op.surf.inflight = nil

	if err != nil {
		s.recomputeState()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	op.surf.Buf = op.buf
	op.surf.Page = op.page
	op.surf.CSSWidth = op.cssW
	op.surf.CSSHeight = op.cssH
	op.surf.Filter = s.filterExpr
	op.surf.Visible = s.visible

	// Single-mode navigation commits here: the page the user sees as
	// current is always one whose raster actually landed.
	if op.surf == s.single {
		s.page = op.page
	}

	s.recomputeState()
	return nil
}

// recomputeState settles the lifecycle state after completions and
// teardowns
func (s *Session) recomputeState() {
	if s.state == StateDestroyed || s.state == StateEmpty {
		return
	}

	inflight := false
	committed := false

	if s.single != nil {
		inflight = inflight || s.single.inflight != nil
		committed = committed || s.single.Buf != nil
	}
	for _, sf := range s.pages {
		inflight = inflight || sf.inflight != nil
		committed = committed || sf.Buf != nil
	}

	switch {
	case inflight:
		s.state = StateRendering
	case committed:
		s.state = StateIdle
	default:
		s.state = StateLoaded
	}
}
