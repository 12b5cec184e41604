package viewer

import (
	"fmt"
	"math"
)

// clampZoom forces a zoom factor into the supported range
func clampZoom(z float64) float64 {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}

// refresh re-renders after a zoom, rotation or pixel ratio change. Every
// held raster is stale, so continuous mode drops all surfaces and
// rebuilds the window anchored at the current page.
func (s *Session) refresh() []*RenderOp {
	if s.mode == ModeContinuous {
		s.layoutPages()
		s.scrollTop = s.clampScroll(s.PageOffset(s.page) - viewPadding)
		s.scrollDirty = false
		s.teardownPages()
		return s.applyVisibility()
	}

	op, err := s.RenderPage(s.targetPage())
	if err != nil || op == nil {
		return nil
	}
	return []*RenderOp{op}
}

// targetPage is the page navigation chains from: the in-flight
// single-mode render when one exists, otherwise the committed current
// page. Rapid presses advance from the pending target instead of
// replaying the last committed page.
func (s *Session) targetPage() int {
	if s.mode == ModeSingle && s.single != nil && s.single.inflight != nil {
		return s.single.inflight.page
	}
	return s.page
}

// SetZoom sets the zoom factor, clamped to [ZoomMin, ZoomMax], and
// re-renders. An unchanged zoom is a no-op.
func (s *Session) SetZoom(z float64) ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	z = clampZoom(z)
	if z == s.zoom {
		return nil, nil
	}

	s.zoom = z
	return s.refresh(), nil
}

// ZoomIn increases zoom by one step. At the maximum it is a no-op.
func (s *Session) ZoomIn() ([]*RenderOp, error) {
	return s.SetZoom(s.zoom + ZoomStep)
}

// ZoomOut decreases zoom by one step. At the minimum it is a no-op.
func (s *Session) ZoomOut() ([]*RenderOp, error) {
	return s.SetZoom(s.zoom - ZoomStep)
}

// ResetZoom returns to 100%
func (s *Session) ResetZoom() ([]*RenderOp, error) {
	return s.SetZoom(1.0)
}

// Rotate turns the view by a multiple of 90 degrees and re-renders. The
// resulting rotation is always one of 0, 90, 180, 270.
func (s *Session) Rotate(delta int) ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if delta%90 != 0 {
		return nil, fmt.Errorf("rotation must be a multiple of 90 degrees")
	}

	rotation := ((s.rotation+delta)%360 + 360) % 360
	if rotation == s.rotation {
		return nil, nil
	}

	s.rotation = rotation
	return s.refresh(), nil
}

// RotateClockwise turns the view 90 degrees right
func (s *Session) RotateClockwise() ([]*RenderOp, error) {
	return s.Rotate(90)
}

// RotateCounterclockwise turns the view 90 degrees left
func (s *Session) RotateCounterclockwise() ([]*RenderOp, error) {
	return s.Rotate(-90)
}

// InitialRender schedules the first raster after a load, honoring the
// view mode already selected on the session
func (s *Session) InitialRender() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	if s.mode == ModeContinuous {
		return s.ScrollToPage(s.page)
	}
	op, err := s.RenderPage(s.page)
	if err != nil {
		return nil, err
	}
	return []*RenderOp{op}, nil
}

// GoToPage navigates to a page. Out-of-range pages are rejected; the
// current page is a no-op.
func (s *Session) GoToPage(page int) ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if page < 1 || page > s.total {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, s.total)
	}
	if page == s.targetPage() {
		return nil, nil
	}

	if s.mode == ModeContinuous {
		return s.ScrollToPage(page)
	}

	op, err := s.RenderPage(page)
	if err != nil {
		return nil, err
	}
	return []*RenderOp{op}, nil
}

// NextPage advances one page. At the last page it is a no-op, never a
// wraparound.
func (s *Session) NextPage() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	target := s.targetPage()
	if target+1 > s.total {
		return nil, nil
	}
	return s.GoToPage(target + 1)
}

// PreviousPage goes back one page. At the first page it is a no-op.
func (s *Session) PreviousPage() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	target := s.targetPage()
	if target-1 < 1 {
		return nil, nil
	}
	return s.GoToPage(target - 1)
}

// FirstPage jumps to page 1
func (s *Session) FirstPage() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	if s.targetPage() == 1 {
		return nil, nil
	}
	return s.GoToPage(1)
}

// LastPage jumps to the final page
func (s *Session) LastPage() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	if s.targetPage() == s.total {
		return nil, nil
	}
	return s.GoToPage(s.total)
}

// naturalSize returns the intrinsic size of a page with the current
// rotation applied
func (s *Session) naturalSize(page int) (float64, float64) {
	size := s.sizes[page]
	if s.rotation == 90 || s.rotation == 270 {
		return size.h, size.w
	}
	return size.w, size.h
}

// FitToWidth picks the zoom that makes the current page span the container
// width minus the fixed padding
func (s *Session) FitToWidth() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if s.containerW <= 0 {
		return nil, fmt.Errorf("container size unknown")
	}

	w, _ := s.naturalSize(s.targetPage())
	avail := float64(s.containerW - 2*viewPadding)
	if avail < 1 {
		avail = 1
	}

	return s.SetZoom(avail / w)
}

// FitToPage picks the zoom that fits the whole current page inside the
// container minus the fixed padding
func (s *Session) FitToPage() ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if s.containerW <= 0 || s.containerH <= 0 {
		return nil, fmt.Errorf("container size unknown")
	}

	w, h := s.naturalSize(s.targetPage())
	availW := float64(s.containerW - 2*viewPadding)
	availH := float64(s.containerH - 2*viewPadding)
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}

	return s.SetZoom(math.Min(availW/w, availH/h))
}
