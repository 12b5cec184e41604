package viewer

import "fmt"

// layoutPages recomputes the vertical layout of the continuous view from
// the cached page sizes. Offsets and heights are in CSS pixels.
func (s *Session) layoutPages() {
	if s.total < 1 {
		return
	}

	s.offsets = make([]int, s.total+1)
	s.heights = make([]int, s.total+1)

	y := viewPadding
	for p := 1; p <= s.total; p++ {
		_, h := s.pageCSSSize(p)
		s.offsets[p] = y
		s.heights[p] = h
		y += h
		if p < s.total {
			y += pageGap
		}
	}
	s.totalH = y + viewPadding
	s.scrollTop = s.clampScroll(s.scrollTop)
}

// clampScroll keeps a scroll position inside the laid-out document
func (s *Session) clampScroll(top int) int {
	max := s.totalH - s.containerH
	if max < 0 {
		max = 0
	}
	if top < 0 {
		return 0
	}
	if top > max {
		return max
	}
	return top
}

// visiblePages returns the first and last page intersecting the viewport.
// Returns (0, -1) when nothing is laid out.
func (s *Session) visiblePages() (int, int) {
	if s.total < 1 || len(s.offsets) <= s.total {
		return 0, -1
	}

	top := s.scrollTop
	bottom := s.scrollTop + s.containerH

	first, last := 0, 0
	for p := 1; p <= s.total; p++ {
		pageTop := s.offsets[p]
		pageBottom := pageTop + s.heights[p]
		if pageBottom >= top && pageTop <= bottom {
			if first == 0 {
				first = p
			}
			last = p
		}
	}

	if first == 0 {
		// Viewport is entirely in the top or bottom padding
		if top <= 0 {
			return 1, 1
		}
		return s.total, s.total
	}
	return first, last
}

// renderRange is the visible range extended by one page in each direction
func (s *Session) renderRange() (int, int) {
	first, last := s.visiblePages()
	if first < 1 {
		return first, last
	}
	first--
	last++
	if first < 1 {
		first = 1
	}
	if last > s.total {
		last = s.total
	}
	return first, last
}

// teardownPages cancels and drops every per-page surface
func (s *Session) teardownPages() {
	for p, surf := range s.pages {
		if surf.inflight != nil {
			surf.inflight.cancel()
			surf.inflight = nil
		}
		delete(s.pages, p)
	}
}

// applyVisibility reconciles the per-page surfaces with the render range:
// pages that left it are cancelled and torn down, pages that entered it
// get a surface and a render
func (s *Session) applyVisibility() []*RenderOp {
	if s.state == StateDestroyed || s.doc == nil || s.mode != ModeContinuous {
		return nil
	}

	if len(s.offsets) <= s.total {
		s.layoutPages()
	}

	first, last := s.renderRange()
	if first < 1 {
		return nil
	}

	for p, surf := range s.pages {
		if p >= first && p <= last {
			continue
		}
		if surf.inflight != nil {
			surf.inflight.cancel()
			surf.inflight = nil
		}
		delete(s.pages, p)
	}

	var ops []*RenderOp
	for p := first; p <= last; p++ {
		if _, ok := s.pages[p]; ok {
			continue
		}
		surf := &Surface{Page: p, Filter: s.filterExpr, Visible: s.visible}
		s.pages[p] = surf
		ops = append(ops, s.startRender(surf, p))
	}

	s.recomputeState()
	return ops
}

// OnScroll records a new scroll position. The visible set is not
// recomputed here; that happens on the next FrameTick, so a burst of
// scroll events costs at most one recompute per frame.
func (s *Session) OnScroll(top int) {
	if s.state == StateDestroyed || s.doc == nil || s.mode != ModeContinuous {
		return
	}
	s.scrollTop = s.clampScroll(top)
	s.scrollDirty = true
}

// FrameTick recomputes the visible set if the scroll position changed
// since the last tick. Returns the renders for pages that entered the
// render range.
func (s *Session) FrameTick() []*RenderOp {
	if s.state == StateDestroyed || s.doc == nil {
		return nil
	}
	if s.mode != ModeContinuous || !s.scrollDirty {
		return nil
	}

	s.scrollDirty = false
	if first, _ := s.visiblePages(); first >= 1 {
		s.page = first
	}
	return s.applyVisibility()
}

// ScrollToPage jumps the continuous view so the given page is at the top
// of the viewport and recomputes the visible set immediately
func (s *Session) ScrollToPage(page int) ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if s.mode != ModeContinuous {
		return nil, fmt.Errorf("not in continuous mode")
	}
	if page < 1 || page > s.total {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, s.total)
	}

	if len(s.offsets) <= s.total {
		s.layoutPages()
	}

	s.page = page
	s.scrollTop = s.clampScroll(s.offsets[page] - viewPadding)
	s.scrollDirty = false
	return s.applyVisibility(), nil
}

// SetViewMode switches between the single page and continuous views.
// Entering continuous lays out all pages and renders the visible window;
// leaving cancels every page render, drops the surfaces and renders the
// current page alone.
func (s *Session) SetViewMode(mode Mode) ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if mode != ModeSingle && mode != ModeContinuous {
		return nil, fmt.Errorf("unknown view mode %q", mode)
	}
	if mode == s.mode {
		return nil, nil
	}

	s.mode = mode
	if s.doc == nil {
		// Just a preference until a document is loaded
		return nil, nil
	}

	if mode == ModeContinuous {
		if s.single != nil {
			if s.single.inflight != nil {
				s.single.inflight.cancel()
				s.single.inflight = nil
			}
			s.single = nil
		}
		s.layoutPages()
		s.scrollTop = s.clampScroll(s.offsets[s.page] - viewPadding)
		s.scrollDirty = false
		return s.applyVisibility(), nil
	}

	s.teardownPages()
	s.scrollDirty = false
	op, err := s.RenderPage(s.page)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, nil
	}
	return []*RenderOp{op}, nil
}
