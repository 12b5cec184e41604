package viewer

import (
	"errors"
	"math"
	"testing"

	"github.com/studiowebux/monight/internal/document"
)

func TestSessionZoomClamp(t *testing.T) {
	tests := []struct {
		name     string
		zoom     float64
		expected float64
	}{
		{"within range", 1.75, 1.75},
		{"above maximum", 10.0, 5.0},
		{"below minimum", 0.01, 0.25},
		{"exact maximum", 5.0, 5.0},
		{"exact minimum", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, 3)

			ops, err := s.SetZoom(tt.zoom)
			if err != nil {
				t.Fatalf("SetZoom failed: %v", err)
			}
			if s.Zoom() != tt.expected {
				t.Errorf("Expected zoom %v, got %v", tt.expected, s.Zoom())
			}
			if len(ops) != 1 {
				t.Errorf("Expected 1 render op, got %d", len(ops))
			}
		})
	}
}

func TestSessionZoomSteps(t *testing.T) {
	s, _ := newTestSession(t, 3)

	if _, err := s.ZoomIn(); err != nil {
		t.Fatalf("ZoomIn failed: %v", err)
	}
	if s.Zoom() != 1.25 {
		t.Errorf("Expected zoom 1.25, got %v", s.Zoom())
	}

	if _, err := s.ZoomOut(); err != nil {
		t.Fatalf("ZoomOut failed: %v", err)
	}
	if s.Zoom() != 1.0 {
		t.Errorf("Expected zoom 1.0, got %v", s.Zoom())
	}

	if _, err := s.SetZoom(3.0); err != nil {
		t.Fatalf("SetZoom failed: %v", err)
	}
	if _, err := s.ResetZoom(); err != nil {
		t.Fatalf("ResetZoom failed: %v", err)
	}
	if s.Zoom() != 1.0 {
		t.Errorf("Expected zoom 1.0 after reset, got %v", s.Zoom())
	}
}

func TestSessionZoomBoundaryNoOp(t *testing.T) {
	s, _ := newTestSession(t, 3)

	if _, err := s.SetZoom(5.0); err != nil {
		t.Fatalf("SetZoom failed: %v", err)
	}

	ops, err := s.ZoomIn()
	if err != nil {
		t.Errorf("Expected no error at the zoom ceiling, got %v", err)
	}
	if ops != nil {
		t.Errorf("Expected no ops at the zoom ceiling, got %d", len(ops))
	}
	if s.Zoom() != 5.0 {
		t.Errorf("Expected zoom to stay 5.0, got %v", s.Zoom())
	}

	if _, err := s.SetZoom(0.25); err != nil {
		t.Fatalf("SetZoom failed: %v", err)
	}
	if ops, _ := s.ZoomOut(); ops != nil {
		t.Errorf("Expected no ops at the zoom floor, got %d", len(ops))
	}
}

func TestSessionRotationCycle(t *testing.T) {
	s, _ := newTestSession(t, 3)

	expected := []int{90, 180, 270, 0}
	for i, want := range expected {
		if _, err := s.RotateClockwise(); err != nil {
			t.Fatalf("RotateClockwise %d failed: %v", i+1, err)
		}
		if s.Rotation() != want {
			t.Errorf("Expected rotation %d after %d turns, got %d", want, i+1, s.Rotation())
		}
	}

	if _, err := s.RotateCounterclockwise(); err != nil {
		t.Fatalf("RotateCounterclockwise failed: %v", err)
	}
	if s.Rotation() != 270 {
		t.Errorf("Expected rotation 270, got %d", s.Rotation())
	}

	if _, err := s.Rotate(45); err == nil {
		t.Error("Expected a 45 degree rotation to be rejected")
	}
}

func TestSessionRotationSwapsCSSSize(t *testing.T) {
	s, _ := newTestSession(t, 3)

	ops, err := s.RotateClockwise()
	if err != nil {
		t.Fatalf("RotateClockwise failed: %v", err)
	}
	complete(t, s, ops...)

	surf := s.Surface()
	if surf == nil || surf.Buf == nil {
		t.Fatal("Expected a committed surface")
	}
	if surf.CSSWidth != 800 || surf.CSSHeight != 600 {
		t.Errorf("Expected rotated css size 800x600, got %dx%d", surf.CSSWidth, surf.CSSHeight)
	}
}

func TestSessionNavigationClamp(t *testing.T) {
	s, _ := newTestSession(t, 3)

	// Forward to the end, committing each raster, then verify the
	// boundary is a no-op
	for i := 0; i < 2; i++ {
		ops, err := s.NextPage()
		if err != nil {
			t.Fatalf("NextPage failed: %v", err)
		}
		if len(ops) != 1 {
			t.Fatalf("Expected 1 op, got %d", len(ops))
		}
		complete(t, s, ops...)
	}
	if s.CurrentPage() != 3 {
		t.Fatalf("Expected page 3, got %d", s.CurrentPage())
	}

	ops, err := s.NextPage()
	if err != nil {
		t.Errorf("Expected no error at the last page, got %v", err)
	}
	if ops != nil {
		t.Errorf("Expected no ops at the last page, got %d", len(ops))
	}
	if s.CurrentPage() != 3 {
		t.Errorf("Expected page to stay 3, got %d", s.CurrentPage())
	}

	ops, err = s.FirstPage()
	if err != nil {
		t.Fatalf("FirstPage failed: %v", err)
	}
	complete(t, s, ops...)
	if s.CurrentPage() != 1 {
		t.Errorf("Expected page 1, got %d", s.CurrentPage())
	}

	if ops, err := s.PreviousPage(); err != nil || ops != nil {
		t.Errorf("Expected PreviousPage at page 1 to be a no-op, got ops=%v err=%v", ops, err)
	}

	ops, err = s.LastPage()
	if err != nil {
		t.Fatalf("LastPage failed: %v", err)
	}
	complete(t, s, ops...)
	if s.CurrentPage() != 3 {
		t.Errorf("Expected page 3, got %d", s.CurrentPage())
	}

	if _, err := s.GoToPage(0); err == nil {
		t.Error("Expected GoToPage(0) to be rejected")
	}
	if _, err := s.GoToPage(4); err == nil {
		t.Error("Expected GoToPage past the end to be rejected")
	}
}

func TestSessionPageCommitsOnCompletion(t *testing.T) {
	s, _ := newTestSession(t, 5)

	ops, err := s.GoToPage(3)
	if err != nil {
		t.Fatalf("GoToPage failed: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("Expected 1 op, got %d", len(ops))
	}
	if s.CurrentPage() != 1 {
		t.Errorf("Expected current page to stay 1 while the raster is in flight, got %d", s.CurrentPage())
	}

	rasterErr := errors.New("raster failed")
	if err := s.CompleteRender(ops[0], rasterErr); !errors.Is(err, rasterErr) {
		t.Errorf("Expected the raster error back, got %v", err)
	}
	if s.CurrentPage() != 1 {
		t.Errorf("Expected a failed render to leave the current page, got %d", s.CurrentPage())
	}

	ops, err = s.GoToPage(3)
	if err != nil {
		t.Fatalf("GoToPage retry failed: %v", err)
	}
	complete(t, s, ops...)
	if s.CurrentPage() != 3 {
		t.Errorf("Expected current page 3 after the commit, got %d", s.CurrentPage())
	}
}

func TestSessionNavigationChainsInFlight(t *testing.T) {
	s, _ := newTestSession(t, 5)

	first, err := s.GoToPage(2)
	if err != nil {
		t.Fatalf("GoToPage failed: %v", err)
	}

	// A second press before the first raster lands advances from the
	// pending target, not the committed page
	second, err := s.NextPage()
	if err != nil {
		t.Fatalf("NextPage failed: %v", err)
	}
	if len(second) != 1 || second[0].Page() != 3 {
		t.Fatalf("Expected the follow-up press to target page 3, got %v", second)
	}
	if first[0].Context().Err() == nil {
		t.Error("Expected the superseded op to be cancelled")
	}

	complete(t, s, second...)
	if s.CurrentPage() != 3 {
		t.Errorf("Expected current page 3 after the commit, got %d", s.CurrentPage())
	}
}

func TestSessionFitToWidth(t *testing.T) {
	s, _ := newTestSession(t, 3)

	ops, err := s.FitToWidth()
	if err != nil {
		t.Fatalf("FitToWidth failed: %v", err)
	}
	if len(ops) != 1 {
		t.Errorf("Expected 1 render op, got %d", len(ops))
	}

	// Container 800 wide minus 16 of padding per side over a 600 point page
	expected := 768.0 / 600.0
	if math.Abs(s.Zoom()-expected) > 1e-9 {
		t.Errorf("Expected zoom %v, got %v", expected, s.Zoom())
	}
}

func TestSessionFitToPage(t *testing.T) {
	s, _ := newTestSession(t, 3)

	if _, err := s.FitToPage(); err != nil {
		t.Fatalf("FitToPage failed: %v", err)
	}

	// Height is the constraint: 568 available over an 800 point page
	expected := 568.0 / 800.0
	if math.Abs(s.Zoom()-expected) > 1e-9 {
		t.Errorf("Expected zoom %v, got %v", expected, s.Zoom())
	}
}

func TestSessionFitRotated(t *testing.T) {
	s, _ := newTestSession(t, 3)

	if _, err := s.RotateClockwise(); err != nil {
		t.Fatalf("RotateClockwise failed: %v", err)
	}
	if _, err := s.FitToWidth(); err != nil {
		t.Fatalf("FitToWidth failed: %v", err)
	}

	// Rotation swaps the natural size, so the fit is against 800 points
	expected := 768.0 / 800.0
	if math.Abs(s.Zoom()-expected) > 1e-9 {
		t.Errorf("Expected zoom %v, got %v", expected, s.Zoom())
	}
}

func TestSessionFitWithoutContainer(t *testing.T) {
	dec := &document.StaticDecoder{Pages: 3}
	s := NewSession(dec, "abc")
	if err := s.Load([]byte("%PDF-1.7"), "doc.pdf", ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := s.FitToWidth(); err == nil {
		t.Error("Expected FitToWidth without a container size to fail")
	}
	if _, err := s.FitToPage(); err == nil {
		t.Error("Expected FitToPage without a container size to fail")
	}
}

func TestSessionOpsRequireDocument(t *testing.T) {
	dec := &document.StaticDecoder{Pages: 3}
	s := NewSession(dec, "abc")

	if _, err := s.NextPage(); err == nil {
		t.Error("Expected NextPage before load to fail")
	}
	if _, err := s.SetZoom(2.0); err == nil {
		t.Error("Expected SetZoom before load to fail")
	}
	if _, err := s.Rotate(90); err == nil {
		t.Error("Expected Rotate before load to fail")
	}
	if _, err := s.InitialRender(); err == nil {
		t.Error("Expected InitialRender before load to fail")
	}
}
