package viewer

import (
	"fmt"
	"math"
)

// maxDPRDenominator bounds the rational approximation of the device
// pixel ratio. Small denominators keep the CSS size adjustment below a
// handful of pixels.
const maxDPRDenominator = 8

// bestFraction approximates x by a fraction num/den with den bounded by
// maxDen, using continued fraction convergents plus the final
// semiconvergent when it lands closer
func bestFraction(x float64, maxDen int) (int, int) {
	if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 1, 1
	}

	h0, k0 := 0, 1
	h1, k1 := 1, 0
	rem := x

	for i := 0; i < 64; i++ {
		a := int(math.Floor(rem))
		h2 := a*h1 + h0
		k2 := a*k1 + k0

		if k2 > maxDen {
			// The convergent overshot the denominator bound. The best
			// in-range candidate on this branch is the semiconvergent
			// with the largest coefficient still within bounds.
			if k1 > 0 {
				if lim := (maxDen - k0) / k1; lim >= 1 {
					sh := lim*h1 + h0
					sk := lim*k1 + k0
					if math.Abs(x-float64(sh)/float64(sk)) < math.Abs(x-float64(h1)/float64(k1)) {
						h1, k1 = sh, sk
					}
				}
			}
			break
		}

		h0, k0 = h1, k1
		h1, k1 = h2, k2

		frac := rem - float64(a)
		if frac < 1e-9 {
			break
		}
		rem = 1 / frac
	}

	if k1 == 0 {
		return 1, 1
	}
	return h1, k1
}

// dprScale is the effective backing-store multiplier
func (s *Session) dprScale() float64 {
	return float64(s.dprNum) / float64(s.dprDen)
}

// backingSize converts a CSS size into an adjusted CSS size and a
// backing-store size. The CSS size is shrunk to a multiple of the DPR
// denominator so the backing size is exact, with no fractional device
// pixels along either edge.
func (s *Session) backingSize(cssW, cssH int) (int, int, int, int) {
	den := s.dprDen
	num := s.dprNum

	adjW := cssW - cssW%den
	if adjW < den {
		adjW = den
	}
	adjH := cssH - cssH%den
	if adjH < den {
		adjH = den
	}

	return adjW, adjH, adjW / den * num, adjH / den * num
}

// SetDevicePixelRatio records the display scale and re-renders if the
// rational approximation changed
func (s *Session) SetDevicePixelRatio(ratio float64) ([]*RenderOp, error) {
	if s.state == StateDestroyed {
		return nil, nil
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("invalid device pixel ratio %v", ratio)
	}

	num, den := bestFraction(ratio, maxDPRDenominator)
	s.dpr = ratio
	if num == s.dprNum && den == s.dprDen {
		return nil, nil
	}

	s.dprNum = num
	s.dprDen = den
	if s.doc == nil {
		return nil, nil
	}
	return s.refresh(), nil
}

// DevicePixelRatio returns the raw ratio last reported by the host
func (s *Session) DevicePixelRatio() float64 {
	return s.dpr
}

// DPRFraction returns the rational approximation in use
func (s *Session) DPRFraction() (int, int) {
	return s.dprNum, s.dprDen
}
