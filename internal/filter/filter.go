package filter

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Settings describes the software recoloring pipeline for one document.
// All fields are percentages except Hue (degrees). The zero value is the
// untouched "original" look.
type Settings struct {
	Brightness      float64 `json:"brightness"`      // 0..100, pre-invert dimming
	Grayscale       float64 `json:"grayscale"`       // 0..100
	Invert          float64 `json:"invert"`          // 0..100
	Sepia           float64 `json:"sepia"`           // 0..100
	Hue             float64 `json:"hue"`             // 0..360 degrees
	ExtraBrightness float64 `json:"extraBrightness"` // -100..200, post fine-tune
}

// Expression composes the filter chain in its fixed order.
// The first brightness term dims the page before inversion so a dark theme
// comes out warm instead of harshly inverted; the second is the user-facing
// fine-tune and is always emitted, even at its neutral value. Terms at zero
// are omitted but omission is equivalent to the identity term.
func (s Settings) Expression() string {
	var b strings.Builder

	fmt.Fprintf(&b, "brightness(%g)", (100-s.Brightness)/100)
	if s.Grayscale != 0 {
		fmt.Fprintf(&b, " grayscale(%g)", s.Grayscale/100)
	}
	if s.Invert != 0 {
		fmt.Fprintf(&b, " invert(%g)", s.Invert/100)
	}
	if s.Sepia != 0 {
		fmt.Fprintf(&b, " sepia(%g)", s.Sepia/100)
	}
	if s.Hue != 0 {
		fmt.Fprintf(&b, " hue-rotate(%gdeg)", s.Hue)
	}
	fmt.Fprintf(&b, " brightness(%g)", (s.ExtraBrightness+100)/100)

	return b.String()
}

// Clamp returns a copy with every field forced into its documented range.
// Persisted settings may carry out-of-range values from older versions or
// hand-edited files.
func (s Settings) Clamp() Settings {
	s.Brightness = clamp(s.Brightness, 0, 100)
	s.Grayscale = clamp(s.Grayscale, 0, 100)
	s.Invert = clamp(s.Invert, 0, 100)
	s.Sepia = clamp(s.Sepia, 0, 100)
	s.Hue = clamp(s.Hue, 0, 360)
	s.ExtraBrightness = clamp(s.ExtraBrightness, -100, 200)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Recolor applies the same pipeline to raster pixels, in place.
// The expression string is the contract between components; this is the
// pixel-level equivalent used by the terminal preview and page export,
// which have no style engine to hand the expression to.
func (s Settings) Recolor(img *image.RGBA) {
	if img == nil {
		return
	}

	b1 := (100 - s.Brightness) / 100
	gray := s.Grayscale / 100
	inv := s.Invert / 100
	sep := s.Sepia / 100
	hueCos := math.Cos(s.Hue * math.Pi / 180)
	hueSin := math.Sin(s.Hue * math.Pi / 180)
	b2 := (s.ExtraBrightness + 100) / 100

	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r := float64(pix[i]) / 255
		g := float64(pix[i+1]) / 255
		b := float64(pix[i+2]) / 255

		r, g, b = r*b1, g*b1, b*b1

		if gray != 0 {
			l := 0.2126*r + 0.7152*g + 0.0722*b
			r = r + (l-r)*gray
			g = g + (l-g)*gray
			b = b + (l-b)*gray
		}

		if inv != 0 {
			r = r*(1-inv) + (1-r)*inv
			g = g*(1-inv) + (1-g)*inv
			b = b*(1-inv) + (1-b)*inv
		}

		if sep != 0 {
			sr := 0.393*r + 0.769*g + 0.189*b
			sg := 0.349*r + 0.686*g + 0.168*b
			sb := 0.272*r + 0.534*g + 0.131*b
			r = r + (sr-r)*sep
			g = g + (sg-g)*sep
			b = b + (sb-b)*sep
		}

		if s.Hue != 0 {
			r, g, b = rotateHue(r, g, b, hueCos, hueSin)
		}

		r, g, b = r*b2, g*b2, b*b2

		pix[i] = quantize(r)
		pix[i+1] = quantize(g)
		pix[i+2] = quantize(b)
	}
}

// rotateHue applies the standard hue-rotation color matrix
func rotateHue(r, g, b, cos, sin float64) (float64, float64, float64) {
	nr := (0.213+cos*0.787-sin*0.213)*r + (0.715-cos*0.715-sin*0.715)*g + (0.072-cos*0.072+sin*0.928)*b
	ng := (0.213-cos*0.213+sin*0.143)*r + (0.715+cos*0.285+sin*0.140)*g + (0.072-cos*0.072-sin*0.283)*b
	nb := (0.213-cos*0.213-sin*0.787)*r + (0.715-cos*0.715+sin*0.715)*g + (0.072+cos*0.928+sin*0.072)*b
	return nr, ng, nb
}

func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
