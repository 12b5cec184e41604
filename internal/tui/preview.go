package tui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/studiowebux/monight/internal/config"
	"github.com/studiowebux/monight/internal/viewer"
)

// renderPreview rasterizes the active tab's visible surfaces into
// half-block cells. Each text cell carries two vertical pixels, the top
// one as the foreground of '▀' and the bottom one as the background.
func (m *Model) renderPreview() string {
	w, hpx := m.previewSize()
	rows := hpx / 2

	sess := m.coordinator.ActiveSession()
	if sess == nil {
		return m.renderEmptyPreview(rows)
	}

	canvas := m.composeActive(sess, w, hpx)
	if canvas == nil {
		return m.renderEmptyPreview(rows)
	}

	if tab := m.coordinator.Active(); tab != nil {
		if f, ok := m.filters[tab.ID]; ok {
			f.Recolor(canvas)
		}
	}

	return halfBlocks(canvas)
}

// renderEmptyPreview fills the page area with blank rows so the status
// bar stays pinned to the bottom
func (m *Model) renderEmptyPreview(rows int) string {
	lines := make([]string, rows)
	if rows > 2 {
		lines[rows/2] = styleSubtle.Render(strings.Repeat(" ", max(0, m.width/2-10)) +
			"No document open")
	}
	return strings.Join(lines, "\n")
}

// composeActive draws the committed surfaces into one pixel canvas the
// size of the page area. Returns nil when nothing has rendered yet.
func (m *Model) composeActive(sess *viewer.Session, w, h int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	drew := false

	if sess.ViewMode() == viewer.ModeContinuous {
		top := sess.ScrollTop()
		for _, sf := range sess.PageSurfaces() {
			if sf.Buf == nil {
				continue
			}
			y := sess.PageOffset(sf.Page) - top
			if y+sf.CSSHeight < 0 || y > h {
				continue
			}
			x := (w - sf.CSSWidth) / 2
			blit(canvas, sf.Buf, x, y, sf.CSSWidth, sf.CSSHeight)
			drew = true
		}
	} else if sf := sess.Surface(); sf != nil && sf.Buf != nil {
		x := (w - sf.CSSWidth) / 2
		y := (h - sf.CSSHeight) / 2
		if sf.CSSHeight > h {
			y = 0
		}
		blit(canvas, sf.Buf, x, y, sf.CSSWidth, sf.CSSHeight)
		drew = true
	}

	if !drew {
		return nil
	}
	return canvas
}

// blit scales a backing raster down to its logical size and draws it at
// (x, y). The destination rectangle may overhang the canvas; the scaler
// clips it.
func blit(dst *image.RGBA, src *image.RGBA, x, y, w, h int) {
	dr := image.Rect(x, y, x+w, y+h)
	xdraw.BiLinear.Scale(dst, dr, src, src.Bounds(), xdraw.Over, nil)
}

// halfBlocks converts a pixel canvas into terminal rows. Per-cell colors
// are emitted as raw truecolor sequences; going through a style object
// for every cell is too slow for the raster path.
func halfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow(b.Dx() * b.Dy() * 10)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			tr, tg, tb, ta := img.At(x, y).RGBA()
			var br, bg, bb, ba uint32
			if y+1 < b.Max.Y {
				br, bg, bb, ba = img.At(x, y+1).RGBA()
			}

			if ta == 0 && ba == 0 {
				sb.WriteString("\x1b[0m ")
				continue
			}

			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				tr>>8, tg>>8, tb>>8, br>>8, bg>>8, bb>>8)
		}
		sb.WriteString("\x1b[0m")
	}

	return sb.String()
}

// doExportPage writes the current page's raster, with the tab's filter
// baked in, as a PNG under the export directory
func (m *Model) doExportPage() {
	tab := m.coordinator.Active()
	if tab == nil {
		m.queue(m.setError("No document open"))
		return
	}
	sess := tab.Session

	var src *image.RGBA
	if sess.ViewMode() == viewer.ModeContinuous {
		for _, sf := range sess.PageSurfaces() {
			if sf.Page == sess.CurrentPage() && sf.Buf != nil {
				src = sf.Buf
				break
			}
		}
	} else if sf := sess.Surface(); sf != nil {
		src = sf.Buf
	}
	if src == nil {
		m.queue(m.setError("Page not rendered yet"))
		return
	}

	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	if f, ok := m.filters[tab.ID]; ok {
		f.Recolor(out)
	}

	name := strings.TrimSuffix(tab.Title, filepath.Ext(tab.Title))
	path := filepath.Join(config.ExportDir, fmt.Sprintf("%s-page%d-%s.png",
		name, sess.CurrentPage(), time.Now().Format("20060102-150405")))

	if err := writePNG(path, out); err != nil {
		m.queue(m.setError(fmt.Sprintf("Export failed: %v", err)))
		return
	}
	m.queue(m.setStatus("Exported " + path))
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermissions); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
