package text

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face is a font at a specific size.
//
// Text is shaped left to right, so kerning and ligatures follow the font's
// layout tables; glyphs are then rasterized cluster by cluster.
//
// Face is safe for concurrent use; drawing is serialized because the
// underlying glyph rasterizer keeps state.
type Face struct {
	mu     sync.Mutex
	face   font.Face
	shaper *gtfont.Font
	size   float64
}

// Size returns the face size in pixels.
func (f *Face) Size() float64 {
	return f.size
}

// Metrics returns the ascent and descent of the face in pixels.
func (f *Face) Metrics() (ascent, descent int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.face.Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}

// Measure returns the bounds of text drawn with its top-left corner at the
// origin. Width is the horizontal advance, height the line height.
func (f *Face) Measure(text string) (width, height int) {
	if text == "" {
		return 0, 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, adv := shape(f.shaper, []rune(text), f.size)
	m := f.face.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Draw renders text onto dst with its top-left corner at (x, y).
// It returns the rectangle that may have been touched.
func (f *Face) Draw(dst draw.Image, x, y int, text string, col color.Color) image.Rectangle {
	if text == "" {
		return image.Rectangle{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	runes := []rune(text)
	clusters, _ := shape(f.shaper, runes, f.size)
	origin := fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + f.face.Metrics().Ascent}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f.face,
	}
	var touched image.Rectangle
	for _, c := range clusters {
		part := string(runes[c.start:c.end])
		d.Dot = fixed.Point26_6{X: origin.X + c.x, Y: origin.Y}
		b, _ := d.BoundString(part)
		touched = touched.Union(image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()))
		d.DrawString(part)
	}
	return touched.Intersect(dst.Bounds())
}

// Close releases the face.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Close()
}
