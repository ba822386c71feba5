package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("text: empty font data")

// ErrInvalidSize is returned when a face size is not positive.
var ErrInvalidSize = errors.New("text: invalid face size")

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	font   *opentype.Font
	shaper *gtfont.Font
	name   string
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	s := &FontSource{font: f, shaper: face.Font}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

var defaultSource = sync.OnceValues(func() (*FontSource, error) {
	return NewFontSource(goregular.TTF)
})

// DefaultSource returns the Go Regular font, parsed once per process.
func DefaultSource() (*FontSource, error) {
	return defaultSource()
}

// Name returns the font family name, or "" when the font has none.
func (s *FontSource) Name() string {
	return s.name
}

// Face creates a face of the given size in pixels.
func (s *FontSource) Face(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, size)
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	return &Face{face: f, shaper: s.shaper, size: size}, nil
}
