// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggdraw

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/ggdraw/render"
	"github.com/gogpu/ggdraw/stroke"
	"github.com/gogpu/ggdraw/surface"
	"github.com/gogpu/ggdraw/text"
	"github.com/gogpu/gputypes"
)

// Errors.
var (
	// ErrClosed is returned by a closed Source.
	ErrClosed = errors.New("ggdraw: source closed")

	// ErrNoPage is returned when the current page could not be selected.
	ErrNoPage = errors.New("ggdraw: no current page")

	// ErrShortPixels is returned when an image buffer is smaller than its
	// dimensions require.
	ErrShortPixels = errors.New("ggdraw: pixel buffer too short")
)

// PointerEvent is one pointer update from the host. Pressed, Moving and
// Released may be combined; they are applied in that order.
type PointerEvent struct {
	X, Y     int
	Pressed  bool
	Moving   bool
	Released bool

	// Color is packed as r | g<<8 | b<<16 | a<<24.
	Color uint32
	Tool  stroke.Tool

	// Size, when positive, becomes the line width of later strokes.
	Size int
}

// Settings is the host configuration pushed by Update.
type Settings struct {
	CanvasWidth  int
	CanvasHeight int

	// Key selects the current key. Its remembered page becomes current.
	Key string
}

// preferredFormat is implemented by devices that know the host's surface
// format.
type preferredFormat interface {
	PreferredFormat() gputypes.TextureFormat
}

// Source is a drawing source: pages grouped under keys, a stroke engine
// drawing on the current page, and rendering of that page.
//
// Source is safe for concurrent use. Pointer events and page changes are
// usually driven from the UI goroutine while Render runs on the render loop.
type Source struct {
	dev      render.Device
	reg      *surface.Registry
	eng      *stroke.Engine
	onChange func(key string, page int)
	textSize float64

	mu     sync.Mutex
	face   *text.Face
	closed bool
}

// New creates a Source.
func New(opts ...Option) (*Source, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	dev := o.device
	if dev == nil {
		dev = render.NewSoftwareDevice()
	}
	format := render.DefaultFormat
	if p, ok := dev.(preferredFormat); ok {
		format = p.PreferredFormat()
	}

	reg := surface.NewRegistry(dev,
		surface.WithFormat(format),
		surface.WithCanvasSize(o.width, o.height),
		surface.WithDecimationThreshold(o.threshold),
		surface.WithKeyNormalization(o.normalize),
	)
	caps := dev.Capabilities()
	logging.Logger().Info("ggdraw: source created",
		"device", caps.DeviceName, "format", format,
		"width", o.width, "height", o.height)

	return &Source{
		dev:      dev,
		reg:      reg,
		eng:      stroke.NewEngine(reg, dev),
		onChange: o.onChange,
		textSize: o.textSize,
	}, nil
}

// Device returns the graphics device.
func (s *Source) Device() render.Device {
	return s.dev
}

// Registry returns the page registry.
func (s *Source) Registry() *surface.Registry {
	return s.reg
}

// OnPointerEvent applies a pointer event to the current page.
func (s *Source) OnPointerEvent(ev PointerEvent) error {
	if s.isClosed() {
		return ErrClosed
	}
	err := s.eng.Handle(stroke.Event{
		X:        ev.X,
		Y:        ev.Y,
		Pressed:  ev.Pressed,
		Moving:   ev.Moving,
		Released: ev.Released,
		Color:    ev.Color,
		Tool:     ev.Tool,
		Size:     ev.Size,
	})
	if err != nil {
		logging.Logger().Warn("ggdraw: pointer event failed", "tool", ev.Tool, "error", err)
	}
	return err
}

// OnPointerCaptureLost cancels the gesture in progress. A previewed shape is
// removed; freehand segments already drawn stay.
func (s *Source) OnPointerCaptureLost() error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.eng.Abandon()
}

// OnPageChangeRequest selects a key, when key is non-nil, and then a page of
// the current key. Missing keys and pages are created. A negative page is
// ignored. It reports whether the selection changed successfully.
func (s *Source) OnPageChangeRequest(key *string, page int) bool {
	if page < 0 || s.isClosed() {
		return false
	}
	if key != nil && !s.reg.SetCurrentKey(*key) {
		return false
	}
	if !s.reg.SetCurrentPage(page) {
		return false
	}
	s.changed()
	return true
}

// Update applies host settings.
func (s *Source) Update(st Settings) {
	if s.isClosed() {
		return
	}
	s.reg.UpdateCanvasSize(st.CanvasWidth, st.CanvasHeight)
	if s.reg.SetCurrentKey(st.Key) {
		s.changed()
	}
}

func (s *Source) changed() {
	if s.onChange != nil {
		s.onChange(s.reg.CurrentKey(), s.reg.CurrentPage())
	}
}

// OnExternalImageComposite stages an RGBA8 image of width x height at (x, y)
// on the current page. The page shows it until a Text release bakes it in.
// Each call replaces the previously staged image.
func (s *Source) OnExternalImageComposite(x, y int, pixels []byte, width, height int) error {
	if s.isClosed() {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrShortPixels, len(pixels), width, height)
	}
	cur, err := s.current()
	if err != nil {
		return err
	}
	return render.WithGraphics(s.dev, func() error {
		return cur.StagePixels(x, y, pixels, width, height)
	})
}

// OnTextComposite draws a line of text with its top-left corner at (x, y)
// onto the current page's staged image. Like images, text is baked in by a
// Text release.
func (s *Source) OnTextComposite(x, y int, str string, packed uint32) error {
	if s.isClosed() {
		return ErrClosed
	}
	w, h := s.reg.CanvasSize()
	if str == "" || w <= 0 || h <= 0 {
		return nil
	}
	face, err := s.textFace()
	if err != nil {
		return err
	}
	cur, err := s.current()
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if face.Draw(img, x, y, str, stroke.UnpackColor(packed)).Empty() {
		return nil
	}
	return render.WithGraphics(s.dev, func() error {
		tex, err := s.dev.CreateTexture(w, h, render.DefaultFormat, img.Pix)
		if err != nil {
			return fmt.Errorf("ggdraw: text texture: %w", err)
		}
		defer tex.Destroy()
		return cur.StageOverlay(tex)
	})
}

// Render draws the current page into out, sized to the canvas. out is reset
// first. Nothing is drawn when there is no current page or the canvas is
// empty.
func (s *Source) Render(out render.RenderTarget) error {
	if s.isClosed() {
		return ErrClosed
	}
	// A page replaced between lookup and drawing is looked up again; the
	// registry never leaves the current page missing.
	for range maxRenderAttempts {
		cur := s.reg.CurrentSurface()
		w, h := s.reg.CanvasSize()
		if cur == nil || w <= 0 || h <= 0 {
			return nil
		}
		drawn, err := s.renderSurface(out, cur)
		if err != nil || drawn {
			return err
		}
	}
	logging.Logger().Warn("ggdraw: render skipped, page kept changing")
	return nil
}

// maxRenderAttempts bounds the lookups Render makes while pages are being
// replaced.
const maxRenderAttempts = 8

// renderSurface draws cur into out and reports false when cur was released
// before it could be drawn.
func (s *Source) renderSurface(out render.RenderTarget, cur *surface.Surface) (bool, error) {
	var drawn bool
	err := render.WithGraphics(s.dev, func() error {
		tex, err := cur.Displayed()
		if err != nil || tex == nil {
			return err
		}
		w, h := tex.Width(), tex.Height()
		out.Reset()
		if !out.Begin(w, h) {
			return render.ErrBeginFailed
		}
		defer out.End()
		if err := s.dev.Clear(color.Transparent); err != nil {
			return err
		}
		s.dev.Ortho(0, float32(w), 0, float32(h), -100, 100)
		drawn = true
		return s.dev.DrawSprite(tex, w, h)
	})
	return drawn, err
}

// CanvasSize returns the canvas size.
func (s *Source) CanvasSize() (width, height int) {
	return s.reg.CanvasSize()
}

// KeyInfo returns a snapshot mapping every key to its current page.
func (s *Source) KeyInfo() map[string]int {
	return s.reg.KeyInfo()
}

// CurrentKey returns the selected key.
func (s *Source) CurrentKey() string {
	return s.reg.CurrentKey()
}

// CurrentPage returns the selected page, or -1 when the current key has no
// pages yet.
func (s *Source) CurrentPage() int {
	return s.reg.CurrentPage()
}

// Close cancels any gesture and releases every page.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	face := s.face
	s.face = nil
	s.mu.Unlock()

	errs := []error{s.eng.Abandon(), s.reg.Close()}
	if face != nil {
		errs = append(errs, face.Close())
	}
	return errors.Join(errs...)
}

func (s *Source) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// current returns the current page, creating it when missing.
func (s *Source) current() (*surface.Surface, error) {
	if cur := s.reg.CurrentSurface(); cur != nil {
		return cur, nil
	}
	page := max(s.reg.CurrentPage(), 0)
	if !s.reg.SetCurrentPage(page) {
		return nil, ErrNoPage
	}
	if cur := s.reg.CurrentSurface(); cur != nil {
		return cur, nil
	}
	return nil, ErrNoPage
}

func (s *Source) textFace() (*text.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.face != nil {
		return s.face, nil
	}
	src, err := text.DefaultSource()
	if err != nil {
		return nil, err
	}
	face, err := src.Face(s.textSize)
	if err != nil {
		return nil, err
	}
	s.face = face
	return face, nil
}
