// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/ggdraw/render"
)

// Stroke is the shape a surface is currently drawing.
type Stroke struct {
	// Shape is the latest geometry of the stroke. For freehand strokes it is
	// a PenStroke without points; the points live in the surface's path.
	Shape geom.Shape

	// Anchor is the press position.
	Anchor geom.Point

	Color color.NRGBA

	// Width is the line width in pixels.
	Width int
}

// Surface is one drawable page.
//
// The committed render target holds everything drawn so far. While a shape is
// previewed, a scratch texture keeps the committed content from before the
// press so every move can redraw the shape against a clean base. The still
// layer holds composited images until a text release bakes them into the
// committed target.
//
// Methods that touch textures must be called inside the device's graphics
// scope. Surface is safe for concurrent use.
type Surface struct {
	mu  sync.Mutex
	env *env

	committed render.RenderTarget
	scratch   render.Texture
	still     render.RenderTarget

	path   *geom.Accumulator
	stroke *Stroke
	closed bool
}

// NewSurface creates a surface sized to the canvas. It must be called inside
// the device's graphics scope.
func NewSurface(dev render.Device, opts ...Option) (*Surface, error) {
	return newSurface(newEnv(dev, opts))
}

func newSurface(e *env) (*Surface, error) {
	w, h := e.canvas.Size()
	rt, err := e.dev.CreateRenderTarget(e.format, w, h)
	if err != nil {
		return nil, err
	}
	return &Surface{
		env:       e,
		committed: rt,
		path:      geom.NewAccumulator(e.threshold),
	}, nil
}

// Committed returns the committed texture, or nil before the first
// allocation.
func (s *Surface) Committed() render.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.committed.Texture()
}

// Displayed returns the texture to present: the still layer when one is
// staged, the committed texture otherwise. Textures sized for an older
// canvas are recreated cleared first; a stale still layer is dropped. It
// returns nil for a closed surface or an empty canvas and must be called
// inside the device's graphics scope.
func (s *Surface) Displayed() (render.Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil
	}
	ok, err := s.ensureCommitted()
	if err != nil || !ok {
		return nil, err
	}
	if s.still != nil {
		if st := s.still.Texture(); st != nil && sameSize(st, s.committed.Texture()) {
			return st, nil
		}
		s.still.Destroy()
		s.still = nil
	}
	return s.committed.Texture(), nil
}

// Draw rasterizes meshes into the committed target in canvas coordinates.
// Nothing is drawn while the canvas is empty.
func (s *Surface) Draw(meshes []geom.Mesh, c color.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if len(meshes) == 0 {
		return nil
	}
	ok, err := s.ensureCommitted()
	if err != nil || !ok {
		return err
	}
	tex := s.committed.Texture()
	w, h := tex.Width(), tex.Height()

	s.committed.Reset()
	if !s.committed.Begin(w, h) {
		return render.ErrBeginFailed
	}
	defer s.committed.End()

	s.env.dev.Ortho(0, float32(w), 0, float32(h), -100, 100)
	for _, m := range meshes {
		if err := s.env.dev.DrawMesh(m, c); err != nil {
			return err
		}
	}
	return nil
}

// BeginPreview snapshots the committed content into the scratch texture.
func (s *Surface) BeginPreview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.scratch != nil {
		return ErrPreviewActive
	}
	ok, err := s.ensureCommitted()
	if err != nil || !ok {
		return err
	}

	if err := s.snapshot(); err != nil {
		return err
	}
	logging.Logger().Debug("surface: preview started")
	return nil
}

// RestorePreview copies the scratch snapshot back into the committed target.
// It is a no-op when no preview is active.
func (s *Surface) RestorePreview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoreLocked()
}

// CommitPreview keeps the committed content as drawn and frees the scratch
// texture.
func (s *Surface) CommitPreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freeScratch()
}

// CancelPreview restores the pre-press content and frees the scratch
// texture. The scratch is freed even when the restore fails.
func (s *Surface) CancelPreview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.restoreLocked()
	s.freeScratch()
	return err
}

// Previewing reports whether a scratch snapshot is held.
func (s *Surface) Previewing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scratch != nil
}

func (s *Surface) restoreLocked() error {
	if s.scratch == nil {
		return nil
	}
	dst := s.committed.Texture()
	if dst == nil {
		return nil
	}
	if !sameSize(dst, s.scratch) {
		// Resized since the snapshot but not yet redrawn: the next draw
		// recreates the target cleared and snapshots that instead.
		return nil
	}
	return s.env.dev.CopyTexture(dst, s.scratch)
}

func (s *Surface) freeScratch() {
	if s.scratch == nil {
		return
	}
	s.scratch.Destroy()
	s.scratch = nil
	logging.Logger().Debug("surface: preview released")
}

// Stroke returns the in-progress stroke.
func (s *Surface) Stroke() (Stroke, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stroke == nil {
		return Stroke{}, false
	}
	return *s.stroke, true
}

// SetStroke records the in-progress stroke.
func (s *Surface) SetStroke(st Stroke) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stroke = &st
}

// EndStroke forgets the in-progress stroke.
func (s *Surface) EndStroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stroke = nil
}

// BeginPath starts a freehand path at p.
func (s *Surface) BeginPath(p geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path.Reset()
	s.path.Append(p)
}

// ExtendPath adds p to the freehand path. When p is retained it returns the
// new segment from the previous retained point.
func (s *Surface) ExtendPath(p geom.Point) (from, to geom.Point, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, started := s.path.Last()
	if !started || !s.path.Append(p) {
		return geom.Point{}, geom.Point{}, false
	}
	return last, p, true
}

// EndPath discards the freehand path. When the final samples were dropped by
// decimation it returns the segment that connects the path to the last one.
func (s *Surface) EndPath() (from, to geom.Point, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.path.Reset()
	last, started := s.path.Last()
	if !started {
		return geom.Point{}, geom.Point{}, false
	}
	tail, dropped := s.path.Tail()
	if !dropped {
		return geom.Point{}, geom.Point{}, false
	}
	return last, tail, true
}

// PathLen returns the number of retained freehand points.
func (s *Surface) PathLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path.Len()
}

// StagePixels copies an RGBA8 image of width x height to (x, y) of the still
// layer. The layer is first reset to the committed content, so each call
// replaces the previous frame.
func (s *Surface) StagePixels(x, y int, pixels []byte, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	ok, err := s.ensureStill(true)
	if err != nil || !ok {
		return err
	}

	src, err := s.env.dev.CreateTexture(width, height, render.DefaultFormat, pixels)
	if err != nil {
		return fmt.Errorf("surface: stage pixels: %w", err)
	}
	defer src.Destroy()
	return s.env.dev.CopyTextureRegion(s.still.Texture(), x, y, src, 0, 0, width, height)
}

// StageOverlay blends tex over the still layer, stretched to the canvas.
// Overlays accumulate until the layer is baked.
func (s *Surface) StageOverlay(tex render.Texture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	ok, err := s.ensureStill(false)
	if err != nil || !ok {
		return err
	}

	st := s.still.Texture()
	w, h := st.Width(), st.Height()
	s.still.Reset()
	if !s.still.Begin(w, h) {
		return render.ErrBeginFailed
	}
	defer s.still.End()
	s.env.dev.Ortho(0, float32(w), 0, float32(h), -100, 100)
	return s.env.dev.DrawSprite(tex, w, h)
}

// HasStill reports whether a still layer is staged.
func (s *Surface) HasStill() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.still != nil
}

// BakeStill copies the still layer into the committed target and frees it.
// It is a no-op without a still layer.
func (s *Surface) BakeStill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.still == nil {
		return nil
	}
	defer func() {
		s.still.Destroy()
		s.still = nil
	}()

	if _, err := s.ensureCommitted(); err != nil {
		return err
	}
	dst, src := s.committed.Texture(), s.still.Texture()
	if dst == nil || src == nil {
		return nil
	}
	if !sameSize(dst, src) {
		// Staged for an older canvas; the recreated page starts empty.
		return nil
	}
	return s.env.dev.CopyTexture(dst, src)
}

// Close releases every texture of the surface. It must be called inside the
// device's graphics scope.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.freeScratch()
	if s.still != nil {
		s.still.Destroy()
		s.still = nil
	}
	s.committed.Destroy()
	s.stroke = nil
}

// ensureCommitted makes the committed texture match the canvas size. A
// texture of another size is recreated cleared, and an active preview
// snapshot is retaken from it, so a resize never carries old content. It
// reports false while the canvas is empty.
func (s *Surface) ensureCommitted() (bool, error) {
	w, h := s.env.canvas.Size()
	if w <= 0 || h <= 0 {
		return false, nil
	}
	if tex := s.committed.Texture(); tex != nil && tex.Width() == w && tex.Height() == h {
		return true, nil
	}
	s.committed.Reset()
	if !s.committed.Begin(w, h) {
		return false, render.ErrBeginFailed
	}
	s.committed.End()
	logging.Logger().Debug("surface: committed target recreated", "width", w, "height", h)

	if s.scratch != nil {
		if err := s.snapshot(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// snapshot replaces the scratch texture with a copy of the committed content.
func (s *Surface) snapshot() error {
	src := s.committed.Texture()
	scratch, err := s.env.dev.CreateTexture(src.Width(), src.Height(), s.env.format, nil)
	if err != nil {
		logging.Logger().Warn("surface: scratch allocation failed", "error", err)
		return fmt.Errorf("surface: preview snapshot: %w", err)
	}
	if err := s.env.dev.CopyTexture(scratch, src); err != nil {
		scratch.Destroy()
		return fmt.Errorf("surface: preview snapshot: %w", err)
	}
	if s.scratch != nil {
		s.scratch.Destroy()
	}
	s.scratch = scratch
	return nil
}

func sameSize(a, b render.Texture) bool {
	return a.Width() == b.Width() && a.Height() == b.Height()
}

// ensureStill creates the still layer from the committed content. With
// refresh, an existing layer is reset to the committed content as well.
func (s *Surface) ensureStill(refresh bool) (bool, error) {
	if s.still != nil && !refresh {
		return true, nil
	}
	ok, err := s.ensureCommitted()
	if err != nil || !ok {
		return false, err
	}
	src := s.committed.Texture()
	if s.still != nil {
		err := s.env.dev.CopyTexture(s.still.Texture(), src)
		if errors.Is(err, render.ErrSizeMismatch) {
			// Canvas resized since staging; start the layer over.
			s.still.Destroy()
			s.still = nil
		} else if err != nil {
			return false, fmt.Errorf("surface: still layer: %w", err)
		} else {
			return true, nil
		}
	}
	still, err := s.env.dev.CreateRenderTarget(s.env.format, src.Width(), src.Height())
	if err != nil {
		logging.Logger().Warn("surface: still layer allocation failed", "error", err)
		return false, fmt.Errorf("surface: still layer: %w", err)
	}
	if err := s.env.dev.CopyTexture(still.Texture(), src); err != nil {
		still.Destroy()
		return false, fmt.Errorf("surface: still layer: %w", err)
	}
	s.still = still
	return true, nil
}
