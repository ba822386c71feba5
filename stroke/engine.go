// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/ggdraw/render"
	"github.com/gogpu/ggdraw/surface"
)

// ErrNoSurface is returned when the current page could not be resolved or
// allocated.
var ErrNoSurface = errors.New("stroke: no current surface")

// Event is one pointer update. A single event may carry a press, a move and
// a release; they are applied in that order.
type Event struct {
	X, Y     int
	Pressed  bool
	Moving   bool
	Released bool

	// Color is packed as r | g<<8 | b<<16 | a<<24.
	Color uint32
	Tool  Tool

	// Size, when positive, becomes the registry line width.
	Size int
}

// Engine applies pointer events to the current page of a registry.
//
// The tool and page of a gesture are fixed by its press; moves and the
// release go to the same surface even if the current page changes meanwhile.
//
// Engine is safe for concurrent use. It must not be called from inside the
// device's graphics scope.
type Engine struct {
	mu  sync.Mutex
	reg *surface.Registry
	dev render.Device

	active *surface.Surface
	tool   Tool
}

// NewEngine creates an engine drawing on reg's pages through dev.
func NewEngine(reg *surface.Registry, dev render.Device) *Engine {
	return &Engine{reg: reg, dev: dev}
}

// State returns the phase of the current gesture.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.active == nil:
		return Idle
	case e.tool == ToolPen:
		return Accumulating
	case e.tool.IsShape():
		return Previewing
	default:
		return Idle
	}
}

// Tool returns the tool of the current gesture, or ToolNone.
func (e *Engine) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ToolNone
	}
	return e.tool
}

// Handle applies ev.
func (e *Engine) Handle(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ev.Size > 0 {
		e.reg.SetLineWidth(ev.Size)
	}

	var cur *surface.Surface
	if ev.Pressed || (ev.Released && ev.Tool == ToolText) {
		cur = e.resolve()
		if cur == nil {
			return ErrNoSurface
		}
	}

	var wipe bool
	err := render.WithGraphics(e.dev, func() error {
		if ev.Pressed {
			if err := e.press(cur, ev); err != nil {
				return err
			}
		}
		if ev.Moving {
			if err := e.move(ev); err != nil {
				return err
			}
		}
		if ev.Released {
			var err error
			wipe, err = e.release(cur, ev)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Replacing the page allocates through the registry, which must happen
	// outside the graphics scope.
	if wipe {
		return e.clearPage()
	}
	return nil
}

// Abandon cancels the current gesture, restoring a previewed page to its
// state before the press. It is used when pointer capture is lost.
func (e *Engine) Abandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return nil
	}
	logging.Logger().Debug("stroke: gesture abandoned", "tool", e.tool)
	return render.WithGraphics(e.dev, func() error {
		return e.cancel()
	})
}

// resolve returns the current surface, selecting the current key and page
// again when the page is missing.
func (e *Engine) resolve() *surface.Surface {
	if s := e.reg.CurrentSurface(); s != nil {
		return s
	}
	if !e.reg.SetCurrentKey(e.reg.CurrentKey()) {
		return nil
	}
	if s := e.reg.CurrentSurface(); s != nil {
		return s
	}
	if !e.reg.SetCurrentPage(max(e.reg.CurrentPage(), 0)) {
		return nil
	}
	return e.reg.CurrentSurface()
}

func (e *Engine) press(s *surface.Surface, ev Event) error {
	if e.active != nil {
		// A press without a release: the same tool on the same page keeps the
		// unfinished gesture, anything else discards it.
		var err error
		if e.active == s && e.tool == ev.Tool {
			err = e.finish()
		} else {
			err = e.cancel()
		}
		if err != nil {
			logging.Logger().Warn("stroke: ending previous gesture", "error", err)
		}
	}

	anchor := geom.Pt(float32(ev.X), float32(ev.Y))
	width := e.reg.LineWidth()
	st := surface.Stroke{
		Anchor: anchor,
		Color:  UnpackColor(ev.Color),
		Width:  width,
	}

	switch ev.Tool {
	case ToolPen:
		s.BeginPath(anchor)
		st.Shape = geom.PenStroke{Width: float32(width)}
	case ToolLine, ToolRect, ToolCircle:
		if err := s.BeginPreview(); err != nil {
			return fmt.Errorf("stroke: press %v: %w", ev.Tool, err)
		}
		st.Shape = shapeFor(ev.Tool, anchor, anchor, width)
	default:
		// Text and clear act on release only.
		return nil
	}

	s.SetStroke(st)
	e.active = s
	e.tool = ev.Tool
	logging.Logger().Debug("stroke: press", "tool", ev.Tool, "x", ev.X, "y", ev.Y)
	return nil
}

func (e *Engine) move(ev Event) error {
	s := e.active
	if s == nil {
		return nil
	}
	st, ok := s.Stroke()
	if !ok {
		return nil
	}
	p := geom.Pt(float32(ev.X), float32(ev.Y))

	if e.tool == ToolPen {
		from, to, ok := s.ExtendPath(p)
		if !ok {
			return nil
		}
		seg := geom.PenStroke{Points: []geom.Point{from, to}, Width: float32(st.Width)}
		return s.Draw(geom.Rasterize(seg), st.Color)
	}

	shape := shapeFor(e.tool, st.Anchor, p, st.Width)
	if err := s.RestorePreview(); err != nil {
		return fmt.Errorf("stroke: move %v: %w", e.tool, err)
	}
	if err := s.Draw(geom.Rasterize(shape), st.Color); err != nil {
		return err
	}
	st.Shape = shape
	s.SetStroke(st)
	return nil
}

// release ends the gesture and reports whether the current page must be
// wiped.
func (e *Engine) release(cur *surface.Surface, ev Event) (bool, error) {
	var err error
	if e.active != nil {
		err = e.finish()
	}

	switch ev.Tool {
	case ToolText:
		if bakeErr := cur.BakeStill(); bakeErr != nil {
			err = errors.Join(err, fmt.Errorf("stroke: bake still image: %w", bakeErr))
		}
	case ToolClear:
		return true, err
	}
	return false, err
}

// finish completes the gesture as drawn.
func (e *Engine) finish() error {
	s, tool := e.active, e.tool
	e.active, e.tool = nil, ToolNone
	st, _ := s.Stroke()
	s.EndStroke()
	logging.Logger().Debug("stroke: release", "tool", tool)

	if tool == ToolPen {
		from, to, ok := s.EndPath()
		if !ok {
			return nil
		}
		// The last samples fell under the threshold; connect the path to
		// where the pointer stopped.
		seg := geom.PenStroke{Points: []geom.Point{from, to}, Width: float32(st.Width)}
		return s.Draw(geom.Rasterize(seg), st.Color)
	}
	s.CommitPreview()
	return nil
}

// cancel discards the gesture.
func (e *Engine) cancel() error {
	s := e.active
	e.active, e.tool = nil, ToolNone
	s.EndStroke()
	s.EndPath()
	return s.CancelPreview()
}

func (e *Engine) clearPage() error {
	key, page := e.reg.CurrentKey(), e.reg.CurrentPage()
	if page < 0 {
		return nil
	}
	if !e.reg.ReplacePage(key, page) {
		return fmt.Errorf("stroke: clear page %d: %w", page, ErrNoSurface)
	}
	logging.Logger().Info("stroke: page cleared", "key", key, "page", page)
	return nil
}

// shapeFor builds the shape of tool dragged from anchor to p.
func shapeFor(tool Tool, anchor, p geom.Point, width int) geom.Shape {
	switch tool {
	case ToolLine:
		return geom.Line{From: anchor, To: p, Width: float32(width)}
	case ToolRect:
		return geom.Rect{Origin: anchor, Size: p.Sub(anchor), LineWidth: float32(width)}
	case ToolCircle:
		d := p.Sub(anchor)
		return geom.CircleFromDrag(anchor, int(d.X), int(d.Y), width)
	default:
		return nil
	}
}
