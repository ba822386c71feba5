// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import (
	"image"
	"testing"

	"github.com/gogpu/ggdraw/render"
	"github.com/gogpu/ggdraw/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const red = 0xff0000ff

type fixture struct {
	dev *render.SoftwareDevice
	reg *surface.Registry
	eng *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dev := render.NewSoftwareDevice()
	reg := surface.NewRegistry(dev, surface.WithCanvasSize(200, 150))
	t.Cleanup(func() { _ = reg.Close() })
	require.True(t, reg.SetCurrentKey("doc"))
	return &fixture{dev: dev, reg: reg, eng: NewEngine(reg, dev)}
}

func (f *fixture) pixels(t *testing.T, s *surface.Surface) *image.RGBA {
	t.Helper()
	require.NotNil(t, s)
	img, err := f.dev.ReadPixels(s.Committed())
	require.NoError(t, err)
	return img
}

func (f *fixture) current(t *testing.T) *image.RGBA {
	t.Helper()
	return f.pixels(t, f.reg.CurrentSurface())
}

func (f *fixture) handle(t *testing.T, events ...Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, f.eng.Handle(ev))
	}
}

func press(tool Tool, x, y, size int) Event {
	return Event{X: x, Y: y, Pressed: true, Tool: tool, Color: red, Size: size}
}

func move(tool Tool, x, y int) Event {
	return Event{X: x, Y: y, Moving: true, Tool: tool, Color: red}
}

func release(tool Tool, x, y int) Event {
	return Event{X: x, Y: y, Released: true, Tool: tool, Color: red}
}

func opaque(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestShapePreviewDoesNotAccumulate(t *testing.T) {
	for _, tool := range []Tool{ToolLine, ToolRect, ToolCircle} {
		t.Run(tool.String(), func(t *testing.T) {
			moved := newFixture(t)
			moved.handle(t,
				press(tool, 40, 40, 3),
				move(tool, 60, 50),
				move(tool, 120, 30),
				move(tool, 90, 110),
				move(tool, 150, 120),
				release(tool, 150, 120),
			)

			direct := newFixture(t)
			direct.handle(t,
				press(tool, 40, 40, 3),
				move(tool, 150, 120),
				release(tool, 150, 120),
			)

			got := moved.current(t)
			assert.Greater(t, opaque(got), 0)
			assert.Equal(t, direct.current(t).Pix, got.Pix)
			assert.Equal(t, 1, moved.dev.LiveTextures(), "scratch released")
			assert.Equal(t, Idle, moved.eng.State())
		})
	}
}

func TestReleaseWithoutPressIsNoop(t *testing.T) {
	f := newFixture(t)
	f.reg.SetLineWidth(4)

	f.handle(t,
		move(ToolLine, 10, 10),
		release(ToolLine, 100, 100),
		move(ToolPen, 20, 20),
		release(ToolPen, 50, 50),
	)
	assert.Zero(t, opaque(f.current(t)))
	assert.Equal(t, 1, f.dev.LiveTextures())
}

func TestDifferentToolPressCancelsPreview(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolRect, 10, 10, 4),
		move(ToolRect, 100, 100),
	)
	require.Equal(t, Previewing, f.eng.State())
	require.Greater(t, opaque(f.current(t)), 0)

	f.handle(t, press(ToolLine, 20, 20, 0))
	assert.Zero(t, opaque(f.current(t)), "rectangle preview discarded")
	assert.Equal(t, ToolLine, f.eng.Tool())

	f.handle(t, release(ToolLine, 20, 20))
	assert.Zero(t, opaque(f.current(t)))
	assert.Equal(t, 1, f.dev.LiveTextures())
}

func TestSameToolPressKeepsUnfinishedShape(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolLine, 10, 10, 4),
		move(ToolLine, 100, 10),
		press(ToolLine, 10, 80, 0),
		move(ToolLine, 100, 80),
		release(ToolLine, 100, 80),
	)
	img := f.current(t)
	assert.NotZero(t, img.RGBAAt(50, 10).A)
	assert.NotZero(t, img.RGBAAt(50, 80).A)
}

func TestPenDecimation(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolPen, 10, 10, 2),
		move(ToolPen, 12, 10),
		move(ToolPen, 14, 10),
	)
	assert.Equal(t, Accumulating, f.eng.State())
	assert.Zero(t, opaque(f.current(t)), "points within the threshold draw nothing")

	f.handle(t, move(ToolPen, 30, 10))
	img := f.current(t)
	assert.NotZero(t, img.RGBAAt(20, 10).A)
	assert.Zero(t, img.RGBAAt(31, 10).A)

	f.handle(t,
		move(ToolPen, 34, 10),
		release(ToolPen, 34, 10),
	)
	img = f.current(t)
	assert.NotZero(t, img.RGBAAt(32, 10).A, "final segment reaches the last sample")
	assert.Zero(t, img.RGBAAt(40, 10).A)
	assert.Zero(t, img.RGBAAt(20, 14).A)
	assert.Equal(t, Idle, f.eng.State())
}

func TestPenDrawsEverySegment(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolPen, 10, 50, 2),
		move(ToolPen, 40, 50),
		move(ToolPen, 40, 90),
		release(ToolPen, 40, 90),
	)
	img := f.current(t)
	assert.NotZero(t, img.RGBAAt(25, 50).A)
	assert.NotZero(t, img.RGBAAt(40, 70).A)
	assert.Zero(t, img.RGBAAt(25, 70).A)
}

func TestCircleRadiusFollowsHorizontalDrag(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolCircle, 100, 75, 2),
		move(ToolCircle, 140, 125),
		release(ToolCircle, 140, 125),
	)
	img := f.current(t)

	// dx = 40 gives radius 20; rings span radius 20 to 21.5.
	assert.NotZero(t, img.RGBAAt(121, 75).A)
	assert.NotZero(t, img.RGBAAt(79, 75).A)
	assert.Zero(t, img.RGBAAt(126, 75).A, "vertical drag does not grow the circle")
	assert.Zero(t, img.RGBAAt(100, 75).A)
}

func TestClearWipesCurrentPage(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.reg.SetCurrentPage(2))
	before := f.reg.CurrentSurface()

	f.handle(t,
		press(ToolLine, 10, 10, 4),
		move(ToolLine, 150, 100),
		release(ToolLine, 150, 100),
	)
	require.Greater(t, opaque(f.current(t)), 0)

	f.handle(t, release(ToolClear, 0, 0))

	after := f.reg.CurrentSurface()
	require.NotNil(t, after)
	assert.NotSame(t, before, after)
	assert.Zero(t, opaque(f.current(t)))
	assert.Equal(t, 2, f.reg.PageSize("doc"))
	assert.Equal(t, map[string]int{"doc": 2}, f.reg.KeyInfo())
	assert.Equal(t, 2, f.dev.LiveTextures())
}

func TestTextReleaseBakesStill(t *testing.T) {
	f := newFixture(t)
	s := f.reg.CurrentSurface()

	pix := []byte{0, 0, 0xff, 0xff}
	require.NoError(t, render.WithGraphics(f.dev, func() error {
		return s.StagePixels(5, 6, pix, 1, 1)
	}))
	require.True(t, s.HasStill())
	assert.Zero(t, f.current(t).RGBAAt(5, 6).A)

	f.handle(t, release(ToolText, 0, 0))
	assert.False(t, s.HasStill())
	assert.Equal(t, uint8(0xff), f.current(t).RGBAAt(5, 6).B)
	assert.Equal(t, 1, f.dev.LiveTextures())
}

func TestAbandonRestoresPage(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolLine, 10, 10, 4),
		move(ToolLine, 150, 100),
		release(ToolLine, 150, 100),
	)
	committed := f.current(t)

	f.handle(t,
		press(ToolRect, 20, 20, 0),
		move(ToolRect, 120, 120),
	)
	require.NoError(t, f.eng.Abandon())

	assert.Equal(t, Idle, f.eng.State())
	assert.Equal(t, committed.Pix, f.current(t).Pix)
	assert.Equal(t, 1, f.dev.LiveTextures())
	require.NoError(t, f.eng.Abandon())
}

func TestGestureStaysOnPressedPage(t *testing.T) {
	f := newFixture(t)
	first := f.reg.CurrentSurface()

	f.handle(t, press(ToolLine, 10, 10, 4))
	require.True(t, f.reg.SetCurrentPage(1))
	f.handle(t,
		move(ToolLine, 150, 10),
		release(ToolLine, 150, 10),
	)

	assert.Greater(t, opaque(f.pixels(t, first)), 0)
	assert.Zero(t, opaque(f.current(t)))
}

func TestSizeUpdatesLineWidth(t *testing.T) {
	f := newFixture(t)

	f.handle(t, Event{Size: 6})
	assert.Equal(t, 6, f.reg.LineWidth())

	f.handle(t, Event{Size: 0})
	f.handle(t, Event{Size: -3})
	assert.Equal(t, 6, f.reg.LineWidth())
}

func TestZeroWidthDrawsNothing(t *testing.T) {
	f := newFixture(t)

	f.handle(t,
		press(ToolLine, 10, 10, 0),
		move(ToolLine, 150, 100),
		release(ToolLine, 150, 100),
	)
	assert.Zero(t, opaque(f.current(t)))
}

func TestPressVivifiesRemovedPage(t *testing.T) {
	f := newFixture(t)
	f.reg.RemoveKey("doc")

	f.handle(t,
		press(ToolLine, 10, 10, 4),
		move(ToolLine, 100, 10),
		release(ToolLine, 100, 10),
	)
	assert.True(t, f.reg.HasKey("doc"))
	assert.NotZero(t, f.current(t).RGBAAt(50, 10).A)
}

func TestPressAllocationFailure(t *testing.T) {
	dev := render.NewSoftwareDevice(render.WithMaxTextureSize(100))
	reg := surface.NewRegistry(dev, surface.WithCanvasSize(200, 150))
	defer reg.Close()
	eng := NewEngine(reg, dev)

	err := eng.Handle(press(ToolLine, 1, 1, 2))
	assert.ErrorIs(t, err, ErrNoSurface)
	assert.Equal(t, Idle, eng.State())
}
