// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import (
	"fmt"
	"image/color"
)

// Tool selects what a pointer gesture draws. The values are part of the
// host protocol and must not change.
type Tool int

const (
	// ToolNone is the zero value; gestures with it draw nothing.
	ToolNone Tool = 0

	// ToolPen draws a freehand path.
	ToolPen Tool = 1

	// ToolCircle draws a ring whose radius follows the horizontal drag.
	ToolCircle Tool = 2

	// ToolRect draws a rectangle outline.
	ToolRect Tool = 3

	// ToolLine draws a straight segment.
	ToolLine Tool = 4

	// ToolText bakes the staged still image into the page on release.
	ToolText Tool = 9

	// ToolClear wipes the current page on release.
	ToolClear Tool = 10
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "None"
	case ToolPen:
		return "Pen"
	case ToolCircle:
		return "Circle"
	case ToolRect:
		return "Rect"
	case ToolLine:
		return "Line"
	case ToolText:
		return "Text"
	case ToolClear:
		return "Clear"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// IsShape reports whether the tool draws a previewed shape.
func (t Tool) IsShape() bool {
	return t == ToolLine || t == ToolRect || t == ToolCircle
}

// State is the phase of the engine's current gesture.
type State int

const (
	// Idle means no gesture is in progress.
	Idle State = iota

	// Previewing means a shape is redrawn against a snapshot on every move.
	Previewing

	// Accumulating means a freehand path is being extended.
	Accumulating
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Previewing:
		return "Previewing"
	case Accumulating:
		return "Accumulating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// UnpackColor converts a color packed as r | g<<8 | b<<16 | a<<24.
func UnpackColor(c uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(c),
		G: uint8(c >> 8),
		B: uint8(c >> 16),
		A: uint8(c >> 24),
	}
}

// PackColor is the inverse of UnpackColor.
func PackColor(c color.NRGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}
