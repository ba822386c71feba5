// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import (
	"image/color"
	"testing"
)

func TestToolString(t *testing.T) {
	tests := []struct {
		tool  Tool
		want  string
		shape bool
	}{
		{ToolNone, "None", false},
		{ToolPen, "Pen", false},
		{ToolCircle, "Circle", true},
		{ToolRect, "Rect", true},
		{ToolLine, "Line", true},
		{ToolText, "Text", false},
		{ToolClear, "Clear", false},
		{Tool(7), "Tool(7)", false},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tool.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.tool.IsShape(); got != tt.shape {
				t.Errorf("IsShape() = %v, want %v", got, tt.shape)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Idle:         "Idle",
		Previewing:   "Previewing",
		Accumulating: "Accumulating",
		State(9):     "State(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestUnpackColor(t *testing.T) {
	tests := []struct {
		packed uint32
		want   color.NRGBA
	}{
		{0x00000000, color.NRGBA{}},
		{0xff0000ff, color.NRGBA{R: 0xff, A: 0xff}},
		{0x80ff0001, color.NRGBA{R: 0x01, G: 0x00, B: 0xff, A: 0x80}},
		{0x12345678, color.NRGBA{R: 0x78, G: 0x56, B: 0x34, A: 0x12}},
	}
	for _, tt := range tests {
		got := UnpackColor(tt.packed)
		if got != tt.want {
			t.Errorf("UnpackColor(%#08x) = %v, want %v", tt.packed, got, tt.want)
		}
		if back := PackColor(got); back != tt.packed {
			t.Errorf("PackColor(%v) = %#08x, want %#08x", got, back, tt.packed)
		}
	}
}
