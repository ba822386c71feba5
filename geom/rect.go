// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// RectBorder tiles the border of the rectangle (x, y, width, height) with a
// stroke of the given line width.
//
// Each corner gets a lineWidth x lineWidth square centered on it, and the
// edges are quads that reuse the inner vertices of the neighbouring corner
// squares. Per-edge quads alone would overlap at the corners and leave blend
// seams at small widths. Width and height may be negative when the rectangle
// was dragged up or to the left.
//
// The result is a triangle list of 16 triangles built from 16 corner points,
// or nil for a non-positive line width.
func RectBorder(x, y, width, height, lineWidth float32) []Point {
	if lineWidth <= 0 {
		return nil
	}
	e := lineWidth / 2

	corners := [4]Point{
		Pt(x, y),              // top left
		Pt(x+width, y),        // top right
		Pt(x+width, y+height), // bottom right
		Pt(x, y+height),       // bottom left
	}

	// sq[c] holds the corner square of corner c, clockwise from its
	// top-left vertex.
	var sq [4][4]Point
	for c, p := range corners {
		sq[c] = [4]Point{
			Pt(p.X-e, p.Y-e),
			Pt(p.X+e, p.Y-e),
			Pt(p.X+e, p.Y+e),
			Pt(p.X-e, p.Y+e),
		}
	}
	tl, tr, br, bl := sq[0], sq[1], sq[2], sq[3]

	out := make([]Point, 0, 16*3)
	for _, s := range sq {
		out = append(out, quad(s[0], s[1], s[2], s[3])...)
	}

	// Edges between adjacent corner squares.
	out = append(out, quad(tl[1], tr[0], tr[3], tl[2])...) // top
	out = append(out, quad(tr[3], tr[2], br[1], br[0])...) // right
	out = append(out, quad(bl[1], br[0], br[3], bl[2])...) // bottom
	out = append(out, quad(tl[3], tl[2], bl[1], bl[0])...) // left
	return out
}
