// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// ThickLine expands the segment a-b into a quad of the given width and
// returns it as two triangles (6 vertices).
//
// It returns nil for a non-positive width or a zero-length segment.
func ThickLine(a, b Point, width float32) []Point {
	if width <= 0 || a == b {
		return nil
	}
	half := width / 2

	switch {
	case a.X == b.X:
		// Vertical: offset horizontally.
		y0, y1 := ordered(a.Y, b.Y)
		x0 := a.X - half
		x1 := x0 + width
		return quad(Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1))

	case a.Y == b.Y:
		// Horizontal: offset vertically.
		x0, x1 := ordered(a.X, b.X)
		y0 := a.Y - half
		y1 := y0 + width
		return quad(Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1))
	}

	// The offset band edges are the perpendiculars through each endpoint,
	// intersected with the lines at distance half on either side. Using the
	// unit normal keeps this stable for slopes close to vertical.
	if a.X > b.X {
		a, b = b, a
	}
	d := b.Sub(a)
	l := d.Length()
	n := Pt(-d.Y, d.X).Mul(half / l)
	return quad(a.Sub(n), a.Add(n), b.Add(n), b.Sub(n))
}

// quad splits the quadrilateral p0-p1-p2-p3 into two triangles that share
// the p0-p2 diagonal.
func quad(p0, p1, p2, p3 Point) []Point {
	return []Point{
		p0, p1, p2,
		p0, p2, p3,
	}
}

func ordered(a, b float32) (float32, float32) {
	if a > b {
		return b, a
	}
	return a, b
}
