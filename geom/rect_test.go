// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectBorderTriangleCount(t *testing.T) {
	tris := RectBorder(10, 20, 100, 50, 4)
	require.Len(t, tris, 16*3)

	b := BoundsOf(tris)
	assert.Equal(t, Pt(8, 18), b.Min)
	assert.Equal(t, Pt(112, 72), b.Max)
}

func TestRectBorderUsesSixteenCornerPoints(t *testing.T) {
	tris := RectBorder(0, 0, 40, 30, 6)
	distinct := make(map[Point]struct{})
	for _, v := range tris {
		distinct[v] = struct{}{}
	}
	assert.Len(t, distinct, 16)
}

func TestRectBorderCoversCornersAndLeavesInteriorEmpty(t *testing.T) {
	tris := RectBorder(0, 0, 40, 30, 6)

	covered := func(p Point) bool {
		for i := 0; i+2 < len(tris); i += 3 {
			if inTriangle(p, tris[i], tris[i+1], tris[i+2]) {
				return true
			}
		}
		return false
	}

	for _, p := range []Point{
		Pt(0, 0), Pt(40, 0), Pt(40, 30), Pt(0, 30), // corners
		Pt(20, 0), Pt(40, 15), Pt(20, 30), Pt(0, 15), // edge midpoints
		Pt(-2.5, -2.5), Pt(42.5, 32.5), // inside the corner squares
	} {
		assert.True(t, covered(p), "point %v should be on the border", p)
	}
	for _, p := range []Point{Pt(20, 15), Pt(5, 5), Pt(35, 25), Pt(-4, 15), Pt(20, 34)} {
		assert.False(t, covered(p), "point %v should not be on the border", p)
	}
}

func TestRectBorderNegativeSize(t *testing.T) {
	fwd := BoundsOf(RectBorder(0, 0, 50, 40, 2))
	rev := BoundsOf(RectBorder(50, 40, -50, -40, 2))
	assert.Equal(t, fwd, rev)
}

func TestRectBorderZeroWidth(t *testing.T) {
	assert.Nil(t, RectBorder(0, 0, 10, 10, 0))
}

// inTriangle reports whether p lies strictly inside triangle abc.
func inTriangle(p, a, b, c Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos) && (d1 != 0 || d2 != 0 || d3 != 0)
}
