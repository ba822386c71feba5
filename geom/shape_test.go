// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterize(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		meshes    int
		topology  Topology
		vertCount int
	}{
		{"line", Line{From: Pt(0, 0), To: Pt(100, 0), Width: 4}, 1, TriangleList, 6},
		{"rect", Rect{Origin: Pt(0, 0), Size: Pt(10, 10), LineWidth: 2}, 1, TriangleList, 48},
		{"pen", PenStroke{Points: []Point{Pt(0, 0), Pt(20, 0), Pt(20, 20)}, Width: 3}, 1, TriangleList, 12},
		{"circle", CircleFromDrag(Pt(50, 50), 40, 0, 2), 4, LineStrip, RingVertexCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meshes := Rasterize(tt.shape)
			require.Len(t, meshes, tt.meshes)
			for _, m := range meshes {
				assert.Equal(t, tt.topology, m.Topology)
				assert.Len(t, m.Vertices, tt.vertCount)
				assert.False(t, m.Empty())
			}
		})
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	assert.Nil(t, Rasterize(Line{From: Pt(1, 1), To: Pt(1, 1), Width: 4}))
	assert.Nil(t, Rasterize(Line{From: Pt(0, 0), To: Pt(9, 9), Width: 0}))
	assert.Nil(t, Rasterize(PenStroke{Points: []Point{Pt(1, 1)}, Width: 2}))
	assert.Nil(t, Rasterize(Circle{Center: Pt(5, 5), Radius: 3}))
	assert.Nil(t, Rasterize(nil))
}

func TestMeshMatrixZeroValueIsIdentity(t *testing.T) {
	var m Mesh
	assert.True(t, m.Matrix().IsIdentity())
	assert.True(t, m.Empty())
}
