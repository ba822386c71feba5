// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "math"

// RingVertexCount is the number of vertices in the unit ring: one per degree
// plus the closing vertex.
const RingVertexCount = 361

// RingStep is the radius increment between concentric circle rings.
const RingStep = 0.5

var unitRing = buildUnitRing()

func buildUnitRing() []Point {
	ring := make([]Point, RingVertexCount)
	for i := range ring {
		a := float64(i) * math.Pi / 180
		ring[i] = Pt(float32(math.Cos(a)), float32(math.Sin(a)))
	}
	// Close the loop exactly.
	ring[RingVertexCount-1] = ring[0]
	return ring
}

// UnitRing returns a copy of the unit circle vertex ring.
func UnitRing() []Point {
	out := make([]Point, len(unitRing))
	copy(out, unitRing)
	return out
}

// CircleRings returns 2*lineWidth line-strip meshes approximating a circle
// outline around center. Ring i is the unit ring scaled by
// radius + i*RingStep and translated to center.
//
// Negative radii mirror the ring, which draws the same circle.
func CircleRings(center Point, radius float32, lineWidth int) []Mesh {
	if lineWidth <= 0 {
		return nil
	}
	n := lineWidth * 2
	meshes := make([]Mesh, 0, n)
	for i := range n {
		s := radius + float32(i)*RingStep
		meshes = append(meshes, Mesh{
			Topology:  LineStrip,
			Vertices:  unitRing,
			Transform: Translate(center.X, center.Y).Multiply(Scale(s, s)),
		})
	}
	return meshes
}
