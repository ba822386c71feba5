// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// Topology specifies how a mesh's vertices are assembled into primitives.
type Topology uint8

const (
	// TriangleList treats every three vertices as an independent triangle.
	TriangleList Topology = iota

	// LineStrip connects consecutive vertices with one-pixel segments.
	LineStrip
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "TriangleList"
	case LineStrip:
		return "LineStrip"
	default:
		return "Unknown"
	}
}

// Mesh is a vertex list ready for submission to a render device.
//
// Vertices may be shared between meshes (the circle rings all reference one
// unit ring) and must be treated as read-only.
type Mesh struct {
	Topology Topology
	Vertices []Point

	// Transform is applied to every vertex before projection.
	// The zero Matrix is treated as the identity.
	Transform Matrix
}

// Matrix returns the effective transform of the mesh.
func (m Mesh) Matrix() Matrix {
	if m.Transform == (Matrix{}) {
		return Identity()
	}
	return m.Transform
}

// Empty reports whether the mesh would produce no primitive.
func (m Mesh) Empty() bool {
	switch m.Topology {
	case TriangleList:
		return len(m.Vertices) < 3
	case LineStrip:
		return len(m.Vertices) < 2
	default:
		return true
	}
}

// Bounds returns the bounding box of the transformed vertices.
func (m Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	tr := m.Matrix()
	first := tr.TransformPoint(m.Vertices[0])
	b := Bounds{Min: first, Max: first}
	for _, v := range m.Vertices[1:] {
		p := tr.TransformPoint(v)
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	return b
}
