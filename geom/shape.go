// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// Shape is a drawable stroke definition. The set of implementations is
// closed: PenStroke, Line, Rect and Circle.
type Shape interface {
	isShape()
}

// PenStroke is a freehand path of retained points.
type PenStroke struct {
	Points []Point
	Width  float32
}

// Line is a straight segment.
type Line struct {
	From, To Point
	Width    float32
}

// Rect is a rectangle outline anchored at Origin. Size components may be
// negative.
type Rect struct {
	Origin    Point
	Size      Point
	LineWidth float32
}

// Circle is a ring outline around Center.
//
// Radius is derived from horizontal pointer displacement only
// (displacement / 2, truncated). Width and Height record the full drag span;
// Height does not influence rasterization.
type Circle struct {
	Center    Point
	Radius    int
	Width     int
	Height    int
	LineWidth int
}

func (PenStroke) isShape() {}
func (Line) isShape()      {}
func (Rect) isShape()      {}
func (Circle) isShape()    {}

// CircleFromDrag builds the circle for a drag from anchor by (dx, dy).
func CircleFromDrag(anchor Point, dx, dy, lineWidth int) Circle {
	return Circle{
		Center:    anchor,
		Radius:    dx / 2,
		Width:     dx,
		Height:    dy,
		LineWidth: lineWidth,
	}
}

// Rasterize converts a shape into the meshes that draw it. Degenerate
// shapes yield no meshes.
func Rasterize(s Shape) []Mesh {
	var tris []Point
	switch s := s.(type) {
	case PenStroke:
		tris = Freehand(s.Points, s.Width)
	case Line:
		tris = ThickLine(s.From, s.To, s.Width)
	case Rect:
		tris = RectBorder(s.Origin.X, s.Origin.Y, s.Size.X, s.Size.Y, s.LineWidth)
	case Circle:
		return CircleRings(s.Center, float32(s.Radius), s.LineWidth)
	}
	if len(tris) == 0 {
		return nil
	}
	return []Mesh{{Topology: TriangleList, Vertices: tris}}
}
