// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom converts whiteboard shapes into vertex meshes.
//
// Everything in this package is a pure function of its inputs: a shape
// definition (line, rectangle border, circle, freehand path) and a stroke
// width go in, a triangle list or line strip in canvas coordinates comes out.
// Rasterizing the mesh is the job of a render.Device.
//
// # Shapes
//
// Shape is a closed sum type over PenStroke, Line, Rect and Circle. Rasterize
// dispatches on the concrete type:
//
//	meshes := geom.Rasterize(geom.Line{
//	    From:  geom.Pt(0, 0),
//	    To:    geom.Pt(100, 0),
//	    Width: 4,
//	})
//
// # Thick lines
//
// Lines are expanded into a quad by offsetting both endpoints by half the
// stroke width along the line normal. Axis-aligned lines take an exact path
// so that a horizontal line from (0,0) to (100,0) of width w covers exactly
// x in [0,100] and y in [-w/2, w/2].
//
// # Circles
//
// Circles are drawn as 2*lineWidth concentric unit rings, each scaled by an
// extra half pixel. This fakes stroke thickness with line strips instead of a
// filled annulus.
package geom
