// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the graphics capability set the whiteboard engine
// consumes, and a software implementation of it.
//
// # Key Principle
//
// ggdraw RECEIVES a device from the host, it does NOT decide how pixels
// reach the screen. The engine only needs a small set of operations:
//
//   - Textures: create with optional initial pixels, destroy
//   - Render targets: create, begin, end, backing texture, reset
//   - Copies: whole texture and rectangular region
//   - Drawing: orthographic projection, vertex meshes, textured sprites
//
// # Graphics context
//
// Every call that touches device resources runs inside a graphics scope.
// Scopes never interleave; use WithGraphics so Enter and Leave are paired on
// every exit path:
//
//	err := render.WithGraphics(dev, func() error {
//	    if !target.Begin(w, h) {
//	        return render.ErrBeginFailed
//	    }
//	    defer target.End()
//	    return dev.DrawMesh(mesh, color.Black)
//	})
//
// # SoftwareDevice
//
// SoftwareDevice keeps every texture in an *image.RGBA. Meshes are covered
// with golang.org/x/image/vector and sprites are scaled with
// golang.org/x/image/draw. An optional host gpucontext.DeviceProvider
// supplies the preferred output format.
package render
