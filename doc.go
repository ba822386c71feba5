// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ggdraw is a multi-page annotation and whiteboard engine.
//
// A Source owns drawable pages grouped under keys (for example one key per
// shown document, one page per document page). Pointer events draw freehand
// paths, lines, rectangles and circles onto the current page; shapes are
// previewed live without leaving intermediate copies behind. Render draws
// the current page into an output render target.
//
// # Quick Start
//
//	src, err := ggdraw.New(ggdraw.WithCanvasSize(1920, 1080))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	key := "slides.pdf"
//	src.OnPageChangeRequest(&key, 0)
//
//	src.OnPointerEvent(ggdraw.PointerEvent{X: 100, Y: 100, Pressed: true, Tool: stroke.ToolLine, Color: 0xff0000ff, Size: 4})
//	src.OnPointerEvent(ggdraw.PointerEvent{X: 400, Y: 300, Moving: true, Tool: stroke.ToolLine})
//	src.OnPointerEvent(ggdraw.PointerEvent{X: 400, Y: 300, Released: true, Tool: stroke.ToolLine})
//
// # Architecture
//
//   - geom: stroke geometry (thick lines, rectangle borders, circle rings)
//   - render: the graphics device abstraction and a software implementation
//   - surface: pages, page stores and the key registry
//   - stroke: the pointer gesture state machine
//   - text: single-line text rasterization for text compositing
//
// # Logging
//
// ggdraw is silent by default. Call SetLogger to receive structured logs
// from every sub-package.
package ggdraw
