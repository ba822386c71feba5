// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface holds the drawable pages of a drawing source.
//
// The model has three levels:
//
//   - Registry maps keys (opaque strings such as document names) to page
//     stores and tracks the current key and page.
//   - PageStore maps page indices of one key to surfaces. Page 0 exists from
//     construction.
//   - Surface is one page: a committed render target, an optional scratch
//     snapshot used while a shape is previewed, an optional still-image layer,
//     and the in-progress stroke record.
//
// # Graphics scope
//
// Surface methods that touch textures must run inside the device's graphics
// scope (render.WithGraphics). PageStore and Registry enter the scope
// themselves when they create or release surfaces, so they must never be
// called from inside one.
//
// # Lock order
//
// Registry, then PageStore, then the graphics scope, then Surface.
package surface
