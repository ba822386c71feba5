// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package stroke turns pointer gestures into drawing on the pages of a
// surface.Registry.
//
// A gesture is a press, any number of moves and a release. Shape tools (line,
// rectangle, circle) preview: the press snapshots the page, and every move
// restores the snapshot before drawing the shape again, so only the final
// shape remains. The pen draws each new segment permanently as points
// arrive, skipping points closer than the decimation threshold to the last
// kept one.
package stroke
