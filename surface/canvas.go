// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "sync/atomic"

// Canvas is the canvas size shared by every surface of a registry.
//
// It is read without locks so surfaces can size their targets while the
// registry or a page store is locked.
type Canvas struct {
	size atomic.Uint64
}

// NewCanvas creates a canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Set(width, height)
	return c
}

// Set updates the canvas size. Negative values are stored as zero.
func (c *Canvas) Set(width, height int) {
	w := uint64(uint32(max(width, 0)))
	h := uint64(uint32(max(height, 0)))
	c.size.Store(w<<32 | h)
}

// Size returns the canvas width and height.
func (c *Canvas) Size() (width, height int) {
	v := c.size.Load()
	return int(uint32(v >> 32)), int(uint32(v))
}
