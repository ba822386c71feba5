// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "github.com/gogpu/gputypes"

// Texture is a device-owned 2D image.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Destroy releases the texture. Destroy is idempotent.
	Destroy()
}

// RenderTarget is an offscreen target whose backing texture persists between
// Begin/End pairs.
//
// A target may be begun once per Reset. Begin with a size different from the
// current backing texture recreates it cleared; contents are never scaled.
type RenderTarget interface {
	// Format returns the pixel format of the backing texture.
	Format() gputypes.TextureFormat

	// Begin binds the target for drawing at the given size. It reports
	// false if the target cannot be bound (destroyed, already begun since
	// the last Reset, invalid size, or allocation failure).
	Begin(width, height int) bool

	// End unbinds the target.
	End()

	// Texture returns the backing texture, or nil before the first
	// successful allocation.
	Texture() Texture

	// Reset allows the target to be begun again.
	Reset()

	// Destroy releases the target and its backing texture.
	// Destroy is idempotent.
	Destroy()
}

// DefaultFormat is the format used when neither caller nor host has a
// preference.
const DefaultFormat = gputypes.TextureFormatRGBA8Unorm
