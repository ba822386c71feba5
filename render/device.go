// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"

	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider. A host passes it to
// NewSoftwareDevice with WithHostDevice so output targets match the host's
// surface format.
type DeviceHandle = gpucontext.DeviceProvider

// Device is the graphics capability set consumed by the engine.
//
// All methods except Enter, Leave and Capabilities must be called inside a
// graphics scope. Drawing methods act on the most recently begun render
// target.
type Device interface {
	// Enter acquires the exclusive graphics context.
	Enter()

	// Leave releases the graphics context acquired by Enter.
	Leave()

	// Capabilities describes the device limits.
	Capabilities() DeviceCapabilities

	// CreateTexture creates a width x height texture. pixels may be nil for
	// a transparent texture; otherwise it holds at least width*height*4
	// bytes in the given format.
	CreateTexture(width, height int, format gputypes.TextureFormat, pixels []byte) (Texture, error)

	// CreateRenderTarget creates a render target and allocates its backing
	// texture when width and height are positive.
	CreateRenderTarget(format gputypes.TextureFormat, width, height int) (RenderTarget, error)

	// CopyTexture copies src into dst. Both must have the same size.
	CopyTexture(dst, src Texture) error

	// CopyTextureRegion copies the width x height region of src at
	// (srcX, srcY) into dst at (dstX, dstY), clipped to both textures.
	CopyTextureRegion(dst Texture, dstX, dstY int, src Texture, srcX, srcY, width, height int) error

	// Ortho sets the projection of the bound target: canvas coordinates
	// [left,right]x[top,bottom] map onto the whole target. near and far
	// are accepted for API symmetry with 3D devices.
	Ortho(left, right, top, bottom, near, far float32)

	// Clear fills the whole bound target with c, replacing its content.
	Clear(c color.Color) error

	// DrawMesh rasterizes mesh into the bound target with a solid color.
	DrawMesh(mesh geom.Mesh, c color.Color) error

	// DrawSprite draws tex stretched to width x height at the origin of
	// the bound target.
	DrawSprite(tex Texture, width, height int) error
}

// DeviceCapabilities describes the limits of a device.
type DeviceCapabilities struct {
	// MaxTextureSize is the maximum texture dimension supported.
	// Zero means unlimited.
	MaxTextureSize int

	// VendorName is the device vendor name.
	VendorName string

	// DeviceName is the device name.
	DeviceName string
}

// Errors returned by devices.
var (
	// ErrNoGraphicsContext is returned when a device method is called
	// outside Enter/Leave.
	ErrNoGraphicsContext = errors.New("render: graphics context not entered")

	// ErrNoTarget is returned when drawing without a bound render target.
	ErrNoTarget = errors.New("render: no render target bound")

	// ErrBeginFailed is returned by callers when a render target could not
	// be bound.
	ErrBeginFailed = errors.New("render: render target begin failed")

	// ErrTextureTooLarge is returned when a texture exceeds the device's
	// maximum texture size.
	ErrTextureTooLarge = errors.New("render: texture too large")

	// ErrInvalidDimensions is returned for negative texture dimensions.
	ErrInvalidDimensions = errors.New("render: invalid dimensions")

	// ErrUnsupportedFormat is returned for texture formats the device
	// cannot store.
	ErrUnsupportedFormat = errors.New("render: unsupported texture format")

	// ErrSizeMismatch is returned by CopyTexture for textures of
	// different sizes.
	ErrSizeMismatch = errors.New("render: texture size mismatch")

	// ErrForeignTexture is returned when a texture created by another
	// device is passed in.
	ErrForeignTexture = errors.New("render: texture belongs to another device")

	// ErrDestroyed is returned when a destroyed texture is used.
	ErrDestroyed = errors.New("render: texture destroyed")
)

// WithGraphics runs fn inside a graphics scope of dev. Leave is called on
// every exit path, including panics.
func WithGraphics(dev Device, fn func() error) error {
	dev.Enter()
	defer dev.Leave()
	return fn()
}
