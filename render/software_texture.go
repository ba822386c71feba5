// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/gputypes"
)

// softTexture is a texture backed by an *image.RGBA.
type softTexture struct {
	dev       *SoftwareDevice
	format    gputypes.TextureFormat
	img       *image.RGBA
	destroyed bool
}

func (t *softTexture) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dx()
}

func (t *softTexture) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dy()
}

func (t *softTexture) Format() gputypes.TextureFormat { return t.format }

func (t *softTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.img = nil
	t.dev.live.Add(-1)
}

// upload copies pixels in the texture's format into the RGBA storage.
func (t *softTexture) upload(pixels []byte) error {
	need := len(t.img.Pix)
	if len(pixels) < need {
		return fmt.Errorf("%w: pixel buffer has %d bytes, need %d",
			ErrInvalidDimensions, len(pixels), need)
	}
	copy(t.img.Pix, pixels[:need])
	if t.format == gputypes.TextureFormatBGRA8Unorm {
		pix := t.img.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
	}
	return nil
}

// softTarget is a render target of the software device.
type softTarget struct {
	dev       *SoftwareDevice
	format    gputypes.TextureFormat
	tex       *softTexture
	active    bool
	rendered  bool
	destroyed bool
}

func (t *softTarget) Format() gputypes.TextureFormat { return t.format }

func (t *softTarget) Begin(width, height int) bool {
	d := t.dev
	if t.destroyed || t.active || t.rendered || width <= 0 || height <= 0 || !d.entered.Load() {
		return false
	}
	if t.tex == nil || t.tex.Width() != width || t.tex.Height() != height {
		tex, err := d.allocate(width, height, t.format)
		if err != nil {
			return false
		}
		if t.tex != nil {
			logging.Logger().Debug("render: target resized",
				"from_width", t.tex.Width(), "from_height", t.tex.Height(),
				"width", width, "height", height)
			t.tex.Destroy()
		}
		t.tex = tex
	}
	t.active = true
	d.stack = append(d.stack, binding{target: t, proj: geom.Identity()})
	return true
}

func (t *softTarget) End() {
	if !t.active {
		return
	}
	t.active = false
	t.rendered = true
	d := t.dev
	for i := len(d.stack) - 1; i >= 0; i-- {
		if d.stack[i].target == t {
			d.stack = append(d.stack[:i], d.stack[i+1:]...)
			break
		}
	}
}

func (t *softTarget) Texture() Texture {
	if t.tex == nil {
		return nil
	}
	return t.tex
}

func (t *softTarget) Reset() {
	t.rendered = false
}

func (t *softTarget) Destroy() {
	if t.destroyed {
		return
	}
	t.End()
	t.destroyed = true
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
}
