// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// SoftwareOption configures a SoftwareDevice during creation.
type SoftwareOption func(*softwareOptions)

type softwareOptions struct {
	maxTextureSize int
	host           DeviceHandle
}

// WithMaxTextureSize limits texture dimensions. Allocations beyond the limit
// fail with ErrTextureTooLarge. Zero means unlimited.
func WithMaxTextureSize(n int) SoftwareOption {
	return func(o *softwareOptions) {
		o.maxTextureSize = max(n, 0)
	}
}

// WithHostDevice attaches the host's device handle. Its surface format
// becomes the device's PreferredFormat when the software device can store it.
func WithHostDevice(h DeviceHandle) SoftwareOption {
	return func(o *softwareOptions) {
		o.host = h
	}
}

// SoftwareDevice is a CPU implementation of Device.
//
// Textures are stored as *image.RGBA regardless of their reported format.
// Meshes are covered with golang.org/x/image/vector: all triangles of one
// mesh accumulate into a single coverage mask, so triangles sharing an edge
// leave no seam.
//
// SoftwareDevice is safe for concurrent use; every operation is serialized
// by the graphics context taken in Enter.
type SoftwareDevice struct {
	mu      sync.Mutex
	entered atomic.Bool
	opts    softwareOptions

	// stack holds the begun render targets, innermost last.
	stack []binding
	ras   vector.Rasterizer

	live atomic.Int64
}

// binding is a begun render target and its current projection.
type binding struct {
	target *softTarget
	proj   geom.Matrix
}

// NewSoftwareDevice creates a software device.
func NewSoftwareDevice(opts ...SoftwareOption) *SoftwareDevice {
	var o softwareOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &SoftwareDevice{opts: o}
}

// Enter acquires the graphics context.
func (d *SoftwareDevice) Enter() {
	d.mu.Lock()
	d.entered.Store(true)
}

// Leave releases the graphics context. Render targets still begun are
// unbound.
func (d *SoftwareDevice) Leave() {
	if n := len(d.stack); n > 0 {
		logging.Logger().Warn("render: leaving graphics with bound targets", "count", n)
		for _, b := range d.stack {
			b.target.active = false
		}
		d.stack = d.stack[:0]
	}
	d.entered.Store(false)
	d.mu.Unlock()
}

// Capabilities returns the device limits.
func (d *SoftwareDevice) Capabilities() DeviceCapabilities {
	return DeviceCapabilities{
		MaxTextureSize: d.opts.maxTextureSize,
		VendorName:     "gogpu",
		DeviceName:     "software",
	}
}

// PreferredFormat returns the host surface format when one was attached and
// is supported, DefaultFormat otherwise.
func (d *SoftwareDevice) PreferredFormat() gputypes.TextureFormat {
	if d.opts.host != nil {
		if f := d.opts.host.SurfaceFormat(); supportedFormat(f) {
			return f
		}
	}
	return DefaultFormat
}

// LiveTextures returns the number of textures not yet destroyed, including
// render target backing textures.
func (d *SoftwareDevice) LiveTextures() int {
	return int(d.live.Load())
}

// CreateTexture creates a texture, optionally initialized from pixels.
func (d *SoftwareDevice) CreateTexture(width, height int, format gputypes.TextureFormat, pixels []byte) (Texture, error) {
	if !d.entered.Load() {
		return nil, ErrNoGraphicsContext
	}
	tex, err := d.allocate(width, height, format)
	if err != nil {
		return nil, err
	}
	if pixels != nil {
		if err := tex.upload(pixels); err != nil {
			tex.Destroy()
			return nil, err
		}
	}
	return tex, nil
}

// CreateRenderTarget creates a render target. The backing texture is
// allocated now when width and height are positive, otherwise on Begin.
func (d *SoftwareDevice) CreateRenderTarget(format gputypes.TextureFormat, width, height int) (RenderTarget, error) {
	if !d.entered.Load() {
		return nil, ErrNoGraphicsContext
	}
	if !supportedFormat(format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	t := &softTarget{dev: d, format: format}
	if width > 0 && height > 0 {
		tex, err := d.allocate(width, height, format)
		if err != nil {
			return nil, err
		}
		t.tex = tex
	}
	return t, nil
}

// CopyTexture copies src into dst.
func (d *SoftwareDevice) CopyTexture(dst, src Texture) error {
	if !d.entered.Load() {
		return ErrNoGraphicsContext
	}
	dt, err := d.texOf(dst)
	if err != nil {
		return err
	}
	st, err := d.texOf(src)
	if err != nil {
		return err
	}
	if dt.Width() != st.Width() || dt.Height() != st.Height() {
		return fmt.Errorf("%w: %dx%d <- %dx%d", ErrSizeMismatch,
			dt.Width(), dt.Height(), st.Width(), st.Height())
	}
	copy(dt.img.Pix, st.img.Pix)
	return nil
}

// CopyTextureRegion copies a rectangle of src into dst.
func (d *SoftwareDevice) CopyTextureRegion(dst Texture, dstX, dstY int, src Texture, srcX, srcY, width, height int) error {
	if !d.entered.Load() {
		return ErrNoGraphicsContext
	}
	dt, err := d.texOf(dst)
	if err != nil {
		return err
	}
	st, err := d.texOf(src)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	sr := image.Rect(srcX, srcY, srcX+width, srcY+height).Intersect(st.img.Bounds())
	delta := image.Pt(dstX-srcX, dstY-srcY)
	dr := sr.Add(delta).Intersect(dt.img.Bounds())
	if dr.Empty() {
		return nil
	}
	draw.Draw(dt.img, dr, st.img, dr.Min.Sub(delta), draw.Src)
	return nil
}

// Ortho sets the projection of the innermost bound target.
func (d *SoftwareDevice) Ortho(left, right, top, bottom, _, _ float32) {
	if !d.entered.Load() || len(d.stack) == 0 {
		return
	}
	b := &d.stack[len(d.stack)-1]
	img := b.target.tex.img
	b.proj = geom.Ortho(left, right, top, bottom, img.Bounds().Dx(), img.Bounds().Dy())
}

// Clear fills the innermost bound target with c.
func (d *SoftwareDevice) Clear(c color.Color) error {
	if !d.entered.Load() {
		return ErrNoGraphicsContext
	}
	if len(d.stack) == 0 {
		return ErrNoTarget
	}
	img := d.stack[len(d.stack)-1].target.tex.img
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// DrawMesh rasterizes mesh into the innermost bound target.
func (d *SoftwareDevice) DrawMesh(mesh geom.Mesh, c color.Color) error {
	if !d.entered.Load() {
		return ErrNoGraphicsContext
	}
	if len(d.stack) == 0 {
		return ErrNoTarget
	}
	if mesh.Empty() {
		return nil
	}
	b := d.stack[len(d.stack)-1]
	tr := b.proj
	if m := mesh.Matrix(); !m.IsIdentity() {
		tr = tr.Multiply(m)
	}

	var tris []geom.Point
	switch mesh.Topology {
	case geom.TriangleList:
		n := len(mesh.Vertices) / 3 * 3
		tris = make([]geom.Point, n)
		for i, v := range mesh.Vertices[:n] {
			tris[i] = tr.TransformPoint(v)
		}
	case geom.LineStrip:
		// Line strips are one pixel wide in target space.
		tris = make([]geom.Point, 0, (len(mesh.Vertices)-1)*6)
		prev := tr.TransformPoint(mesh.Vertices[0])
		for _, v := range mesh.Vertices[1:] {
			p := tr.TransformPoint(v)
			tris = append(tris, geom.ThickLine(prev, p, 1)...)
			prev = p
		}
	default:
		return fmt.Errorf("render: unknown topology %v", mesh.Topology)
	}

	d.fillTriangles(b.target.tex.img, tris, c)
	return nil
}

// DrawSprite draws tex stretched to width x height into the innermost bound
// target.
func (d *SoftwareDevice) DrawSprite(tex Texture, width, height int) error {
	if !d.entered.Load() {
		return ErrNoGraphicsContext
	}
	if len(d.stack) == 0 {
		return ErrNoTarget
	}
	st, err := d.texOf(tex)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	b := d.stack[len(d.stack)-1]
	dst := b.target.tex.img

	p0 := b.proj.TransformPoint(geom.Pt(0, 0))
	p1 := b.proj.TransformPoint(geom.Pt(float32(width), float32(height)))
	dr := image.Rect(
		int(math.Round(float64(p0.X))), int(math.Round(float64(p0.Y))),
		int(math.Round(float64(p1.X))), int(math.Round(float64(p1.Y))),
	)
	if dr.Empty() {
		return nil
	}

	sb := st.img.Bounds()
	if dr.Dx() == sb.Dx() && dr.Dy() == sb.Dy() {
		draw.Draw(dst, dr, st.img, sb.Min, draw.Over)
		return nil
	}
	draw.ApproxBiLinear.Scale(dst, dr, st.img, sb, draw.Over, nil)
	return nil
}

// ReadPixels returns a copy of the texture contents.
func (d *SoftwareDevice) ReadPixels(tex Texture) (*image.RGBA, error) {
	st, err := d.texOf(tex)
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(st.img.Bounds())
	copy(out.Pix, st.img.Pix)
	return out, nil
}

// fillTriangles covers the union of tris with col. Each triangle is turned to
// the same orientation before accumulation so overlapping triangles never
// cancel out.
func (d *SoftwareDevice) fillTriangles(dst *image.RGBA, tris []geom.Point, col color.Color) {
	if len(tris) < 3 {
		return
	}
	bb := geom.BoundsOf(tris)
	r := image.Rect(
		int(math.Floor(float64(bb.Min.X))), int(math.Floor(float64(bb.Min.Y))),
		int(math.Ceil(float64(bb.Max.X))), int(math.Ceil(float64(bb.Max.Y))),
	).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	d.ras.Reset(r.Dx(), r.Dy())
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	drawn := false
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		area := b.Sub(a).Cross(c.Sub(a))
		if area == 0 {
			continue
		}
		if area < 0 {
			b, c = c, b
		}
		d.ras.MoveTo(a.X-ox, a.Y-oy)
		d.ras.LineTo(b.X-ox, b.Y-oy)
		d.ras.LineTo(c.X-ox, c.Y-oy)
		d.ras.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	d.ras.Draw(dst, r, image.NewUniform(col), image.Point{})
}

// allocate creates a texture after validating size and format.
func (d *SoftwareDevice) allocate(width, height int, format gputypes.TextureFormat) (*softTexture, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !supportedFormat(format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if m := d.opts.maxTextureSize; m > 0 && (width > m || height > m) {
		logging.Logger().Warn("render: texture allocation failed",
			"width", width, "height", height, "max", m)
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTextureTooLarge, width, height, m)
	}
	d.live.Add(1)
	return &softTexture{
		dev:    d,
		format: format,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// texOf unwraps a texture created by this device.
func (d *SoftwareDevice) texOf(t Texture) (*softTexture, error) {
	st, ok := t.(*softTexture)
	if !ok || st == nil || st.dev != d {
		return nil, ErrForeignTexture
	}
	if st.destroyed {
		return nil, ErrDestroyed
	}
	return st, nil
}

func supportedFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8Unorm || f == gputypes.TextureFormatBGRA8Unorm
}

// Ensure SoftwareDevice implements Device.
var _ Device = (*SoftwareDevice)(nil)
