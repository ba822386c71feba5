// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/render"
	"github.com/gogpu/gputypes"
)

// Option configures a Registry, PageStore or Surface during creation.
type Option func(*options)

type options struct {
	format    gputypes.TextureFormat
	canvas    *Canvas
	threshold float32
	normalize bool
}

func defaultOptions() options {
	return options{
		format:    render.DefaultFormat,
		threshold: geom.DefaultDecimationThreshold,
	}
}

// WithFormat sets the texture format of page render targets.
// Default: render.DefaultFormat.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithCanvas shares an existing canvas.
func WithCanvas(c *Canvas) Option {
	return func(o *options) {
		o.canvas = c
	}
}

// WithCanvasSize sets the initial canvas size. Ignored when WithCanvas is
// also given.
func WithCanvasSize(width, height int) Option {
	return func(o *options) {
		if o.canvas == nil {
			o.canvas = NewCanvas(width, height)
		}
	}
}

// WithDecimationThreshold sets the minimum distance in pixels between
// retained freehand points. Default: geom.DefaultDecimationThreshold.
func WithDecimationThreshold(px float32) Option {
	return func(o *options) {
		o.threshold = px
	}
}

// WithKeyNormalization makes the registry treat keys that differ only in
// Unicode composition as the same key. Keys are stored in NFC form.
func WithKeyNormalization(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}

// env is the state shared by a registry and everything it creates.
type env struct {
	dev       render.Device
	format    gputypes.TextureFormat
	canvas    *Canvas
	threshold float32
	normalize bool
}

func newEnv(dev render.Device, opts []Option) *env {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.canvas == nil {
		o.canvas = NewCanvas(0, 0)
	}
	return &env{
		dev:       dev,
		format:    o.format,
		canvas:    o.canvas,
		threshold: o.threshold,
		normalize: o.normalize,
	}
}
