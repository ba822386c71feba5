// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggdraw

import (
	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/render"
)

// Option configures a Source during creation.
//
// Example:
//
//	// Default software device
//	src, _ := ggdraw.New()
//
//	// Custom device and a finer freehand path
//	src, _ := ggdraw.New(ggdraw.WithDevice(dev), ggdraw.WithDecimationThreshold(4))
type Option func(*options)

// options holds optional configuration for Source creation.
type options struct {
	device    render.Device
	threshold float32
	normalize bool
	textSize  float64
	onChange  func(key string, page int)
	width     int
	height    int
}

// DefaultTextSize is the text compositing face size in pixels.
const DefaultTextSize = 32

// defaultOptions returns the default source options.
func defaultOptions() options {
	return options{
		threshold: geom.DefaultDecimationThreshold,
		textSize:  DefaultTextSize,
	}
}

// WithDevice sets the graphics device. By default a render.SoftwareDevice is
// created.
func WithDevice(d render.Device) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithDecimationThreshold sets the minimum distance in pixels between kept
// freehand points.
func WithDecimationThreshold(px float32) Option {
	return func(o *options) {
		o.threshold = px
	}
}

// WithKeyNormalization stores keys in Unicode NFC form, so names that differ
// only in composition select the same pages.
func WithKeyNormalization(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}

// WithTextSize sets the face size used by OnTextComposite.
func WithTextSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.textSize = px
		}
	}
}

// WithOnChange registers a callback run after the current key or page
// changed, so the caller can refresh its page selection UI.
func WithOnChange(fn func(key string, page int)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// WithCanvasSize sets the initial canvas size.
func WithCanvasSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}
