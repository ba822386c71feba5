// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggdraw

import (
	"testing"

	"github.com/gogpu/ggdraw/geom"
	"github.com/gogpu/ggdraw/render"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.device != nil {
		t.Error("default device should be nil")
	}
	if o.threshold != geom.DefaultDecimationThreshold {
		t.Errorf("threshold = %v, want %v", o.threshold, geom.DefaultDecimationThreshold)
	}
	if o.textSize != DefaultTextSize {
		t.Errorf("textSize = %v, want %v", o.textSize, DefaultTextSize)
	}
	if o.normalize {
		t.Error("key normalization should be off by default")
	}
}

func TestOptions(t *testing.T) {
	dev := render.NewSoftwareDevice()
	called := false

	o := defaultOptions()
	for _, opt := range []Option{
		WithDevice(dev),
		WithDecimationThreshold(4),
		WithKeyNormalization(true),
		WithTextSize(18),
		WithOnChange(func(string, int) { called = true }),
		WithCanvasSize(640, 480),
	} {
		opt(&o)
	}

	if o.device != dev {
		t.Error("WithDevice did not set the device")
	}
	if o.threshold != 4 {
		t.Errorf("threshold = %v, want 4", o.threshold)
	}
	if !o.normalize {
		t.Error("WithKeyNormalization(true) did not enable normalization")
	}
	if o.textSize != 18 {
		t.Errorf("textSize = %v, want 18", o.textSize)
	}
	if o.width != 640 || o.height != 480 {
		t.Errorf("canvas = %dx%d, want 640x480", o.width, o.height)
	}
	o.onChange("", 0)
	if !called {
		t.Error("WithOnChange did not set the callback")
	}
}

func TestWithTextSizeIgnoresNonPositive(t *testing.T) {
	for _, px := range []float64{0, -3} {
		o := defaultOptions()
		WithTextSize(px)(&o)
		if o.textSize != DefaultTextSize {
			t.Errorf("WithTextSize(%v): textSize = %v, want %v", px, o.textSize, DefaultTextSize)
		}
	}
}
