// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/ggdraw/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageStore(t *testing.T) {
	dev := render.NewSoftwareDevice()
	ps, err := NewPageStore(dev, WithCanvasSize(32, 32))
	require.NoError(t, err)

	assert.Equal(t, 1, ps.PageSize())
	assert.Equal(t, 0, ps.CurrentPage())
	assert.NotNil(t, ps.PageIndexTexture(0))

	tests := []struct {
		name  string
		op    func() bool
		pages []int
	}{
		{"add", func() bool { return ps.AddPage(3) }, []int{0, 3}},
		{"add existing", func() bool { return ps.AddPage(3) }, []int{0, 3}},
		{"select new", func() bool { return ps.SetCurrentPage(1) }, []int{0, 1, 3}},
		{"remove", func() bool { return ps.RemovePage(3) }, []int{0, 1}},
		{"remove missing", func() bool { return ps.RemovePage(9) }, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.op())
			assert.Equal(t, tt.pages, ps.Pages())
		})
	}
	assert.Equal(t, 1, ps.CurrentPage())
	assert.Equal(t, 2, dev.LiveTextures())

	require.NoError(t, ps.Close())
	assert.Equal(t, 0, dev.LiveTextures())
	assert.Zero(t, ps.PageSize())
	assert.False(t, ps.AddPage(0))
	assert.False(t, ps.SetCurrentPage(0))
}

func TestNewPageStoreAllocationFailure(t *testing.T) {
	dev := render.NewSoftwareDevice(render.WithMaxTextureSize(16))
	_, err := NewPageStore(dev, WithCanvasSize(32, 32))

	var pageErr *PageError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, 0, pageErr.Page)
	assert.ErrorIs(t, err, render.ErrTextureTooLarge)
	assert.Equal(t, 0, dev.LiveTextures())
}
