// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/ggdraw/render"
	"golang.org/x/text/unicode/norm"
)

// Registry maps keys to page stores and tracks the current key and page.
//
// Keys are created on first reference and never removed implicitly. The
// registry also carries the state shared by all pages: canvas size and
// stroke line width.
//
// Registry is safe for concurrent use.
//
// Example usage:
//
//	r := surface.NewRegistry(dev, surface.WithCanvasSize(1920, 1080))
//	defer r.Close()
//
//	r.SetCurrentKey("slides.pdf")
//	r.SetCurrentPage(3)
//	s := r.CurrentSurface()
type Registry struct {
	mu        sync.RWMutex
	env       *env
	stores    map[string]*PageStore
	current   string
	page      int
	lineWidth int
	closed    bool
}

// NewRegistry creates an empty registry. The current key is "" and is not
// allocated until first used.
func NewRegistry(dev render.Device, opts ...Option) *Registry {
	return &Registry{
		env:    newEnv(dev, opts),
		stores: make(map[string]*PageStore),
	}
}

// Canvas returns the canvas shared by every page.
func (r *Registry) Canvas() *Canvas {
	return r.env.canvas
}

// normalize maps key to its stored form.
func (r *Registry) normalize(key string) string {
	if r.env.normalize {
		return norm.NFC.String(key)
	}
	return key
}

// HasKey reports whether key has a page store.
func (r *Registry) HasKey(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.stores[r.normalize(key)]
	return ok
}

// AddKey creates the page store of key with page 0. It succeeds without
// change when the key exists and returns false when allocation fails, in
// which case no store is left behind.
func (r *Registry) AddKey(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.addKey(r.normalize(key))
	return err == nil
}

func (r *Registry) addKey(key string) (*PageStore, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if ps, ok := r.stores[key]; ok {
		return ps, nil
	}
	ps, err := newPageStore(r.env, key)
	if err != nil {
		return nil, err
	}
	r.stores[key] = ps
	logging.Logger().Info("surface: key added", "key", key)
	return ps, nil
}

// RemoveKey releases every page of key. Removing a missing key succeeds.
func (r *Registry) RemoveKey(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key = r.normalize(key)
	ps, ok := r.stores[key]
	if !ok {
		return true
	}
	delete(r.stores, key)
	_ = ps.Close()
	logging.Logger().Info("surface: key removed", "key", key)
	return true
}

// SetCurrentKey selects key, creating it when missing, and restores the
// page last selected under it. It returns false when the key could not be
// created; the key is still selected so later page selection retries.
func (r *Registry) SetCurrentKey(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key = r.normalize(key)
	r.current = key
	ps, err := r.addKey(key)
	if err != nil {
		r.page = 0
		return false
	}
	r.page = ps.CurrentPage()
	return true
}

// CurrentKey returns the selected key.
func (r *Registry) CurrentKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrentPage selects page idx of the current key, creating the key and
// the page when missing. It returns false when allocation fails.
func (r *Registry) SetCurrentPage(idx int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ps, err := r.addKey(r.current)
	if err != nil {
		return false
	}
	if !ps.SetCurrentPage(idx) {
		return false
	}
	r.page = idx
	return true
}

// CurrentPage returns the selected page of the current key, or -1 when the
// current key has no page store.
func (r *Registry) CurrentPage() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.stores[r.current]; !ok {
		return -1
	}
	return r.page
}

// AddPage allocates page idx of key. It returns false for an unknown key.
func (r *Registry) AddPage(key string, idx int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps, ok := r.stores[r.normalize(key)]
	if !ok {
		return false
	}
	return ps.AddPage(idx)
}

// RemovePage releases page idx of key. Unknown keys and pages succeed.
func (r *Registry) RemovePage(key string, idx int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps, ok := r.stores[r.normalize(key)]
	if !ok {
		return true
	}
	return ps.RemovePage(idx)
}

// ReplacePage swaps page idx of key for an empty page without a window in
// which the page is missing. It returns false for an unknown key.
func (r *Registry) ReplacePage(key string, idx int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps, ok := r.stores[r.normalize(key)]
	if !ok {
		return false
	}
	return ps.ReplacePage(idx)
}

// PageTexture returns the surface of page idx of key, or nil.
func (r *Registry) PageTexture(key string, idx int) *Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps, ok := r.stores[r.normalize(key)]
	if !ok {
		return nil
	}
	return ps.PageIndexTexture(idx)
}

// CurrentSurface returns the surface of the current key and page, or nil.
func (r *Registry) CurrentSurface() *Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps, ok := r.stores[r.current]
	if !ok {
		return nil
	}
	return ps.PageIndexTexture(r.page)
}

// PageSize returns the number of pages of key, 0 for an unknown key.
func (r *Registry) PageSize(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps, ok := r.stores[r.normalize(key)]
	if !ok {
		return 0
	}
	return ps.PageSize()
}

// Store returns the page store of key, or nil.
func (r *Registry) Store(key string) *PageStore {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stores[r.normalize(key)]
}

// UpdateCanvasSize sets the canvas size. Page targets pick up the new size
// the next time they are drawn; their content is cleared then.
func (r *Registry) UpdateCanvasSize(width, height int) {
	r.env.canvas.Set(width, height)
}

// CanvasSize returns the canvas size.
func (r *Registry) CanvasSize() (width, height int) {
	return r.env.canvas.Size()
}

// SetLineWidth sets the stroke line width.
func (r *Registry) SetLineWidth(w int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lineWidth = w
}

// LineWidth returns the stroke line width.
func (r *Registry) LineWidth() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lineWidth
}

// KeyInfo returns a snapshot mapping every key to its selected page.
func (r *Registry) KeyInfo() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info := make(map[string]int, len(r.stores))
	for key, ps := range r.stores {
		info[key] = ps.CurrentPage()
	}
	return info
}

// Keys returns the keys in ascending order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.stores))
}

// Close releases every page store. Further key creation fails.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	for _, ps := range r.stores {
		errs = append(errs, ps.Close())
	}
	clear(r.stores)
	return errors.Join(errs...)
}
