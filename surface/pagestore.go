// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"slices"
	"sync"

	"github.com/gogpu/ggdraw/internal/logging"
	"github.com/gogpu/ggdraw/render"
)

// PageStore holds the pages of one key.
//
// PageStore is safe for concurrent use. Its methods enter the graphics scope
// when they allocate or release surfaces and must not be called from inside
// one.
type PageStore struct {
	mu      sync.RWMutex
	env     *env
	key     string
	pages   map[int]*Surface
	current int
	closed  bool
}

// NewPageStore creates a page store with page 0 allocated.
func NewPageStore(dev render.Device, opts ...Option) (*PageStore, error) {
	return newPageStore(newEnv(dev, opts), "")
}

func newPageStore(e *env, key string) (*PageStore, error) {
	ps := &PageStore{
		env:   e,
		key:   key,
		pages: make(map[int]*Surface),
	}
	if err := ps.addPage(0); err != nil {
		return nil, err
	}
	return ps, nil
}

// AddPage allocates page idx. It succeeds without change when the page
// exists and returns false when allocation fails.
func (ps *PageStore) AddPage(idx int) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return false
	}
	return ps.addPage(idx) == nil
}

func (ps *PageStore) addPage(idx int) error {
	if _, ok := ps.pages[idx]; ok {
		return nil
	}
	var s *Surface
	err := render.WithGraphics(ps.env.dev, func() error {
		var err error
		s, err = newSurface(ps.env)
		return err
	})
	if err != nil {
		logging.Logger().Warn("surface: page allocation failed",
			"key", ps.key, "page", idx, "error", err)
		return &PageError{Key: ps.key, Page: idx, Err: err}
	}
	ps.pages[idx] = s
	logging.Logger().Info("surface: page added", "key", ps.key, "page", idx)
	return nil
}

// RemovePage releases page idx. Removing a missing page succeeds.
func (ps *PageStore) RemovePage(idx int) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	s, ok := ps.pages[idx]
	if !ok {
		return true
	}
	delete(ps.pages, idx)
	closeSurfaces(ps.env.dev, s)
	logging.Logger().Info("surface: page removed", "key", ps.key, "page", idx)
	return true
}

// ReplacePage swaps page idx for a fresh, empty surface. The new surface is
// allocated before the old one is released, so the page is never missing.
// A missing page is added. It returns false, leaving the page untouched,
// when allocation fails.
func (ps *PageStore) ReplacePage(idx int) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return false
	}
	var s *Surface
	err := render.WithGraphics(ps.env.dev, func() error {
		var err error
		s, err = newSurface(ps.env)
		return err
	})
	if err != nil {
		logging.Logger().Warn("surface: page allocation failed",
			"key", ps.key, "page", idx, "error", err)
		return false
	}
	old := ps.pages[idx]
	ps.pages[idx] = s
	if old != nil {
		closeSurfaces(ps.env.dev, old)
	}
	logging.Logger().Info("surface: page replaced", "key", ps.key, "page", idx)
	return true
}

// SetCurrentPage selects page idx, allocating it when missing. It returns
// false, leaving the selection unchanged, when allocation fails.
func (ps *PageStore) SetCurrentPage(idx int) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return false
	}
	if err := ps.addPage(idx); err != nil {
		return false
	}
	ps.current = idx
	return true
}

// CurrentPage returns the selected page index.
func (ps *PageStore) CurrentPage() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.current
}

// PageIndexTexture returns the surface of page idx, or nil.
func (ps *PageStore) PageIndexTexture(idx int) *Surface {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.pages[idx]
}

// PageSize returns the number of pages.
func (ps *PageStore) PageSize() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.pages)
}

// Pages returns the page indices in ascending order.
func (ps *PageStore) Pages() []int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	idx := make([]int, 0, len(ps.pages))
	for i := range ps.pages {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return idx
}

// Close releases every page. Further allocations fail.
func (ps *PageStore) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return nil
	}
	ps.closed = true
	surfaces := make([]*Surface, 0, len(ps.pages))
	for _, s := range ps.pages {
		surfaces = append(surfaces, s)
	}
	clear(ps.pages)
	closeSurfaces(ps.env.dev, surfaces...)
	return nil
}

func closeSurfaces(dev render.Device, surfaces ...*Surface) {
	if len(surfaces) == 0 {
		return
	}
	_ = render.WithGraphics(dev, func() error {
		for _, s := range surfaces {
			s.Close()
		}
		return nil
	})
}
