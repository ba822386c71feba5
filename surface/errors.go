// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"strconv"
)

// Errors.
var (
	// ErrClosed is returned when a closed surface, page store or registry is
	// used.
	ErrClosed = errors.New("surface: closed")

	// ErrPreviewActive is returned by BeginPreview when a preview is already
	// in progress.
	ErrPreviewActive = errors.New("surface: preview already active")
)

// PageError reports a page that could not be allocated.
type PageError struct {
	Key  string
	Page int
	Err  error
}

func (e *PageError) Error() string {
	if e.Key == "" {
		return "surface: page " + strconv.Itoa(e.Page) + ": " + e.Err.Error()
	}
	return "surface: key " + e.Key + " page " + strconv.Itoa(e.Page) + ": " + e.Err.Error()
}

func (e *PageError) Unwrap() error { return e.Err }
