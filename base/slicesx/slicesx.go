// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard [slices] package.
package slicesx

import "slices"

// SetLength sets the length of the given slice,
// re-using and preserving existing values to the extent possible.
// New elements are zero values.
func SetLength[E any](s []E, n int) []E {
	diff := n - len(s)
	if diff > 0 {
		return append(s, make([]E, diff)...)
	}
	if diff < 0 {
		return slices.Delete(s, n, len(s))
	}
	return s
}

// Zero sets all elements of the given slice to the zero value
// of the element type.
func Zero[E any](s []E) {
	var zv E
	for i := range s {
		s[i] = zv
	}
}
