// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("device lost")
	for _, err := range []error{
		&UnsupportedError{Err: cause},
		&NoAdapterError{Err: cause},
		&SurfaceError{Err: cause},
		&CompileError{Name: "p", Err: cause},
		&SizeMismatchError{Frame: image.Point{1, 1}, Attachment: image.Point{2, 2}, Err: cause},
	} {
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), cause.Error())
	}
}

func TestErrorAsThroughWrap(t *testing.T) {
	wrapped := fmt.Errorf("update failed: %w", &UniformShapeError{Index: 2, Want: 4, Got: 3})
	var use *UniformShapeError
	assert.ErrorAs(t, wrapped, &use)
	assert.Equal(t, 2, use.Index)
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&UnknownPipelineError{Pipeline: 7}).Error(), "7")
	assert.Contains(t, (&UnknownObjectError{Pipeline: 1, Object: 4}).Error(), "4")
	assert.Contains(t, (&DegenerateGeometryError{Count: 2}).Error(), "2")
	assert.Contains(t, (&CapacityExceededError{Pipeline: 0, Max: 8}).Error(), "8")
	assert.Contains(t, (&InvalidTargetError{Target: image.Point{3, 3}}).Error(), "(3,3)")

	// a count mismatch reads differently from a length mismatch
	count := (&UniformShapeError{Index: -1, Want: 2, Got: 1}).Error()
	length := (&UniformShapeError{Index: 0, Want: 4, Got: 3}).Error()
	assert.NotEqual(t, count, length)
	assert.Contains(t, count, "declares")
	assert.Contains(t, length, "floats")

	// without an underlying cause the size mismatch is still descriptive
	plain := (&SizeMismatchError{Frame: image.Point{10, 10}, Attachment: image.Point{20, 20}}).Error()
	assert.Contains(t, plain, "Resize")
}
