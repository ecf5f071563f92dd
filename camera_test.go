// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const standardTol = 1.0e-5

func tolAssertVec4(t *testing.T, want, got mgl32.Vec4) {
	for i := 0; i < 4; i++ {
		assert.InDelta(t, want[i], got[i], standardTol)
	}
}

func TestClipCorrection(t *testing.T) {
	// GL clip z spans [-1,1], WebGPU [0,1]; x and y are untouched
	tolAssertVec4(t, mgl32.Vec4{0, 0, 0, 1}, glToWebGPU.Mul4x1(mgl32.Vec4{0, 0, -1, 1}))
	tolAssertVec4(t, mgl32.Vec4{0, 0, 1, 1}, glToWebGPU.Mul4x1(mgl32.Vec4{0, 0, 1, 1}))
	tolAssertVec4(t, mgl32.Vec4{-1, 1, 0.5, 1}, glToWebGPU.Mul4x1(mgl32.Vec4{-1, 1, 0, 1}))
}

func TestOrthographicProjection(t *testing.T) {
	sz := image.Point{800, 600}
	var nilCam *Camera
	proj := nilCam.Projection(sz)
	assert.Equal(t, NewOrthographicCamera().Projection(sz), proj)

	// one world unit per pixel: the output corner is the clip corner
	tolAssertVec4(t, mgl32.Vec4{0, 0, 0.5, 1}, proj.Mul4x1(mgl32.Vec4{0, 0, 0, 1}))
	tolAssertVec4(t, mgl32.Vec4{1, 1, 0.5, 1}, proj.Mul4x1(mgl32.Vec4{400, 300, 0, 1}))
	tolAssertVec4(t, mgl32.Vec4{-1, -1, 0.5, 1}, proj.Mul4x1(mgl32.Vec4{-400, -300, 0, 1}))

	// depth range covers z in [-1000, 1000]
	assert.InDelta(t, 1, proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1}).Z(), standardTol)
	assert.InDelta(t, 0, proj.Mul4x1(mgl32.Vec4{0, 0, 1000, 1}).Z(), standardTol)
}

func TestPerspectiveProjection(t *testing.T) {
	sz := image.Point{800, 600}
	cm := NewPerspectiveCamera(45, 0.1, 100)
	proj := cm.Projection(sz)

	// near plane lands at depth 0, far plane at depth 1
	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), standardTol)
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	assert.InDelta(t, 1, far.Z()/far.W(), 1.0e-4)

	// projection depends only on camera parameters and output size
	assert.Equal(t, proj, cm.Projection(sz))
	assert.Equal(t, proj, NewPerspectiveCamera(45, 0.1, 100).Projection(sz))
	assert.NotEqual(t, proj, cm.Projection(image.Point{400, 600}))
}

func TestPerspectiveDegenerateSize(t *testing.T) {
	cm := NewPerspectiveCamera(45, 0.1, 100)
	want := glToWebGPU.Mul4(mgl32.Perspective(mgl32.DegToRad(45), 1.3, 0.1, 100))
	assert.Equal(t, want, cm.Projection(image.Point{800, 0}))
}

func TestViewMatrix(t *testing.T) {
	view := ViewMatrix(mgl32.Vec3{1, 2, 3})
	tolAssertVec4(t, mgl32.Vec4{0, 0, 0, 1}, view.Mul4x1(mgl32.Vec4{1, 2, 3, 1}))
	tolAssertVec4(t, mgl32.Vec4{0, 0, -4, 1}, ViewMatrix(mgl32.Vec3{0, 0, 4}).Mul4x1(mgl32.Vec4{0, 0, 0, 1}))
	assert.Equal(t, mgl32.Ident4(), ViewMatrix(mgl32.Vec3{}))
}
