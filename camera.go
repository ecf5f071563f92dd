// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraKinds are the supported projection kinds.
type CameraKinds int32

const (
	// Orthographic projects a symmetric box centered on the origin,
	// sized from the output dimensions in world units, so one world
	// unit is one pixel at the origin plane.
	Orthographic CameraKinds = iota

	// Perspective projects with a vertical field of view and the
	// output aspect ratio.
	Perspective
)

// Camera specifies the projection used when updating an object.
// A nil Camera in an [ObjectUpdate] means the orthographic default.
// The eye position comes from [System.CameraPosition]; orientation
// is not modeled, so the view is a pure translation.
type Camera struct {
	// Kind selects orthographic or perspective projection.
	Kind CameraKinds

	// FOV is the vertical field of view in degrees, for Perspective.
	FOV float32

	// Near and Far are the clip plane distances, for Perspective.
	Near, Far float32
}

// NewPerspectiveCamera returns a perspective camera with the given
// vertical field of view in degrees and near / far clip distances.
func NewPerspectiveCamera(fov, near, far float32) *Camera {
	return &Camera{Kind: Perspective, FOV: fov, Near: near, Far: far}
}

// NewOrthographicCamera returns the default orthographic camera.
func NewOrthographicCamera() *Camera {
	return &Camera{Kind: Orthographic}
}

// orthoDepth is the half depth range of the orthographic box.
const orthoDepth = 1000

// glToWebGPU maps GL clip space to WebGPU clip space, compressing
// z from [-1,1] to [0,1]. mgl32 projections produce GL clip space.
var glToWebGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Projection returns the projection matrix for the given output size
// in pixels, composed with the WebGPU clip-space correction.
// The projection depends only on the camera parameters and the size.
func (cm *Camera) Projection(size image.Point) mgl32.Mat4 {
	if cm == nil || cm.Kind == Orthographic {
		w := float32(size.X) / 2
		h := float32(size.Y) / 2
		return glToWebGPU.Mul4(mgl32.Ortho(-w, w, -h, h, -orthoDepth, orthoDepth))
	}
	aspect := float32(1.3)
	if size.Y > 0 {
		aspect = float32(size.X) / float32(size.Y)
	}
	return glToWebGPU.Mul4(mgl32.Perspective(mgl32.DegToRad(cm.FOV), aspect, cm.Near, cm.Far))
}

// ViewMatrix returns the view matrix for the given eye position,
// a pure translation by the negated position.
func ViewMatrix(eye mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z())
}
