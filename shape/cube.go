// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"github.com/go-gl/mathgl/mgl32"
	render "github.com/sinsinkun/webgpu-render"
)

// Box returns a box of the given side lengths centered on the
// origin: 6 faces of 2 triangles each, 36 vertices, with outward
// per-face normals and the full uv range on every face.
func Box(width, height, depth float32) render.Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	ge := render.Geometry{}
	// front +z
	quad(&ge,
		mgl32.Vec3{-hx, -hy, hz}, mgl32.Vec3{hx, -hy, hz},
		mgl32.Vec3{hx, hy, hz}, mgl32.Vec3{-hx, hy, hz},
		mgl32.Vec3{0, 0, 1})
	// back -z
	quad(&ge,
		mgl32.Vec3{hx, -hy, -hz}, mgl32.Vec3{-hx, -hy, -hz},
		mgl32.Vec3{-hx, hy, -hz}, mgl32.Vec3{hx, hy, -hz},
		mgl32.Vec3{0, 0, -1})
	// right +x
	quad(&ge,
		mgl32.Vec3{hx, -hy, hz}, mgl32.Vec3{hx, -hy, -hz},
		mgl32.Vec3{hx, hy, -hz}, mgl32.Vec3{hx, hy, hz},
		mgl32.Vec3{1, 0, 0})
	// left -x
	quad(&ge,
		mgl32.Vec3{-hx, -hy, -hz}, mgl32.Vec3{-hx, -hy, hz},
		mgl32.Vec3{-hx, hy, hz}, mgl32.Vec3{-hx, hy, -hz},
		mgl32.Vec3{-1, 0, 0})
	// top +y
	quad(&ge,
		mgl32.Vec3{-hx, hy, hz}, mgl32.Vec3{hx, hy, hz},
		mgl32.Vec3{hx, hy, -hz}, mgl32.Vec3{-hx, hy, -hz},
		mgl32.Vec3{0, 1, 0})
	// bottom -y
	quad(&ge,
		mgl32.Vec3{-hx, -hy, -hz}, mgl32.Vec3{hx, -hy, -hz},
		mgl32.Vec3{hx, -hy, hz}, mgl32.Vec3{-hx, -hy, hz},
		mgl32.Vec3{0, -1, 0})
	return ge
}

// Cube returns a [Box] with all sides of the given size.
func Cube(size float32) render.Geometry {
	return Box(size, size, size)
}
