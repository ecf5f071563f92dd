// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates flat triangle-list meshes as
// [render.Geometry], ready for [render.System.AddObject]: positions
// centered on the origin, uvs in [0,1] with (0,0) at the bottom-left
// of the source image, and per-face normals. Nothing is indexed;
// every three positions form one triangle.
package shape

import (
	"github.com/go-gl/mathgl/mgl32"
	render "github.com/sinsinkun/webgpu-render"
)

// quad appends the two triangles covering the quad a, b, c, d,
// given in counter-clockwise order from bottom-left, with the full
// [0,1] uv range and the given normal on every vertex.
func quad(ge *render.Geometry, a, b, c, d, norm mgl32.Vec3) {
	ge.Positions = append(ge.Positions, a, b, c, a, c, d)
	ge.UVs = append(ge.UVs,
		mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1},
		mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1})
	ge.Normals = append(ge.Normals, norm, norm, norm, norm, norm, norm)
}

// Triangle returns the single triangle a, b, c with a flat normal
// from its winding (right-hand rule) and uvs (0,0), (1,0), (0.5,1).
func Triangle(a, b, c mgl32.Vec3) render.Geometry {
	norm := b.Sub(a).Cross(c.Sub(a))
	if norm.Len() > 0 {
		norm = norm.Normalize()
	} else {
		norm = mgl32.Vec3{0, 0, 1}
	}
	return render.Geometry{
		Positions: []mgl32.Vec3{a, b, c},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {0.5, 1}},
		Normals:   []mgl32.Vec3{norm, norm, norm},
	}
}
