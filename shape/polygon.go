// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	render "github.com/sinsinkun/webgpu-render"
)

// Quad returns a rectangle of the given size in the x-y plane,
// centered on the origin and facing +z.
func Quad(width, height float32) render.Geometry {
	hx, hy := width/2, height/2
	ge := render.Geometry{}
	quad(&ge,
		mgl32.Vec3{-hx, -hy, 0}, mgl32.Vec3{hx, -hy, 0},
		mgl32.Vec3{hx, hy, 0}, mgl32.Vec3{-hx, hy, 0},
		mgl32.Vec3{0, 0, 1})
	return ge
}

// Plane returns a ground rectangle of the given size in the x-z
// plane, centered on the origin and facing +y, with uv (0,0) at
// the -x, +z corner.
func Plane(width, depth float32) render.Geometry {
	hx, hz := width/2, depth/2
	ge := render.Geometry{}
	quad(&ge,
		mgl32.Vec3{-hx, 0, hz}, mgl32.Vec3{hx, 0, hz},
		mgl32.Vec3{hx, 0, -hz}, mgl32.Vec3{-hx, 0, -hz},
		mgl32.Vec3{0, 1, 0})
	return ge
}

// RegularPolygon returns a regular polygon with the given number of
// sides (minimum 3) inscribed in the given radius, in the x-y plane
// facing +z, as a fan of triangles around the center. The first
// vertex is at the top. UVs map the circumscribing square.
func RegularPolygon(radius float32, sides int) render.Geometry {
	if sides < 3 {
		sides = 3
	}
	ge := render.Geometry{}
	norm := mgl32.Vec3{0, 0, 1}
	center := mgl32.Vec3{}
	cuv := mgl32.Vec2{0.5, 0.5}
	for i := range sides {
		a0 := math32.Pi/2 + 2*math32.Pi*float32(i)/float32(sides)
		a1 := math32.Pi/2 + 2*math32.Pi*float32(i+1)/float32(sides)
		p0 := mgl32.Vec3{radius * math32.Cos(a0), radius * math32.Sin(a0), 0}
		p1 := mgl32.Vec3{radius * math32.Cos(a1), radius * math32.Sin(a1), 0}
		ge.Positions = append(ge.Positions, center, p0, p1)
		ge.UVs = append(ge.UVs, cuv, polyUV(p0, radius), polyUV(p1, radius))
		ge.Normals = append(ge.Normals, norm, norm, norm)
	}
	return ge
}

// polyUV maps a point within the circumscribing square of the given
// radius to [0,1] uv space.
func polyUV(p mgl32.Vec3, radius float32) mgl32.Vec2 {
	return mgl32.Vec2{0.5 + p.X()/(2*radius), 0.5 + p.Y()/(2*radius)}
}
