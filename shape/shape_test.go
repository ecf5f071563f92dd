// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	render "github.com/sinsinkun/webgpu-render"
	"github.com/stretchr/testify/assert"
)

const meshTol = 1.0e-5

// checkMesh asserts the invariants every generator must hold:
// complete per-vertex data in triangle multiples, uvs in [0,1],
// and unit-length normals.
func checkMesh(t *testing.T, ge render.Geometry, nverts int) {
	t.Helper()
	assert.Equal(t, nverts, ge.NVertex())
	assert.Zero(t, ge.NVertex()%3)
	assert.Equal(t, len(ge.Positions), len(ge.UVs))
	assert.Equal(t, len(ge.Positions), len(ge.Normals))
	for _, uv := range ge.UVs {
		assert.GreaterOrEqual(t, uv.X(), float32(0))
		assert.LessOrEqual(t, uv.X(), float32(1))
		assert.GreaterOrEqual(t, uv.Y(), float32(0))
		assert.LessOrEqual(t, uv.Y(), float32(1))
	}
	for _, n := range ge.Normals {
		assert.InDelta(t, 1, n.Len(), meshTol)
	}
}

func maxAbs(ge render.Geometry) mgl32.Vec3 {
	m := mgl32.Vec3{}
	for _, p := range ge.Positions {
		for i := range 3 {
			if a := mgl32.Abs(p[i]); a > m[i] {
				m[i] = a
			}
		}
	}
	return m
}

func TestCube(t *testing.T) {
	ge := Cube(1)
	checkMesh(t, ge, 36)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, maxAbs(ge))
	// a centered cube sums its positions to the origin
	sum := mgl32.Vec3{}
	for _, p := range ge.Positions {
		sum = sum.Add(p)
	}
	assert.InDelta(t, 0, sum.Len(), meshTol)
	// every face normal is axis-aligned
	for _, n := range ge.Normals {
		assert.InDelta(t, 1, mgl32.Abs(n.X())+mgl32.Abs(n.Y())+mgl32.Abs(n.Z()), meshTol)
	}
}

func TestBox(t *testing.T) {
	ge := Box(2, 4, 6)
	checkMesh(t, ge, 36)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, maxAbs(ge))
}

func TestQuad(t *testing.T) {
	ge := Quad(2, 3)
	checkMesh(t, ge, 6)
	assert.Equal(t, mgl32.Vec3{1, 1.5, 0}, maxAbs(ge))
	for _, p := range ge.Positions {
		assert.Zero(t, p.Z())
	}
	for _, n := range ge.Normals {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, n)
	}
}

func TestPlane(t *testing.T) {
	ge := Plane(2, 2)
	checkMesh(t, ge, 6)
	for _, p := range ge.Positions {
		assert.Zero(t, p.Y())
	}
	for _, n := range ge.Normals {
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, n)
	}
}

func TestTriangle(t *testing.T) {
	ge := Triangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	checkMesh(t, ge, 3)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, ge.Normals[0])

	// winding flipped, normal flipped
	ge = Triangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, ge.Normals[0])

	// degenerate winding still yields a usable normal
	p := mgl32.Vec3{1, 1, 1}
	ge = Triangle(p, p, p)
	checkMesh(t, ge, 3)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, ge.Normals[0])
}

func TestRegularPolygon(t *testing.T) {
	ge := RegularPolygon(2, 5)
	checkMesh(t, ge, 15)
	// fan layout: center, then two rim points per triangle
	for i := 0; i < ge.NVertex(); i += 3 {
		assert.Equal(t, mgl32.Vec3{}, ge.Positions[i])
		assert.InDelta(t, 2, ge.Positions[i+1].Len(), meshTol)
		assert.InDelta(t, 2, ge.Positions[i+2].Len(), meshTol)
	}
	// first rim vertex is at the top
	assert.InDelta(t, 0, ge.Positions[1].X(), meshTol)
	assert.InDelta(t, 2, ge.Positions[1].Y(), meshTol)

	// fewer than 3 sides clamps to 3
	ge = RegularPolygon(1, 2)
	checkMesh(t, ge, 9)
}
