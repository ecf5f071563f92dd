// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sinsinkun/webgpu-render/base/errors"
	"github.com/sinsinkun/webgpu-render/base/slicesx"
)

// Geometry is a flat triangle-list mesh: every three positions form
// one triangle, with per-vertex uv and normal data. UVs and Normals
// may be nil or shorter than Positions; missing entries are
// zero-filled on upload so every vertex carries a complete set.
type Geometry struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Normals   []mgl32.Vec3
}

// NVertex returns the number of vertices, from Positions.
func (ge *Geometry) NVertex() int {
	return len(ge.Positions)
}

// Padded returns the uv and normal slices zero-filled out to the
// position count, copying only when the length differs.
func (ge *Geometry) Padded() ([]mgl32.Vec2, []mgl32.Vec3) {
	n := len(ge.Positions)
	uvs := ge.UVs
	if len(uvs) != n {
		uvs = slicesx.SetLength(append([]mgl32.Vec2(nil), ge.UVs...), n)
	}
	norms := ge.Normals
	if len(norms) != n {
		norms = slicesx.SetLength(append([]mgl32.Vec3(nil), ge.Normals...), n)
	}
	return uvs, norms
}

// Object is one renderable mesh instance within a pipeline: three
// vertex buffers, the vertex count, and the uniform slot holding its
// transforms. Objects are never removed; toggle Visible to stop an
// object from drawing.
type Object struct {
	// Name for buffer labels and debugging.
	Name string

	// Visible objects draw; invisible ones are skipped.
	Visible bool

	// N is the number of vertices.
	N int

	// slot indexes this object's transform block in the pipeline
	// uniform buffer. Slots follow insertion order and are never
	// reused.
	slot int

	// pos, uv, norm are the vertex buffers bound at locations 0, 1, 2.
	pos, uv, norm *wgpu.Buffer

	// private is the object's own single-block uniform allocator,
	// non-nil when the object opts out of sharing the pipeline buffer.
	private *Uniforms

	// privateGroup is the object's own bind group, when private.
	privateGroup *wgpu.BindGroup
}

// configVertex packs the geometry into the three tightly-strided
// vertex buffers, zero-filling missing uv and normal data.
func (ob *Object) configVertex(dev *Device, ge *Geometry) error {
	uvs, norms := ge.Padded()
	pos, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    ob.Name + "Pos",
		Contents: wgpu.ToBytes(ge.Positions),
		Usage:    wgpu.BufferUsageVertex,
	})
	if errors.Log(err) != nil {
		return err
	}
	uv, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    ob.Name + "UV",
		Contents: wgpu.ToBytes(uvs),
		Usage:    wgpu.BufferUsageVertex,
	})
	if errors.Log(err) != nil {
		pos.Release()
		return err
	}
	norm, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    ob.Name + "Norm",
		Contents: wgpu.ToBytes(norms),
		Usage:    wgpu.BufferUsageVertex,
	})
	if errors.Log(err) != nil {
		pos.Release()
		uv.Release()
		return err
	}
	ob.pos, ob.uv, ob.norm = pos, uv, norm
	ob.N = ge.NVertex()
	return nil
}

// uniforms returns the allocator and block index for this object:
// its own single block when private, otherwise the shared pipeline
// allocator at the object slot.
func (ob *Object) uniforms(pl *Pipeline) (*Uniforms, int) {
	if ob.private != nil {
		return ob.private, 0
	}
	return pl.uniforms, ob.slot
}

// Release releases the vertex buffers and any private bind group
// resources.
func (ob *Object) Release() {
	if ob.pos != nil {
		ob.pos.Release()
		ob.pos = nil
	}
	if ob.uv != nil {
		ob.uv.Release()
		ob.uv = nil
	}
	if ob.norm != nil {
		ob.norm.Release()
		ob.norm = nil
	}
	if ob.privateGroup != nil {
		ob.privateGroup.Release()
		ob.privateGroup = nil
	}
	if ob.private != nil {
		ob.private.Release()
		ob.private = nil
	}
}

// ObjectUpdate specifies one full recomputation of an object's
// transforms. Fields not set between NewObjectUpdate and UpdateObject
// keep the defaults, not the object's previous state.
type ObjectUpdate struct {
	// Pipeline and Object identify the target.
	Pipeline PipelineHandle
	Object   ObjectID

	// Translate is the object position (default 0,0,0).
	Translate mgl32.Vec3

	// RotateAxis and RotateDegrees give an angle-axis rotation.
	// The default is no rotation; a zero axis is also no rotation.
	RotateAxis    mgl32.Vec3
	RotateDegrees float32

	// Scale is the per-axis scale (default 1,1,1).
	Scale mgl32.Vec3

	// Visible sets whether the object draws (default true).
	Visible bool

	// Camera selects the projection; nil is the orthographic default.
	Camera *Camera

	// Uniforms are payloads for the pipeline's declared extra uniform
	// variables, in declaration order. Nil writes none; non-nil must
	// match the declarations exactly.
	Uniforms [][]float32
}

// NewObjectUpdate returns an update for the given object carrying the
// default values: no translation or rotation, unit scale, visible,
// orthographic projection, no extra uniform payloads.
func NewObjectUpdate(pipeline PipelineHandle, object ObjectID) *ObjectUpdate {
	return &ObjectUpdate{
		Pipeline: pipeline,
		Object:   object,
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// modelMatrix composes translate * (rotate * scale).
// Degrees are converted to radians; the axis is normalized.
func (u *ObjectUpdate) modelMatrix() mgl32.Mat4 {
	m := mgl32.Scale3D(u.Scale.X(), u.Scale.Y(), u.Scale.Z())
	if u.RotateDegrees != 0 && u.RotateAxis.Len() > 0 {
		m = mgl32.HomogRotate3D(mgl32.DegToRad(u.RotateDegrees), u.RotateAxis.Normalize()).Mul4(m)
	}
	return mgl32.Translate3D(u.Translate.X(), u.Translate.Y(), u.Translate.Z()).Mul4(m)
}

// transformBlock packs the model, view, and projection matrices into
// one 192 byte uniform block, in that order, column-major as WGSL
// mat4x4<f32> expects.
func transformBlock(model, view, proj mgl32.Mat4) []byte {
	block := make([]float32, 0, 48)
	block = append(block, model[:]...)
	block = append(block, view[:]...)
	block = append(block, proj[:]...)
	return wgpu.ToBytes(block)
}
