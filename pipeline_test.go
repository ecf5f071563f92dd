// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestVertexLayouts(t *testing.T) {
	vbl := vertexLayouts()
	assert.Equal(t, 3, len(vbl))
	assert.Equal(t, uint64(12), vbl[0].ArrayStride)
	assert.Equal(t, uint64(8), vbl[1].ArrayStride)
	assert.Equal(t, uint64(12), vbl[2].ArrayStride)
	for i, vb := range vbl {
		assert.Equal(t, wgpu.VertexStepModeVertex, vb.StepMode)
		assert.Equal(t, 1, len(vb.Attributes))
		assert.Equal(t, uint32(i), vb.Attributes[0].ShaderLocation)
		assert.Equal(t, uint64(0), vb.Attributes[0].Offset)
	}
	assert.Equal(t, wgpu.VertexFormatFloat32x3, vbl[0].Attributes[0].Format)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, vbl[1].Attributes[0].Format)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, vbl[2].Attributes[0].Format)
}

func TestValidateUniforms(t *testing.T) {
	pl := &Pipeline{extra: []*uniformValue{
		{vr: UniformVar{Type: Float32Vector4}},
		{vr: UniformVar{Type: Float32}},
	}}

	assert.NoError(t, pl.validateUniforms([][]float32{{1, 2, 3, 4}, {5}}))

	var use *UniformShapeError
	err := pl.validateUniforms([][]float32{{1, 2, 3, 4}})
	assert.ErrorAs(t, err, &use)
	assert.Equal(t, -1, use.Index)
	assert.Equal(t, 2, use.Want)
	assert.Equal(t, 1, use.Got)

	err = pl.validateUniforms([][]float32{{1, 2, 3}, {5}})
	assert.ErrorAs(t, err, &use)
	assert.Equal(t, 0, use.Index)
	assert.Equal(t, 4, use.Want)
	assert.Equal(t, 3, use.Got)

	// no declarations: only the empty payload is valid
	none := &Pipeline{}
	assert.NoError(t, none.validateUniforms([][]float32{}))
	assert.Error(t, none.validateUniforms([][]float32{{1}}))
}

func TestObjectResolve(t *testing.T) {
	pl := &Pipeline{objects: []*Object{{Name: "first"}}}
	ob, err := pl.object(0, 0)
	assert.NoError(t, err)
	assert.Equal(t, "first", ob.Name)

	var uoe *UnknownObjectError
	_, err = pl.object(3, 1)
	assert.ErrorAs(t, err, &uoe)
	assert.Equal(t, PipelineHandle(3), uoe.Pipeline)
	assert.Equal(t, ObjectID(1), uoe.Object)

	_, err = pl.object(0, -1)
	assert.Error(t, err)
}
