// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const testShader = `
struct Transforms {
    model: mat4x4<f32>,
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> transforms: Transforms;
@group(0) @binding(1) var objTexture: texture_2d<f32>;
@group(0) @binding(2) var objSampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec3<f32>, @location(1) uv: vec2<f32>, @location(2) normal: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = transforms.projection * transforms.view * transforms.model * vec4<f32>(pos, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(objTexture, objSampler, in.uv);
}
`

const testTintShader = `
struct Transforms {
    model: mat4x4<f32>,
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> transforms: Transforms;
@group(0) @binding(1) var objTexture: texture_2d<f32>;
@group(0) @binding(2) var objSampler: sampler;
@group(1) @binding(0) var<uniform> tint: vec4<f32>;

@vertex
fn vs_main(@location(0) pos: vec3<f32>, @location(1) uv: vec2<f32>, @location(2) normal: vec3<f32>) -> @builtin(position) vec4<f32> {
    return transforms.projection * transforms.view * transforms.model * vec4<f32>(pos, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return tint;
}
`

func triangle() *Geometry {
	return &Geometry{
		Positions: []mgl32.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0, 0.5, 0}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {0.5, 1}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, float32(0.25), clampUnit(0.25, 0))
	assert.Equal(t, float32(0), clampUnit(0, 1))
	assert.Equal(t, float32(1), clampUnit(1, 0))
	assert.Equal(t, float32(0.5), clampUnit(-0.1, 0.5))
	assert.Equal(t, float32(0.5), clampUnit(1.5, 0.5))
	assert.Equal(t, float32(1), clampUnit(math32.NaN(), 1))
}

func TestHandleErrors(t *testing.T) {
	sy := &System{Name: "empty"}
	assert.Zero(t, sy.NPipelines())
	assert.Nil(t, sy.Pipeline(0))
	assert.Nil(t, sy.Pipeline(-1))

	var upe *UnknownPipelineError
	err := sy.UpdateObject(NewObjectUpdate(0, 0))
	assert.ErrorAs(t, err, &upe)
	assert.Equal(t, PipelineHandle(0), upe.Pipeline)

	_, err = sy.resolve([]PipelineHandle{2})
	assert.ErrorAs(t, err, &upe)
	assert.Equal(t, PipelineHandle(2), upe.Pipeline)
}

func TestSystemRender(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	sz := image.Point{480, 320}
	rt := NewRenderTexture(gp, dev, sz, 4, Depth32)
	sy := NewSystem(gp, "test", rt)
	sy.SetClearColorF32(0.2, 0.2, 0.2, 1)
	sy.CameraPosition = mgl32.Vec3{0, 0, 4}

	pl, err := sy.RegisterPipeline(testShader, 2, nil)
	assert.NoError(t, err)
	assert.Equal(t, PipelineHandle(0), pl)
	assert.Equal(t, 1, sy.NPipelines())

	ob, err := sy.AddObject(pl, triangle())
	assert.NoError(t, err)
	assert.Equal(t, ObjectID(0), ob)

	u := NewObjectUpdate(pl, ob)
	u.RotateAxis = mgl32.Vec3{0, 1, 0}
	u.RotateDegrees = 30
	u.Camera = NewPerspectiveCamera(45, 0.1, 100)
	assert.NoError(t, sy.UpdateObject(u))

	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	sy.WaitDone()
	sy.Release()
	gp.Release()
}

func TestSystemEmptyRender(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 1, UndefinedType)
	sy := NewSystem(gp, "empty", rt)

	// no pipelines at all: a clear-only pass
	assert.NoError(t, sy.Render(nil))

	// a pipeline with no objects is skipped
	pl, err := sy.RegisterPipeline(testShader, 1, nil)
	assert.NoError(t, err)
	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	sy.Release()
	gp.Release()
}

func TestCompileError(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 1, UndefinedType)
	sy := NewSystem(gp, "test", rt)

	h, err := sy.RegisterPipeline("this is not wgsl", 1, nil)
	var ce *CompileError
	assert.ErrorAs(t, err, &ce)
	assert.NotNil(t, ce.Err)
	assert.Equal(t, PipelineHandle(-1), h)
	assert.Zero(t, sy.NPipelines())
	sy.Release()
	gp.Release()
}

func TestCapacityExceeded(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 1, UndefinedType)
	sy := NewSystem(gp, "test", rt)

	pl, err := sy.RegisterPipeline(testShader, 1, nil)
	assert.NoError(t, err)
	_, err = sy.AddObject(pl, triangle())
	assert.NoError(t, err)

	var cee *CapacityExceededError
	_, err = sy.AddObject(pl, triangle())
	assert.ErrorAs(t, err, &cee)
	assert.Equal(t, 1, cee.Max)
	assert.Equal(t, 1, sy.Pipeline(pl).Objects())

	var dge *DegenerateGeometryError
	_, err = sy.AddObject(pl, &Geometry{Positions: []mgl32.Vec3{{0, 0, 0}}})
	assert.ErrorAs(t, err, &dge)
	assert.Equal(t, 1, dge.Count)
	sy.Release()
	gp.Release()
}

func TestVisibility(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 1, UndefinedType)
	sy := NewSystem(gp, "test", rt)

	pl, err := sy.RegisterPipeline(testShader, 2, nil)
	assert.NoError(t, err)
	a, err := sy.AddObject(pl, triangle())
	assert.NoError(t, err)
	b, err := sy.AddObject(pl, triangle())
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)

	u := NewObjectUpdate(pl, b)
	u.Visible = false
	assert.NoError(t, sy.UpdateObject(u))
	pls := sy.Pipeline(pl)
	assert.True(t, pls.objects[a].Visible)
	assert.False(t, pls.objects[b].Visible)

	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	sy.Release()
	gp.Release()
}

func TestExtraUniforms(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 1, UndefinedType)
	sy := NewSystem(gp, "test", rt)

	pl, err := sy.RegisterPipeline(testTintShader, 1, &PipelineOptions{
		Uniforms: []UniformVar{
			{Name: "tint", Binding: 0, Type: Float32Vector4, Shaders: FragmentShader},
		},
	})
	assert.NoError(t, err)
	ob, err := sy.AddObject(pl, triangle())
	assert.NoError(t, err)

	u := NewObjectUpdate(pl, ob)
	u.Uniforms = [][]float32{{1, 0, 0, 1}}
	assert.NoError(t, sy.UpdateObject(u))

	var use *UniformShapeError
	u.Uniforms = [][]float32{{1, 0, 0}}
	assert.ErrorAs(t, sy.UpdateObject(u), &use)
	assert.Equal(t, 0, use.Index)

	u.Uniforms = [][]float32{{1, 0, 0, 1}, {2}}
	assert.ErrorAs(t, sy.UpdateObject(u), &use)
	assert.Equal(t, -1, use.Index)

	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	sy.Release()
	gp.Release()
}

func TestRenderTo(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	sz := image.Point{64, 64}
	rt := NewRenderTexture(gp, dev, sz, 1, UndefinedType)
	sy := NewSystem(gp, "test", rt)

	pl, err := sy.RegisterPipeline(testShader, 1, nil)
	assert.NoError(t, err)
	_, err = sy.AddObject(pl, triangle())
	assert.NoError(t, err)

	target := NewTexture(sy.Device())
	assert.NoError(t, target.ConfigRenderTarget(sy.Device(), sz))
	assert.NoError(t, sy.RenderTo(target, []PipelineHandle{pl}))

	var ite *InvalidTargetError
	small := NewTexture(sy.Device())
	assert.NoError(t, small.ConfigRenderTarget(sy.Device(), image.Point{32, 32}))
	assert.ErrorAs(t, sy.RenderTo(small, []PipelineHandle{pl}), &ite)
	assert.Equal(t, image.Point{32, 32}, ite.Target)
	assert.ErrorAs(t, sy.RenderTo(nil, []PipelineHandle{pl}), &ite)

	target.Release()
	small.Release()
	sy.Release()
	gp.Release()
}

func TestResize(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 4, Depth32)
	sy := NewSystem(gp, "test", rt)

	pl, err := sy.RegisterPipeline(testShader, 1, nil)
	assert.NoError(t, err)
	_, err = sy.AddObject(pl, triangle())
	assert.NoError(t, err)

	sy.Resize(image.Point{128, 96})
	sy.Resize(image.Point{256, 192})
	assert.Equal(t, image.Point{256, 192}, rt.Format.Size)
	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	sy.Release()
	gp.Release()
}

func TestPrivateObject(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	rt := NewRenderTexture(gp, dev, image.Point{64, 64}, 1, UndefinedType)
	sy := NewSystem(gp, "test", rt)

	pl, err := sy.RegisterPipeline(testShader, 2, nil)
	assert.NoError(t, err)
	shared, err := sy.AddObject(pl, triangle())
	assert.NoError(t, err)
	private, err := sy.AddPrivateObject(pl, triangle())
	assert.NoError(t, err)

	pls := sy.Pipeline(pl)
	assert.Nil(t, pls.objects[shared].private)
	assert.NotNil(t, pls.objects[private].private)
	assert.NotNil(t, pls.objects[private].privateGroup)

	u := NewObjectUpdate(pl, private)
	u.Translate = mgl32.Vec3{1, 0, 0}
	assert.NoError(t, sy.UpdateObject(u))
	assert.NoError(t, sy.Render([]PipelineHandle{pl}))
	sy.Release()
	gp.Release()
}
