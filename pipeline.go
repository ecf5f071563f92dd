// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// PipelineOptions are the optional aspects of RegisterPipeline.
// The zero value means vs_main / fs_main entry points, an empty
// texture at the current output size, and no extra uniforms.
type PipelineOptions struct {
	// Name labels the pipeline and its resources in diagnostics.
	Name string

	// VertexEntry and FragmentEntry are the shader entry point
	// function names, defaulting to vs_main and fs_main.
	VertexEntry   string
	FragmentEntry string

	// Texture is an existing texture to adopt for binding 1.
	// The pipeline does not take ownership: the caller releases it.
	Texture *Texture

	// Image is uploaded into a new pipeline-owned texture for
	// binding 1, when Texture is nil.
	Image image.Image

	// Uniforms declare extra uniform variables, forming bind group 1
	// in declaration order.
	Uniforms []UniformVar
}

// Pipeline is one registered shader pipeline: the compiled WebGPU
// render pipeline, the standard bind group holding the per-object
// transform buffer, texture, and sampler, the optional extra uniform
// bind group, and the objects registered to draw with it.
// All pipelines share one fixed vertex layout and render state;
// only the shader, texture, and extra uniforms vary.
type Pipeline struct {
	// Name of the pipeline.
	Name string

	// objects in insertion order. The slice index is the ObjectID.
	objects []*Object

	// maxObjects is the object capacity the uniform buffer was
	// allocated for. Not resizable.
	maxObjects int

	// uniforms is the shared dynamic-offset transform allocator.
	uniforms *Uniforms

	// texture is bound at group 0 binding 1.
	texture *Texture

	// ownTexture is set when the pipeline created texture itself.
	ownTexture bool

	// sampler is bound at group 0 binding 2.
	sampler Sampler

	// extra are the runtime buffers of the declared group 1
	// variables, in declaration order.
	extra []*uniformValue

	// renderPipeline is the compiled pipeline.
	renderPipeline *wgpu.RenderPipeline

	// layout0 is the group 0 layout, kept for building private
	// object bind groups after registration.
	layout0 *wgpu.BindGroupLayout

	// bindGroup is the shared group 0 bind group.
	bindGroup *wgpu.BindGroup

	// layout1 and bindGroup1 are the extra uniform group, nil when
	// none were declared.
	layout1    *wgpu.BindGroupLayout
	bindGroup1 *wgpu.BindGroup

	device Device
}

// vertexLayouts is the fixed three-buffer vertex layout: position,
// uv, and normal, tightly strided, at shader locations 0, 1, 2.
func vertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: uint64(Float32Vector3.Bytes()),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: Float32Vector3.VertexFormat(), Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: uint64(Float32Vector2.Bytes()),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: Float32Vector2.VertexFormat(), Offset: 0, ShaderLocation: 1},
			},
		},
		{
			ArrayStride: uint64(Float32Vector3.Bytes()),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: Float32Vector3.VertexFormat(), Offset: 0, ShaderLocation: 2},
			},
		},
	}
}

// blendPremultiplied is src-alpha / one-minus-src-alpha blending on
// both the color and alpha channels.
var blendPremultiplied = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// newPipeline builds a complete pipeline for the system: compiles the
// shader, allocates the transform buffer for maxObjects, resolves the
// texture and sampler, and creates the bind groups and render
// pipeline. On any failure everything already created is released, so
// nothing is registered.
func newPipeline(sy *System, src string, maxObjects int, opts *PipelineOptions) (*Pipeline, error) {
	if opts == nil {
		opts = &PipelineOptions{}
	}
	pl := &Pipeline{Name: opts.Name, maxObjects: maxObjects}
	if pl.Name == "" {
		pl.Name = fmt.Sprintf("pipeline%d", len(sy.pipelines))
	}
	pl.device = sy.device
	err := pl.config(sy, src, opts)
	if err != nil {
		pl.Release()
		return nil, err
	}
	if Debug {
		slog.Info("render.Pipeline registered", "name", pl.Name,
			"maxObjects", maxObjects, "extraUniforms", len(opts.Uniforms))
	}
	return pl, nil
}

func (pl *Pipeline) config(sy *System, src string, opts *PipelineOptions) error {
	dev := &pl.device
	ventry := opts.VertexEntry
	if ventry == "" {
		ventry = "vs_main"
	}
	fentry := opts.FragmentEntry
	if fentry == "" {
		fentry = "fs_main"
	}

	module, err := dev.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          pl.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
	})
	if err != nil {
		return errors.Log(&CompileError{Name: pl.Name, Err: err})
	}
	defer module.Release()

	pl.uniforms, err = NewUniforms(sy.GPU, dev, pl.maxObjects)
	if err != nil {
		return err
	}

	if err := pl.configTexture(sy, opts); err != nil {
		return err
	}
	if err := pl.sampler.Config(dev); err != nil {
		return err
	}

	pl.layout0, err = dev.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: pl.Name + "Group0",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   uint64(pl.uniforms.VarSize),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.bindGroup, err = pl.makeBindGroup(pl.uniforms)
	if err != nil {
		return err
	}

	layouts := []*wgpu.BindGroupLayout{pl.layout0}
	if len(opts.Uniforms) > 0 {
		if err := pl.configExtra(opts.Uniforms); err != nil {
			return err
		}
		layouts = append(layouts, pl.layout1)
	}

	rpl, err := dev.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            pl.Name,
		BindGroupLayouts: layouts,
	})
	if errors.Log(err) != nil {
		return err
	}
	defer rpl.Release()

	pd := &wgpu.RenderPipelineDescriptor{
		Label:  pl.Name,
		Layout: rpl,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: ventry,
			Buffers:    vertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fentry,
			Targets: []wgpu.ColorTargetState{{
				Format:    sy.render().Format.Format,
				Blend:     &blendPremultiplied,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(sy.render().Format.Samples),
			Mask:  0xFFFFFFFF,
		},
	}
	if dt := sy.render().DepthFormat(); dt != UndefinedType {
		pd.DepthStencil = &wgpu.DepthStencilState{
			Format:            dt.TextureFormat(),
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		}
	}
	rp, err := dev.Device.CreateRenderPipeline(pd)
	if err != nil {
		return errors.Log(&CompileError{Name: pl.Name, Err: err})
	}
	pl.renderPipeline = rp
	return nil
}

// configTexture resolves the binding 1 texture: adopt the one given,
// upload the given image, or allocate empty at the output size.
func (pl *Pipeline) configTexture(sy *System, opts *PipelineOptions) error {
	if opts.Texture != nil {
		pl.texture = opts.Texture
		return nil
	}
	tx := NewTexture(&pl.device)
	tx.Name = pl.Name + "Texture"
	pl.texture = tx
	pl.ownTexture = true
	if opts.Image != nil {
		return tx.SetFromGoImage(opts.Image)
	}
	return tx.ConfigRenderTarget(&pl.device, sy.render().Format.Size)
}

// configExtra allocates the group 1 layout, buffers, and bind group
// for the declared extra uniform variables.
func (pl *Pipeline) configExtra(vars []UniformVar) error {
	entries := make([]wgpu.BindGroupLayoutEntry, len(vars))
	bge := make([]wgpu.BindGroupEntry, len(vars))
	for i, vr := range vars {
		if vr.Name == "" {
			vr.Name = fmt.Sprintf("%sVar%d", pl.Name, vr.Binding)
		}
		uv, err := newUniformValue(&pl.device, vr)
		if err != nil {
			return err
		}
		pl.extra = append(pl.extra, uv)
		entries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    uint32(vr.Binding),
			Visibility: ShaderStageFlags[vr.Shaders],
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeUniform,
			},
		}
		bge[i] = uv.bindGroupEntry()
	}
	layout, err := pl.device.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   pl.Name + "Group1",
		Entries: entries,
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.layout1 = layout
	bg, err := pl.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   pl.Name + "Group1",
		Layout:  layout,
		Entries: bge,
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.bindGroup1 = bg
	return nil
}

// makeBindGroup builds a group 0 bind group referencing the given
// uniform allocator together with the pipeline texture and sampler.
// Used for both the shared group and private object groups.
func (pl *Pipeline) makeBindGroup(un *Uniforms) (*wgpu.BindGroup, error) {
	bg, err := pl.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  pl.Name + "Group0",
		Layout: pl.layout0,
		Entries: []wgpu.BindGroupEntry{
			un.bindGroupEntry(0),
			{Binding: 1, TextureView: pl.texture.View()},
			{Binding: 2, Sampler: pl.sampler.sampler},
		},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return bg, nil
}

// object resolves an ObjectID, or an UnknownObjectError.
func (pl *Pipeline) object(h PipelineHandle, id ObjectID) (*Object, error) {
	if int(id) < 0 || int(id) >= len(pl.objects) {
		return nil, &UnknownObjectError{Pipeline: h, Object: id}
	}
	return pl.objects[id], nil
}

// validateUniforms checks the extra uniform payloads against the
// declared variables: the value count must match the declaration
// count, and each value must have exactly the number of float32
// elements its variable's type holds. Nothing is written.
func (pl *Pipeline) validateUniforms(vals [][]float32) error {
	if len(vals) != len(pl.extra) {
		return &UniformShapeError{Index: -1, Want: len(pl.extra), Got: len(vals)}
	}
	for i, v := range vals {
		if len(v) != pl.extra[i].nfloat32() {
			return &UniformShapeError{Index: i, Want: pl.extra[i].nfloat32(), Got: len(v)}
		}
	}
	return nil
}

// setUniforms writes the extra uniform payloads in declaration order,
// validating first so nothing is written on a shape mismatch.
func (pl *Pipeline) setUniforms(vals [][]float32) error {
	if err := pl.validateUniforms(vals); err != nil {
		return err
	}
	for i, v := range vals {
		if err := pl.extra[i].setFromFloats(v); err != nil {
			return err
		}
	}
	return nil
}

// Objects returns the number of objects registered in this pipeline.
func (pl *Pipeline) Objects() int {
	return len(pl.objects)
}

// MaxObjects returns the object capacity this pipeline was
// registered with.
func (pl *Pipeline) MaxObjects() int {
	return pl.maxObjects
}

// Release releases all pipeline resources: objects, bind groups,
// layouts, buffers, sampler, owned texture, and the compiled
// pipeline. Safe to call on a partially constructed pipeline.
func (pl *Pipeline) Release() {
	for _, ob := range pl.objects {
		ob.Release()
	}
	pl.objects = nil
	if pl.bindGroup != nil {
		pl.bindGroup.Release()
		pl.bindGroup = nil
	}
	if pl.bindGroup1 != nil {
		pl.bindGroup1.Release()
		pl.bindGroup1 = nil
	}
	if pl.layout0 != nil {
		pl.layout0.Release()
		pl.layout0 = nil
	}
	if pl.layout1 != nil {
		pl.layout1.Release()
		pl.layout1 = nil
	}
	for _, uv := range pl.extra {
		uv.Release()
	}
	pl.extra = nil
	if pl.uniforms != nil {
		pl.uniforms.Release()
		pl.uniforms = nil
	}
	pl.sampler.Release()
	if pl.ownTexture && pl.texture != nil {
		pl.texture.Release()
	}
	pl.texture = nil
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}
