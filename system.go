// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// PipelineHandle identifies a registered pipeline. Handles are
// stable indices issued by [System.RegisterPipeline], valid for the
// system lifetime and never reused.
type PipelineHandle int

// ObjectID identifies an object within its pipeline, issued by
// [System.AddObject] in insertion order and never reused. There is
// no deletion: toggle [ObjectUpdate.Visible] instead.
type ObjectID int

// System is the retained rendering context: it owns the registered
// pipelines and their objects, and drives render passes against a
// [Renderer] target (a window [Surface] or an offscreen
// [RenderTexture]). All methods are synchronous and must be called
// from one goroutine.
type System struct {
	// Name of this system.
	Name string

	// GPU is the adapter, with the platform limits that size the
	// uniform buffers.
	GPU *GPU

	// CameraPosition is the shared eye position used by all object
	// updates. The view matrix is a translation by its negation;
	// orientation is not modeled.
	CameraPosition mgl32.Vec3

	// Renderer is the rendering target for this system.
	// It is either a Surface or a RenderTexture.
	Renderer Renderer

	// pipelines in registration order; a PipelineHandle indexes this.
	pipelines []*Pipeline

	// logical device for this System, from the Renderer.
	device Device
}

// NewSystem returns a new System rendering to the given target.
func NewSystem(gp *GPU, name string, rd Renderer) *System {
	sy := &System{Name: name, GPU: gp, Renderer: rd}
	sy.device = *rd.Device()
	return sy
}

// Device returns the logical device used by this System.
func (sy *System) Device() *Device { return &sy.device }

func (sy *System) render() *Render { return sy.Renderer.Render() }

// RegisterPipeline compiles the given WGSL shader source and
// registers a pipeline for it, allocating the per-object transform
// buffer for maxObjects up front (a value below 1 is treated as 1).
// opts may be nil for the defaults. A compile failure returns a
// [CompileError] with the diagnostic attached and registers nothing.
func (sy *System) RegisterPipeline(src string, maxObjects int, opts *PipelineOptions) (PipelineHandle, error) {
	if maxObjects < 1 {
		maxObjects = 1
	}
	pl, err := newPipeline(sy, src, maxObjects, opts)
	if err != nil {
		return -1, err
	}
	sy.pipelines = append(sy.pipelines, pl)
	return PipelineHandle(len(sy.pipelines) - 1), nil
}

// pipeline resolves a handle, or an [UnknownPipelineError].
func (sy *System) pipeline(h PipelineHandle) (*Pipeline, error) {
	if int(h) < 0 || int(h) >= len(sy.pipelines) {
		return nil, &UnknownPipelineError{Pipeline: h}
	}
	return sy.pipelines[h], nil
}

// Pipeline returns the pipeline for the given handle,
// or nil if the handle is unknown.
func (sy *System) Pipeline(h PipelineHandle) *Pipeline {
	pl, err := sy.pipeline(h)
	if err != nil {
		return nil
	}
	return pl
}

// AddObject registers the given geometry as an object of the given
// pipeline, sharing the pipeline uniform buffer, and performs one
// update with the default values so the object is valid to draw.
// Fails with [DegenerateGeometryError] for fewer than 3 positions
// and [CapacityExceededError] at the registered object capacity.
func (sy *System) AddObject(h PipelineHandle, ge *Geometry) (ObjectID, error) {
	return sy.addObject(h, ge, false)
}

// AddPrivateObject is [System.AddObject] for an object that opts out
// of uniform buffer sharing: it gets its own single-block buffer and
// bind group, drawn with a zero dynamic offset.
func (sy *System) AddPrivateObject(h PipelineHandle, ge *Geometry) (ObjectID, error) {
	return sy.addObject(h, ge, true)
}

func (sy *System) addObject(h PipelineHandle, ge *Geometry, private bool) (ObjectID, error) {
	pl, err := sy.pipeline(h)
	if err != nil {
		return -1, errors.Log(err)
	}
	if ge.NVertex() < 3 {
		return -1, errors.Log(&DegenerateGeometryError{Count: ge.NVertex()})
	}
	if len(pl.objects) >= pl.maxObjects {
		return -1, errors.Log(&CapacityExceededError{Pipeline: h, Max: pl.maxObjects})
	}
	ob := &Object{Visible: true, slot: len(pl.objects)}
	ob.Name = fmt.Sprintf("%sObject%d", pl.Name, ob.slot)
	if err := ob.configVertex(&sy.device, ge); err != nil {
		return -1, err
	}
	if private {
		un, err := NewUniforms(sy.GPU, &sy.device, 1)
		if err != nil {
			ob.Release()
			return -1, err
		}
		ob.private = un
		bg, err := pl.makeBindGroup(un)
		if err != nil {
			ob.Release()
			return -1, err
		}
		ob.privateGroup = bg
	}
	pl.objects = append(pl.objects, ob)
	id := ObjectID(ob.slot)
	if err := sy.UpdateObject(NewObjectUpdate(h, id)); err != nil {
		pl.objects = pl.objects[:ob.slot]
		ob.Release()
		return -1, err
	}
	if Debug {
		slog.Info("render.System added object", "pipeline", pl.Name,
			"object", id, "vertices", ob.N, "private", private)
	}
	return id, nil
}

// UpdateObject recomputes the object's transform block from the
// update values and writes it to the uniform buffer, sets the object
// visibility, and writes any extra uniform payloads. This is a full
// recomputation from the update, not a merge with prior state, and
// it is the sole write path for per-object data. Payload shapes are
// validated against the pipeline declarations before any write.
func (sy *System) UpdateObject(u *ObjectUpdate) error {
	pl, err := sy.pipeline(u.Pipeline)
	if err != nil {
		return errors.Log(err)
	}
	ob, err := pl.object(u.Pipeline, u.Object)
	if err != nil {
		return errors.Log(err)
	}
	if u.Uniforms != nil {
		if err := pl.validateUniforms(u.Uniforms); err != nil {
			return errors.Log(err)
		}
	}
	ob.Visible = u.Visible
	model := u.modelMatrix()
	view := ViewMatrix(sy.CameraPosition)
	proj := u.Camera.Projection(sy.render().Format.Size)
	un, idx := ob.uniforms(pl)
	if err := un.SetBlock(idx, transformBlock(model, view, proj)); err != nil {
		return err
	}
	if err := un.WriteBuffer(); err != nil {
		return err
	}
	if u.Uniforms != nil {
		if err := pl.setUniforms(u.Uniforms); err != nil {
			return errors.Log(err)
		}
	}
	return nil
}

// Render draws the given pipelines in caller order into the current
// frame of the Renderer, as one render pass, then presents it.
// All handles are resolved before the pass opens, so an
// [UnknownPipelineError] draws nothing. Pipelines with no objects
// and invisible objects are skipped; an empty pipeline list is a
// clear-only pass.
func (sy *System) Render(pipelines []PipelineHandle) error {
	pls, err := sy.resolve(pipelines)
	if err != nil {
		return err
	}
	view, err := sy.Renderer.GetCurrentTexture()
	if errors.Log(err) != nil {
		return err
	}
	if err := sy.renderPass(view, pls); err != nil {
		return err
	}
	sy.Renderer.Present()
	return nil
}

// RenderTo is [System.Render] into the given texture instead of the
// Renderer frame, for render-to-texture. The texture must have been
// configured render-target capable (see [Texture.ConfigRenderTarget])
// at the current attachment size: an [InvalidTargetError] reports a
// size difference. Nothing is presented.
func (sy *System) RenderTo(target *Texture, pipelines []PipelineHandle) error {
	pls, err := sy.resolve(pipelines)
	if err != nil {
		return err
	}
	rd := sy.render()
	if target == nil || target.View() == nil || target.Format.Size != rd.Format.Size {
		tsz := image.Point{}
		if target != nil {
			tsz = target.Format.Size
		}
		return errors.Log(&InvalidTargetError{Target: tsz, Attachment: rd.Format.Size})
	}
	return sy.renderPass(target.View(), pls)
}

// resolve maps handles to pipelines, failing on the first unknown
// handle so no pass is opened with a partial list.
func (sy *System) resolve(pipelines []PipelineHandle) ([]*Pipeline, error) {
	pls := make([]*Pipeline, len(pipelines))
	for i, h := range pipelines {
		pl, err := sy.pipeline(h)
		if err != nil {
			return nil, errors.Log(err)
		}
		pls[i] = pl
	}
	return pls, nil
}

// renderPass encodes and submits one render pass drawing the given
// pipelines into the given output view: clear, draw each visible
// object with its dynamic uniform offset, resolve, submit.
// Exactly one command buffer is submitted per call.
func (sy *System) renderPass(view *wgpu.TextureView, pls []*Pipeline) error {
	cmd, err := sy.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return err
	}
	rd := sy.render()
	rp := rd.BeginRenderPass(cmd, view)
	for _, pl := range pls {
		if len(pl.objects) == 0 {
			continue
		}
		rp.SetPipeline(pl.renderPipeline)
		if pl.bindGroup1 != nil {
			rp.SetBindGroup(1, pl.bindGroup1, nil)
		}
		for _, ob := range pl.objects {
			if !ob.Visible {
				continue
			}
			rp.SetVertexBuffer(0, ob.pos, 0, wgpu.WholeSize)
			rp.SetVertexBuffer(1, ob.uv, 0, wgpu.WholeSize)
			rp.SetVertexBuffer(2, ob.norm, 0, wgpu.WholeSize)
			if ob.privateGroup != nil {
				rp.SetBindGroup(0, ob.privateGroup, []uint32{0})
			} else {
				rp.SetBindGroup(0, pl.bindGroup, []uint32{pl.uniforms.DynamicOffset(ob.slot)})
			}
			rp.Draw(uint32(ob.N), 1, 0, 0)
		}
	}
	rp.End()
	rp.Release() // must happen before Finish
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		cmd.Release()
		return err
	}
	sy.device.Queue.Submit(cmdBuffer)
	cmdBuffer.Release()
	cmd.Release()
	return nil
}

// Resize updates the Renderer and render attachments to the new
// output size. WebGPU has no internal mechanism for tracking window
// size, so this must be driven from external events, before the next
// render at the new size.
func (sy *System) Resize(size image.Point) {
	sy.Renderer.SetSize(size)
}

// SetClearColor sets the color the frame is cleared to at the start
// of each render pass.
func (sy *System) SetClearColor(c color.Color) {
	sy.render().SetClearColor(c)
}

// SetClearColorF32 is [System.SetClearColor] from normalized float
// components. NaN or out-of-range components fall back to the
// defaults: 0 for color channels, 1 for alpha.
func (sy *System) SetClearColorF32(r, g, b, a float32) {
	sy.SetClearColor(color.NRGBA{
		R: uint8(clampUnit(r, 0) * 255),
		G: uint8(clampUnit(g, 0) * 255),
		B: uint8(clampUnit(b, 0) * 255),
		A: uint8(clampUnit(a, 1) * 255),
	})
}

// clampUnit returns v if it is a valid normalized component,
// otherwise the given default.
func clampUnit(v, def float32) float32 {
	if math32.IsNaN(v) || v < 0 || v > 1 {
		return def
	}
	return v
}

// NPipelines returns the number of registered pipelines.
func (sy *System) NPipelines() int {
	return len(sy.pipelines)
}

// WaitDone waits until the device is done with current processing steps.
func (sy *System) WaitDone() {
	sy.device.WaitDone()
}

// Release releases all pipelines with their objects and buffers,
// and then the Renderer and its attachments. The System is not
// usable afterward. Safe to call more than once.
func (sy *System) Release() {
	sy.WaitDone()
	for _, pl := range sy.pipelines {
		pl.Release()
	}
	sy.pipelines = nil
	if sy.Renderer != nil {
		sy.Renderer.Release()
		sy.Renderer = nil
	}
	sy.GPU = nil
}
