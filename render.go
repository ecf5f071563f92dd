// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages the per-frame render target attachments:
// the multisampled color texture that is the actual draw target,
// and the depth texture. The resolved output goes to a frame
// from the Renderer (Surface or RenderTexture), or to a
// caller-supplied texture. Both attachments are destroyed and
// reallocated on any size change.
type Render struct {
	// Format of the output frames this render resolves into.
	// Samples here is the multisample count of the Multi attachment.
	Format TextureFormat

	// Multi is the multisampled color attachment.
	Multi Texture

	// Depth is the depth attachment.
	Depth Texture

	// depthType is the configured depth format.
	depthType Types

	// ClearColor is the color the frame is cleared to at the start
	// of a render pass.
	ClearColor color.Color

	// ClearDepth is the depth the depth attachment is cleared to,
	// 1 = the far plane.
	ClearDepth float32

	device *Device
}

// Config configures the render attachments for the given device,
// output format (size, color format, and multisample count), and
// depth format. Pass UndefinedType for no depth buffer.
func (rd *Render) Config(dev *Device, fmt *TextureFormat, depthType Types) error {
	rd.device = dev
	rd.Format = *fmt
	rd.depthType = depthType
	rd.ClearColor = color.Black
	rd.SetClearDepthStencil(1, 0)
	return rd.config()
}

func (rd *Render) config() error {
	if rd.Format.Samples > 1 {
		if err := rd.Multi.ConfigMulti(rd.device, &rd.Format); err != nil {
			return err
		}
	}
	if rd.depthType != UndefinedType {
		if err := rd.Depth.ConfigDepth(rd.device, rd.depthType, &rd.Format); err != nil {
			return err
		}
	}
	return nil
}

// SetSize destroys and reallocates the attachments at the new size.
// Does nothing if the size is unchanged.
func (rd *Render) SetSize(size image.Point) error {
	if rd.Format.Size == size {
		return nil
	}
	rd.Multi.Release()
	rd.Depth.Release()
	rd.Format.Size = size
	return rd.config()
}

// SetClearColor sets the color used when starting a new render pass.
func (rd *Render) SetClearColor(c color.Color) {
	rd.ClearColor = c
}

// SetClearDepthStencil sets the depth and stencil clear values for
// new render passes. The stencil value only applies to formats
// carrying a stencil aspect.
func (rd *Render) SetClearDepthStencil(depth float32, stencil uint32) {
	rd.ClearDepth = depth
	_ = stencil
}

// ClearValue returns the clear color as a WebGPU color.
func (rd *Render) ClearValue() wgpu.Color {
	if rd.ClearColor == nil {
		return wgpu.Color{A: 1}
	}
	r, g, b, a := rd.ClearColor.RGBA()
	return wgpu.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
}

// ClearRenderPass returns a render pass descriptor that clears the
// attachments, resolving into the given output view.
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	ca := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: rd.ClearValue(),
	}
	if rd.Format.Samples > 1 {
		ca.View = rd.Multi.view
		ca.ResolveTarget = view
	}
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{ca},
	}
	if rd.depthType != UndefinedType {
		rpd.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            rd.Depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: rd.ClearDepth,
		}
	}
	return rpd
}

// LoadRenderPass returns a render pass descriptor that loads the
// previous attachment contents instead of clearing.
func (rd *Render) LoadRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	ca := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if rd.Format.Samples > 1 {
		ca.View = rd.Multi.view
		ca.ResolveTarget = view
	}
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{ca},
	}
	if rd.depthType != UndefinedType {
		rpd.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            rd.Depth.view,
			DepthLoadOp:     wgpu.LoadOpLoad,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: rd.ClearDepth,
		}
	}
	return rpd
}

// BeginRenderPass starts a render pass on the given command
// encoder, clearing the attachments first.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.ClearRenderPass(view))
}

// BeginRenderPassNoClear starts a render pass on the given command
// encoder, loading the prior attachment contents.
func (rd *Render) BeginRenderPassNoClear(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.LoadRenderPass(view))
}

// DepthFormat returns the configured depth format,
// UndefinedType if none.
func (rd *Render) DepthFormat() Types {
	return rd.depthType
}

// Release releases the attachments.
func (rd *Render) Release() {
	rd.Multi.Release()
	rd.Depth.Release()
}
