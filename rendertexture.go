// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTexture is an offscreen, non-window-backed rendering target,
// functioning like a [Surface]: it implements [Renderer] with a
// simulated swapchain of NFrames textures, and a no-op Present.
// Use it for headless rendering, tests, and texture baking.
type RenderTexture struct {
	// Format has the current frame format and dimensions.
	// The Samples here are the desired multisample value, whereas
	// the Frames always have Samples = 1 and resolve through render.
	Format TextureFormat

	// NFrames is the number of frames in the simulated swapchain,
	// e.g., 2 = double-buffering. Default is 1.
	NFrames int

	// Frames are iterated through in rendering subsequent frames.
	Frames []*Texture

	// GPU is the adapter, for convenience.
	GPU *GPU

	// render holds the multisample and depth attachments.
	render Render

	// curFrame is the next frame index to hand out.
	curFrame int

	// device, which we do NOT own.
	device Device
}

// NewRenderTexture returns a new standalone texture render target
// for the given GPU and device, suitable for offscreen rendering.
//   - dev should be from a Surface if one is in use, otherwise one
//     from [NoDisplayGPU] or [NewDevice], released by the caller.
//   - size can be updated later with SetSize.
//   - samples is the multisample count: 1 = none, 4 = typical.
//   - depthFmt is the depth buffer format, UndefinedType for none.
func NewRenderTexture(gp *GPU, dev *Device, size image.Point, samples int, depthFmt Types) *RenderTexture {
	rt := &RenderTexture{GPU: gp, NFrames: 1}
	rt.device = *dev
	rt.Format.Defaults()
	rt.Format.Size = size
	rt.Format.SetMultisample(samples)
	rt.render.Config(&rt.device, &rt.Format, depthFmt)
	rt.ConfigFrames()
	return rt
}

func (rt *RenderTexture) Device() *Device { return &rt.device }
func (rt *RenderTexture) Render() *Render { return &rt.render }

// ConfigFrames configures the swapchain frames, releasing any
// existing ones first, so it is safe for re-use.
func (rt *RenderTexture) ConfigFrames() {
	rt.ReleaseFrames()
	rt.Frames = make([]*Texture, rt.NFrames)
	for i := range rt.NFrames {
		fr := NewTexture(&rt.device)
		fr.ConfigFrame(&rt.device, &rt.Format)
		rt.Frames[i] = fr
	}
	rt.curFrame = 0
}

// GetCurrentTexture returns a TextureView that is the current
// target for rendering, advancing through the frames.
func (rt *RenderTexture) GetCurrentTexture() (*wgpu.TextureView, error) {
	cf := rt.curFrame
	rt.curFrame = (rt.curFrame + 1) % rt.NFrames
	return rt.Frames[cf].View(), nil
}

// CurrentFrame returns the frame texture most recently handed out
// by GetCurrentTexture, e.g. to read back or bind what was just
// rendered.
func (rt *RenderTexture) CurrentFrame() *Texture {
	cf := rt.curFrame - 1
	if cf < 0 {
		cf = rt.NFrames - 1
	}
	return rt.Frames[cf]
}

// Present is a no-op: frames stay available as textures.
func (rt *RenderTexture) Present() {
}

// SetSize reallocates the frames and render attachments at the new
// size. Does nothing if the size is unchanged.
func (rt *RenderTexture) SetSize(size image.Point) {
	if rt.Format.Size == size {
		return
	}
	rt.render.SetSize(size)
	rt.Format.Size = size
	rt.ConfigFrames()
}

// ReleaseFrames releases the swapchain frames.
func (rt *RenderTexture) ReleaseFrames() {
	for _, fr := range rt.Frames {
		fr.Release()
	}
	rt.Frames = nil
}

// Release releases the frames and render attachments,
// but not the device, which is not owned.
func (rt *RenderTexture) Release() {
	rt.ReleaseFrames()
	rt.render.Release()
}
