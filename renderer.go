// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the rendering target interface: something that
// provides a frame view to render into and presents the result.
// [Surface] (window-backed swapchain) and [RenderTexture]
// (offscreen simulated swapchain) are the two implementations.
type Renderer interface {
	// Render returns the Render with the per-frame multisample and
	// depth attachments and the clear values.
	Render() *Render

	// Device returns the device for this renderer,
	// which serves as the primary device for a System using it.
	Device() *Device

	// GetCurrentTexture returns a TextureView that is the current
	// target for rendering.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// Present presents the current frame: shows it on the window
	// for a Surface; a no-op for a RenderTexture.
	Present()

	// When the render surface (e.g., window) is resized, call this
	// function. WebGPU does not have any internal mechanism for
	// tracking this, so we need to drive it from external events.
	SetSize(size image.Point)

	Release()
}
