// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// Surface manages the swapchain for an OS window surface, and the
// render attachments resolving into its frames, implementing
// [Renderer]. The Surface owns its device, so that presentation and
// rendering share one queue.
type Surface struct {
	// GPU is the adapter this surface was configured against.
	GPU *GPU

	// Format of the swapchain frames: the adapter-preferred color
	// format at the configured size. Samples is the multisample
	// count of the render attachments, the frames themselves are
	// single-sampled.
	Format TextureFormat

	// render holds the multisample and depth attachments.
	render Render

	// surface is the WebGPU surface for the OS window, from the
	// window glue (e.g. [GLFWCreateWindow]).
	surface *wgpu.Surface

	// alphaMode is the compositing mode the swapchain was
	// configured with: premultiplied when the platform offers it.
	alphaMode wgpu.CompositeAlphaMode

	// frameTexture and frameView are the currently acquired frame,
	// held from GetCurrentTexture until Present.
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView

	// device owned by this surface.
	device Device
}

// NewSurface configures the given OS window surface for rendering
// at the given size, with the given multisample count (4 = typical,
// 1 = none) and depth format (UndefinedType for no depth buffer).
// A surface that cannot be configured returns a [SurfaceError].
func NewSurface(gp *GPU, ws *wgpu.Surface, size image.Point, samples int, depthFmt Types) (*Surface, error) {
	sf := &Surface{GPU: gp, surface: ws}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, err
	}
	sf.device = *dev
	sf.Format.Defaults()
	sf.Format.Size = size
	sf.Format.SetMultisample(samples)
	if err := sf.configSurface(); err != nil {
		sf.device.Release()
		return nil, errors.Log(&SurfaceError{Err: err})
	}
	if err := sf.render.Config(&sf.device, &sf.Format, depthFmt); err != nil {
		sf.device.Release()
		return nil, err
	}
	if Debug {
		slog.Info("render.Surface configured", "size", size,
			"format", sf.Format.Format, "alphaMode", sf.alphaMode)
	}
	return sf, nil
}

// configSurface configures the swapchain at the current Format.Size,
// using the adapter-preferred frame format, fifo presentation, and
// premultiplied alpha compositing when the platform offers it.
func (sf *Surface) configSurface() error {
	caps := sf.surface.GetCapabilities(sf.GPU.Adapter)
	if len(caps.Formats) == 0 {
		return errors.New("surface reports no compatible texture formats")
	}
	sf.Format.Format = caps.Formats[0]
	sf.alphaMode = wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		sf.alphaMode = caps.AlphaModes[0]
	}
	for _, am := range caps.AlphaModes {
		if am == wgpu.CompositeAlphaModePremultiplied {
			sf.alphaMode = am
		}
	}
	sf.surface.Configure(sf.GPU.Adapter, sf.device.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format.Format,
		Width:       uint32(sf.Format.Size.X),
		Height:      uint32(sf.Format.Size.Y),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   sf.alphaMode,
	})
	return nil
}

func (sf *Surface) Device() *Device { return &sf.device }
func (sf *Surface) Render() *Render { return &sf.render }

// GetCurrentTexture acquires the next swapchain frame and returns
// its view, holding the frame until [Surface.Present]. An acquire
// failure means the OS window no longer matches the configured
// frames (typically an unhandled resize) and is reported as a
// [SizeMismatchError]: Resize must complete before rendering at
// the new size.
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	if sf.frameTexture != nil {
		// previous frame was never presented; drop it
		sf.releaseFrame()
	}
	tx, err := sf.surface.GetCurrentTexture()
	if err != nil {
		return nil, errors.Log(&SizeMismatchError{
			Frame:      sf.Format.Size,
			Attachment: sf.render.Format.Size,
			Err:        err,
		})
	}
	view, err := tx.CreateView(nil)
	if err != nil {
		tx.Release()
		return nil, errors.Log(err)
	}
	sf.frameTexture = tx
	sf.frameView = view
	return view, nil
}

// Present presents the acquired frame to the window and releases it.
// Does nothing if no frame is held.
func (sf *Surface) Present() {
	if sf.frameTexture == nil {
		return
	}
	sf.surface.Present()
	sf.releaseFrame()
}

func (sf *Surface) releaseFrame() {
	if sf.frameView != nil {
		sf.frameView.Release()
		sf.frameView = nil
	}
	if sf.frameTexture != nil {
		sf.frameTexture.Release()
		sf.frameTexture = nil
	}
}

// SetSize reconfigures the swapchain and the render attachments at
// the new size. Does nothing if the size is unchanged.
func (sf *Surface) SetSize(size image.Point) {
	if sf.Format.Size == size {
		return
	}
	sf.releaseFrame()
	sf.Format.Size = size
	errors.Log(sf.configSurface())
	errors.Log(sf.render.SetSize(size))
}

// Release releases any held frame, the render attachments, the
// surface, and the owned device.
func (sf *Surface) Release() {
	sf.releaseFrame()
	sf.render.Release()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	sf.device.Release()
}
