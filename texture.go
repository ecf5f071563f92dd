// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// Texture represents a WebGPU Texture with an associated TextureView.
type Texture struct {
	// Name of the texture, for labeling and debugging.
	// Auto-set to the filename if loaded from a file.
	Name string

	// Format and size of the texture.
	Format TextureFormat

	// WebGPU texture handle, in device memory.
	texture *wgpu.Texture

	// WebGPU texture view.
	view *wgpu.TextureView

	// keep track of device for creating and releasing.
	device Device
}

func NewTexture(dev *Device) *Texture {
	tx := &Texture{}
	tx.device = *dev
	tx.Format.Defaults()
	return tx
}

// SetFromGoImage sets texture data from a standard Go image.
// The pixel rows are flipped vertically on upload, so that uv (0,0)
// addresses the bottom-left of the source image, matching the
// texture coordinate convention of the vertex layout.
// This performs the full WriteTexture call to upload to the device.
func (tx *Texture) SetFromGoImage(img image.Image) error {
	rimg := ImageToRGBA(img)
	sz := rimg.Rect.Size()

	tx.Format.Size = sz
	tx.Format.Format = wgpu.TextureFormatRGBA8Unorm
	tx.Format.Samples = 1

	err := tx.CreateTexture(wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst)
	if err != nil { // already logged
		return err
	}

	flipped := ImageFlipY(rimg)
	size := tx.Format.Extent3D()
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		flipped.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * uint32(sz.X),
			RowsPerImage: uint32(sz.Y),
		},
		&size,
	)
	return nil
}

// CreateTexture creates the texture based on the current Format,
// and a view of that texture. Calls Release first.
func (tx *Texture) CreateTexture(usage wgpu.TextureUsage) error {
	tx.Release()

	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          tx.Format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   uint32(tx.Format.Samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		return err
	}
	tx.view = vw
	return nil
}

// ConfigRenderTarget configures this texture as an uninitialized
// render-target-capable texture of the given size, which can also
// be sampled by pipelines and used as a RenderTo output.
func (tx *Texture) ConfigRenderTarget(dev *Device, size image.Point) error {
	tx.device = *dev
	tx.Format.Defaults()
	tx.Format.Size = size
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment |
		wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst | wgpu.TextureUsageCopySrc)
}

// ConfigFrame configures this texture as a resolve frame for a
// RenderTexture, with single sampling and the given format.
func (tx *Texture) ConfigFrame(dev *Device, fmt *TextureFormat) error {
	tx.device = *dev
	nfmt := *fmt
	nfmt.Samples = 1
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment |
		wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc)
}

// ConfigDepth configures this texture as a depth attachment using
// the given depth format, with size and samples from the given
// render texture format. Does not recreate if already identical.
func (tx *Texture) ConfigDepth(dev *Device, depthType Types, fmt *TextureFormat) error {
	tx.device = *dev
	nfmt := *fmt
	nfmt.Format = depthType.TextureFormat()
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment)
}

// ConfigMulti configures this texture as a multisample color
// attachment using the given format.
// Does not recreate if already identical.
func (tx *Texture) ConfigMulti(dev *Device, fmt *TextureFormat) error {
	tx.device = *dev
	if tx.texture != nil && tx.Format == *fmt {
		return nil
	}
	tx.Format = *fmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment)
}

// View returns the texture view.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

// ReleaseView releases any existing view.
func (tx *Texture) ReleaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// Release releases the view and device texture.
func (tx *Texture) Release() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}
