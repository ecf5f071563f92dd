// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size, WebGPU format, and multisampling
// of a Texture.
type TextureFormat struct {
	// Size of the texture in pixels.
	Size image.Point

	// Format is the WebGPU texture format: RGBA8Unorm is the default.
	Format wgpu.TextureFormat

	// Samples is the number of multisamples: 1 unless this is a
	// multisample render attachment.
	Samples int
}

// NewTextureFormat returns a new TextureFormat with the default
// format and given size.
func NewTextureFormat(width, height int) *TextureFormat {
	tf := &TextureFormat{}
	tf.Defaults()
	tf.Size = image.Point{width, height}
	return tf
}

func (tf *TextureFormat) Defaults() {
	tf.Format = wgpu.TextureFormatRGBA8Unorm
	tf.Samples = 1
}

// String returns a human-readable version of the format.
func (tf *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %s  Samples: %d", tf.Size, TextureFormatNames[tf.Format], tf.Samples)
}

// SetSize sets the width and height.
func (tf *TextureFormat) SetSize(w, h int) {
	tf.Size = image.Point{X: w, Y: h}
}

// Set sets width, height, and format.
func (tf *TextureFormat) Set(w, h int, ft wgpu.TextureFormat) {
	tf.SetSize(w, h)
	tf.Format = ft
}

// SetMultisample sets the number of multisamples. 4 is the
// standard value for antialiased rendering.
func (tf *TextureFormat) SetMultisample(nsamp int) {
	tf.Samples = nsamp
}

// Size32 returns the size as uint32 values.
func (tf *TextureFormat) Size32() (width, height uint32) {
	return uint32(tf.Size.X), uint32(tf.Size.Y)
}

// Extent3D returns the size as a WebGPU Extent3D.
func (tf *TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// Aspect returns the aspect ratio X / Y.
func (tf *TextureFormat) Aspect() float32 {
	if tf.Size.Y > 0 {
		return float32(tf.Size.X) / float32(tf.Size.Y)
	}
	return 1.3
}

// Bounds returns the rectangle defining this texture: 0,0,w,h.
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// BytesPerPixel returns the number of bytes for one pixel.
func (tf *TextureFormat) BytesPerPixel() int {
	return TextureFormatSizes[tf.Format]
}

// Stride returns the number of bytes per row.
func (tf *TextureFormat) Stride() int {
	return tf.BytesPerPixel() * tf.Size.X
}
