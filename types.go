// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Types is the closed set of GPU data types supported for vertex
// streams, extra uniform declarations, and texture formats.
// Note that Float32Vector3 is only usable for vertex data:
// uniform std140 rules pad vec3 to 16 bytes, so a tightly packed
// vec3 uniform would not line up with the shader's view of it.
type Types int32

const (
	UndefinedType Types = iota

	Float32
	Float32Vector2
	Float32Vector3 // vertex data only, see note above
	Float32Vector4

	Float32Matrix4

	TextureRGBA32

	Depth24
	Depth32
)

var typeNames = map[Types]string{
	UndefinedType:  "UndefinedType",
	Float32:        "Float32",
	Float32Vector2: "Float32Vector2",
	Float32Vector3: "Float32Vector3",
	Float32Vector4: "Float32Vector4",
	Float32Matrix4: "Float32Matrix4",
	TextureRGBA32:  "TextureRGBA32",
	Depth24:        "Depth24",
	Depth32:        "Depth32",
}

func (tp Types) String() string {
	if nm, ok := typeNames[tp]; ok {
		return nm
	}
	return "Types(?)"
}

// TypeSizes gives the data type sizes in bytes.
var TypeSizes = map[Types]int{
	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,
	Float32Matrix4: 64,
	TextureRGBA32:  4,
	Depth24:        4,
	Depth32:        4,
}

// Bytes returns the number of bytes for this type.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// TypeToVertexFormat maps Types to the WebGPU VertexFormat.
var TypeToVertexFormat = map[Types]wgpu.VertexFormat{
	UndefinedType:  wgpu.VertexFormatUndefined,
	Float32:        wgpu.VertexFormatFloat32,
	Float32Vector2: wgpu.VertexFormatFloat32x2,
	Float32Vector3: wgpu.VertexFormatFloat32x3,
	Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// VertexFormat returns the WebGPU VertexFormat for given type.
func (tp Types) VertexFormat() wgpu.VertexFormat {
	return TypeToVertexFormat[tp]
}

// TypeToTextureFormat maps Types to the WebGPU TextureFormat.
// Object textures use the linear (non-sRGB) RGBA format so that
// sampled values match the bytes uploaded from Go images.
var TypeToTextureFormat = map[Types]wgpu.TextureFormat{
	TextureRGBA32: wgpu.TextureFormatRGBA8Unorm,
	Depth24:       wgpu.TextureFormatDepth24Plus,
	Depth32:       wgpu.TextureFormatDepth32Float,
}

// TextureFormat returns the WebGPU TextureFormat for given type.
func (tp Types) TextureFormat() wgpu.TextureFormat {
	return TypeToTextureFormat[tp]
}

// TextureFormatSizes gives the size in bytes of one pixel for the
// WebGPU TextureFormats used here.
var TextureFormatSizes = map[wgpu.TextureFormat]int{
	wgpu.TextureFormatUndefined:      0,
	wgpu.TextureFormatRGBA8Unorm:     4,
	wgpu.TextureFormatRGBA8UnormSrgb: 4,
	wgpu.TextureFormatBGRA8Unorm:     4,
	wgpu.TextureFormatBGRA8UnormSrgb: 4,
	wgpu.TextureFormatDepth24Plus:    4,
	wgpu.TextureFormatDepth32Float:   4,
}

// TextureFormatNames gives human-readable names for the WebGPU
// TextureFormats used here.
var TextureFormatNames = map[wgpu.TextureFormat]string{
	wgpu.TextureFormatRGBA8Unorm:     "RGBA 8bit unsigned linear colorspace",
	wgpu.TextureFormatRGBA8UnormSrgb: "RGBA 8bit sRGB colorspace",
	wgpu.TextureFormatBGRA8Unorm:     "BGRA 8bit unsigned linear colorspace",
	wgpu.TextureFormatBGRA8UnormSrgb: "BGRA 8bit sRGB colorspace",
	wgpu.TextureFormatDepth24Plus:    "24bit depth",
	wgpu.TextureFormatDepth32Float:   "32bit floating point depth",
}
