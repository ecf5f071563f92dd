// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
	"github.com/sinsinkun/webgpu-render/base/slicesx"
)

// TransformBlockSize is the byte size of one per-object transform
// block: three 4x4 float32 matrices (model, view, projection).
const TransformBlockSize = 3 * 64

// MemSizeAlign returns the size aligned according to align byte increments
// e.g., if align = 16 and size = 12, it returns 16
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}

// TransformStride returns the byte stride between per-object transform
// blocks: [TransformBlockSize] padded up to the given alignment, which
// must be the device-reported MinUniformBufferOffsetAlignment.
func TransformStride(align int) int {
	return MemSizeAlign(TransformBlockSize, align)
}

// Uniforms is the dynamic-offset uniform allocator for one pipeline.
// One buffer holds DynamicN transform blocks, each padded out to
// AlignVarSize, so a draw call can select its block with a dynamic
// offset of AlignVarSize * slot against a binding of VarSize bytes.
// Updates land in a CPU staging buffer first and are flushed with
// [Uniforms.WriteBuffer].
type Uniforms struct {
	// VarSize is the byte size of one transform block.
	VarSize int

	// AlignVarSize is VarSize subject to memory alignment constraints,
	// the stride between blocks.
	AlignVarSize int

	// DynamicN is the number of blocks allocated.
	DynamicN int

	// AllocSize is the total buffer allocation: AlignVarSize * DynamicN.
	AllocSize int

	// dynamicBuffer is a CPU-based staging buffer for the block data,
	// so that updates can be done on multiple blocks prior to a single
	// write of the entire buffer up to the device.
	dynamicBuffer []byte

	// buffer is the GPU buffer, of AllocSize bytes.
	buffer *wgpu.Buffer

	device Device
}

// NewUniforms allocates a uniform buffer holding n transform blocks,
// with the block stride aligned per the GPU's reported uniform offset
// alignment. The allocation is eager and never resized.
func NewUniforms(gp *GPU, dev *Device, n int) (*Uniforms, error) {
	un := &Uniforms{VarSize: TransformBlockSize, DynamicN: n}
	un.device = *dev
	un.AlignVarSize = TransformStride(gp.UniformAlignment())
	un.AllocSize = un.AlignVarSize * un.DynamicN
	un.dynamicBuffer = slicesx.SetLength(un.dynamicBuffer, un.AllocSize)
	buf, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Uniforms",
		Contents: un.dynamicBuffer,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	un.buffer = buf
	if Debug {
		slog.Info("render.Uniforms allocated", "blocks", un.DynamicN,
			"stride", un.AlignVarSize, "bytes", un.AllocSize)
	}
	return un, nil
}

// DynamicOffset returns the dynamic offset selecting the block at
// the given index.
func (un *Uniforms) DynamicOffset(idx int) uint32 {
	return uint32(idx * un.AlignVarSize)
}

// SetBlock copies one transform block into the staging buffer at the
// given index. Call [Uniforms.WriteBuffer] after all blocks being
// updated have been set, to flush up to the device.
func (un *Uniforms) SetBlock(idx int, from []byte) error {
	if idx < 0 || idx >= un.DynamicN {
		return errors.Log(errors.Newf("render.Uniforms SetBlock: index %d out of range %d", idx, un.DynamicN))
	}
	if len(from) != un.VarSize {
		return errors.Log(errors.Newf("render.Uniforms SetBlock: data is %d bytes, block is %d", len(from), un.VarSize))
	}
	off := idx * un.AlignVarSize
	copy(un.dynamicBuffer[off:off+un.VarSize], from)
	return nil
}

// WriteBuffer writes the staging buffer up to the GPU device.
// If this is not called, set blocks will not be used!
func (un *Uniforms) WriteBuffer() error {
	if un.buffer == nil {
		return errors.Log(errors.New("render.Uniforms WriteBuffer: buffer is released"))
	}
	return errors.Log(un.device.Queue.WriteBuffer(un.buffer, 0, un.dynamicBuffer))
}

// bindGroupEntry returns the bind group entry referencing this buffer
// at the given binding. Size is one block; the dynamic offset passed
// at draw time selects which.
func (un *Uniforms) bindGroupEntry(binding int) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: uint32(binding),
		Buffer:  un.buffer,
		Offset:  0,
		Size:    uint64(un.VarSize), // note: size of one element
	}
}

// Release releases the GPU buffer.
func (un *Uniforms) Release() {
	if un.buffer == nil {
		return
	}
	un.buffer.Release()
	un.buffer = nil
}

// ShaderTypes is a list of shader stages that a uniform variable
// can be visible to.
type ShaderTypes int32

const (
	UnknownShader ShaderTypes = iota
	VertexShader
	FragmentShader
)

// ShaderStageFlags maps ShaderTypes to WebGPU shader stage flags.
var ShaderStageFlags = map[ShaderTypes]wgpu.ShaderStage{
	UnknownShader:  wgpu.ShaderStageNone,
	VertexShader:   wgpu.ShaderStageVertex,
	FragmentShader: wgpu.ShaderStageFragment,
}

// UniformVar declares one extra uniform variable for a pipeline,
// bound in group 1 at the given binding, beyond the standard
// per-object transforms in group 0. Values are supplied through
// [ObjectUpdate.Uniforms] in declaration order.
type UniformVar struct {
	// Name of the variable, for buffer labels and diagnostics.
	Name string

	// Binding is the binding index within group 1.
	Binding int

	// Type of the value. Must be a uniform-compatible type:
	// Float32, Float32Vector2, Float32Vector4, or Float32Matrix4.
	Type Types

	// Shaders is the stage that reads this variable.
	Shaders ShaderTypes
}

// uniformValue is the runtime buffer for one declared [UniformVar].
type uniformValue struct {
	vr     UniformVar
	buffer *wgpu.Buffer
	device Device
}

// newUniformValue allocates the buffer for one declared variable,
// zero-initialized at the declared type's size.
func newUniformValue(dev *Device, vr UniformVar) (*uniformValue, error) {
	uv := &uniformValue{vr: vr}
	uv.device = *dev
	buf, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    vr.Name,
		Contents: make([]byte, vr.Type.Bytes()),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	uv.buffer = buf
	return uv, nil
}

// nfloat32 returns the number of float32 components of the
// declared type.
func (uv *uniformValue) nfloat32() int {
	return uv.vr.Type.Bytes() / 4
}

// setFromFloats writes the given values to the device buffer.
// The length must already have been validated against the type.
func (uv *uniformValue) setFromFloats(vals []float32) error {
	return errors.Log(uv.device.Queue.WriteBuffer(uv.buffer, 0, wgpu.ToBytes(vals)))
}

func (uv *uniformValue) bindGroupEntry() wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: uint32(uv.vr.Binding),
		Buffer:  uv.buffer,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

func (uv *uniformValue) Release() {
	if uv.buffer == nil {
		return
	}
	uv.buffer.Release()
	uv.buffer = nil
}
