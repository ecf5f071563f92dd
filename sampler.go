// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// Sampler represents a WebGPU texture sampler.
// Every pipeline bind group uses one with clamp-to-edge addressing
// and linear filtering, which suits non-tiling object textures.
type Sampler struct {
	sampler *wgpu.Sampler
}

// Config creates the sampler on the given device.
func (sm *Sampler) Config(dev *Device) error {
	sm.Release()
	samp, err := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		return err
	}
	sm.sampler = samp
	return nil
}

// Release releases the sampler.
func (sm *Sampler) Release() {
	if sm.sampler == nil {
		return
	}
	sm.sampler.Release()
	sm.sampler = nil
}
