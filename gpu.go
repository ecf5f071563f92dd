// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// Debug enables verbose diagnostic logging of adapter properties,
// pipeline construction, and buffer allocation.
var Debug = false

var theInstance *wgpu.Instance

// Instance returns the shared WebGPU instance, creating it if needed.
// Window glue uses it to create surfaces from OS windows.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// GPU represents the GPU hardware selected for rendering,
// via a WebGPU adapter. It provides the platform limits that
// drive uniform buffer layout, most importantly
// MinUniformBufferOffsetAlignment, which is read at runtime
// and never assumed.
type GPU struct {
	// Name is the name given to Config, used to label devices.
	Name string

	// Adapter is the underlying WebGPU adapter.
	Adapter *wgpu.Adapter

	// Limits are the platform limits reported by the adapter.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU in an unconfigured state.
// Call Config before any other use.
func NewGPU() *GPU {
	return &GPU{}
}

// Config configures the GPU under the given name, requesting an
// adapter and reading its limits. An optional compatible surface
// can be passed so the adapter is selected for presenting to it.
// Returns an [UnsupportedError] if the platform has no WebGPU
// access at all, and a [NoAdapterError] if no adapter is found.
func (gp *GPU) Config(name string, surface ...*wgpu.Surface) error {
	gp.Name = name
	inst := Instance()
	if inst == nil {
		return errors.Log(&UnsupportedError{Err: errors.New("no WebGPU instance available")})
	}
	opts := &wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	}
	if len(surface) > 0 {
		opts.CompatibleSurface = surface[0]
	}
	adapter, err := inst.RequestAdapter(opts)
	if err != nil {
		return errors.Log(&NoAdapterError{Err: err})
	}
	gp.Adapter = adapter
	gp.Limits = adapter.GetLimits()
	if Debug {
		slog.Info("render.GPU configured", "name", name,
			"minUniformBufferOffsetAlignment", gp.Limits.Limits.MinUniformBufferOffsetAlignment,
			"maxTextureDimension2D", gp.Limits.Limits.MaxTextureDimension2D)
	}
	return nil
}

// UniformAlignment returns the minimum uniform buffer offset
// alignment of this GPU, in bytes.
func (gp *GPU) UniformAlignment() int {
	return int(gp.Limits.Limits.MinUniformBufferOffsetAlignment)
}

// Release releases the adapter resources.
func (gp *GPU) Release() {
	if gp.Adapter == nil {
		return
	}
	gp.Adapter.Release()
	gp.Adapter = nil
}

// NoDisplayGPU returns a GPU and Device configured without any
// output surface, for offscreen rendering and testing.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp := NewGPU()
	if err := gp.Config("nodisplay"); err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	return gp, dev, err
}
