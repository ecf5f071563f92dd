// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// Device holds the logical device and associated queue.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command submission queue for this device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for the given configured GPU.
// A Surface owns its own device; offscreen rendering uses one
// created here.
func NewDevice(gp *GPU) (*Device, error) {
	wdev, err := gp.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: gp.Name,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return &Device{Device: wdev, Queue: wdev.GetQueue()}, nil
}

// WaitDone waits until the device queue is done with all
// submitted work.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release releases the device and queue.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Queue.Release()
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
