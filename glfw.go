// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package render

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sinsinkun/webgpu-render/base/errors"
)

// note: this file contains the glfw dependencies, for desktop platform builds.
// other platforms (mobile, web) need to provide their own Init() and
// Terminate() methods.

// Init initializes the WebGPU system for display-enabled use, using glfw.
// Must be called before any windowed use of this package.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down the WebGPU system. Call as the last thing
// before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// GLFWCreateWindow is a helper function intended only for use in simple
// examples that makes a new window with glfw on platforms that support
// it. The returned surface is passed to [NewSurface]; the resize
// callback fires with the new size on window size changes, where the
// caller should invoke [System.Resize].
func GLFWCreateWindow(size image.Point, title string, resize *func(size image.Point)) (surface *wgpu.Surface, terminate func(), pollEvents func() bool, actualSize image.Point, err error) {
	if err = Init(); err != nil {
		return
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		return
	}
	inst := Instance()
	surface = inst.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	terminate = func() {
		window.Destroy()
		Terminate()
	}
	pollEvents = func() bool {
		if window.ShouldClose() {
			return false
		}
		glfw.PollEvents()
		return true
	}
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		if resize != nil {
			(*resize)(image.Point{width, height})
		}
	})
	actualSize = size
	return
}
