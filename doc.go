// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render provides a retained-mode convenience layer over
// WebGPU for drawing textured, transformed 3D objects without
// touching raw pipeline or binding APIs.
//
// The [System] is the retained context: register a WGSL shader as a
// pipeline with [System.RegisterPipeline], add triangle-list meshes
// to it with [System.AddObject], move them with
// [System.UpdateObject], and draw everything with [System.Render].
// All pipelines share one fixed vertex layout (position, uv, normal
// in three buffers) and one fixed bind group contract: group 0 binds
// the per-object transform block through a dynamic-offset uniform
// buffer along with a texture and sampler, and an optional group 1
// carries caller-declared extra uniforms.
//
// Output goes to a window through [Surface] (created from the
// [GLFWCreateWindow] glue on desktop) or offscreen through
// [RenderTexture]; both implement [Renderer]. Rendering is
// multisampled with depth testing and resolves into the current
// frame, or into a caller texture via [System.RenderTo].
//
// All calls are synchronous and single-threaded; errors are typed
// (see [CompileError], [UnknownPipelineError], and friends) and
// returned immediately, never deferred.
package render
