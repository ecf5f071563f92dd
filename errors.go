// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
)

// UnsupportedError indicates that the platform provides no WebGPU
// access at all. Initialization cannot be retried.
type UnsupportedError struct {
	Err error
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("render: WebGPU is not supported on this platform: %v", e.Err)
}

func (e *UnsupportedError) Unwrap() error { return e.Err }

// NoAdapterError indicates that no suitable GPU adapter was found.
type NoAdapterError struct {
	Err error
}

func (e *NoAdapterError) Error() string {
	return fmt.Sprintf("render: no suitable GPU adapter found: %v", e.Err)
}

func (e *NoAdapterError) Unwrap() error { return e.Err }

// SurfaceError indicates that the output surface could not be
// bound or configured.
type SurfaceError struct {
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("render: could not configure output surface: %v", e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// CompileError indicates that shader compilation or pipeline
// construction failed, with the underlying diagnostic attached.
type CompileError struct {
	Name string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("render: pipeline %q failed to compile: %v", e.Name, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// UnknownPipelineError indicates a pipeline handle that was never
// issued by RegisterPipeline.
type UnknownPipelineError struct {
	Pipeline PipelineHandle
}

func (e *UnknownPipelineError) Error() string {
	return fmt.Sprintf("render: unknown pipeline handle %d", e.Pipeline)
}

// UnknownObjectError indicates an object id not present in the
// given pipeline.
type UnknownObjectError struct {
	Pipeline PipelineHandle
	Object   ObjectID
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("render: unknown object %d in pipeline %d", e.Object, e.Pipeline)
}

// DegenerateGeometryError indicates geometry with fewer than 3
// positions, which cannot form a triangle.
type DegenerateGeometryError struct {
	Count int
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("render: geometry has %d positions, need at least 3", e.Count)
}

// UniformShapeError indicates extra uniform data whose count or
// per-value length does not match the declarations made at
// pipeline registration.
type UniformShapeError struct {
	Index int // declaration index, -1 for a count mismatch
	Want  int
	Got   int
}

func (e *UniformShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("render: %d uniform values supplied, pipeline declares %d", e.Got, e.Want)
	}
	return fmt.Sprintf("render: uniform value %d has %d floats, declaration requires %d", e.Index, e.Got, e.Want)
}

// SizeMismatchError indicates that the output frame no longer
// matches the render attachments: a Resize must complete before
// rendering at a new size. Err carries the underlying frame
// acquisition diagnostic when there is one.
type SizeMismatchError struct {
	Frame      image.Point
	Attachment image.Point
	Err        error
}

func (e *SizeMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render: frame at size %v is no longer valid for attachment size %v; call Resize first: %v", e.Frame, e.Attachment, e.Err)
	}
	return fmt.Sprintf("render: frame size %v does not match attachment size %v; call Resize first", e.Frame, e.Attachment)
}

func (e *SizeMismatchError) Unwrap() error { return e.Err }

// InvalidTargetError indicates a render-to-texture target whose
// size does not match the current render attachments.
type InvalidTargetError struct {
	Target     image.Point
	Attachment image.Point
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("render: target texture size %v does not match attachment size %v", e.Target, e.Attachment)
}

// CapacityExceededError indicates an AddObject call beyond the
// object count the pipeline was registered with.
type CapacityExceededError struct {
	Pipeline PipelineHandle
	Max      int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("render: pipeline %d is full: registered for at most %d objects", e.Pipeline, e.Max)
}
