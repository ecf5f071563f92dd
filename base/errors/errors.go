// Copyright (c) 2025, The webgpu-render Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a few helpers on top of the standard library
// errors package, for automatically logging errors at the point where
// they are handled.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// New returns an error that formats as the given text.
// It is a direct passthrough of [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Newf returns a new error with the given format and args,
// per [fmt.Errorf].
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Join wraps [errors.Join], returning an error combining the
// non-nil arguments.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is wraps [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap wraps [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// CallerInfo returns string information about the caller of the
// function that called CallerInfo, for error logging.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s (%s:%d)", runtime.FuncForPC(pc).Name(), file, line)
}

// Log logs the given error if it is non-nil, and returns it either way.
// The standard idiom is:
//
//	if errors.Log(err) != nil {
//	    return err
//	}
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs the given error if it is non-nil and returns the first
// argument either way, for wrapping two-return calls:
//
//	v := errors.Log1(Compute())
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if the given error is non-nil,
// for errors that can not happen in correct code.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 panics if the given error is non-nil and returns
// the first argument otherwise.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Ignore1 returns the first argument and discards the error,
// for the rare call sites where the error is truly irrelevant.
func Ignore1[T any](v T, err error) T {
	return v
}
