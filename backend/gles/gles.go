// Package gles implements shader.Context on OpenGL ES 2.0 through go-gl.
//
// The package needs cgo and a GL context made current by the caller, for
// example with GLFW or EGL. Call Init once after the context is current.
// Build with the nogl tag to leave the GL bindings out.
package gles

import (
	"errors"
	"strings"
)

var (
	// ErrInit is returned when the GL entry points cannot be loaded.
	ErrInit = errors.New("gles: init failed")

	// ErrCreateFailed is returned when GL returns a zero object name.
	ErrCreateFailed = errors.New("gles: object creation failed")

	// ErrUnsupportedStage is returned by CreateShader for stages other than
	// vertex and fragment.
	ErrUnsupportedStage = errors.New("gles: unsupported shader stage")
)

// cString returns s terminated by a single NUL, as GL expects.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// trimInfoLog converts a GL info log buffer to a string, dropping the NUL
// terminator and trailing whitespace.
func trimInfoLog(buf []byte) string {
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.TrimRight(string(buf), " \t\r\n")
}
