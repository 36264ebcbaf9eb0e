// Package esutil is the common support layer shared by the OpenGL ES style
// rendering demos of the GoGPU ecosystem.
//
// # Overview
//
// The demos themselves are thin sequences of pipeline state changes. The
// reusable pieces live here:
//
//   - shader: compiles and links a vertex/fragment program against an
//     explicitly passed GPU context, releasing every intermediate object on
//     every failure path.
//   - shape: generates indexed sphere and cube meshes with normals and
//     texture coordinates, ready for upload as vertex and index buffers.
//   - transform: 4x4 matrix helpers for building model-view-projection
//     uniforms.
//
// # Backends
//
// The shader builder is written against the shader.Context capability.
// Three implementations ship with the module:
//
//   - backend/native: gogpu/wgpu HAL device, WGSL compiled with gogpu/naga
//   - backend/offline: naga-only validation, no device required
//   - backend/gles: OpenGL ES 2.0 via go-gl (cgo)
//
// The offline backend and a headless variant of the native backend (on the
// wgpu noop device) register themselves with package backend and can be
// selected by name. shader/shadertest provides an in-memory recording
// context for tests, and package shaders bundles ready-made sphere shaders.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/esutil/backend/native"
//	    "github.com/gogpu/esutil/shader"
//	    "github.com/gogpu/esutil/shaders"
//	    "github.com/gogpu/esutil/shape"
//	)
//
//	ctx, err := native.New(device)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Destroy()
//
//	prog, err := shader.Build(ctx, shaders.SphereWGSL, shaders.SphereWGSL)
//	if err != nil {
//	    return err
//	}
//	defer prog.Release()
//
//	sphere, err := shape.Sphere(20, 0.75)
//
// # Logging
//
// esutil is silent by default. Call SetLogger to route diagnostics (compile
// and link logs included) to a slog.Logger.
package esutil

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
