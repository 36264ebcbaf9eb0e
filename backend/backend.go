// Package backend is the registry of shader.Context implementations.
//
// Backend packages register a factory from init, so importing a backend is
// enough to make it selectable by name:
//
//	import _ "github.com/gogpu/esutil/backend/offline"
//
//	ctx, err := backend.New(backend.Offline)
//
// Available backends:
//   - offline: WGSL validated by naga, no GPU needed (backend/offline)
//   - headless: the HAL backend on the noop device, which exercises pipeline
//     creation without a GPU (backend/native)
//
// Backends that need a live device, such as backend/native on a real
// adapter or backend/gles on a current GL context, are constructed
// directly instead.
package backend

import (
	"errors"

	"github.com/gogpu/esutil/shader"
)

// Registered backend names.
const (
	Offline  = "offline"
	Headless = "headless"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Context is a shader.Context that owns resources beyond its shader and
// program objects. Close releases them.
type Context interface {
	shader.Context

	// Outstanding returns the number of shader and program objects that
	// have not been deleted.
	Outstanding() int

	// Close releases the context. It must not be used afterwards.
	Close()
}
