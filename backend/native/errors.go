//go:build !nogpu

package native

import "errors"

// Package errors for the HAL backend.
var (
	// ErrNilDevice is returned when a context is created without a device.
	ErrNilDevice = errors.New("native: nil device")

	// ErrNoHALDevice is returned when a device provider does not expose a
	// hal.Device.
	ErrNoHALDevice = errors.New("native: provider does not expose a hal.Device")

	// ErrUnsupportedStage is returned by CreateShader for stages other than
	// vertex and fragment.
	ErrUnsupportedStage = errors.New("native: unsupported shader stage")

	// ErrDestroyed is returned when a destroyed context is used.
	ErrDestroyed = errors.New("native: context destroyed")
)
