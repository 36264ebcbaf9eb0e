package wgsl

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// ErrEmptySource is returned when there is no WGSL to compile.
var ErrEmptySource = errors.New("wgsl: empty source")

// Compile validates src with naga and returns the SPIR-V binary.
func Compile(src string) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmptySource
	}
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, err
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("wgsl: SPIR-V size %d is not a multiple of 4", len(spirv))
	}
	return spirv, nil
}

// CompileWords compiles src and returns the SPIR-V as little-endian 32-bit
// words, the form hal.ShaderSource expects.
func CompileWords(src string) ([]uint32, error) {
	spirv, err := Compile(src)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}
