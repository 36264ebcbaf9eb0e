package shape

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Errors returned by the generators and by Mesh.Validate.
var (
	// ErrInvalidArgument is returned for out-of-range generator parameters.
	ErrInvalidArgument = errors.New("shape: invalid argument")

	// ErrCapacity is returned when a mesh would need more vertices than
	// 16-bit indices can address. It wraps ErrInvalidArgument.
	ErrCapacity = fmt.Errorf("%w: exceeds 16-bit index range", ErrInvalidArgument)

	// ErrInvalidMesh is returned by Validate.
	ErrInvalidMesh = errors.New("shape: invalid mesh")
)

// MaxVertices is the number of distinct vertices a uint16 index can address.
const MaxVertices = 1 << 16

// VertexStride is the byte size of one interleaved vertex in VertexData:
// position (3 x float32), normal (3 x float32), texcoord (2 x float32).
const VertexStride = 32

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint16
}

// NumVertices returns the number of vertices.
func (m Mesh) NumVertices() int { return len(m.Vertices) }

// NumIndices returns the number of indices.
func (m Mesh) NumIndices() int { return len(m.Indices) }

// NumTriangles returns the number of triangles.
func (m Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// Triangle returns the vertex indices of triangle t.
func (m Mesh) Triangle(t int) [3]uint16 {
	return [3]uint16{m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]}
}

// Validate checks the structural invariants of the mesh: parallel vertex
// attribute slices, whole triangles, and indices in range.
func (m Mesh) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n || len(m.TexCoords) != n {
		return fmt.Errorf("%w: %d vertices, %d normals, %d texcoords",
			ErrInvalidMesh, n, len(m.Normals), len(m.TexCoords))
	}
	if n > MaxVertices {
		return fmt.Errorf("%w: %d vertices", ErrCapacity, n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at position %d out of range [0,%d)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// VertexData returns the vertex attributes interleaved as little-endian
// float32 values, VertexStride bytes per vertex. Missing normals or texture
// coordinates are written as zeros.
func (m Mesh) VertexData() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i, p := range m.Vertices {
		var n mgl32.Vec3
		var uv mgl32.Vec2
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		if i < len(m.TexCoords) {
			uv = m.TexCoords[i]
		}
		off := i * VertexStride
		for k, f := range [8]float32{p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1]} {
			binary.LittleEndian.PutUint32(buf[off+4*k:], math.Float32bits(f))
		}
	}
	return buf
}

// IndexData returns the indices as little-endian uint16 values.
func (m Mesh) IndexData() []byte {
	buf := make([]byte, 2*len(m.Indices))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(buf[2*i:], idx)
	}
	return buf
}
