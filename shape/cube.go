package shape

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube face data: four vertices per face so that every face gets its own
// normal and full 0..1 texture coordinates. Faces in order: -Y, +Y, -Z,
// +Z, -X, +X.
var (
	cubeVertices = [24]mgl32.Vec3{
		{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5},
		{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5},
		{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5},
		{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5},
		{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5},
		{0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5},
	}

	cubeNormals = [6]mgl32.Vec3{
		{0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0},
	}

	cubeTexCoords = [24]mgl32.Vec2{
		{0, 0}, {0, 1}, {1, 1}, {1, 0},
		{1, 0}, {1, 1}, {0, 1}, {0, 0},
		{0, 0}, {0, 1}, {1, 1}, {1, 0},
		{0, 0}, {0, 1}, {1, 1}, {1, 0},
		{0, 0}, {0, 1}, {1, 1}, {1, 0},
		{0, 0}, {0, 1}, {1, 1}, {1, 0},
	}

	// Triangles are counter-clockwise when seen from outside the cube.
	cubeIndices = [36]uint16{
		0, 2, 1, 0, 3, 2,
		4, 5, 6, 4, 6, 7,
		8, 9, 10, 8, 10, 11,
		12, 15, 14, 12, 14, 13,
		16, 17, 18, 16, 18, 19,
		20, 23, 22, 20, 22, 21,
	}
)

// Cube returns an axis-aligned cube centered at the origin with edge length
// scale. Use 1 for a unit cube.
//
// Cube returns ErrInvalidArgument if scale is not a positive finite number.
func Cube(scale float32) (Mesh, error) {
	if !(scale > 0) || math32.IsInf(scale, 1) {
		return Mesh{}, fmt.Errorf("%w: cube scale must be positive, got %v", ErrInvalidArgument, scale)
	}

	m := Mesh{
		Vertices:  make([]mgl32.Vec3, len(cubeVertices)),
		Normals:   make([]mgl32.Vec3, len(cubeVertices)),
		TexCoords: make([]mgl32.Vec2, len(cubeTexCoords)),
		Indices:   make([]uint16, len(cubeIndices)),
	}
	for i, v := range cubeVertices {
		m.Vertices[i] = v.Mul(scale)
		m.Normals[i] = cubeNormals[i/4]
	}
	copy(m.TexCoords, cubeTexCoords[:])
	copy(m.Indices, cubeIndices[:])
	return m, nil
}
