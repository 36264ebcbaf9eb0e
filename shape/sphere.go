package shape

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSphereSlices is the largest slice count Sphere accepts: a sphere with
// s slices has (s+1)^2 vertices, which must fit 16-bit indices.
const MaxSphereSlices = 255

// Sphere tessellates a sphere of the given radius centered at the origin.
//
// The vertex grid has slices+1 rings of slices+1 vertices each, with
// angular step 2*Pi/slices in both directions. The last column of every
// ring duplicates the first so that texture coordinates get a clean seam
// (u runs from 0 to 1 inclusive). Normals are the positions divided by the
// radius.
//
// Each grid cell contributes two triangles with the same winding:
// (i,j) (i+1,j) (i+1,j+1) and (i,j) (i+1,j+1) (i,j+1).
//
// Sphere returns ErrInvalidArgument if slices < 3 or radius is not a
// positive finite number, and ErrCapacity if slices > MaxSphereSlices.
func Sphere(slices int, radius float32) (Mesh, error) {
	if slices < 3 {
		return Mesh{}, fmt.Errorf("%w: sphere needs at least 3 slices, got %d", ErrInvalidArgument, slices)
	}
	if !(radius > 0) || math32.IsInf(radius, 1) {
		return Mesh{}, fmt.Errorf("%w: sphere radius must be positive, got %v", ErrInvalidArgument, radius)
	}
	if slices > MaxSphereSlices {
		return Mesh{}, fmt.Errorf("%w: %d slices need %d vertices, limit is %d",
			ErrCapacity, slices, (slices+1)*(slices+1), MaxVertices)
	}

	numParallels := slices
	stride := slices + 1
	numVertices := (numParallels + 1) * stride
	numIndices := numParallels * slices * 6
	angleStep := 2 * math32.Pi / float32(slices)

	m := Mesh{
		Vertices:  make([]mgl32.Vec3, numVertices),
		Normals:   make([]mgl32.Vec3, numVertices),
		TexCoords: make([]mgl32.Vec2, numVertices),
		Indices:   make([]uint16, 0, numIndices),
	}

	for i := 0; i <= numParallels; i++ {
		sinI, cosI := math32.Sincos(angleStep * float32(i))
		v := (1 - float32(i)) / float32(numParallels-1)
		for j := 0; j <= slices; j++ {
			sinJ, cosJ := math32.Sincos(angleStep * float32(j))
			p := mgl32.Vec3{radius * sinI * sinJ, radius * cosI, radius * sinI * cosJ}

			k := i*stride + j
			m.Vertices[k] = p
			m.Normals[k] = mgl32.Vec3{p[0] / radius, p[1] / radius, p[2] / radius}
			m.TexCoords[k] = mgl32.Vec2{float32(j) / float32(slices), v}
		}
	}

	for i := 0; i < numParallels; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*stride + j)
			b := uint16((i+1)*stride + j)
			c := uint16((i+1)*stride + j + 1)
			d := uint16(i*stride + j + 1)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}

	return m, nil
}
