package shape

import (
	"errors"
	"math"
	"testing"
)

func TestCube(t *testing.T) {
	m, err := Cube(1)
	if err != nil {
		t.Fatalf("Cube(1) error = %v", err)
	}
	if m.NumVertices() != 24 {
		t.Errorf("NumVertices = %d, want 24", m.NumVertices())
	}
	if m.NumIndices() != 36 {
		t.Errorf("NumIndices = %d, want 36", m.NumIndices())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	for i, n := range m.Normals {
		if n.Len() != 1 {
			t.Errorf("normal[%d] = %v is not unit length", i, n)
		}
		axes := 0
		for _, c := range n {
			if c != 0 {
				axes++
			}
		}
		if axes != 1 {
			t.Errorf("normal[%d] = %v is not axis aligned", i, n)
		}
	}
}

func TestCubeWindingFacesOutward(t *testing.T) {
	m, err := Cube(2)
	if err != nil {
		t.Fatal(err)
	}
	for tri := range m.NumTriangles() {
		idx := m.Triangle(tri)
		a, b, c := m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]
		cross := b.Sub(a).Cross(c.Sub(a))
		if cross.Dot(m.Normals[idx[0]]) <= 0 {
			t.Errorf("triangle %d %v is not counter-clockwise around its face normal", tri, idx)
		}
	}
}

func TestCubeScale(t *testing.T) {
	m, err := Cube(3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		for _, c := range v {
			if math.Abs(float64(c)) != 1.5 {
				t.Fatalf("vertex[%d] = %v, want every coordinate at +-1.5", i, v)
			}
		}
	}
}

func TestCubeInvalidScale(t *testing.T) {
	for _, scale := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		if _, err := Cube(scale); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Cube(%v) error = %v, want ErrInvalidArgument", scale, err)
		}
	}
}
