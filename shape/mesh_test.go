package shape

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

func TestMeshValidate(t *testing.T) {
	tri := Mesh{
		Vertices:  []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		TexCoords: []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Indices:   []uint16{0, 1, 2},
	}
	if err := tri.Validate(); err != nil {
		t.Fatalf("Validate() on a valid triangle = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Mesh)
	}{
		{"missing normal", func(m *Mesh) { m.Normals = m.Normals[:2] }},
		{"missing texcoord", func(m *Mesh) { m.TexCoords = nil }},
		{"partial triangle", func(m *Mesh) { m.Indices = append(m.Indices, 0) }},
		{"index out of range", func(m *Mesh) { m.Indices = []uint16{0, 1, 3} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tri
			m.Indices = append([]uint16(nil), tri.Indices...)
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate() = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestMeshVertexData(t *testing.T) {
	m, err := Sphere(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	data := m.VertexData()
	if len(data) != m.NumVertices()*VertexStride {
		t.Fatalf("len(VertexData) = %d, want %d", len(data), m.NumVertices()*VertexStride)
	}

	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	const k = 7
	base := k * VertexStride
	for c := range 3 {
		if got := read(base + 4*c); got != m.Vertices[k][c] {
			t.Errorf("position[%d] = %v, want %v", c, got, m.Vertices[k][c])
		}
		if got := read(base + 12 + 4*c); got != m.Normals[k][c] {
			t.Errorf("normal[%d] = %v, want %v", c, got, m.Normals[k][c])
		}
	}
	for c := range 2 {
		if got := read(base + 24 + 4*c); got != m.TexCoords[k][c] {
			t.Errorf("texcoord[%d] = %v, want %v", c, got, m.TexCoords[k][c])
		}
	}
}

func TestMeshIndexData(t *testing.T) {
	m := Mesh{Indices: []uint16{1, 0x0203, 0xFFFF}}
	data := m.IndexData()
	want := []byte{1, 0, 3, 2, 0xFF, 0xFF}
	if string(data) != string(want) {
		t.Errorf("IndexData() = %v, want %v", data, want)
	}
}

func TestVertexBufferLayout(t *testing.T) {
	l := VertexBufferLayout()
	if l.ArrayStride != VertexStride {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, VertexStride)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want per-vertex", l.StepMode)
	}
	if len(l.Attributes) != 3 {
		t.Fatalf("len(Attributes) = %d, want 3", len(l.Attributes))
	}
	wantOffsets := []uint64{0, 12, 24}
	for i, a := range l.Attributes {
		if uint64(a.Offset) != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, a.Offset, wantOffsets[i])
		}
		if int(a.ShaderLocation) != i {
			t.Errorf("attribute %d location = %d, want %d", i, a.ShaderLocation, i)
		}
	}
}
