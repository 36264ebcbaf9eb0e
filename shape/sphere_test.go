package shape

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestSphereCounts(t *testing.T) {
	tests := []struct {
		slices       int
		wantVertices int
		wantIndices  int
	}{
		{3, 16, 54},
		{4, 25, 96},
		{20, 441, 2400},
		{MaxSphereSlices, MaxVertices, MaxSphereSlices * MaxSphereSlices * 6},
	}
	for _, tt := range tests {
		m, err := Sphere(tt.slices, 1)
		if err != nil {
			t.Fatalf("Sphere(%d, 1) error = %v", tt.slices, err)
		}
		if got := m.NumVertices(); got != tt.wantVertices {
			t.Errorf("Sphere(%d): NumVertices = %d, want %d", tt.slices, got, tt.wantVertices)
		}
		if got := m.NumIndices(); got != tt.wantIndices {
			t.Errorf("Sphere(%d): NumIndices = %d, want %d", tt.slices, got, tt.wantIndices)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("Sphere(%d): Validate() = %v", tt.slices, err)
		}
	}
}

func TestSphereNormalsAreUnit(t *testing.T) {
	for _, slices := range []int{3, 4, 7, 16, 64, MaxSphereSlices} {
		for _, radius := range []float32{0.01, 1, 7.5, 1000} {
			m, err := Sphere(slices, radius)
			if err != nil {
				t.Fatalf("Sphere(%d, %v) error = %v", slices, radius, err)
			}
			for i, n := range m.Normals {
				if l := n.Len(); math.Abs(float64(l)-1) > eps {
					t.Fatalf("Sphere(%d, %v): |normal[%d]| = %v, want 1", slices, radius, i, l)
				}
			}
		}
	}
}

func TestSphereVerticesOnSurface(t *testing.T) {
	const radius = 2.5
	m, err := Sphere(12, radius)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if l := v.Len(); math.Abs(float64(l)-radius) > radius*eps {
			t.Errorf("|vertex[%d]| = %v, want %v", i, l, radius)
		}
		if !v.Mul(1 / float32(radius)).ApproxEqualThreshold(m.Normals[i], eps) {
			t.Errorf("normal[%d] = %v, want vertex/radius = %v", i, m.Normals[i], v.Mul(1/float32(radius)))
		}
	}
}

func TestSpherePositions(t *testing.T) {
	m, err := Sphere(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	const stride = 5
	tests := []struct {
		i, j int
		want mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{0, 2, 0}},  // north pole
		{1, 0, mgl32.Vec3{0, 0, 2}},  // equator, j=0 faces +Z
		{1, 1, mgl32.Vec3{2, 0, 0}},  // equator, quarter turn to +X
		{2, 3, mgl32.Vec3{0, -2, 0}}, // south pole
	}
	for _, tt := range tests {
		got := m.Vertices[tt.i*stride+tt.j]
		if !got.ApproxEqualThreshold(tt.want, eps) {
			t.Errorf("vertex(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestSphereTexCoordSeam(t *testing.T) {
	for _, slices := range []int{3, 4, 10, 33} {
		m, err := Sphere(slices, 1)
		if err != nil {
			t.Fatal(err)
		}
		stride := slices + 1
		for i := 0; i <= slices; i++ {
			first, last := i*stride, i*stride+slices
			if u := m.TexCoords[first][0]; u != 0 {
				t.Errorf("slices=%d ring %d: u at j=0 is %v, want 0", slices, i, u)
			}
			if u := m.TexCoords[last][0]; u != 1 {
				t.Errorf("slices=%d ring %d: u at j=slices is %v, want 1", slices, i, u)
			}
			if m.TexCoords[first][1] != m.TexCoords[last][1] {
				t.Errorf("slices=%d ring %d: seam v differs", slices, i)
			}
			if !m.Vertices[first].ApproxEqualThreshold(m.Vertices[last], eps) {
				t.Errorf("slices=%d ring %d: seam vertices %v and %v differ",
					slices, i, m.Vertices[first], m.Vertices[last])
			}
		}
	}
}

func TestSphereTexCoordV(t *testing.T) {
	m, err := Sphere(4, 1)
	if err != nil {
		t.Fatal(err)
	}
	// v = (1 - i) / (numParallels - 1) with numParallels = 4.
	want := []float32{1.0 / 3, 0, -1.0 / 3, -2.0 / 3, -1}
	for i, v := range want {
		if got := m.TexCoords[i*5][1]; math.Abs(float64(got-v)) > eps {
			t.Errorf("ring %d: v = %v, want %v", i, got, v)
		}
	}
}

func TestSphereIndexLayout(t *testing.T) {
	m, err := Sphere(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	// First cell (0,0): stride 4.
	want := []uint16{0, 4, 5, 0, 5, 1}
	if !reflect.DeepEqual(m.Indices[:6], want) {
		t.Errorf("first cell indices = %v, want %v", m.Indices[:6], want)
	}
	// Last cell (2,2).
	want = []uint16{10, 14, 15, 10, 15, 11}
	if got := m.Indices[len(m.Indices)-6:]; !reflect.DeepEqual(got, want) {
		t.Errorf("last cell indices = %v, want %v", got, want)
	}
}

// signedArea2 returns twice the signed area of a triangle in texture space.
func signedArea2(a, b, c mgl32.Vec2) float32 {
	ab, ac := b.Sub(a), c.Sub(a)
	return ab[0]*ac[1] - ab[1]*ac[0]
}

func TestSphereWindingConsistent(t *testing.T) {
	for _, slices := range []int{3, 4, 9, 32} {
		m, err := Sphere(slices, 1)
		if err != nil {
			t.Fatal(err)
		}
		for tri := range m.NumTriangles() {
			idx := m.Triangle(tri)
			area := signedArea2(m.TexCoords[idx[0]], m.TexCoords[idx[1]], m.TexCoords[idx[2]])
			if area <= 0 {
				t.Fatalf("slices=%d triangle %d %v: texture-space signed area %v, want > 0",
					slices, tri, idx, area)
			}
		}
	}
}

func TestSphereUpperHemisphereFacesOneWay(t *testing.T) {
	for _, slices := range []int{8, 16, 32} {
		m, err := Sphere(slices, 1)
		if err != nil {
			t.Fatal(err)
		}
		// Rings strictly above the south pole of the first sweep.
		cells := (slices/2 - 1) * slices
		for tri := range 2 * cells {
			idx := m.Triangle(tri)
			a, b, c := m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]
			n := b.Sub(a).Cross(c.Sub(a))
			if n.Len() < eps {
				continue // collapsed at the pole
			}
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			if n.Dot(centroid) <= 0 {
				t.Fatalf("slices=%d triangle %d %v faces inward", slices, tri, idx)
			}
		}
	}
}

func TestSphereDeterministic(t *testing.T) {
	a, err := Sphere(17, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sphere(17, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Sphere is not deterministic")
	}
}

func TestSphereInvalidArguments(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())
	tests := []struct {
		name   string
		slices int
		radius float32
	}{
		{"one slice", 1, 1},
		{"two slices", 2, 1},
		{"zero slices", 0, 1},
		{"negative slices", -4, 1},
		{"zero radius", 3, 0},
		{"negative radius", 3, -1},
		{"NaN radius", 3, nan},
		{"infinite radius", 3, inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Sphere(tt.slices, tt.radius)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Sphere(%d, %v) error = %v, want ErrInvalidArgument", tt.slices, tt.radius, err)
			}
			if errors.Is(err, ErrCapacity) {
				t.Errorf("Sphere(%d, %v) reported a capacity error", tt.slices, tt.radius)
			}
			if m.NumVertices() != 0 || m.NumIndices() != 0 {
				t.Error("failed Sphere returned a non-empty mesh")
			}
		})
	}
}

func TestSphereCapacity(t *testing.T) {
	for _, slices := range []int{MaxSphereSlices + 1, 300, 1 << 20} {
		_, err := Sphere(slices, 1)
		if !errors.Is(err, ErrCapacity) {
			t.Errorf("Sphere(%d) error = %v, want ErrCapacity", slices, err)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Sphere(%d) capacity error should also match ErrInvalidArgument", slices)
		}
	}

	m, err := Sphere(MaxSphereSlices, 1)
	if err != nil {
		t.Fatalf("Sphere(%d) error = %v", MaxSphereSlices, err)
	}
	var maxIdx uint16
	for _, idx := range m.Indices {
		maxIdx = max(maxIdx, idx)
	}
	if maxIdx != math.MaxUint16 {
		t.Errorf("largest index = %d, want %d", maxIdx, math.MaxUint16)
	}
}

func BenchmarkSphere(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_, _ = Sphere(64, 1)
	}
}
