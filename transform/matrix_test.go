package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func approxVec4(a, b mgl32.Vec4) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestIdentity(t *testing.T) {
	m := Identity()
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if m.Float32() != want {
		t.Errorf("Identity() = %v, want %v", m.Float32(), want)
	}

	m.Translate(1, 2, 3)
	m.LoadIdentity()
	if m.Float32() != want {
		t.Errorf("LoadIdentity() = %v, want %v", m.Float32(), want)
	}
}

func TestTranslate(t *testing.T) {
	m := Identity()
	m.Translate(1, 2, 3)
	f := m.Float32()
	if f[12] != 1 || f[13] != 2 || f[14] != 3 {
		t.Errorf("translation elements = %v, want [1 2 3]", f[12:15])
	}
}

func TestScaleThenTranslate(t *testing.T) {
	m := Identity()
	m.Scale(2, 2, 2)
	m.Translate(1, 0, 0)

	// The translation happens in the scaled space.
	got := m.Transform(mgl32.Vec4{0, 0, 0, 1})
	if want := (mgl32.Vec4{2, 0, 0, 1}); !approxVec4(got, want) {
		t.Errorf("origin maps to %v, want %v", got, want)
	}
}

func TestRotate(t *testing.T) {
	m := Identity()
	m.Rotate(90, 0, 0, 1)

	want := mgl32.Mat4{
		0, -1, 0, 0,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	if !m.Mat4().ApproxEqualThreshold(want, eps) {
		t.Errorf("Rotate(90, z) = %v, want %v", m.Mat4(), want)
	}

	// Axis length must not matter.
	n := Identity()
	n.Rotate(90, 0, 0, 5)
	if !n.Mat4().ApproxEqualThreshold(want, eps) {
		t.Errorf("Rotate(90, 5z) = %v, want %v", n.Mat4(), want)
	}
}

func TestRotateZeroAxisIsNoop(t *testing.T) {
	m := Identity()
	m.Translate(1, 1, 1)
	before := m
	m.Rotate(45, 0, 0, 0)
	if m != before {
		t.Errorf("Rotate with zero axis changed the matrix: %v", m)
	}
}

func TestMultiplyOrder(t *testing.T) {
	translate := Identity()
	translate.Translate(1, 0, 0)
	scale := Identity()
	scale.Scale(2, 2, 2)

	// translate first, then scale.
	got := Multiply(translate, scale).Transform(mgl32.Vec4{0, 0, 0, 1})
	if want := (mgl32.Vec4{2, 0, 0, 1}); !approxVec4(got, want) {
		t.Errorf("Multiply(translate, scale) maps origin to %v, want %v", got, want)
	}

	got = Multiply(scale, translate).Transform(mgl32.Vec4{0, 0, 0, 1})
	if want := (mgl32.Vec4{1, 0, 0, 1}); !approxVec4(got, want) {
		t.Errorf("Multiply(scale, translate) maps origin to %v, want %v", got, want)
	}
}

func TestPerspectiveKeepsPointInClipVolume(t *testing.T) {
	var modelview, perspective Matrix
	modelview.LoadIdentity()
	modelview.Translate(0, 0, -2)
	perspective.LoadIdentity()
	perspective.Perspective(60, 4.0/3, 1, 20)

	mvp := Multiply(modelview, perspective)
	clip := mvp.Transform(mgl32.Vec4{0, 0, 0, 1})

	w := clip[3]
	if w <= 0 {
		t.Fatalf("clip w = %v, want > 0", w)
	}
	for i := range 3 {
		if clip[i] < -w || clip[i] > w {
			t.Errorf("clip[%d] = %v outside [-%v, %v]", i, clip[i], w, w)
		}
	}
}

func TestFrustumInvalidIsNoop(t *testing.T) {
	tests := []struct {
		name                           string
		left, right, bottom, top, n, f float32
	}{
		{"zero near", -1, 1, -1, 1, 0, 10},
		{"negative far", -1, 1, -1, 1, 1, -10},
		{"inverted x", 1, -1, -1, 1, 1, 10},
		{"flat y", -1, 1, 1, 1, 1, 10},
		{"far before near", -1, 1, -1, 1, 10, 1},
	}
	for _, tt := range tests {
		m := Identity()
		m.Frustum(tt.left, tt.right, tt.bottom, tt.top, tt.n, tt.f)
		if m != Identity() {
			t.Errorf("%s: Frustum changed the matrix", tt.name)
		}
	}
}

func TestOrtho(t *testing.T) {
	m := Identity()
	m.Ortho(0, 100, 0, 50, 1, 10)

	got := m.Transform(mgl32.Vec4{0, 0, -1, 1})
	if want := (mgl32.Vec4{-1, -1, -1, 1}); !approxVec4(got, want) {
		t.Errorf("near-bottom-left maps to %v, want %v", got, want)
	}
	got = m.Transform(mgl32.Vec4{100, 50, -10, 1})
	if want := (mgl32.Vec4{1, 1, 1, 1}); !approxVec4(got, want) {
		t.Errorf("far-top-right maps to %v, want %v", got, want)
	}

	n := Identity()
	n.Ortho(0, 0, 0, 50, 1, 10)
	if n != Identity() {
		t.Error("Ortho with zero width changed the matrix")
	}
}
