// Package transform provides the 4x4 matrix helpers the demos use to build
// model-view-projection uniforms.
//
// A Matrix is stored in the order a shader expects its mat4 uniform:
// column-major, translation in elements 12-14. Every helper post-multiplies
// the receiver, so a sequence of calls reads like the classic fixed-function
// matrix stack:
//
//	var modelview transform.Matrix
//	modelview.LoadIdentity()
//	modelview.Translate(0, 0, -2)
//	modelview.Rotate(angle, 1, 0, 1)
//
//	var perspective transform.Matrix
//	perspective.LoadIdentity()
//	perspective.Perspective(60, aspect, 1, 20)
//
//	mvp := transform.Multiply(modelview, perspective)
//
// Helpers given degenerate parameters leave the matrix untouched.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix is a 4x4 float32 matrix in column-major order.
type Matrix mgl32.Mat4

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix(mgl32.Ident4())
}

// LoadIdentity resets m to the identity matrix.
func (m *Matrix) LoadIdentity() {
	*m = Identity()
}

// Multiply returns the matrix that applies a first and then b.
func Multiply(a, b Matrix) Matrix {
	return Matrix(mgl32.Mat4(b).Mul4(mgl32.Mat4(a)))
}

// Mat4 returns m as an mgl32.Mat4.
func (m Matrix) Mat4() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// Float32 returns the 16 matrix elements for uniform upload.
func (m Matrix) Float32() [16]float32 {
	return m
}

// Transform applies m to the homogeneous point v.
func (m Matrix) Transform(v mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Mat4(m).Mul4x1(v)
}

func (m *Matrix) postMultiply(x mgl32.Mat4) {
	*m = Matrix(mgl32.Mat4(*m).Mul4(x))
}

// Scale scales m by sx, sy and sz along the x, y and z axes.
func (m *Matrix) Scale(sx, sy, sz float32) {
	m.postMultiply(mgl32.Scale3D(sx, sy, sz))
}

// Translate translates m by (tx, ty, tz).
func (m *Matrix) Translate(tx, ty, tz float32) {
	m.postMultiply(mgl32.Translate3D(tx, ty, tz))
}

// Rotate rotates m by angle degrees around the axis (x, y, z). Positive
// angles turn clockwise when looking from the tip of the axis toward the
// origin. A zero axis leaves m unchanged.
func (m *Matrix) Rotate(angle, x, y, z float32) {
	mag := math32.Sqrt(x*x + y*y + z*z)
	if !(mag > 0) {
		return
	}
	x, y, z = x/mag, y/mag, z/mag

	sin, cos := math32.Sincos(angle * math32.Pi / 180)
	xx, yy, zz := x*x, y*y, z*z
	xy, yz, zx := x*y, y*z, z*x
	xs, ys, zs := x*sin, y*sin, z*sin
	oneMinusCos := 1 - cos

	m.postMultiply(mgl32.Mat4{
		oneMinusCos*xx + cos, oneMinusCos*xy - zs, oneMinusCos*zx + ys, 0,
		oneMinusCos*xy + zs, oneMinusCos*yy + cos, oneMinusCos*yz - xs, 0,
		oneMinusCos*zx - ys, oneMinusCos*yz + xs, oneMinusCos*zz + cos, 0,
		0, 0, 0, 1,
	})
}

// Frustum multiplies m by a perspective projection for the view volume
// bounded by the given clip planes. Both near and far must be positive and
// the volume must have positive extent along every axis.
func (m *Matrix) Frustum(left, right, bottom, top, near, far float32) {
	dx, dy, dz := right-left, top-bottom, far-near
	if near <= 0 || far <= 0 || dx <= 0 || dy <= 0 || dz <= 0 {
		return
	}
	m.postMultiply(mgl32.Frustum(left, right, bottom, top, near, far))
}

// Perspective multiplies m by a symmetric perspective projection with a
// vertical field of view of fovy degrees.
func (m *Matrix) Perspective(fovy, aspect, near, far float32) {
	h := math32.Tan(fovy/360*math32.Pi) * near
	w := h * aspect
	m.Frustum(-w, w, -h, h, near, far)
}

// Ortho multiplies m by an orthographic projection for the given box.
// A box with zero extent along any axis leaves m unchanged.
func (m *Matrix) Ortho(left, right, bottom, top, near, far float32) {
	if right == left || top == bottom || far == near {
		return
	}
	m.postMultiply(mgl32.Ortho(left, right, bottom, top, near, far))
}
