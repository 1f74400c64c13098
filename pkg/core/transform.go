package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine transform applied to primitives when they are placed in the scene
type Transform struct {
	M           mgl64.Mat4
	normalM     mgl64.Mat3
	determinant float64
}

// NewTransform creates a transform from a 4x4 matrix
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{
		M:           m,
		normalM:     m.Mat3().Inv().Transpose(),
		determinant: m.Mat3().Det(),
	}
}

// IdentityTransform returns the identity transform
func IdentityTransform() Transform {
	return NewTransform(mgl64.Ident4())
}

// TranslateScale returns a transform that scales uniformly and then translates
func TranslateScale(t Vec3, s float64) Transform {
	return NewTransform(mgl64.Translate3D(t.X, t.Y, t.Z).Mul4(mgl64.Scale3D(s, s, s)))
}

// TRS returns translate * rotate(angle around axis, degrees) * scale
func TRS(t Vec3, axis Vec3, degrees float64, s Vec3) Transform {
	m := mgl64.Translate3D(t.X, t.Y, t.Z)
	if degrees != 0 {
		m = m.Mul4(mgl64.HomogRotate3D(mgl64.DegToRad(degrees), toMgl(axis.Normalize())))
	}
	m = m.Mul4(mgl64.Scale3D(s.X, s.Y, s.Z))
	return NewTransform(m)
}

// Point transforms a position
func (t Transform) Point(p Vec3) Vec3 {
	return fromMgl(mgl64.TransformCoordinate(toMgl(p), t.M))
}

// Vector transforms a direction (no translation)
func (t Transform) Vector(v Vec3) Vec3 {
	return fromMgl(mgl64.TransformNormal(toMgl(v), t.M))
}

// Normal transforms a surface normal with the inverse transpose and renormalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	return fromMgl(t.normalM.Mul3x1(toMgl(n))).Normalize()
}

// Determinant returns the determinant of the linear part
func (t Transform) Determinant() float64 {
	return t.determinant
}

// LookAt returns the camera frame (right, up, back) for an eye looking at center.
// The third vector points from the target towards the eye.
func LookAt(eye, center, up Vec3) (Vec3, Vec3, Vec3) {
	// LookAtV builds the view matrix; its rows are the camera axes
	view := mgl64.LookAtV(toMgl(eye), toMgl(center), toMgl(up))
	right := NewVec3(view.At(0, 0), view.At(0, 1), view.At(0, 2))
	upv := NewVec3(view.At(1, 0), view.At(1, 1), view.At(1, 2))
	back := NewVec3(view.At(2, 0), view.At(2, 1), view.At(2, 2))
	return right, upv, back
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
