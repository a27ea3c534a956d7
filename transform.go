package ludo

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position / rotation / scale triple. It is a value type:
// none of its methods mutate the receiver.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityTransform returns the transform with zero position, identity
// rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns the local TRS matrix of t.
func (t Transform) Matrix() mgl32.Mat4 {
	return Compose(mgl32.Ident4(), t)
}

// Compose returns parent * Translate(position) * Rotate(rotation) * Scale(scale).
func Compose(parent mgl32.Mat4, local Transform) mgl32.Mat4 {
	p := local.Position
	s := local.Scale
	m := parent.Mul4(mgl32.Translate3D(p.X(), p.Y(), p.Z()))
	m = m.Mul4(local.Rotation.Mat4())
	return m.Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// WithPosition returns a copy of t moved to p.
func (t Transform) WithPosition(p mgl32.Vec3) Transform {
	t.Position = p
	return t
}

// WithRotation returns a copy of t with rotation q.
func (t Transform) WithRotation(q mgl32.Quat) Transform {
	t.Rotation = q
	return t
}

// WithScale returns a copy of t with scale s.
func (t Transform) WithScale(s mgl32.Vec3) Transform {
	t.Scale = s
	return t
}

// ToLocal maps p into the local space of t by undoing the translation, then
// the rotation, then the scale, which inverts Matrix. A zero z scale is
// treated as 1 so flat sprites can still be hit-tested.
//
// ok is false when the x or y scale is zero.
func (t Transform) ToLocal(p mgl32.Vec4) (local mgl32.Vec4, ok bool) {
	s := t.Scale
	if s.X() == 0 || s.Y() == 0 {
		return mgl32.Vec4{}, false
	}
	sz := s.Z()
	if sz == 0 {
		sz = 1
	}
	pos := t.Position
	local = mgl32.Translate3D(-pos.X(), -pos.Y(), -pos.Z()).Mul4x1(p)
	local = t.Rotation.Inverse().Mat4().Mul4x1(local)
	local = mgl32.Scale3D(1/s.X(), 1/s.Y(), 1/sz).Mul4x1(local)
	return local, true
}
