package transform

import "math"

// Vec3 is a point or direction in world units.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Mul returns v scaled by k.
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

func (v Vec3) abs() Vec3 { return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)} }

// Position is an entity's translation.
type Position Vec3

// Scale is an entity's per-axis scale.
type Scale Vec3

// Velocity is in world units per second.
type Velocity Vec3

// LocalTransform is the affine matrix derived from Position and Scale, row
// major with the translation in the last column.
type LocalTransform [12]float64

// Compose builds the transform for p and s.
func Compose(p Position, s Scale) LocalTransform {
	return LocalTransform{
		s.X, 0, 0, p.X,
		0, s.Y, 0, p.Y,
		0, 0, s.Z, p.Z,
	}
}

// Translation returns the translation column.
func (m LocalTransform) Translation() Vec3 { return Vec3{m[3], m[7], m[11]} }

// Diagonal returns the scale diagonal.
func (m LocalTransform) Diagonal() Vec3 { return Vec3{m[0], m[5], m[10]} }

// Bounds is the axis-aligned box of a unit cube centred on the origin under
// the entity's LocalTransform.
type Bounds struct {
	Min, Max Vec3
}

// BoundsOf derives the bounds of a transform.
func BoundsOf(m LocalTransform) Bounds {
	c := m.Translation()
	half := m.Diagonal().abs().Mul(0.5)
	return Bounds{Min: c.Add(half.Mul(-1)), Max: c.Add(half)}
}
