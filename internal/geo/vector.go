package geo

import "math"

// Vec3 is a point or direction in globe space. The globe center sits at the
// origin, +Y points at the north pole and lat/lng (0,0) lies on +Z.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// AngleTo returns the angle in radians between v and o. A zero-length operand
// yields π/2, matching the convention of most scene-graph libraries.
func (v Vec3) AngleTo(o Vec3) float64 {
	denom := v.Len() * o.Len()
	if denom == 0 {
		return math.Pi / 2
	}
	// Atan2 keeps precision near 0 and π where Acos loses it
	return math.Atan2(v.Cross(o).Len(), v.Dot(o))
}

// Slerp interpolates between the directions a and b along the great circle
// joining them. The result is a unit vector.
func Slerp(a, b Vec3, t float64) Vec3 {
	a, b = a.Normalize(), b.Normalize()
	omega := a.AngleTo(b)
	if omega < 1e-9 {
		return a
	}
	sin := math.Sin(omega)
	if sin < 1e-9 {
		// Antipodal endpoints have no unique great circle, fall back to a lerp
		return a.Scale(1 - t).Add(b.Scale(t)).Normalize()
	}
	wa := math.Sin((1-t)*omega) / sin
	wb := math.Sin(t*omega) / sin
	return a.Scale(wa).Add(b.Scale(wb))
}
