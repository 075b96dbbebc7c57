package geo

import "math"

// Radius is the globe radius in scene units. Every position handed to the
// renderer and the visibility resolver uses this convention.
const Radius = 100.0

// Project converts a latitude/longitude in degrees and a relative altitude
// (fraction of the radius) into a position on or above the globe surface.
func Project(lat, lng, alt float64) Vec3 {
	phi := (90 - lat) * math.Pi / 180
	theta := (90 - lng) * math.Pi / 180
	r := Radius * (1 + alt)
	return Vec3{
		X: r * math.Sin(phi) * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Sin(theta),
	}
}

// Unproject is the inverse of Project, ignoring altitude. Longitude is
// normalized to [-180, 180].
func Unproject(v Vec3) (lat, lng float64) {
	r := v.Len()
	if r == 0 {
		return 0, 0
	}
	cosPhi := v.Y / r
	if cosPhi > 1 {
		cosPhi = 1
	} else if cosPhi < -1 {
		cosPhi = -1
	}
	lat = 90 - math.Acos(cosPhi)*180/math.Pi
	theta := math.Atan2(v.Z, v.X) * 180 / math.Pi
	return lat, NormalizeLng(90 - theta)
}

// NormalizeLng wraps a longitude into [-180, 180].
func NormalizeLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
