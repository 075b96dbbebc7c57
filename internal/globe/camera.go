package globe

import (
	"math"

	"kayaglobe/internal/geo"
)

// Orbit limits. Latitudes come from the polar angle limits π/3.5 and 2π/3
// measured from the north pole.
const (
	MinDistance     = 200.0
	MaxDistance     = 350.0
	DefaultDistance = 300.0

	MaxLat = 90 - 180/3.5
	MinLat = 90 - 120.0
)

var worldUp = geo.Vec3{Y: 1}

// Camera orbits the globe center, looking at it from Lat/Lng at Distance.
type Camera struct {
	Lat      float64
	Lng      float64
	Distance float64
}

func NewCamera(lat, lng float64) Camera {
	return Camera{Lat: lat, Lng: lng, Distance: DefaultDistance}.Clamp()
}

// Clamp keeps the camera inside the orbit limits.
func (c Camera) Clamp() Camera {
	c.Lat = math.Max(MinLat, math.Min(MaxLat, c.Lat))
	c.Lng = geo.NormalizeLng(c.Lng)
	if c.Distance == 0 {
		c.Distance = DefaultDistance
	}
	c.Distance = math.Max(MinDistance, math.Min(MaxDistance, c.Distance))
	return c
}

func (c Camera) Orbit(dLat, dLng float64) Camera {
	c.Lat += dLat
	c.Lng += dLng
	return c.Clamp()
}

// Zoom scales the distance; factors below 1 move closer.
func (c Camera) Zoom(factor float64) Camera {
	c.Distance *= factor
	return c.Clamp()
}

// Position is the camera location relative to the globe center.
func (c Camera) Position() geo.Vec3 {
	return geo.Project(c.Lat, c.Lng, c.Distance/geo.Radius-1)
}

// Scale is how large the globe appears relative to the default distance.
func (c Camera) Scale() float64 {
	return DefaultDistance / c.Distance
}

// basis returns the screen right and up vectors and the direction from the
// globe center toward the camera.
func (c Camera) basis() (right, up, back geo.Vec3) {
	back = c.Position().Normalize()
	right = worldUp.Cross(back).Normalize()
	up = back.Cross(right)
	return right, up, back
}
