package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_MagnitudeMatchesAltitude(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 15 {
		for lng := -180.0; lng <= 180; lng += 30 {
			for _, alt := range []float64{0, 0.1, 0.3, 1.5} {
				v := Project(lat, lng, alt)
				assert.InDelta(t, Radius*(1+alt), v.Len(), 1e-9, "lat=%v lng=%v alt=%v", lat, lng, alt)
			}
		}
	}
}

func TestProject_Axes(t *testing.T) {
	north := Project(90, 0, 0)
	assert.InDelta(t, Radius, north.Y, 1e-9)

	front := Project(0, 0, 0)
	assert.InDelta(t, Radius, front.Z, 1e-9)
	assert.InDelta(t, 0, front.X, 1e-9)

	east := Project(0, 90, 0)
	assert.InDelta(t, Radius, east.X, 1e-9)
}

func TestUnproject_RoundTrip(t *testing.T) {
	cases := [][2]float64{
		{39.0121002, -94.194202},
		{-33.8688, 151.2093},
		{50.4503, 30.5245},
		{0, 179.5},
		{0, -179.5},
	}
	for _, c := range cases {
		lat, lng := Unproject(Project(c[0], c[1], 0.2))
		assert.InDelta(t, c[0], lat, 1e-9)
		assert.InDelta(t, c[1], lng, 1e-9)
	}
}

func TestNormalizeLng(t *testing.T) {
	assert.InDelta(t, -170, NormalizeLng(190), 1e-9)
	assert.InDelta(t, 170, NormalizeLng(-190), 1e-9)
	assert.InDelta(t, 0, NormalizeLng(720), 1e-9)
}

func TestAngleTo(t *testing.T) {
	a := Vec3{X: 1}
	assert.InDelta(t, 0, a.AngleTo(Vec3{X: 5}), 1e-12)
	assert.InDelta(t, math.Pi, a.AngleTo(Vec3{X: -2}), 1e-12)
	assert.InDelta(t, math.Pi/2, a.AngleTo(Vec3{Y: 3}), 1e-12)
	assert.InDelta(t, math.Pi/2, a.AngleTo(Vec3{}), 1e-12)
}

func TestAngleTo_SmallAngles(t *testing.T) {
	a := Vec3{X: 1}
	for _, want := range []float64{1e-6, 1e-9, 1e-12} {
		b := Vec3{X: math.Cos(want), Y: math.Sin(want)}
		assert.InEpsilon(t, want, a.AngleTo(b), 1e-6)
		assert.InEpsilon(t, math.Pi-want, a.AngleTo(b.Scale(-1)), 1e-12)
	}
	assert.Zero(t, a.AngleTo(a))
}

func TestSlerp_StaysOnUnitSphere(t *testing.T) {
	a := Project(39.9, 116.4, 0)
	b := Project(39.0, -94.2, 0)
	for i := 0; i <= 10; i++ {
		p := Slerp(a, b, float64(i)/10)
		assert.InDelta(t, 1, p.Len(), 1e-9)
	}
	assert.InDelta(t, 0, Slerp(a, b, 0).AngleTo(a), 1e-9)
	assert.InDelta(t, 0, Slerp(a, b, 1).AngleTo(b), 1e-9)
}
