// Package visibility hides globe markers that sit behind the sphere as seen
// from the camera.
package visibility

import (
	"math"

	"kayaglobe/internal/geo"
)

// Target is anything anchored to the globe surface whose visibility can be toggled.
type Target interface {
	Position() geo.Vec3
	Visible() bool
	SetVisible(bool)
}

// MaxSurfaceAngle is the largest angle between the camera direction and a
// surface position that still lies in front of the horizon.
func MaxSurfaceAngle(radius, distance float64) float64 {
	if distance <= radius {
		return 0
	}
	return math.Acos(radius / distance)
}

// Resolve updates the visibility of every target for a camera at camera
// looking at a globe centered on center. It returns how many targets changed.
// A nil camera leaves everything untouched.
func Resolve[T Target](camera *geo.Vec3, center geo.Vec3, targets []T) int {
	if camera == nil {
		return 0
	}
	pov := camera.Sub(center)
	dist := pov.Len()
	maxAngle := MaxSurfaceAngle(geo.Radius, dist)

	changed := 0
	for _, t := range targets {
		visible := dist > 0 && pov.AngleTo(t.Position()) <= maxAngle
		// Only touch targets whose state flips
		if visible != t.Visible() {
			t.SetVisible(visible)
			changed++
		}
	}
	return changed
}

// Tracker runs Resolve only when the camera has moved since the last tick.
type Tracker[T Target] struct {
	last    geo.Vec3
	primed  bool
	targets []T
}

func NewTracker[T Target](targets []T) *Tracker[T] {
	return &Tracker[T]{targets: targets}
}

// SetTargets replaces the tracked set and forces a pass on the next tick.
func (tr *Tracker[T]) SetTargets(targets []T) {
	tr.targets = targets
	tr.primed = false
}

// Tick is called once per rendered frame.
func (tr *Tracker[T]) Tick(camera *geo.Vec3, center geo.Vec3) int {
	if camera == nil {
		return 0
	}
	if tr.primed && *camera == tr.last {
		return 0
	}
	tr.last = *camera
	tr.primed = true
	return Resolve(camera, center, tr.targets)
}
