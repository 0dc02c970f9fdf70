package tactile

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for positions, deltas, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z component) of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Normalized returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// AngleTo returns the signed angle in radians, in (-π, π], needed to
// rotate v onto o. Positive is counter-clockwise in a Y-down
// coordinate system's math sense (Atan2 convention).
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(v.Cross(o), v.Dot(o))
}

// Centroid returns the arithmetic mean of points. It panics when points
// is empty: callers use it only where they have already established the
// set is non-empty, and an empty set there is a programming error.
// Session.Centroid is the forgiving variant for unchecked input.
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		panic("tactile: centroid of empty point set")
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

var processStart = time.Now()

// timeNow is the package monotonic clock in seconds. Swappable in tests.
var timeNow = func() float64 {
	return time.Since(processStart).Seconds()
}

// Now returns the current monotonic time in seconds since process start.
// Sample producers use it to stamp samples; it never goes backward.
func Now() float64 {
	return timeNow()
}
