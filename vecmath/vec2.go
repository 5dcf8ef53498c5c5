// Package vecmath provides the 2D vector type shared by the simulation.
package vecmath

import "math"

// Vec2 is a 2D vector in world units. It is a value type.
type Vec2 struct {
	X, Y float32
}

// New returns the vector (x, y).
func New(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float32 {
	return v.Sub(o).Len()
}

// Angle returns the angle of v in radians, measured from the +X axis.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Clamp clamps v between lo and hi.
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
