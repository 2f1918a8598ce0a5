package model

import "math"

// Vec2 is a position or direction in arena pixel space.
// Value type, passed by value (immutable).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVec2 creates a Vec2 with the given coordinates.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the component-wise difference v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns the vector multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Distance returns the Euclidean distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return math.Sqrt(v.DistanceSquared(other))
}

// DistanceSquared returns the squared distance (no sqrt, for comparisons).
func (v Vec2) DistanceSquared(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// WithinBox reports whether other lies within an axis-aligned box of
// half-size r around v. Combat and pickup checks use box distance.
func (v Vec2) WithinBox(other Vec2, r float64) bool {
	return math.Abs(v.X-other.X) <= r && math.Abs(v.Y-other.Y) <= r
}
