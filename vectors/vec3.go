package vectors

import (
	"fmt"
	"math"
)

// Vec3 is a simple 3D vector with float64 components.
// The same value type is used for directions, points and linear RGB colors.
type Vec3 struct {
	X, Y, Z float64
}

// Point3 is a location in space.
type Point3 = Vec3

// Color is a linear RGB sample, nominally in [0,1] per channel.
type Color = Vec3

func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func Zero() Vec3 {
	return Vec3{X: 0.0, Y: 0.0, Z: 0.0}
}

// Get returns component i (0 = X, 1 = Y, 2 = Z).
// Any other index panics.
func (v Vec3) Get(i int) float64 {
	return *v.Ref(i)
}

// Set overwrites component i. Any index outside 0..2 panics.
func (v *Vec3) Set(i int, x float64) {
	*v.Ref(i) = x
}

// Ref returns a pointer to component i for in-place updates.
func (v *Vec3) Ref(i int) *float64 {
	switch i {
	case 0:
		return &v.X
	case 1:
		return &v.Y
	case 2:
		return &v.Z
	}
	panic(fmt.Sprintf("vectors: index out of bounds: %d", i))
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v * (1/t). Division by zero is not guarded.
func (v Vec3) Div(t float64) Vec3 {
	return v.Scale(1.0 / t)
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// AddAssign sets v to v + o and returns v.
func (v *Vec3) AddAssign(o Vec3) *Vec3 {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	return v
}

// ScaleAssign sets v to v * t and returns v.
func (v *Vec3) ScaleAssign(t float64) *Vec3 {
	v.X *= t
	v.Y *= t
	v.Z *= t
	return v
}

// DivAssign sets v to v * (1/t) and returns v.
func (v *Vec3) DivAssign(t float64) *Vec3 {
	return v.ScaleAssign(1.0 / t)
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length ||v||.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns ||v||², skipping the square root.
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// UnitVector returns v / ||v||.
// The zero vector has no direction; callers must not pass one (the result is NaN).
func (v Vec3) UnitVector() Vec3 {
	return v.Div(v.Length())
}

// Lerp returns v*(1-t) + o*t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Scale(1.0 - t).Add(o.Scale(t))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func Dot(u, v Vec3) float64 {
	return u.Dot(v)
}

func Cross(u, v Vec3) Vec3 {
	return u.Cross(v)
}

func Distance(v1, v2 Vec3) float64 {
	return v1.Sub(v2).Length()
}
