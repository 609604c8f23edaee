package geometry

import "math"

// Vector3f is an immutable 3D vector of float64 components. Every operation
// returns a new value; the receiver is never modified.
type Vector3f struct {
	X, Y, Z float64
}

// NewVector3f constructs a vector from its components.
func NewVector3f(x, y, z float64) Vector3f {
	return Vector3f{X: x, Y: y, Z: z}
}

// Dot returns the dot product of v and other.
func (v Vector3f) Dot(other Vector3f) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length returns the Euclidean length of v.
func (v Vector3f) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// SquareLength returns the squared Euclidean length of v.
func (v Vector3f) SquareLength() float64 {
	return v.Dot(v)
}

// Normalize returns v scaled to unit length. The caller must ensure v has
// non-zero length; normalizing a zero vector yields NaN components.
func (v Vector3f) Normalize() Vector3f {
	length := v.Length()
	return Vector3f{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// Lerp linearly interpolates between v and other by t.
func (v Vector3f) Lerp(other Vector3f, t float64) Vector3f {
	return Vector3f{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

// Add returns the component-wise sum of v and other.
func (v Vector3f) Add(other Vector3f) Vector3f {
	return Vector3f{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Subtract returns the component-wise difference of v and other.
func (v Vector3f) Subtract(other Vector3f) Vector3f {
	return Vector3f{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Multiply returns v scaled by scalar.
func (v Vector3f) Multiply(scalar float64) Vector3f {
	return Vector3f{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Cross returns the cross product of v and other.
func (v Vector3f) Cross(other Vector3f) Vector3f {
	return Vector3f{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Absolute returns the component-wise absolute value of v.
func (v Vector3f) Absolute() Vector3f {
	return Vector3f{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// Distance returns the Euclidean distance between v and other.
func (v Vector3f) Distance(other Vector3f) float64 {
	diff := v.Subtract(other)
	return math.Sqrt(diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z)
}

// Floor returns v with every component rounded down.
func (v Vector3f) Floor() Vector3f {
	return Vector3f{X: math.Floor(v.X), Y: math.Floor(v.Y), Z: math.Floor(v.Z)}
}

// Round returns v with every component rounded to the nearest integer.
func (v Vector3f) Round() Vector3f {
	return Vector3f{X: math.Round(v.X), Y: math.Round(v.Y), Z: math.Round(v.Z)}
}

// Ceil returns v with every component rounded up.
func (v Vector3f) Ceil() Vector3f {
	return Vector3f{X: math.Ceil(v.X), Y: math.Ceil(v.Y), Z: math.Ceil(v.Z)}
}

// Slerp spherically interpolates between v and other by t. Both vectors must
// be non-parallel unit vectors; parallel or zero-length inputs divide by a
// zero sine and yield NaN components.
func (v Vector3f) Slerp(other Vector3f, t float64) Vector3f {
	dot := v.Dot(other)
	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	a := math.Sin((1-t)*theta) / sinTheta
	b := math.Sin(t*theta) / sinTheta
	return v.Multiply(a).Add(other.Multiply(b))
}

// Equals reports whether v and other are bit-exact equal on every component.
// No epsilon is applied.
func (v Vector3f) Equals(other Vector3f) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Axis returns the component of v selected by axis.
func (v Vector3f) Axis(axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}
