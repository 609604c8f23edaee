package collision

import (
	"errors"
	"math"

	"github.com/voxelcast/voxelcast/pkg/geometry"
)

// intersectEpsilon is the overlap margin below which two boxes are treated
// as separated. An exact face-to-face touch does not count as intersecting.
const intersectEpsilon = 1e-7

// ErrAxisPair is returned by WithinAxis when fewer than two axes are given.
var ErrAxisPair = errors.New("collision: at least two axes are required")

// AABB is an axis-aligned bounding box defined by its minimum and maximum
// corners. Construction does not validate Min <= Max per component; callers
// that build an inverted box get silently wrong containment and intersection
// results.
type AABB struct {
	Min geometry.Vector3f `json:"min"`
	Max geometry.Vector3f `json:"max"`
}

// NewAABB constructs a box from its corners.
func NewAABB(min, max geometry.Vector3f) AABB {
	return AABB{Min: min, Max: max}
}

// face is one of the six bounding planes of a box.
type face struct {
	axis  geometry.Axis
	value float64
}

// Translate returns the box shifted by v.
func (b AABB) Translate(v geometry.Vector3f) AABB {
	return NewAABB(b.Min.Add(v), b.Max.Add(v))
}

// Expand grows the box by v, one corner per axis: negative components pull
// Min down, positive components push Max up. Used to extend a box in its
// direction of travel.
func (b AABB) Expand(v geometry.Vector3f) AABB {
	min, max := b.Min, b.Max

	if v.X < 0 {
		min.X += v.X
	} else {
		max.X += v.X
	}
	if v.Y < 0 {
		min.Y += v.Y
	} else {
		max.Y += v.Y
	}
	if v.Z < 0 {
		min.Z += v.Z
	} else {
		max.Z += v.Z
	}

	return AABB{Min: min, Max: max}
}

// Contains reports whether v lies inside the box, bounds inclusive.
func (b AABB) Contains(v geometry.Vector3f) bool {
	return b.Min.X <= v.X && v.X <= b.Max.X &&
		b.Min.Y <= v.Y && v.Y <= b.Max.Y &&
		b.Min.Z <= v.Z && v.Z <= b.Max.Z
}

// Within reports whether v lies inside the box, bounds inclusive. It is
// equivalent to Contains and kept as a separate operation.
func (b AABB) Within(v geometry.Vector3f) bool {
	if v.X < b.Min.X || v.X > b.Max.X {
		return false
	}
	if v.Y < b.Min.Y || v.Y > b.Max.Y {
		return false
	}
	return v.Z >= b.Min.Z && v.Z <= b.Max.Z
}

// Grow returns the box padded symmetrically by scale on every axis.
func (b AABB) Grow(scale float64) AABB {
	v := geometry.NewVector3f(scale, scale, scale)
	return NewAABB(b.Min.Subtract(v), b.Max.Add(v))
}

// Intersects reports whether the two boxes overlap by more than the epsilon
// margin on every axis. A gap or an exact touch is not an intersection.
func (b AABB) Intersects(other AABB) bool {
	if other.Max.X-b.Min.X < intersectEpsilon || b.Max.X-other.Min.X < intersectEpsilon {
		return false
	}
	if other.Max.Y-b.Min.Y < intersectEpsilon || b.Max.Y-other.Min.Y < intersectEpsilon {
		return false
	}
	return other.Max.Z-b.Min.Z > intersectEpsilon && b.Max.Z-other.Min.Z > intersectEpsilon
}

// OnLine finds where the segment start->end crosses the plane axis = value.
// The returned point has the queried axis pinned exactly to value and the
// other two axes linearly interpolated. It reports false when the crossing
// falls outside the segment. A segment parallel to the plane produces an
// infinite fraction, which fails the [0,1] check and yields no crossing.
func OnLine(axis geometry.Axis, start, end geometry.Vector3f, value float64) (geometry.Vector3f, bool) {
	axisA := start.Axis(axis)
	axisB := end.Axis(axis)

	f := (value - axisA) / (axisB - axisA)
	if f < 0 || f > 1 {
		return geometry.Vector3f{}, false
	}

	point := geometry.Vector3f{
		X: start.X + (end.X-start.X)*f,
		Y: start.Y + (end.Y-start.Y)*f,
		Z: start.Z + (end.Z-start.Z)*f,
	}
	switch axis {
	case geometry.AxisX:
		point.X = value
	case geometry.AxisY:
		point.Y = value
	case geometry.AxisZ:
		point.Z = value
	}
	return point, true
}

// WithinAxis reports whether v falls inside the box bounds on the first two
// supplied axes. Fewer than two axes is a precondition violation and returns
// ErrAxisPair.
func (b AABB) WithinAxis(axes []geometry.Axis, v geometry.Vector3f) (bool, error) {
	if len(axes) < 2 {
		return false, ErrAxisPair
	}
	return b.withinAxisPair(axes[0], axes[1], v), nil
}

// withinAxisPair checks the second axis before the first, mirroring the
// short-circuit order of the exported form.
func (b AABB) withinAxisPair(first, second geometry.Axis, v geometry.Vector3f) bool {
	axisA := v.Axis(first)
	axisB := v.Axis(second)

	if axisB < b.Min.Axis(second) || axisB > b.Max.Axis(second) {
		return false
	}
	return axisA >= b.Min.Axis(first) && axisA <= b.Max.Axis(first)
}

// Intercept tests the segment start->end against all six faces of the box
// and returns the valid crossing with the smallest squared distance. Faces
// are tried in -X, +X, -Y, +Y, -Z, +Z order and an equal-distance candidate
// never displaces an earlier winner. It reports false when no face yields an
// in-bounds crossing.
func Intercept(box AABB, start, end geometry.Vector3f) (HitResult, bool) {
	faces := [6]face{
		{axis: geometry.AxisX, value: box.Min.X},
		{axis: geometry.AxisX, value: box.Max.X},
		{axis: geometry.AxisY, value: box.Min.Y},
		{axis: geometry.AxisY, value: box.Max.Y},
		{axis: geometry.AxisZ, value: box.Min.Z},
		{axis: geometry.AxisZ, value: box.Max.Z},
	}

	minDistance := math.Inf(1)
	var hitPosition geometry.Vector3f
	hit := false

	for _, f := range faces {
		point, ok := OnLine(f.axis, start, end, f.value)
		if !ok {
			continue
		}

		ortho := f.axis.Orthogonal()
		if !box.withinAxisPair(ortho[0], ortho[1], point) {
			continue
		}

		if distance := point.SquareLength(); distance < minDistance {
			minDistance = distance
			hitPosition = point
			hit = true
		}
	}

	if !hit {
		return HitResult{}, false
	}
	return HitResult{Distance: minDistance, Position: hitPosition}, true
}
