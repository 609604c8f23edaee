package collision

import (
	"math"

	"github.com/voxelcast/voxelcast/pkg/geometry"
)

// BlockPredicate is invoked for every block coordinate a traversal visits.
// The coordinate is integer-valued (already floored). Returning true stops
// the traversal. A panicking predicate aborts the traversal and propagates
// to the caller.
type BlockPredicate func(block geometry.Vector3f) bool

// TraverseBlocks enumerates the integer block coordinates the segment
// start->end passes through, in order, invoking pred at each one. It uses a
// 3D DDA: at every step the axis whose next grid boundary is nearest (in
// normalized segment units) advances by one block. Traversal stops when pred
// returns true or the segment is exhausted. When start and end are bit-exact
// equal, pred is never invoked.
func TraverseBlocks(start, end geometry.Vector3f, pred BlockPredicate) {
	if start.Equals(end) {
		return
	}

	direction := end.Subtract(start)
	current := start.Floor()

	if pred(current) {
		return
	}

	step := sign(direction)
	size := stepSize(step, direction)

	tMax := geometry.Vector3f{
		X: entryDistance(step.X, size.X, direction.X),
		Y: entryDistance(step.Y, size.Y, direction.Y),
		Z: entryDistance(step.Z, size.Z, direction.Z),
	}

	for tMax.X <= 1 || tMax.Y <= 1 || tMax.Z <= 1 {
		if tMax.X < tMax.Y && tMax.X < tMax.Z {
			current.X += step.X
			tMax.X += size.X
		} else if tMax.Y < tMax.Z {
			current.Y += step.Y
			tMax.Y += size.Y
		} else {
			current.Z += step.Z
			tMax.Z += size.Z
		}

		if pred(current) {
			return
		}
	}
}

// sign returns the component-wise sign of v: -1, 0 or +1, with exactly 0 on
// a non-moving axis.
func sign(v geometry.Vector3f) geometry.Vector3f {
	return geometry.Vector3f{X: signum(v.X), Y: signum(v.Y), Z: signum(v.Z)}
}

func signum(n float64) float64 {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// stepSize returns, per axis, how much the traversal parameter t advances
// when crossing one full block along that axis. A non-moving axis gets +Inf
// so it never wins the step selection.
func stepSize(step, direction geometry.Vector3f) geometry.Vector3f {
	return geometry.Vector3f{
		X: axisStepSize(step.X, direction.X),
		Y: axisStepSize(step.Y, direction.Y),
		Z: axisStepSize(step.Z, direction.Z),
	}
}

func axisStepSize(step, direction float64) float64 {
	if step == 0 {
		return math.Inf(1)
	}
	return step / direction
}

// boundary returns the negative fractional offset of n below itself.
func boundary(n float64) float64 {
	return math.Floor(n) - n
}

// entryDistance is the initial tMax for one axis: the t at which the ray
// first crosses a grid boundary on that axis. Which side of the boundary
// formula applies depends on the travel direction; a non-moving axis is
// pinned at +Inf and never steps.
func entryDistance(step, size, direction float64) float64 {
	if step == 0 {
		return math.Inf(1)
	}
	if step > 0 {
		return size * (1 - boundary(direction))
	}
	return size * boundary(direction)
}
