package geometry

// Axis selects a single component of a Vector3f. The domain is fixed at
// three axes, so the type is a closed enumeration rather than an interface.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name for logging and error messages.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "invalid"
	}
}

// Orthogonal returns the two axes perpendicular to a, in ascending order.
func (a Axis) Orthogonal() [2]Axis {
	switch a {
	case AxisX:
		return [2]Axis{AxisY, AxisZ}
	case AxisY:
		return [2]Axis{AxisX, AxisZ}
	default:
		return [2]Axis{AxisX, AxisY}
	}
}
