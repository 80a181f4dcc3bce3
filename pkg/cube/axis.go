package cube

import (
	"fmt"
	"strings"

	"github.com/taigrr/glcube/pkg/math3d"
)

// Axis names one of the three rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists every axis in the order Draw applies them.
var Axes = [...]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Vector returns the unit vector of the axis.
func (a Axis) Vector() math3d.Vec3 {
	switch a {
	case AxisX:
		return math3d.V3(1, 0, 0)
	case AxisY:
		return math3d.V3(0, 1, 0)
	default:
		return math3d.V3(0, 0, 1)
	}
}

func (a Axis) valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis accepts "x", "y" or "z" in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}
