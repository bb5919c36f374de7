// Package flow answers wind and water current queries over the course area.
// Bearings are the direction the flow comes from; speeds are in m/s.
package flow

import (
	"math"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/location"
)

type Flow interface {
	FlowAt(l location.Location) (angle.Angle, float64)
	MeanFlowBearing() angle.Angle
	MeanFlowBearingAt(l location.Location) angle.Angle
}

// Constant is a flow with the same bearing and speed everywhere.
type Constant struct {
	From  angle.Angle
	Speed float64
}

func (c Constant) FlowAt(location.Location) (angle.Angle, float64) {
	return c.From, c.Speed
}

func (c Constant) MeanFlowBearing() angle.Angle {
	return c.From
}

func (c Constant) MeanFlowBearingAt(location.Location) angle.Angle {
	return c.From
}

// Drift is the displacement in metres over seconds caused by a flow at l.
// The flow moves things away from the bearing it comes from.
func Drift(f Flow, l location.Location, seconds float64) location.DistancePolar {
	from, speed := f.FlowAt(l)
	return location.DistancePolar{Distance: speed * seconds, Angle: from.Inverse()}
}

func vectorToDegrees(u float64, v float64, d float64) float64 {

	velocityDir := math.Atan2(u/d, v/d)
	velocityDirToDegrees := velocityDir*180/math.Pi + 180
	return velocityDirToDegrees
}
