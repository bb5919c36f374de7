package strategy

import (
	"math"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/location"
)

const perpendicularTolerance = 1e-9

// RefDistance projects the vector from l to the mark onto the reference
// bearing. It reports false when the mark is 90° or more off the reference,
// i.e. the boat is not approaching it along that bearing. A boat on the mark
// is at distance 0.
func RefDistance(l, mark location.Location, ref angle.Angle) (float64, bool) {
	d, toMark := l.DistanceAndBearingTo(mark)
	if d == 0 {
		return 0, true
	}
	off := toMark.AbsDiff(ref)
	if off.Degrees() >= 90-perpendicularTolerance {
		return 0, false
	}
	return d * math.Cos(off.Radians()), true
}
