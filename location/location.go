package location

import (
	"math"

	"github.com/a-bouts/race-sketch/angle"
)

// Location is an offset in metres from the course origin, +X east, +Y north.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (l Location) delta(to Location) (float64, float64) {
	return to.X - l.X, to.Y - l.Y
}

func (l Location) DistanceTo(to Location) float64 {
	x, y := l.delta(to)
	return math.Sqrt(x*x + y*y)
}

// BearingTo is the steering bearing to a location, rounded to whole degrees.
// Coincident locations give 0.
func (l Location) BearingTo(to Location) angle.Angle {
	x, y := l.delta(to)
	if x == 0 && y == 0 {
		return angle.Zero
	}
	return angle.New(math.Round(math.Atan2(x, y) * 180 / math.Pi))
}

// DistanceAndBearingTo is the exact polar form of the vector to a location.
func (l Location) DistanceAndBearingTo(to Location) (float64, angle.Angle) {
	x, y := l.delta(to)
	d := math.Sqrt(x*x + y*y)
	if d == 0 {
		return 0, angle.Zero
	}
	return d, angle.FromRadians(math.Atan2(x, y))
}

func (l Location) Offset(p DistancePolar) Location {
	r := p.Angle.Radians()
	return Location{X: l.X + p.Distance*math.Sin(r), Y: l.Y + p.Distance*math.Cos(r)}
}

// Fractional projects l into the [0,1] unit square of a display area whose
// lower left corner is origin.
func (l Location) Fractional(origin Location, width, height float64) (float64, float64) {
	return (l.X - origin.X) / width, (l.Y - origin.Y) / height
}

// DistancePolar is a vector held as distance and bearing.
type DistancePolar struct {
	Distance float64
	Angle    angle.Angle
}

func Between(from, to Location) DistancePolar {
	d, a := from.DistanceAndBearingTo(to)
	return DistancePolar{Distance: d, Angle: a}
}

func (p DistancePolar) From(origin Location) Location {
	return origin.Offset(p)
}
