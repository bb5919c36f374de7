package course

import (
	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/location"
)

// Leg is one straight segment of the course, ending at a mark. Legs are
// immutable once the course is built and shared by every boat.
type Leg struct {
	name         string
	start        location.Location
	end          location.Location
	portRounding bool
	markMeanWind angle.Angle
	following    *Leg
}

func NewLeg(name string, start, end location.Location, portRounding bool, markMeanWind angle.Angle, following *Leg) *Leg {
	return &Leg{
		name:         name,
		start:        start,
		end:          end,
		portRounding: portRounding,
		markMeanWind: markMeanWind,
		following:    following,
	}
}

// Name is the name of the mark ending the leg.
func (l *Leg) Name() string                     { return l.name }
func (l *Leg) StartLocation() location.Location { return l.start }
func (l *Leg) EndLocation() location.Location   { return l.end }
func (l *Leg) IsPortRounding() bool             { return l.portRounding }
func (l *Leg) MarkMeanWind() angle.Angle        { return l.markMeanWind }
func (l *Leg) Following() *Leg                  { return l.following }

func (l *Leg) Bearing() angle.Angle {
	return l.start.BearingTo(l.end)
}

func (l *Leg) Length() float64 {
	return l.start.DistanceTo(l.end)
}
