package strategy

import (
	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/boat"
	"github.com/a-bouts/race-sketch/decision"
	"github.com/a-bouts/race-sketch/location"
)

// hand is a side of the boat: a tack or a rounding sense. Every rule is
// written once for a hand h; the starboard version is the port version
// mirrored, so angles measured towards h go through h.of.
type hand int

const (
	port hand = iota
	starboard
)

func tackOf(b *boat.Boat, wind angle.Angle) hand {
	if b.IsPort(wind) {
		return port
	}
	return starboard
}

func (h hand) String() string {
	if h == starboard {
		return "starboard"
	}
	return "port"
}

func (h hand) opposite() hand {
	if h == port {
		return starboard
	}
	return port
}

// of mirrors an angle measured for the port hand.
func (h hand) of(a angle.Angle) angle.Angle {
	if h == port {
		return a
	}
	return a.Negate()
}

// turn is the sense of a turn towards h.
func (h hand) turn() decision.Sense {
	if h == port {
		return decision.Anticlockwise
	}
	return decision.Clockwise
}

// Luffing and tacking turn towards the side the wind is on; bearing away and
// gybing turn away from it.
func (h hand) luff() decision.Sense     { return h.turn() }
func (h hand) tack() decision.Sense     { return h.turn() }
func (h hand) bearAway() decision.Sense { return h.opposite().turn() }
func (h hand) gybe() decision.Sense     { return h.opposite().turn() }

func closeHauled(b *boat.Boat, h hand, wind angle.Angle) angle.Angle {
	if h == port {
		return b.PortCloseHauledCourse(wind)
	}
	return b.StarboardCloseHauledCourse(wind)
}

func reaching(b *boat.Boat, h hand, wind angle.Angle) angle.Angle {
	if h == port {
		return b.PortReachingCourse(wind)
	}
	return b.StarboardReachingCourse(wind)
}

func inRearQuadrant(b *boat.Boat, h hand, mark location.Location) bool {
	if h == port {
		return b.IsPortRear90Quadrant(mark)
	}
	return b.IsStarboardRear90Quadrant(mark)
}
