package strategy

import (
	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/boat"
	"github.com/a-bouts/race-sketch/course"
	"github.com/a-bouts/race-sketch/decision"
	"github.com/a-bouts/race-sketch/location"
)

// Context is the read-only view a rule set decides from: a snapshot of the
// boat and of the wind it sails in, plus the leg state of its strategy.
type Context struct {
	Boat boat.Boat
	// Wind is the wind at the boat.
	Wind angle.Angle
	// MeanWind is the mean wind over the whole course.
	MeanWind angle.Angle
	// LocalMeanWind is the mean wind at the boat, used near marks.
	LocalMeanWind angle.Angle
	Leg           *course.Leg

	regime    Regime
	tracks    tracks
	departure departure
}

func (c *Context) mark() location.Location {
	return c.Leg.EndLocation()
}

func (c *Context) distanceToMark() float64 {
	return c.Boat.Location.DistanceTo(c.mark())
}

func (c *Context) tack(wind angle.Angle) hand {
	return tackOf(&c.Boat, wind)
}

func (c *Context) rounding() hand {
	if c.Leg.IsPortRounding() {
		return port
	}
	return starboard
}

// sailTo is the point beside the mark the boat aims at on tack h.
func (c *Context) sailTo(h hand) location.Location {
	return c.mark().Offset(location.DistancePolar{
		Distance: 2 * c.Boat.Metrics.Width,
		Angle:    c.tracks.of(h),
	})
}

func (c *Context) bearingToSailTo(h hand) angle.Angle {
	return c.Boat.Location.BearingTo(c.sailTo(h))
}

// layAngle is the angle off the wind the boat would sail on tack h to reach
// its sail to point, positive when that course is on tack h.
func (c *Context) layAngle(h hand, wind angle.Angle) angle.Angle {
	return h.of(c.bearingToSailTo(h).Sub(wind))
}

func (c *Context) canLayWindward(h hand, wind angle.Angle) bool {
	return c.layAngle(h, wind).Gteq(c.Boat.Metrics.UpwindRelative)
}

func (c *Context) canLayLeeward(h hand, wind angle.Angle) bool {
	return c.layAngle(h, wind).Between(c.Boat.Metrics.UpwindRelative, c.Boat.Metrics.DownwindRelative)
}

func (c *Context) closeHauled(h hand, wind angle.Angle) angle.Angle {
	return closeHauled(&c.Boat, h, wind)
}

func (c *Context) reaching(h hand, wind angle.Angle) angle.Angle {
	return reaching(&c.Boat, h, wind)
}

// steer turns the shortest way onto target, or sails on when already there.
// A half turn goes the way a gybe from the current tack would.
func (c *Context) steer(target angle.Angle) decision.Decision {
	if target.Eq(c.Boat.Heading) {
		return decision.SailOnDecision()
	}
	diff := target.Sub(c.Boat.Heading)
	if diff.Eq(angle.New(180)) {
		return decision.TurnDecision(target, c.tack(c.Wind).gybe())
	}
	if diff.Lt(angle.Zero) {
		return decision.TurnDecision(target, decision.Anticlockwise)
	}
	return decision.TurnDecision(target, decision.Clockwise)
}

// approach is the bearing along which the boat closes the mark.
func (c *Context) approach() angle.Angle {
	switch c.regime {
	case Windward:
		return c.Leg.MarkMeanWind()
	case GybingDownwind:
		return c.Leg.MarkMeanWind().Inverse()
	}
	return c.Leg.Bearing()
}

// nearMark reports the boat within five lengths of the mark along its
// approach, or already past it.
func (c *Context) nearMark() bool {
	d, ok := RefDistance(c.Boat.Location, c.mark(), c.approach())
	return !ok || d <= 5*c.Boat.Metrics.Length
}

// atTurnPoint reports the boat close enough to the mark, on the h side of
// it, to start the rounding turn.
func (c *Context) atTurnPoint(h hand) bool {
	d, fromMark := c.mark().DistanceAndBearingTo(c.Boat.Location)
	if d > 2*c.Boat.Metrics.Length {
		return false
	}
	if d == 0 {
		return true
	}

	ref, sector := c.LocalMeanWind, angle.Right
	switch c.regime {
	case GybingDownwind:
		ref = c.LocalMeanWind.Inverse()
	case Offwind:
		ref, sector = c.Leg.Bearing(), angle.New(180)
	}
	off := h.of(fromMark.Sub(ref))
	return off.Gteq(angle.Zero) && off.Lteq(sector)
}

// round starts the rounding turn onto the next leg.
func (c *Context) round(h hand) decision.Decision {
	return decision.MarkRoundingDecision(c.departure(c.LocalMeanWind), h.turn())
}
