package boat

import (
	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/decision"
	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/location"
)

// Kinematics applies decisions to boats over one tick of Interval seconds.
// Water may be nil.
type Kinematics struct {
	Wind     flow.Flow
	Water    flow.Flow
	Interval float64
}

// Move turns and moves the boat. A finished turn resets the decision to
// SAILON; Move reports true when that turn was a mark rounding.
func (k Kinematics) Move(b *Boat, d *decision.Decision) bool {
	switch d.Action {
	case decision.Stop:
		b.Speed = 0
		return false
	case decision.Turn, decision.MarkRounding:
		done := b.turn(d.Heading, d.Sense, b.Metrics.TurnRate*k.Interval)
		k.advance(b)
		if !done {
			return false
		}
		rounded := d.Action == decision.MarkRounding
		*d = decision.SailOnDecision()
		return rounded
	}
	k.advance(b)
	return false
}

// turn rotates the heading by at most step degrees in the given sense and
// reports whether the target was reached.
func (b *Boat) turn(target angle.Angle, sense decision.Sense, step float64) bool {
	remaining := target.Sub(b.Heading).Degrees()
	if sense == decision.Anticlockwise {
		remaining = -remaining
	}
	if remaining < 0 {
		remaining += 360
	}

	if step <= 0 || remaining <= step {
		b.Heading = target
		return true
	}
	if sense == decision.Anticlockwise {
		b.Heading = b.Heading.Sub(angle.New(step))
	} else {
		b.Heading = b.Heading.Add(angle.New(step))
	}
	return false
}

func (k Kinematics) advance(b *Boat) {
	from, windSpeed := k.Wind.FlowAt(b.Location)

	b.Speed = 0
	if b.Metrics.Performance != nil {
		b.Speed = b.Metrics.Performance.PotentialBoatSpeed(from.Sub(b.Heading), windSpeed)
	}

	b.Location = b.Location.Offset(location.DistancePolar{Distance: b.Speed * k.Interval, Angle: b.Heading})
	if k.Water != nil {
		b.Location = b.Location.Offset(flow.Drift(k.Water, b.Location, k.Interval))
	}
}
