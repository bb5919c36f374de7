// Package strategy decides, tick by tick, how each boat sails its current
// leg: which rule set applies, when to switch to the rounding rules and when
// to move on to the next leg.
package strategy

import (
	"fmt"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/boat"
	"github.com/a-bouts/race-sketch/course"
	"github.com/a-bouts/race-sketch/decision"
	"github.com/a-bouts/race-sketch/flow"
)

// Mover applies a decision to a boat and reports whether the boat has
// completed its leg.
type Mover interface {
	Move(b *boat.Boat, d *decision.Decision) bool
}

// Sink receives what the strategy saw and decided on every evaluated tick.
type Sink interface {
	Boat(b boat.Boat)
	Decision(name string, d decision.Decision)
	Reason(name string, reason string)
}

type rules func(c *Context) (decision.Decision, string)

var (
	sailingRules = map[Regime]rules{
		Windward:       windward,
		Offwind:        offwind,
		GybingDownwind: gybingDownwind,
	}
	roundingRules = map[Regime]rules{
		Windward:       windwardRounding,
		Offwind:        reachingRounding,
		GybingDownwind: leewardRounding,
	}
)

// phase is the strategy's progress along the leg. It only ever moves from
// approaching to rounding.
type phase struct {
	rounding bool
}

func (p *phase) enterRounding() {
	p.rounding = true
}

// departure gives the heading to leave the mark on, from the wind at it.
type departure func(wind angle.Angle) angle.Angle

// tracks are the bearings from the mark of the points each tack aims at.
type tracks struct {
	port      angle.Angle
	starboard angle.Angle
}

func (t tracks) of(h hand) angle.Angle {
	if h == port {
		return t.port
	}
	return t.starboard
}

func newTracks(regime Regime, leg *course.Leg) tracks {
	h := starboard
	if leg.IsPortRounding() {
		h = port
	}
	mmw := leg.MarkMeanWind()

	var same, other angle.Angle
	switch regime {
	case Windward:
		same, other = mmw.Add(h.of(angle.New(135))), mmw.Add(h.of(angle.New(45)))
	case GybingDownwind:
		same, other = mmw.Sub(h.of(angle.New(135))), mmw.Sub(h.of(angle.New(45)))
	default:
		same = leg.Bearing().Add(h.of(angle.Right))
		other = same
	}
	if h == port {
		return tracks{port: same, starboard: other}
	}
	return tracks{port: other, starboard: same}
}

func newDeparture(regime Regime, leg *course.Leg, b boat.Boat, wind flow.Flow) (departure, error) {
	h := starboard
	if leg.IsPortRounding() {
		h = port
	}
	next := leg.Following()

	switch Classify(next, b.Metrics, b.Tactics.ReachDownwind, wind.MeanFlowBearing()) {
	case Windward:
		if regime == Windward {
			return nil, fmt.Errorf("%w: windward leg %s followed by a windward leg", ErrUnsupportedRounding, leg.Name())
		}
		return func(w angle.Angle) angle.Angle { return closeHauled(&b, h, w) }, nil
	case Offwind:
		bearing := next.Bearing()
		return func(angle.Angle) angle.Angle { return bearing }, nil
	case GybingDownwind:
		return func(w angle.Angle) angle.Angle { return reaching(&b, h.opposite(), w) }, nil
	case None:
		return func(w angle.Angle) angle.Angle { return w.Sub(h.of(angle.Right)) }, nil
	}
	return nil, ErrUnsupportedRegime
}

// Strategy is one boat's plan for one leg. It owns the boat's decision.
type Strategy struct {
	regime    Regime
	leg       *course.Leg
	tracks    tracks
	departure departure
	phase     phase
	finished  bool
	decision  decision.Decision
}

// New returns the strategy for a boat starting the leg.
func New(b boat.Boat, leg *course.Leg, wind flow.Flow) (*Strategy, error) {
	regime := Classify(leg, b.Metrics, b.Tactics.ReachDownwind, wind.MeanFlowBearing())
	if _, found := sailingRules[regime]; !found {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRegime, regime)
	}

	dep, err := newDeparture(regime, leg, b, wind)
	if err != nil {
		return nil, err
	}

	return &Strategy{
		regime:    regime,
		leg:       leg,
		tracks:    newTracks(regime, leg),
		departure: dep,
		decision:  decision.SailOnDecision(),
	}, nil
}

// AfterFinish is the strategy of a boat that has rounded the last mark.
func AfterFinish(last *course.Leg) *Strategy {
	return &Strategy{
		regime:   None,
		leg:      last,
		finished: true,
		decision: decision.SailOnDecision(),
	}
}

func (s *Strategy) Regime() Regime              { return s.regime }
func (s *Strategy) Leg() *course.Leg            { return s.leg }
func (s *Strategy) Finished() bool              { return s.finished }
func (s *Strategy) Rounding() bool              { return s.phase.rounding }
func (s *Strategy) Decision() decision.Decision { return s.decision }

// Stop holds the boat where it is for the rest of the race.
func (s *Strategy) Stop() {
	s.decision = decision.StopDecision()
}

func (s *Strategy) context(b boat.Boat, wind flow.Flow) *Context {
	w, _ := wind.FlowAt(b.Location)
	return &Context{
		Boat:          b,
		Wind:          w,
		MeanWind:      wind.MeanFlowBearing(),
		LocalMeanWind: wind.MeanFlowBearingAt(b.Location),
		Leg:           s.leg,
		regime:        s.regime,
		tracks:        s.tracks,
		departure:     s.departure,
	}
}

// Evaluate decides what the boat should do now, with the reason for it.
// Once the boat comes near the mark the strategy stays on the rounding rules
// for the rest of the leg.
func (s *Strategy) Evaluate(b boat.Boat, wind flow.Flow) (decision.Decision, string) {
	if s.finished {
		return decision.SailOnDecision(), "After finish - sail on"
	}

	c := s.context(b, wind)
	if !s.phase.rounding && c.nearMark() {
		s.phase.enterRounding()
	}
	if s.phase.rounding {
		return roundingRules[s.regime](c)
	}
	return sailingRules[s.regime](c)
}

// Tick runs one time interval for the boat. A turn or rounding in progress is
// left to the mover until it completes. Tick returns the strategy for the
// next interval, which is a new one when the leg has been completed.
func (s *Strategy) Tick(b *boat.Boat, wind flow.Flow, mover Mover, sink Sink) (*Strategy, error) {
	if s.decision.Action == decision.SailOn {
		d, reason := s.Evaluate(*b, wind)
		s.decision = d
		sink.Boat(*b)
		sink.Decision(b.Name, d)
		sink.Reason(b.Name, reason)
	}

	if !mover.Move(b, &s.decision) || s.finished {
		return s, nil
	}

	next := s.leg.Following()
	if next == nil {
		return AfterFinish(s.leg), nil
	}
	return New(*b, next, wind)
}
