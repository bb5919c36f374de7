package strategy

import (
	"fmt"

	"github.com/a-bouts/race-sketch/decision"
)

// The rounding rules take over near the mark. h is the rounding side, and
// wind is the mean wind at the boat.

func windwardRounding(c *Context) (decision.Decision, string) {
	wind := c.LocalMeanWind
	h := c.rounding()
	o := h.opposite()
	tack := c.tack(wind)
	b := &c.Boat

	if c.atTurnPoint(h) {
		return c.round(h), fmt.Sprintf("mark rounding - %s tack - %s rounding", tack, h)
	}

	// o is the tack that lays the mark with it on the h side.
	if tack == o {
		if c.canLayWindward(o, wind) {
			return c.steer(c.bearingToSailTo(o)), fmt.Sprintf("course adjustment - approaching mark - %s tack - %s rounding", o, h)
		}
		if inRearQuadrant(b, o, c.mark()) {
			return decision.TurnDecision(c.closeHauled(h, wind), o.tack()), fmt.Sprintf("pre markrounding action - tack to %s - %s tack - %s rounding", h, o, h)
		}
		return c.steer(c.closeHauled(o, wind)), fmt.Sprintf("course adjustment - hold %s close hauled - %s tack - %s rounding", o, o, h)
	}

	if c.canLayWindward(o, wind) {
		return decision.TurnDecision(c.closeHauled(o, wind), h.tack()), fmt.Sprintf("tacking on %s layline - %s->%s", o, h, o)
	}
	if inRearQuadrant(b, h, c.mark()) {
		return decision.TurnDecision(c.closeHauled(o, wind), h.tack()), fmt.Sprintf("overstood - tack to %s - %s tack - %s rounding", o, h, h)
	}
	if c.canLayWindward(h, wind) {
		return c.steer(c.bearingToSailTo(h)), fmt.Sprintf("course adjustment - approaching mark - %s tack - %s rounding", h, h)
	}
	return c.steer(c.closeHauled(h, wind)), fmt.Sprintf("course adjustment - hold %s close hauled - %s tack - %s rounding", h, h, h)
}

// reachingRounding rounds a mark approached on an offwind leg.
func reachingRounding(c *Context) (decision.Decision, string) {
	wind := c.LocalMeanWind
	h := c.rounding()
	o := h.opposite()
	b := &c.Boat

	if c.tack(wind) == h {
		return leadingTackRounding(c, h)
	}

	if inRearQuadrant(b, h, c.mark()) {
		return decision.TurnDecision(c.reaching(h, wind), o.gybe()), fmt.Sprintf("pre markrounding action - gybe to %s - %s tack - %s rounding", h, o, h)
	}
	return approach(c, o, h)
}

// leewardRounding rounds a mark approached on a gybing downwind leg. On the
// tack away from the rounding side the boat can gybe straight into the
// rounding once it lays the mark.
func leewardRounding(c *Context) (decision.Decision, string) {
	wind := c.LocalMeanWind
	h := c.rounding()
	o := h.opposite()
	b := &c.Boat

	if c.tack(wind) == h {
		return leadingTackRounding(c, h)
	}

	if c.canLayLeeward(h, wind) {
		if c.distanceToMark() <= 2*b.Metrics.Length {
			return c.round(h), fmt.Sprintf("mark rounding - gybe and round - %s tack - %s rounding", o, h)
		}
		return decision.TurnDecision(c.reaching(h, wind), o.gybe()), fmt.Sprintf("gybing on %s layline - %s->%s", h, o, h)
	}
	if inRearQuadrant(b, h, c.mark()) {
		return decision.TurnDecision(c.reaching(h, wind), o.gybe()), fmt.Sprintf("pre markrounding action - gybe to %s - %s tack - %s rounding", h, o, h)
	}
	return approach(c, o, h)
}

// leadingTackRounding handles a boat on the same tack as the rounding side
// approaching downwind or on a reach.
func leadingTackRounding(c *Context, h hand) (decision.Decision, string) {
	wind := c.LocalMeanWind
	o := h.opposite()

	if c.atTurnPoint(h) {
		return c.round(h), fmt.Sprintf("mark rounding - %s tack - %s rounding", h, h)
	}
	if c.canLayLeeward(h, wind) {
		return c.steer(c.bearingToSailTo(h)), fmt.Sprintf("course adjustment - approaching mark - %s tack - %s rounding", h, h)
	}
	if c.canLayLeeward(o, wind) {
		return decision.TurnDecision(c.reaching(o, wind), h.gybe()), fmt.Sprintf("gybing on %s layline - %s->%s", o, h, o)
	}
	return c.steer(c.reaching(h, wind)), fmt.Sprintf("course adjustment - luff up to hold %s reaching - %s tack - %s rounding", h, h, h)
}

// approach steers a boat on tack t for the sail to point of that tack, or
// holds it reaching until it can lay it.
func approach(c *Context, t, h hand) (decision.Decision, string) {
	wind := c.LocalMeanWind
	if c.canLayLeeward(t, wind) {
		return c.steer(c.bearingToSailTo(t)), fmt.Sprintf("course adjustment - approaching mark - %s tack - %s rounding", t, h)
	}
	return c.steer(c.reaching(t, wind)), fmt.Sprintf("course adjustment - luff up to hold %s reaching - %s tack - %s rounding", t, t, h)
}
