package strategy

import (
	"fmt"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/decision"
)

// The sailing rules apply away from the mark. Each set is a chain of checks
// evaluated in order; the first one that applies decides.

func windward(c *Context) (decision.Decision, string) {
	wind := c.Wind
	h := c.tack(wind)
	o := h.opposite()
	b := &c.Boat
	tactics := b.Tactics

	tack := decision.TurnDecision(c.closeHauled(o, wind), h.tack())

	if c.canLayWindward(o, wind) {
		return tack, fmt.Sprintf("Tacking onto %s layline", o)
	}
	if c.canLayWindward(h, wind) {
		return c.steer(c.bearingToSailTo(h)), fmt.Sprintf("Beating on %s layline to windward mark - course adjustment", h)
	}
	if ch := tactics.UpwindChannel; ch != nil {
		if c.distanceToMark() > ch.InnerOffset(c.mark())*1.5 && ch.IsLeaving(b.Location, b.Heading) {
			return tack, fmt.Sprintf("Tacking onto %s to stay in channel", o)
		}
	}
	if tactics.UpwindSailOnBestTack && h.of(wind.Sub(c.MeanWind)).Gt(angle.Zero) {
		return tack, fmt.Sprintf("Tack onto best tack - %s", o)
	}

	toWind := b.Heading.AbsDiff(wind)
	if toWind.Lt(b.Metrics.UpwindRelative) {
		if tactics.UpwindTackIfHeaded {
			return tack, fmt.Sprintf("Beating - tack onto %s if headed", o)
		}
		if tactics.UpwindBearAwayIfHeaded {
			return decision.TurnDecision(c.closeHauled(h, wind), h.bearAway()), "Beating - bearaway if headed"
		}
	}
	if toWind.Gt(b.Metrics.UpwindRelative) && tactics.UpwindLuffIfLifted {
		return decision.TurnDecision(c.closeHauled(h, wind), h.luff()), "Beating - luff if lifted"
	}
	return decision.SailOnDecision(), "Sail ON"
}

func gybingDownwind(c *Context) (decision.Decision, string) {
	wind := c.Wind
	h := c.tack(wind)
	o := h.opposite()
	b := &c.Boat
	tactics := b.Tactics

	gybe := decision.TurnDecision(c.reaching(o, wind), h.gybe())

	if c.canLayLeeward(o, wind) {
		return gybe, fmt.Sprintf("Gybing onto %s layline", o)
	}
	if c.canLayLeeward(h, wind) {
		return c.steer(c.bearingToSailTo(h)), fmt.Sprintf("Reaching on %s layline to leeward mark - course adjustment", h)
	}
	if ch := tactics.DownwindChannel; ch != nil {
		if c.distanceToMark() > ch.InnerOffset(c.mark())*1.5 && ch.IsLeaving(b.Location, b.Heading) {
			return gybe, fmt.Sprintf("Gybing onto %s to stay in channel", o)
		}
	}
	if tactics.DownwindSailOnBestGybe && h.of(wind.Sub(c.MeanWind)).Lt(angle.Zero) {
		return gybe, fmt.Sprintf("Gybe onto best tack - %s", o)
	}

	toWind := b.Heading.AbsDiff(wind)
	if toWind.Gt(b.Metrics.DownwindRelative) {
		if tactics.DownwindGybeIfLifted {
			return gybe, fmt.Sprintf("Reaching - gybe onto %s if lifted", o)
		}
		if tactics.DownwindLuffIfLifted {
			return decision.TurnDecision(c.reaching(h, wind), h.luff()), "Reaching - luff if lifted"
		}
	}
	if toWind.Lt(b.Metrics.DownwindRelative) && tactics.DownwindBearAwayIfHeaded {
		return decision.TurnDecision(c.reaching(h, wind), h.bearAway()), "Reaching - bearaway if headed"
	}
	return decision.SailOnDecision(), "Sail ON"
}

func offwind(c *Context) (decision.Decision, string) {
	target := c.bearingToSailTo(c.tack(c.Wind))
	if target.Eq(c.Boat.Heading) {
		return decision.SailOnDecision(), "Sail ON"
	}
	return c.steer(target), "Adjust direction to sail directly to mark (offwind sailing)"
}
