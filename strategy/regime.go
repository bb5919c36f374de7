package strategy

import (
	"errors"
	"fmt"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/boat"
	"github.com/a-bouts/race-sketch/course"
)

var (
	ErrUnsupportedRegime   = errors.New("unsupported leg regime")
	ErrUnsupportedRounding = errors.New("unsupported rounding")
)

// Regime is the tactical situation a leg puts a boat in.
type Regime int

const (
	None Regime = iota
	Windward
	Offwind
	GybingDownwind
)

func (r Regime) String() string {
	switch r {
	case None:
		return "none"
	case Windward:
		return "windward"
	case Offwind:
		return "offwind"
	case GybingDownwind:
		return "gybing downwind"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// Classify returns the regime of a leg for a boat class. A nil leg is None.
func Classify(leg *course.Leg, metrics boat.Metrics, reachDownwind bool, meanWind angle.Angle) Regime {
	if leg == nil {
		return None
	}
	legToWind := leg.Bearing().AbsDiff(meanWind)
	if legToWind.Lteq(metrics.UpwindRelative) {
		return Windward
	}
	if reachDownwind && legToWind.Gteq(metrics.DownwindRelative) {
		return GybingDownwind
	}
	return Offwind
}
