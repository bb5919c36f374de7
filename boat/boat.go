package boat

import (
	"math"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/location"
	"github.com/a-bouts/race-sketch/polar"
)

// Metrics describe the boat class. UpwindRelative and DownwindRelative are
// the best angles off the true wind upwind and downwind. TurnRate is in
// degrees per second, zero turning instantly.
type Metrics struct {
	Length           float64                   `json:"length"`
	Width            float64                   `json:"width"`
	UpwindRelative   angle.Angle               `json:"upwindrelative"`
	DownwindRelative angle.Angle               `json:"downwindrelative"`
	TurnRate         float64                   `json:"turnrate"`
	Performance      *polar.PerformanceVectors `json:"-"`
}

type Tactics struct {
	ReachDownwind bool `json:"reachdownwind"`

	UpwindSailOnBestTack   bool     `json:"upwindsailonbesttack"`
	UpwindTackIfHeaded     bool     `json:"upwindtackifheaded"`
	UpwindBearAwayIfHeaded bool     `json:"upwindbearawayifheaded"`
	UpwindLuffIfLifted     bool     `json:"upwindluffupiflifted"`
	UpwindChannel          *Channel `json:"upwindchannel,omitempty"`

	DownwindSailOnBestGybe   bool     `json:"downwindsailonbestgybe"`
	DownwindGybeIfLifted     bool     `json:"downwindgybeiflifted"`
	DownwindLuffIfLifted     bool     `json:"downwindluffupiflifted"`
	DownwindBearAwayIfHeaded bool     `json:"downwindbearawayifheaded"`
	DownwindChannel          *Channel `json:"downwindchannel,omitempty"`
}

type Boat struct {
	Name     string            `json:"name"`
	Location location.Location `json:"location"`
	Heading  angle.Angle       `json:"heading"`
	Speed    float64           `json:"speed"`
	Metrics  Metrics           `json:"metrics"`
	Tactics  Tactics           `json:"tactics"`
}

// IsPort reports whether the wind comes over the port side.
func (b *Boat) IsPort(wind angle.Angle) bool {
	rel := b.Heading.Sub(wind)
	return rel.Gt(angle.Zero) && !rel.Eq(angle.New(180))
}

func (b *Boat) PortCloseHauledCourse(wind angle.Angle) angle.Angle {
	return wind.Add(b.Metrics.UpwindRelative)
}

func (b *Boat) StarboardCloseHauledCourse(wind angle.Angle) angle.Angle {
	return wind.Sub(b.Metrics.UpwindRelative)
}

func (b *Boat) PortReachingCourse(wind angle.Angle) angle.Angle {
	return wind.Add(b.Metrics.DownwindRelative)
}

func (b *Boat) StarboardReachingCourse(wind angle.Angle) angle.Angle {
	return wind.Sub(b.Metrics.DownwindRelative)
}

func (b *Boat) relativeBearing(l location.Location) angle.Angle {
	return b.Location.BearingTo(l).Sub(b.Heading)
}

// IsPortRear90Quadrant reports whether l lies abaft the port beam.
func (b *Boat) IsPortRear90Quadrant(l location.Location) bool {
	rel := b.relativeBearing(l)
	return rel.Lteq(angle.New(-90)) || rel.Eq(angle.New(180))
}

// IsStarboardRear90Quadrant reports whether l lies abaft the starboard beam.
func (b *Boat) IsStarboardRear90Quadrant(l location.Location) bool {
	return b.relativeBearing(l).Gteq(angle.Right)
}

// Channel is a corridor HalfWidth metres either side of the line through
// Centre on bearing Axis.
type Channel struct {
	Centre    location.Location `json:"centre"`
	Axis      angle.Angle       `json:"axis"`
	HalfWidth float64           `json:"halfwidth"`
}

// offset is the signed distance of l from the axis, positive to starboard
// of the axis direction.
func (c Channel) offset(l location.Location) float64 {
	d, a := c.Centre.DistanceAndBearingTo(l)
	return d * math.Sin(a.Sub(c.Axis).Radians())
}

func (c Channel) IsInChannel(l location.Location) bool {
	return math.Abs(c.offset(l)) <= c.HalfWidth
}

// IsLeaving reports whether l is outside the channel and the heading takes
// the boat further out.
func (c Channel) IsLeaving(l location.Location, heading angle.Angle) bool {
	return !c.IsInChannel(l) && c.offset(l)*math.Sin(heading.Sub(c.Axis).Radians()) > 0
}

// InnerOffset is the distance from the mark to the nearest channel edge.
func (c Channel) InnerOffset(mark location.Location) float64 {
	return math.Abs(c.HalfWidth - math.Abs(c.offset(mark)))
}
