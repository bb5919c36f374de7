package flow

import (
	"math"
	"sync"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/location"
)

// Swinging oscillates the bearing of a base flow with a sine of the given
// amplitude (degrees) and period (seconds). Mean bearings ignore the swing.
type Swinging struct {
	Base      Flow
	Amplitude float64
	Period    float64

	lock    sync.RWMutex
	elapsed float64
}

func NewSwinging(base Flow, amplitude, period float64) *Swinging {
	return &Swinging{Base: base, Amplitude: amplitude, Period: period}
}

// Advance moves the swing clock on and returns the new swing.
func (s *Swinging) Advance(seconds float64) angle.Angle {
	s.lock.Lock()
	s.elapsed += seconds
	s.lock.Unlock()
	return s.Swing()
}

func (s *Swinging) Swing() angle.Angle {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.Period <= 0 {
		return angle.Zero
	}
	return angle.New(s.Amplitude * math.Sin(2*math.Pi*s.elapsed/s.Period))
}

func (s *Swinging) FlowAt(l location.Location) (angle.Angle, float64) {
	from, speed := s.Base.FlowAt(l)
	return from.Add(s.Swing()), speed
}

func (s *Swinging) MeanFlowBearing() angle.Angle {
	return s.Base.MeanFlowBearing()
}

func (s *Swinging) MeanFlowBearingAt(l location.Location) angle.Angle {
	return s.Base.MeanFlowBearingAt(l)
}
