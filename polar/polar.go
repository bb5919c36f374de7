package polar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/race-sketch/angle"
)

var ErrInvalidTable = errors.New("invalid polar table")

// PerformanceVectors is a boat speed table indexed by wind speed then wind
// angle. Speed[i][j] is the boat speed at Tws[i] and Twa[j].
type PerformanceVectors struct {
	Label string      `json:"label"`
	Tws   []float64   `json:"tws"`
	Twa   []float64   `json:"twa"`
	Speed [][]float64 `json:"speed"`
}

func New(label string, tws, twa []float64, speed [][]float64) (*PerformanceVectors, error) {
	p := &PerformanceVectors{Label: label, Tws: tws, Twa: twa, Speed: speed}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func increasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return false
		}
	}
	return true
}

func (p *PerformanceVectors) validate() error {
	if len(p.Tws) == 0 || len(p.Twa) == 0 {
		return fmt.Errorf("%w %q: empty breakpoints", ErrInvalidTable, p.Label)
	}
	if !increasing(p.Tws) {
		return fmt.Errorf("%w %q: wind speeds not strictly increasing", ErrInvalidTable, p.Label)
	}
	if !increasing(p.Twa) {
		return fmt.Errorf("%w %q: wind angles not strictly increasing", ErrInvalidTable, p.Label)
	}
	if len(p.Speed) != len(p.Tws) {
		return fmt.Errorf("%w %q: %d speed rows for %d wind speeds", ErrInvalidTable, p.Label, len(p.Speed), len(p.Tws))
	}
	for i, row := range p.Speed {
		if len(row) != len(p.Twa) {
			return fmt.Errorf("%w %q: row %d has %d values for %d wind angles", ErrInvalidTable, p.Label, i, len(row), len(p.Twa))
		}
	}
	return nil
}

// Load reads a JSON polar file.
func Load(file string) (*PerformanceVectors, error) {
	log.Debugf("Load polar %s", file)

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var p PerformanceVectors
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("polar %s: %w", file, err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// interpolationIndex returns the bracketing indexes of value and the weight of
// the first one. Values outside the breakpoints clamp to the first or last.
func interpolationIndex(values []float64, value float64) (int, int, float64) {

	i := 0
	for values[i] < value {
		i++
		if i == len(values) {
			return i - 1, i - 1, 1
		}
	}

	if i > 0 {
		return i - 1, i, (values[i] - value) / (values[i] - values[i-1])
	}

	return 0, 0, 0
}

// PotentialBoatSpeed is the boat speed for a true wind angle, either side,
// and a wind speed.
func (p *PerformanceVectors) PotentialBoatSpeed(twa angle.Angle, tws float64) float64 {
	a := math.Abs(twa.Degrees())

	twsIndex0, twsIndex1, twsFactor := interpolationIndex(p.Tws, tws)
	twaIndex0, twaIndex1, twaFactor := interpolationIndex(p.Twa, a)

	s0 := p.Speed[twsIndex0]
	s1 := p.Speed[twsIndex1]
	low := s0[twaIndex0]*twaFactor + s0[twaIndex1]*(1-twaFactor)
	high := s1[twaIndex0]*twaFactor + s1[twaIndex1]*(1-twaFactor)

	return low*twsFactor + high*(1-twsFactor)
}
