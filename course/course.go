package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/location"
)

var (
	ErrUnknownMark     = errors.New("unknown mark")
	ErrInvalidRounding = errors.New("invalid rounding")
	ErrNoLegs          = errors.New("course has no legs")
)

type Rounding int

const (
	Port Rounding = iota
	Starboard
)

func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "port":
		return Port, nil
	case "starboard":
		return Starboard, nil
	}
	return Port, fmt.Errorf("%w %q", ErrInvalidRounding, s)
}

func (r Rounding) String() string {
	if r == Starboard {
		return "starboard"
	}
	return "port"
}

func (r Rounding) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rounding) UnmarshalText(text []byte) error {
	v, err := ParseRounding(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type Mark struct {
	Name     string            `json:"name"`
	Location location.Location `json:"location"`
}

type LegDefinition struct {
	Mark     string   `json:"mark"`
	Rounding Rounding `json:"rounding"`
}

type Definition struct {
	Start location.Location `json:"start"`
	Marks []Mark            `json:"marks"`
	Legs  []LegDefinition   `json:"legs"`
}

type Course struct {
	def   Definition
	marks map[string]Mark
	first *Leg
}

// New builds the leg chain, taking each mark's mean wind from the flow.
func New(def Definition, wind flow.Flow) (*Course, error) {
	if len(def.Legs) == 0 {
		return nil, ErrNoLegs
	}

	c := &Course{def: def, marks: make(map[string]Mark, len(def.Marks))}
	for _, m := range def.Marks {
		if _, found := c.marks[m.Name]; found {
			return nil, fmt.Errorf("duplicate mark %q", m.Name)
		}
		c.marks[m.Name] = m
	}

	starts := make([]location.Location, len(def.Legs))
	starts[0] = def.Start
	for i, l := range def.Legs {
		m, found := c.marks[l.Mark]
		if !found {
			return nil, fmt.Errorf("leg %d: %w %q", i+1, ErrUnknownMark, l.Mark)
		}
		if i+1 < len(def.Legs) {
			starts[i+1] = m.Location
		}
	}

	var following *Leg
	for i := len(def.Legs) - 1; i >= 0; i-- {
		l := def.Legs[i]
		end := c.marks[l.Mark].Location
		following = NewLeg(l.Mark, starts[i], end, l.Rounding == Port, wind.MeanFlowBearingAt(end), following)
	}
	c.first = following

	return c, nil
}

func Parse(data []byte, wind flow.Flow) (*Course, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return New(def, wind)
}

func (c *Course) FirstLeg() *Leg {
	return c.first
}

func (c *Course) Legs() []*Leg {
	var legs []*Leg
	for l := c.first; l != nil; l = l.Following() {
		legs = append(legs, l)
	}
	return legs
}

func (c *Course) Mark(name string) (Mark, bool) {
	m, found := c.marks[name]
	return m, found
}

func (c *Course) Start() location.Location {
	return c.def.Start
}
