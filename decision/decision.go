package decision

import (
	"fmt"
	"strings"

	"github.com/a-bouts/race-sketch/angle"
)

type Action int

const (
	SailOn Action = iota
	Turn
	MarkRounding
	Stop
)

func (a Action) String() string {
	switch a {
	case SailOn:
		return "SAILON"
	case Turn:
		return "TURN"
	case MarkRounding:
		return "MARKROUNDING"
	case Stop:
		return "STOP"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Sense is the direction of a turn. A turn to port is anticlockwise.
type Sense int

const (
	Clockwise Sense = iota
	Anticlockwise
)

func (s Sense) String() string {
	if s == Anticlockwise {
		return "anticlockwise"
	}
	return "clockwise"
}

// Decision is the steering order for one tick. Heading and Sense are only set
// for Turn and MarkRounding.
type Decision struct {
	Action  Action      `json:"action"`
	Heading angle.Angle `json:"heading"`
	Sense   Sense       `json:"sense"`
}

func SailOnDecision() Decision {
	return Decision{Action: SailOn}
}

func StopDecision() Decision {
	return Decision{Action: Stop}
}

func TurnDecision(heading angle.Angle, sense Sense) Decision {
	return Decision{Action: Turn, Heading: heading, Sense: sense}
}

func MarkRoundingDecision(heading angle.Angle, sense Sense) Decision {
	return Decision{Action: MarkRounding, Heading: heading, Sense: sense}
}

// IsPort reports a turn to port.
func (d Decision) IsPort() bool {
	return d.Sense == Anticlockwise
}

func (d Decision) String() string {
	switch d.Action {
	case Turn, MarkRounding:
		return fmt.Sprintf("%s %.0f %s", d.Action, d.Heading.Degrees(), d.Sense)
	}
	return d.Action.String()
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	for _, v := range []Action{SailOn, Turn, MarkRounding, Stop} {
		if strings.EqualFold(string(text), v.String()) {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", text)
}

func (s Sense) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Sense) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "clockwise":
		*s = Clockwise
	case "anticlockwise":
		*s = Anticlockwise
	default:
		return fmt.Errorf("unknown sense %q", text)
	}
	return nil
}
