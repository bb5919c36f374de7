package angle

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Angle is a bearing in degrees, always held in (-180, 180].
type Angle struct {
	deg float64
}

var (
	Zero  = Angle{}
	Right = New(90)
)

// New normalizes deg into (-180, 180].
func New(deg float64) Angle {
	d := math.Mod(deg, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	if d == 0 {
		d = 0
	}
	return Angle{deg: d}
}

func FromRadians(rad float64) Angle {
	return New(rad * 180 / math.Pi)
}

func (a Angle) Degrees() float64 {
	return a.deg
}

func (a Angle) Radians() float64 {
	return a.deg * math.Pi / 180
}

func (a Angle) Add(b Angle) Angle {
	return New(a.deg + b.deg)
}

func (a Angle) Sub(b Angle) Angle {
	return New(a.deg - b.deg)
}

func (a Angle) Negate() Angle {
	return New(-a.deg)
}

// Inverse is the reciprocal bearing.
func (a Angle) Inverse() Angle {
	return New(a.deg + 180)
}

// AbsDiff is the unsigned angular distance between a and b, in [0, 180].
func (a Angle) AbsDiff(b Angle) Angle {
	return Angle{deg: math.Abs(a.Sub(b).deg)}
}

// Div is the ratio of two angles.
func (a Angle) Div(b Angle) float64 {
	return a.deg / b.deg
}

func (a Angle) Lt(b Angle) bool   { return a.deg < b.deg }
func (a Angle) Lteq(b Angle) bool { return a.deg <= b.deg }
func (a Angle) Gt(b Angle) bool   { return a.deg > b.deg }
func (a Angle) Gteq(b Angle) bool { return a.deg >= b.deg }
func (a Angle) Eq(b Angle) bool   { return a.deg == b.deg }

// Between reports whether a lies in the closed range [lo, hi], compared on
// normalized values.
func (a Angle) Between(lo, hi Angle) bool {
	return a.deg >= lo.deg && a.deg <= hi.deg
}

func (a Angle) String() string {
	return fmt.Sprintf("%g°", a.deg)
}

func (a Angle) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.deg, 'g', -1, 64)), nil
}

func (a *Angle) UnmarshalJSON(data []byte) error {
	var d float64
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid angle %q: %w", data, err)
	}
	*a = New(d)
	return nil
}
