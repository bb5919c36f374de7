package boat

import (
	"math"
	"testing"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/decision"
	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/location"
	"github.com/a-bouts/race-sketch/polar"
)

func testBoat(heading float64) *Boat {
	return &Boat{
		Name:    "Red",
		Heading: angle.New(heading),
		Metrics: Metrics{
			Length:           4,
			Width:            1,
			UpwindRelative:   angle.New(45),
			DownwindRelative: angle.New(150),
		},
	}
}

func TestIsPort(t *testing.T) {
	tests := []struct {
		heading, wind float64
		want          bool
	}{
		{45, 0, true},
		{135, 0, true},
		{315, 0, false},
		{225, 0, false},
		{0, 0, false},
		{180, 0, false},
		{100, 90, true},
		{80, 90, false},
		{-170, 170, true},
	}
	for _, tt := range tests {
		b := testBoat(tt.heading)
		if got := b.IsPort(angle.New(tt.wind)); got != tt.want {
			t.Errorf("heading %v IsPort(%v) = %v; want %v", tt.heading, tt.wind, got, tt.want)
		}
	}
}

func TestCourses(t *testing.T) {
	b := testBoat(0)
	wind := angle.New(90)
	if got := b.PortCloseHauledCourse(wind).Degrees(); got != 135 {
		t.Errorf("PortCloseHauledCourse(90) = %v; want 135", got)
	}
	if got := b.StarboardCloseHauledCourse(wind).Degrees(); got != 45 {
		t.Errorf("StarboardCloseHauledCourse(90) = %v; want 45", got)
	}
	if got := b.PortReachingCourse(wind).Degrees(); got != -120 {
		t.Errorf("PortReachingCourse(90) = %v; want -120", got)
	}
	if got := b.StarboardReachingCourse(wind).Degrees(); got != -60 {
		t.Errorf("StarboardReachingCourse(90) = %v; want -60", got)
	}
}

func TestRearQuadrants(t *testing.T) {
	b := testBoat(0)
	b.Location = location.Location{X: 0, Y: 0}

	tests := []struct {
		mark       location.Location
		port, stbd bool
	}{
		{location.Location{X: 0, Y: 10}, false, false},
		{location.Location{X: -10, Y: 0}, true, false},
		{location.Location{X: -10, Y: -10}, true, false},
		{location.Location{X: 0, Y: -10}, true, true},
		{location.Location{X: 10, Y: -10}, false, true},
		{location.Location{X: 10, Y: 1}, false, false},
	}
	for _, tt := range tests {
		if got := b.IsPortRear90Quadrant(tt.mark); got != tt.port {
			t.Errorf("IsPortRear90Quadrant(%v) = %v; want %v", tt.mark, got, tt.port)
		}
		if got := b.IsStarboardRear90Quadrant(tt.mark); got != tt.stbd {
			t.Errorf("IsStarboardRear90Quadrant(%v) = %v; want %v", tt.mark, got, tt.stbd)
		}
	}
}

func TestChannel(t *testing.T) {
	c := Channel{Centre: location.Location{X: 0, Y: 0}, Axis: angle.Zero, HalfWidth: 20}

	if !c.IsInChannel(location.Location{X: 10, Y: 50}) {
		t.Errorf("IsInChannel({10,50}) = false; want true")
	}
	if !c.IsInChannel(location.Location{X: -20, Y: -40}) {
		t.Errorf("IsInChannel({-20,-40}) = false; want true")
	}
	if c.IsInChannel(location.Location{X: 30, Y: 0}) {
		t.Errorf("IsInChannel({30,0}) = true; want false")
	}
	if !c.IsLeaving(location.Location{X: 30, Y: 0}, angle.New(45)) {
		t.Errorf("IsLeaving({30,0}, 45) = false; want true")
	}
	if c.IsLeaving(location.Location{X: 30, Y: 0}, angle.New(-45)) {
		t.Errorf("IsLeaving({30,0}, -45) = true; want false")
	}
	if !c.IsLeaving(location.Location{X: -30, Y: 0}, angle.New(-135)) {
		t.Errorf("IsLeaving({-30,0}, -135) = false; want true")
	}
	if c.IsLeaving(location.Location{X: 10, Y: 0}, angle.New(90)) {
		t.Errorf("IsLeaving({10,0}, 90) = true; want false")
	}
	if got := c.InnerOffset(location.Location{X: 5, Y: 100}); math.Abs(got-15) > 1e-9 {
		t.Errorf("InnerOffset({5,100}) = %v; want 15", got)
	}
	if got := c.InnerOffset(location.Location{X: -25, Y: 100}); math.Abs(got-5) > 1e-9 {
		t.Errorf("InnerOffset({-25,100}) = %v; want 5", got)
	}
}

func TestTurn(t *testing.T) {
	b := testBoat(0)
	b.Metrics.TurnRate = 30
	k := Kinematics{Wind: flow.Constant{}, Interval: 1}
	d := decision.TurnDecision(angle.New(90), decision.Clockwise)

	for i := 1; i <= 2; i++ {
		if k.Move(b, &d) {
			t.Fatalf("Move() %d reported a completed leg for a turn", i)
		}
		if got := b.Heading.Degrees(); got != float64(30*i) {
			t.Errorf("heading after %d moves = %v; want %v", i, got, 30*i)
		}
		if d.Action != decision.Turn {
			t.Errorf("decision after %d moves = %v; want TURN", i, d)
		}
	}
	if k.Move(b, &d) {
		t.Errorf("Move() reported a completed leg for a turn")
	}
	if b.Heading.Degrees() != 90 || d.Action != decision.SailOn {
		t.Errorf("after the turn heading = %v, decision = %v; want 90, SAILON", b.Heading, d)
	}
}

func TestTurnTheLongWay(t *testing.T) {
	b := testBoat(0)
	b.Metrics.TurnRate = 90
	k := Kinematics{Wind: flow.Constant{}, Interval: 1}
	d := decision.TurnDecision(angle.New(90), decision.Anticlockwise)

	want := []float64{-90, 180, 90}
	for i, w := range want {
		k.Move(b, &d)
		if got := b.Heading.Degrees(); got != w {
			t.Errorf("heading after %d moves = %v; want %v", i+1, got, w)
		}
	}
	if d.Action != decision.SailOn {
		t.Errorf("decision = %v; want SAILON", d)
	}
}

func TestMarkRoundingCompletesLeg(t *testing.T) {
	b := testBoat(0)
	b.Metrics.TurnRate = 45
	k := Kinematics{Wind: flow.Constant{}, Interval: 1}
	d := decision.MarkRoundingDecision(angle.New(-90), decision.Anticlockwise)

	if k.Move(b, &d) {
		t.Errorf("first Move() of a 90 degree rounding completed the leg")
	}
	if !k.Move(b, &d) {
		t.Errorf("second Move() of a 90 degree rounding did not complete the leg")
	}
	if b.Heading.Degrees() != -90 || d.Action != decision.SailOn {
		t.Errorf("after rounding heading = %v, decision = %v; want -90, SAILON", b.Heading, d)
	}
}

func TestStop(t *testing.T) {
	b := testBoat(0)
	b.Location = location.Location{X: 3, Y: 4}
	b.Speed = 2
	k := Kinematics{Wind: flow.Constant{Speed: 5}, Interval: 1}
	d := decision.StopDecision()

	if k.Move(b, &d) {
		t.Errorf("Move(STOP) completed a leg")
	}
	if b.Speed != 0 || b.Location != (location.Location{X: 3, Y: 4}) || d.Action != decision.Stop {
		t.Errorf("after STOP speed = %v, location = %v, decision = %v", b.Speed, b.Location, d)
	}
}

func TestSailOn(t *testing.T) {
	p, err := polar.New("dinghy", []float64{0, 8}, []float64{0, 90, 180}, [][]float64{{0, 0, 0}, {0, 5.5, 4}})
	if err != nil {
		t.Fatal(err)
	}
	b := testBoat(90)
	b.Metrics.Performance = p
	k := Kinematics{
		Wind:     flow.Constant{From: angle.Zero, Speed: 8},
		Water:    flow.Constant{From: angle.New(180), Speed: 0.5},
		Interval: 2,
	}
	d := decision.SailOnDecision()

	k.Move(b, &d)
	if b.Speed != 5.5 {
		t.Errorf("speed = %v; want 5.5", b.Speed)
	}
	if math.Abs(b.Location.X-11) > 1e-9 || math.Abs(b.Location.Y-1) > 1e-9 {
		t.Errorf("location = %v; want {11, 1}", b.Location)
	}
}
