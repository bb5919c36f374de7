package location

import (
	"math"
	"testing"

	"github.com/a-bouts/race-sketch/angle"
)

func TestBearingTo(t *testing.T) {
	tests := []struct {
		from, to Location
		want     float64
	}{
		{Location{-5, -5}, Location{5, 5}, 45},
		{Location{0, 0}, Location{0, 10}, 0},
		{Location{0, 0}, Location{10, 0}, 90},
		{Location{0, 0}, Location{0, -10}, 180},
		{Location{0, 0}, Location{-10, 0}, -90},
		{Location{-5, 5}, Location{5, -5}, 135},
		{Location{47, 12}, Location{50, 10}, 124},
		{Location{3, 3}, Location{3, 3}, 0},
	}
	for _, tt := range tests {
		got := tt.from.BearingTo(tt.to).Degrees()
		if got != tt.want {
			t.Errorf("%v.BearingTo(%v) = %v; want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDistanceTo(t *testing.T) {
	d := Location{0, 0}.DistanceTo(Location{3, 4})
	if d != 5 {
		t.Errorf("{0,0}.DistanceTo({3,4}) = %v; want 5", d)
	}
}

func TestPolarRoundTrip(t *testing.T) {
	from := Location{47, 12}
	to := Location{50, 10}
	p := Between(from, to)
	if math.Round(p.Distance*1000) != math.Round(math.Sqrt(13)*1000) {
		t.Errorf("Between(%v, %v).Distance = %v; want sqrt(13)", from, to, p.Distance)
	}
	back := p.From(from)
	if math.Abs(back.X-to.X) > 1e-9 || math.Abs(back.Y-to.Y) > 1e-9 {
		t.Errorf("Between(%v, %v).From(%v) = %v; want %v", from, to, from, back, to)
	}
}

func TestOffset(t *testing.T) {
	got := Location{50, 10}.Offset(DistancePolar{Distance: 2, Angle: angle.New(180)})
	if math.Abs(got.X-50) > 1e-9 || math.Abs(got.Y-8) > 1e-9 {
		t.Errorf("{50,10}.Offset(2, 180) = %v; want {50,8}", got)
	}
}

func TestFractional(t *testing.T) {
	x, y := Location{25, 75}.Fractional(Location{0, 0}, 100, 100)
	if x != 0.25 || y != 0.75 {
		t.Errorf("Fractional = (%v, %v); want (0.25, 0.75)", x, y)
	}
}
