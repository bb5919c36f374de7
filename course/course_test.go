package course

import (
	"errors"
	"testing"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/location"
)

const triangle = `{
	"start": {"x": 50, "y": 0},
	"marks": [
		{"name": "windward", "location": {"x": 50, "y": 200}},
		{"name": "wing", "location": {"x": 150, "y": 100}},
		{"name": "leeward", "location": {"x": 50, "y": 10}}
	],
	"legs": [
		{"mark": "windward", "rounding": "port"},
		{"mark": "wing", "rounding": "Port"},
		{"mark": "leeward", "rounding": "starboard"}
	]
}`

func TestParse(t *testing.T) {
	wind := flow.Constant{From: angle.New(10), Speed: 5}
	c, err := Parse([]byte(triangle), wind)
	if err != nil {
		t.Fatalf("Parse error %v", err)
	}

	legs := c.Legs()
	if len(legs) != 3 {
		t.Fatalf("len(Legs()) = %d; want 3", len(legs))
	}
	if legs[0] != c.FirstLeg() {
		t.Errorf("Legs()[0] is not FirstLeg()")
	}

	first := legs[0]
	if first.StartLocation() != (location.Location{X: 50, Y: 0}) || first.EndLocation() != (location.Location{X: 50, Y: 200}) {
		t.Errorf("first leg = %v -> %v; want {50 0} -> {50 200}", first.StartLocation(), first.EndLocation())
	}
	if first.Bearing().Degrees() != 0 || first.Length() != 200 {
		t.Errorf("first leg bearing/length = %v/%v; want 0/200", first.Bearing(), first.Length())
	}
	if !first.IsPortRounding() || first.MarkMeanWind().Degrees() != 10 {
		t.Errorf("first leg rounding/mark wind = %v/%v; want port/10", first.IsPortRounding(), first.MarkMeanWind())
	}

	if legs[1].StartLocation() != first.EndLocation() {
		t.Errorf("second leg must start at the windward mark")
	}
	if legs[1].Bearing().Degrees() != 135 {
		t.Errorf("second leg bearing = %v; want 135", legs[1].Bearing())
	}
	if legs[2].IsPortRounding() || legs[2].Following() != nil {
		t.Errorf("last leg must be a starboard rounding with no following leg")
	}
	if legs[2].Name() != "leeward" {
		t.Errorf("last leg name = %q; want leeward", legs[2].Name())
	}

	if m, found := c.Mark("wing"); !found || m.Location != (location.Location{X: 150, Y: 100}) {
		t.Errorf("Mark(wing) = %v, %v", m, found)
	}
}

func TestParseErrors(t *testing.T) {
	wind := flow.Constant{}

	_, err := Parse([]byte(`{"marks": [{"name": "a"}], "legs": [{"mark": "b", "rounding": "port"}]}`), wind)
	if !errors.Is(err, ErrUnknownMark) {
		t.Errorf("Parse(unknown mark) error = %v; want ErrUnknownMark", err)
	}

	_, err = Parse([]byte(`{"marks": [{"name": "a"}], "legs": [{"mark": "a", "rounding": "both"}]}`), wind)
	if !errors.Is(err, ErrInvalidRounding) {
		t.Errorf("Parse(bad rounding) error = %v; want ErrInvalidRounding", err)
	}

	_, err = Parse([]byte(`{"marks": [{"name": "a"}]}`), wind)
	if !errors.Is(err, ErrNoLegs) {
		t.Errorf("Parse(no legs) error = %v; want ErrNoLegs", err)
	}

	_, err = Parse([]byte(`{"marks": [{"name": "a"}, {"name": "a"}], "legs": [{"mark": "a"}]}`), wind)
	if err == nil {
		t.Errorf("Parse(duplicate marks) want error")
	}
}

func TestParseRounding(t *testing.T) {
	tests := []struct {
		in   string
		want Rounding
		ok   bool
	}{
		{"port", Port, true},
		{" STARBOARD ", Starboard, true},
		{"", Port, false},
		{"left", Port, false},
	}
	for _, tt := range tests {
		got, err := ParseRounding(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseRounding(%q) = %v, %v; want %v, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}
