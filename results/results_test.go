package results

import (
	"errors"
	"testing"
	"time"
)

func TestSaveAndRuns(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open error %v", err)
	}
	defer s.Close()

	first := &Run{
		Race:      "sprint",
		CreatedAt: time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC),
		Duration:  23,
		Finishes: []Finish{
			{Boat: "Blue", Position: 2, Time: 25},
			{Boat: "Red", Position: 1, Time: 23},
		},
	}
	second := &Run{Race: "sprint", CreatedAt: time.Date(2020, 5, 1, 11, 0, 0, 0, time.UTC), Duration: 40}
	other := &Run{Race: "triangle", CreatedAt: time.Date(2020, 5, 2, 11, 0, 0, 0, time.UTC)}

	for _, r := range []*Run{first, second, other} {
		if err := s.Save(r); err != nil {
			t.Fatalf("Save error %v", err)
		}
		if r.ID == "" {
			t.Fatalf("Save did not set an id")
		}
	}

	runs, err := s.Runs("sprint")
	if err != nil {
		t.Fatalf("Runs error %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("Runs(sprint) = %v; want the second run then the first", runs)
	}
	if f := runs[1].Finishes; len(f) != 2 || f[0].Boat != "Red" || f[1].Boat != "Blue" {
		t.Errorf("Runs(sprint)[1].Finishes = %v; want Red then Blue", f)
	}

	all, err := s.Runs("")
	if err != nil || len(all) != 3 || all[0].Race != "triangle" {
		t.Errorf("Runs() = %v, %v", all, err)
	}

	got, err := s.Run(first.ID)
	if err != nil || got.Duration != 23 || len(got.Finishes) != 2 {
		t.Errorf("Run(%s) = %v, %v", first.ID, got, err)
	}
	if _, err := s.Run("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run(missing) error = %v; want ErrNotFound", err)
	}
}

func TestOpenIsPrivate(t *testing.T) {
	a, err := Open("")
	if err != nil {
		t.Fatalf("Open error %v", err)
	}
	defer a.Close()
	b, err := Open("")
	if err != nil {
		t.Fatalf("Open error %v", err)
	}
	defer b.Close()

	if err := a.Save(&Run{Race: "sprint"}); err != nil {
		t.Fatalf("Save error %v", err)
	}
	if runs, _ := b.Runs(""); len(runs) != 0 {
		t.Errorf("a second in-memory store sees %d runs", len(runs))
	}
}
