// Package timerlog records, tick by tick, what every boat did and why.
package timerlog

import (
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/boat"
	"github.com/a-bouts/race-sketch/decision"
)

type Kind int

const (
	BoatEntry Kind = iota
	DecisionEntry
	ReasonEntry
	WindSwingEntry
)

func (k Kind) String() string {
	switch k {
	case BoatEntry:
		return "BOAT"
	case DecisionEntry:
		return "DECISION"
	case ReasonEntry:
		return "REASON"
	case WindSwingEntry:
		return "WINDSWING"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one line of the log. Boat is empty for wind swings.
type Entry struct {
	Time int    `json:"time"`
	Kind Kind   `json:"kind"`
	Boat string `json:"boat,omitempty"`
	Text string `json:"text"`
}

func (e Entry) String() string {
	if e.Boat == "" {
		return fmt.Sprintf("%5d  %s: %s", e.Time, e.Kind, e.Text)
	}
	return fmt.Sprintf("%5d  %s (%s): %s", e.Time, e.Kind, e.Boat, e.Text)
}

// TimerLog is safe for concurrent use.
type TimerLog struct {
	lock    sync.RWMutex
	time    int
	entries []Entry
}

func New() *TimerLog {
	return &TimerLog{}
}

// SetTime sets the simulation time, in seconds, of the entries that follow.
func (t *TimerLog) SetTime(seconds int) {
	t.lock.Lock()
	t.time = seconds
	t.lock.Unlock()
}

func (t *TimerLog) add(kind Kind, name string, text string) {
	t.lock.Lock()
	e := Entry{Time: t.time, Kind: kind, Boat: name, Text: text}
	t.entries = append(t.entries, e)
	t.lock.Unlock()

	log.WithFields(log.Fields{
		"time": e.Time,
		"kind": e.Kind,
		"boat": e.Boat,
	}).Debug(e.Text)
}

func (t *TimerLog) Boat(b boat.Boat) {
	t.add(BoatEntry, b.Name, fmt.Sprintf("[%.2f,%.2f] %.1f° %.2f m/s", b.Location.X, b.Location.Y, b.Heading.Degrees(), b.Speed))
}

func (t *TimerLog) Decision(name string, d decision.Decision) {
	t.add(DecisionEntry, name, d.String())
}

func (t *TimerLog) Reason(name string, reason string) {
	t.add(ReasonEntry, name, reason)
}

func (t *TimerLog) WindSwing(swing angle.Angle) {
	t.add(WindSwingEntry, "", fmt.Sprintf("%.1f°", swing.Degrees()))
}

// Entries returns the entries in order. With a boat name, only that boat's
// entries and the wind swings are kept.
func (t *TimerLog) Entries(name string) []Entry {
	t.lock.RLock()
	defer t.lock.RUnlock()

	entries := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if name == "" || e.Boat == "" || e.Boat == name {
			entries = append(entries, e)
		}
	}
	return entries
}

func (t *TimerLog) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.entries)
}

// Write writes the entries as text lines.
func (t *TimerLog) Write(w io.Writer, name string) error {
	for _, e := range t.Entries(name) {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}
