package race

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/boat"
	"github.com/a-bouts/race-sketch/course"
	"github.com/a-bouts/race-sketch/decision"
	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/location"
	"github.com/a-bouts/race-sketch/polar"
	"github.com/a-bouts/race-sketch/strategy"
	"github.com/a-bouts/race-sketch/timerlog"
)

const defaultMaxTicks = 10000

var (
	ErrUnknownBoat  = errors.New("unknown boat")
	ErrUnknownClass = errors.New("unknown boat class")
	ErrNoBoats      = errors.New("race has no boats")
	ErrUnfinished   = errors.New("race did not finish")
)

type SwingDefinition struct {
	Amplitude float64 `json:"amplitude"`
	Period    float64 `json:"period"`
}

// FlowDefinition is a constant flow, or a GRIB field when Grib is set.
type FlowDefinition struct {
	From    angle.Angle       `json:"from"`
	Speed   float64           `json:"speed"`
	Swing   *SwingDefinition  `json:"swing,omitempty"`
	Grib    string            `json:"grib,omitempty"`
	Origin  location.Location `json:"origin"`
	Spacing float64           `json:"spacing"`
}

// PolarDefinition is an inline table or a polar file.
type PolarDefinition struct {
	File  string      `json:"file,omitempty"`
	Tws   []float64   `json:"tws,omitempty"`
	Twa   []float64   `json:"twa,omitempty"`
	Speed [][]float64 `json:"speed,omitempty"`
}

type BoatDefinition struct {
	Name     string            `json:"name"`
	Class    string            `json:"class"`
	Location location.Location `json:"location"`
	Heading  angle.Angle       `json:"heading"`
	Metrics  boat.Metrics      `json:"metrics"`
	Tactics  boat.Tactics      `json:"tactics"`
}

type Definition struct {
	Name     string                     `json:"name"`
	Interval float64                    `json:"interval"`
	MaxTicks int                        `json:"maxTicks"`
	Wind     FlowDefinition             `json:"wind"`
	Water    *FlowDefinition            `json:"water,omitempty"`
	Course   course.Definition          `json:"course"`
	Polars   map[string]PolarDefinition `json:"polars"`
	Boats    []BoatDefinition           `json:"boats"`
}

func Load(file string) (Definition, error) {
	var def Definition

	content, err := ioutil.ReadFile(file)
	if err != nil {
		return def, err
	}
	if err := json.Unmarshal(content, &def); err != nil {
		return def, fmt.Errorf("race %s: %w", file, err)
	}
	return def, nil
}

// Notifier is told when a boat finishes.
type Notifier interface {
	Send(message string) error
}

type Finish struct {
	Boat     string  `json:"boat"`
	Position int     `json:"position"`
	Time     float64 `json:"time"`
}

type entry struct {
	boat     *boat.Boat
	strategy *strategy.Strategy
	retired  bool
	err      error
}

func (e *entry) done() bool {
	return e.retired || e.err != nil || e.strategy.Finished()
}

type Race struct {
	lock sync.RWMutex

	def      Definition
	interval float64
	maxTicks int
	ticks    int

	wind   flow.Flow
	swing  *flow.Swinging
	water  flow.Flow
	course *course.Course

	entries  []*entry
	finishes []Finish
	timerLog *timerlog.TimerLog
	notifier Notifier
}

func buildFlow(def FlowDefinition) (flow.Flow, *flow.Swinging, error) {
	var base flow.Flow = flow.Constant{From: def.From, Speed: def.Speed}
	if def.Grib != "" {
		g, err := flow.LoadGrib(def.Grib, def.Origin, def.Spacing)
		if err != nil {
			return nil, nil, err
		}
		base = g
	}
	if def.Swing == nil {
		return base, nil, nil
	}
	s := flow.NewSwinging(base, def.Swing.Amplitude, def.Swing.Period)
	return s, s, nil
}

func buildPolar(class string, def PolarDefinition) (*polar.PerformanceVectors, error) {
	if def.File != "" {
		return polar.Load(def.File)
	}
	return polar.New(class, def.Tws, def.Twa, def.Speed)
}

// New sets the boats on the first leg of the course.
func New(def Definition) (*Race, error) {
	if len(def.Boats) == 0 {
		return nil, ErrNoBoats
	}

	r := &Race{
		def:      def,
		interval: def.Interval,
		maxTicks: def.MaxTicks,
		timerLog: timerlog.New(),
	}
	if r.interval <= 0 {
		r.interval = 1
	}
	if r.maxTicks <= 0 {
		r.maxTicks = defaultMaxTicks
	}

	var err error
	if r.wind, r.swing, err = buildFlow(def.Wind); err != nil {
		return nil, fmt.Errorf("wind: %w", err)
	}
	if def.Water != nil {
		if r.water, _, err = buildFlow(*def.Water); err != nil {
			return nil, fmt.Errorf("water: %w", err)
		}
	}
	if r.course, err = course.New(def.Course, r.wind); err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}

	polars := make(map[string]*polar.PerformanceVectors, len(def.Polars))
	for class, p := range def.Polars {
		if polars[class], err = buildPolar(class, p); err != nil {
			return nil, fmt.Errorf("polar %s: %w", class, err)
		}
	}

	for _, bd := range def.Boats {
		b := &boat.Boat{
			Name:     bd.Name,
			Location: bd.Location,
			Heading:  bd.Heading,
			Metrics:  bd.Metrics,
			Tactics:  bd.Tactics,
		}
		if bd.Class != "" {
			p, found := polars[bd.Class]
			if !found {
				return nil, fmt.Errorf("boat %s: %w %q", bd.Name, ErrUnknownClass, bd.Class)
			}
			b.Metrics.Performance = p
		}

		s, err := strategy.New(*b, r.course.FirstLeg(), r.wind)
		if err != nil {
			return nil, fmt.Errorf("boat %s: %w", bd.Name, err)
		}
		r.entries = append(r.entries, &entry{boat: b, strategy: s})
	}

	log.WithFields(log.Fields{
		"race":  def.Name,
		"boats": len(r.entries),
		"legs":  len(r.course.Legs()),
	}).Info("Race ready")

	return r, nil
}

func (r *Race) SetNotifier(n Notifier) {
	r.lock.Lock()
	r.notifier = n
	r.lock.Unlock()
}

func (r *Race) Name() string {
	return r.def.Name
}

func (r *Race) Course() *course.Course {
	return r.course
}

func (r *Race) Log() *timerlog.TimerLog {
	return r.timerLog
}

// Time is the simulated time in seconds.
func (r *Race) Time() float64 {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return float64(r.ticks) * r.interval
}

// SetWind replaces the wind between two ticks. A swinging wind keeps
// swinging around the new one.
func (r *Race) SetWind(f flow.Flow) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.swing != nil {
		r.swing.Base = f
		return
	}
	r.wind = f
}

// Retire stops a boat where it is.
func (r *Race) Retire(name string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, e := range r.entries {
		if e.boat.Name == name {
			e.strategy.Stop()
			e.retired = true
			log.WithField("boat", name).Info("Boat retired")
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownBoat, name)
}

// Tick runs one time interval for every boat in definition order. A boat
// whose strategy fails is left where it is; its error is returned along
// with those of the other failed boats.
func (r *Race) Tick() error {
	messages, err := r.tick()

	r.lock.RLock()
	n := r.notifier
	r.lock.RUnlock()
	if n != nil {
		for _, m := range messages {
			if err := n.Send(m); err != nil {
				log.WithError(err).Warn("Error sending finish notification")
			}
		}
	}
	return err
}

func (r *Race) tick() ([]string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.timerLog.SetTime(int(float64(r.ticks) * r.interval))
	if r.swing != nil {
		r.timerLog.WindSwing(r.swing.Advance(r.interval))
	}

	k := boat.Kinematics{Wind: r.wind, Water: r.water, Interval: r.interval}

	var errs []error
	var messages []string
	for _, e := range r.entries {
		if e.err != nil {
			continue
		}
		next, err := e.strategy.Tick(e.boat, r.wind, k, r.timerLog)
		if err != nil {
			e.err = err
			log.WithError(err).WithField("boat", e.boat.Name).Error("Boat strategy failed")
			errs = append(errs, fmt.Errorf("boat %s: %w", e.boat.Name, err))
			continue
		}
		if next.Finished() && !e.strategy.Finished() {
			f := Finish{Boat: e.boat.Name, Position: len(r.finishes) + 1, Time: float64(r.ticks+1) * r.interval}
			r.finishes = append(r.finishes, f)
			log.WithFields(log.Fields{"boat": f.Boat, "position": f.Position, "time": f.Time}).Info("Boat finished")
			messages = append(messages, fmt.Sprintf("%s: %s finished %d in %.0fs", r.def.Name, f.Boat, f.Position, f.Time))
		}
		e.strategy = next
	}
	r.ticks++

	return messages, errors.Join(errs...)
}

// Finished reports whether every boat has finished, retired or failed.
func (r *Race) Finished() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, e := range r.entries {
		if !e.done() {
			return false
		}
	}
	return true
}

// Run ticks until every boat is done, the tick limit is reached or the
// context is cancelled.
func (r *Race) Run(ctx context.Context) error {
	var errs []error
	for !r.Finished() {
		select {
		case <-ctx.Done():
			return errors.Join(append(errs, ctx.Err())...)
		default:
		}

		r.lock.RLock()
		ticks := r.ticks
		r.lock.RUnlock()
		if ticks >= r.maxTicks {
			return errors.Join(append(errs, fmt.Errorf("%w after %d ticks", ErrUnfinished, ticks))...)
		}

		if err := r.Tick(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Race) Finishes() []Finish {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]Finish(nil), r.finishes...)
}

type BoatState struct {
	Boat     boat.Boat         `json:"boat"`
	Leg      string            `json:"leg"`
	Regime   string            `json:"regime"`
	Rounding bool              `json:"rounding"`
	Decision decision.Decision `json:"decision"`
	Finished bool              `json:"finished"`
	Retired  bool              `json:"retired"`
	Error    string            `json:"error,omitempty"`
}

type State struct {
	Name     string      `json:"name"`
	Time     float64     `json:"time"`
	Finished bool        `json:"finished"`
	Boats    []BoatState `json:"boats"`
	Finishes []Finish    `json:"finishes"`
}

func (r *Race) State() State {
	r.lock.RLock()
	defer r.lock.RUnlock()

	st := State{
		Name:     r.def.Name,
		Time:     float64(r.ticks) * r.interval,
		Finished: true,
		Finishes: append([]Finish(nil), r.finishes...),
	}
	for _, e := range r.entries {
		bs := BoatState{
			Boat:     *e.boat,
			Leg:      e.strategy.Leg().Name(),
			Regime:   e.strategy.Regime().String(),
			Rounding: e.strategy.Rounding(),
			Decision: e.strategy.Decision(),
			Finished: e.strategy.Finished(),
			Retired:  e.retired,
		}
		if e.err != nil {
			bs.Error = e.err.Error()
		}
		if !e.done() {
			st.Finished = false
		}
		st.Boats = append(st.Boats, bs)
	}
	return st
}
