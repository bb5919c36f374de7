package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/jasonlvhit/gocron"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/race-sketch/angle"
	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/race"
	"github.com/a-bouts/race-sketch/results"
)

type server struct {
	cpuprofile bool
	interval   uint64
	r          *race.Race
	winds      *flow.Winds
	store      *results.Store

	lock      sync.Mutex
	scheduler *gocron.Scheduler
	stop      chan bool
	recorded  bool
}

// InitServer routes the race API. winds and store may be nil. interval is
// the real-time tick period in seconds; realtime starts the clock at once.
func InitServer(cpuprofile, realtime bool, interval uint64, r *race.Race, winds *flow.Winds, store *results.Store) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	if interval == 0 {
		interval = 1
	}
	s := &server{
		cpuprofile: cpuprofile,
		interval:   interval,
		r:          r,
		winds:      winds,
		store:      store,
	}

	router.HandleFunc("/race/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/race/api/v1").Subrouter()
	apiV1.HandleFunc("/state", s.state).Methods(http.MethodGet)
	apiV1.HandleFunc("/log", s.log).Methods(http.MethodGet)
	apiV1.HandleFunc("/tick", s.tick).Methods(http.MethodPost)
	apiV1.HandleFunc("/start", s.start).Methods(http.MethodPost)
	apiV1.HandleFunc("/stop", s.stopClock).Methods(http.MethodPost)
	apiV1.HandleFunc("/run", s.run).Methods(http.MethodPost)
	apiV1.HandleFunc("/wind", s.wind).Methods(http.MethodPost)
	apiV1.HandleFunc("/winds", s.windNames).Methods(http.MethodGet)
	apiV1.HandleFunc("/boats/{name}/retire", s.retire).Methods(http.MethodPost)
	apiV1.HandleFunc("/results", s.results).Methods(http.MethodGet)
	apiV1.HandleFunc("/results/{id}", s.result).Methods(http.MethodGet)

	if realtime {
		s.lock.Lock()
		if err := s.startClock(); err != nil {
			log.WithError(err).Warn("Race clock not started")
		}
		s.lock.Unlock()
	}

	return router
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	type apiError struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	writeJSON(w, http.StatusOK, health{Status: "Ok"})
}

func (s *server) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.r.State())
}

func (s *server) log(w http.ResponseWriter, r *http.Request) {
	boat := r.URL.Query().Get("boat")

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := s.r.Log().Write(w, boat); err != nil {
			log.WithError(err).Error("Error writing timer log")
		}
		return
	}
	writeJSON(w, http.StatusOK, s.r.Log().Entries(boat))
}

// advance runs one tick and records the results once the race is over.
func (s *server) advance() error {
	err := s.r.Tick()
	if err != nil {
		log.WithError(err).Warn("Tick failed for some boats")
	}
	if s.r.Finished() {
		s.record()
	}
	return err
}

func (s *server) record() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.recorded {
		return
	}
	s.recorded = true
	s.stopScheduler()

	if s.store == nil {
		return
	}
	run := &results.Run{Race: s.r.Name(), Duration: s.r.Time()}
	for _, f := range s.r.Finishes() {
		run.Finishes = append(run.Finishes, results.Finish{Boat: f.Boat, Position: f.Position, Time: f.Time})
	}
	if err := s.store.Save(run); err != nil {
		log.WithError(err).Error("Error saving results")
		return
	}
	log.WithFields(log.Fields{"race": run.Race, "run": run.ID}).Info("Results saved")
}

func (s *server) tick(w http.ResponseWriter, r *http.Request) {
	if err := s.advance(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.r.State())
}

var (
	errClockRunning = errors.New("race clock already running")
	errRaceOver     = errors.New("race is over")
)

// startClock is called with the lock held.
func (s *server) startClock() error {
	if s.scheduler != nil {
		return errClockRunning
	}
	if s.recorded {
		return errRaceOver
	}

	s.scheduler = gocron.NewScheduler()
	s.scheduler.Every(s.interval).Seconds().Do(s.advance)
	s.stop = s.scheduler.Start()

	log.WithField("interval", s.interval).Info("Race clock started")
	return nil
}

func (s *server) start(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.startClock(); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, s.r.State())
}

// stopScheduler is called with the lock held.
func (s *server) stopScheduler() {
	if s.scheduler == nil {
		return
	}
	s.scheduler.Clear()
	close(s.stop)
	s.scheduler = nil
	log.Info("Race clock stopped")
}

func (s *server) stopClock(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.scheduler == nil {
		writeError(w, http.StatusConflict, errors.New("race clock not running"))
		return
	}
	s.stopScheduler()
	writeJSON(w, http.StatusOK, s.r.State())
}

func (s *server) run(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	fields := log.Fields{
		"action": "run",
		"race":   s.r.Name(),
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	start := time.Now()
	err := s.r.Run(req.Context())
	requestLogger.Infof("Run took %s (%.0fs simulated)", time.Since(start).String(), s.r.Time())
	if err != nil {
		requestLogger.WithError(err).Warn("Run ended with errors")
	}
	if s.r.Finished() {
		s.record()
	}

	writeJSON(w, http.StatusOK, s.r.State())
}

type windRequest struct {
	From  angle.Angle `json:"from"`
	Speed float64     `json:"speed"`
	Grib  string      `json:"grib"`
}

func (s *server) wind(w http.ResponseWriter, r *http.Request) {
	var wr windRequest
	if err := json.NewDecoder(r.Body).Decode(&wr); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var f flow.Flow = flow.Constant{From: wr.From, Speed: wr.Speed}
	if wr.Grib != "" {
		var g *flow.Grid
		found := false
		if s.winds != nil {
			g, found = s.winds.Get(wr.Grib)
		}
		if !found {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown wind %q", wr.Grib))
			return
		}
		f = g
	}

	s.r.SetWind(f)
	log.WithFields(log.Fields{"from": wr.From, "speed": wr.Speed, "grib": wr.Grib}).Info("Wind changed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) windNames(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if s.winds != nil {
		names = s.winds.Names()
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *server) retire(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.r.Retire(name); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) results(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []results.Run{})
		return
	}
	runs, err := s.store.Runs(r.URL.Query().Get("race"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) result(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, results.ErrNotFound)
		return
	}
	run, err := s.store.Run(mux.Vars(r)["id"])
	if errors.Is(err, results.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	for _, ip := range strings.Split(ips, ",") {
		ip = strings.TrimSpace(ip)
		if netIP := net.ParseIP(ip); netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if netIP := net.ParseIP(ip); netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
