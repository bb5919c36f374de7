package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/peterbourgon/ff"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/race-sketch/api"
	"github.com/a-bouts/race-sketch/flow"
	"github.com/a-bouts/race-sketch/location"
	"github.com/a-bouts/race-sketch/race"
	"github.com/a-bouts/race-sketch/results"
	"github.com/a-bouts/race-sketch/xmpp"
)

func main() {

	fs := flag.NewFlagSet("race-sketch", flag.ExitOnError)
	var (
		raceFile     = fs.String("race", "race.json", "race definition")
		port         = fs.Int("port", 8888, "http port")
		interval     = fs.Uint64("interval", 1, "seconds between real time ticks")
		realtime     = fs.Bool("realtime", false, "start the race clock at startup")
		resultsPath  = fs.String("results", "", "results database, in memory when empty")
		windsDir     = fs.String("winds", "", "directory of GRIB wind files")
		windsRefresh = fs.Uint64("winds-refresh", 60, "seconds between wind directory scans")
		windsOriginX = fs.Float64("winds-origin-x", 0, "course x of the first GRIB grid point")
		windsOriginY = fs.Float64("winds-origin-y", 0, "course y of the first GRIB grid point")
		windsSpacing = fs.Float64("winds-spacing", 100, "metres between GRIB grid points")
		debug        = fs.Bool("debug", false, "debug logs")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile runs")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
		_            = fs.String("config", "", "config file")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarNoPrefix(),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	initLogger(*debug)

	def, err := race.Load(*raceFile)
	if err != nil {
		log.WithError(err).Fatal("Error loading race")
	}
	r, err := race.New(def)
	if err != nil {
		log.WithError(err).Fatal("Error creating race")
	}

	x := xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}
	if x.Config.Configured() {
		r.SetNotifier(x)
	}

	store, err := results.Open(*resultsPath)
	if err != nil {
		log.WithError(err).Fatal("Error opening results")
	}
	defer store.Close()

	switch cmd := fs.Arg(0); cmd {
	case "run":
		code := run(r, store, *cpuprofile)
		store.Close()
		os.Exit(code)
	case "", "serve":
	default:
		log.Fatalf("Unknown command %q, want serve or run", cmd)
	}

	var winds *flow.Winds
	if *windsDir != "" {
		winds = flow.NewWinds(*windsDir, location.Location{X: *windsOriginX, Y: *windsOriginY}, *windsSpacing)
		stop := winds.Watch(*windsRefresh)
		defer close(stop)
	}

	router := api.InitServer(*cpuprofile, *realtime, *interval, r, winds, store)

	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(*debug))(
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		)(router))
	if *debug {
		handler = handlers.LoggingHandler(log.StandardLogger().Writer(), handler)
	}

	log.WithFields(log.Fields{"race": r.Name(), "port": *port}).Info("Start server")
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port), handler))
}

// run sails the whole race without the http server and prints the finishes.
func run(r *race.Race, store *results.Store, cpuprofile bool) int {
	if cpuprofile {
		defer profile.Start().Stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := r.Run(ctx)
	if err != nil {
		log.WithError(err).Warn("Race ended with errors")
	}

	if err := r.Log().Write(os.Stdout, ""); err != nil {
		log.WithError(err).Error("Error writing timer log")
	}
	for _, f := range r.Finishes() {
		fmt.Printf("%d. %s %.0fs\n", f.Position, f.Boat, f.Time)
	}

	if r.Finished() {
		rr := &results.Run{Race: r.Name(), Duration: r.Time()}
		for _, f := range r.Finishes() {
			rr.Finishes = append(rr.Finishes, results.Finish{Boat: f.Boat, Position: f.Position, Time: f.Time})
		}
		if err := store.Save(rr); err != nil {
			log.WithError(err).Error("Error saving results")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return 1
	}
	return 0
}
