package flow

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/race-sketch/location"
)

// Winds keeps the GRIB wind fields found in a directory, keyed by file name.
type Winds struct {
	dir     string
	origin  location.Location
	spacing float64
	winds   map[string]*Grid
	lock    sync.RWMutex
}

func NewWinds(dir string, origin location.Location, spacing float64) *Winds {
	return &Winds{
		dir:     dir,
		origin:  origin,
		spacing: spacing,
		winds:   make(map[string]*Grid),
	}
}

// Watch refreshes the fields every interval seconds until the returned
// channel is closed.
func (w *Winds) Watch(interval uint64) chan bool {
	w.Refresh()

	s := gocron.NewScheduler()
	s.Every(interval).Seconds().Do(w.Refresh)

	return s.Start()
}

func (w *Winds) Get(name string) (*Grid, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	g, found := w.winds[name]
	return g, found
}

func (w *Winds) Names() []string {
	w.lock.RLock()
	defer w.lock.RUnlock()

	names := make([]string, 0, len(w.winds))
	for k := range w.winds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// files lists the grib files under the directory, relative to it.
func (w *Winds) files() []string {
	var files []string
	err := filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
			return nil
		}
		if !info.Mode().IsRegular() || strings.HasSuffix(info.Name(), ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(w.dir, path)
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Error walking grib files")
		return nil
	}
	sort.Strings(files)
	return files
}

// Refresh drops fields whose file disappeared and loads new files.
func (w *Winds) Refresh() error {
	files := w.files()

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	for k := range w.winds {
		if !present[k] {
			log.Debugf("Remove from winds %s", k)
			delete(w.winds, k)
		}
	}

	for _, f := range files {
		if _, found := w.winds[f]; found {
			continue
		}
		g, err := LoadGrib(filepath.Join(w.dir, f), w.origin, w.spacing)
		if err != nil {
			log.WithError(err).Errorf("Error loading grib file '%s'", f)
			continue
		}
		log.Debugf("Init %s", f)
		w.winds[f] = g
	}

	return nil
}
