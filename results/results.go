// Package results keeps the finishes of completed runs in a SQLite database.
package results

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("run not found")

type Run struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Race      string    `gorm:"index" json:"race"`
	CreatedAt time.Time `json:"createdAt"`
	// Duration is the simulated time in seconds.
	Duration float64  `json:"duration"`
	Finishes []Finish `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"finishes"`
}

type Finish struct {
	ID       uint    `gorm:"primaryKey" json:"-"`
	RunID    string  `gorm:"index" json:"-"`
	Boat     string  `json:"boat"`
	Position int     `json:"position"`
	Time     float64 `json:"time"`
}

type Store struct {
	db *gorm.DB
}

// Open opens the database at path, or a private in-memory one when path is
// empty.
func Open(path string) (*Store, error) {
	if path == "" {
		path = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Run{}, &Finish{}); err != nil {
		return nil, fmt.Errorf("migrate results: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save stores a run with its finishes, giving it an id if it has none.
func (s *Store) Save(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	return s.db.Create(run).Error
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// Runs returns the runs of a race, or of every race when race is empty,
// newest first.
func (s *Store) Runs(race string) ([]Run, error) {
	q := s.db.Preload("Finishes", byPosition).Order("created_at desc")
	if race != "" {
		q = q.Where("race = ?", race)
	}

	var runs []Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (s *Store) Run(id string) (Run, error) {
	var run Run
	err := s.db.Preload("Finishes", byPosition).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return run, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}
