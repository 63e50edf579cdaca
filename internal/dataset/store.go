package dataset

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/quake-predictor/internal/models"
)

var (
	// ErrNoData means nothing has been loaded yet.
	ErrNoData = errors.New("no data available")
	// ErrEmptyDataset rejects a load with zero records; the current snapshot is kept.
	ErrEmptyDataset = errors.New("dataset has no records")
)

type Origin string

const (
	OriginSample Origin = "sample"
	OriginUpload Origin = "upload"
	OriginUSGS   Origin = "usgs"
	OriginGDACS  Origin = "gdacs"
)

// Snapshot is an immutable, versioned view of one loaded dataset.
type Snapshot struct {
	id       uuid.UUID
	version  int64
	origin   Origin
	loadedAt time.Time
	records  []models.Record
}

// Info is the JSON-friendly description of a snapshot.
type Info struct {
	ID       string    `json:"id"`
	Version  int64     `json:"version"`
	Label    string    `json:"label"`
	Origin   Origin    `json:"origin"`
	LoadedAt time.Time `json:"loaded_at"`
	Count    int       `json:"count"`
}

func (s *Snapshot) Version() int64 {
	return s.version
}

func (s *Snapshot) Origin() Origin {
	return s.origin
}

func (s *Snapshot) Len() int {
	return len(s.records)
}

// Records returns a copy, so callers cannot mutate the snapshot.
func (s *Snapshot) Records() []models.Record {
	return slices.Clone(s.records)
}

// Label identifies a snapshot as "<id>:<version>".
func (s *Snapshot) Label() string {
	return fmt.Sprintf("%s:%d", s.id, s.version)
}

func (s *Snapshot) Info() Info {
	return Info{
		ID:       s.id.String(),
		Version:  s.version,
		Label:    s.Label(),
		Origin:   s.origin,
		LoadedAt: s.loadedAt,
		Count:    len(s.records),
	}
}

// Store owns the current dataset. Loads replace it wholesale; readers hold on
// to whatever snapshot they fetched.
type Store struct {
	mu          sync.RWMutex
	current     *Snapshot
	version     int64
	clock       clockwork.Clock
	broadcaster *Broadcaster
}

// NewStore creates an empty store. broadcaster may be nil.
func NewStore(clock clockwork.Clock, broadcaster *Broadcaster) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:       clock,
		broadcaster: broadcaster,
	}
}

func (s *Store) Replace(origin Origin, records []models.Record) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	s.mu.Lock()
	s.version++
	snap := &Snapshot{
		id:       uuid.New(),
		version:  s.version,
		origin:   origin,
		loadedAt: s.clock.Now().UTC(),
		records:  slices.Clone(records),
	}
	s.current = snap
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(snap.Info())
	}
	return snap, nil
}

func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoData
	}
	return s.current, nil
}
