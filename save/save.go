// Package save persists visitor progress across runs: the last section the
// camera settled on and which sections have been seen.
package save

import (
	"fmt"
	"slices"
	"sync"

	"github.com/milk9111/cyberfolio/transition"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	progressObject   = "progress"
	progressProperty = "visitor"
)

// Backend is the subset of *gdata.Manager the store needs.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

type Progress struct {
	LastSection transition.Section   `yaml:"last_section"`
	Visited     []transition.Section `yaml:"visited"`
}

// Store keeps Progress in memory and mirrors it to the backend. A nil backend
// runs in memory only.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	log      *zap.Logger
	progress Progress
}

// Open creates a gdata backed store for appName. When the platform data
// directory is unavailable the store degrades to memory only.
func Open(appName string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("save: gdata unavailable, progress will not persist", zap.Error(err))
		return New(nil, log)
	}
	return New(m, log)
}

func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{backend: backend, log: log}
	if err := s.Load(); err != nil {
		log.Warn("save: failed to load progress, starting fresh", zap.Error(err))
	}
	return s
}

// Persistent reports whether progress reaches disk.
func (s *Store) Persistent() bool {
	return s.backend != nil
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = Progress{}
	if s.backend == nil || !s.backend.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := s.backend.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("save: load progress: %w", err)
	}
	var p Progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("save: unmarshal progress: %w", err)
	}
	s.progress = p
	return nil
}

func (s *Store) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.progress
	p.Visited = slices.Clone(p.Visited)
	return p
}

// LastSection returns the section to restore, if any was recorded.
func (s *Store) LastSection() (transition.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.LastSection, s.progress.LastSection != ""
}

// Record notes that the camera settled on section and saves.
func (s *Store) Record(section transition.Section) error {
	if section == "" {
		return nil
	}

	s.mu.Lock()
	s.progress.LastSection = section
	if !slices.Contains(s.progress.Visited, section) {
		s.progress.Visited = append(s.progress.Visited, section)
	}
	p := s.progress
	s.mu.Unlock()

	return s.write(p)
}

func (s *Store) write(p Progress) error {
	if s.backend == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("save: marshal progress: %w", err)
	}
	if err := s.backend.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("save: write progress: %w", err)
	}
	s.log.Debug("save: progress written",
		zap.String("last_section", p.LastSection.String()),
		zap.Int("visited", len(p.Visited)))
	return nil
}
