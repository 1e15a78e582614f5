package transition

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// State is a read-only snapshot of the transition state.
type State struct {
	ID              string  `json:"id,omitempty"`
	IsTransitioning bool    `json:"is_transitioning"`
	CurrentSection  Section `json:"current_section,omitempty"`
	TargetSection   Section `json:"target_section,omitempty"`
	Progress        float64 `json:"progress"`
	FadeOpacity     float64 `json:"fade_opacity"`
	LoadingProgress float64 `json:"loading_progress"`
}

// Store holds the canonical transition state and the section anchor registry.
// It owns no timing logic beyond the decorative loading simulation, which runs
// on the Scheduler and therefore mutates state off the render goroutine.
type Store struct {
	mu sync.RWMutex

	state   State
	config  Config
	anchors map[Section]Anchor
	order   []Section

	scheduler    Scheduler
	stopLoading  func()
	loadingGen   uint64
	loadingSteps int

	newID func() string
}

// NewStore creates an idle store. A nil scheduler selects TickerScheduler.
func NewStore(scheduler Scheduler) *Store {
	if scheduler == nil {
		scheduler = TickerScheduler{}
	}
	return &Store{
		config:    DefaultConfig(),
		anchors:   map[Section]Anchor{},
		scheduler: scheduler,
		newID:     uuid.NewString,
	}
}

// StartTransition begins a transition to `to`. A repeated request for the
// target already in flight is ignored so rapid clicks cannot restart it.
func (s *Store) StartTransition(to Section, opts ...Option) {
	cfg := buildConfig(DefaultConfig(), opts)

	s.mu.Lock()
	if s.state.IsTransitioning && s.state.TargetSection == to {
		s.mu.Unlock()
		return
	}

	s.config = cfg
	s.state.ID = s.newID()
	s.state.IsTransitioning = true
	s.state.TargetSection = to
	s.state.Progress = 0
	s.state.FadeOpacity = 0
	s.state.LoadingProgress = 0

	prevStop := s.stopLoading
	s.loadingGen++
	s.loadingSteps = 0
	gen := s.loadingGen
	s.stopLoading = nil
	s.mu.Unlock()

	if prevStop != nil {
		prevStop()
	}

	stop := s.scheduler.Every(loadingInterval(cfg.Duration), func() bool {
		return s.loadingTick(gen)
	})

	s.mu.Lock()
	if s.loadingGen == gen {
		s.stopLoading = stop
		stop = nil
	}
	s.mu.Unlock()
	if stop != nil {
		// superseded before it was recorded
		stop()
	}
}

func (s *Store) loadingTick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadingGen {
		return false
	}
	s.loadingSteps++
	s.state.LoadingProgress = math.Min(1, float64(s.loadingSteps)*loadingStep)
	return s.state.LoadingProgress < 1
}

// UpdateTransitionProgress stores p verbatim; the driver clamps.
func (s *Store) UpdateTransitionProgress(p float64) {
	s.mu.Lock()
	s.state.Progress = p
	s.mu.Unlock()
}

// CompleteTransition promotes the target to the current section and leaves
// the state at its terminal values.
func (s *Store) CompleteTransition() {
	s.mu.Lock()
	s.state.IsTransitioning = false
	s.state.CurrentSection = s.state.TargetSection
	s.state.TargetSection = ""
	s.state.Progress = 1
	s.state.FadeOpacity = 0
	s.state.LoadingProgress = 1

	stop := s.stopLoading
	s.stopLoading = nil
	s.loadingGen++
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (s *Store) SetFadeOpacity(opacity float64) {
	s.mu.Lock()
	s.state.FadeOpacity = opacity
	s.mu.Unlock()
}

// SetSectionCameraPosition registers or replaces the anchor for section.
func (s *Store) SetSectionCameraPosition(section Section, anchor Anchor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.anchors[section]; !ok {
		s.order = append(s.order, section)
	}
	s.anchors[section] = anchor
}

func (s *Store) SectionCameraPosition(section Section) (Anchor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.anchors[section]
	return a, ok
}

// Sections lists registered sections in registration order.
func (s *Store) Sections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Section(nil), s.order...)
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Config returns the config of the active, or most recent, transition.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Close stops the loading simulation.
func (s *Store) Close() {
	s.mu.Lock()
	stop := s.stopLoading
	s.stopLoading = nil
	s.loadingGen++
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}
