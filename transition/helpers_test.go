package transition

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeCamera struct {
	pos    mgl64.Vec3
	target mgl64.Vec3
	writes int
}

func (c *fakeCamera) Position() mgl64.Vec3 { return c.pos }
func (c *fakeCamera) Target() mgl64.Vec3   { return c.target }

func (c *fakeCamera) SetPosition(p mgl64.Vec3) {
	c.pos = p
	c.writes++
}

func (c *fakeCamera) LookAt(p mgl64.Vec3) {
	c.target = p
}

// manualScheduler records periodic callbacks and fires them on demand.
type manualScheduler struct {
	mu        sync.Mutex
	intervals []time.Duration
	fns       []func() bool
	stopped   []bool
}

func (m *manualScheduler) Every(interval time.Duration, fn func() bool) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := len(m.fns)
	m.intervals = append(m.intervals, interval)
	m.fns = append(m.fns, fn)
	m.stopped = append(m.stopped, false)
	return func() {
		m.mu.Lock()
		m.stopped[idx] = true
		m.mu.Unlock()
	}
}

func (m *manualScheduler) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

// fire runs the latest callback once; it reports whether the callback wants
// to keep running.
func (m *manualScheduler) fire() bool {
	m.mu.Lock()
	idx := len(m.fns) - 1
	if idx < 0 || m.stopped[idx] {
		m.mu.Unlock()
		return false
	}
	fn := m.fns[idx]
	m.mu.Unlock()
	keep := fn()
	if !keep {
		m.mu.Lock()
		m.stopped[idx] = true
		m.mu.Unlock()
	}
	return keep
}

func (m *manualScheduler) isStopped(idx int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped[idx]
}

var (
	aboutAnchor = Anchor{Position: mgl64.Vec3{0, 2, 8}, Target: mgl64.Vec3{0, 0, 0}}
	techAnchor  = Anchor{Position: mgl64.Vec3{10, 4, -6}, Target: mgl64.Vec3{10, 0, -10}}
	blogAnchor  = Anchor{Position: mgl64.Vec3{-12, 3, -4}, Target: mgl64.Vec3{-12, 1, -9}}
)

// newTestEngine builds an engine whose camera rests at the about anchor with
// about, tech and blog registered.
func newTestEngine() (*Engine, *fakeCamera, *manualScheduler) {
	cam := &fakeCamera{pos: aboutAnchor.Position, target: aboutAnchor.Target}
	sched := &manualScheduler{}
	e := NewEngine(cam, WithScheduler(sched))
	e.Store().SetSectionCameraPosition(SectionAbout, aboutAnchor)
	e.Store().SetSectionCameraPosition(SectionTech, techAnchor)
	e.Store().SetSectionCameraPosition(SectionBlog, blogAnchor)
	return e, cam, sched
}

func vecInDelta(a, b mgl64.Vec3, delta float64) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < -delta || d > delta {
			return false
		}
	}
	return true
}
