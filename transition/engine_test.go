package transition

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/cyberfolio/common"
	"github.com/milk9111/cyberfolio/easing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioAboutToTech(t *testing.T) {
	e, cam, _ := newTestEngine()

	started := e.StartTransition(SectionTech,
		WithDuration(2*time.Second),
		WithEasing(easing.NameEaseInOut),
		WithFadeOverlay(true),
		WithFadeOverlayOpacity(0.4),
	)
	require.True(t, started)

	e.Tick(0)
	st := e.State()
	assert.InDelta(t, 0, st.Progress, 1e-9)
	assert.Equal(t, aboutAnchor.Position, cam.Position())
	assert.Equal(t, aboutAnchor.Target, cam.Target())
	assert.True(t, st.IsTransitioning)

	e.Tick(1)
	st = e.State()
	assert.InDelta(t, 0.5, st.Progress, 1e-9)
	midPos := aboutAnchor.Position.Add(techAnchor.Position).Mul(0.5)
	midTarget := aboutAnchor.Target.Add(techAnchor.Target).Mul(0.5)
	assert.True(t, vecInDelta(midPos, cam.Position(), 1e-9), "camera at %v, want %v", cam.Position(), midPos)
	assert.True(t, vecInDelta(midTarget, cam.Target(), 1e-9))
	assert.InDelta(t, 0.4, st.FadeOpacity, 1e-9)

	e.Tick(2)
	st = e.State()
	assert.Equal(t, 1.0, st.Progress)
	assert.False(t, st.IsTransitioning)
	assert.Equal(t, SectionTech, st.CurrentSection)
	assert.Equal(t, Section(""), st.TargetSection)
	assert.Equal(t, 0.0, st.FadeOpacity)
	assert.Equal(t, techAnchor.Position, cam.Position())
	assert.Equal(t, Idle, e.Driver().Phase())
}

func TestUnregisteredSectionIsNoop(t *testing.T) {
	e, cam, sched := newTestEngine()

	before := e.State()
	camBefore := cam.Position()

	started := e.StartTransition(Section("unknown-section"))
	assert.False(t, started)
	e.Tick(0.016)

	if diff := cmp.Diff(before, e.State()); diff != "" {
		t.Fatalf("state changed (-before +after):\n%s", diff)
	}
	assert.Equal(t, camBefore, cam.Position())
	assert.Equal(t, 0, cam.writes)
	assert.Equal(t, 0, sched.calls())
	assert.Equal(t, Idle, e.Driver().Phase())
}

func TestIdempotentSameTargetStart(t *testing.T) {
	e, _, sched := newTestEngine()

	require.True(t, e.StartTransition(SectionTech))
	e.Tick(0)
	e.Tick(0.5)
	sched.fire()
	after := e.State()

	assert.False(t, e.StartTransition(SectionTech))
	if diff := cmp.Diff(after, e.State()); diff != "" {
		t.Fatalf("duplicate start changed state (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, sched.calls(), "loading timer restarted")
}

func TestStoreIdempotentSameTarget(t *testing.T) {
	sched := &manualScheduler{}
	s := NewStore(sched)

	s.StartTransition(SectionTech)
	s.UpdateTransitionProgress(0.4)
	sched.fire()
	first := s.Snapshot()

	s.StartTransition(SectionTech)
	assert.Equal(t, first, s.Snapshot())
	assert.Equal(t, 1, sched.calls())
}

func TestDifferentTargetWhileRunningIsDropped(t *testing.T) {
	obs := &recordingObserver{}
	e, cam, _ := newTestEngine()
	e.observer = obs

	require.True(t, e.StartTransition(SectionTech))
	e.Tick(0)
	e.Tick(1)

	assert.False(t, e.StartTransition(SectionBlog))
	assert.Equal(t, SectionTech, e.State().TargetSection)

	e.Tick(2)
	assert.Equal(t, SectionTech, e.State().CurrentSection)
	assert.Equal(t, techAnchor.Position, cam.Position())
	assert.Equal(t, []DropReason{DropInFlight}, obs.dropped)
	assert.Equal(t, []Section{SectionTech}, obs.completed)
}

func TestCompletionConvergence(t *testing.T) {
	names := []string{easing.NameLinear, easing.NameEaseIn, easing.NameEaseOut, easing.NameEaseInOut, easing.NameBounce}
	durations := []time.Duration{0, 250 * time.Millisecond, 2 * time.Second, 3500 * time.Millisecond}

	for _, name := range names {
		for _, d := range durations {
			t.Run(name+"/"+d.String(), func(t *testing.T) {
				e, cam, _ := newTestEngine()
				require.True(t, e.StartTransition(SectionBlog, WithEasing(name), WithDuration(d)))

				now := 10.0
				end := now + d.Seconds() + 0.1
				for ; now <= end; now += 1.0 / 60 {
					e.Tick(now)
				}

				st := e.State()
				assert.Equal(t, 1.0, st.Progress)
				assert.False(t, st.IsTransitioning)
				assert.Equal(t, SectionBlog, st.CurrentSection)
				assert.Equal(t, 0.0, st.FadeOpacity)
				assert.Equal(t, blogAnchor.Position, cam.Position())
				assert.Equal(t, blogAnchor.Target, cam.Target())
			})
		}
	}
}

func TestFadeTriangularLaw(t *testing.T) {
	e, _, _ := newTestEngine()
	require.True(t, e.StartTransition(SectionTech,
		WithDuration(2*time.Second),
		WithEasing(easing.NameLinear),
		WithFadeOverlay(true),
		WithFadeOverlayOpacity(0.3),
	))

	cases := []struct {
		now  float64
		want float64
	}{
		{0, 0},
		{0.5, 0.15},
		{1.0, 0.3},
		{1.5, 0.15},
	}
	for _, c := range cases {
		e.Tick(c.now)
		assert.InDelta(t, c.want, e.State().FadeOpacity, 1e-9, "raw=%v", c.now/2)
	}
}

func TestFadeDisabled(t *testing.T) {
	e, _, _ := newTestEngine()
	require.True(t, e.StartTransition(SectionTech, WithFadeOverlay(false)))
	e.Tick(0)
	e.Tick(1)
	assert.Equal(t, 0.0, e.State().FadeOpacity)
}

func TestInterpolationEndpoints(t *testing.T) {
	for _, name := range []string{easing.NameLinear, easing.NameEaseIn, easing.NameEaseOut, easing.NameEaseInOut} {
		t.Run(name, func(t *testing.T) {
			fn, ok := easing.NewRegistry().Lookup(name)
			require.True(t, ok)

			start := aboutAnchor.Lerp(techAnchor, fn(0))
			end := aboutAnchor.Lerp(techAnchor, fn(1))
			assert.Equal(t, aboutAnchor.Position, start.Position)
			assert.Equal(t, techAnchor.Position, end.Position)
			assert.Equal(t, techAnchor.Target, end.Target)
		})
	}
}

func TestStartPoseIsCurrentCamera(t *testing.T) {
	e, cam, _ := newTestEngine()
	offAnchor := mgl64.Vec3{3, 3, 3}
	cam.pos = offAnchor

	require.True(t, e.StartTransition(SectionTech, WithEasing(easing.NameLinear)))
	e.Tick(5)
	assert.Equal(t, offAnchor, cam.Position())

	e.Tick(6)
	want := common.LerpVec3(offAnchor, techAnchor.Position, 0.5)
	assert.True(t, vecInDelta(want, cam.Position(), 1e-9))
}

func TestUnknownEasingFallsBack(t *testing.T) {
	e, _, _ := newTestEngine()
	require.True(t, e.StartTransition(SectionTech, WithEasing("wobble"), WithDuration(2*time.Second)))
	e.Tick(0)
	e.Tick(0.5)
	assert.InDelta(t, easing.EaseInOut(0.25), e.State().Progress, 1e-9)
}

func TestScriptedEasing(t *testing.T) {
	e, _, _ := newTestEngine()
	s, err := easing.CompileScript("half", []byte(`ease := func(t) { return t * t }`))
	require.NoError(t, err)
	e.Easings().Register(s.Name(), s.Func(nil))

	require.True(t, e.StartTransition(SectionTech, WithEasing("half"), WithDuration(time.Second)))
	e.Tick(0)
	e.Tick(0.5)
	assert.InDelta(t, 0.25, e.State().Progress, 1e-9)
}

func TestNavigateAfterCompletion(t *testing.T) {
	e, cam, _ := newTestEngine()
	require.True(t, e.StartTransition(SectionTech, WithDuration(time.Second)))
	e.Tick(0)
	e.Tick(1)
	require.Equal(t, SectionTech, e.State().CurrentSection)

	require.True(t, e.StartTransition(SectionAbout, WithDuration(time.Second)))
	e.Tick(3)
	assert.Equal(t, techAnchor.Position, cam.Position())
	e.Tick(4)
	assert.Equal(t, SectionAbout, e.State().CurrentSection)
	assert.Equal(t, aboutAnchor.Position, cam.Position())
}

func TestObserverLifecycle(t *testing.T) {
	obs := &recordingObserver{}
	cam := &fakeCamera{}
	e := NewEngine(cam, WithScheduler(&manualScheduler{}), WithObserver(obs))
	e.Store().SetSectionCameraPosition(SectionMerch, techAnchor)

	require.True(t, e.StartTransition(SectionMerch, WithDuration(time.Second)))
	assert.False(t, e.StartTransition(SectionMerch))
	assert.False(t, e.StartTransition(SectionFashion))
	e.Tick(2)
	e.Tick(3.5)

	require.Len(t, obs.started, 1)
	assert.Equal(t, SectionMerch, obs.started[0])
	assert.Equal(t, []DropReason{DropDuplicate, DropNoAnchor}, obs.dropped)
	assert.Equal(t, []Section{SectionMerch}, obs.completed)
	assert.Equal(t, 1500*time.Millisecond, obs.elapsed[0])
}

type recordingObserver struct {
	started   []Section
	completed []Section
	elapsed   []time.Duration
	dropped   []DropReason
}

func (r *recordingObserver) TransitionStarted(_ string, _, to Section, _ Config) {
	r.started = append(r.started, to)
}

func (r *recordingObserver) TransitionCompleted(_ string, to Section, elapsed time.Duration) {
	r.completed = append(r.completed, to)
	r.elapsed = append(r.elapsed, elapsed)
}

func (r *recordingObserver) TransitionDropped(_ Section, reason DropReason) {
	r.dropped = append(r.dropped, reason)
}
