package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverPhases(t *testing.T) {
	store := NewStore(&manualScheduler{})
	store.SetSectionCameraPosition(SectionTech, techAnchor)
	cam := &fakeCamera{}
	d := NewDriver(store, cam, nil, nil)

	d.Arm()
	assert.Equal(t, Idle, d.Phase(), "arm without a transition in flight")

	store.StartTransition(SectionTech, WithDuration(time.Second))
	d.Arm()
	require.Equal(t, Armed, d.Phase())

	assert.False(t, d.Tick(0))
	assert.Equal(t, Running, d.Phase())

	d.Arm()
	assert.Equal(t, Running, d.Phase(), "arm while running is ignored")

	assert.False(t, d.Tick(0.5))
	assert.True(t, d.Tick(1))
	assert.Equal(t, Idle, d.Phase())
	assert.Equal(t, techAnchor.Position, cam.pos)
}

func TestDriverIdleTickIsNoop(t *testing.T) {
	store := NewStore(&manualScheduler{})
	cam := &fakeCamera{}
	d := NewDriver(store, cam, nil, nil)

	assert.False(t, d.Tick(3))
	assert.Zero(t, cam.writes)
	assert.Equal(t, State{}, store.Snapshot())
}

func TestDriverMissingAnchorAtCapture(t *testing.T) {
	store := NewStore(&manualScheduler{})
	cam := &fakeCamera{pos: aboutAnchor.Position}
	d := NewDriver(store, cam, nil, nil)

	store.StartTransition(SectionMerch)
	d.Arm()
	require.Equal(t, Armed, d.Phase())

	assert.False(t, d.Tick(0))
	assert.Equal(t, Idle, d.Phase())
	assert.Zero(t, cam.writes)
	assert.Equal(t, 0.0, store.Snapshot().Progress)
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{Idle: "idle", Armed: "armed", Running: "running"}
	for p, want := range cases {
		assert.Equal(t, want, p.String())
	}
}
