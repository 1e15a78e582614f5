package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/cyberfolio/transition"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	data    map[string][]byte
	saveErr error
}

func newMemBackend() *memBackend {
	return &memBackend{data: map[string][]byte{}}
}

func (m *memBackend) key(o, p string) string { return o + "/" + p }

func (m *memBackend) ObjectPropExists(o, p string) bool {
	_, ok := m.data[m.key(o, p)]
	return ok
}

func (m *memBackend) LoadObjectProp(o, p string) ([]byte, error) {
	return m.data[m.key(o, p)], nil
}

func (m *memBackend) SaveObjectProp(o, p string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[m.key(o, p)] = append([]byte(nil), data...)
	return nil
}

func TestRecordAndReload(t *testing.T) {
	backend := newMemBackend()
	s := New(backend, nil)

	_, ok := s.LastSection()
	assert.False(t, ok)

	require.NoError(t, s.Record(transition.SectionTech))
	require.NoError(t, s.Record(transition.SectionBlog))
	require.NoError(t, s.Record(transition.SectionTech))

	reloaded := New(backend, nil)
	last, ok := reloaded.LastSection()
	require.True(t, ok)
	assert.Equal(t, transition.SectionTech, last)
	assert.Equal(t, []transition.Section{transition.SectionTech, transition.SectionBlog}, reloaded.Progress().Visited)
}

func TestDegradedMode(t *testing.T) {
	s := New(nil, nil)
	assert.False(t, s.Persistent())
	require.NoError(t, s.Record(transition.SectionMerch))

	last, ok := s.LastSection()
	require.True(t, ok)
	assert.Equal(t, transition.SectionMerch, last)
}

func TestRecordIgnoresEmpty(t *testing.T) {
	backend := newMemBackend()
	s := New(backend, nil)
	require.NoError(t, s.Record(""))
	assert.Empty(t, backend.data)
}

func TestRecordSurfacesWriteErrors(t *testing.T) {
	backend := newMemBackend()
	backend.saveErr = errors.New("disk full")
	s := New(backend, nil)

	err := s.Record(transition.SectionAbout)
	assert.ErrorIs(t, err, backend.saveErr)
	last, _ := s.LastSection()
	assert.Equal(t, transition.SectionAbout, last, "memory state still advances")
}

func TestCorruptProgressStartsFresh(t *testing.T) {
	backend := newMemBackend()
	backend.data[backend.key(progressObject, progressProperty)] = []byte("visited: [\n")

	s := New(backend, nil)
	_, ok := s.LastSection()
	assert.False(t, ok)
	assert.Error(t, s.Load())
}

func TestProgressIsACopy(t *testing.T) {
	s := New(nil, nil)
	require.NoError(t, s.Record(transition.SectionAbout))
	p := s.Progress()
	p.Visited[0] = "mutated"
	assert.Equal(t, transition.SectionAbout, s.Progress().Visited[0])
}

func TestGdataRoundTrip(t *testing.T) {
	appName := fmt.Sprintf("cyberfolio_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skip("gdata unavailable in this environment")
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			_ = os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	s := New(m, nil)
	require.True(t, s.Persistent())
	require.NoError(t, s.Record(transition.SectionFashion))

	last, ok := New(m, nil).LastSection()
	require.True(t, ok)
	assert.Equal(t, transition.SectionFashion, last)
}
