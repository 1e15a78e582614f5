package prefabs

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 100 * time.Millisecond

type ChangeKind int

const (
	ChangeOther ChangeKind = iota
	ChangeScene
	ChangeCamera
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeScene:
		return "scene"
	case ChangeCamera:
		return "camera"
	case ChangeScript:
		return "script"
	default:
		return "other"
	}
}

type Change struct {
	Path string
	Kind ChangeKind
}

func classify(path string) (ChangeKind, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case base == "scene.yaml":
		return ChangeScene, true
	case base == "camera.yaml":
		return ChangeCamera, true
	case isScriptFile(path):
		return ChangeScript, true
	case isSpecFile(path):
		return ChangeOther, true
	}
	return ChangeOther, false
}

// Watcher reports prefab edits on disk. Events is closed when Run returns.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	return &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
	}, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

// Run forwards debounced changes until ctx is done or the underlying watcher
// is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.Events)
	defer w.Close()

	d := newDebouncer(debounceWindow)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok || !d.allow(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// debouncer drops repeat events for the same path inside window; editors
// tend to emit several writes per save.
type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, last: map[string]time.Time{}}
}

func (d *debouncer) allow(name string, now time.Time) bool {
	if t, ok := d.last[name]; ok && now.Sub(t) < d.window {
		return false
	}
	d.last[name] = now
	return true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
