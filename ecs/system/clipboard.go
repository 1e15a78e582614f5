package system

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cyberfolio/ecs"
	"github.com/milk9111/cyberfolio/ecs/component"
	"github.com/milk9111/cyberfolio/prefabs"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// ClipboardSystem copies the live camera pose as a scene.yaml anchor block
// when C is pressed, for authoring section anchors by flying around.
type ClipboardSystem struct {
	log       *zap.Logger
	camEntity ecs.Entity
	write     func([]byte) error
}

func NewClipboardSystem(log *zap.Logger) *ClipboardSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClipboardSystem{log: log, write: systemClipboard()}
}

func (cs *ClipboardSystem) Update(w *ecs.World) {
	if !inpututil.IsKeyJustPressed(ebiten.KeyC) {
		return
	}
	pose, ok := cameraPose(w, &cs.camEntity)
	if !ok {
		return
	}
	snippet, err := AnchorSnippet(*pose)
	if err != nil {
		cs.log.Warn("clipboard: format anchor", zap.Error(err))
		return
	}
	if err := cs.write(snippet); err != nil {
		cs.log.Warn("clipboard: unavailable", zap.Error(err))
		return
	}
	cs.log.Info("clipboard: copied camera anchor", zap.ByteString("yaml", snippet))
}

// AnchorSnippet renders pose as an `anchor:` block for scene.yaml.
func AnchorSnippet(pose component.CameraPose) ([]byte, error) {
	doc := struct {
		Anchor prefabs.AnchorSpec `yaml:"anchor"`
	}{
		Anchor: prefabs.AnchorSpec{
			Position: prefabs.Vec3SpecOf(pose.Position),
			Target:   prefabs.Vec3SpecOf(pose.Target),
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("clipboard: encode anchor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("clipboard: encode anchor: %w", err)
	}
	return buf.Bytes(), nil
}

func systemClipboard() func([]byte) error {
	var (
		once    sync.Once
		initErr error
	)
	return func(data []byte) error {
		once.Do(func() { initErr = clipboard.Init() })
		if initErr != nil {
			return initErr
		}
		clipboard.Write(clipboard.FmtText, data)
		return nil
	}
}
