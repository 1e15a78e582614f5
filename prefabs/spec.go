package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cyberfolio/transition"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoSections      = errors.New("scene declares no sections")
	ErrDuplicateID     = errors.New("duplicate section id")
	ErrUnknownInitial  = errors.New("initial_section is not declared")
	ErrEmptySectionID  = errors.New("section without id")
	ErrInvalidColorHex = errors.New("invalid color")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is written as a flow sequence: [x, y, z].
type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func Vec3SpecOf(v mgl64.Vec3) Vec3Spec {
	return Vec3Spec{v[0], v[1], v[2]}
}

// MarshalYAML writes the vector in flow style, rounded to millimetres.
func (v Vec3Spec) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range v {
		rounded := math.Round(c*1000) / 1000
		if rounded == 0 {
			rounded = 0
		}
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(rounded, 'f', -1, 64),
		})
	}
	return node, nil
}

type AnchorSpec struct {
	Position Vec3Spec  `yaml:"position"`
	Target   Vec3Spec  `yaml:"target"`
	Rotation *Vec3Spec `yaml:"rotation,omitempty"`
}

func (a AnchorSpec) Anchor() transition.Anchor {
	out := transition.Anchor{
		Position: a.Position.Vec3(),
		Target:   a.Target.Vec3(),
	}
	if a.Rotation != nil {
		r := a.Rotation.Vec3()
		out.Rotation = &r
	}
	return out
}

type SectionSpec struct {
	ID     string     `yaml:"id"`
	Label  string     `yaml:"label"`
	Key    string     `yaml:"key"`
	Color  *YAMLColor `yaml:"color"`
	Marker Vec3Spec   `yaml:"marker"`
	Radius float64    `yaml:"radius"`
	Anchor AnchorSpec `yaml:"anchor"`
	// Transition is a partial transition config applied on top of the
	// scene defaults when navigating to this section.
	Transition map[string]any `yaml:"transition"`

	overrides transition.Overrides
}

func (s SectionSpec) Section() transition.Section {
	return transition.Section(s.ID)
}

func (s SectionSpec) Overrides() transition.Overrides {
	return s.overrides
}

type GridSpec struct {
	Color      *YAMLColor `yaml:"color"`
	HalfExtent int        `yaml:"half_extent"`
	Spacing    float64    `yaml:"spacing"`
}

type SceneSpec struct {
	Name           string         `yaml:"name"`
	InitialSection string         `yaml:"initial_section"`
	Background     *YAMLColor     `yaml:"background"`
	Grid           GridSpec       `yaml:"grid"`
	Transition     map[string]any `yaml:"transition"`
	Sections       []SectionSpec  `yaml:"sections"`

	defaults transition.Overrides
}

func LoadSceneSpec() (*SceneSpec, error) {
	data, err := Load("scene.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load scene.yaml: %w", err)
	}
	return ParseSceneSpec(data)
}

// ParseSceneSpec decodes and validates a scene document.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.prepare(); err != nil {
		return nil, fmt.Errorf("prefabs: scene: %w", err)
	}
	return &spec, nil
}

func (s *SceneSpec) prepare() error {
	if len(s.Sections) == 0 {
		return ErrNoSections
	}

	defaults, err := transition.DecodeOverrides(s.Transition)
	if err != nil {
		return fmt.Errorf("scene transition: %w", err)
	}
	s.defaults = defaults

	seen := make(map[string]bool, len(s.Sections))
	for i := range s.Sections {
		sec := &s.Sections[i]
		if sec.ID == "" {
			return fmt.Errorf("%w at index %d", ErrEmptySectionID, i)
		}
		if seen[sec.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, sec.ID)
		}
		seen[sec.ID] = true

		if sec.Label == "" {
			sec.Label = sec.Section().Label()
		}
		if sec.Radius <= 0 {
			sec.Radius = 1
		}
		o, err := transition.DecodeOverrides(sec.Transition)
		if err != nil {
			return fmt.Errorf("section %s transition: %w", sec.ID, err)
		}
		sec.overrides = o
	}

	if s.InitialSection == "" {
		s.InitialSection = s.Sections[0].ID
	}
	if !seen[s.InitialSection] {
		return fmt.Errorf("%w: %s", ErrUnknownInitial, s.InitialSection)
	}
	return nil
}

func (s *SceneSpec) Section(id transition.Section) (SectionSpec, bool) {
	for _, sec := range s.Sections {
		if sec.Section() == id {
			return sec, true
		}
	}
	return SectionSpec{}, false
}

// SectionForKey returns the section bound to a navigation key such as "3".
func (s *SceneSpec) SectionForKey(key string) (SectionSpec, bool) {
	for _, sec := range s.Sections {
		if sec.Key != "" && sec.Key == key {
			return sec, true
		}
	}
	return SectionSpec{}, false
}

// IDs lists section ids in declaration order.
func (s *SceneSpec) IDs() []transition.Section {
	out := make([]transition.Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		out = append(out, sec.Section())
	}
	return out
}

// Register writes every section anchor into the store, replacing anchors
// registered by an earlier load.
func (s *SceneSpec) Register(store *transition.Store) {
	for _, sec := range s.Sections {
		store.SetSectionCameraPosition(sec.Section(), sec.Anchor.Anchor())
	}
}

// TransitionOptions layers the scene defaults and then the section's own
// overrides for a navigation to id.
func (s *SceneSpec) TransitionOptions(id transition.Section) []transition.Option {
	opts := []transition.Option{transition.WithOverrides(s.defaults)}
	if sec, ok := s.Section(id); ok && !sec.overrides.IsZero() {
		opts = append(opts, transition.WithOverrides(sec.overrides))
	}
	return opts
}

type CameraSpec struct {
	Name     string   `yaml:"name"`
	Position Vec3Spec `yaml:"position"`
	Target   Vec3Spec `yaml:"target"`
	FOV      float64  `yaml:"fov"`
	Near     float64  `yaml:"near"`
	Far      float64  `yaml:"far"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (c *CameraSpec) applyDefaults() {
	if c.FOV <= 0 {
		c.FOV = 60
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= c.Near {
		c.Far = 500
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// Or returns the wrapped color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(value string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorHex, value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColorHex, value)
		}
		return uint8(v), nil
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
