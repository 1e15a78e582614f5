package prefabs

import (
	"image/color"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/cyberfolio/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyOptions(opts []transition.Option) transition.Config {
	cfg := transition.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestLoadSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec()
	require.NoError(t, err)

	assert.Equal(t, "about", spec.InitialSection)
	assert.Equal(t, transition.KnownSections(), spec.IDs())

	fashion, ok := spec.Section(transition.SectionFashion)
	require.True(t, ok)
	require.NotNil(t, fashion.Anchor.Rotation)
	assert.Equal(t, "Fashion", fashion.Label)

	byKey, ok := spec.SectionForKey("3")
	require.True(t, ok)
	assert.Equal(t, transition.SectionBlog, byKey.Section())

	_, ok = spec.SectionForKey("9")
	assert.False(t, ok)
}

func TestSceneRegister(t *testing.T) {
	spec, err := LoadSceneSpec()
	require.NoError(t, err)

	store := transition.NewStore(nil)
	defer store.Close()
	spec.Register(store)

	assert.Equal(t, spec.IDs(), store.Sections())
	about, ok := store.SectionCameraPosition(transition.SectionAbout)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 2, 8}, about.Position)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, about.Target)
	assert.Nil(t, about.Rotation)

	fashion, ok := store.SectionCameraPosition(transition.SectionFashion)
	require.True(t, ok)
	require.NotNil(t, fashion.Rotation)
	assert.Equal(t, mgl64.Vec3{-0.35, 0.45, 0}, *fashion.Rotation)
}

func TestSceneTransitionOptions(t *testing.T) {
	spec, err := LoadSceneSpec()
	require.NoError(t, err)

	cases := []struct {
		section transition.Section
		want    func(transition.Config) transition.Config
	}{
		{transition.SectionAbout, func(c transition.Config) transition.Config { return c }},
		{transition.SectionBlog, func(c transition.Config) transition.Config {
			c.Easing = "smoothstep"
			return c
		}},
		{transition.SectionFashion, func(c transition.Config) transition.Config {
			c.Duration = 2500 * time.Millisecond
			c.Easing = "elastic"
			return c
		}},
		{transition.SectionMerch, func(c transition.Config) transition.Config {
			c.Easing = "bounce"
			c.FadeOverlayColor = "#1a0033"
			c.FadeOverlayOpacity = 0.45
			return c
		}},
	}

	for _, c := range cases {
		t.Run(string(c.section), func(t *testing.T) {
			got := applyOptions(spec.TransitionOptions(c.section))
			assert.Equal(t, c.want(transition.DefaultConfig()), got)
		})
	}
}

func TestParseSceneSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		is   error
	}{
		{"no_sections", "name: x\n", ErrNoSections},
		{"duplicate", "sections:\n  - id: a\n  - id: a\n", ErrDuplicateID},
		{"empty_id", "sections:\n  - label: A\n", ErrEmptySectionID},
		{"unknown_initial", "initial_section: z\nsections:\n  - id: a\n", ErrUnknownInitial},
		{"bad_override", "sections:\n  - id: a\n    transition:\n      speed: 3\n", nil},
		{"bad_color", "sections:\n  - id: a\n    color: \"#zz\"\n", nil},
		{"bad_yaml", "sections: [\n", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseSceneSpec([]byte(c.doc))
			require.Error(t, err)
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			}
		})
	}
}

func TestParseSceneSpecDefaults(t *testing.T) {
	spec, err := ParseSceneSpec([]byte("sections:\n  - id: lab\n    marker: [1, 2, 3]\n"))
	require.NoError(t, err)

	assert.Equal(t, "lab", spec.InitialSection)
	sec := spec.Sections[0]
	assert.Equal(t, "LAB", sec.Label)
	assert.Equal(t, 1.0, sec.Radius)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, sec.Marker.Vec3())
	assert.True(t, sec.Overrides().IsZero())
}

func TestLoadCameraSpec(t *testing.T) {
	spec, err := LoadCameraSpec()
	require.NoError(t, err)
	assert.Equal(t, 60.0, spec.FOV)
	assert.Less(t, spec.Near, spec.Far)
	assert.NotEqual(t, spec.Position, spec.Target)
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#000000", want: color.NRGBA{A: 255}},
		{in: "#ff2bd6", want: color.NRGBA{R: 0xff, G: 0x2b, B: 0xd6, A: 255}},
		{in: "00f0ff55", want: color.NRGBA{G: 0xf0, B: 0xff, A: 0x55}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParseColor(c.in)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidColorHex, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestYAMLColorOr(t *testing.T) {
	fallback := color.NRGBA{R: 1, A: 255}
	var unset *YAMLColor
	assert.Equal(t, color.Color(fallback), unset.Or(fallback))

	set := &YAMLColor{Color: color.NRGBA{B: 9, A: 255}}
	assert.Equal(t, color.Color(color.NRGBA{B: 9, A: 255}), set.Or(fallback))
}
