package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2*time.Second, cfg.Duration)
	assert.Equal(t, "easeInOut", cfg.Easing)
	assert.True(t, cfg.FadeOverlay)
	assert.Equal(t, "#000000", cfg.FadeOverlayColor)
	assert.Equal(t, 0.3, cfg.FadeOverlayOpacity)
}

func TestDecodeOverrides(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want func(Config) Config
	}{
		{
			name: "duration_string",
			raw:  map[string]any{"duration": "1.5s"},
			want: func(c Config) Config { c.Duration = 1500 * time.Millisecond; return c },
		},
		{
			name: "duration_float_seconds",
			raw:  map[string]any{"duration": 0.5},
			want: func(c Config) Config { c.Duration = 500 * time.Millisecond; return c },
		},
		{
			name: "duration_int_seconds",
			raw:  map[string]any{"duration": 3},
			want: func(c Config) Config { c.Duration = 3 * time.Second; return c },
		},
		{
			name: "fade_fields",
			raw: map[string]any{
				"easing":               "bounce",
				"fade_overlay":         false,
				"fade_overlay_color":   "#ff00ff",
				"fade_overlay_opacity": 0.8,
			},
			want: func(c Config) Config {
				c.Easing = "bounce"
				c.FadeOverlay = false
				c.FadeOverlayColor = "#ff00ff"
				c.FadeOverlayOpacity = 0.8
				return c
			},
		},
		{
			name: "empty",
			raw:  nil,
			want: func(c Config) Config { return c },
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o, err := DecodeOverrides(c.raw)
			require.NoError(t, err)
			assert.Equal(t, c.want(DefaultConfig()), o.Apply(DefaultConfig()))
		})
	}
}

func TestDecodeOverridesRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeOverrides(map[string]any{"speed": 4})
	assert.Error(t, err)
}

func TestOverridesIsZero(t *testing.T) {
	assert.True(t, Overrides{}.IsZero())
	easingName := "linear"
	assert.False(t, Overrides{Easing: &easingName}.IsZero())
}

func TestWithOverrides(t *testing.T) {
	d := 750 * time.Millisecond
	cfg := buildConfig(DefaultConfig(), []Option{
		WithEasing("linear"),
		WithOverrides(Overrides{Duration: &d}),
		nil,
		WithFadeOverlayColor("#112233"),
	})
	assert.Equal(t, d, cfg.Duration)
	assert.Equal(t, "linear", cfg.Easing)
	assert.Equal(t, "#112233", cfg.FadeOverlayColor)
}
