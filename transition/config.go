package transition

import (
	"fmt"
	"reflect"
	"time"

	"github.com/milk9111/cyberfolio/easing"
	"github.com/mitchellh/mapstructure"
)

// Config shapes a single transition. It is supplied per request and never
// persisted.
type Config struct {
	Duration           time.Duration `json:"duration"`
	Easing             string        `json:"easing"`
	FadeOverlay        bool          `json:"fade_overlay"`
	FadeOverlayColor   string        `json:"fade_overlay_color"`
	FadeOverlayOpacity float64       `json:"fade_overlay_opacity"`
}

func DefaultConfig() Config {
	return Config{
		Duration:           2 * time.Second,
		Easing:             easing.Default,
		FadeOverlay:        true,
		FadeOverlayColor:   "#000000",
		FadeOverlayOpacity: 0.3,
	}
}

// Overrides is the partial form of Config; nil fields keep the base value.
type Overrides struct {
	Duration           *time.Duration `yaml:"duration" mapstructure:"duration"`
	Easing             *string        `yaml:"easing" mapstructure:"easing"`
	FadeOverlay        *bool          `yaml:"fade_overlay" mapstructure:"fade_overlay"`
	FadeOverlayColor   *string        `yaml:"fade_overlay_color" mapstructure:"fade_overlay_color"`
	FadeOverlayOpacity *float64       `yaml:"fade_overlay_opacity" mapstructure:"fade_overlay_opacity"`
}

// Apply merges o over base.
func (o Overrides) Apply(base Config) Config {
	if o.Duration != nil {
		base.Duration = *o.Duration
	}
	if o.Easing != nil {
		base.Easing = *o.Easing
	}
	if o.FadeOverlay != nil {
		base.FadeOverlay = *o.FadeOverlay
	}
	if o.FadeOverlayColor != nil {
		base.FadeOverlayColor = *o.FadeOverlayColor
	}
	if o.FadeOverlayOpacity != nil {
		base.FadeOverlayOpacity = *o.FadeOverlayOpacity
	}
	return base
}

// IsZero reports whether no field is overridden.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// DecodeOverrides decodes a loosely typed map (script results, ad hoc YAML
// blocks) into Overrides. Durations may be strings such as "1.5s" or numbers
// of seconds.
func DecodeOverrides(raw map[string]any) (Overrides, error) {
	var out Overrides
	if len(raw) == 0 {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return Overrides{}, fmt.Errorf("transition: overrides decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Overrides{}, fmt.Errorf("transition: decode overrides: %w", err)
	}
	return out, nil
}

func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case float32:
		return time.Duration(float64(v) * float64(time.Second)), nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	}
	return data, nil
}

// Option adjusts the config of one transition request.
type Option func(*Config)

func WithDuration(d time.Duration) Option {
	return func(c *Config) { c.Duration = d }
}

func WithEasing(name string) Option {
	return func(c *Config) { c.Easing = name }
}

func WithFadeOverlay(enabled bool) Option {
	return func(c *Config) { c.FadeOverlay = enabled }
}

func WithFadeOverlayColor(color string) Option {
	return func(c *Config) { c.FadeOverlayColor = color }
}

func WithFadeOverlayOpacity(opacity float64) Option {
	return func(c *Config) { c.FadeOverlayOpacity = opacity }
}

func WithOverrides(o Overrides) Option {
	return func(c *Config) { *c = o.Apply(*c) }
}

func buildConfig(base Config, opts []Option) Config {
	cfg := base
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
