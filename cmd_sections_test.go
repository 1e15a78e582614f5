package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/milk9111/cyberfolio/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsMarkdown(t *testing.T) {
	scene, err := prefabs.LoadSceneSpec()
	require.NoError(t, err)

	md := sectionsMarkdown(scene)
	lines := strings.Split(strings.TrimSpace(md), "\n")

	assert.Contains(t, md, "Initial section: `about`")
	// title, blank, initial, blank, header, rule, then one row per section
	require.Len(t, lines, 6+len(scene.Sections))
	assert.Equal(t, "| 1 | about | About | (0.00, 2.00, 8.00) | (0.00, 0.00, 0.00) | defaults |", lines[6])
	assert.Contains(t, md, "| blog |")
	assert.Contains(t, md, "easing=smoothstep")
	assert.Contains(t, md, "duration=2.5s easing=elastic")
}

func TestOverridesSummary(t *testing.T) {
	scene, err := prefabs.ParseSceneSpec([]byte(`
sections:
  - id: plain
  - id: loud
    transition:
      fade_overlay: false
      fade_overlay_opacity: 0.5
`))
	require.NoError(t, err)

	plain, _ := scene.Section("plain")
	loud, _ := scene.Section("loud")
	assert.Equal(t, "defaults", overridesSummary(plain))
	assert.Equal(t, "fade=false fade_opacity=0.50", overridesSummary(loud))
	assert.Equal(t, "-", orDash(plain.Key))
}

func TestSectionsCommandRaw(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"sections", "--raw"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "# "))
	assert.Contains(t, out.String(), "| merch |")
}

func TestLoadingText(t *testing.T) {
	tests := []struct {
		name   string
		state  transition.State
		title  string
		detail string
	}{
		{
			name:   "start",
			state:  transition.State{IsTransitioning: true, TargetSection: transition.SectionTech},
			title:  "LOADING TECH",
			detail: "assets   0%   flight   0%",
		},
		{
			name:   "midway",
			state:  transition.State{IsTransitioning: true, TargetSection: transition.SectionMerch, LoadingProgress: 0.3, Progress: 0.456},
			title:  "LOADING MERCH",
			detail: "assets  30%   flight  46%",
		},
		{
			name:   "out of range is clamped",
			state:  transition.State{IsTransitioning: true, TargetSection: transition.SectionBlog, LoadingProgress: 1.7, Progress: -0.2},
			title:  "LOADING BLOG",
			detail: "assets 100%   flight   0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, detail := loadingText(tt.state)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.detail, detail)
		})
	}
}

func TestButtonLabel(t *testing.T) {
	assert.Equal(t, "[3] BLOG", buttonLabel(prefabs.SectionSpec{Key: "3", Label: "BLOG"}))
	assert.Equal(t, "LAB", buttonLabel(prefabs.SectionSpec{Label: "LAB"}))
}
