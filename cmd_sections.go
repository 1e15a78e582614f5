package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/milk9111/cyberfolio/prefabs"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List section anchors and transition overrides",
	Long:  `Loads prefabs/scene.yaml (disk copy first, then the embedded one) and prints every section with its camera anchor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := prefabs.LoadSceneSpec()
		if err != nil {
			return err
		}

		md := sectionsMarkdown(scene)
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(120),
		)
		if err != nil {
			return fmt.Errorf("sections: renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("sections: render: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	sectionsCmd.Flags().Bool("raw", false, "print markdown without terminal styling")
	rootCmd.AddCommand(sectionsCmd)
}

// sectionsMarkdown renders the scene's sections as a markdown table.
func sectionsMarkdown(scene *prefabs.SceneSpec) string {
	var b strings.Builder
	title := scene.Name
	if title == "" {
		title = "scene"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Initial section: `%s`\n\n", scene.InitialSection)
	b.WriteString("| Key | Section | Label | Position | Target | Transition |\n")
	b.WriteString("|-----|---------|-------|----------|--------|------------|\n")
	for _, sec := range scene.Sections {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			orDash(sec.Key),
			sec.ID,
			sec.Label,
			formatVec(sec.Anchor.Position),
			formatVec(sec.Anchor.Target),
			overridesSummary(sec))
	}
	return b.String()
}

func formatVec(v prefabs.Vec3Spec) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}

// overridesSummary lists the section's transition overrides as key=value
// pairs, or "defaults" when it has none.
func overridesSummary(sec prefabs.SectionSpec) string {
	o := sec.Overrides()
	var parts []string
	if o.Duration != nil {
		parts = append(parts, "duration="+o.Duration.String())
	}
	if o.Easing != nil {
		parts = append(parts, "easing="+*o.Easing)
	}
	if o.FadeOverlay != nil {
		parts = append(parts, fmt.Sprintf("fade=%t", *o.FadeOverlay))
	}
	if o.FadeOverlayColor != nil {
		parts = append(parts, "fade_color="+*o.FadeOverlayColor)
	}
	if o.FadeOverlayOpacity != nil {
		parts = append(parts, fmt.Sprintf("fade_opacity=%.2f", *o.FadeOverlayOpacity))
	}
	if len(parts) == 0 {
		return "defaults"
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
