package infoview

import "strings"

// Options control which sections the infoview renders and in which
// format. The zero value renders nothing; use OptionsFromSettings to
// honor the user's configuration.
type Options struct {
	// Goals includes the current proof goals.
	Goals bool
	// ExpectedType includes the expected type of the term at point.
	ExpectedType bool
	// NoGoals renders a placeholder when nothing is available.
	NoGoals bool
	// Markdown selects markdown output instead of plain text.
	Markdown bool
	// SyntaxFile is the highlighting definition for plain text output.
	SyntaxFile string
}

// OptionsFromSettings reads the display options from a descriptor
// settings table. Missing keys fall back to the shipped defaults.
func OptionsFromSettings(settings map[string]any) Options {
	return Options{
		Goals:        boolSetting(settings, "display_current_goals", true),
		ExpectedType: boolSetting(settings, "display_expected_type", true),
		NoGoals:      boolSetting(settings, "display_nogoals", false),
		Markdown:     boolSetting(settings, "display_mdpopup", true),
		SyntaxFile:   stringSetting(settings, "display_syntaxfile", ""),
	}
}

func boolSetting(settings map[string]any, key string, def bool) bool {
	if v, ok := settings[key].(bool); ok {
		return v
	}
	return def
}

func stringSetting(settings map[string]any, key, def string) string {
	if v, ok := settings[key].(string); ok {
		return v
	}
	return def
}

// Render combines the goal state and expected type into one infoview
// document. Sections disabled in the options are dropped; when neither
// section has content the result is empty unless NoGoals is set.
func Render(opts Options, state *GoalState, term *TermGoal) string {
	hasGoals := opts.Goals && !state.Empty()
	hasType := opts.ExpectedType && !term.Empty()

	if !hasGoals && !hasType {
		if !opts.NoGoals {
			return ""
		}
		if opts.Markdown {
			return "### Lean Infoview\n\n" + FormatGoalsMarkdown(nil) + "\n"
		}
		return FormatGoals(nil) + "\n"
	}

	if opts.Markdown {
		var b strings.Builder
		b.WriteString("### Lean Infoview\n\n")
		if hasGoals || opts.NoGoals {
			if md := FormatGoalsMarkdown(state); md != "" {
				b.WriteString(md)
				b.WriteString("\n")
			}
		}
		if hasType {
			if md := FormatTermGoalMarkdown(term); md != "" {
				b.WriteString(md)
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	var parts []string
	if hasGoals || opts.NoGoals {
		if s := FormatGoals(state); s != "" {
			parts = append(parts, s, "")
		}
	}
	if hasType {
		if s := FormatTermGoal(term); s != "" {
			parts = append(parts, s, "")
		}
	}
	return strings.Join(parts, "\n")
}
