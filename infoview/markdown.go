package infoview

import (
	"fmt"
	"strings"
)

// FormatGoalsMarkdown renders goals as markdown with HTML classes for
// popup styling.
func FormatGoalsMarkdown(state *GoalState) string {
	if state.Empty() {
		return `<div class="no-goals">No goals</div>`
	}

	var b strings.Builder
	for i, goal := range state.Goals {
		fmt.Fprintf(&b, "<div class=\"goal-header\">Goal %d:</div>\n", i+1)
		if !goal.Structured {
			fmt.Fprintf(&b, "```lean\n%s\n```\n", goal.Conclusion)
		} else {
			if len(goal.Hypotheses) > 0 {
				b.WriteString("<div class=\"hypotheses\">\n")
				for _, h := range goal.Hypotheses {
					fmt.Fprintf(&b, "<div class=\"hypothesis\">`%s`</div>\n", escapeHTML(h))
				}
				b.WriteString("</div>\n")
			}
			b.WriteString("<div class=\"turnstile\">⊢</div>\n")
			fmt.Fprintf(&b, "<div class=\"conclusion\">`%s`</div>\n", escapeHTML(goal.Conclusion))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTermGoalMarkdown renders the expected type as markdown.
func FormatTermGoalMarkdown(term *TermGoal) string {
	if term.Empty() {
		return ""
	}
	return fmt.Sprintf("<div class=\"expected-type-header\">Expected Type:</div>\n```lean\n%s\n```\n", term.Goal)
}

func escapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}
