package infoview

import (
	"fmt"
	"strings"
)

const ruleWidth = 40

// FormatGoals renders goals as plain text for an output panel.
func FormatGoals(state *GoalState) string {
	if state.Empty() {
		return "No goals"
	}

	var out []string
	for i, goal := range state.Goals {
		out = append(out, fmt.Sprintf("-- Goal %d:", i+1))
		if !goal.Structured {
			out = append(out, goal.Conclusion)
		} else {
			if len(goal.Hypotheses) > 0 {
				out = append(out, "", "-- Hypotheses:")
				for _, h := range goal.Hypotheses {
					out = append(out, "  "+h)
				}
			}
			out = append(out, "", "⊢ "+goal.Conclusion, "")
		}
		out = append(out, strings.Repeat("-", ruleWidth))
	}
	return strings.Join(out, "\n")
}

// FormatTermGoal renders the expected type as plain text. Returns the
// empty string when no expected type is available.
func FormatTermGoal(term *TermGoal) string {
	if term.Empty() {
		return ""
	}
	return strings.Join([]string{
		"-- Expected Type:",
		term.Goal,
		strings.Repeat("-", ruleWidth),
	}, "\n")
}
