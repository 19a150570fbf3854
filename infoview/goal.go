// Package infoview parses and renders Lean goal state responses.
//
// The Lean language server answers two custom requests at a cursor
// position: $/lean/plainGoal with the open proof goals and
// $/lean/plainTermGoal with the expected type of the term under the
// cursor. This package turns the raw JSON responses into Go values and
// renders them as plain text for an output panel or as markdown for a
// popup.
package infoview

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Request methods for the Lean goal state extensions.
const (
	MethodPlainGoal     = "$/lean/plainGoal"
	MethodPlainTermGoal = "$/lean/plainTermGoal"
)

// ErrInvalidResponse indicates the server response is not valid JSON.
var ErrInvalidResponse = errors.New("invalid goal response")

// Goal is a single proof goal. Servers send goals either as a
// pre-rendered string or as a structured object with hypotheses and a
// conclusion; Structured records which form arrived.
type Goal struct {
	Hypotheses []string
	Conclusion string
	Structured bool
}

// GoalState is the decoded $/lean/plainGoal response.
type GoalState struct {
	Goals []Goal
}

// Empty reports whether there are no open goals.
func (s *GoalState) Empty() bool {
	return s == nil || len(s.Goals) == 0
}

// TermGoal is the decoded $/lean/plainTermGoal response.
type TermGoal struct {
	Goal string
}

// Empty reports whether no expected type is available.
func (t *TermGoal) Empty() bool {
	return t == nil || t.Goal == ""
}

// ParseGoalState decodes a $/lean/plainGoal response. A null response
// means the position has no goal information and yields nil, nil.
func ParseGoalState(data []byte) (*GoalState, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidResponse
	}
	result := gjson.ParseBytes(data)
	if result.Type == gjson.Null {
		return nil, nil
	}

	state := &GoalState{}
	for _, g := range result.Get("goals").Array() {
		state.Goals = append(state.Goals, parseGoal(g))
	}
	return state, nil
}

func parseGoal(g gjson.Result) Goal {
	if g.Type == gjson.String {
		return Goal{Conclusion: g.String()}
	}

	goal := Goal{Structured: true}
	for _, h := range g.Get("hypotheses").Array() {
		goal.Hypotheses = append(goal.Hypotheses, h.String())
	}
	switch {
	case g.Get("conclusion").Exists():
		goal.Conclusion = g.Get("conclusion").String()
	case g.Get("type").Exists():
		goal.Conclusion = g.Get("type").String()
	default:
		goal.Conclusion = "unknown"
	}
	return goal
}

// ParseTermGoal decodes a $/lean/plainTermGoal response. A null
// response yields nil, nil.
func ParseTermGoal(data []byte) (*TermGoal, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidResponse
	}
	result := gjson.ParseBytes(data)
	if result.Type == gjson.Null {
		return nil, nil
	}
	return &TermGoal{Goal: result.Get("goal").String()}, nil
}
