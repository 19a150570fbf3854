package infoview

// Position is a zero-based line/character position in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// TextDocumentIdentifier names a document by URI.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// GoalParams are the parameters for MethodPlainGoal and
// MethodPlainTermGoal requests.
type GoalParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// NewGoalParams builds request parameters for a cursor position.
func NewGoalParams(uri string, line, character int) GoalParams {
	return GoalParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
		Position:     Position{Line: line, Character: character},
	}
}
