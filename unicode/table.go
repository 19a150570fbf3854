// Package unicode translates typed abbreviations into unicode symbols
// for Lean source, mirroring the abbreviation input of the standard
// Lean editor extensions. A leader sequence (default `\`) starts an
// abbreviation, an ender sequence (default tab) commits it, and an
// optional eager mode commits as soon as the abbreviation is
// unambiguous.
package unicode

import (
	"sort"
	"strings"
)

// Table maps abbreviations to their unicode replacements and answers
// prefix queries against the abbreviation set.
type Table struct {
	abbreviations map[string]string
	prefixes      map[string]struct{}
}

// NewTable builds a table from the bundled abbreviations with custom
// translations merged on top. Custom entries override bundled ones.
func NewTable(custom map[string]string) *Table {
	t := &Table{
		abbreviations: make(map[string]string, len(defaultAbbreviations)+len(custom)),
		prefixes:      make(map[string]struct{}),
	}
	for abbrev, repl := range defaultAbbreviations {
		t.abbreviations[abbrev] = repl
	}
	for abbrev, repl := range custom {
		t.abbreviations[abbrev] = repl
	}
	for abbrev := range t.abbreviations {
		runes := []rune(abbrev)
		for i := 1; i <= len(runes); i++ {
			t.prefixes[string(runes[:i])] = struct{}{}
		}
	}
	return t
}

// Len returns the number of abbreviations.
func (t *Table) Len() int { return len(t.abbreviations) }

// IsPrefix reports whether text is a prefix of some abbreviation.
func (t *Table) IsPrefix(text string) bool {
	_, ok := t.prefixes[text]
	return ok
}

// IsComplete reports whether text is an abbreviation and not a proper
// prefix of a longer one.
func (t *Table) IsComplete(text string) bool {
	if _, ok := t.abbreviations[text]; !ok {
		return false
	}
	for abbrev := range t.abbreviations {
		if len(abbrev) > len(text) && strings.HasPrefix(abbrev, text) {
			return false
		}
	}
	return true
}

// Replacement returns the unicode replacement for an abbreviation.
func (t *Table) Replacement(text string) (string, bool) {
	repl, ok := t.abbreviations[text]
	return repl, ok
}

// ShortestMatch returns the shortest abbreviation that is a prefix of
// text.
func (t *Table) ShortestMatch(text string) (string, bool) {
	runes := []rune(text)
	for i := 1; i <= len(runes); i++ {
		prefix := string(runes[:i])
		if _, ok := t.abbreviations[prefix]; ok {
			return prefix, true
		}
	}
	return "", false
}

// Abbreviations returns all abbreviations in sorted order, for
// display in a reference listing.
func (t *Table) Abbreviations() []string {
	out := make([]string, 0, len(t.abbreviations))
	for abbrev := range t.abbreviations {
		out = append(out, abbrev)
	}
	sort.Strings(out)
	return out
}

// defaultAbbreviations is the bundled translation table.
var defaultAbbreviations = map[string]string{
	// Greek letters
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "upsilon": "υ", "phi": "φ",
	"chi": "χ", "psi": "ψ", "omega": "ω",

	// Capital Greek
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Phi": "Φ",
	"Psi": "Ψ", "Omega": "Ω",

	// Logic
	"forall": "∀", "exists": "∃",
	"not": "¬", "and": "∧", "or": "∨",
	"top": "⊤", "bot": "⊥",

	// Arrows
	"to": "→", "lr": "↔", "ud": "↕",
	"r": "→", "l": "←", "u": "↑", "d": "↓",
	"=>": "⇒", "<=": "⇐", "iff": "↔",
	"mapsto": "↦", "implies": "→",

	// Relations
	"le": "≤", "ge": "≥", "ne": "≠",
	"sim": "∼", "equiv": "≡", "approx": "≈", "cong": "≅",
	"subset": "⊂", "supset": "⊃",
	"subseteq": "⊆", "supseteq": "⊇",
	"in": "∈", "notin": "∉",
	"cap": "∩", "cup": "∪",

	// Operators
	"times": "×", "div": "÷",
	"pm": "±", "mp": "∓",
	"cdot": "·", "circ": "∘",
	"oplus": "⊕", "ominus": "⊖", "otimes": "⊗", "odot": "⊙",

	// Brackets
	"<>": "⟨⟩",
	"<<": "⟪", ">>": "⟫",
	"[[": "⟦", "]]": "⟧",

	// Other
	"inf": "∞", "int": "∫",
	"partial": "∂", "nabla": "∇",
	"sum": "∑", "prod": "∏",
	"sqcup": "⊔", "sqcap": "⊓",
	"emptyset": "∅",
	"N": "ℕ", "Z": "ℤ", "Q": "ℚ", "R": "ℝ", "C": "ℂ",
}
