package unicode

import "strings"

// How far Convert looks back from the cursor for a leader.
const convertLookback = 20

// Options configure the expander. DefaultOptions matches the standard
// Lean editor behavior.
type Options struct {
	// Enabled turns abbreviation input on. A disabled expander ignores
	// all typed input.
	Enabled bool
	// Leader starts an abbreviation sequence.
	Leader string
	// Ender commits the pending abbreviation when typed.
	Ender string
	// Eager commits an abbreviation as soon as it is unambiguous,
	// without waiting for the ender.
	Eager bool
}

// DefaultOptions returns the shipped expander configuration.
func DefaultOptions() Options {
	return Options{Enabled: true, Leader: `\`, Ender: "\t"}
}

// OptionsFromSettings reads the expander configuration from a
// descriptor settings table, falling back to the defaults.
func OptionsFromSettings(settings map[string]any) Options {
	opts := DefaultOptions()
	if v, ok := settings["unicode_input_enabled"].(bool); ok {
		opts.Enabled = v
	}
	if v, ok := settings["unicode_input_leader"].(string); ok && v != "" {
		opts.Leader = v
	}
	if v, ok := settings["unicode_input_ender"].(string); ok && v != "" {
		opts.Ender = v
	}
	if v, ok := settings["unicode_input_eager_replacement"].(bool); ok {
		opts.Eager = v
	}
	return opts
}

// CustomTranslations extracts the custom abbreviation table from a
// descriptor settings table. Non-string entries are skipped.
func CustomTranslations(settings map[string]any) map[string]string {
	raw, ok := settings["unicode_input_custom_translations"].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for abbrev, v := range raw {
		if repl, ok := v.(string); ok {
			out[abbrev] = repl
		}
	}
	return out
}

// Expansion describes a completed abbreviation. The editor replaces
// Span runes ending at the cursor with Text.
type Expansion struct {
	// Abbreviation is the committed abbreviation, without leader or
	// ender.
	Abbreviation string
	// Text is the unicode replacement.
	Text string
	// Span is the number of runes to replace, counting the leader and
	// any consumed ender.
	Span int
}

// Expander tracks an abbreviation sequence as the user types. Feed
// each typed rune to TypeRune; when the cursor leaves the sequence
// call Leave. The expander is a per-view state machine and is not safe
// for concurrent use.
type Expander struct {
	table *Table
	opts  Options

	leaderBuf []rune
	pending   []rune
	active    bool
}

// NewExpander creates an expander over a table.
func NewExpander(table *Table, opts Options) *Expander {
	if opts.Leader == "" {
		opts.Leader = DefaultOptions().Leader
	}
	return &Expander{table: table, opts: opts}
}

// Pending returns the abbreviation typed so far, without the leader.
func (e *Expander) Pending() (string, bool) {
	return string(e.pending), e.active
}

// Reset abandons any pending abbreviation.
func (e *Expander) Reset() {
	e.leaderBuf = nil
	e.pending = nil
	e.active = false
}

// Type feeds a string of typed text and collects the resulting
// expansions.
func (e *Expander) Type(text string) []Expansion {
	var out []Expansion
	for _, r := range text {
		if exp, ok := e.TypeRune(r); ok {
			out = append(out, exp)
		}
	}
	return out
}

// TypeRune feeds one typed rune. It returns a completed expansion when
// the rune finishes an abbreviation.
func (e *Expander) TypeRune(r rune) (Expansion, bool) {
	if !e.opts.Enabled {
		return Expansion{}, false
	}
	if !e.active {
		e.feedLeader(r)
		return Expansion{}, false
	}

	candidate := string(append(append([]rune{}, e.pending...), r))

	// The ender commits an exact abbreviation and is consumed with it.
	if e.opts.Ender != "" && strings.HasSuffix(candidate, e.opts.Ender) {
		abbrev := strings.TrimSuffix(candidate, e.opts.Ender)
		if repl, ok := e.table.Replacement(abbrev); ok {
			exp := Expansion{
				Abbreviation: abbrev,
				Text:         repl,
				Span:         len([]rune(e.opts.Leader)) + len([]rune(candidate)),
			}
			e.Reset()
			return exp, true
		}
	}

	if !e.table.IsPrefix(candidate) {
		// Not an abbreviation; abandon and let the rune start a new
		// leader sequence.
		e.Reset()
		e.feedLeader(r)
		return Expansion{}, false
	}

	e.pending = append(e.pending, r)
	if e.opts.Eager && e.table.IsComplete(candidate) {
		repl, _ := e.table.Replacement(candidate)
		exp := Expansion{
			Abbreviation: candidate,
			Text:         repl,
			Span:         len([]rune(e.opts.Leader)) + len([]rune(candidate)),
		}
		e.Reset()
		return exp, true
	}
	return Expansion{}, false
}

// feedLeader advances leader matching with a typed rune.
func (e *Expander) feedLeader(r rune) {
	e.leaderBuf = append(e.leaderBuf, r)
	if string(e.leaderBuf) == e.opts.Leader {
		e.leaderBuf = nil
		e.pending = nil
		e.active = true
		return
	}
	if !strings.HasPrefix(e.opts.Leader, string(e.leaderBuf)) {
		// Retry with just this rune so a run like "x\" still starts a
		// sequence.
		e.leaderBuf = nil
		if strings.HasPrefix(e.opts.Leader, string(r)) {
			e.leaderBuf = []rune{r}
			if string(e.leaderBuf) == e.opts.Leader {
				e.leaderBuf = nil
				e.active = true
			}
		}
	}
}

// Leave commits the pending abbreviation, if it is one, when the
// cursor moves out of the sequence.
func (e *Expander) Leave() (Expansion, bool) {
	if !e.active {
		return Expansion{}, false
	}
	abbrev := string(e.pending)
	e.Reset()

	repl, ok := e.table.Replacement(abbrev)
	if !ok {
		return Expansion{}, false
	}
	return Expansion{
		Abbreviation: abbrev,
		Text:         repl,
		Span:         len([]rune(e.opts.Leader)) + len([]rune(abbrev)),
	}, true
}

// Convert performs a manual conversion at the cursor, scanning the
// text before it for the most recent leader and replacing the shortest
// abbreviation that follows it. It returns the rune offset of the
// leader within text and the expansion. Runes typed after the matched
// abbreviation are left in place.
func (e *Expander) Convert(text string) (int, Expansion, bool) {
	if !e.opts.Enabled {
		return 0, Expansion{}, false
	}
	runes := []rune(text)
	start := 0
	if len(runes) > convertLookback {
		start = len(runes) - convertLookback
	}
	window := string(runes[start:])

	leaderPos := strings.LastIndex(window, e.opts.Leader)
	if leaderPos < 0 {
		return 0, Expansion{}, false
	}
	leaderRunes := len([]rune(window[:leaderPos]))
	abbrevText := window[leaderPos+len(e.opts.Leader):]

	match, ok := e.table.ShortestMatch(abbrevText)
	if !ok {
		return 0, Expansion{}, false
	}
	repl, _ := e.table.Replacement(match)
	return start + leaderRunes, Expansion{
		Abbreviation: match,
		Text:         repl,
		Span:         len([]rune(e.opts.Leader)) + len([]rune(match)),
	}, true
}
