package leanlsp

import "testing"

func TestSelectorMatches(t *testing.T) {
	sel := DefaultSelector()

	tests := []struct {
		path string
		want bool
	}{
		{"example.lean", true},
		{"/home/user/Proofs/Nat/Basic.lean", true},
		{"UPPER.LEAN", true},
		{"example.py", false},
		{"example.go", false},
		{"lean", false}, // no extension
		{"example.lean.bak", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := sel.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSelectorMatchesLanguage(t *testing.T) {
	sel := DefaultSelector()

	tests := []struct {
		id   string
		want bool
	}{
		{"lean4", true},
		{"lean", true},
		{"python", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := sel.MatchesLanguage(tt.id); got != tt.want {
			t.Errorf("MatchesLanguage(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSelectorEmpty(t *testing.T) {
	if DefaultSelector().Empty() {
		t.Error("default selector should not be empty")
	}
	if !(Selector{}).Empty() {
		t.Error("zero selector should be empty")
	}
	if (Selector{LanguageIDs: []string{"lean4"}}).Empty() {
		t.Error("selector with language ids is not empty")
	}
}
