package nlp

import (
	"testing"
	"time"
)

func TestIsVague(t *testing.T) {
	evaluator := NewEvaluator()

	tests := []struct {
		name     string
		message  string
		entities map[string]string
		want     bool
	}{
		{
			name:     "bare ask is vague",
			message:  "tell me something",
			entities: map[string]string{},
			want:     true,
		},
		{
			name:     "recommend alone is a book reference phrase but too short",
			message:  "recommend a book",
			entities: map[string]string{},
			want:     true,
		},
		{
			name:     "genre keyword defeats vagueness",
			message:  "I want fantasy",
			entities: map[string]string{},
			want:     false,
		},
		{
			name:     "extracted genre entity defeats vagueness",
			message:  "tell me something",
			entities: map[string]string{EntityGenre: "Mystery"},
			want:     false,
		},
		{
			name:     "author phrase defeats vagueness",
			message:  "something written by Tolkien",
			entities: map[string]string{},
			want:     false,
		},
		{
			name:     "book reference needs more than three words",
			message:  "like dune",
			entities: map[string]string{},
			want:     true,
		},
		{
			name:     "book reference with enough words",
			message:  "something like dune please",
			entities: map[string]string{},
			want:     false,
		},
		{
			name:     "mood phrase defeats vagueness",
			message:  "an uplifting story",
			entities: map[string]string{},
			want:     false,
		},
		{
			name:     "time phrase defeats vagueness",
			message:  "a victorian story",
			entities: map[string]string{},
			want:     false,
		},
		{
			name:     "long request defeats vagueness on word count alone",
			message:  "please find me a great pick for my upcoming trip",
			entities: map[string]string{},
			want:     false,
		},
		{
			name:     "detailed request with several signals",
			message:  "I love historical fiction about ancient Rome with strong female leads",
			entities: map[string]string{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.IsVague(tt.message, tt.entities)
			if got != tt.want {
				t.Errorf("IsVague(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestRotateSuggestionsPicksOnePerPool(t *testing.T) {
	for seed := 0; seed < 4; seed++ {
		got := RotateSuggestions(seed)
		if len(got) != 4 {
			t.Fatalf("seed %d: got %d suggestions, want 4", seed, len(got))
		}
		if got[0] != genreSuggestions[seed%4] {
			t.Errorf("seed %d: genre slot = %q, want %q", seed, got[0], genreSuggestions[seed%4])
		}
		if got[1] != authorSuggestions[(seed+1)%4] {
			t.Errorf("seed %d: author slot = %q, want %q", seed, got[1], authorSuggestions[(seed+1)%4])
		}
		if got[2] != moodSuggestions[(seed+2)%4] {
			t.Errorf("seed %d: mood slot = %q, want %q", seed, got[2], moodSuggestions[(seed+2)%4])
		}
		if got[3] != specificSuggestions[(seed+3)%4] {
			t.Errorf("seed %d: specific slot = %q, want %q", seed, got[3], specificSuggestions[(seed+3)%4])
		}
	}
}

func TestClarificationSuggestionsUsesInjectedClock(t *testing.T) {
	for seed := 0; seed < 4; seed++ {
		fixed := time.Unix(int64(100+seed), 0)
		evaluator := NewEvaluatorWithClock(func() time.Time { return fixed })

		got := evaluator.ClarificationSuggestions()
		want := RotateSuggestions(int(fixed.Unix() % 4))
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("seed %d slot %d: got %q, want %q", seed, i, got[i], want[i])
			}
		}
	}
}
