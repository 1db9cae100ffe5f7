package recommend

import (
	"context"
	"testing"

	"bookgpt-be/internal/pkg/logger"
)

func TestParseIdeas(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		max         int
		wantCount   int
		wantOutcome Outcome
	}{
		{
			name:        "plain payload",
			raw:         `{"recommendations":[{"title":"Dune","author":"Frank Herbert","reasoning":"Classic."}]}`,
			max:         5,
			wantCount:   1,
			wantOutcome: OutcomeOK,
		},
		{
			name: "json code fence",
			raw: "```json\n" +
				`{"recommendations":[{"title":"Dune","author":"Frank Herbert","reasoning":"Classic."}]}` +
				"\n```",
			max:         5,
			wantCount:   1,
			wantOutcome: OutcomeOK,
		},
		{
			name: "bare code fence",
			raw: "```\n" +
				`{"recommendations":[{"title":"Dune","author":"Frank Herbert","reasoning":"Classic."}]}` +
				"\n```",
			max:         5,
			wantCount:   1,
			wantOutcome: OutcomeOK,
		},
		{
			name:        "not json",
			raw:         "Here are some books you might enjoy!",
			max:         5,
			wantCount:   0,
			wantOutcome: OutcomeBadPayload,
		},
		{
			name:        "missing recommendations key",
			raw:         `{"books":[{"title":"Dune"}]}`,
			max:         5,
			wantCount:   0,
			wantOutcome: OutcomeBadPayload,
		},
		{
			name:        "empty recommendations array",
			raw:         `{"recommendations":[]}`,
			max:         5,
			wantCount:   0,
			wantOutcome: OutcomeEmpty,
		},
		{
			name: "overlong list is truncated",
			raw: `{"recommendations":[` +
				`{"title":"A"},{"title":"B"},{"title":"C"},{"title":"D"}]}`,
			max:         2,
			wantCount:   2,
			wantOutcome: OutcomeOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ideas, outcome := ParseIdeas(tt.raw, tt.max)
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %s, want %s", outcome, tt.wantOutcome)
			}
			if len(ideas) != tt.wantCount {
				t.Errorf("len(ideas) = %d, want %d", len(ideas), tt.wantCount)
			}
		})
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	generator := NewGenerator(nil, logger.NewZapLogger(t.TempDir()+"/app.log", false))

	ideas, outcome := generator.Generate(context.Background(), map[string]string{"genre": "Fantasy"}, nil, 5)
	if outcome != OutcomeUnconfigured {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeUnconfigured)
	}
	if len(ideas) != 0 {
		t.Errorf("len(ideas) = %d, want 0", len(ideas))
	}
}
