package store

import (
	"fmt"
	"testing"
)

func TestAppendTurnTrimsOldest(t *testing.T) {
	session := NewSession("u1")

	for i := 0; i < MaxHistoryTurns+4; i++ {
		session.AppendTurn("user", fmt.Sprintf("message %d", i))
	}

	if len(session.History) != MaxHistoryTurns {
		t.Fatalf("len(History) = %d, want %d", len(session.History), MaxHistoryTurns)
	}
	if session.History[0].Content != "message 4" {
		t.Errorf("oldest retained = %q, want %q", session.History[0].Content, "message 4")
	}
	if session.History[MaxHistoryTurns-1].Content != fmt.Sprintf("message %d", MaxHistoryTurns+3) {
		t.Errorf("newest = %q", session.History[MaxHistoryTurns-1].Content)
	}
}

func TestResetSeedsHistory(t *testing.T) {
	session := NewSession("u1")
	session.Stage = StageShowingRecommendations
	session.AppendTurn("user", "old")
	session.Details.LastRecommendations = []BookRecord{{Title: "Old"}}
	session.Details.PreferencesText = "old prefs"

	session.Reset("start over")

	if session.Stage != StageInit {
		t.Errorf("Stage = %s, want %s", session.Stage, StageInit)
	}
	if len(session.History) != 1 || session.History[0].Content != "start over" {
		t.Errorf("History = %+v", session.History)
	}
	if session.Details.LastRecommendations != nil || session.Details.PreferencesText != "" {
		t.Errorf("Details survived reset: %+v", session.Details)
	}
}
