package events

import "time"

// Analytics event types emitted by the chat orchestrator.
const (
	TypeChatTurn             = "CHAT_TURN"
	TypeRecommendationsShown = "RECOMMENDATIONS_SHOWN"
)

// NewChatTurn records one completed conversation turn.
func NewChatTurn(userID, intent, stageBefore, stageAfter string, vague bool) BaseEvent {
	return BaseEvent{
		Type: TypeChatTurn,
		Data: map[string]interface{}{
			"user_id":      userID,
			"intent":       intent,
			"stage_before": stageBefore,
			"stage_after":  stageAfter,
			"vague":        vague,
		},
		OccurredAt: time.Now(),
	}
}

// NewRecommendationsShown records a successful pipeline run surfacing books.
func NewRecommendationsShown(userID string, count int, titles []string) BaseEvent {
	return BaseEvent{
		Type: TypeRecommendationsShown,
		Data: map[string]interface{}{
			"user_id": userID,
			"count":   count,
			"titles":  titles,
		},
		OccurredAt: time.Now(),
	}
}
