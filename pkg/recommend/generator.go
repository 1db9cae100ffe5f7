package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bookgpt-be/internal/pkg/logger"
	"bookgpt-be/pkg/llm"
	"bookgpt-be/pkg/store"
)

// Idea is an unverified title/author/reasoning triple proposed by the model.
type Idea struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Reasoning string `json:"reasoning"`
}

// Outcome explains why a generation produced no ideas. Callers treat every
// non-OK outcome as a soft failure; no error ever crosses this boundary.
type Outcome string

const (
	OutcomeOK           Outcome = "OK"
	OutcomeUnconfigured Outcome = "UNCONFIGURED"
	OutcomeCallFailed   Outcome = "CALL_FAILED"
	OutcomeBadPayload   Outcome = "BAD_PAYLOAD"
	OutcomeEmpty        Outcome = "EMPTY"
)

const systemPrompt = `You are a helpful book recommendation assistant. Analyze the user's preferences and suggest relevant books.
Respond ONLY with a valid JSON object containing a 'recommendations' array. Do NOT include any introductory text or markdown formatting.
Each object in the array must have the following keys:
- "title": The exact book title.
- "author": The author(s) of the book.
- "reasoning": A short explanation (1-2 sentences) specifically explaining WHY this book fits the user's provided preferences.`

// tokensPerIdea bounds the completion size proportionally to the requested
// number of recommendations.
const tokensPerIdea = 250

// Generator asks the LLM for candidate book ideas. One attempt per
// invocation, no retry.
type Generator struct {
	provider llm.LLMProvider // nil when credentials are absent
	log      logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{provider: provider, log: log}
}

// Generate returns up to maxRecommendations ideas for the given preferences.
// The returned slice is empty for every non-OK outcome.
func (g *Generator) Generate(ctx context.Context, preferences map[string]string, history []store.Turn, maxRecommendations int) ([]Idea, Outcome) {
	if g.provider == nil {
		g.log.Warn("RECOMMEND", "LLM provider not configured, skipping generation", nil)
		return nil, OutcomeUnconfigured
	}

	prefBytes, err := json.Marshal(preferences)
	if err != nil {
		return nil, OutcomeBadPayload
	}

	userPrompt := fmt.Sprintf(`Based ONLY on the following user preferences: %s
Suggest %d diverse book recommendations. Provide the title, author, and reasoning for each suggestion in the specified JSON format.
Make sure your response is a valid parsable JSON object with a 'recommendations' key containing the array of book recommendations.`,
		string(prefBytes), maxRecommendations)

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	raw, err := g.provider.Chat(ctx, messages,
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(tokensPerIdea*maxRecommendations),
		llm.WithJSONOnly(),
	)
	if err != nil {
		g.log.Error("RECOMMEND", "LLM call failed", map[string]interface{}{"error": err.Error()})
		return nil, OutcomeCallFailed
	}

	ideas, outcome := ParseIdeas(raw, maxRecommendations)
	if outcome != OutcomeOK {
		g.log.Warn("RECOMMEND", "LLM response not usable", map[string]interface{}{
			"outcome": string(outcome),
		})
	}
	return ideas, outcome
}

// ParseIdeas extracts the recommendations array from the model's text.
// Tolerates a markdown code fence around the JSON object.
func ParseIdeas(raw string, maxRecommendations int) ([]Idea, Outcome) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		Recommendations []Idea `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, OutcomeBadPayload
	}
	if payload.Recommendations == nil {
		// Valid JSON but no 'recommendations' key.
		return nil, OutcomeBadPayload
	}
	if len(payload.Recommendations) == 0 {
		return nil, OutcomeEmpty
	}
	if len(payload.Recommendations) > maxRecommendations {
		payload.Recommendations = payload.Recommendations[:maxRecommendations]
	}
	return payload.Recommendations, OutcomeOK
}
