package nlp

import (
	"strings"

	"bookgpt-be/pkg/store"
)

// Intent is the coarse classification of what the user wants this turn.
type Intent string

const (
	IntentGreeting              Intent = "GREETING"
	IntentRequestRecommendation Intent = "REQUEST_RECOMMENDATION"
	IntentRequestSimilar        Intent = "REQUEST_SIMILAR"
	IntentUnknown               Intent = "UNKNOWN"
)

// Entity keys extracted from free text.
const (
	EntityGenre           = "genre"
	EntityCategory        = "category"
	EntityAuthorAttribute = "author_attribute"
	EntitySimilarTo       = "similar_to"
)

// ClassificationResult is the per-turn output of Classify. Ephemeral.
type ClassificationResult struct {
	Intent         Intent
	Entities       map[string]string
	RefinedMessage string // original text, reserved for future rewriting
}

// recommendationKeywords is deliberately wide so suggestion-button text and
// loose phrasing both land on REQUEST_RECOMMENDATION.
var recommendationKeywords = []string{
	"book", "recommend", "read", "suggest", "mystery", "fantasy",
	"sci-fi", "fiction", "novel", "like", "books", "thriller", "genre",
	"bestseller", "this year", "bestsellers", "historical", "female",
	"contemporary", "popular", "author", "hobbit",
}

var similarKeywords = []string{"similar", "another"}

var greetingKeywords = []string{"hi", "hello", "hey"}

// SuggestionPhrases are the canonical suggestion-button texts. An exact
// (lower-cased) match always counts as a recommendation request, whatever the
// keyword scan said.
var SuggestionPhrases = []string{
	"suggest fantasy books", "recommend sci-fi", "books like the hobbit",
	"mystery novels", "contemporary fiction", "bestsellers this year",
	"historical fiction", "books by female authors", "popular mystery novels",
}

// Classify maps a raw message plus the current stage to an intent and a set
// of extracted entities. Deterministic, no I/O.
func Classify(text string, currentStage store.Stage) ClassificationResult {
	result := ClassificationResult{
		Intent:         IntentUnknown,
		Entities:       map[string]string{},
		RefinedMessage: text,
	}

	if strings.TrimSpace(text) == "" && currentStage == store.StageInit {
		result.Intent = IntentGreeting
		return result
	}

	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, recommendationKeywords):
		result.Intent = IntentRequestRecommendation
	case containsAny(lower, similarKeywords):
		result.Intent = IntentRequestSimilar
	case containsAny(lower, greetingKeywords):
		result.Intent = IntentGreeting
	}

	result.Entities = ExtractEntities(lower)

	if IsSuggestionPhrase(lower) {
		result.Intent = IntentRequestRecommendation
	}

	return result
}

// ExtractEntities scans a lower-cased message for trigger phrases and maps
// them to canonical entity values. Later triggers overwrite earlier ones for
// the same key (last match wins in scan order). Shared by the classifier and
// the orchestrator's suggestion-phrase fallback so the trigger tables exist
// only once.
func ExtractEntities(lower string) map[string]string {
	entities := map[string]string{}

	if strings.Contains(lower, "sci-fi") || strings.Contains(lower, "science fiction") {
		entities[EntityGenre] = "Science Fiction"
	}
	if strings.Contains(lower, "fantasy") {
		entities[EntityGenre] = "Fantasy"
	}
	if strings.Contains(lower, "thriller") {
		entities[EntityGenre] = "Thriller"
	}
	if strings.Contains(lower, "mystery") {
		entities[EntityGenre] = "Mystery"
	}
	if strings.Contains(lower, "bestseller") || strings.Contains(lower, "this year") {
		entities[EntityCategory] = "Bestsellers"
	}
	if strings.Contains(lower, "historical") && strings.Contains(lower, "fiction") {
		entities[EntityGenre] = "Historical Fiction"
	}
	if strings.Contains(lower, "female") && strings.Contains(lower, "author") {
		entities[EntityAuthorAttribute] = "Female"
	}
	if strings.Contains(lower, "contemporary") {
		entities[EntityGenre] = "Contemporary Fiction"
	}
	if strings.Contains(lower, "hobbit") {
		entities[EntitySimilarTo] = "The Hobbit"
	}

	return entities
}

// IsSuggestionPhrase reports whether the lower-cased message exactly matches
// a canonical suggestion-button phrase.
func IsSuggestionPhrase(lower string) bool {
	for _, phrase := range SuggestionPhrases {
		if lower == phrase {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
