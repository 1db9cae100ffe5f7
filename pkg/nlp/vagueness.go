package nlp

import (
	"strings"
	"time"
)

// Keyword tables for the vagueness check. A recommendation request is vague
// unless at least one signal below is present.

var genreKeywords = []string{
	"fiction", "mystery", "romance", "biography", "history",
	"children", "young adult", "ya", "fantasy", "sci-fi",
	"science fiction", "thriller", "horror", "literary",
	"contemporary", "classic", "crime", "non-fiction",
	"memoir", "poetry", "adventure", "dystopian", "historical",
}

var authorPhrases = []string{
	"by author", "written by", "books by", "author", "writer",
	"novels by", "works by", "published by", "wrote",
}

var bookReferencePhrases = []string{
	"like", "similar to", "resembles", "reminds me of", "same as",
	"in the style of", "comparable to", "books like", "series like",
	"enjoyed", "loved", "read", "finished", "recommend",
}

var moodPhrases = []string{
	"happy", "sad", "uplifting", "dark", "funny", "humorous",
	"serious", "light", "deep", "thought-provoking", "inspiring",
	"relaxing", "exciting", "suspenseful", "scary", "romantic",
}

var timePhrases = []string{
	"modern", "contemporary", "classic", "ancient", "medieval",
	"19th century", "20th century", "victorian", "recent",
	"new", "old", "latest", "antique", "retro", "futuristic",
}

const detailedRequestWordThreshold = 6

// Evaluator decides whether a recommendation request carries enough signal
// to search on. The clock is injected so suggestion rotation is testable.
type Evaluator struct {
	now func() time.Time
}

// NewEvaluator returns an Evaluator using the wall clock.
func NewEvaluator() *Evaluator {
	return &Evaluator{now: time.Now}
}

// NewEvaluatorWithClock returns an Evaluator with an injected clock.
func NewEvaluatorWithClock(now func() time.Time) *Evaluator {
	return &Evaluator{now: now}
}

// IsVague reports whether the message lacks enough signal to search on.
// Applied only to REQUEST_RECOMMENDATION messages in INIT or
// AWAITING_PREFERENCES.
func (e *Evaluator) IsVague(message string, entities map[string]string) bool {
	lower := strings.ToLower(message)
	wordCount := len(strings.Fields(message))

	hasEntities := entities[EntityGenre] != "" ||
		entities["author"] != "" ||
		entities["similar_book"] != ""
	hasGenre := containsAny(lower, genreKeywords)
	hasAuthor := containsAny(lower, authorPhrases)
	hasBookReference := containsAny(lower, bookReferencePhrases) && wordCount > 3
	hasMood := containsAny(lower, moodPhrases)
	hasTimeReference := containsAny(lower, timePhrases)
	isDetailedRequest := wordCount > detailedRequestWordThreshold

	if hasEntities || hasGenre || hasAuthor || hasBookReference || hasMood || hasTimeReference || isDetailedRequest {
		return false
	}
	return true
}

// Clarification suggestion pools. One item per pool is surfaced per vague
// turn, rotated so repeated vague turns show different examples.

var genreSuggestions = [4]string{
	"I enjoy fantasy books with dragons",
	"I'm looking for historical fiction set in ancient Rome",
	"Recommend me a cozy mystery novel",
	"I want a science fiction book about space exploration",
}

var authorSuggestions = [4]string{
	"I like books similar to Neil Gaiman's style",
	"Recommend something by Agatha Christie",
	"I enjoy authors like Brandon Sanderson",
	"Books written by female science fiction authors",
}

var moodSuggestions = [4]string{
	"I need an uplifting book that's not too long",
	"Looking for a suspenseful thriller with unexpected twists",
	"Something funny and lighthearted for vacation",
	"A thought-provoking book about philosophy",
}

var specificSuggestions = [4]string{
	"Books like The Night Circus but with more adventure",
	"Fantasy series with well-developed magic systems",
	"A standalone novel with beautiful prose and character development",
	"Recent award-winning fiction books from the last 2 years",
}

// ClarificationSuggestions returns one example per pool, rotated by the
// current time so consecutive vague turns surface different items.
func (e *Evaluator) ClarificationSuggestions() []string {
	return RotateSuggestions(int(e.now().Unix() % 4))
}

// RotateSuggestions is the pure rotation: pool i is indexed at
// (seed + i) mod 4.
func RotateSuggestions(seed int) []string {
	return []string{
		genreSuggestions[seed%4],
		authorSuggestions[(seed+1)%4],
		moodSuggestions[(seed+2)%4],
		specificSuggestions[(seed+3)%4],
	}
}
