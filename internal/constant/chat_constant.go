package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Reply copy. Wording is part of the product surface; change with care.
const (
	GreetingMessage = "Hi! I'm here to help you discover your next great read. How can I help? You can tell me about genres you like, authors, or a book you recently enjoyed."

	ClarificationMessage = "I'd love to help you find your next great read! To provide the most relevant recommendations, could you tell me a bit more about what you're looking for?"

	RecommendationsFoundMessage    = "Here are a few recommendations I found based on your request:"
	NewRecommendationsFoundMessage = "Based on your new request, here are some recommendations:"

	NoDetailsFoundMessage = "I came up with some ideas, but couldn't find specific book details for them right now. Could you try rephrasing your request or specifying different criteria?"
	NoIdeasMessage        = "I couldn't generate recommendation ideas based on that right now. Please try different keywords or genres."

	NoStoredRecommendationsMessage = "I don't have the previous recommendations handy to give more detail. Could you ask for new ones?"

	DifferentRequestMessage = "Okay, what else are you looking for? Please tell me about genres, authors, or books you enjoy."
	StartOverMessage        = "Let's start over! How can I help you find your next great read?"

	FallbackMessage = "Sorry, I wasn't sure how to proceed from there. Could you clarify? You can ask for recommendations by genre, author, or similar books."
)

// GreetingSuggestions is the fixed 8-item menu shown after a greeting or a
// reset.
var GreetingSuggestions = []string{
	"Suggest Fantasy Books",
	"Recommend Sci-Fi",
	"Books like The Hobbit",
	"Mystery Novels",
	"Contemporary Fiction",
	"Bestsellers This Year",
	"Historical Fiction",
	"Books by Female Authors",
}

// RetrySuggestions is shown when the pipeline produced no usable books.
var RetrySuggestions = []string{
	"Try Fantasy genre",
	"Suggest popular books",
	"Recommend Thriller books",
}

// NoDetailsSuggestions is shown when ideas existed but the catalog found
// nothing.
var NoDetailsSuggestions = []string{
	"Try Fantasy genre",
	"Suggest popular Sci-Fi",
	"Recommend Thriller books",
}

// ShowingSuggestions accompanies a successful recommendation list.
var ShowingSuggestions = []string{
	"Tell me more about #1",
	"Show different recommendations",
	"Start Over",
}

// DetailFollowupSuggestions is shown after a "tell me more" reply.
var DetailFollowupSuggestions = []string{
	"Show different recommendations",
	"Start Over",
}

// DifferentRequestSuggestions is shown when the user asks for something else.
var DifferentRequestSuggestions = []string{
	"Fantasy recommendations",
	"Sci-Fi books",
	"Popular Thrillers",
}

// FallbackSuggestions is the default menu for unhandled stage/intent
// combinations.
var FallbackSuggestions = []string{
	"Suggest Fantasy Books",
	"Recommend Sci-Fi",
	"Books like The Hobbit",
	"Popular mystery novels",
}
