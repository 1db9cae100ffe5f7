package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"bookgpt-be/internal/constant"
	"bookgpt-be/internal/dto"
	"bookgpt-be/internal/pkg/logger"
	"bookgpt-be/internal/repository/contract"
	"bookgpt-be/pkg/events"
	"bookgpt-be/pkg/nlp"
	"bookgpt-be/pkg/recommend"
	"bookgpt-be/pkg/store"
)

// IChatService drives one conversation turn.
type IChatService interface {
	HandleTurn(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

// IdeaGenerator is the generative-model boundary. Empty ideas with a non-OK
// outcome is a soft failure, never an error.
type IdeaGenerator interface {
	Generate(ctx context.Context, preferences map[string]string, history []store.Turn, maxRecommendations int) ([]recommend.Idea, recommend.Outcome)
}

// BookResolver is the catalog boundary. Unresolvable ideas are dropped.
type BookResolver interface {
	ResolveAll(ctx context.Context, ideas []recommend.Idea) []store.BookRecord
}

type chatService struct {
	sessions  contract.SessionRepository
	evaluator *nlp.Evaluator
	generator IdeaGenerator
	resolver  BookResolver
	publisher IPublisherService
	log       logger.ILogger
	maxBooks  int

	// Serializes turns per session id. Two concurrent turns for one user
	// would otherwise race on read-modify-write of the session.
	sessionLocks sync.Map
}

func NewChatService(
	sessions contract.SessionRepository,
	evaluator *nlp.Evaluator,
	generator IdeaGenerator,
	resolver BookResolver,
	publisher IPublisherService,
	log logger.ILogger,
	maxBooks int,
) IChatService {
	return &chatService{
		sessions:  sessions,
		evaluator: evaluator,
		generator: generator,
		resolver:  resolver,
		publisher: publisher,
		log:       log,
		maxBooks:  maxBooks,
	}
}

// turnState accumulates the outgoing reply while the state machine runs.
type turnState struct {
	botMessage  string
	suggestions []string
	vague       bool
}

// HandleTurn is the per-turn driver: load session, classify, branch, run the
// pipeline when warranted, persist once, reply.
func (s *chatService) HandleTurn(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	lock := s.lockFor(request.UserId)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.Get(ctx, request.UserId)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	stageBefore := session.Stage
	s.log.Info("CHAT", "Turn received", map[string]interface{}{
		"user_id": request.UserId,
		"stage":   string(stageBefore),
	})

	// The user message always enters history (and is trimmed) before any
	// branching.
	session.AppendTurn(constant.ChatRoleUser, request.Message)

	cls := nlp.Classify(request.Message, stageBefore)

	turn := &turnState{suggestions: []string{}}

	switch {
	case cls.Intent == nlp.IntentGreeting && stageBefore == store.StageInit:
		s.handleGreeting(session, turn)

	case cls.Intent == nlp.IntentRequestRecommendation &&
		(stageBefore == store.StageInit || stageBefore == store.StageAwaitingPreferences):
		s.handleRecommendationRequest(ctx, session, request.Message, cls.Entities, turn)

	case stageBefore == store.StageShowingRecommendations:
		s.handleShowingFollowup(ctx, session, request.Message, cls.Entities, turn)

	default:
		s.handleFallback(ctx, session, request.Message, turn)
	}

	// The book payload is exactly the stored list while showing
	// recommendations, otherwise empty.
	books := []store.BookRecord{}
	if session.Stage == store.StageShowingRecommendations && session.Details.LastRecommendations != nil {
		books = session.Details.LastRecommendations
	}

	session.AppendTurn(constant.ChatRoleAssistant, turn.botMessage)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishEvent(ctx, events.NewChatTurn(
			request.UserId,
			string(cls.Intent),
			string(stageBefore),
			string(session.Stage),
			turn.vague,
		))
	}

	return &dto.ChatResponse{
		UserId:      request.UserId,
		BotMessage:  turn.botMessage,
		Suggestions: turn.suggestions,
		Books:       books,
	}, nil
}

func (s *chatService) lockFor(sessionID string) *sync.Mutex {
	actual, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// --- Stage branches ---

func (s *chatService) handleGreeting(session *store.Session, turn *turnState) {
	turn.botMessage = constant.GreetingMessage
	turn.suggestions = constant.GreetingSuggestions
	session.Stage = store.StageAwaitingPreferences
}

func (s *chatService) handleRecommendationRequest(ctx context.Context, session *store.Session, message string, entities map[string]string, turn *turnState) {
	if s.evaluator.IsVague(message, entities) {
		turn.vague = true
		turn.botMessage = constant.ClarificationMessage
		turn.suggestions = s.evaluator.ClarificationSuggestions()
		session.Stage = store.StageAwaitingPreferences
		session.Details.LastVagueRequest = message
		return
	}

	s.runPipeline(ctx, session, message, entities, constant.RecommendationsFoundMessage, turn)
}

func (s *chatService) handleShowingFollowup(ctx context.Context, session *store.Session, message string, entities map[string]string, turn *turnState) {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "more") || strings.Contains(lower, "detail") || strings.Contains(lower, "#1"):
		s.handleDetailRequest(session, message, turn)

	case strings.Contains(lower, "different") || strings.Contains(lower, "other") || strings.Contains(lower, "new"):
		turn.botMessage = constant.DifferentRequestMessage
		turn.suggestions = constant.DifferentRequestSuggestions
		session.Stage = store.StageAwaitingPreferences

	case strings.Contains(lower, "start") || strings.Contains(lower, "reset") || strings.Contains(lower, "over"):
		session.Reset(message)
		turn.botMessage = constant.StartOverMessage
		turn.suggestions = constant.GreetingSuggestions
		session.Stage = store.StageAwaitingPreferences

	default:
		// Anything else after showing recommendations is a brand-new request.
		s.runPipeline(ctx, session, message, entities, constant.NewRecommendationsFoundMessage, turn)
	}
}

// handleDetailRequest answers "tell me more about #N". The index comes from
// the first digit anywhere in the message, 1-based, defaulting to the first
// book when absent or out of range. That also means "book 2 and 3" picks 2;
// known quirk, kept deliberately.
func (s *chatService) handleDetailRequest(session *store.Session, message string, turn *turnState) {
	lastRecs := session.Details.LastRecommendations
	if len(lastRecs) == 0 {
		turn.botMessage = constant.NoStoredRecommendationsMessage
		turn.suggestions = constant.DetailFollowupSuggestions
		return
	}

	idx := 0
	if n, ok := firstDigit(message); ok && n-1 >= 0 && n-1 < len(lastRecs) {
		idx = n - 1
	}

	selected := lastRecs[idx]
	description := selected.Description
	if description == "" {
		description = "No further details available right now."
	}
	turn.botMessage = fmt.Sprintf("Okay, about '%s': %s", selected.Title, description)
	turn.suggestions = constant.DetailFollowupSuggestions
	// Stage stays SHOWING_RECOMMENDATIONS.
}

func (s *chatService) handleFallback(ctx context.Context, session *store.Session, message string, turn *turnState) {
	lower := strings.ToLower(message)

	if nlp.IsSuggestionPhrase(lower) {
		// A suggestion-button click the keyword scan missed; re-derive
		// entities from the same canonical tables and run the pipeline.
		entities := nlp.ExtractEntities(lower)
		success := fmt.Sprintf("Here are some %s that you might enjoy:", message)
		s.runPipeline(ctx, session, message, entities, success, turn)
		return
	}

	turn.botMessage = constant.FallbackMessage
	turn.suggestions = constant.FallbackSuggestions
	session.Stage = store.StageAwaitingPreferences
}

// --- Pipeline ---

// runPipeline is the shared generator→resolver invocation. On success the
// session moves to SHOWING_RECOMMENDATIONS; every soft failure falls back to
// AWAITING_PREFERENCES with a retry menu.
func (s *chatService) runPipeline(ctx context.Context, session *store.Session, message string, entities map[string]string, successMessage string, turn *turnState) {
	session.Details.PreferencesText = message
	session.Details.Entities = entities

	preferences := entities
	if len(preferences) == 0 {
		preferences = map[string]string{"raw_query": message}
	}

	ideas, outcome := s.generator.Generate(ctx, preferences, session.History, s.maxBooks)
	if outcome != recommend.OutcomeOK {
		s.log.Warn("CHAT", "Generator produced no ideas", map[string]interface{}{
			"user_id": session.ID,
			"outcome": string(outcome),
		})
		turn.botMessage = constant.NoIdeasMessage
		turn.suggestions = constant.RetrySuggestions
		session.Stage = store.StageAwaitingPreferences
		return
	}

	records := s.resolver.ResolveAll(ctx, ideas)
	if len(records) == 0 {
		turn.botMessage = constant.NoDetailsFoundMessage
		turn.suggestions = constant.NoDetailsSuggestions
		session.Stage = store.StageAwaitingPreferences
		return
	}

	turn.botMessage = successMessage
	turn.suggestions = constant.ShowingSuggestions
	session.Details.LastRecommendations = records
	session.Stage = store.StageShowingRecommendations

	if s.publisher != nil {
		titles := make([]string, len(records))
		for i, rec := range records {
			titles[i] = rec.Title
		}
		s.publisher.PublishEvent(ctx, events.NewRecommendationsShown(session.ID, len(records), titles))
	}
}

// firstDigit returns the first decimal digit character in the message.
func firstDigit(message string) (int, bool) {
	for _, r := range message {
		if r >= '0' && r <= '9' {
			return int(r - '0'), true
		}
	}
	return 0, false
}
