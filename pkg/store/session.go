package store

// Stage is the conversation's position in the recommendation workflow.
// The orchestrator switches exhaustively over these values; adding a stage
// requires updating every consumer.
type Stage string

const (
	StageInit                   Stage = "INIT"
	StageAwaitingPreferences    Stage = "AWAITING_PREFERENCES"
	StageShowingRecommendations Stage = "SHOWING_RECOMMENDATIONS"
)

// MaxHistoryTurns caps the stored conversation history. Oldest turns are
// dropped first.
const MaxHistoryTurns = 10

// Turn is a single history entry.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// BookRecord is a verified, catalog-enriched recommendation ready to display.
// AmazonLink is set only when ISBN13 is set.
type BookRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	ISBN13      string   `json:"isbn13,omitempty"`
	Categories  []string `json:"categories"`
	Reasoning   string   `json:"reasoning"`
	AmazonLink  string   `json:"amazon_link,omitempty"`
}

// SessionDetails holds the per-session scratch data collected across turns.
type SessionDetails struct {
	PreferencesText     string            `json:"preferences_text,omitempty"`
	Entities            map[string]string `json:"nlp_entities,omitempty"`
	LastRecommendations []BookRecord      `json:"last_recommendations,omitempty"`
	LastVagueRequest    string            `json:"last_vague_request,omitempty"`
}

// Session is the per-user conversation state. Keyed by an opaque user id.
type Session struct {
	ID      string         `json:"id"`
	History []Turn         `json:"history"`
	Stage   Stage          `json:"stage"`
	Details SessionDetails `json:"details"`
}

// NewSession returns a fresh default session for an id.
func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		History: []Turn{},
		Stage:   StageInit,
		Details: SessionDetails{},
	}
}

// Clone returns an independent copy of the session. In-process repositories
// hand out clones so callers cannot mutate stored state before Save.
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:    s.ID,
		Stage: s.Stage,
		Details: SessionDetails{
			PreferencesText:  s.Details.PreferencesText,
			LastVagueRequest: s.Details.LastVagueRequest,
		},
	}
	if s.History != nil {
		clone.History = append([]Turn(nil), s.History...)
	}
	if s.Details.Entities != nil {
		clone.Details.Entities = make(map[string]string, len(s.Details.Entities))
		for k, v := range s.Details.Entities {
			clone.Details.Entities[k] = v
		}
	}
	if s.Details.LastRecommendations != nil {
		clone.Details.LastRecommendations = append([]BookRecord(nil), s.Details.LastRecommendations...)
	}
	return clone
}

// AppendTurn appends a history entry and trims to the most recent
// MaxHistoryTurns.
func (s *Session) AppendTurn(role, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content})
	if len(s.History) > MaxHistoryTurns {
		s.History = s.History[len(s.History)-MaxHistoryTurns:]
	}
}

// Reset replaces the session state with a fresh one seeded with the
// triggering message. Used by the "start over" transition.
func (s *Session) Reset(seedMessage string) {
	s.History = []Turn{{Role: "user", Content: seedMessage}}
	s.Stage = StageInit
	s.Details = SessionDetails{}
}
