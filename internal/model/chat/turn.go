package chat

import (
	"time"

	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

// Provenance labels which selector rule produced a response.
type Provenance string

const (
	ProvenanceCrisis   Provenance = "crisis"
	ProvenanceStressor Provenance = "stressor"
	ProvenanceEmotion  Provenance = "emotion"
	ProvenanceGreeting Provenance = "greeting"
	ProvenanceGeneral  Provenance = "general"
)

// Response is the emitted text plus enough provenance for the context
// tracker to avoid repeating the same sub-variant later in the session.
type Response struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`

	// Emotion/Stressor identify the category a rule fired on; empty when the
	// rule has no category.
	Emotion  lexicon.Emotion  `json:"emotion,omitempty"`
	Stressor lexicon.Stressor `json:"stressor,omitempty"`

	// TemplateIndex is the index of the chosen template within its category
	// set, -1 for fixed texts (crisis, exhausted-remedy fallback).
	TemplateIndex int `json:"templateIndex"`

	// Question is set when a follow-up question was asked, so the category is
	// not asked again this session.
	Question lexicon.QuestionCategory `json:"question,omitempty"`
}

// Turn pairs one user message with the signals extracted from it, the context
// snapshot used to answer it, and the chosen response. Turns form an
// append-only sequence owned by the session.
type Turn struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	Number    int        `json:"number"`
	Message   Message    `json:"message"`
	Signals   signal.Set `json:"signals"`
	Context   string     `json:"context"`
	Response  Response   `json:"response"`
	CreatedAt time.Time  `json:"createdAt"`
}

// MoodPoint is one (timestamp, sentiment) pair from the persisted mood log.
type MoodPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Sentiment float64   `json:"sentiment"`
}
