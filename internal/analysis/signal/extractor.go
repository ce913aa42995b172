// Package signal derives per-message signals for the dialogue engine:
// a VADER compound sentiment score plus keyword-matched emotion, stressor
// and crisis flags.
package signal

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

// Set holds everything extracted from a single message. Created fresh per
// message and never mutated afterward.
type Set struct {
	// Sentiment is the compound polarity in [-1, 1]; exactly 0 when the text
	// carries no recognized affect.
	Sentiment float64 `json:"sentiment"`

	// Emotions lists every matched emotion category in the fixed enumeration
	// order. A message may match zero, one, or many.
	Emotions []lexicon.Emotion `json:"emotions,omitempty"`

	// Stressor is the primary stressor: the first category in the fixed
	// enumeration order with any keyword match. Empty when none matched.
	Stressor lexicon.Stressor `json:"stressor,omitempty"`

	// Crisis is set when any crisis keyword occurs in the message.
	Crisis bool `json:"crisis"`
}

// PrimaryEmotion returns the highest-priority matched emotion.
func (s Set) PrimaryEmotion() (lexicon.Emotion, bool) {
	if len(s.Emotions) == 0 {
		return "", false
	}
	return s.Emotions[0], true
}

// Extractor is a pure function of the message text over fixed tables; it is
// safe for concurrent use.
type Extractor struct {
	tables    *lexicon.Tables
	sentiment *govader.SentimentIntensityAnalyzer
}

// NewExtractor builds an extractor over the supplied lexicon tables.
func NewExtractor(tables *lexicon.Tables) *Extractor {
	return &Extractor{
		tables:    tables,
		sentiment: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Extract analyzes one message. Matching is plain case-folded substring
// containment, so negated phrases ("I am not stressed") still match their
// keyword.
func (e *Extractor) Extract(text string) Set {
	normalized := strings.ToLower(strings.TrimSpace(text))

	set := Set{}
	if normalized == "" {
		return set
	}

	set.Sentiment = e.sentiment.PolarityScores(text).Compound

	for _, emotion := range lexicon.EmotionOrder {
		if matchesAny(normalized, e.tables.EmotionKeywords[emotion]) {
			set.Emotions = append(set.Emotions, emotion)
		}
	}

	for _, stressor := range lexicon.StressorOrder {
		if matchesAny(normalized, e.tables.StressorKeywords[stressor]) {
			set.Stressor = stressor
			break
		}
	}

	set.Crisis = matchesAny(normalized, e.tables.CrisisKeywords)

	return set
}

func matchesAny(normalized string, keywords []string) bool {
	for _, word := range keywords {
		if word == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(word)) {
			return true
		}
	}
	return false
}
