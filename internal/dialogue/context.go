// Package dialogue holds the conversation memory and the priority state
// machine that picks one response per turn.
package dialogue

import (
	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/model/chat"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

// Topic is a life area surfaced during the session.
type Topic string

const (
	TopicAcademic      Topic = "academic"
	TopicWork          Topic = "work"
	TopicRelationships Topic = "relationships"
	TopicFamily        Topic = "family"
	TopicWellbeing     Topic = "wellbeing"
)

// topicOrder fixes iteration order for snapshots.
var topicOrder = []Topic{TopicAcademic, TopicWork, TopicRelationships, TopicFamily, TopicWellbeing}

func topicForStressor(stressor lexicon.Stressor) (Topic, bool) {
	switch stressor {
	case lexicon.StressorExam:
		return TopicAcademic, true
	case lexicon.StressorWork:
		return TopicWork, true
	case lexicon.StressorRelationship:
		return TopicRelationships, true
	case lexicon.StressorFamily:
		return TopicFamily, true
	case lexicon.StressorGeneral, lexicon.StressorDepression:
		return TopicWellbeing, true
	}
	return "", false
}

type empathyMark struct {
	emotion lexicon.Emotion
	index   int
	valid   bool
}

// Context is the session-scoped conversation memory. Within a session it is a
// monotone accumulator: sets only grow until an explicit reset discards the
// whole record. One Context is owned by exactly one session; it is not safe
// for concurrent use.
type Context struct {
	turns        int
	topics       map[Topic]bool
	emotions     map[lexicon.Emotion]bool
	questions    map[lexicon.QuestionCategory]bool
	usedRemedies map[lexicon.Stressor]map[int]bool
	lastEmpathy  empathyMark
	lastEmotion  lexicon.Emotion
	lastStressor lexicon.Stressor
}

// NewContext returns an empty context for a fresh session.
func NewContext() *Context {
	return &Context{
		topics:       make(map[Topic]bool),
		emotions:     make(map[lexicon.Emotion]bool),
		questions:    make(map[lexicon.QuestionCategory]bool),
		usedRemedies: make(map[lexicon.Stressor]map[int]bool),
	}
}

// TurnCount returns the number of committed turns.
func (c *Context) TurnCount() int { return c.turns }

// FirstInteraction reports whether no turn has been committed yet.
func (c *Context) FirstInteraction() bool { return c.turns == 0 }

// QuestionAsked reports whether a follow-up question category was already
// issued this session.
func (c *Context) QuestionAsked(category lexicon.QuestionCategory) bool {
	return c.questions[category]
}

// EmotionSeen reports whether an emotion was surfaced in an earlier turn.
func (c *Context) EmotionSeen(emotion lexicon.Emotion) bool {
	return c.emotions[emotion]
}

// UnusedRemedyIndices returns the remedy template indices for a stressor that
// have not been surfaced this session, in ascending order.
func (c *Context) UnusedRemedyIndices(stressor lexicon.Stressor, total int) []int {
	used := c.usedRemedies[stressor]
	unused := make([]int, 0, total)
	for i := 0; i < total; i++ {
		if !used[i] {
			unused = append(unused, i)
		}
	}
	return unused
}

// LastEmpathyIndex returns the empathy template index used in the immediately
// preceding turn for the given emotion, if that turn was an emotion-specific
// response to it.
func (c *Context) LastEmpathyIndex(emotion lexicon.Emotion) (int, bool) {
	if c.lastEmpathy.valid && c.lastEmpathy.emotion == emotion {
		return c.lastEmpathy.index, true
	}
	return 0, false
}

// UnaskedFollowUps filters the follow-up questions down to categories not yet
// asked this session, preserving table order.
func (c *Context) UnaskedFollowUps(all []lexicon.FollowUpQuestion) []lexicon.FollowUpQuestion {
	unasked := make([]lexicon.FollowUpQuestion, 0, len(all))
	for _, q := range all {
		if !c.questions[q.Category] {
			unasked = append(unasked, q)
		}
	}
	return unasked
}

// Update folds one completed turn into the context: unions the detected
// emotions and topics, records which sub-variant the response consumed, and
// commits the turn count. Called exactly once per turn, after selection.
func (c *Context) Update(signals signal.Set, resp chat.Response) {
	for _, emotion := range signals.Emotions {
		c.emotions[emotion] = true
	}
	if topic, ok := topicForStressor(signals.Stressor); ok {
		c.topics[topic] = true
	}

	if resp.Question != "" {
		c.questions[resp.Question] = true
	}
	if resp.Provenance == chat.ProvenanceStressor && resp.TemplateIndex >= 0 {
		used, ok := c.usedRemedies[resp.Stressor]
		if !ok {
			used = make(map[int]bool)
			c.usedRemedies[resp.Stressor] = used
		}
		used[resp.TemplateIndex] = true
	}

	if resp.Provenance == chat.ProvenanceEmotion && resp.TemplateIndex >= 0 {
		c.lastEmpathy = empathyMark{emotion: resp.Emotion, index: resp.TemplateIndex, valid: true}
	} else {
		c.lastEmpathy = empathyMark{}
	}

	if primary, ok := signals.PrimaryEmotion(); ok {
		c.lastEmotion = primary
	}
	if signals.Stressor != "" {
		c.lastStressor = signals.Stressor
	}

	c.turns++
}

// Summary is the serializable view of a context, persisted alongside each
// turn and returned to the presentation layer.
type Summary struct {
	Turns            int                        `json:"turns"`
	FirstInteraction bool                       `json:"firstInteraction"`
	Topics           []Topic                    `json:"topics,omitempty"`
	Emotions         []lexicon.Emotion          `json:"emotions,omitempty"`
	QuestionsAsked   []lexicon.QuestionCategory `json:"questionsAsked,omitempty"`
	LastEmotion      lexicon.Emotion            `json:"lastEmotion,omitempty"`
	LastStressor     lexicon.Stressor           `json:"lastStressor,omitempty"`
}

// Snapshot renders the current context in fixed enumeration order so equal
// contexts serialize identically.
func (c *Context) Snapshot() Summary {
	summary := Summary{
		Turns:            c.turns,
		FirstInteraction: c.turns == 0,
		LastEmotion:      c.lastEmotion,
		LastStressor:     c.lastStressor,
	}
	for _, topic := range topicOrder {
		if c.topics[topic] {
			summary.Topics = append(summary.Topics, topic)
		}
	}
	for _, emotion := range lexicon.EmotionOrder {
		if c.emotions[emotion] {
			summary.Emotions = append(summary.Emotions, emotion)
		}
	}
	for _, category := range questionCategoryOrder {
		if c.questions[category] {
			summary.QuestionsAsked = append(summary.QuestionsAsked, category)
		}
	}
	return summary
}

var questionCategoryOrder = []lexicon.QuestionCategory{
	lexicon.QuestionDuration,
	lexicon.QuestionTriggers,
	lexicon.QuestionCopingHistory,
	lexicon.QuestionSpecificHelp,
	lexicon.QuestionImprovement,
	lexicon.QuestionSelfCare,
}
