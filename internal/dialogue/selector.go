package dialogue

import (
	"math/rand"
	"time"

	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/model/chat"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

// Selector is the priority state machine that turns (signals, context) into
// one response. Which rule fires is deterministic; only the draw of the
// literal template within a category is randomized, through the injected
// source. Not safe for concurrent use.
type Selector struct {
	tables *lexicon.Tables
	rng    *rand.Rand
}

// NewSelector builds a selector over the lexicon tables. A nil rng gets a
// time-seeded source; tests inject a fixed seed instead.
func NewSelector(tables *lexicon.Tables, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{tables: tables, rng: rng}
}

// Select evaluates the states strictly in priority order; the first match
// wins and no lower-priority rule can override it within the same turn.
func (s *Selector) Select(signals signal.Set, ctx *Context) chat.Response {
	if signals.Crisis {
		return chat.Response{
			Text:          s.tables.CrisisResponse,
			Provenance:    chat.ProvenanceCrisis,
			TemplateIndex: -1,
		}
	}

	if signals.Stressor != "" {
		return s.stressorResponse(signals.Stressor, ctx)
	}

	if emotion, ok := signals.PrimaryEmotion(); ok {
		return s.emotionResponse(emotion, ctx)
	}

	return s.generalResponse(ctx)
}

// stressorResponse surfaces an unused remedy sub-topic for the primary
// stressor, falling back to an open prompt once every sub-topic has been
// covered this session.
func (s *Selector) stressorResponse(stressor lexicon.Stressor, ctx *Context) chat.Response {
	remedies := s.tables.Remedies[stressor]
	unused := ctx.UnusedRemedyIndices(stressor, len(remedies))
	if len(unused) == 0 {
		return chat.Response{
			Text:          s.tables.RemedyExhaust[stressor],
			Provenance:    chat.ProvenanceStressor,
			Stressor:      stressor,
			TemplateIndex: -1,
		}
	}

	index := unused[s.rng.Intn(len(unused))]
	return chat.Response{
		Text:          s.tables.RemedyIntros[stressor] + "\n\n" + remedies[index],
		Provenance:    chat.ProvenanceStressor,
		Stressor:      stressor,
		TemplateIndex: index,
	}
}

// emotionResponse draws an empathy template for the emotion, avoiding the
// exact template used in the immediately preceding turn when another option
// exists, and appends a coping strategy.
func (s *Selector) emotionResponse(emotion lexicon.Emotion, ctx *Context) chat.Response {
	templates := s.tables.Empathy[emotion]

	candidates := make([]int, 0, len(templates))
	if last, ok := ctx.LastEmpathyIndex(emotion); ok && len(templates) > 1 {
		for i := range templates {
			if i != last {
				candidates = append(candidates, i)
			}
		}
	} else {
		for i := range templates {
			candidates = append(candidates, i)
		}
	}

	index := candidates[s.rng.Intn(len(candidates))]
	text := templates[index] +
		"\n\nHere's a coping strategy that might help:\n\n" +
		s.copingStrategy(emotion)

	return chat.Response{
		Text:          text,
		Provenance:    chat.ProvenanceEmotion,
		Emotion:       emotion,
		TemplateIndex: index,
	}
}

// generalResponse greets on the very first turn; afterwards it pairs a
// supportive prompt with a follow-up question whose category has not been
// asked yet, and settles on a fixed listening prompt once all have been.
func (s *Selector) generalResponse(ctx *Context) chat.Response {
	if ctx.FirstInteraction() {
		index := s.rng.Intn(len(s.tables.Greetings))
		return chat.Response{
			Text:          s.tables.Greetings[index],
			Provenance:    chat.ProvenanceGreeting,
			TemplateIndex: index,
		}
	}

	unasked := ctx.UnaskedFollowUps(s.tables.FollowUps)
	if len(unasked) == 0 {
		return chat.Response{
			Text:          s.tables.ListeningPrompt,
			Provenance:    chat.ProvenanceGeneral,
			TemplateIndex: -1,
		}
	}

	question := unasked[s.rng.Intn(len(unasked))]
	lead := s.tables.GeneralSupport[s.rng.Intn(len(s.tables.GeneralSupport))]
	return chat.Response{
		Text:          lead + " " + question.Text,
		Provenance:    chat.ProvenanceGeneral,
		TemplateIndex: -1,
		Question:      question.Category,
	}
}

// copingStrategy draws one strategy from the groups suited to the emotion.
func (s *Selector) copingStrategy(emotion lexicon.Emotion) string {
	var groups []lexicon.StrategyGroup
	switch emotion {
	case lexicon.EmotionStress, lexicon.EmotionAnxiety:
		groups = []lexicon.StrategyGroup{lexicon.StrategyBreathing, lexicon.StrategyGrounding, lexicon.StrategyMovement}
	case lexicon.EmotionSadness:
		groups = []lexicon.StrategyGroup{lexicon.StrategySelfCare, lexicon.StrategySocial, lexicon.StrategyMovement}
	default:
		groups = lexicon.StrategyGroupOrder
	}

	group := groups[s.rng.Intn(len(groups))]
	strategies := s.tables.CopingStrategies[group]
	return strategies[s.rng.Intn(len(strategies))]
}
