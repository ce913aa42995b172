package dialogue

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/model/chat"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

func newTestSelector(t *testing.T, seed int64) (*Selector, *lexicon.Tables) {
	t.Helper()
	tables := lexicon.Seed()
	require.NoError(t, tables.Validate())
	return NewSelector(tables, rand.New(rand.NewSource(seed))), tables
}

func TestSelectCrisisOverridesEverything(t *testing.T) {
	selector, tables := newTestSelector(t, 1)
	ctx := NewContext()

	resp := selector.Select(signal.Set{
		Crisis:   true,
		Stressor: lexicon.StressorExam,
		Emotions: []lexicon.Emotion{lexicon.EmotionStress, lexicon.EmotionSadness},
	}, ctx)

	assert.Equal(t, chat.ProvenanceCrisis, resp.Provenance)
	assert.Equal(t, tables.CrisisResponse, resp.Text)
	assert.Equal(t, -1, resp.TemplateIndex)
}

func TestSelectStressorBeatsEmotion(t *testing.T) {
	selector, tables := newTestSelector(t, 2)
	ctx := NewContext()

	resp := selector.Select(signal.Set{
		Stressor: lexicon.StressorExam,
		Emotions: []lexicon.Emotion{lexicon.EmotionStress},
	}, ctx)

	assert.Equal(t, chat.ProvenanceStressor, resp.Provenance)
	assert.Equal(t, lexicon.StressorExam, resp.Stressor)
	require.GreaterOrEqual(t, resp.TemplateIndex, 0)
	assert.True(t, strings.Contains(resp.Text, tables.Remedies[lexicon.StressorExam][resp.TemplateIndex]))
}

func TestSelectStressorNeverRepeatsSubTopic(t *testing.T) {
	selector, tables := newTestSelector(t, 3)
	ctx := NewContext()
	signals := signal.Set{Stressor: lexicon.StressorWork}
	total := len(tables.Remedies[lexicon.StressorWork])

	seen := map[int]bool{}
	for i := 0; i < total; i++ {
		resp := selector.Select(signals, ctx)
		require.Equal(t, chat.ProvenanceStressor, resp.Provenance)
		require.GreaterOrEqual(t, resp.TemplateIndex, 0)
		require.False(t, seen[resp.TemplateIndex], "remedy sub-topic %d repeated", resp.TemplateIndex)
		seen[resp.TemplateIndex] = true
		ctx.Update(signals, resp)
	}

	// All sub-topics exhausted: the open prompt fires instead.
	resp := selector.Select(signals, ctx)
	assert.Equal(t, chat.ProvenanceStressor, resp.Provenance)
	assert.Equal(t, -1, resp.TemplateIndex)
	assert.Equal(t, tables.RemedyExhaust[lexicon.StressorWork], resp.Text)
}

func TestSelectEmotionTieBreakFixedOrder(t *testing.T) {
	selector, _ := newTestSelector(t, 4)
	ctx := NewContext()

	resp := selector.Select(signal.Set{
		Emotions: []lexicon.Emotion{lexicon.EmotionAnxiety, lexicon.EmotionLoneliness},
	}, ctx)

	assert.Equal(t, chat.ProvenanceEmotion, resp.Provenance)
	assert.Equal(t, lexicon.EmotionAnxiety, resp.Emotion)
}

func TestSelectEmotionAvoidsImmediateRepeat(t *testing.T) {
	selector, _ := newTestSelector(t, 5)
	ctx := NewContext()
	signals := signal.Set{Emotions: []lexicon.Emotion{lexicon.EmotionSadness}}

	first := selector.Select(signals, ctx)
	require.Equal(t, chat.ProvenanceEmotion, first.Provenance)
	ctx.Update(signals, first)

	second := selector.Select(signals, ctx)
	require.Equal(t, chat.ProvenanceEmotion, second.Provenance)
	assert.NotEqual(t, first.TemplateIndex, second.TemplateIndex,
		"consecutive turns reused the same empathy template")
}

func TestSelectEmotionAppendsCopingStrategy(t *testing.T) {
	selector, tables := newTestSelector(t, 6)
	ctx := NewContext()

	resp := selector.Select(signal.Set{Emotions: []lexicon.Emotion{lexicon.EmotionStress}}, ctx)

	require.Equal(t, chat.ProvenanceEmotion, resp.Provenance)
	found := false
	for _, group := range []lexicon.StrategyGroup{lexicon.StrategyBreathing, lexicon.StrategyGrounding, lexicon.StrategyMovement} {
		for _, strategy := range tables.CopingStrategies[group] {
			if strings.Contains(resp.Text, strategy) {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a stress-appropriate coping strategy in %q", resp.Text)
}

func TestSelectGreetingOnlyOnFirstTurn(t *testing.T) {
	selector, tables := newTestSelector(t, 7)
	ctx := NewContext()

	first := selector.Select(signal.Set{}, ctx)
	assert.Equal(t, chat.ProvenanceGreeting, first.Provenance)
	assert.Contains(t, tables.Greetings, first.Text)
	ctx.Update(signal.Set{}, first)

	second := selector.Select(signal.Set{}, ctx)
	assert.Equal(t, chat.ProvenanceGeneral, second.Provenance)
}

func TestSelectFollowUpQuestionsRotate(t *testing.T) {
	selector, tables := newTestSelector(t, 8)
	ctx := NewContext()

	// Burn the greeting turn first.
	greeting := selector.Select(signal.Set{}, ctx)
	require.Equal(t, chat.ProvenanceGreeting, greeting.Provenance)
	ctx.Update(signal.Set{}, greeting)

	asked := map[lexicon.QuestionCategory]bool{}
	for i := 0; i < len(tables.FollowUps); i++ {
		resp := selector.Select(signal.Set{}, ctx)
		require.Equal(t, chat.ProvenanceGeneral, resp.Provenance)
		require.NotEmpty(t, resp.Question)
		require.False(t, asked[resp.Question], "question category %q repeated", resp.Question)
		asked[resp.Question] = true
		ctx.Update(signal.Set{}, resp)
	}

	// Every category asked: the fixed listening prompt takes over.
	resp := selector.Select(signal.Set{}, ctx)
	assert.Equal(t, chat.ProvenanceGeneral, resp.Provenance)
	assert.Empty(t, resp.Question)
	assert.Equal(t, tables.ListeningPrompt, resp.Text)
}

func TestSelectDeterministicGivenSeed(t *testing.T) {
	run := func() chat.Response {
		selector, _ := newTestSelector(t, 42)
		return selector.Select(signal.Set{Stressor: lexicon.StressorFamily}, NewContext())
	}

	assert.Equal(t, run(), run())
}
