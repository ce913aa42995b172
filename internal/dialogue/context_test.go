package dialogue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/model/chat"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

func TestContextFirstInteraction(t *testing.T) {
	ctx := NewContext()
	assert.True(t, ctx.FirstInteraction())

	ctx.Update(signal.Set{}, chat.Response{Provenance: chat.ProvenanceGreeting, TemplateIndex: 0})
	assert.False(t, ctx.FirstInteraction())
	assert.Equal(t, 1, ctx.TurnCount())
}

func TestContextAccumulatesMonotonically(t *testing.T) {
	ctx := NewContext()

	ctx.Update(signal.Set{
		Emotions: []lexicon.Emotion{lexicon.EmotionStress},
		Stressor: lexicon.StressorExam,
	}, chat.Response{Provenance: chat.ProvenanceStressor, Stressor: lexicon.StressorExam, TemplateIndex: 1})

	first := ctx.Snapshot()
	require.Equal(t, []Topic{TopicAcademic}, first.Topics)
	require.Equal(t, []lexicon.Emotion{lexicon.EmotionStress}, first.Emotions)

	// A turn with no matches must not shrink anything.
	ctx.Update(signal.Set{}, chat.Response{Provenance: chat.ProvenanceGeneral, TemplateIndex: -1})
	second := ctx.Snapshot()
	assert.Equal(t, first.Topics, second.Topics)
	assert.Equal(t, first.Emotions, second.Emotions)
	assert.Equal(t, 2, second.Turns)

	ctx.Update(signal.Set{
		Emotions: []lexicon.Emotion{lexicon.EmotionSadness},
		Stressor: lexicon.StressorFamily,
	}, chat.Response{Provenance: chat.ProvenanceStressor, Stressor: lexicon.StressorFamily, TemplateIndex: 0})
	third := ctx.Snapshot()
	assert.Equal(t, []Topic{TopicAcademic, TopicFamily}, third.Topics)
	assert.Equal(t, []lexicon.Emotion{lexicon.EmotionStress, lexicon.EmotionSadness}, third.Emotions)
}

func TestContextTracksUsedRemedies(t *testing.T) {
	ctx := NewContext()

	ctx.Update(signal.Set{Stressor: lexicon.StressorWork}, chat.Response{
		Provenance:    chat.ProvenanceStressor,
		Stressor:      lexicon.StressorWork,
		TemplateIndex: 2,
	})

	assert.Equal(t, []int{0, 1, 3}, ctx.UnusedRemedyIndices(lexicon.StressorWork, 4))
	assert.Equal(t, []int{0, 1, 2, 3}, ctx.UnusedRemedyIndices(lexicon.StressorExam, 4))
}

func TestContextTracksQuestionsAsked(t *testing.T) {
	ctx := NewContext()
	followUps := lexicon.Seed().FollowUps

	require.Len(t, ctx.UnaskedFollowUps(followUps), len(followUps))

	ctx.Update(signal.Set{}, chat.Response{
		Provenance: chat.ProvenanceGeneral,
		Question:   lexicon.QuestionTriggers,
	})

	assert.True(t, ctx.QuestionAsked(lexicon.QuestionTriggers))
	assert.Len(t, ctx.UnaskedFollowUps(followUps), len(followUps)-1)
	for _, q := range ctx.UnaskedFollowUps(followUps) {
		assert.NotEqual(t, lexicon.QuestionTriggers, q.Category)
	}
}

func TestContextLastEmpathyOnlyPreviousTurn(t *testing.T) {
	ctx := NewContext()

	ctx.Update(signal.Set{Emotions: []lexicon.Emotion{lexicon.EmotionAnxiety}}, chat.Response{
		Provenance:    chat.ProvenanceEmotion,
		Emotion:       lexicon.EmotionAnxiety,
		TemplateIndex: 1,
	})

	index, ok := ctx.LastEmpathyIndex(lexicon.EmotionAnxiety)
	require.True(t, ok)
	assert.Equal(t, 1, index)
	_, ok = ctx.LastEmpathyIndex(lexicon.EmotionSadness)
	assert.False(t, ok)

	// An intervening non-emotion turn clears the exclusion.
	ctx.Update(signal.Set{}, chat.Response{Provenance: chat.ProvenanceGeneral, TemplateIndex: -1})
	_, ok = ctx.LastEmpathyIndex(lexicon.EmotionAnxiety)
	assert.False(t, ok)
}

func TestContextSnapshotDeterministic(t *testing.T) {
	build := func() *Context {
		ctx := NewContext()
		ctx.Update(signal.Set{
			Emotions: []lexicon.Emotion{lexicon.EmotionLoneliness, lexicon.EmotionAnger},
			Stressor: lexicon.StressorRelationship,
		}, chat.Response{Provenance: chat.ProvenanceStressor, Stressor: lexicon.StressorRelationship, TemplateIndex: 0})
		return ctx
	}

	a, err := json.Marshal(build().Snapshot())
	require.NoError(t, err)
	b, err := json.Marshal(build().Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
