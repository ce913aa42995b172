package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load returns the seed tables, or the tables from the override file when
// path is non-empty. Validation errors are returned to the caller so startup
// can fail before any message is processed.
func Load(path string) (*Tables, error) {
	if path == "" {
		tables := Seed()
		if err := tables.Validate(); err != nil {
			return nil, fmt.Errorf("lexicon: seed tables invalid: %w", err)
		}
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}

	tables := &Tables{}
	if err := json.Unmarshal(raw, tables); err != nil {
		return nil, fmt.Errorf("lexicon: parse %s: %w", path, err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return tables, nil
}

// Validate checks that every closed category is populated. An empty emotion or
// remedy table would make selector states unreachable, so any gap is fatal.
func (t *Tables) Validate() error {
	for _, emotion := range EmotionOrder {
		if len(t.EmotionKeywords[emotion]) == 0 {
			return fmt.Errorf("no keywords for emotion %q", emotion)
		}
		if len(t.Empathy[emotion]) == 0 {
			return fmt.Errorf("no empathy templates for emotion %q", emotion)
		}
	}
	if err := checkKnownEmotions(t.EmotionKeywords); err != nil {
		return err
	}
	if err := checkKnownEmotions(t.Empathy); err != nil {
		return err
	}

	for _, stressor := range StressorOrder {
		if len(t.StressorKeywords[stressor]) == 0 {
			return fmt.Errorf("no keywords for stressor %q", stressor)
		}
		if len(t.Remedies[stressor]) == 0 {
			return fmt.Errorf("no remedy templates for stressor %q", stressor)
		}
		if t.RemedyIntros[stressor] == "" {
			return fmt.Errorf("no remedy intro for stressor %q", stressor)
		}
		if t.RemedyExhaust[stressor] == "" {
			return fmt.Errorf("no exhausted-remedy prompt for stressor %q", stressor)
		}
	}
	if err := checkKnownStressors(t.StressorKeywords); err != nil {
		return err
	}
	if err := checkKnownStressors(t.Remedies); err != nil {
		return err
	}

	if len(t.CrisisKeywords) == 0 {
		return fmt.Errorf("crisis keyword list is empty")
	}
	if t.CrisisResponse == "" {
		return fmt.Errorf("crisis response is empty")
	}
	if len(t.Greetings) == 0 {
		return fmt.Errorf("greeting list is empty")
	}
	if len(t.GeneralSupport) == 0 {
		return fmt.Errorf("general support list is empty")
	}
	if len(t.FollowUps) == 0 {
		return fmt.Errorf("follow-up question list is empty")
	}
	if t.ListeningPrompt == "" {
		return fmt.Errorf("listening prompt is empty")
	}

	for _, group := range StrategyGroupOrder {
		if len(t.CopingStrategies[group]) == 0 {
			return fmt.Errorf("no coping strategies for group %q", group)
		}
	}
	for group := range t.CopingStrategies {
		if !knownStrategyGroup(group) {
			return fmt.Errorf("unknown coping strategy group %q", group)
		}
	}

	seen := map[QuestionCategory]bool{}
	for _, q := range t.FollowUps {
		if !knownQuestionCategory(q.Category) {
			return fmt.Errorf("unknown follow-up question category %q", q.Category)
		}
		if q.Text == "" {
			return fmt.Errorf("empty follow-up question text for category %q", q.Category)
		}
		if seen[q.Category] {
			return fmt.Errorf("duplicate follow-up question category %q", q.Category)
		}
		seen[q.Category] = true
	}

	return nil
}

func checkKnownEmotions[V any](m map[Emotion]V) error {
	for key := range m {
		known := false
		for _, emotion := range EmotionOrder {
			if key == emotion {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown emotion category %q", key)
		}
	}
	return nil
}

func checkKnownStressors[V any](m map[Stressor]V) error {
	for key := range m {
		known := false
		for _, stressor := range StressorOrder {
			if key == stressor {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown stressor category %q", key)
		}
	}
	return nil
}

func knownStrategyGroup(group StrategyGroup) bool {
	for _, g := range StrategyGroupOrder {
		if g == group {
			return true
		}
	}
	return false
}

func knownQuestionCategory(category QuestionCategory) bool {
	switch category {
	case QuestionDuration, QuestionTriggers, QuestionCopingHistory,
		QuestionSpecificHelp, QuestionImprovement, QuestionSelfCare:
		return true
	}
	return false
}
