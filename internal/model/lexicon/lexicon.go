package lexicon

// Emotion is a closed emotion category detected by keyword match.
type Emotion string

const (
	EmotionStress     Emotion = "stress"
	EmotionAnxiety    Emotion = "anxiety"
	EmotionSadness    Emotion = "sadness"
	EmotionAnger      Emotion = "anger"
	EmotionLoneliness Emotion = "loneliness"
)

// EmotionOrder fixes the enumeration order used for tie-breaking.
var EmotionOrder = []Emotion{
	EmotionStress,
	EmotionAnxiety,
	EmotionSadness,
	EmotionAnger,
	EmotionLoneliness,
}

// Stressor is a closed category for a source of distress.
type Stressor string

const (
	StressorExam         Stressor = "exam_anxiety"
	StressorWork         Stressor = "work_stress"
	StressorRelationship Stressor = "relationship_stress"
	StressorFamily       Stressor = "family_stress"
	StressorGeneral      Stressor = "general_anxiety"
	StressorDepression   Stressor = "depression_feelings"
)

// StressorOrder fixes the enumeration order; the first category with any
// keyword match becomes the primary stressor.
var StressorOrder = []Stressor{
	StressorExam,
	StressorWork,
	StressorRelationship,
	StressorFamily,
	StressorGeneral,
	StressorDepression,
}

// QuestionCategory labels a follow-up question so it is asked at most once
// per session.
type QuestionCategory string

const (
	QuestionDuration      QuestionCategory = "duration"
	QuestionTriggers      QuestionCategory = "triggers"
	QuestionCopingHistory QuestionCategory = "coping_history"
	QuestionSpecificHelp  QuestionCategory = "specific_help"
	QuestionImprovement   QuestionCategory = "improvement"
	QuestionSelfCare      QuestionCategory = "self_care"
)

// StrategyGroup groups coping strategies by technique.
type StrategyGroup string

const (
	StrategyBreathing StrategyGroup = "breathing"
	StrategyGrounding StrategyGroup = "grounding"
	StrategyMovement  StrategyGroup = "movement"
	StrategySocial    StrategyGroup = "social"
	StrategySelfCare  StrategyGroup = "self_care"
)

// StrategyGroupOrder fixes the enumeration of coping strategy groups.
var StrategyGroupOrder = []StrategyGroup{
	StrategyBreathing,
	StrategyGrounding,
	StrategyMovement,
	StrategySocial,
	StrategySelfCare,
}

// FollowUpQuestion pairs a question text with its category.
type FollowUpQuestion struct {
	Category QuestionCategory `json:"category"`
	Text     string           `json:"text"`
}

// Tables holds every keyword table and response template set consumed by the
// dialogue engine. The content is data, not logic: operators can replace the
// whole set via a JSON file without touching the selector.
type Tables struct {
	EmotionKeywords  map[Emotion][]string  `json:"emotionKeywords"`
	StressorKeywords map[Stressor][]string `json:"stressorKeywords"`
	CrisisKeywords   []string              `json:"crisisKeywords"`
	CrisisResponse   string                `json:"crisisResponse"`

	Greetings      []string             `json:"greetings"`
	Empathy        map[Emotion][]string `json:"empathy"`
	GeneralSupport []string             `json:"generalSupport"`

	Remedies      map[Stressor][]string `json:"remedies"`
	RemedyIntros  map[Stressor]string   `json:"remedyIntros"`
	RemedyExhaust map[Stressor]string   `json:"remedyExhaust"`

	CopingStrategies map[StrategyGroup][]string `json:"copingStrategies"`
	FollowUps        []FollowUpQuestion         `json:"followUps"`
	ListeningPrompt  string                     `json:"listeningPrompt"`
}

// Seed provides the built-in English tables used when no override file is
// configured.
func Seed() *Tables {
	return &Tables{
		EmotionKeywords: map[Emotion][]string{
			EmotionStress:     {"stress", "stressed", "overwhelmed", "pressure", "burden"},
			EmotionAnxiety:    {"anxious", "anxiety", "worried", "nervous", "panic", "fear"},
			EmotionSadness:    {"sad", "depressed", "down", "upset", "crying", "tears"},
			EmotionAnger:      {"angry", "mad", "frustrated", "irritated", "furious"},
			EmotionLoneliness: {"lonely", "alone", "isolated", "disconnected"},
		},
		StressorKeywords: map[Stressor][]string{
			StressorExam:         {"exam", "test", "quiz", "midterm", "final", "study", "studying", "grade", "fail"},
			StressorWork:         {"work", "job", "boss", "colleague", "deadline", "project", "meeting", "workload"},
			StressorRelationship: {"relationship", "partner", "boyfriend", "girlfriend", "dating", "breakup"},
			StressorFamily:       {"family", "parent", "mom", "dad", "mother", "father", "sibling", "brother", "sister"},
			StressorGeneral:      {"anxiety", "anxious", "worried", "panic", "fear"},
			StressorDepression:   {"useless", "worthless", "hopeless", "depressed", "empty"},
		},
		CrisisKeywords: []string{
			"suicide", "kill myself", "end it all", "can't go on", "want to die",
			"self-harm", "hurt myself", "cutting", "hopeless", "worthless",
			"no point", "better off dead", "end my life",
		},
		CrisisResponse: "I'm really concerned about you and want you to know that you're not alone. " +
			"These feelings can be overwhelming, but there is help available.\n\n" +
			"Immediate resources:\n" +
			"- Crisis Text Line: text HOME to 741741\n" +
			"- National Suicide Prevention Lifeline: 988\n" +
			"- Emergency services: 911\n\n" +
			"Please consider reaching out to a mental health professional, trusted friend, " +
			"or family member right now. Your life has value, and there are people who want " +
			"to help you through this difficult time.",
		Greetings: []string{
			"Hello! I'm here to support you. How are you feeling today?",
			"Hi there! Thanks for reaching out. What's on your mind?",
			"Welcome! I'm glad you're here. How can I help you today?",
			"Hello! It takes courage to seek support. How are things going for you?",
		},
		Empathy: map[Emotion][]string{
			EmotionStress: {
				"Stress can feel overwhelming. What's been weighing on your mind lately?",
				"It sounds like you're carrying a lot right now. Would you like to talk about what's causing this stress?",
				"Feeling stressed is completely normal. What situation is making you feel this way?",
			},
			EmotionAnxiety: {
				"Anxiety can be really challenging. Can you tell me more about what's making you feel anxious?",
				"I hear that you're feeling anxious. What thoughts are going through your mind right now?",
				"Anxiety affects many people. What triggers these feelings for you?",
			},
			EmotionSadness: {
				"I'm sorry you're feeling sad. Sometimes it helps to talk about what's bothering you. What's going on?",
				"Sadness is a natural emotion, but it can be hard to bear. What's been making you feel this way?",
				"It's okay to feel sad. Would you like to share what's been troubling you?",
			},
			EmotionAnger: {
				"Anger usually points at something that matters to you. What happened?",
				"It sounds like something really frustrated you. Do you want to talk it through?",
				"Those feelings are valid. What's been setting them off lately?",
			},
			EmotionLoneliness: {
				"Feeling alone is painful, and I'm glad you reached out. What's been making you feel isolated?",
				"Loneliness can weigh heavily. Who in your life do you feel closest to right now?",
				"You're not alone in feeling this way. What kind of connection are you missing most?",
			},
		},
		GeneralSupport: []string{
			"I'm here to listen without judgment. What would you like to talk about?",
			"Thank you for sharing with me. How can I best support you right now?",
			"It's brave of you to reach out. What's been on your mind lately?",
		},
		Remedies: map[Stressor][]string{
			StressorExam: {
				"Study strategy: break your study material into small, manageable chunks. Study for 25 minutes, then take a 5-minute break (Pomodoro Technique).",
				"Before the exam: practice deep breathing, arrive early, avoid discussing the exam with anxious classmates, and remind yourself that you've prepared.",
				"Reframe thoughts: replace 'I'm going to fail' with 'I've prepared as best I can, and I'll do my best.' One exam doesn't define your worth.",
				"During the exam: read questions carefully, start with easier questions to build confidence, and if you feel overwhelmed, pause and take 3 deep breaths.",
			},
			StressorWork: {
				"Prioritize tasks: make a list and tackle the most important tasks first. Break large projects into smaller, actionable steps.",
				"Time management: use time-blocking to focus on one task at a time. Set boundaries between work and personal time.",
				"Communication: if workload is overwhelming, have an honest conversation with your supervisor about priorities and deadlines.",
				"Micro-breaks: take 2-minute breaks every hour to stretch, breathe, or step outside.",
			},
			StressorRelationship: {
				"Communication: use 'I' statements to express feelings without blaming. 'I feel...' instead of 'You always...'",
				"Set boundaries: it's okay to say no and protect your emotional energy. Healthy relationships respect boundaries.",
				"Take space: if emotions are high, take a break from the conversation and return when you're calmer.",
				"Self-compassion: remember that you can't control others' actions, only your responses. Focus on what you can change.",
			},
			StressorFamily: {
				"Create safe spaces: identify places or times where you can decompress away from family tension.",
				"Active listening: try to understand family members' perspectives, even if you disagree with their actions.",
				"Healthy distance: it's okay to limit contact with family members who consistently affect your mental health negatively.",
				"Seek support: talk to friends, counselors, or support groups about family dynamics. You're not alone.",
			},
			StressorGeneral: {
				"Mindfulness: practice the 4-7-8 breathing technique when you feel anxiety rising.",
				"Limit news and social media: constant negative information can increase anxiety. Set specific times to check news.",
				"Physical activity: even 10 minutes of movement can reduce anxiety. Try walking, dancing, or stretching.",
				"Sleep hygiene: anxiety often worsens with poor sleep. Aim for 7-8 hours and avoid screens before bed.",
			},
			StressorDepression: {
				"Light exposure: spend time in natural light, especially in the morning. Open curtains or step outside.",
				"Small goals: set tiny, achievable goals like 'brush teeth' or 'make bed.' Small wins build momentum.",
				"Social connection: reach out to one person, even if it's just a text. Depression thrives in isolation.",
				"Professional help: if feelings persist for more than 2 weeks, consider talking to a counselor or doctor.",
			},
		},
		RemedyIntros: map[Stressor]string{
			StressorExam:         "Exam anxiety is really common and completely understandable. Here's a strategy that can help:",
			StressorWork:         "Work stress can be overwhelming. Let me share a practical strategy:",
			StressorRelationship: "Relationship challenges can be emotionally draining. Here's something that might help:",
			StressorFamily:       "Family dynamics can be really challenging. Here's a strategy that might help:",
			StressorGeneral:      "Anxiety can feel overwhelming, but there are effective ways to manage it:",
			StressorDepression:   "I hear that you're struggling with these difficult feelings. You're not alone, and they don't define your worth. Here's something that might help:",
		},
		RemedyExhaust: map[Stressor]string{
			StressorExam:         "We've talked through several exam strategies. What do you think would help you most right now?",
			StressorWork:         "We've covered a few ways to approach work stress. What would make the biggest difference for you?",
			StressorRelationship: "We've explored several angles on this relationship. What would help you most right now?",
			StressorFamily:       "We've looked at a few ways to handle family stress. What feels most doable for you?",
			StressorGeneral:      "We've been through several anxiety techniques. Which one would you like to try, or is something else on your mind?",
			StressorDepression:   "We've talked about several small steps. What feels most possible for you today?",
		},
		CopingStrategies: map[StrategyGroup][]string{
			StrategyBreathing: {
				"Try the 4-7-8 breathing technique: inhale for 4 counts, hold for 7, exhale for 8. This can help calm your nervous system.",
				"Focus on your breath. Take slow, deep breaths in through your nose and out through your mouth.",
				"Try box breathing: breathe in for 4, hold for 4, out for 4, hold for 4. Repeat this cycle.",
			},
			StrategyGrounding: {
				"Try the 5-4-3-2-1 technique: name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.",
				"Ground yourself by focusing on your physical sensations. Feel your feet on the floor, your back against the chair.",
				"Look around and name objects in your environment. This can help bring you back to the present moment.",
			},
			StrategyMovement: {
				"Even a 5-minute walk can help shift your mood and energy. Fresh air can be especially helpful.",
				"Try some gentle stretching or yoga poses. Movement can help release tension.",
				"Consider doing some jumping jacks or push-ups to release built-up stress energy.",
			},
			StrategySocial: {
				"Reach out to someone you trust - a friend, family member, or counselor. Connection can be healing.",
				"Consider joining a support group or online community where you can share your experiences.",
				"Sometimes just talking to someone, even briefly, can help you feel less alone.",
			},
			StrategySelfCare: {
				"Take a warm bath or shower. The physical comfort can help soothe emotional distress.",
				"Listen to music that makes you feel calm or uplifted. Music can be a powerful mood regulator.",
				"Try journaling your thoughts and feelings. Writing can help you process what you're experiencing.",
			},
		},
		FollowUps: []FollowUpQuestion{
			{Category: QuestionDuration, Text: "How long have you been feeling this way?"},
			{Category: QuestionTriggers, Text: "What do you think might have triggered these feelings?"},
			{Category: QuestionCopingHistory, Text: "Have you tried any coping strategies before? What worked or didn't work?"},
			{Category: QuestionSpecificHelp, Text: "Is there anything specific you'd like help with right now?"},
			{Category: QuestionImprovement, Text: "What would make you feel a little bit better today?"},
			{Category: QuestionSelfCare, Text: "Are you getting enough sleep and taking care of your basic needs?"},
		},
		ListeningPrompt: "I'm here to listen. What's most important for you to talk about right now?",
	}
}
