package persona

// QuizOption is one answer of a quiz question. Tags feed persona scoring.
type QuizOption struct {
	Label string
	Value string
	Tags  []string
}

// QuizQuestion is a single step of the mini quiz.
type QuizQuestion struct {
	ID      string
	Text    string
	Options []QuizOption
}

var quizFlow = []QuizQuestion{
	{
		ID:   "temper",
		Text: "Farzandingiz xarakteri qanday bo'lishini istaysiz?",
		Options: []QuizOption{
			{Label: "Sokin va muloyim", Value: "calm", Tags: []string{"ramziy", "muloyim"}},
			{Label: "Yetakchi va faol", Value: "leader", Tags: []string{"rahbar"}},
			{Label: "Ijodkor va ilhomli", Value: "creator", Tags: []string{"ilhom"}},
			{Label: "Ma'naviyatli va yuksak", Value: "spiritual", Tags: []string{"ma'naviy"}},
		},
	},
	{
		ID:   "legacy",
		Text: "Qaysi qatlamga yaqinmisiz?",
		Options: []QuizOption{
			{Label: "An'anaviy meros", Value: "heritage", Tags: []string{"heritage"}},
			{Label: "Zamonaviy ruh", Value: "modern", Tags: []string{"zamonaviy"}},
			{Label: "Tabiat va uyg'unlik", Value: "nature", Tags: []string{"tabiat"}},
		},
	},
	{
		ID:   "sound",
		Text: "Ism ohangi qanday bo'lishi kerak?",
		Options: []QuizOption{
			{Label: "Qisqa va chaqqon", Value: "short", Tags: []string{"rahbar"}},
			{Label: "Uzun va lirika", Value: "long", Tags: []string{"ramziy"}},
			{Label: "Quvnoq va ritmik", Value: "rhythm", Tags: []string{"zamonaviy"}},
		},
	},
	{
		ID:   "blend",
		Text: "Familiyangiz bilan uyg'unlik?",
		Options: []QuizOption{
			{Label: "Bosh harf mosligi muhim", Value: "initial", Tags: []string{"moslik"}},
			{Label: "Ohangdoshlik muhim", Value: "rhythm", Tags: []string{"ohang"}},
			{Label: "Qadriyatni ifodalasin", Value: "value", Tags: []string{"ma'naviy"}},
		},
	},
	{
		ID:   "bonus",
		Text: "Ismga yana bir istak:",
		Options: []QuizOption{
			{Label: "Trendda bo'lsin", Value: "trendy", Tags: []string{"zamonaviy", "trend"}},
			{Label: "Oson talaffuz qilinsin", Value: "easy", Tags: []string{"muloyim"}},
			{Label: "Unutilmas bo'lsin", Value: "unique", Tags: []string{"rahbar", "ramziy"}},
		},
	},
}

// QuizQuestions returns the full quiz in presentation order.
func (e *Engine) QuizQuestions() []QuizQuestion {
	return quizFlow
}

// QuizQuestionAt returns the question at the given step.
func (e *Engine) QuizQuestionAt(step int) (QuizQuestion, bool) {
	if step < 0 || step >= len(quizFlow) {
		return QuizQuestion{}, false
	}
	return quizFlow[step], true
}

// QuizLen reports the number of quiz steps.
func (e *Engine) QuizLen() int {
	return len(quizFlow)
}

// FindQuizOption resolves a question/value pair from a callback token.
func (e *Engine) FindQuizOption(questionID, value string) (QuizOption, bool) {
	for _, q := range quizFlow {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value == value {
				return opt, true
			}
		}
		return QuizOption{}, false
	}
	return QuizOption{}, false
}
