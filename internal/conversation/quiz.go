package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"namebot/core/logger"
	"namebot/core/telegram/format"
	"namebot/internal/catalog"
	"namebot/internal/persona"
	"namebot/internal/session"
	"namebot/internal/storage"
)

func (e *Engine) handleQuizCallbacks(ctx context.Context, id Identity, token Token, v View) error {
	switch token.Arg(0, "") {
	case "start":
		return e.startQuiz(ctx, id, v)
	case "answer":
		return e.processQuizAnswer(ctx, id, token.Arg(1, ""), token.Arg(2, ""), v)
	default:
		return v.Ack(ctx, "")
	}
}

// startQuiz resets quiz progress and shows the first question. Starting
// over mid-quiz discards collected answers and tags.
func (e *Engine) startQuiz(ctx context.Context, id Identity, v View) error {
	err := e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		s.Flow = &session.QuizFlow{Step: 0}
		s.QuizAnswers = map[string]string{}
		s.QuizTags = []string{}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.renderQuizQuestion(ctx, 0, v); err != nil {
		return err
	}
	return v.Ack(ctx, "")
}

func (e *Engine) renderQuizQuestion(ctx context.Context, step int, v View) error {
	question, ok := e.personas.QuizQuestionAt(step)
	if !ok {
		return nil
	}

	kb := Keyboard{}
	for _, opt := range question.Options {
		kb = kb.Row(Btn(opt.Label, fmt.Sprintf("quiz:answer:%s:%s", question.ID, opt.Value)))
	}
	kb = kb.Row(Btn("🏠 Menyu", LegacyMainMenu))

	return v.Render(ctx, fmt.Sprintf("🧪 Savol %d/%d\n\n%s",
		step+1, e.personas.QuizLen(), question.Text), kb)
}

// processQuizAnswer records a valid answer and advances. Answers without
// an active quiz flow, unknown questions and unknown values are
// acknowledged no-ops: the quiz state stays exactly as it was.
func (e *Engine) processQuizAnswer(ctx context.Context, id Identity, questionID, value string, v View) error {
	return e.sessions.Update(id.TelegramID, func(s *session.Session) error {
		flow, ok := s.Quiz()
		if !ok {
			return v.Ack(ctx, "")
		}

		if _, ok := e.personas.FindQuizOption(questionID, value); !ok {
			return v.Ack(ctx, "")
		}

		if s.QuizAnswers == nil {
			s.QuizAnswers = map[string]string{}
		}
		s.QuizAnswers[questionID] = value
		// Tags are rebuilt from the answer map, so answering the same
		// question again (including a retried final press after a failed
		// persist) never duplicates its tags. Repeats across different
		// questions keep every occurrence and weigh more in scoring.
		s.QuizTags = e.quizTagsFrom(s.QuizAnswers)

		next := flow.Step + 1
		if next >= e.personas.QuizLen() {
			return e.finishQuiz(ctx, id, s, v)
		}

		flow.Step = next
		if err := e.renderQuizQuestion(ctx, next, v); err != nil {
			return err
		}
		return v.Ack(ctx, "Tanlov qabul qilindi.")
	})
}

// quizTagsFrom collects the option tags of every recorded answer in
// question order.
func (e *Engine) quizTagsFrom(answers map[string]string) []string {
	var tags []string
	for _, question := range e.personas.QuizQuestions() {
		value, ok := answers[question.ID]
		if !ok {
			continue
		}
		if option, ok := e.personas.FindQuizOption(question.ID, value); ok {
			tags = append(tags, option.Tags...)
		}
	}
	return tags
}

// finishQuiz merges quiz tags with the stored profile's focus values,
// scores the persona, persists the updated profile (raw answers
// included) and only then clears the quiz state, keeping the final
// answer press retryable.
func (e *Engine) finishQuiz(ctx context.Context, id Identity, s *session.Session, v View) error {
	user, err := e.resolveUser(ctx, id, v)
	if user == nil {
		return err
	}

	stored, err := e.profiles.Get(ctx, user.ID)
	if err != nil {
		logger.Error(ctx, "engine", "quiz.profile.load.fail", slog.String("err", err.Error()))
		return v.Ack(ctx, textGenericError)
	}

	gender := catalog.FilterAll
	var focusValues []string
	if stored != nil {
		switch stored.TargetGender {
		case storage.TargetBoy:
			gender = catalog.FilterBoy
		case storage.TargetGirl:
			gender = catalog.FilterGirl
		}
		focusValues = stored.FocusValues
	}

	// BuildRecommendations already folds the profile focus values into the
	// scored multiset, so only the quiz tags ride along as answer tags.
	rec := e.personas.BuildRecommendations(persona.Profile{
		TargetGender: gender,
		FocusValues:  focusValues,
	}, s.QuizTags)

	target := storage.TargetUnknown
	switch gender {
	case catalog.FilterBoy:
		target = storage.TargetBoy
	case catalog.FilterGirl:
		target = storage.TargetGirl
	}

	var suggestedFocus []string
	for _, suggestion := range rec.Suggestions {
		suggestedFocus = append(suggestedFocus, suggestion.FocusValues...)
	}

	if err := e.profiles.Upsert(ctx, user.ID, storage.ProfileUpdate{
		TargetGender: target,
		FocusValues:  suggestedFocus,
		PersonaType:  rec.PersonaCode,
		QuizAnswers:  s.QuizAnswers,
	}); err != nil {
		logger.Error(ctx, "engine", "quiz.persist.fail", slog.String("err", err.Error()))
		return v.Ack(ctx, textGenericError)
	}

	message := fmt.Sprintf("✅ Mini-test yakunlandi!\nProfil: %s\n%s\n\n%s",
		format.Bold(rec.PersonaLabel), rec.Summary,
		strings.Join(suggestionLines(rec.Suggestions), "\n"))

	kb := suggestionButtons(Keyboard{}, rec.Suggestions).Row(Btn("🏠 Menyu", LegacyMainMenu))

	if err := v.Render(ctx, message, kb); err != nil {
		return err
	}

	s.ClearQuiz()
	return v.Ack(ctx, "Tavsiyalar tayyor!")
}
