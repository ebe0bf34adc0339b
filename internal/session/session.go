// Package session keeps per-user conversation state in memory. State is
// scoped to a Telegram user ID and survives only for the process
// lifetime; durable facts live in storage.
package session

import (
	"time"

	"namebot/internal/catalog"
)

// FlowName tags the active multi-step flow.
type FlowName string

const (
	FlowPersonalization FlowName = "personalization"
	FlowQuiz            FlowName = "quiz"
)

// Flow is the tagged union of multi-step flow payloads. Exactly one flow
// may be active per session; replacing it discards the previous payload.
type Flow interface {
	FlowName() FlowName
}

// PersonalizationFlow carries the wizard state. Step numbering follows
// the prompts: 1 gender, 2 birth date, 3 family name, 4 parent names,
// 5 focus values.
type PersonalizationFlow struct {
	Step         int
	TargetGender catalog.FilterGender
	BirthDate    *time.Time
	FamilyName   string
	ParentNames  []string
	FocusValues  []string
}

// FlowName implements Flow.
func (f *PersonalizationFlow) FlowName() FlowName { return FlowPersonalization }

// HasFocus reports whether the tag is currently selected.
func (f *PersonalizationFlow) HasFocus(tag string) bool {
	for _, v := range f.FocusValues {
		if v == tag {
			return true
		}
	}
	return false
}

// ToggleFocus adds the tag when absent and removes it when present.
func (f *PersonalizationFlow) ToggleFocus(tag string) {
	for i, v := range f.FocusValues {
		if v == tag {
			f.FocusValues = append(f.FocusValues[:i], f.FocusValues[i+1:]...)
			return
		}
	}
	f.FocusValues = append(f.FocusValues, tag)
}

// NewPersonalizationFlow starts the wizard at the gender step.
func NewPersonalizationFlow() *PersonalizationFlow {
	return &PersonalizationFlow{Step: 1, FocusValues: []string{}}
}

// QuizFlow tracks progress through the mini quiz. Answers and tags live
// on the session so they survive a finalize retry.
type QuizFlow struct {
	Step int
}

// FlowName implements Flow.
func (f *QuizFlow) FlowName() FlowName { return FlowQuiz }

// Session is the per-user conversation state.
type Session struct {
	MainMenuMessageID int
	PendingPlanID     string
	FavoritesPage     int
	QuizAnswers       map[string]string
	QuizTags          []string
	Flow              Flow
}

// Personalization returns the active wizard flow, if any.
func (s *Session) Personalization() (*PersonalizationFlow, bool) {
	f, ok := s.Flow.(*PersonalizationFlow)
	return f, ok
}

// Quiz returns the active quiz flow, if any.
func (s *Session) Quiz() (*QuizFlow, bool) {
	f, ok := s.Flow.(*QuizFlow)
	return f, ok
}

// ClearFlow drops the active flow payload.
func (s *Session) ClearFlow() {
	s.Flow = nil
}

// ClearQuiz drops quiz progress alongside the flow.
func (s *Session) ClearQuiz() {
	s.Flow = nil
	s.QuizAnswers = nil
	s.QuizTags = nil
}
