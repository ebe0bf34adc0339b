package session

import (
	"sync"
	"testing"
)

func TestUpdateCreatesLazily(t *testing.T) {
	st := NewStore()

	err := st.Update(42, func(s *Session) error {
		if s == nil {
			t.Fatal("session must be created lazily")
		}
		s.FavoritesPage = 3
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = st.Update(42, func(s *Session) error {
		if s.FavoritesPage != 3 {
			t.Fatalf("state not retained, got page %d", s.FavoritesPage)
		}
		return nil
	})
}

func TestFlowReplacementDiscardsPayload(t *testing.T) {
	st := NewStore()

	_ = st.Update(1, func(s *Session) error {
		f := NewPersonalizationFlow()
		f.FamilyName = "Rasulov"
		s.Flow = f
		return nil
	})
	_ = st.Update(1, func(s *Session) error {
		s.Flow = &QuizFlow{}
		return nil
	})
	_ = st.Update(1, func(s *Session) error {
		if _, ok := s.Personalization(); ok {
			t.Fatal("personalization payload must be gone after replacement")
		}
		if _, ok := s.Quiz(); !ok {
			t.Fatal("quiz flow should be active")
		}
		return nil
	})
}

func TestHasActiveFlowAndReset(t *testing.T) {
	st := NewStore()

	if st.HasActiveFlow(7) {
		t.Fatal("unknown user must not report a flow")
	}

	_ = st.Update(7, func(s *Session) error {
		s.Flow = NewPersonalizationFlow()
		s.MainMenuMessageID = 99
		return nil
	})
	if !st.HasActiveFlow(7) {
		t.Fatal("flow should be reported active")
	}

	st.Reset(7)
	if st.HasActiveFlow(7) {
		t.Fatal("reset must clear the flow")
	}
	_ = st.Update(7, func(s *Session) error {
		if s.MainMenuMessageID != 0 {
			t.Fatal("reset must clear tracked message ID")
		}
		return nil
	})
}

func TestToggleFocus(t *testing.T) {
	f := NewPersonalizationFlow()

	f.ToggleFocus("ramziy")
	f.ToggleFocus("tabiat")
	if !f.HasFocus("ramziy") || !f.HasFocus("tabiat") {
		t.Fatalf("focus toggles not applied: %+v", f.FocusValues)
	}

	f.ToggleFocus("ramziy")
	if f.HasFocus("ramziy") {
		t.Fatal("second toggle must remove the tag")
	}
	if len(f.FocusValues) != 1 || f.FocusValues[0] != "tabiat" {
		t.Fatalf("unexpected focus values: %+v", f.FocusValues)
	}
}

func TestPerUserSerialization(t *testing.T) {
	st := NewStore()
	const workers = 16
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = st.Update(1, func(s *Session) error {
					s.FavoritesPage++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	_ = st.Update(1, func(s *Session) error {
		if s.FavoritesPage != workers*iterations {
			t.Fatalf("lost updates: got %d", s.FavoritesPage)
		}
		return nil
	})
}
