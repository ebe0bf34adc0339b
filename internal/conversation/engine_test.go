package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"namebot/internal/catalog"
	"namebot/internal/persona"
	"namebot/internal/session"
	"namebot/internal/storage"
)

// fakeView records every delivery call. Ack mirrors the production
// contract: the first call wins, later calls are silent no-ops.
type fakeView struct {
	callback  bool
	messageID int
	nextID    int

	renders []string
	lastKB  Keyboard
	sends   []string
	notices []string
	alerts  []string
	deleted []int
	polls   []string
	voices  []string

	ackDone   bool
	ackNotice string
}

func newCallbackView(messageID int) *fakeView {
	return &fakeView{callback: true, messageID: messageID, nextID: 1000}
}

func newMessageView(messageID int) *fakeView {
	return &fakeView{messageID: messageID, nextID: 1000}
}

func (v *fakeView) Render(_ context.Context, text string, kb Keyboard) error {
	v.renders = append(v.renders, text)
	v.lastKB = kb
	return nil
}

func (v *fakeView) Send(_ context.Context, text string, kb Keyboard) (int, error) {
	v.sends = append(v.sends, text)
	v.lastKB = kb
	v.nextID++
	return v.nextID, nil
}

func (v *fakeView) Notify(_ context.Context, text string) error {
	v.notices = append(v.notices, text)
	return nil
}

func (v *fakeView) Ack(_ context.Context, notice string) error {
	if v.ackDone {
		return nil
	}
	v.ackDone = true
	v.ackNotice = notice
	return nil
}

func (v *fakeView) Alert(_ context.Context, notice string) error {
	v.alerts = append(v.alerts, notice)
	v.ackDone = true
	return nil
}

func (v *fakeView) Delete(_ context.Context, messageID int) error {
	v.deleted = append(v.deleted, messageID)
	return nil
}

func (v *fakeView) SendPoll(_ context.Context, question string, _ []string) error {
	v.polls = append(v.polls, question)
	return nil
}

func (v *fakeView) SendVoice(_ context.Context, url, _ string) error {
	v.voices = append(v.voices, url)
	return nil
}

func (v *fakeView) IsCallback() bool { return v.callback }
func (v *fakeView) MessageID() int   { return v.messageID }

func (v *fakeView) lastRender(t *testing.T) string {
	t.Helper()
	if len(v.renders) == 0 {
		t.Fatal("expected at least one render")
	}
	return v.renders[len(v.renders)-1]
}

type fakeUsers struct {
	byTelegram map[int64]*storage.User
	seq        int
	failLookup bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byTelegram: make(map[int64]*storage.User)}
}

func (f *fakeUsers) Ensure(_ context.Context, telegramID int64, username, firstName, lastName string) (*storage.User, error) {
	if u, ok := f.byTelegram[telegramID]; ok {
		return u, nil
	}
	f.seq++
	u := &storage.User{
		ID:         "user-" + strconv.Itoa(f.seq),
		TelegramID: telegramID,
	}
	if username != "" {
		u.Username = &username
	}
	if firstName != "" {
		u.FirstName = &firstName
	}
	if lastName != "" {
		u.LastName = &lastName
	}
	f.byTelegram[telegramID] = u
	return u, nil
}

func (f *fakeUsers) ByTelegramID(_ context.Context, telegramID int64) (*storage.User, error) {
	if f.failLookup {
		return nil, errors.New("storage down")
	}
	return f.byTelegram[telegramID], nil
}

func (f *fakeUsers) Count(context.Context) (int, error) {
	return len(f.byTelegram), nil
}

func (f *fakeUsers) CountActive(context.Context) (int, error) {
	active := 0
	for _, u := range f.byTelegram {
		if u.IsActive {
			active++
		}
	}
	return active, nil
}

func (f *fakeUsers) grantAccess(telegramID int64, now time.Time) {
	u := f.byTelegram[telegramID]
	u.IsActive = true
	end := now.Add(24 * time.Hour)
	u.SubscriptionEnd = &end
}

type fakeFavorites struct {
	// newest first, keyed by user ID
	byUser map[string][]storage.FavoriteItem
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{byUser: make(map[string][]storage.FavoriteItem)}
}

func (f *fakeFavorites) Toggle(_ context.Context, userID string, s catalog.Suggestion) (bool, error) {
	items := f.byUser[userID]
	for i, item := range items {
		if item.Slug == s.Slug {
			f.byUser[userID] = append(items[:i], items[i+1:]...)
			return false, nil
		}
	}
	f.byUser[userID] = append([]storage.FavoriteItem{{
		Name:    s.Name,
		Gender:  string(s.Gender),
		Slug:    s.Slug,
		Origin:  s.Origin,
		Meaning: s.Meaning,
	}}, items...)
	return true, nil
}

func (f *fakeFavorites) List(_ context.Context, userID string, page int) (storage.FavoritePage, error) {
	items := f.byUser[userID]
	total := len(items)
	totalPages := (total + storage.FavoritesPageSize - 1) / storage.FavoritesPageSize

	start := (page - 1) * storage.FavoritesPageSize
	if start > total {
		start = total
	}
	end := start + storage.FavoritesPageSize
	if end > total {
		end = total
	}

	return storage.FavoritePage{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

type fakeProfiles struct {
	byUser    map[string]*storage.PersonaProfile
	upsertErr error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byUser: make(map[string]*storage.PersonaProfile)}
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*storage.PersonaProfile, error) {
	return f.byUser[userID], nil
}

// Upsert mirrors the repo's COALESCE merge: empty update fields keep the
// stored value.
func (f *fakeProfiles) Upsert(_ context.Context, userID string, upd storage.ProfileUpdate) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	p := f.byUser[userID]
	if p == nil {
		p = &storage.PersonaProfile{ID: "profile-" + userID, UserID: userID}
		f.byUser[userID] = p
	}
	if upd.ExpectedBirthDate != nil {
		p.ExpectedBirthDate = upd.ExpectedBirthDate
	}
	if upd.TargetGender != "" {
		p.TargetGender = upd.TargetGender
	} else {
		p.TargetGender = storage.TargetUnknown
	}
	if upd.FamilyName != "" {
		name := upd.FamilyName
		p.FamilyName = &name
	}
	if upd.ParentNames != nil {
		p.ParentNames = append(p.ParentNames[:0:0], upd.ParentNames...)
	}
	if upd.FocusValues != nil {
		p.FocusValues = append(p.FocusValues[:0:0], upd.FocusValues...)
	}
	if upd.PersonaType != "" {
		code := upd.PersonaType
		p.PersonaType = &code
	}
	if upd.QuizAnswers != nil {
		encoded, err := json.Marshal(upd.QuizAnswers)
		if err != nil {
			return err
		}
		p.QuizAnswers = encoded
	}
	return nil
}

type fakePlans struct {
	plan *storage.Plan
}

func (f *fakePlans) ByName(_ context.Context, name string) (*storage.Plan, error) {
	if f.plan != nil && f.plan.Name == name {
		return f.plan, nil
	}
	return nil, nil
}

func (f *fakePlans) ByID(_ context.Context, id string) (*storage.Plan, error) {
	if f.plan != nil && f.plan.ID == id {
		return f.plan, nil
	}
	return nil, nil
}

type fakeLinks struct {
	paymeErr error
}

func (f *fakeLinks) ClickLink(planID, userID string, _ float64) string {
	return "https://click.test/" + planID + "/" + userID
}

func (f *fakeLinks) PaymeLink(planID, userID string, _ float64) (string, error) {
	if f.paymeErr != nil {
		return "", f.paymeErr
	}
	return "https://payme.test/" + planID + "/" + userID, nil
}

func (f *fakeLinks) UzcardLink(planID, userID, _ string) string {
	return "https://uzcard.test/" + planID + "/" + userID
}

type fixture struct {
	engine    *Engine
	sessions  *session.Store
	users     *fakeUsers
	favorites *fakeFavorites
	profiles  *fakeProfiles
	plans     *fakePlans
	links     *fakeLinks
	now       time.Time
}

func newFixture() *fixture {
	f := &fixture{
		sessions:  session.NewStore(),
		users:     newFakeUsers(),
		favorites: newFakeFavorites(),
		profiles:  newFakeProfiles(),
		plans: &fakePlans{plan: &storage.Plan{
			ID:           "plan-basic",
			Name:         storage.DefaultPlanName,
			Price:        5555,
			SelectedName: "onetime",
		}},
		links: &fakeLinks{},
		now:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	cat := catalog.New()
	f.engine = NewEngine(Deps{
		Sessions:  f.sessions,
		Catalog:   cat,
		Personas:  persona.NewEngine(cat),
		Users:     f.users,
		Favorites: f.favorites,
		Profiles:  f.profiles,
		Plans:     f.plans,
		Links:     f.links,
		Now:       func() time.Time { return f.now },
		Rand:      func(int) int { return 0 },
	})
	return f
}

func (f *fixture) register(t *testing.T, id Identity) *storage.User {
	t.Helper()
	user, err := f.users.Ensure(context.Background(), id.TelegramID, id.Username, id.FirstName, id.LastName)
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	return user
}

func (f *fixture) wizard(t *testing.T, telegramID int64) *session.PersonalizationFlow {
	t.Helper()
	var flow *session.PersonalizationFlow
	_ = f.sessions.Update(telegramID, func(s *session.Session) error {
		flow, _ = s.Personalization()
		return nil
	})
	return flow
}

func kbToken(kb Keyboard, token string) bool {
	for _, row := range kb {
		for _, btn := range row {
			if btn.Token == token {
				return true
			}
		}
	}
	return false
}

func kbURL(kb Keyboard, url string) bool {
	for _, row := range kb {
		for _, btn := range row {
			if btn.URL == url {
				return true
			}
		}
	}
	return false
}

var alice = Identity{TelegramID: 11, Username: "alice", FirstName: "Alice"}

func TestStartSweepsHistoryAndResetsSession(t *testing.T) {
	f := newFixture()

	_ = f.sessions.Update(alice.TelegramID, func(s *session.Session) error {
		s.Flow = session.NewPersonalizationFlow()
		return nil
	})

	v := newMessageView(60)
	if err := f.engine.Start(context.Background(), alice, v); err != nil {
		t.Fatalf("start: %v", err)
	}

	if len(v.deleted) != 50 {
		t.Fatalf("deleted %d messages, want 50", len(v.deleted))
	}
	if v.deleted[0] != 60 || v.deleted[49] != 11 {
		t.Fatalf("sweep range = [%d..%d], want [60..11]", v.deleted[0], v.deleted[49])
	}
	if f.engine.HasActiveFlow(alice.TelegramID) {
		t.Fatal("session flow should be reset by /start")
	}
	if f.users.byTelegram[alice.TelegramID] == nil {
		t.Fatal("user should be registered on /start")
	}
	if len(v.sends) != 1 || !strings.Contains(v.sends[0], "Assalomu alaykum, Alice!") {
		t.Fatalf("unexpected menu message: %v", v.sends)
	}
}

func TestMainMenuPaidAndUnpaid(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newMessageView(1)
	if err := f.engine.Start(context.Background(), alice, v); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(v.sends[0], "5555 so'm") {
		t.Fatal("unpaid menu should mention the price")
	}
	if !kbToken(v.lastKB, LegacyOnetimePayment) {
		t.Fatal("unpaid menu should offer the payment button")
	}

	f.users.grantAccess(alice.TelegramID, f.now)
	v = newMessageView(2)
	if err := f.engine.Start(context.Background(), alice, v); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(v.sends[0], "Premium") {
		t.Fatal("paid menu should greet the premium user")
	}
	if kbToken(v.lastKB, LegacyOnetimePayment) {
		t.Fatal("paid menu must not offer the payment button")
	}
}

func TestPersonalizationWizardHappyPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "menu:personal", v); err != nil {
		t.Fatalf("menu:personal: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "jins uchun") {
		t.Fatal("expected the gender prompt")
	}
	if !v.ackDone {
		t.Fatal("callback not acked")
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "personal:gender:girl", v); err != nil {
		t.Fatalf("gender: %v", err)
	}
	flow := f.wizard(t, alice.TelegramID)
	if flow == nil || flow.Step != 2 || flow.TargetGender != catalog.FilterGirl {
		t.Fatalf("after gender: flow = %+v", flow)
	}

	// Invalid date re-prompts and leaves the flow untouched.
	v = newMessageView(6)
	if err := f.engine.HandleText(ctx, alice, "01.09.2026", v); err != nil {
		t.Fatalf("invalid date: %v", err)
	}
	if len(v.notices) != 1 || !strings.Contains(v.notices[0], "YYYY-MM-DD") {
		t.Fatalf("expected date format notice, got %v", v.notices)
	}
	flow = f.wizard(t, alice.TelegramID)
	if flow.Step != 2 || flow.BirthDate != nil {
		t.Fatalf("invalid date must not advance: %+v", flow)
	}

	v = newMessageView(7)
	if err := f.engine.HandleText(ctx, alice, "2026-09-01", v); err != nil {
		t.Fatalf("date: %v", err)
	}
	flow = f.wizard(t, alice.TelegramID)
	if flow.Step != 3 || flow.BirthDate == nil {
		t.Fatalf("after date: flow = %+v", flow)
	}

	v = newMessageView(8)
	if err := f.engine.HandleText(ctx, alice, "skip", v); err != nil {
		t.Fatalf("family skip: %v", err)
	}
	flow = f.wizard(t, alice.TelegramID)
	if flow.Step != 4 || flow.FamilyName != "" {
		t.Fatalf("after family skip: flow = %+v", flow)
	}

	v = newMessageView(9)
	if err := f.engine.HandleText(ctx, alice, "Nodira, , Farhod", v); err != nil {
		t.Fatalf("parents: %v", err)
	}
	flow = f.wizard(t, alice.TelegramID)
	if flow.Step != 5 || len(flow.ParentNames) != 2 {
		t.Fatalf("after parents: flow = %+v", flow)
	}
	if flow.ParentNames[0] != "Nodira" || flow.ParentNames[1] != "Farhod" {
		t.Fatalf("parent names = %v", flow.ParentNames)
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "personal:focus:ramziy", v); err != nil {
		t.Fatalf("focus toggle: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "#ramziy") {
		t.Fatal("selected tag should show in the focus prompt")
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "personal:focus:done", v); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "Shaxsiy profil") {
		t.Fatal("finalize should render the profile card")
	}
	if f.engine.HasActiveFlow(alice.TelegramID) {
		t.Fatal("flow should be cleared after finalize")
	}

	userID := f.users.byTelegram[alice.TelegramID].ID
	profile := f.profiles.byUser[userID]
	if profile == nil {
		t.Fatal("profile not persisted")
	}
	if profile.TargetGender != storage.TargetGirl {
		t.Fatalf("target gender = %q", profile.TargetGender)
	}
	if profile.PersonaType == nil || *profile.PersonaType != "radiant" {
		t.Fatalf("persona type = %v, want radiant", profile.PersonaType)
	}
	if len(profile.FocusValues) != 1 || profile.FocusValues[0] != "ramziy" {
		t.Fatalf("focus values = %v", profile.FocusValues)
	}
	if profile.ExpectedBirthDate == nil {
		t.Fatal("birth date not persisted")
	}
}

func TestGenderCallbackWithoutFlowStartsOne(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "personal:gender:boy", v); err != nil {
		t.Fatalf("gender: %v", err)
	}

	flow := f.wizard(t, alice.TelegramID)
	if flow == nil {
		t.Fatal("a fresh flow should have been created")
	}
	if flow.Step != 2 || flow.TargetGender != catalog.FilterBoy {
		t.Fatalf("flow = %+v", flow)
	}
}

func TestQuizFullRun(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:start", v); err != nil {
		t.Fatalf("quiz start: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "Savol 1/5") {
		t.Fatalf("expected first question, got %q", v.lastRender(t))
	}

	answers := []string{
		"quiz:answer:temper:leader",
		"quiz:answer:legacy:modern",
		"quiz:answer:sound:short",
		"quiz:answer:blend:rhythm",
	}
	for i, data := range answers {
		v = newCallbackView(5)
		if err := f.engine.HandleCallback(ctx, alice, data, v); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		want := fmt.Sprintf("Savol %d/5", i+2)
		if !strings.Contains(v.lastRender(t), want) {
			t.Fatalf("answer %d: expected %q, got %q", i, want, v.lastRender(t))
		}
		if v.ackNotice != "Tanlov qabul qilindi." {
			t.Fatalf("answer %d ack = %q", i, v.ackNotice)
		}
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:answer:bonus:trendy", v); err != nil {
		t.Fatalf("final answer: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "Mini-test yakunlandi") {
		t.Fatalf("expected the result card, got %q", v.lastRender(t))
	}
	if v.ackNotice != "Tavsiyalar tayyor!" {
		t.Fatalf("final ack = %q", v.ackNotice)
	}

	// leader x2 + zamonaviy x2 beats every other persona.
	profile := f.profiles.byUser[user.ID]
	if profile == nil {
		t.Fatal("profile not persisted")
	}
	if profile.PersonaType == nil || *profile.PersonaType != "pioneer" {
		t.Fatalf("persona = %v, want pioneer", profile.PersonaType)
	}

	var stored map[string]string
	if err := json.Unmarshal(profile.QuizAnswers, &stored); err != nil {
		t.Fatalf("quiz answers not stored as json: %v", err)
	}
	if len(stored) != 5 || stored["temper"] != "leader" || stored["bonus"] != "trendy" {
		t.Fatalf("stored answers = %v", stored)
	}

	if f.engine.HasActiveFlow(alice.TelegramID) {
		t.Fatal("quiz flow should be cleared after finish")
	}
	_ = f.sessions.Update(alice.TelegramID, func(s *session.Session) error {
		if s.QuizAnswers != nil || s.QuizTags != nil {
			t.Fatalf("quiz scratch state not cleared: %+v", s)
		}
		return nil
	})
}

func TestQuizAnswerWithoutFlowIsNoop(t *testing.T) {
	f := newFixture()
	user := f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "quiz:answer:temper:calm", v); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !v.ackDone {
		t.Fatal("stray answer still needs an ack")
	}
	if len(v.renders) != 0 {
		t.Fatal("stray answer must not render anything")
	}
	if f.profiles.byUser[user.ID] != nil {
		t.Fatal("stray answer must not persist a profile")
	}
}

func TestQuizUnknownOptionIgnored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:start", v); err != nil {
		t.Fatalf("quiz start: %v", err)
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:answer:temper:bogus", v); err != nil {
		t.Fatalf("bogus answer: %v", err)
	}
	if !v.ackDone {
		t.Fatal("bogus answer still needs an ack")
	}

	_ = f.sessions.Update(alice.TelegramID, func(s *session.Session) error {
		flow, ok := s.Quiz()
		if !ok || flow.Step != 0 {
			t.Fatalf("quiz must stay on step 0, flow = %+v", s.Flow)
		}
		if len(s.QuizAnswers) != 0 || len(s.QuizTags) != 0 {
			t.Fatalf("bogus answer recorded: %+v", s)
		}
		return nil
	})
}

func TestQuizCountsStoredFocusOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.register(t, alice)

	// Stored wizard focus leans radiant with three tags; the answers
	// below give pioneer four. Counted once each, pioneer wins; a doubled
	// focus contribution would flip the result to radiant.
	f.profiles.byUser[user.ID] = &storage.PersonaProfile{
		ID:           "profile-" + user.ID,
		UserID:       user.ID,
		TargetGender: storage.TargetUnknown,
		FocusValues:  []string{"ramziy", "ilhom", "muloyim"},
	}

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:start", v); err != nil {
		t.Fatalf("quiz start: %v", err)
	}
	answers := []string{
		"quiz:answer:temper:leader",
		"quiz:answer:legacy:modern",
		"quiz:answer:sound:short",
		"quiz:answer:blend:initial",
		"quiz:answer:bonus:trendy",
	}
	for i, data := range answers {
		v = newCallbackView(5)
		if err := f.engine.HandleCallback(ctx, alice, data, v); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	profile := f.profiles.byUser[user.ID]
	if profile.PersonaType == nil || *profile.PersonaType != "pioneer" {
		t.Fatalf("persona = %v, want pioneer", profile.PersonaType)
	}
}

func TestQuizFinalAnswerRetriesAfterPersistFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.register(t, alice)
	f.profiles.upsertErr = errors.New("profiles unavailable")

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:start", v); err != nil {
		t.Fatalf("quiz start: %v", err)
	}
	answers := []string{
		"quiz:answer:temper:leader",
		"quiz:answer:legacy:modern",
		"quiz:answer:sound:short",
		"quiz:answer:blend:rhythm",
	}
	for i, data := range answers {
		v = newCallbackView(5)
		if err := f.engine.HandleCallback(ctx, alice, data, v); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	// Two failed final presses must not inflate the collected tags.
	for i := 0; i < 2; i++ {
		v = newCallbackView(5)
		if err := f.engine.HandleCallback(ctx, alice, "quiz:answer:bonus:trendy", v); err != nil {
			t.Fatalf("final press %d: %v", i, err)
		}
		if v.ackNotice != textGenericError {
			t.Fatalf("final press %d ack = %q", i, v.ackNotice)
		}
	}
	if !f.engine.HasActiveFlow(alice.TelegramID) {
		t.Fatal("flow must stay open for a retry")
	}
	_ = f.sessions.Update(alice.TelegramID, func(s *session.Session) error {
		trend := 0
		for _, tag := range s.QuizTags {
			if tag == "trend" {
				trend++
			}
		}
		if trend != 1 {
			t.Fatalf("trend tag counted %d times, want 1 (tags: %v)", trend, s.QuizTags)
		}
		return nil
	})

	f.profiles.upsertErr = nil
	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "quiz:answer:bonus:trendy", v); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if v.ackNotice != "Tavsiyalar tayyor!" {
		t.Fatalf("retry ack = %q", v.ackNotice)
	}

	profile := f.profiles.byUser[user.ID]
	if profile == nil || profile.PersonaType == nil || *profile.PersonaType != "pioneer" {
		t.Fatalf("profile = %+v, want pioneer", profile)
	}
	if f.engine.HasActiveFlow(alice.TelegramID) {
		t.Fatal("quiz flow should be cleared after a successful retry")
	}
}

func TestFavoritesToggle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "fav:toggle:zuhra", v); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if v.ackNotice != "⭐ Sevimlilarga qo'shildi." {
		t.Fatalf("first toggle ack = %q", v.ackNotice)
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "fav:toggle:zuhra", v); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if v.ackNotice != "🗑 Sevimlilardan olib tashlandi." {
		t.Fatalf("second toggle ack = %q", v.ackNotice)
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "fav:toggle:no-such-name", v); err != nil {
		t.Fatalf("unknown toggle: %v", err)
	}
	if v.ackNotice != "Ism topilmadi." {
		t.Fatalf("unknown toggle ack = %q", v.ackNotice)
	}
}

func TestFavoritesPaginationWrapsAround(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, alice)

	for _, slug := range []string{"zuhra", "amir", "shirin", "javlon", "muslima", "bilol", "laylo"} {
		v := newCallbackView(5)
		if err := f.engine.HandleCallback(ctx, alice, "fav:toggle:"+slug, v); err != nil {
			t.Fatalf("toggle %s: %v", slug, err)
		}
	}

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "fav:list:1", v); err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "Jami: 7") {
		t.Fatalf("expected 7 favorites, got %q", v.lastRender(t))
	}
	// Both arrows point to page 2: forward normally, backward by wrapping.
	if !kbToken(v.lastKB, "fav:list:2") {
		t.Fatal("page 1 should link to page 2")
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "fav:list:2", v); err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if !kbToken(v.lastKB, "fav:list:1") {
		t.Fatal("page 2 arrows should wrap to page 1")
	}
}

func TestFavoritesEmptyList(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "fav:list:1", v); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "hali yo'q") {
		t.Fatalf("expected the empty notice, got %q", v.lastRender(t))
	}
}

func TestPaymentProviderFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, LegacyOnetimePayment, v); err != nil {
		t.Fatalf("payment offer: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "Bir martalik to'lov") {
		t.Fatalf("expected the offer card, got %q", v.lastRender(t))
	}
	if !kbToken(v.lastKB, "onetime|click") || !kbToken(v.lastKB, "onetime|payme") || !kbToken(v.lastKB, "onetime|uzcard") {
		t.Fatal("offer should list all three providers")
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "onetime|click", v); err != nil {
		t.Fatalf("click: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "Click orqali to'lov") {
		t.Fatalf("expected the click card, got %q", v.lastRender(t))
	}
	if !kbURL(v.lastKB, "https://click.test/plan-basic/"+user.ID) {
		t.Fatal("click card should carry the checkout link")
	}

	v = newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "onetime|payme", v); err != nil {
		t.Fatalf("payme: %v", err)
	}
	if !kbURL(v.lastKB, "https://payme.test/plan-basic/"+user.ID) {
		t.Fatal("payme card should carry the checkout link")
	}
}

func TestPaymentProviderWithoutPendingPlan(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "onetime|payme", v); err != nil {
		t.Fatalf("payme: %v", err)
	}
	if v.ackNotice != "To'lov rejasi topilmadi." {
		t.Fatalf("ack = %q", v.ackNotice)
	}
	if len(v.renders) != 0 {
		t.Fatal("no card should render without a pending plan")
	}
}

func TestPaymentUnknownProviderAcksSilently(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "onetime|paypal", v); err != nil {
		t.Fatalf("unknown provider: %v", err)
	}
	if !v.ackDone || v.ackNotice != "" {
		t.Fatalf("expected a bare ack, got %q", v.ackNotice)
	}
}

func TestPaymentAlreadyPaidAlert(t *testing.T) {
	f := newFixture()
	f.register(t, alice)
	f.users.grantAccess(alice.TelegramID, f.now)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, LegacyOnetimePayment, v); err != nil {
		t.Fatalf("payment offer: %v", err)
	}
	if len(v.alerts) != 1 || !strings.Contains(v.alerts[0], "VIP") {
		t.Fatalf("expected the VIP alert, got %v", v.alerts)
	}
	if len(v.renders) != 0 {
		t.Fatal("paid users must not see the offer card")
	}
}

func TestNameLookupPaymentGate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v := newMessageView(9)
	if err := f.engine.HandleText(ctx, alice, "Zuhra", v); err != nil {
		t.Fatalf("unpaid lookup: %v", err)
	}
	if len(v.sends) != 1 || !strings.Contains(v.sends[0], "🔒") {
		t.Fatalf("unpaid lookup should hit the paywall, got %v", v.sends)
	}

	f.users.grantAccess(alice.TelegramID, f.now)
	v = newMessageView(10)
	if err := f.engine.HandleText(ctx, alice, "Zuhra", v); err != nil {
		t.Fatalf("paid lookup: %v", err)
	}
	if len(v.sends) != 1 || !strings.Contains(v.sends[0], "Zuhra</b> ismi haqida") {
		t.Fatalf("expected the rich card, got %v", v.sends)
	}
	if !kbToken(v.lastKB, "fav:toggle:zuhra") {
		t.Fatal("rich card should carry the favorite toggle")
	}
}

func TestNameLookupUnknownName(t *testing.T) {
	f := newFixture()
	f.register(t, alice)
	f.users.grantAccess(alice.TelegramID, f.now)

	v := newMessageView(9)
	if err := f.engine.HandleText(context.Background(), alice, "Benedikt", v); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(v.sends) != 1 || !strings.Contains(v.sends[0], "topilmadi") {
		t.Fatalf("expected the not-found card, got %v", v.sends)
	}
}

func TestInvalidNameInputHelp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v := newMessageView(9)
	if err := f.engine.HandleText(ctx, alice, "Zuhra123", v); err != nil {
		t.Fatalf("digits: %v", err)
	}
	if len(v.sends) != 1 || !strings.Contains(v.sends[0], "faqat harflardan") {
		t.Fatalf("expected the letters-only help, got %v", v.sends)
	}

	v = newMessageView(10)
	if err := f.engine.HandleText(ctx, alice, strings.Repeat("a", 60), v); err != nil {
		t.Fatalf("long input: %v", err)
	}
	if len(v.sends) != 1 || !strings.Contains(v.sends[0], "juda uzun") {
		t.Fatalf("expected the too-long help, got %v", v.sends)
	}
}

func TestWizardConsumesTextBeforeNameLookup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, alice)
	f.users.grantAccess(alice.TelegramID, f.now)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(ctx, alice, "personal:gender:girl", v); err != nil {
		t.Fatalf("gender: %v", err)
	}

	// "Zuhra" is a valid catalog name but the wizard owns text now, so
	// it is treated as a (bad) birth-date input.
	v = newMessageView(6)
	if err := f.engine.HandleText(ctx, alice, "Zuhra", v); err != nil {
		t.Fatalf("text: %v", err)
	}
	if len(v.sends) != 0 {
		t.Fatalf("name lookup must not trigger inside the wizard: %v", v.sends)
	}
	if len(v.notices) != 1 || !strings.Contains(v.notices[0], "YYYY-MM-DD") {
		t.Fatalf("expected the date re-prompt, got %v", v.notices)
	}
}

func TestCallbackAckedOnEveryBranch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, alice)

	tokens := []string{
		"menu:trends",
		"menu:filters",
		"menu:community",
		"fav:list:1",
		"quiz:start",
		"trend:overview:monthly:all",
		"filter:combo:symbolic_leadership:all",
		"community:poll",
		LegacyMainMenu,
		LegacyNameMeaning,
		"totally-unknown",
	}
	for _, data := range tokens {
		v := newCallbackView(5)
		if err := f.engine.HandleCallback(ctx, alice, data, v); err != nil {
			t.Fatalf("%s: %v", data, err)
		}
		if !v.ackDone {
			t.Errorf("%s: callback left unacked", data)
		}
	}
}

func TestCommunityPollUsesRand(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "community:poll", v); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(v.polls) != 1 {
		t.Fatalf("expected one poll, got %v", v.polls)
	}
}

func TestAdminStats(t *testing.T) {
	f := newFixture()
	f.register(t, alice)
	f.register(t, Identity{TelegramID: 12, FirstName: "Bobur"})
	f.users.grantAccess(alice.TelegramID, f.now)

	v := newMessageView(3)
	if err := f.engine.AdminStats(context.Background(), alice, v); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(v.notices) != 1 {
		t.Fatalf("expected one notice, got %v", v.notices)
	}
	if !strings.Contains(v.notices[0], "Jami foydalanuvchilar: 2") ||
		!strings.Contains(v.notices[0], "Faol foydalanuvchilar: 1") {
		t.Fatalf("stats = %q", v.notices[0])
	}
}

func TestAudioPreview(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "name:audio:zuhra", v); err != nil {
		t.Fatalf("audio: %v", err)
	}
	if len(v.voices) != 1 {
		t.Fatalf("expected a voice message, got %v", v.voices)
	}
}

func TestSimilarNames(t *testing.T) {
	f := newFixture()
	f.register(t, alice)

	v := newCallbackView(5)
	if err := f.engine.HandleCallback(context.Background(), alice, "name:similar:zuhra", v); err != nil {
		t.Fatalf("similar: %v", err)
	}
	if !strings.Contains(v.lastRender(t), "O'xshash ismlar") {
		t.Fatalf("expected the similar list, got %q", v.lastRender(t))
	}
}

func TestInlineCards(t *testing.T) {
	f := newFixture()

	cards := f.engine.InlineCards("zuh", 10)
	if len(cards) != 1 || cards[0].Slug != "zuhra" {
		t.Fatalf("cards = %+v", cards)
	}
	if !strings.Contains(cards[0].Message, "ismi haqida") {
		t.Fatalf("card message = %q", cards[0].Message)
	}

	all := f.engine.InlineCards("", 3)
	if len(all) != 3 {
		t.Fatalf("empty query should return the library head, got %d", len(all))
	}
}
