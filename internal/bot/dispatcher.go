package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "namebot/core/telegram/helpers"
	"namebot/internal/conversation"
)

func identityFrom(c tele.Context) conversation.Identity {
	sender := c.Sender()
	if sender == nil {
		return conversation.Identity{}
	}
	return conversation.Identity{
		TelegramID: sender.ID,
		Username:   sender.Username,
		FirstName:  sender.FirstName,
		LastName:   sender.LastName,
	}
}

// Dispatcher plugs the engine's callback grammar into the core callback
// router.
type Dispatcher struct {
	engine *conversation.Engine
}

// NewDispatcher wraps the engine for callback routing.
func NewDispatcher(engine *conversation.Engine) *Dispatcher {
	return &Dispatcher{engine: engine}
}

// Recognizes implements router.Dispatcher.
func (d *Dispatcher) Recognizes(data string) bool {
	return conversation.Recognizes(data)
}

// HandleCallback implements router.Dispatcher.
func (d *Dispatcher) HandleCallback(c tele.Context, data string) error {
	return d.engine.HandleCallback(tghelpers.BuildContext(c), identityFrom(c), data, NewView(c))
}

// FlowManager exposes the engine's multi-step flows to the text router:
// while a wizard is active its user's text bypasses command matching.
type FlowManager struct {
	engine *conversation.Engine
}

// NewFlowManager wraps the engine for text routing.
func NewFlowManager(engine *conversation.Engine) *FlowManager {
	return &FlowManager{engine: engine}
}

// InProgress implements router.FSM.
func (m *FlowManager) InProgress(userID int64) bool {
	return m.engine.HasActiveFlow(userID)
}

// ManagerHandler implements router.FSM.
func (m *FlowManager) ManagerHandler(c tele.Context) error {
	return m.engine.HandleText(tghelpers.BuildContext(c), identityFrom(c), c.Text(), NewView(c))
}

// TextHandler routes plain text into the engine: wizard input when a
// flow is active, otherwise the name lookup.
func TextHandler(engine *conversation.Engine) tele.HandlerFunc {
	return func(c tele.Context) error {
		return engine.HandleText(tghelpers.BuildContext(c), identityFrom(c), c.Text(), NewView(c))
	}
}

// StartHandler runs the /start flow.
func StartHandler(engine *conversation.Engine) tele.HandlerFunc {
	return func(c tele.Context) error {
		return engine.Start(tghelpers.BuildContext(c), identityFrom(c), NewView(c))
	}
}

// AdminStatsHandler renders the /admin counters. Allowlisting happens in
// the command router.
func AdminStatsHandler(engine *conversation.Engine) tele.HandlerFunc {
	return func(c tele.Context) error {
		return engine.AdminStats(tghelpers.BuildContext(c), identityFrom(c), NewView(c))
	}
}
