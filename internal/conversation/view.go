package conversation

import "context"

// Button is a keyboard entry. Exactly one of Token, URL or SwitchInline
// drives the button behaviour.
type Button struct {
	Label string
	// Token is sent back as callback data when pressed.
	Token string
	// URL opens an external link.
	URL string
	// SwitchInline inserts "@bot <InlineQuery>" into a chat input.
	SwitchInline bool
	InlineQuery  string
}

// Btn builds a callback button.
func Btn(label, token string) Button {
	return Button{Label: label, Token: token}
}

// URLBtn builds a link button.
func URLBtn(label, url string) Button {
	return Button{Label: label, URL: url}
}

// InlineBtn builds a switch-inline button.
func InlineBtn(label, query string) Button {
	return Button{Label: label, SwitchInline: true, InlineQuery: query}
}

// Keyboard is an inline keyboard layout, row-major.
type Keyboard [][]Button

// Row appends a row of buttons.
func (k Keyboard) Row(buttons ...Button) Keyboard {
	return append(k, buttons)
}

// View is the delivery seam the engine renders through. The bot package
// implements it over telebot; tests implement it with a recorder.
//
// Ack answers the pending callback query; implementations must make it
// idempotent per update so every dispatch branch acks exactly once even
// on retried render paths.
type View interface {
	// Render shows text with a keyboard, editing the originating
	// message in place when possible (HTML parse mode).
	Render(ctx context.Context, text string, kb Keyboard) error
	// Send always posts a new message and returns its ID.
	Send(ctx context.Context, text string, kb Keyboard) (int, error)
	// Notify posts a short plain-text message without a keyboard.
	Notify(ctx context.Context, text string) error
	// Ack answers the pending callback; empty notice is a silent ack.
	Ack(ctx context.Context, notice string) error
	// Alert answers the pending callback with a modal alert.
	Alert(ctx context.Context, notice string) error
	// Delete removes a message from the chat, best-effort.
	Delete(ctx context.Context, messageID int) error
	// SendPoll posts a non-anonymous poll.
	SendPoll(ctx context.Context, question string, options []string) error
	// SendVoice posts a voice preview from a remote URL.
	SendVoice(ctx context.Context, url, caption string) error
	// IsCallback reports whether the current update is a button press.
	IsCallback() bool
	// MessageID returns the originating message ID, 0 when unknown.
	MessageID() int
}
