package router

import (
	"time"

	tg "namebot/core/telegram"
	"namebot/core/telegram/callbacks"
	"namebot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Dispatcher resolves namespaced callback tokens before flat registry keys
// are consulted. Recognizes must be cheap and side-effect free.
type Dispatcher interface {
	Recognizes(data string) bool
	HandleCallback(c tele.Context, data string) error
}

// CallbackOptions customises dispatch and fallback behaviour for callbacks.
type CallbackOptions struct {
	Dispatcher Dispatcher
	NotFound   tele.HandlerFunc
}

// CallbackRoute returns a handler that offers the raw callback token to the
// namespaced dispatcher first, then to flat registry keys, then to the
// not-found fallback. Exactly one branch runs per callback.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		data := callbacks.RawData(cb)
		key, _ := callbacks.ParseCallbackData(cb)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		if opts.Dispatcher != nil && opts.Dispatcher.Recognizes(data) {
			return handleWithSummary(c, name, start, "", "", func() error {
				return opts.Dispatcher.HandleCallback(c, data)
			}, extras...)
		}

		if cbHandler, ok := reg.GetCallback(data); ok && cbHandler != nil {
			return handleWithSummary(c, name, start, "", "", func() error {
				return cbHandler(c)
			}, extras...)
		}

		fallback := reg.CallbackNotFound()
		if fallback == nil {
			fallback = opts.NotFound
		}
		extras = append(extras, slog.String("reason", "not_found"))
		return handleWithSummary(c, name, start, "", "", func() error {
			if fallback != nil {
				return fallback(c)
			}
			return nil
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
