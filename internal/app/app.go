// Package app assembles the bot: configuration, storage bootstrap,
// engine wiring and the Telegram run options.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"namebot/core/bootstrap"
	coretelegram "namebot/core/telegram"
	"namebot/core/telegram/commands"
	tghelpers "namebot/core/telegram/helpers"
	"namebot/core/telegram/router"
	"namebot/internal/bot"
	"namebot/internal/catalog"
	"namebot/internal/conversation"
	"namebot/internal/payments"
	"namebot/internal/persona"
	"namebot/internal/session"
	"namebot/internal/storage"
)

// App carries the wired application.
type App struct {
	cfg    *Config
	db     *sqlx.DB
	engine *conversation.Engine
}

// Bootstrap initializes logging, storage and the conversation engine.
func Bootstrap(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	if err := storage.PlanSeeder(res.DB).Seed(context.Background(), nil); err != nil {
		_ = res.DB.Close()
		return nil, fmt.Errorf("app: seeding failed: %w", err)
	}

	cat := catalog.New()
	engine := conversation.NewEngine(conversation.Deps{
		Sessions:       session.NewStore(),
		Catalog:        cat,
		Personas:       persona.NewEngine(cat),
		Users:          storage.NewUserRepo(res.DB),
		Favorites:      storage.NewFavoriteRepo(res.DB),
		Profiles:       storage.NewProfileRepo(res.DB),
		Plans:          storage.NewPlanRepo(res.DB),
		Links:          payments.NewLinks(cfg.Payments),
		SupportChannel: cfg.Bot.SupportChannel,
	})

	return &App{cfg: cfg, db: res.DB, engine: engine}, nil
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	fallbacks := bot.NewFallbacks(a.engine)

	reg.RegisterCommand("/start", commands.Command{
		Handler:     bot.StartHandler(a.engine),
		Description: "Botni ishga tushirish",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     bot.AdminStatsHandler(a.engine),
		Description: "Bot statistikasi",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(bot.TextHandler(a.engine))
	reg.SetCallbackNotFound(fallbacks.UnknownCallback())

	core := a.cfg.CoreConfig()

	var routes []coretelegram.Route
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs: core.Telegram.AdminIDs,
		OnAdminReject: func(c tele.Context) error {
			return tghelpers.SendText(c, "⛔ Sizda admin huquqi yo'q.")
		},
	})...)
	routes = append(routes, router.TextRoutes(bot.NewFlowManager(a.engine), reg, router.TextOptions{
		UnknownText:     fallbacks.UnknownText(),
		UnknownDocument: fallbacks.UnknownDocument(),
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		Dispatcher: bot.NewDispatcher(a.engine),
		NotFound:   fallbacks.UnknownCallback(),
	}))
	routes = append(routes, bot.InlineQueryRoute(a.engine))

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStop: func(context.Context, coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
