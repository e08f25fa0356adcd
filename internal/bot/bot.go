// Package bot wires the Telegram transport to the vault: commands, the
// conversation state machine, and the inline menu/tasks/calendar keyboards.
package bot

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/index"
	"dailynotesbot/internal/neural"
	"dailynotesbot/internal/notes"
	"dailynotesbot/internal/state"
)

type Config struct {
	Token  string
	RootID int64
}

type Bot struct {
	api    *tele.Bot
	cfg    Config
	store  *notes.Store
	states *state.Manager
	db     *index.DB
	ai     *neural.Client // nil when the Ollama integration is disabled
	clk    *clock.Clock
	log    *zap.Logger
}

func New(cfg Config, store *notes.Store, states *state.Manager, db *index.DB, ai *neural.Client, clk *clock.Clock, log *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.Error("update failed", zap.Error(err))
			if c != nil {
				_ = c.Send("❌ Произошла ошибка\\. Попробуйте /start", tele.ModeMarkdownV2)
			}
		},
	}

	api, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	b := &Bot{api: api, cfg: cfg, store: store, states: states, db: db, ai: ai, clk: clk, log: log}
	b.register()
	return b, nil
}

// Start blocks, long-polling for updates.
func (b *Bot) Start() {
	b.log.Info("bot online", zap.String("username", b.api.Me.Username))
	b.api.Start()
}

// Stop terminates the poller.
func (b *Bot) Stop() {
	b.api.Stop()
}

func (b *Bot) register() {
	b.api.Use(b.auth)

	b.api.Handle("/start", b.handleStart)
	b.api.Handle("/today", b.handleToday)
	b.api.Handle("/get", b.handleGet)
	b.api.Handle("/stats", b.handleStats)
	b.api.Handle("/summary", b.handleSummary)
	b.api.Handle(tele.OnText, b.handleText)

	b.api.Handle(&btnMenuRating, b.handleMenuRating)
	b.api.Handle(&btnMenuTasks, b.handleMenuTasks)
	b.api.Handle(&btnMenuNote, b.handleMenuNote)
	b.api.Handle(&btnMenuCalendar, b.handleMenuCalendar)

	b.api.Handle(&btnTaskToggle, b.handleTaskToggle)
	b.api.Handle(&btnTaskAdd, b.handleTaskAdd)
	b.api.Handle(&btnTaskPage, b.handleTaskPage)
	b.api.Handle(&btnTaskBack, b.handleTaskBack)
	b.api.Handle(&btnTaskCancel, b.handleTaskCancel)

	b.api.Handle(&btnCalPrev, b.handleCalPrev)
	b.api.Handle(&btnCalNext, b.handleCalNext)
	b.api.Handle(&btnCalSelect, b.handleCalSelect)
	b.api.Handle(&btnCalToday, b.handleCalToday)
	b.api.Handle(&btnCalBack, b.handleCalBack)

	b.api.Handle(&btnNoop, func(c tele.Context) error { return c.Respond() })
}

// auth drops every update that is not from the configured operator.
func (b *Bot) auth(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || sender.ID != b.cfg.RootID {
			if sender != nil {
				b.log.Warn("unauthorized access attempt", zap.Int64("user", sender.ID))
			}
			return nil
		}
		return next(c)
	}
}
