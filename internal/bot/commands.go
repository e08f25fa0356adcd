package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/notes"
)

func (b *Bot) handleStart(c tele.Context) error {
	ctx := b.states.Get(c.Sender().ID)

	text := fmt.Sprintf(
		"👋 Добро пожаловать\\!\n\n📅 Активная дата: %s\n\nВыберите действие:",
		esc(clock.FormatDay(ctx.ActiveDate)),
	)
	return c.Send(text, mainMenu(), tele.ModeMarkdownV2)
}

func (b *Bot) handleToday(c tele.Context) error {
	return b.sendNote(c, b.clk.Today())
}

func (b *Bot) handleGet(c tele.Context) error {
	payload := c.Message().Payload
	if payload == "" {
		return c.Send(
			"❌ Укажите дату в формате dd\\-Mmm\\-yyyy\nНапример: `/get 11-Oct-2025`",
			tele.ModeMarkdownV2,
		)
	}

	day, err := clock.ParseDay(payload)
	if err != nil {
		return c.Send(
			"❌ Неверный формат даты\\. Используйте формат dd\\-Mmm\\-yyyy\nНапример: `/get 11-Oct-2025`",
			tele.ModeMarkdownV2,
		)
	}
	return b.sendNote(c, day)
}

func (b *Bot) sendNote(c tele.Context, day time.Time) error {
	date := esc(clock.FormatDay(day))

	content, err := b.store.Read(day)
	if errors.Is(err, notes.ErrNotFound) {
		return c.Send(fmt.Sprintf("📭 Заметка за %s не найдена", date), tele.ModeMarkdownV2)
	}
	if err != nil {
		b.log.Error("reading note failed", zap.Error(err))
		return c.Send("❌ Не удалось прочитать заметку\\.", tele.ModeMarkdownV2)
	}

	text := fmt.Sprintf("📝 *Заметка за %s:*\n\n%s", date, esc(content))
	return c.Send(text, tele.ModeMarkdownV2)
}

func (b *Bot) handleStats(c tele.Context) error {
	s, err := b.db.Stats()
	if err != nil {
		b.log.Error("stats query failed", zap.Error(err))
		return c.Send("❌ Не удалось получить статистику.")
	}

	text := fmt.Sprintf(
		"📈 Статистика\n\nЗаметок: %d\nЗадач: %d (выполнено: %d)\nОценённых дней: %d",
		s.Notes, s.TasksTotal, s.TasksDone, s.Rated,
	)
	if s.Rated > 0 {
		text += fmt.Sprintf("\nСредняя оценка: %.1f", s.AvgRating)
	}
	return c.Send(text)
}

func (b *Bot) handleSummary(c tele.Context) error {
	if b.ai == nil {
		return c.Send("🤖 ИИ не настроен. Задайте OLLAMA_URL, чтобы включить /summary.")
	}

	userCtx := b.states.Get(c.Sender().ID)
	day := userCtx.ActiveDate
	date := esc(clock.FormatDay(day))

	content, err := b.store.Read(day)
	if errors.Is(err, notes.ErrNotFound) {
		return c.Send(fmt.Sprintf("📭 Заметка за %s пока пуста", date), tele.ModeMarkdownV2)
	}
	if err != nil {
		return c.Send("❌ Не удалось прочитать заметку\\.", tele.ModeMarkdownV2)
	}

	_ = c.Send("🧠 Думаю...")

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	summary, err := b.ai.SummarizeDay(ctx, clock.FormatDay(day), content)
	if err != nil {
		b.log.Warn("summary generation failed", zap.Error(err))
		return c.Send(fmt.Sprintf("❌ Ошибка ИИ: %v", err))
	}

	suggestions, err := b.ai.SuggestTasks(ctx, content)
	if err != nil {
		b.log.Warn("task suggestion failed", zap.Error(err))
		return c.Send(fmt.Sprintf("📝 Итог дня %s:\n\n%s", clock.FormatDay(day), summary))
	}

	return c.Send(fmt.Sprintf(
		"📝 Итог дня %s:\n\n%s\n\nВозможные задачи:\n%s",
		clock.FormatDay(day), summary, suggestions,
	))
}
