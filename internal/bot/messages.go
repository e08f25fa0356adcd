package bot

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/state"
)

// handleText routes free-form text by conversation state: a pending rating
// prompt, a pending new-task prompt, or a plain append to the active note.
func (b *Bot) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	userCtx := b.states.Get(userID)

	switch userCtx.State {
	case state.WaitingRating:
		return b.textRating(c, userCtx, text)
	case state.WaitingNewTask:
		return b.textNewTask(c, userCtx, text)
	default:
		return b.textAppend(c, userCtx, text)
	}
}

func (b *Bot) textRating(c tele.Context, userCtx state.Context, text string) error {
	rating, err := strconv.Atoi(text)
	if err != nil {
		return c.Send("❌ Пожалуйста, введите число от 0 до 10\\.", tele.ModeMarkdownV2)
	}
	if rating < 0 || rating > 10 {
		return c.Send("❌ Оценка должна быть от 0 до 10\\. Попробуйте снова\\.", tele.ModeMarkdownV2)
	}

	if err := b.store.Ensure(userCtx.ActiveDate); err != nil {
		b.log.Error("ensuring note failed", zap.Error(err))
		return c.Send("❌ Ошибка при сохранении оценки\\.", tele.ModeMarkdownV2)
	}
	if err := b.store.SetRating(userCtx.ActiveDate, rating); err != nil {
		b.log.Error("saving rating failed", zap.Error(err))
		return c.Send("❌ Ошибка при сохранении оценки\\.", tele.ModeMarkdownV2)
	}

	b.states.SetState(userCtx.UserID, state.Idle)
	b.log.Info("rating saved",
		zap.Int("rating", rating),
		zap.String("date", clock.FormatDay(userCtx.ActiveDate)))

	return c.Send(fmt.Sprintf("✅ Оценка %d сохранена\\!", rating), mainMenu(), tele.ModeMarkdownV2)
}

func (b *Bot) textNewTask(c tele.Context, userCtx state.Context, text string) error {
	if err := b.store.Ensure(userCtx.ActiveDate); err != nil {
		b.log.Error("ensuring note failed", zap.Error(err))
		return c.Send("❌ Ошибка при добавлении задачи\\.", tele.ModeMarkdownV2)
	}
	if err := b.store.AddTask(userCtx.ActiveDate, text); err != nil {
		b.log.Error("adding task failed", zap.Error(err))
		return c.Send("❌ Ошибка при добавлении задачи\\.", tele.ModeMarkdownV2)
	}

	b.states.SetState(userCtx.UserID, state.TasksView)
	b.log.Info("task added", zap.String("date", clock.FormatDay(userCtx.ActiveDate)))

	if err := c.Send(fmt.Sprintf("✅ Задача добавлена: %s", esc(text)), tele.ModeMarkdownV2); err != nil {
		return err
	}

	// Show the refreshed checklist right away.
	tasks, err := b.store.Tasks(userCtx.ActiveDate)
	if err != nil {
		return nil
	}
	return c.Send(tasksText(userCtx.ActiveDate, len(tasks)), tasksKeyboard(tasks, userCtx.TaskPage), tele.ModeMarkdownV2)
}

func (b *Bot) textAppend(c tele.Context, userCtx state.Context, text string) error {
	if err := b.store.Append(userCtx.ActiveDate, text); err != nil {
		b.log.Error("appending to note failed", zap.Error(err))
		return c.Send("❌ Ошибка при сохранении сообщения\\.", tele.ModeMarkdownV2)
	}

	date := clock.FormatDay(userCtx.ActiveDate)
	b.log.Info("text appended", zap.String("date", date))

	return c.Send(
		fmt.Sprintf("✅ Текст добавлен в заметку %s", esc(date)),
		mainMenu(), tele.ModeMarkdownV2,
	)
}
