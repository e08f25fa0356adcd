package bot

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/state"
)

// notePreviewLimit keeps the note preview within Telegram's message cap.
const notePreviewLimit = 3800

func tasksText(day time.Time, total int) string {
	date := esc(clock.FormatDay(day))
	if total == 0 {
		return fmt.Sprintf("✅ Задачи на %s:\n\nЗадач пока нет\\.", date)
	}
	return fmt.Sprintf("✅ Задачи на %s:\n\nВсего задач: %d", date, total)
}

func calendarText(day time.Time) string {
	return fmt.Sprintf("📅 Календарь\n\nАктивная дата: %s", esc(clock.FormatDay(day)))
}

func menuText(day time.Time) string {
	return fmt.Sprintf("📅 Активная дата: %s\n\nВыберите действие:", esc(clock.FormatDay(day)))
}

// -- Main menu --

func (b *Bot) handleMenuRating(c tele.Context) error {
	_ = c.Respond()
	b.states.SetState(c.Sender().ID, state.WaitingRating)
	return c.Edit("📊 Введите оценку дня \\(0\\-10\\):", tele.ModeMarkdownV2)
}

func (b *Bot) handleMenuTasks(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	b.states.SetState(userID, state.TasksView)
	b.states.SetTaskPage(userID, 0)

	return b.editTasks(c, userCtx.ActiveDate, 0)
}

func (b *Bot) handleMenuNote(c tele.Context) error {
	_ = c.Respond()
	userCtx := b.states.Get(c.Sender().ID)
	day := userCtx.ActiveDate

	if err := b.store.Ensure(day); err != nil {
		b.log.Error("ensuring note failed", zap.Error(err))
		return c.Edit("❌ Не удалось прочитать заметку\\.", tele.ModeMarkdownV2)
	}
	content, err := b.store.Read(day)
	if err != nil {
		b.log.Error("reading note failed", zap.Error(err))
		return c.Edit("❌ Не удалось прочитать заметку\\.", tele.ModeMarkdownV2)
	}

	ratingText := "Оценка: не установлена"
	if n, ok, _ := b.store.Rating(day); ok {
		ratingText = fmt.Sprintf("Оценка: %d", n)
	}

	preview := []rune(content)
	truncated := false
	if len(preview) > notePreviewLimit {
		preview = preview[:notePreviewLimit]
		truncated = true
	}
	previewText := string(preview)
	if truncated {
		previewText += "..."
	}

	text := fmt.Sprintf(
		"📝 Заметка %s\n\n%s\n\n```\n%s\n```",
		esc(clock.FormatDay(day)), esc(ratingText), esc(previewText),
	)
	return c.Edit(text, mainMenu(), tele.ModeMarkdownV2)
}

func (b *Bot) handleMenuCalendar(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	b.states.SetState(userID, state.CalendarView)

	kb := calendarKeyboard(userCtx.CalendarYear, userCtx.CalendarMonth, userCtx.ActiveDate, b.store.ExistingDates())
	return c.Edit(calendarText(userCtx.ActiveDate), kb, tele.ModeMarkdownV2)
}

// -- Tasks --

func (b *Bot) editTasks(c tele.Context, day time.Time, page int) error {
	if err := b.store.Ensure(day); err != nil {
		b.log.Error("ensuring note failed", zap.Error(err))
		return c.Edit("❌ Не удалось прочитать заметку\\.", tele.ModeMarkdownV2)
	}
	tasks, err := b.store.Tasks(day)
	if err != nil {
		b.log.Error("reading tasks failed", zap.Error(err))
		return c.Edit("❌ Не удалось прочитать заметку\\.", tele.ModeMarkdownV2)
	}
	return c.Edit(tasksText(day, len(tasks)), tasksKeyboard(tasks, page), tele.ModeMarkdownV2)
}

func (b *Bot) handleTaskToggle(c tele.Context) error {
	userCtx := b.states.Get(c.Sender().ID)

	idx, err := strconv.Atoi(c.Data())
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка при переключении задачи", ShowAlert: true})
	}

	if err := b.store.ToggleTask(userCtx.ActiveDate, idx); err != nil {
		b.log.Warn("toggling task failed", zap.Int("index", idx), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка при переключении задачи", ShowAlert: true})
	}

	_ = c.Respond()
	return b.editTasks(c, userCtx.ActiveDate, userCtx.TaskPage)
}

func (b *Bot) handleTaskAdd(c tele.Context) error {
	_ = c.Respond()
	b.states.SetState(c.Sender().ID, state.WaitingNewTask)
	return c.Edit("➕ Введите текст новой задачи:", taskAddKeyboard(), tele.ModeMarkdownV2)
}

func (b *Bot) handleTaskPage(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	page, err := strconv.Atoi(c.Data())
	if err != nil || page < 0 {
		return nil
	}
	b.states.SetTaskPage(userID, page)
	return b.editTasks(c, userCtx.ActiveDate, page)
}

func (b *Bot) handleTaskBack(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	b.states.SetState(userID, state.Idle)
	return c.Edit(menuText(userCtx.ActiveDate), mainMenu(), tele.ModeMarkdownV2)
}

func (b *Bot) handleTaskCancel(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	b.states.SetState(userID, state.TasksView)
	return b.editTasks(c, userCtx.ActiveDate, userCtx.TaskPage)
}

// -- Calendar --

func (b *Bot) editCalendar(c tele.Context, userID int64) error {
	userCtx := b.states.Get(userID)
	kb := calendarKeyboard(userCtx.CalendarYear, userCtx.CalendarMonth, userCtx.ActiveDate, b.store.ExistingDates())
	return c.Edit(calendarText(userCtx.ActiveDate), kb, tele.ModeMarkdownV2)
}

func (b *Bot) handleCalPrev(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	year, month := userCtx.CalendarYear, userCtx.CalendarMonth
	if month == time.January {
		month = time.December
		year--
	} else {
		month--
	}
	b.states.SetCalendar(userID, year, month)
	return b.editCalendar(c, userID)
}

func (b *Bot) handleCalNext(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	year, month := userCtx.CalendarYear, userCtx.CalendarMonth
	if month == time.December {
		month = time.January
		year++
	} else {
		month++
	}
	b.states.SetCalendar(userID, year, month)
	return b.editCalendar(c, userID)
}

func (b *Bot) handleCalSelect(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID

	day, err := clock.ParseDay(c.Data())
	if err != nil {
		b.log.Warn("bad calendar selection", zap.String("data", c.Data()))
		return nil
	}

	if err := b.store.Ensure(day); err != nil {
		b.log.Error("creating note failed", zap.Error(err))
		return c.Edit("❌ Произошла ошибка при обработке действия\\.", tele.ModeMarkdownV2)
	}

	b.states.SetActiveDate(userID, day)
	b.states.SetState(userID, state.Idle)

	date := esc(clock.FormatDay(day))
	text := fmt.Sprintf("✅ Выбрана дата: %s\n\n📅 Активная дата: %s\n\nВыберите действие:", date, date)
	return c.Edit(text, mainMenu(), tele.ModeMarkdownV2)
}

func (b *Bot) handleCalToday(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID

	today := b.clk.Today()
	b.states.SetActiveDate(userID, today)
	b.states.SetCalendar(userID, today.Year(), today.Month())
	return b.editCalendar(c, userID)
}

func (b *Bot) handleCalBack(c tele.Context) error {
	_ = c.Respond()
	userID := c.Sender().ID
	userCtx := b.states.Get(userID)

	b.states.SetState(userID, state.Idle)
	return c.Edit(menuText(userCtx.ActiveDate), mainMenu(), tele.ModeMarkdownV2)
}
