package bot

import (
	"fmt"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"

	"dailynotesbot/internal/clock"
	"dailynotesbot/internal/notes"
)

// Callback endpoints. The keyboards below mint buttons with these uniques;
// register() binds the handlers.
var (
	btnMenuRating   = tele.Btn{Unique: "menu_rating"}
	btnMenuTasks    = tele.Btn{Unique: "menu_tasks"}
	btnMenuNote     = tele.Btn{Unique: "menu_note"}
	btnMenuCalendar = tele.Btn{Unique: "menu_calendar"}

	btnTaskToggle = tele.Btn{Unique: "task_toggle"}
	btnTaskAdd    = tele.Btn{Unique: "task_add"}
	btnTaskPage   = tele.Btn{Unique: "task_page"}
	btnTaskBack   = tele.Btn{Unique: "task_back"}
	btnTaskCancel = tele.Btn{Unique: "task_cancel"}

	btnCalPrev   = tele.Btn{Unique: "cal_prev"}
	btnCalNext   = tele.Btn{Unique: "cal_next"}
	btnCalSelect = tele.Btn{Unique: "cal_select"}
	btnCalToday  = tele.Btn{Unique: "cal_today"}
	btnCalBack   = tele.Btn{Unique: "cal_back"}

	btnNoop = tele.Btn{Unique: "noop"}
)

const tasksPerPage = 5

var monthNames = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

func mainMenu() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(
			m.Data("📊 Оценка", btnMenuRating.Unique),
			m.Data("✅ Задачи", btnMenuTasks.Unique),
		),
		m.Row(
			m.Data("📝 Заметка", btnMenuNote.Unique),
			m.Data("📅 Календарь", btnMenuCalendar.Unique),
		),
	)
	return m
}

func tasksKeyboard(tasks []notes.Task, page int) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	var rows []tele.Row

	totalPages := (len(tasks) + tasksPerPage - 1) / tasksPerPage
	start := page * tasksPerPage
	end := start + tasksPerPage
	if end > len(tasks) {
		end = len(tasks)
	}
	if start > end {
		start = end
	}

	for _, t := range tasks[start:end] {
		checkbox := "☐"
		if t.Completed {
			checkbox = "☑"
		}
		rows = append(rows, m.Row(
			m.Data(checkbox+" "+t.Text, btnTaskToggle.Unique, strconv.Itoa(t.Index)),
		))
	}

	rows = append(rows, m.Row(m.Data("➕ Добавить задачу", btnTaskAdd.Unique)))

	if totalPages > 1 {
		var nav []tele.Btn
		if page > 0 {
			nav = append(nav, m.Data("◀", btnTaskPage.Unique, strconv.Itoa(page-1)))
		}
		nav = append(nav, m.Data(fmt.Sprintf("%d/%d", page+1, totalPages), btnNoop.Unique))
		if page < totalPages-1 {
			nav = append(nav, m.Data("▶", btnTaskPage.Unique, strconv.Itoa(page+1)))
		}
		rows = append(rows, m.Row(nav...))
	}

	rows = append(rows, m.Row(m.Data("◀ Назад", btnTaskBack.Unique)))

	m.Inline(rows...)
	return m
}

func taskAddKeyboard() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(m.Data("❌ Отмена", btnTaskCancel.Unique)))
	return m
}

// calendarKeyboard renders a Monday-first month grid. The active day is
// bracketed, days that already have a note are starred.
func calendarKeyboard(year int, month time.Month, active time.Time, existing map[string]bool) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	var rows []tele.Row

	rows = append(rows, m.Row(
		m.Data("◀", btnCalPrev.Unique),
		m.Data(fmt.Sprintf("%s %d", monthNames[month], year), btnNoop.Unique),
		m.Data("▶", btnCalNext.Unique),
	))

	var header tele.Row
	for _, wd := range []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"} {
		header = append(header, m.Data(wd, btnNoop.Unique))
	}
	rows = append(rows, header)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7 // Monday-first offset
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	activeStr := clock.FormatDay(active)

	var week tele.Row
	for i := 0; i < lead; i++ {
		week = append(week, m.Data(" ", btnNoop.Unique))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dateStr := clock.FormatDay(date)

		label := strconv.Itoa(day)
		switch {
		case dateStr == activeStr:
			label = "[" + label + "]"
		case existing[dateStr]:
			label = "*" + label + "*"
		}

		week = append(week, m.Data(label, btnCalSelect.Unique, dateStr))
		if len(week) == 7 {
			rows = append(rows, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, m.Data(" ", btnNoop.Unique))
		}
		rows = append(rows, week)
	}

	rows = append(rows, m.Row(
		m.Data("📅 Сегодня", btnCalToday.Unique),
		m.Data("◀ Назад", btnCalBack.Unique),
	))

	m.Inline(rows...)
	return m
}
