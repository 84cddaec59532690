// Package timezone связывает настенное время фиксированной бизнес-зоны
// с абсолютными UTC-моментами, в которых хранятся все даты.
//
// Бизнес работает в одной гражданской таймзоне независимо от того, где
// запущен сервер: весь ввод и вывод пользователя интерпретируется в ней,
// а хранение и сравнение всегда идут по UTC. Никогда не сравнивайте
// локальную строку с UTC-строкой напрямую — только через этот пакет.
package timezone

import (
	"errors"
	"fmt"
	"time"
)

const (
	// InputLayout формат строк из полей ввода даты-времени, без смещения.
	InputLayout = "2006-01-02T15:04"
	// DisplayLayout формат отображения дат по умолчанию.
	DisplayLayout = "02 Jan 2006 15:04"
)

// ErrEmptyDate возвращается при попытке разобрать пустую строку даты.
var ErrEmptyDate = errors.New("empty date string")

// Clock источник текущего времени. Сервисы принимают Clock, а не зовут
// time.Now напрямую, чтобы тесты могли зафиксировать "сейчас".
type Clock interface {
	Now() time.Time
}

// SystemClock реализация Clock поверх системных часов.
type SystemClock struct{}

// Now возвращает текущий момент в UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Timezone инкапсулирует бизнес-зону и преобразования в обе стороны.
type Timezone struct {
	loc *time.Location
}

// New загружает именованную таймзону, например "Africa/Casablanca".
func New(name string) (*Timezone, error) {
	const op = "timezone.New"
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Timezone{loc: loc}, nil
}

// Local возвращает Timezone на системной зоне процесса.
// Лазейка для окружения env=local, в продакшене всегда фиксированная зона.
func Local() *Timezone {
	return &Timezone{loc: time.Local}
}

// Location возвращает *time.Location бизнес-зоны.
func (tz *Timezone) Location() *time.Location { return tz.loc }

// ToUTC интерпретирует строку настенного времени как время бизнес-зоны
// и возвращает соответствующий абсолютный момент в UTC.
// Например "2024-05-20T10:00" (Casablanca) -> 2024-05-20T09:00:00Z.
func (tz *Timezone) ToUTC(wall string) (time.Time, error) {
	const op = "timezone.ToUTC"
	if wall == "" {
		return time.Time{}, fmt.Errorf("%s: %w", op, ErrEmptyDate)
	}
	t, err := time.ParseInLocation(InputLayout, wall, tz.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t.UTC(), nil
}

// ToInputString обратное преобразование: момент в строку настенного времени
// бизнес-зоны, пригодную для повторного прохода через ToUTC.
func (tz *Timezone) ToInputString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(tz.loc).Format(InputLayout)
}

// Format отрисовывает момент в бизнес-зоне по заданному формату.
// Пустой layout означает DisplayLayout.
func (tz *Timezone) Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DisplayLayout
	}
	return t.In(tz.loc).Format(layout)
}

// MonthRange возвращает UTC-границы календарного месяца бизнес-зоны,
// полуоткрытый интервал [from, to).
func (tz *Timezone) MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, tz.loc)
	return from.UTC(), from.AddDate(0, 1, 0).UTC()
}

// SameDay сравнивает календарные дни двух моментов в бизнес-зоне.
func (tz *Timezone) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(tz.loc).Date()
	by, bm, bd := b.In(tz.loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsToday сообщает, приходится ли момент на сегодняшний бизнес-день.
func (tz *Timezone) IsToday(t, now time.Time) bool {
	return tz.SameDay(t, now)
}

// IsTomorrow сообщает, приходится ли момент на завтрашний бизнес-день.
func (tz *Timezone) IsTomorrow(t, now time.Time) bool {
	tomorrow := now.In(tz.loc).AddDate(0, 0, 1)
	return tz.SameDay(t, tomorrow)
}
